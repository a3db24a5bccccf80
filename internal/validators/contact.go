package validators

import (
	"net/mail"
	"strings"
	"unicode"
)

// IsValidEmail checks the address shape without touching DNS: booking
// requests must not stall on a resolver, and the email is optional
// contact data anyway.
func IsValidEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return false
	}

	at := strings.LastIndex(email, "@")
	domain := email[at+1:]
	return strings.Contains(domain, ".")
}

// NormalizePhone strips formatting characters and returns the bare
// number, or "" when what remains is too short to dial.
func NormalizePhone(phone string) string {
	var b strings.Builder
	for i, r := range phone {
		if unicode.IsDigit(r) || (r == '+' && i == 0) {
			b.WriteRune(r)
		}
	}

	normalized := b.String()
	if len(strings.TrimPrefix(normalized, "+")) < 7 {
		return ""
	}
	return normalized
}
