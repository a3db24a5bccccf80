package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/rufoabrahamguyo/king-taper/internal/config"
)

// SessionCookie carries the admin session token, issued at login as an
// httpOnly cookie the way the original express-session setup did.
const SessionCookie = "kingtaper.sid"

const ContextIsAdmin = "isAdmin"

// SessionToken extracts the admin token from the cookie, falling back
// to a bearer header for non-browser clients.
func SessionToken(c *gin.Context) string {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie != "" {
		return cookie
	}

	authHeader := c.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return parts[1]
	}
	return ""
}

// ValidSession reports whether the token is a live admin session.
func ValidSession(cfg *config.Config, tokenString string) bool {
	if tokenString == "" {
		return false
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return []byte(cfg.SessionSecret), nil
	})
	if err != nil || !token.Valid {
		return false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return false
	}

	admin, _ := claims["admin"].(bool)
	return admin
}

// AdminAuth guards the administrator API.
func AdminAuth(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !ValidSession(cfg, SessionToken(c)) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Unauthorized",
			})
			return
		}

		c.Set(ContextIsAdmin, true)
		c.Next()
	}
}
