package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/rufoabrahamguyo/king-taper/internal/domain/schedule"
	"github.com/rufoabrahamguyo/king-taper/internal/httperr"
	"github.com/rufoabrahamguyo/king-taper/internal/ledger"
)

// mapLedgerError translates ledger business codes to HTTP responses.
// Conflict messages stay specific so the booking page can steer the
// customer to a different slot instead of showing a generic failure.
func mapLedgerError(c *gin.Context, err error) {
	code := httperr.BusinessCode(err)

	switch code {
	case "missing_fields":
		httperr.BadRequest(c, code, "Missing required fields")
	case "invalid_date":
		httperr.BadRequest(c, code, "Invalid date. Use YYYY-MM-DD.")
	case "invalid_time":
		httperr.BadRequest(c, code, "Invalid time. Use HH:MM.")
	case "outside_hours":
		httperr.BadRequest(c, code, "Selected time is outside business hours.")
	case schedule.ReasonPast:
		httperr.BadRequest(c, code, "Cannot book appointments in the past. Please select a future time slot.")
	case schedule.ReasonAlreadyBooked:
		httperr.Conflict(c, code, "Time slot conflicts with existing booking. Please choose another time.")
	case schedule.ReasonDayBlocked:
		httperr.Conflict(c, code, "We are closed that day. Please choose another date.")
	case schedule.ReasonRangeBlocked:
		httperr.Conflict(c, code, "That time is unavailable. Please choose another time.")
	case ledger.ReasonOverlapsBooking:
		httperr.Conflict(c, code, "The range overlaps an existing booking.")
	case ledger.CodeNotFound:
		httperr.NotFound(c, code, "Not found")
	case ledger.CodeStoreUnavailable:
		httperr.Unavailable(c, code, "Database not available")
	default:
		httperr.Internal(c, "internal_error", "Internal server error")
	}
}
