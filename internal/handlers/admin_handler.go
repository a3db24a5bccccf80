package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rufoabrahamguyo/king-taper/internal/httperr"
	"github.com/rufoabrahamguyo/king-taper/internal/httpresp"
	"github.com/rufoabrahamguyo/king-taper/internal/ledger"
)

// AdminHandler serves the session-guarded administrator API: booking
// CRUD and blocked-time management.
type AdminHandler struct {
	ledger *ledger.Ledger
}

func NewAdminHandler(l *ledger.Ledger) *AdminHandler {
	return &AdminHandler{ledger: l}
}

// --------------------------------------------------
// Bookings
// --------------------------------------------------

func (h *AdminHandler) ListBookings(c *gin.Context) {
	bookings, err := h.ledger.ListBookings(c.Request.Context(), c.Query("start"), c.Query("end"))
	if err != nil {
		mapLedgerError(c, err)
		return
	}

	httpresp.OK(c, gin.H{"bookings": bookings})
}

func (h *AdminHandler) UpdateBooking(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "missing_fields", "Missing required fields")
		return
	}

	err := h.ledger.UpdateBooking(c.Request.Context(), id, ledger.ReserveInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Service: req.Service,
		Price:   req.Price,
		Date:    req.Date,
		Time:    req.Time,
		Message: req.Message,
	})
	if err != nil {
		mapLedgerError(c, err)
		return
	}

	httpresp.OK(c, gin.H{})
}

func (h *AdminHandler) DeleteBooking(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.ledger.DeleteBooking(c.Request.Context(), id); err != nil {
		mapLedgerError(c, err)
		return
	}

	httpresp.OK(c, gin.H{})
}

// --------------------------------------------------
// Blocked times
// --------------------------------------------------

type BlockedTimeRequest struct {
	Date     string `json:"date" binding:"required"` // YYYY-MM-DD
	Start    string `json:"start_time"`              // HH:MM unless whole_day
	End      string `json:"end_time"`                // HH:MM unless whole_day
	Reason   string `json:"reason"`
	WholeDay bool   `json:"whole_day"`
}

func (h *AdminHandler) AddBlockedTime(c *gin.Context) {
	var req BlockedTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "missing_fields", "Missing required fields")
		return
	}

	block, err := h.ledger.AddBlockedTime(c.Request.Context(), ledger.BlockInput{
		Date:     req.Date,
		Start:    req.Start,
		End:      req.End,
		Reason:   req.Reason,
		WholeDay: req.WholeDay,
	})
	if err != nil {
		mapLedgerError(c, err)
		return
	}

	httpresp.Created(c, gin.H{"blockedTime": block})
}

func (h *AdminHandler) ListBlockedTimes(c *gin.Context) {
	blocks, err := h.ledger.ListBlockedTimes(c.Request.Context(), c.Query("date"))
	if err != nil {
		mapLedgerError(c, err)
		return
	}

	httpresp.OK(c, gin.H{"blockedTimes": blocks})
}

func (h *AdminHandler) RemoveBlockedTime(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.ledger.RemoveBlockedTime(c.Request.Context(), id); err != nil {
		mapLedgerError(c, err)
		return
	}

	httpresp.OK(c, gin.H{})
}

func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid id")
		return 0, false
	}
	return uint(id), true
}
