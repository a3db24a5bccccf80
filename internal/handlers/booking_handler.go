package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/rufoabrahamguyo/king-taper/internal/httperr"
	"github.com/rufoabrahamguyo/king-taper/internal/httpresp"
	"github.com/rufoabrahamguyo/king-taper/internal/ledger"
	"github.com/rufoabrahamguyo/king-taper/internal/validators"
)

// BookingHandler serves the public customer-facing API.
type BookingHandler struct {
	ledger *ledger.Ledger
}

func NewBookingHandler(l *ledger.Ledger) *BookingHandler {
	return &BookingHandler{ledger: l}
}

type BookingRequest struct {
	Name    string  `json:"name" binding:"required"`
	Email   string  `json:"email"`
	Phone   string  `json:"phone" binding:"required"`
	Service string  `json:"service" binding:"required"`
	Price   float64 `json:"price" binding:"required"`
	Date    string  `json:"date" binding:"required"` // YYYY-MM-DD
	Time    string  `json:"time" binding:"required"` // HH:MM
	Message string  `json:"message"`
}

func (h *BookingHandler) Create(c *gin.Context) {
	var req BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "missing_fields", "Missing required fields")
		return
	}

	if req.Email != "" && !validators.IsValidEmail(req.Email) {
		httperr.BadRequest(c, "invalid_email", "The email address does not look valid.")
		return
	}

	phone := validators.NormalizePhone(req.Phone)
	if phone == "" {
		httperr.BadRequest(c, "invalid_phone", "The phone number does not look valid.")
		return
	}

	booking, err := h.ledger.Reserve(c.Request.Context(), ledger.ReserveInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   phone,
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

	httpresp.Created(c, gin.H{"bookingId": booking.ID})
}

func (h *BookingHandler) AvailableTimes(c *gin.Context) {
	date := c.Query("date")
	service := c.Query("service")

	if date == "" {
		httperr.BadRequest(c, "missing_date", "Missing date parameter")
		return
	}
	if service == "" {
		httperr.BadRequest(c, "missing_service", "Missing service parameter")
		return
	}

	out, err := h.ledger.AvailableTimes(c.Request.Context(), date, service)
	if err != nil {
		mapLedgerError(c, err)
		return
	}

	resp := gin.H{"times": out.Times, "status": out.Status}
	if out.Reason != "" {
		resp["reason"] = out.Reason
	}
	httpresp.OK(c, resp)
}

func (h *BookingHandler) BookedTimes(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_date", "Missing date parameter")
		return
	}

	times, err := h.ledger.BookedTimes(c.Request.Context(), date)
	if err != nil {
		mapLedgerError(c, err)
		return
	}

	httpresp.OK(c, gin.H{"times": times})
}

func (h *BookingHandler) ServiceDuration(c *gin.Context) {
	service := c.Param("service")
	httpresp.OK(c, gin.H{
		"service":  service,
		"duration": h.ledger.ServiceDuration(service),
	})
}
