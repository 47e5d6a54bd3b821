package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/krishhb1937/Bhada-Ma-Rental/internal/domain"
	"github.com/krishhb1937/Bhada-Ma-Rental/internal/service"
)

type PaymentHandler struct {
	svc *service.PaymentSvc
}

func NewPaymentHandler(svc *service.PaymentSvc) *PaymentHandler {
	return &PaymentHandler{svc: svc}
}

// POST /v1/payments/booking/:bookingId — on-demand creation for
// confirmed bookings that missed the automatic path.
func (h *PaymentHandler) CreateForBooking(c *gin.Context) {
	p, err := h.svc.CreateForBooking(c.Request.Context(), c.Param("bookingId"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// GET /v1/payments/booking/:bookingId
func (h *PaymentHandler) GetByBooking(c *gin.Context) {
	p, err := h.svc.ByBooking(c.Request.Context(), callerID(c), c.Param("bookingId"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// GET /v1/payments/:id
func (h *PaymentHandler) Get(c *gin.Context) {
	p, err := h.svc.ByID(c.Request.Context(), callerID(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// GET /v1/payments
func (h *PaymentHandler) List(c *gin.Context) {
	out, err := h.svc.ListForUser(c.Request.Context(), callerID(c), domain.Role(callerRole(c)))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// PATCH /v1/payments/:id/status
func (h *PaymentHandler) UpdateStatus(c *gin.Context) {
	var in struct {
		Status        string `json:"status" binding:"required"`
		TransactionID string `json:"transaction_id"`
		Notes         string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p, err := h.svc.UpdateStatus(c.Request.Context(), callerID(c), c.Param("id"),
		domain.PaymentStatus(in.Status), in.TransactionID, in.Notes)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// DELETE /v1/payments/:id — only failed or cancelled records.
func (h *PaymentHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), callerID(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
