package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/krishhb1937/Bhada-Ma-Rental/internal/domain"
	"github.com/krishhb1937/Bhada-Ma-Rental/internal/service"
)

type BookingHandler struct {
	svc *service.BookingSvc
}

func NewBookingHandler(svc *service.BookingSvc) *BookingHandler {
	return &BookingHandler{svc: svc}
}

// POST /v1/bookings
func (h *BookingHandler) Create(c *gin.Context) {
	var in struct {
		PropertyID  string  `json:"property_id" binding:"required"`
		MoveInDate  string  `json:"move_in_date" binding:"required"` // RFC3339
		TotalAmount float64 `json:"total_amount" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	moveIn, err := time.Parse(time.RFC3339, in.MoveInDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "move_in_date must be RFC3339"})
		return
	}
	b, err := h.svc.Create(c.Request.Context(), callerID(c), in.PropertyID, moveIn, in.TotalAmount)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// GET /v1/bookings — owner sees requests against their listings,
// renter sees their own requests.
func (h *BookingHandler) List(c *gin.Context) {
	var (
		out []service.BookingView
		err error
	)
	if callerRole(c) == string(domain.RoleOwner) {
		out, err = h.svc.ListForOwner(c.Request.Context(), callerID(c))
	} else {
		out, err = h.svc.ListForRenter(c.Request.Context(), callerID(c))
	}
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /v1/bookings/:id
func (h *BookingHandler) Get(c *gin.Context) {
	b, err := h.svc.Get(c.Request.Context(), callerID(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// PATCH /v1/bookings/:id/status (property owner)
func (h *BookingHandler) Decide(c *gin.Context) {
	var in struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	b, err := h.svc.Decide(c.Request.Context(), callerID(c), c.Param("id"), domain.BookingStatus(in.Status))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// DELETE /v1/bookings/:id
func (h *BookingHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), callerID(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
