package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/krishhb1937/Bhada-Ma-Rental/internal/domain"
	"github.com/krishhb1937/Bhada-Ma-Rental/internal/repository"
	"github.com/krishhb1937/Bhada-Ma-Rental/internal/service"
)

type PropertyHandler struct {
	svc *service.PropertySvc
}

func NewPropertyHandler(svc *service.PropertySvc) *PropertyHandler {
	return &PropertyHandler{svc: svc}
}

// POST /v1/properties (owner)
func (h *PropertyHandler) Create(c *gin.Context) {
	var in service.PropertyInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p, err := h.svc.Create(c.Request.Context(), callerID(c), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// GET /v1/properties
func (h *PropertyHandler) List(c *gin.Context) {
	f := repository.PropertyFilter{
		OwnerID:      c.Query("owner_id"),
		Location:     c.Query("location"),
		PropertyType: c.Query("property_type"),
		Status:       domain.PropertyStatus(c.Query("status")),
	}
	f.MinPrice, _ = strconv.ParseFloat(c.Query("min_price"), 64)
	f.MaxPrice, _ = strconv.ParseFloat(c.Query("max_price"), 64)

	out, err := h.svc.List(c.Request.Context(), f)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /v1/properties/:id
func (h *PropertyHandler) Get(c *gin.Context) {
	p, owner, err := h.svc.WithOwner(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"property": p, "owner": owner})
}

// PUT /v1/properties/:id (owner of the listing)
func (h *PropertyHandler) Update(c *gin.Context) {
	var in service.PropertyUpdate
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p, err := h.svc.Update(c.Request.Context(), callerID(c), c.Param("id"), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// DELETE /v1/properties/:id (owner of the listing)
func (h *PropertyHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), callerID(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
