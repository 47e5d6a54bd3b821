package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/krishhb1937/Bhada-Ma-Rental/internal/service"
)

type MessageHandler struct {
	svc *service.ChatSvc
}

func NewMessageHandler(svc *service.ChatSvc) *MessageHandler {
	return &MessageHandler{svc: svc}
}

// POST /v1/messages — REST fallback for clients without a live socket.
func (h *MessageHandler) Send(c *gin.Context) {
	var in struct {
		ReceiverID string `json:"receiver_id" binding:"required"`
		PropertyID string `json:"property_id" binding:"required"`
		Text       string `json:"text"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	m, err := h.svc.Send(c.Request.Context(), callerID(c), in.ReceiverID, in.PropertyID, in.Text)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

// GET /v1/messages/thread/:propertyId/:userId
func (h *MessageHandler) Thread(c *gin.Context) {
	out, err := h.svc.History(c.Request.Context(), callerID(c), c.Param("propertyId"), c.Param("userId"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// PUT /v1/messages/read/:propertyId/:userId
func (h *MessageHandler) MarkRead(c *gin.Context) {
	n, err := h.svc.MarkRead(c.Request.Context(), callerID(c), c.Param("propertyId"), c.Param("userId"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": n})
}

// GET /v1/messages/unread-count
func (h *MessageHandler) UnreadCount(c *gin.Context) {
	n, err := h.svc.UnreadCount(c.Request.Context(), callerID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"unread": n})
}

// GET /v1/conversations
func (h *MessageHandler) Conversations(c *gin.Context) {
	out, err := h.svc.Conversations(c.Request.Context(), callerID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
