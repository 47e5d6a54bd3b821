package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/krishhb1937/Bhada-Ma-Rental/internal/service"
	"github.com/krishhb1937/Bhada-Ma-Rental/pkg/auth"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WSMessage is the inbound envelope.
type WSMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// WSResponse is the outbound envelope.
type WSResponse struct {
	Type    string `json:"type"`
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// Hub routes chat traffic between connected clients. Rooms are
// property-scoped two-party threads keyed by ChatRoomID.
type Hub struct {
	chat   *service.ChatSvc
	issuer *auth.Issuer
	logger *zap.Logger

	// mu guards rooms. Broadcast takes the full lock so messages for a
	// room fan out in persistence order.
	mu    sync.Mutex
	rooms map[string]map[*Client]struct{}
}

func NewHub(chat *service.ChatSvc, issuer *auth.Issuer, logger *zap.Logger) *Hub {
	return &Hub{
		chat:   chat,
		issuer: issuer,
		logger: logger,
		rooms:  make(map[string]map[*Client]struct{}),
	}
}

// Serve upgrades the request and runs the connection until close.
// Auth rides on the token query parameter because browsers cannot set
// headers on websocket dials.
func (h *Hub) Serve(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}
	claims, err := h.issuer.ParseValidate(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed",
			zap.String("user_id", claims.Sub),
			zap.Error(err))
		return
	}

	client := &Client{
		ID:     fmt.Sprintf("%s_%d", claims.Sub, time.Now().UnixNano()),
		UserID: claims.Sub,
		Conn:   conn,
		Send:   make(chan []byte, 256),
		hub:    h,
		rooms:  make(map[string]struct{}),
	}

	client.SendJSON(&WSResponse{
		Type:    "connected",
		Success: true,
		Data:    gin.H{"user_id": client.UserID},
	})

	go client.writePump()
	go client.readPump()

	h.logger.Info("websocket connected",
		zap.String("client_id", client.ID),
		zap.String("user_id", client.UserID))
}

type joinRoomPayload struct {
	PropertyID string `json:"property_id"`
	UserID     string `json:"user_id"` // the counterpart
}

type sendMessagePayload struct {
	ReceiverID string `json:"receiver_id"`
	PropertyID string `json:"property_id"`
	Text       string `json:"text"`
}

func (h *Hub) handleMessage(client *Client, data []byte) {
	var msg WSMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		client.SendError("invalid message format")
		return
	}

	ctx := context.Background()

	switch msg.Type {
	case "join_room":
		h.handleJoinRoom(client, msg.Data)
	case "send_message":
		h.handleSendMessage(ctx, client, msg.Data)
	case "mark_read":
		h.handleMarkRead(ctx, client, msg.Data)
	default:
		client.SendError(fmt.Sprintf("unknown message type: %s", msg.Type))
	}
}

func (h *Hub) handleJoinRoom(client *Client, data json.RawMessage) {
	var p joinRoomPayload
	if err := json.Unmarshal(data, &p); err != nil || p.PropertyID == "" || p.UserID == "" {
		client.SendError("property_id and user_id are required to join a room")
		return
	}

	// The room key always includes the caller, so a client can only
	// ever join threads it participates in.
	room := ChatRoomID(p.PropertyID, client.UserID, p.UserID)
	h.joinRoom(client, room)

	client.SendJSON(&WSResponse{
		Type:    "room_joined",
		Success: true,
		Data:    gin.H{"room_id": room},
	})
}

func (h *Hub) handleSendMessage(ctx context.Context, client *Client, data json.RawMessage) {
	var p sendMessagePayload
	if err := json.Unmarshal(data, &p); err != nil {
		client.SendError("invalid message payload")
		return
	}

	view, err := h.chat.Send(ctx, client.UserID, p.ReceiverID, p.PropertyID, p.Text)
	if err != nil {
		client.SendError(err.Error())
		return
	}

	room := ChatRoomID(p.PropertyID, client.UserID, p.ReceiverID)
	h.broadcastToRoom(room, &WSResponse{
		Type:    "receive_message",
		Success: true,
		Data:    view,
	})
}

type markReadPayload struct {
	PropertyID string `json:"property_id"`
	UserID     string `json:"user_id"` // the counterpart
}

func (h *Hub) handleMarkRead(ctx context.Context, client *Client, data json.RawMessage) {
	var p markReadPayload
	if err := json.Unmarshal(data, &p); err != nil || p.PropertyID == "" || p.UserID == "" {
		client.SendError("property_id and user_id are required")
		return
	}

	n, err := h.chat.MarkRead(ctx, client.UserID, p.PropertyID, p.UserID)
	if err != nil {
		client.SendError(err.Error())
		return
	}
	client.SendJSON(&WSResponse{
		Type:    "messages_read",
		Success: true,
		Data:    gin.H{"updated": n},
	})
}

func (h *Hub) joinRoom(client *Client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.rooms[room]; !ok {
		h.rooms[room] = make(map[*Client]struct{})
	}
	h.rooms[room][client] = struct{}{}
	client.rooms[room] = struct{}{}
}

func (h *Hub) broadcastToRoom(room string, v any) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.rooms[room] {
		client.SendJSON(v)
	}
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for room := range client.rooms {
		if members, ok := h.rooms[room]; ok {
			delete(members, client)
			if len(members) == 0 {
				delete(h.rooms, room)
			}
		}
	}
	close(client.Send)

	h.logger.Info("websocket disconnected",
		zap.String("client_id", client.ID),
		zap.String("user_id", client.UserID))
}
