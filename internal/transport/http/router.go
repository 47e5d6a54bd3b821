package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/krishhb1937/Bhada-Ma-Rental/internal/domain"
	"github.com/krishhb1937/Bhada-Ma-Rental/internal/service"
	"github.com/krishhb1937/Bhada-Ma-Rental/internal/ws"
	"github.com/krishhb1937/Bhada-Ma-Rental/pkg/auth"
)

type Services struct {
	Auth          *service.AuthSvc
	Properties    *service.PropertySvc
	Bookings      *service.BookingSvc
	Payments      *service.PaymentSvc
	Notifications *service.NotificationSvc
	Chat          *service.ChatSvc
}

func NewRouter(svcs Services, issuer *auth.Issuer, hub *ws.Hub) *gin.Engine {
	r := gin.Default()

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ws", hub.Serve)

	ah := NewAuthHandler(svcs.Auth)
	ph := NewPropertyHandler(svcs.Properties)
	bh := NewBookingHandler(svcs.Bookings)
	payh := NewPaymentHandler(svcs.Payments)
	nh := NewNotificationHandler(svcs.Notifications)
	mh := NewMessageHandler(svcs.Chat)

	v1 := r.Group("/v1")
	{
		v1.POST("/auth/register", ah.Register)
		v1.POST("/auth/login", ah.Login)

		v1.GET("/properties", ph.List)
		v1.GET("/properties/:id", ph.Get)

		secured := v1.Group("")
		secured.Use(JWTAuth(issuer))
		{
			secured.GET("/users/me", ah.GetMe)
			secured.PUT("/users/me", ah.UpdateMe)

			owner := secured.Group("")
			owner.Use(RequireRole(string(domain.RoleOwner)))
			{
				owner.POST("/properties", ph.Create)
				owner.PUT("/properties/:id", ph.Update)
				owner.DELETE("/properties/:id", ph.Delete)
			}

			secured.POST("/bookings", bh.Create)
			secured.GET("/bookings", bh.List)
			secured.GET("/bookings/:id", bh.Get)
			secured.PATCH("/bookings/:id/status", bh.Decide)
			secured.DELETE("/bookings/:id", bh.Delete)

			secured.GET("/payments", payh.List)
			secured.GET("/payments/:id", payh.Get)
			secured.PATCH("/payments/:id/status", payh.UpdateStatus)
			secured.DELETE("/payments/:id", payh.Delete)
			secured.POST("/payments/booking/:bookingId", payh.CreateForBooking)
			secured.GET("/payments/booking/:bookingId", payh.GetByBooking)

			secured.GET("/notifications", nh.List)
			secured.GET("/notifications/unread-count", nh.UnreadCount)
			secured.PUT("/notifications/read-all", nh.MarkAllRead)
			secured.PUT("/notifications/:id/read", nh.MarkRead)
			secured.DELETE("/notifications/:id", nh.Delete)

			secured.POST("/messages", mh.Send)
			secured.GET("/messages/unread-count", mh.UnreadCount)
			secured.GET("/messages/thread/:propertyId/:userId", mh.Thread)
			secured.PUT("/messages/read/:propertyId/:userId", mh.MarkRead)
			secured.GET("/conversations", mh.Conversations)
		}
	}

	return r
}
