package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/krishhb1937/Bhada-Ma-Rental/internal/qr"
	"github.com/krishhb1937/Bhada-Ma-Rental/internal/repository"
	"github.com/krishhb1937/Bhada-Ma-Rental/internal/service"
	httpapi "github.com/krishhb1937/Bhada-Ma-Rental/internal/transport/http"
	"github.com/krishhb1937/Bhada-Ma-Rental/internal/ws"
	"github.com/krishhb1937/Bhada-Ma-Rental/pkg/auth"
	"github.com/krishhb1937/Bhada-Ma-Rental/pkg/config"
	"github.com/krishhb1937/Bhada-Ma-Rental/pkg/db"
	"github.com/krishhb1937/Bhada-Ma-Rental/pkg/mq"
	"github.com/krishhb1937/Bhada-Ma-Rental/pkg/obs"
)

func must[T any](v T, err error) T {
	if err != nil {
		log.Fatal(err)
	}
	return v
}

func main() {
	_ = godotenv.Load()
	cfg := must(config.Load())

	logger := must(zap.NewProduction())
	defer logger.Sync()

	if cfg.OTELEnabled {
		shutdown, err := obs.InitTracer(context.Background(), "rental-api")
		if err != nil {
			logger.Fatal("init tracer failed", zap.Error(err))
		}
		defer shutdown(context.Background())
	}

	gdb := must(db.Open(cfg.PGRentalDSN))

	users := repository.NewUserRepo(gdb)
	properties := repository.NewPropertyRepo(gdb)
	bookings := repository.NewBookingRepo(gdb)
	payments := repository.NewPaymentRepo(gdb)
	notifications := repository.NewNotificationRepo(gdb)
	messages := repository.NewMessageRepo(gdb)

	must(0, users.Migrate())
	must(0, properties.Migrate())
	must(0, bookings.Migrate())
	must(0, payments.Migrate())
	must(0, notifications.Migrate())
	must(0, messages.Migrate())

	issuer := auth.NewIssuer(cfg.JWTSecret, time.Duration(cfg.JWTExpireMin)*time.Minute)

	// Events are optional: with no broker configured the hooks no-op.
	var pub service.EventPublisher
	if cfg.RabbitURL != "" {
		p := must(mq.NewPublisher(cfg.RabbitURL, cfg.EventExchange))
		defer p.Close()
		pub = p
	}

	authSvc := service.NewAuthSvc(users, issuer)
	propertySvc := service.NewPropertySvc(properties, users)
	notificationSvc := service.NewNotificationSvc(notifications, users, properties, bookings)
	paymentSvc := service.NewPaymentSvc(payments, bookings, users, qr.NewRenderer(cfg.QRRendererBase), logger)
	bookingSvc := service.NewBookingSvc(bookings, properties, users, logger)
	chatSvc := service.NewChatSvc(messages, users, properties, logger)

	// Side effect chains. Order matters: notifications go out before the
	// payment record is provisioned, matching the confirmation flow.
	bookingSvc.AfterCreate(
		service.BookingRequestedHook(notificationSvc),
		service.BookingRequestedEventHook(pub),
	)
	bookingSvc.AfterDecide(
		service.BookingDecidedHook(notificationSvc),
		service.PaymentAutoCreateHook(paymentSvc),
		service.BookingDecidedEventHook(pub),
	)
	paymentSvc.OnCreated(
		service.PaymentCreatedEventHook(pub),
	)
	paymentSvc.OnCompleted(
		service.PaymentCompletedNotifyHook(notificationSvc),
		service.PaymentCompletedEventHook(pub),
	)

	hub := ws.NewHub(chatSvc, issuer, logger)
	router := httpapi.NewRouter(httpapi.Services{
		Auth:          authSvc,
		Properties:    propertySvc,
		Bookings:      bookingSvc,
		Payments:      paymentSvc,
		Notifications: notificationSvc,
		Chat:          chatSvc,
	}, issuer, hub)

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	go func() {
		logger.Info("http listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown failed", zap.Error(err))
	}
	logger.Info("stopped")
}
