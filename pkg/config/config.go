package config

import (
	"github.com/kelseyhightower/envconfig"
)

type App struct {
	// DB
	PGRentalDSN string `envconfig:"PG_RENTAL_DSN" required:"true"`
	// JWT
	JWTSecret    string `envconfig:"JWT_SECRET" required:"true"`
	JWTExpireMin int    `envconfig:"JWT_EXPIRE_MIN" default:"60"`
	// Network
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":8080"`

	// RabbitMQ (optional; domain events are not published when unset)
	RabbitURL     string `envconfig:"RABBIT_URL" default:""`
	EventExchange string `envconfig:"EVENT_EXCHANGE" default:"rental.exchange"`

	// External QR renderer for payment artifacts
	QRRendererBase string `envconfig:"QR_RENDERER_BASE" default:"https://api.qrserver.com/v1/create-qr-code/"`

	// Tracing
	OTELEnabled bool `envconfig:"OTEL_ENABLED" default:"false"`
}

func Load() (App, error) {
	var c App
	err := envconfig.Process("", &c)
	return c, err
}
