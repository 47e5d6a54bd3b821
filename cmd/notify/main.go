package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"

	"github.com/krishhb1937/Bhada-Ma-Rental/internal/worker"
)

type Cfg struct {
	RabbitURL     string `envconfig:"RABBIT_URL" required:"true"`
	EventExchange string `envconfig:"EVENT_EXCHANGE" default:"rental.exchange"`
	NotifyQueue   string `envconfig:"NOTIFY_QUEUE" default:"notification.q"`
	NotifyDLX     string `envconfig:"NOTIFY_DLX" default:"notification.dlx"`
	NotifyDLQ     string `envconfig:"NOTIFY_DLQ" default:"notification.q.dlq"`
}

func main() {
	_ = godotenv.Load()

	var cfg Cfg
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatal(err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	cons := worker.NewConsumer(worker.Config{
		RabbitURL:   cfg.RabbitURL,
		Exchange:    cfg.EventExchange,
		Queue:       cfg.NotifyQueue,
		Bindings:    []string{"booking.*", "payment.*"},
		Prefetch:    16,
		UseDLX:      true,
		DLXName:     cfg.NotifyDLX,
		DLXQueue:    cfg.NotifyDLQ,
		ServiceName: "rental-notify",
	}, worker.NewLogNotifier(logger), logger)

	for {
		if err := cons.Connect(); err != nil {
			logger.Warn("connect failed, retrying", zap.Error(err))
			time.Sleep(2 * time.Second)
			continue
		}
		break
	}
	defer cons.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		if err := cons.Run(ctx); err != nil {
			logger.Error("consumer stopped", zap.Error(err))
		}
	}()

	logger.Info("notify worker started",
		zap.String("queue", cfg.NotifyQueue),
		zap.String("exchange", cfg.EventExchange))

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	cancel()
	time.Sleep(200 * time.Millisecond)
}
