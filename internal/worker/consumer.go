package worker

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/krishhb1937/Bhada-Ma-Rental/internal/events"
)

type Config struct {
	RabbitURL   string
	Exchange    string
	Queue       string
	Bindings    []string
	Prefetch    int
	UseDLX      bool
	DLXName     string
	DLXQueue    string
	ServiceName string
}

// Consumer drains domain events off the rental exchange and pushes them
// through a Notifier. Runs as its own binary so the API server never
// blocks on delivery channels.
type Consumer struct {
	cfg      Config
	notifier Notifier
	logger   *zap.Logger

	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewConsumer(cfg Config, n Notifier, logger *zap.Logger) *Consumer {
	return &Consumer{cfg: cfg, notifier: n, logger: logger}
}

func (c *Consumer) Connect() error {
	conn, err := amqp.Dial(c.cfg.RabbitURL)
	if err != nil {
		return fmt.Errorf("rabbit dial failed: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("open channel failed: %w", err)
	}

	args := amqp.Table{}
	if c.cfg.UseDLX {
		args["x-dead-letter-exchange"] = c.cfg.DLXName
	}

	q, err := ch.QueueDeclare(c.cfg.Queue, true, false, false, false, args)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf("declare queue failed: %w", err)
	}

	if err := ch.ExchangeDeclare(c.cfg.Exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf("declare exchange %s failed: %w", c.cfg.Exchange, err)
	}
	for _, key := range c.cfg.Bindings {
		if err := ch.QueueBind(q.Name, key, c.cfg.Exchange, false, nil); err != nil {
			_ = ch.Close()
			_ = conn.Close()
			return fmt.Errorf("bind queue key=%s failed: %w", key, err)
		}
	}

	if c.cfg.UseDLX {
		if err := ch.ExchangeDeclare(c.cfg.DLXName, "topic", true, false, false, false, nil); err != nil {
			_ = ch.Close()
			_ = conn.Close()
			return fmt.Errorf("declare dlx failed: %w", err)
		}
		if _, err := ch.QueueDeclare(c.cfg.DLXQueue, true, false, false, false, nil); err != nil {
			_ = ch.Close()
			_ = conn.Close()
			return fmt.Errorf("declare dlq failed: %w", err)
		}
		if err := ch.QueueBind(c.cfg.DLXQueue, "#", c.cfg.DLXName, false, nil); err != nil {
			_ = ch.Close()
			_ = conn.Close()
			return fmt.Errorf("bind dlq failed: %w", err)
		}
	}

	if c.cfg.Prefetch <= 0 {
		c.cfg.Prefetch = 8
	}
	if err := ch.Qos(c.cfg.Prefetch, 0, false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf("set qos failed: %w", err)
	}

	c.conn = conn
	c.ch = ch
	return nil
}

func (c *Consumer) Close() {
	if c.ch != nil {
		_ = c.ch.Close()
	}
	if c.conn != nil {
		_ = c.conn.Close()
	}
}

func (c *Consumer) Run(ctx context.Context) error {
	msgs, err := c.ch.ConsumeWithContext(ctx, c.cfg.Queue, c.cfg.ServiceName, false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume failed: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return nil
			}
			if err := c.handleDelivery(d); err != nil {
				c.logger.Error("handle delivery failed",
					zap.String("routing_key", d.RoutingKey),
					zap.Error(err))
				_ = d.Nack(false, true)
				continue
			}
			_ = d.Ack(false)
		}
	}
}

func (c *Consumer) handleDelivery(d amqp.Delivery) error {
	switch d.RoutingKey {
	case events.RKBookingRequested:
		ev, err := events.MustUnmarshal[events.BookingRequested](d.Body)
		if err != nil {
			return err
		}
		return c.notifier.Notify("New Booking Request",
			fmt.Sprintf("Booking %s for property %s, moving in %s, ₹%.0f.",
				ev.BookingID, ev.PropertyID, humanDate(ev.MoveIn), ev.Amount))

	case events.RKBookingConfirmed:
		ev, err := events.MustUnmarshal[events.BookingDecided](d.Body)
		if err != nil {
			return err
		}
		return c.notifier.Notify("Booking Confirmed",
			fmt.Sprintf("Booking %s has been confirmed.", ev.BookingID))

	case events.RKBookingRejected:
		ev, err := events.MustUnmarshal[events.BookingDecided](d.Body)
		if err != nil {
			return err
		}
		return c.notifier.Notify("Booking Rejected",
			fmt.Sprintf("Booking %s has been rejected.", ev.BookingID))

	case events.RKPaymentCreated:
		ev, err := events.MustUnmarshal[events.PaymentCreated](d.Body)
		if err != nil {
			return err
		}
		return c.notifier.Notify("Payment Requested",
			fmt.Sprintf("Payment of ₹%.0f requested for booking %s.", ev.Amount, ev.BookingID))

	case events.RKPaymentCompleted:
		ev, err := events.MustUnmarshal[events.PaymentCompleted](d.Body)
		if err != nil {
			return err
		}
		msg := fmt.Sprintf("Payment of ₹%.0f received for booking %s.", ev.Amount, ev.BookingID)
		if ev.TransactionID != "" {
			msg = fmt.Sprintf("%s Transaction: %s.", msg, ev.TransactionID)
		}
		return c.notifier.Notify("Payment Received", msg)

	default:
		c.logger.Warn("skip unknown routing key", zap.String("routing_key", d.RoutingKey))
	}
	return nil
}

func humanDate(unix int64) string {
	return time.Unix(unix, 0).Local().Format("2006-01-02")
}
