package worker

import (
	"go.uber.org/zap"
)

// Notifier is the delivery channel abstraction (email, SMS, push).
type Notifier interface {
	Notify(subject, message string) error
}

// LogNotifier writes notifications to the structured log. Stands in
// until a real delivery channel is configured.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(subject, message string) error {
	n.logger.Info("notification",
		zap.String("subject", subject),
		zap.String("message", message))
	return nil
}
