package notify

import (
	"context"
	"log/slog"
)

// LogSink writes notifications to the log instead of a broker. Used in
// dev mode when no RabbitMQ is available.
type LogSink struct {
	logger *slog.Logger
}

// NewLogSink creates a log-backed sink.
func NewLogSink(logger *slog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

// Send logs the notification and always succeeds.
func (s *LogSink) Send(ctx context.Context, channel, destination, message string) error {
	s.logger.Info("notification",
		"channel", channel,
		"destination", destination,
		"message", message,
	)
	return nil
}
