package notify

import (
	"context"
	"log/slog"
)

// LogSink writes notifications to the structured log. It is the default sink
// for development and never fails.
type LogSink struct {
	logger *slog.Logger
}

func NewLogSink(logger *slog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Send(ctx context.Context, recipient, subject, body string) error {
	s.logger.InfoContext(ctx, "notification",
		"recipient", recipient,
		"subject", subject,
		"body", body,
	)
	return nil
}
