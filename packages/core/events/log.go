package events

import (
	"context"
	"log/slog"
)

// LogPublisher writes events to the logger. It is used when no broker is
// configured.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, event Event) error {
	p.logger.InfoContext(ctx, "ladder event",
		slog.String("type", event.Type),
		slog.Time("occurred_at", event.OccurredAt),
		slog.Any("data", event.Data),
	)
	return nil
}

func (p *LogPublisher) Close() error {
	return nil
}
