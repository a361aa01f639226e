package notifier

import (
	"context"
	"log/slog"

	"availability-engine/internal/usecase/shared"
)

// LogNotifier writes events to the log. It is used when no broker is configured.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(_ context.Context, event shared.NotificationEvent) error {
	n.logger.Info("notification",
		"type", event.Type,
		"key", event.Key(),
		"recipient", event.RecipientEmail,
		"start_date", event.StartDate,
		"end_date", event.EndDate)
	return nil
}
