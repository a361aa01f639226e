//go:build unit

package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"availability-engine/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error { return nil }

func TestKafkaNotifier_Notify(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	holdID := uuid.New()
	event := shared.NotificationEvent{
		Type:           shared.EventHoldAccepted,
		HoldID:         &holdID,
		HoldeeName:     "Test Guide",
		RequesterName:  "Test Agency",
		RecipientEmail: "agency@example.com",
		StartDate:      "2025-06-01",
		EndDate:        "2025-06-03",
		OccurredAt:     time.Date(2025, 5, 21, 10, 0, 0, 0, time.UTC),
	}

	t.Run("success: keyed by hold id", func(t *testing.T) {
		w := &fakeWriter{}
		n := newKafkaNotifier(w, logger)

		require.NoError(t, n.Notify(context.Background(), event))
		require.Len(t, w.msgs, 1)

		msg := w.msgs[0]
		assert.Equal(t, holdID.String(), string(msg.Key))
		assert.Equal(t, event.OccurredAt, msg.Time)

		var header string
		for _, h := range msg.Headers {
			if h.Key == "event_type" {
				header = string(h.Value)
			}
		}
		assert.Equal(t, "hold.accepted", header)

		var decoded shared.NotificationEvent
		require.NoError(t, json.Unmarshal(msg.Value, &decoded))
		assert.Equal(t, event.RecipientEmail, decoded.RecipientEmail)
		assert.Equal(t, "2025-06-03", decoded.EndDate)
	})

	t.Run("error: broker failure is returned", func(t *testing.T) {
		n := newKafkaNotifier(&fakeWriter{err: errors.New("no brokers")}, logger)
		err := n.Notify(context.Background(), event)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "hold.accepted")
	})
}

func TestHeaderCarrier(t *testing.T) {
	c := &headerCarrier{}
	c.Set("traceparent", "a")
	c.Set("traceparent", "b")
	assert.Equal(t, "b", c.Get("traceparent"))
	assert.Equal(t, []string{"traceparent"}, c.Keys())
	assert.Empty(t, c.Get("missing"))
}
