package shared

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Dispatcher sends notifications fire-and-forget. Failures are logged and never reach the caller.
type Dispatcher struct {
	notifier Notifier
	logger   *slog.Logger
	timeout  time.Duration
	wg       sync.WaitGroup
}

func NewDispatcher(notifier Notifier, logger *slog.Logger, timeout time.Duration) *Dispatcher {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Dispatcher{
		notifier: notifier,
		logger:   logger,
		timeout:  timeout,
	}
}

// Dispatch detaches from ctx cancellation so an aborted HTTP request does not drop the event.
func (d *Dispatcher) Dispatch(ctx context.Context, event NotificationEvent) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				d.logger.Error("notifier panicked", "type", event.Type, "panic", r)
			}
		}()

		sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.timeout)
		defer cancel()

		if err := d.notifier.Notify(sendCtx, event); err != nil {
			d.logger.Warn("notification dropped",
				"type", event.Type,
				"key", event.Key(),
				"error", err.Error())
			return
		}
		d.logger.Debug("notification sent", "type", event.Type, "key", event.Key())
	}()
}

// Wait blocks until every in-flight dispatch finished.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// WaitContext is Wait bounded by ctx. Dispatches still running when ctx ends keep going in
// the background.
func (d *Dispatcher) WaitContext(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
