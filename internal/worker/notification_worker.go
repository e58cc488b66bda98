package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/matchday-travel/lead-service/internal/events"
)

const queueSize = 128

// Notifier consumes domain events off the request path.
type Notifier interface {
	Notify(ctx context.Context, event events.Event) error
}

// NotificationWorker moves event handling into a background goroutine
// so dispatching never blocks the request that published the event.
type NotificationWorker struct {
	notifier Notifier
	logger   *zap.Logger
	queue    chan events.Event
	done     chan struct{}
}

// NewNotificationWorker builds the worker and subscribes it to the
// event types it handles.
func NewNotificationWorker(dispatcher events.Dispatcher, notifier Notifier, logger *zap.Logger) *NotificationWorker {
	w := &NotificationWorker{
		notifier: notifier,
		logger:   logger,
		queue:    make(chan events.Event, queueSize),
		done:     make(chan struct{}),
	}
	for _, eventType := range []events.EventType{
		events.EventLeadCreated,
		events.EventLeadStatusChanged,
		events.EventQuoteGenerated,
	} {
		dispatcher.Subscribe(eventType, w.enqueue)
	}
	return w
}

// enqueue hands the event to the queue. When the queue is full the
// event is dropped with a warning rather than stalling the publisher.
func (w *NotificationWorker) enqueue(_ context.Context, event events.Event) error {
	select {
	case w.queue <- event:
	default:
		w.logger.Warn("notification queue full, dropping event",
			zap.String("event_type", string(event.Type)),
			zap.String("lead_id", event.LeadID))
	}
	return nil
}

// Start drains the queue until the context is cancelled.
func (w *NotificationWorker) Start(ctx context.Context) {
	go func() {
		defer close(w.done)
		for {
			select {
			case <-ctx.Done():
				return
			case event := <-w.queue:
				if err := w.notifier.Notify(ctx, event); err != nil {
					w.logger.Error("notification delivery failed",
						zap.String("event_type", string(event.Type)),
						zap.String("lead_id", event.LeadID),
						zap.Error(err))
				}
			}
		}
	}()
}

// Wait blocks until the worker goroutine has stopped.
func (w *NotificationWorker) Wait() {
	<-w.done
}
