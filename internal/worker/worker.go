package worker

import (
	"context"
	"log"

	"warehouse-service/internal/broker"
	"warehouse-service/internal/models"
	"warehouse-service/internal/store"
	"warehouse-service/internal/util"

	"go.uber.org/zap"
)

// AuditWorker consumes warehouse events and records them in the
// processed_events table, giving the warehouse an append-only audit
// trail of order and supplier activity.
type AuditWorker struct {
	consumer     *broker.Consumer
	eventHandler *broker.EventHandler
	store        *store.Store
	logger       *zap.Logger
}

// NewAuditWorker creates a new audit worker
func NewAuditWorker(consumer *broker.Consumer, st *store.Store) *AuditWorker {
	w := &AuditWorker{
		consumer: consumer,
		store:    st,
		logger:   util.GetLogger(),
	}

	eventHandler := broker.NewEventHandler()
	eventHandler.OnAny(w.recordEvent)
	w.eventHandler = eventHandler

	return w
}

// recordEvent marks an event processed, skipping events already seen so
// redelivery does not double-count.
func (w *AuditWorker) recordEvent(ctx context.Context, event models.BaseEvent, _ []byte) error {
	processed, err := w.store.IsEventProcessed(ctx, event.EventID)
	if err != nil {
		return err
	}
	if processed {
		w.logger.Debug("Skipping already processed event",
			zap.String("event_id", event.EventID))
		return nil
	}

	if err := w.store.MarkEventProcessed(ctx, event.EventID, event.EventType); err != nil {
		return err
	}

	util.AuditEventsProcessedTotal.WithLabelValues(event.EventType).Inc()
	w.logger.Info("Recorded warehouse event",
		zap.String("event_id", event.EventID),
		zap.String("event_type", event.EventType))
	return nil
}

// Start starts the worker
func (w *AuditWorker) Start(ctx context.Context) error {
	log.Println("Starting audit worker...")
	return w.consumer.StartConsuming(ctx, w.eventHandler.HandleMessage)
}

// Stop stops the worker
func (w *AuditWorker) Stop() error {
	log.Println("Stopping audit worker...")
	return w.consumer.Close()
}
