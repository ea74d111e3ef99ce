package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"warehouse-service/internal/models"

	"github.com/segmentio/kafka-go"
)

// EventPublisher handles publishing warehouse domain events
type EventPublisher struct {
	producer *Producer
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher(producer *Producer) *EventPublisher {
	return &EventPublisher{producer: producer}
}

// PublishOrderCreated publishes OrderCreated event
func (ep *EventPublisher) PublishOrderCreated(ctx context.Context, event *models.OrderCreatedEvent) error {
	key := fmt.Sprintf("order-%d", event.OrderID)
	return ep.producer.PublishEvent(ctx, key, event)
}

// PublishOrderDeleted publishes OrderDeleted event
func (ep *EventPublisher) PublishOrderDeleted(ctx context.Context, event *models.OrderDeletedEvent) error {
	key := fmt.Sprintf("order-%d", event.OrderID)
	return ep.producer.PublishEvent(ctx, key, event)
}

// PublishOrderItemChanged publishes OrderItemChanged event
func (ep *EventPublisher) PublishOrderItemChanged(ctx context.Context, event *models.OrderItemChangedEvent) error {
	key := fmt.Sprintf("order-%d", event.OrderID)
	return ep.producer.PublishEvent(ctx, key, event)
}

// PublishOrderTotalRefreshed publishes OrderTotalRefreshed event
func (ep *EventPublisher) PublishOrderTotalRefreshed(ctx context.Context, event *models.OrderTotalRefreshedEvent) error {
	key := fmt.Sprintf("order-%d", event.OrderID)
	return ep.producer.PublishEvent(ctx, key, event)
}

// PublishSupplierDeactivated publishes SupplierDeactivated event
func (ep *EventPublisher) PublishSupplierDeactivated(ctx context.Context, event *models.SupplierDeactivatedEvent) error {
	key := fmt.Sprintf("supplier-%d", event.SupplierID)
	return ep.producer.PublishEvent(ctx, key, event)
}

// EventHandler routes incoming warehouse events
type EventHandler struct {
	onAny func(context.Context, models.BaseEvent, []byte) error
}

// NewEventHandler creates a new event handler
func NewEventHandler() *EventHandler {
	return &EventHandler{}
}

// OnAny registers a handler invoked for every decodable warehouse event,
// with the envelope and the raw payload.
func (eh *EventHandler) OnAny(handler func(context.Context, models.BaseEvent, []byte) error) {
	eh.onAny = handler
}

// HandleMessage decodes the event envelope and dispatches it
func (eh *EventHandler) HandleMessage(ctx context.Context, msg kafka.Message) error {
	var baseEvent models.BaseEvent
	if err := json.Unmarshal(msg.Value, &baseEvent); err != nil {
		return fmt.Errorf("failed to unmarshal base event: %w", err)
	}

	switch baseEvent.EventType {
	case models.EventTypeOrderCreated,
		models.EventTypeOrderDeleted,
		models.EventTypeOrderItemChanged,
		models.EventTypeOrderTotalRefreshed,
		models.EventTypeSupplierDeactivated:
		if eh.onAny != nil {
			return eh.onAny(ctx, baseEvent, msg.Value)
		}

	default:
		log.Printf("Unhandled event type: %s", baseEvent.EventType)
	}

	return nil
}
