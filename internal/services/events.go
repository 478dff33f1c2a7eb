package services

import (
	"errors"
	"time"

	"storerating/internal/metrics"
	"storerating/pkg/logger"
	"storerating/pkg/rabbitmq"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Routing keys of the domain events.
const (
	EventUserRegistered  = "user.registered"
	EventOwnerOnboarded  = "owner.onboarded"
	EventStoreCreated    = "store.created"
	EventRatingSubmitted = "rating.submitted"
)

// EventPublisher is the outbound side of the event producer.
type EventPublisher interface {
	Publish(routingKey string, payload interface{}) error
}

// Event is the envelope every domain event is published in.
type Event struct {
	ID         string      `json:"id"`
	Type       string      `json:"type"`
	OccurredAt time.Time   `json:"occurred_at"`
	Data       interface{} `json:"data"`
}

// publishEvent is fire-and-forget: failures are logged and counted but never
// returned to the caller.
func publishEvent(pub EventPublisher, routingKey string, data interface{}) {
	if pub == nil {
		metrics.RecordEventPublish(metrics.PublishSkipped)
		return
	}

	event := Event{
		ID:         uuid.NewString(),
		Type:       routingKey,
		OccurredAt: time.Now().UTC(),
		Data:       data,
	}
	err := pub.Publish(routingKey, event)
	switch {
	case err == nil:
		metrics.RecordEventPublish(metrics.PublishOK)
	case errors.Is(err, rabbitmq.ErrUnavailable):
		metrics.RecordEventPublish(metrics.PublishSkipped)
		logger.Log.Debug("Event dropped, broker unavailable", zap.String("event", routingKey))
	default:
		metrics.RecordEventPublish(metrics.PublishFailed)
		logger.Log.Warn("Event publish failed", zap.String("event", routingKey), zap.Error(err))
	}
}
