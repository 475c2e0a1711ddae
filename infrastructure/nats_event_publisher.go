package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ladder/events"
	"ladder/infrastructure/observability"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const sourceService = "ladder"

// MessagePublisher is the transport the event publisher writes to
type MessagePublisher interface {
	Publish(ctx context.Context, subject, msgID string, data []byte) error
}

// EventEnvelope wraps every event sent over NATS
type EventEnvelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	Timestamp     time.Time       `json:"timestamp"`
	SourceService string          `json:"source_service"`
	Payload       json.RawMessage `json:"payload"`
}

// NATSEventPublisher forwards domain events to NATS subjects
type NATSEventPublisher struct {
	client        MessagePublisher
	subjectMapper *EventSubjectMapper
}

// NewNATSEventPublisher creates a new NATS event publisher
func NewNATSEventPublisher(client MessagePublisher, subjectMapper *EventSubjectMapper) *NATSEventPublisher {
	return &NATSEventPublisher{
		client:        client,
		subjectMapper: subjectMapper,
	}
}

// Publish wraps event in an envelope and publishes it on its subject
func (p *NATSEventPublisher) Publish(ctx context.Context, event events.Event) error {
	subject := p.subjectMapper.MapEventToSubject(event)

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	envelope := EventEnvelope{
		EventID:       uuid.New().String(),
		EventType:     string(event.Type()),
		Timestamp:     time.Now().UTC(),
		SourceService: sourceService,
		Payload:       payload,
	}

	data, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("failed to marshal event envelope: %w", err)
	}

	if err := p.client.Publish(ctx, subject, envelope.EventID, data); err != nil {
		return fmt.Errorf("failed to publish event to NATS: %w", err)
	}

	if metrics := observability.GetMetrics(); metrics != nil {
		metrics.RecordNATSMessagePublished(string(event.Type()))
	}

	log.WithFields(log.Fields{
		"eventType": event.Type(),
		"eventId":   envelope.EventID,
		"subject":   subject,
	}).Debug("Successfully published event to NATS")

	return nil
}

// Forward subscribes to every ladder event on bus and republishes it to NATS
func (p *NATSEventPublisher) Forward(bus *events.Bus) {
	bus.SubscribeAll(func(ctx context.Context, event events.Event) {
		if err := p.Publish(ctx, event); err != nil {
			log.WithError(err).WithField("eventType", event.Type()).Error("Failed to forward event to NATS")
		}
	})
}
