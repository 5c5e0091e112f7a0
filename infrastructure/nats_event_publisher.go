package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"coinbot/events"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const sourceService = "coinbot"

// EventEnvelope wraps every published event payload
type EventEnvelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	Timestamp     time.Time       `json:"timestamp"`
	SourceService string          `json:"source_service"`
	Payload       json.RawMessage `json:"payload"`
}

// PublishRecorder counts published messages
type PublishRecorder interface {
	RecordNATSMessagePublished(eventType string)
}

// NATSEventPublisher forwards committed domain events to NATS
type NATSEventPublisher struct {
	publisher     MessagePublisher
	subjectMapper *EventSubjectMapper
	recorder      PublishRecorder
	now           func() time.Time
}

// NewNATSEventPublisher creates a new NATS event publisher. recorder may be nil.
func NewNATSEventPublisher(publisher MessagePublisher, subjectMapper *EventSubjectMapper, recorder PublishRecorder) *NATSEventPublisher {
	return &NATSEventPublisher{
		publisher:     publisher,
		subjectMapper: subjectMapper,
		recorder:      recorder,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// Publish wraps the event in an envelope and publishes it to its subject
func (p *NATSEventPublisher) Publish(ctx context.Context, event events.Event) error {
	subject := p.subjectMapper.MapEventToSubject(event)

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	envelope := &EventEnvelope{
		EventID:       uuid.New().String(),
		EventType:     string(event.Type()),
		Timestamp:     p.now(),
		SourceService: sourceService,
		Payload:       payload,
	}

	envelopeData, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("failed to marshal event envelope: %w", err)
	}

	if err := p.publisher.Publish(ctx, subject, envelopeData); err != nil {
		// JetStream answers this way when no stream captures the subject
		if strings.Contains(err.Error(), "no response from stream") {
			return nil
		}
		return fmt.Errorf("failed to publish event to NATS: %w", err)
	}

	if p.recorder != nil {
		p.recorder.RecordNATSMessagePublished(string(event.Type()))
	}

	log.WithFields(log.Fields{
		"eventType": event.Type(),
		"eventId":   envelope.EventID,
		"subject":   subject,
	}).Debug("Successfully published event to NATS")
	return nil
}

// Bridge subscribes the publisher to every event type on the bus
func (p *NATSEventPublisher) Bridge(bus *events.Bus) {
	handler := func(ctx context.Context, event events.Event) {
		if err := p.Publish(ctx, event); err != nil {
			log.WithFields(log.Fields{
				"eventType": event.Type(),
				"error":     err,
			}).Error("Failed to forward event to NATS")
		}
	}

	for _, eventType := range []events.EventType{events.EventTypeBalanceChange, events.EventTypeRewardClaimed} {
		bus.Subscribe(eventType, handler)
	}
}

// EnsureEconomyEventStream ensures the economy stream exists with every published subject
func (c *NATSClient) EnsureEconomyEventStream(mapper *EventSubjectMapper) error {
	return c.EnsureStream(EconomyEventStream, mapper.GetAllSubjects())
}
