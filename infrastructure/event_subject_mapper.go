package infrastructure

import (
	"fmt"

	"coinbot/events"
)

const (
	SubjectBalanceChanged = "economy.balance_changed"
	SubjectRewardClaimed  = "economy.reward_claimed"
)

// EventSubjectMapper handles mapping between domain events and NATS subjects
type EventSubjectMapper struct{}

// NewEventSubjectMapper creates a new event subject mapper
func NewEventSubjectMapper() *EventSubjectMapper {
	return &EventSubjectMapper{}
}

// MapEventToSubject converts a domain event to its corresponding NATS subject
func (m *EventSubjectMapper) MapEventToSubject(event events.Event) string {
	switch event.Type() {
	case events.EventTypeBalanceChange:
		return SubjectBalanceChanged
	case events.EventTypeRewardClaimed:
		return SubjectRewardClaimed
	default:
		return fmt.Sprintf("economy.unknown.%s", event.Type())
	}
}

// MapSubjectToEventType converts a NATS subject back to an event type
func (m *EventSubjectMapper) MapSubjectToEventType(subject string) events.EventType {
	switch subject {
	case SubjectBalanceChanged:
		return events.EventTypeBalanceChange
	case SubjectRewardClaimed:
		return events.EventTypeRewardClaimed
	default:
		return events.EventType(subject)
	}
}

// GetAllSubjects returns all subjects that this service publishes to
func (m *EventSubjectMapper) GetAllSubjects() []string {
	return []string{
		SubjectBalanceChanged,
		SubjectRewardClaimed,
	}
}
