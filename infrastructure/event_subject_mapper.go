package infrastructure

import (
	"fmt"

	"ladder/events"
)

// LadderEventStream is the JetStream stream holding every ladder subject
const LadderEventStream = "ladder_events"

// EventSubjectMapper handles mapping between domain events and NATS subjects
type EventSubjectMapper struct{}

// NewEventSubjectMapper creates a new event subject mapper
func NewEventSubjectMapper() *EventSubjectMapper {
	return &EventSubjectMapper{}
}

// MapEventToSubject converts a domain event to its corresponding NATS subject
func (m *EventSubjectMapper) MapEventToSubject(event events.Event) string {
	switch event.Type() {
	case events.EventTypePlayerJoined:
		return "ladder.players.joined"
	case events.EventTypeMatchRecorded:
		return "ladder.matches.recorded"
	default:
		return fmt.Sprintf("ladder.unknown.%s", event.Type())
	}
}

// GetAllSubjects returns all subjects that this service publishes to
func (m *EventSubjectMapper) GetAllSubjects() []string {
	return []string{
		"ladder.players.joined",
		"ladder.matches.recorded",
	}
}
