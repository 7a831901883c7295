package infrastructure

import (
	"fmt"

	"tourney/events"
)

// SubjectPrefix is the root of every subject this service publishes to
const SubjectPrefix = "tourney"

// EventSubjectMapper maps ledger events to NATS subjects
type EventSubjectMapper struct{}

// NewEventSubjectMapper creates a new event subject mapper
func NewEventSubjectMapper() *EventSubjectMapper {
	return &EventSubjectMapper{}
}

// MapEventToSubject converts an event to its NATS subject
func (m *EventSubjectMapper) MapEventToSubject(event events.Event) string {
	switch event.Type() {
	case events.EventTypePlayerCreated:
		return SubjectPrefix + ".players.created"
	case events.EventTypeBalanceChange:
		return SubjectPrefix + ".players.balance_changed"
	case events.EventTypeTournamentAnnounced:
		return SubjectPrefix + ".tournaments.announced"
	case events.EventTypeWagerPlaced:
		return SubjectPrefix + ".tournaments.wager_placed"
	case events.EventTypeTournamentFinished:
		return SubjectPrefix + ".tournaments.finished"
	case events.EventTypeTournamentCanceled:
		return SubjectPrefix + ".tournaments.canceled"
	default:
		return fmt.Sprintf("%s.unknown.%s", SubjectPrefix, event.Type())
	}
}

// StreamSubjects returns the subject filter for the ledger stream
func (m *EventSubjectMapper) StreamSubjects() []string {
	return []string{SubjectPrefix + ".>"}
}
