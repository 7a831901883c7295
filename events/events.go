package events

import (
	"context"
	"sync"

	"tourney/models"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypePlayerCreated       EventType = "player_created"
	EventTypeBalanceChange       EventType = "balance_change"
	EventTypeTournamentAnnounced EventType = "tournament_announced"
	EventTypeWagerPlaced         EventType = "wager_placed"
	EventTypeTournamentFinished  EventType = "tournament_finished"
	EventTypeTournamentCanceled  EventType = "tournament_canceled"
)

// AllEventTypes lists every event type, in the order subscribers register for them
var AllEventTypes = []EventType{
	EventTypePlayerCreated,
	EventTypeBalanceChange,
	EventTypeTournamentAnnounced,
	EventTypeWagerPlaced,
	EventTypeTournamentFinished,
	EventTypeTournamentCanceled,
}

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// PlayerCreatedEvent represents a new player registration
type PlayerCreatedEvent struct {
	PlayerID      string          `json:"playerId"`
	InitialPoints decimal.Decimal `json:"initialPoints"`
}

func (e PlayerCreatedEvent) Type() EventType {
	return EventTypePlayerCreated
}

// BalanceChangeEvent represents a change to a player's raw points
type BalanceChangeEvent struct {
	PlayerID     string                `json:"playerId"`
	TournamentID string                `json:"tournamentId,omitempty"`
	OldPoints    decimal.Decimal       `json:"oldPoints"`
	NewPoints    decimal.Decimal       `json:"newPoints"`
	ChangeAmount decimal.Decimal       `json:"changeAmount"`
	Reason       models.TransferReason `json:"reason"`
}

func (e BalanceChangeEvent) Type() EventType {
	return EventTypeBalanceChange
}

// TournamentAnnouncedEvent represents a newly opened tournament
type TournamentAnnouncedEvent struct {
	TournamentID string          `json:"tournamentId"`
	Deposit      decimal.Decimal `json:"deposit"`
}

func (e TournamentAnnouncedEvent) Type() EventType {
	return EventTypeTournamentAnnounced
}

// WagerPlacedEvent represents a player joining a tournament
type WagerPlacedEvent struct {
	TournamentID string          `json:"tournamentId"`
	PlayerID     string          `json:"playerId"`
	BetSum       decimal.Decimal `json:"betSum"`
	BackerIDs    []string        `json:"backerIds,omitempty"`
}

func (e WagerPlacedEvent) Type() EventType {
	return EventTypeWagerPlaced
}

// TournamentFinishedEvent represents a settled tournament
type TournamentFinishedEvent struct {
	TournamentID   string `json:"tournamentId"`
	WinnerPlayerID string `json:"winnerPlayerId"`
	Participants   int    `json:"participants"`
}

func (e TournamentFinishedEvent) Type() EventType {
	return EventTypeTournamentFinished
}

// TournamentCanceledEvent represents a canceled tournament
type TournamentCanceledEvent struct {
	TournamentID string `json:"tournamentId"`
}

func (e TournamentCanceledEvent) Type() EventType {
	return EventTypeTournamentCanceled
}

// Handler is a function that handles events
type Handler func(ctx context.Context, event Event)

// Bus manages event subscriptions and dispatching
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe adds a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.handlers[eventType] == nil {
		b.handlers[eventType] = make([]Handler, 0)
	}
	b.handlers[eventType] = append(b.handlers[eventType], handler)

	log.WithFields(log.Fields{
		"eventType":    eventType,
		"handlerCount": len(b.handlers[eventType]),
	}).Debug("Subscribed handler to event type on main event bus")
}

// SubscribeAll registers the handler for every known event type
func (b *Bus) SubscribeAll(handler Handler) {
	for _, eventType := range AllEventTypes {
		b.Subscribe(eventType, handler)
	}
}

// Emit publishes an event to all registered handlers
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	log.WithFields(log.Fields{
		"eventType":    event.Type(),
		"handlerCount": len(handlers),
	}).Debug("Emitting event to handlers on main event bus")

	for i, handler := range handlers {
		go func(h Handler, handlerIndex int) {
			log.WithFields(log.Fields{
				"eventType":    event.Type(),
				"handlerIndex": handlerIndex,
			}).Debug("Calling event handler")
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(log.Fields{
						"eventType":    event.Type(),
						"handlerIndex": handlerIndex,
						"panic":        r,
					}).Error("Event handler panicked")
				}
			}()
			h(ctx, event)
		}(handler, i)
	}
}

// TransactionalBus holds pending events for a unit of work and
// forwards them to the underlying bus once the transaction commits.
type TransactionalBus struct {
	real    *Bus
	pending []Event // stashed until Flush
}

// NewTransactionalBus creates a bus that buffers events until Flush
func NewTransactionalBus(real *Bus) *TransactionalBus {
	return &TransactionalBus{real: real}
}

// Publish queues an event until the unit of work commits
func (b *TransactionalBus) Publish(e Event) {
	log.WithFields(log.Fields{
		"eventType":    e.Type(),
		"pendingCount": len(b.pending),
	}).Debug("Adding event to transactional bus pending queue")
	b.pending = append(b.pending, e)
}

// Flush emits every pending event. Called after a successful commit.
func (b *TransactionalBus) Flush(ctx context.Context) error {
	log.WithFields(log.Fields{
		"pendingEventCount": len(b.pending),
	}).Debug("Flushing pending events to main event bus")

	// Handlers outlive the request, so they must not inherit its cancellation
	eventCtx := context.Background()

	for _, ev := range b.pending {
		log.WithFields(log.Fields{
			"eventType": ev.Type(),
		}).Debug("Emitting event to main event bus")
		b.real.Emit(eventCtx, ev)
	}
	b.pending = nil
	log.Debug("Transactional bus flushed")
	return nil
}

// Pending returns the number of queued events
func (b *TransactionalBus) Pending() int {
	return len(b.pending)
}

// Discard drops pending events. Called after a rollback.
func (b *TransactionalBus) Discard() {
	if len(b.pending) > 0 {
		log.WithField("discardedCount", len(b.pending)).Debug("Discarding pending events after rollback")
	}
	b.pending = nil
}
