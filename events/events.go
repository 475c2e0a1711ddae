package events

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypePlayerJoined  EventType = "player_joined"
	EventTypeMatchRecorded EventType = "match_recorded"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// PlayerJoinedEvent is emitted when a player is added to the bottom of the ladder
type PlayerJoinedEvent struct {
	Identity    string `json:"identity"`
	DisplayName string `json:"display_name"`
	Rank        int    `json:"rank"`
}

func (e PlayerJoinedEvent) Type() EventType {
	return EventTypePlayerJoined
}

// MatchRecordedEvent is emitted after a match result is committed
type MatchRecordedEvent struct {
	HistoryID       int64  `json:"history_id"`
	Challenger      string `json:"challenger"`
	Defender        string `json:"defender"`
	ChallengerScore int    `json:"challenger_score"`
	DefenderScore   int    `json:"defender_score"`
	ChallengerRank  int    `json:"challenger_rank"`
	DefenderRank    int    `json:"defender_rank"`
	IsLadderGame    bool   `json:"is_ladder_game"`
	RanksSwapped    bool   `json:"ranks_swapped"`
	ChallengerNews  string `json:"challenger_news"`
	DefenderNews    string `json:"defender_news"`
}

func (e MatchRecordedEvent) Type() EventType {
	return EventTypeMatchRecorded
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

	b.handlers[eventType] = append(b.handlers[eventType], handler)

	log.WithFields(log.Fields{
		"eventType":    eventType,
		"handlerCount": len(b.handlers[eventType]),
	}).Debug("Subscribed handler to event type")
}

// SubscribeAll adds a handler for every known event type
func (b *Bus) SubscribeAll(handler Handler) {
	for _, eventType := range []EventType{EventTypePlayerJoined, EventTypeMatchRecorded} {
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
	}).Debug("Emitting event to handlers")

	// Handlers run asynchronously so a slow consumer never blocks a commit
	for i, handler := range handlers {
		go func(h Handler, handlerIndex int) {
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

// TransactionalBus holds events raised inside a unit of work until the
// transaction commits.
type TransactionalBus struct {
	real    *Bus
	pending []Event
}

func NewTransactionalBus(real *Bus) *TransactionalBus {
	return &TransactionalBus{real: real}
}

func (b *TransactionalBus) Publish(e Event) {
	log.WithFields(log.Fields{
		"eventType":    e.Type(),
		"pendingCount": len(b.pending),
	}).Debug("Adding event to transactional bus pending queue")
	b.pending = append(b.pending, e)
}

// Flush is called after a successful commit
func (b *TransactionalBus) Flush(ctx context.Context) error {
	log.WithField("pendingEventCount", len(b.pending)).Debug("Flushing pending events")

	// Handlers must outlive the transaction's context
	eventCtx := context.WithoutCancel(ctx)

	for _, ev := range b.pending {
		b.real.Emit(eventCtx, ev)
	}
	b.pending = nil
	return nil
}

// Discard is called after a rollback
func (b *TransactionalBus) Discard() {
	b.pending = nil
}

// Pending returns the number of events waiting for Flush
func (b *TransactionalBus) Pending() int {
	return len(b.pending)
}
