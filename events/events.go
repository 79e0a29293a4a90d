package events

import (
	"context"
	"sync"

	"levelbot/games"

	log "github.com/sirupsen/logrus"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeUserCreated   EventType = "user_created"
	EventTypeLevelUp       EventType = "level_up"
	EventTypeWagerResolved EventType = "wager_resolved"
	EventTypeCoinsAwarded  EventType = "coins_awarded"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// UserCreatedEvent fires when a ledger entry is created for a new user.
type UserCreatedEvent struct {
	Username string
}

func (e UserCreatedEvent) Type() EventType {
	return EventTypeUserCreated
}

// LevelUpEvent fires when an XP award crosses a level threshold. ChannelID
// is the channel the triggering activity happened in, so the bot can
// announce there.
type LevelUpEvent struct {
	Username  string
	NewLevel  int64
	ChannelID string
}

func (e LevelUpEvent) Type() EventType {
	return EventTypeLevelUp
}

// WagerResolvedEvent fires after a wager outcome has been applied to the
// ledger.
type WagerResolvedEvent struct {
	Username   string
	Outcome    games.Outcome
	NewBalance int64
}

func (e WagerResolvedEvent) Type() EventType {
	return EventTypeWagerResolved
}

// CoinsAwardedEvent fires when coins are granted outside a wager.
type CoinsAwardedEvent struct {
	Username   string
	Amount     int64
	NewBalance int64
}

func (e CoinsAwardedEvent) Type() EventType {
	return EventTypeCoinsAwarded
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

// Emit publishes an event to all registered handlers. Handlers run
// asynchronously so slow renderers never block the economy path.
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	for _, handler := range handlers {
		go func(h Handler) {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(log.Fields{
						"eventType": event.Type(),
						"panic":     r,
					}).Error("Event handler panicked")
				}
			}()
			h(ctx, event)
		}(handler)
	}
}

// TransactionalBus stashes events published during a unit of work and
// flushes them to the real bus only after the transaction commits, so a
// rolled-back level-up is never announced.
type TransactionalBus struct {
	real    *Bus
	pending []Event
}

func NewTransactionalBus(real *Bus) *TransactionalBus {
	return &TransactionalBus{real: real}
}

func (b *TransactionalBus) Publish(e Event) {
	b.pending = append(b.pending, e)
}

// Flush is called after a successful commit. Events are emitted on a
// background context because they outlive the transaction's lifetime.
func (b *TransactionalBus) Flush() {
	ctx := context.Background()
	for _, ev := range b.pending {
		b.real.Emit(ctx, ev)
	}
	b.pending = nil
}

// Discard drops pending events after a rollback.
func (b *TransactionalBus) Discard() {
	b.pending = nil
}
