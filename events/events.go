package events

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"

	"starosta/models"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeLevelUp            EventType = "level_up"
	EventTypeSpamBlocked        EventType = "spam_blocked"
	EventTypeBoosterPurchased   EventType = "booster_purchased"
	EventTypeSuggestionResolved EventType = "suggestion_resolved"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// LevelUpEvent is emitted when a member crosses one or more XP thresholds.
type LevelUpEvent struct {
	UserID    string
	GuildID   string
	ChannelID string // empty for voice level-ups; delivery picks the system channel
	NewLevel  int64
	FromVoice bool
}

func (e LevelUpEvent) Type() EventType {
	return EventTypeLevelUp
}

// SpamBlockedEvent is emitted when the anti-spam limiter punishes a member.
type SpamBlockedEvent struct {
	UserID       string
	GuildID      string
	ChannelID    string
	BlockedUntil int64 // unix milliseconds
}

func (e SpamBlockedEvent) Type() EventType {
	return EventTypeSpamBlocked
}

// BoosterPurchasedEvent is emitted after a successful booster purchase.
type BoosterPurchasedEvent struct {
	UserID string
	Tier   string
	Until  int64
}

func (e BoosterPurchasedEvent) Type() EventType {
	return EventTypeBoosterPurchased
}

// SuggestionResolvedEvent is emitted when a suggestion reaches a terminal
// status and leaves the active set.
type SuggestionResolvedEvent struct {
	MessageID string
	ChannelID string
	Status    models.SuggestionStatus
}

func (e SuggestionResolvedEvent) Type() EventType {
	return EventTypeSuggestionResolved
}

// Handler is a function that handles events
type Handler func(ctx context.Context, event Event)

// Bus manages event subscriptions and dispatching. Engines emit after their
// critical sections; subscribers own outbound delivery.
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
// asynchronously so emitters never block on platform I/O.
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
