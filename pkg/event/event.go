// pkg/event/event.go
package event

import (
	"sync"
)

// Type represents the type of event
type Type string

// Event types published by the game systems
const (
	ShipSpawned         Type = "ship_spawned"
	EntityDespawned     Type = "entity_despawned"
	LaserFired          Type = "laser_fired"
	TransitionRequested Type = "transition_requested"
	StateEntered        Type = "state_entered"
	PhysicsToggled      Type = "physics_toggled"
	ExitRequested       Type = "exit_requested"
)

// Event is the base interface for all events
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    interface{}
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// Handler is a function that handles events
type Handler func(Event)

// Subscription identifies a registered handler. Cancel removes it.
type Subscription struct {
	ID     uint64
	Cancel func()
}

type registration struct {
	id      uint64
	handler Handler
}

// Bus manages event subscriptions and dispatching
type Bus struct {
	handlers map[Type][]registration
	nextID   uint64
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]registration),
		nextID:   1,
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType Type, handler Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[eventType] = append(b.handlers[eventType], registration{id: id, handler: handler})

	var once sync.Once
	return &Subscription{
		ID: id,
		Cancel: func() {
			once.Do(func() { b.unsubscribe(eventType, id) })
		},
	}
}

func (b *Bus) unsubscribe(eventType Type, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	regs := b.handlers[eventType]
	for i, reg := range regs {
		if reg.id == id {
			b.handlers[eventType] = append(regs[:i:i], regs[i+1:]...)
			return
		}
	}
}

// Publish sends an event to all subscribed handlers. Handlers run on the
// caller's goroutine, in subscription order.
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	regs := append([]registration(nil), b.handlers[event.GetType()]...)
	b.mu.RUnlock()

	for _, reg := range regs {
		reg.handler(event)
	}
}

// Specific event implementations

// EntityEvent carries the id of the entity an event concerns
type EntityEvent struct {
	BaseEvent
	EntityID uint64
}

// NewEntityEvent creates a new entity event
func NewEntityEvent(eventType Type, source interface{}, entityID uint64) *EntityEvent {
	return &EntityEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		EntityID: entityID,
	}
}

// StateEvent describes a game state change. From is empty when the game had
// no state yet.
type StateEvent struct {
	BaseEvent
	From string
	To   string
}

// NewStateEvent creates a new state event
func NewStateEvent(eventType Type, source interface{}, from, to string) *StateEvent {
	return &StateEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		From: from,
		To:   to,
	}
}

// PhysicsEvent reports the new value of the physics activity flag
type PhysicsEvent struct {
	BaseEvent
	Active bool
}

// NewPhysicsEvent creates a new physics toggle event
func NewPhysicsEvent(source interface{}, active bool) *PhysicsEvent {
	return &PhysicsEvent{
		BaseEvent: BaseEvent{
			EventType: PhysicsToggled,
			Source:    source,
		},
		Active: active,
	}
}

// NewExitEvent creates an application exit request
func NewExitEvent(source interface{}) *BaseEvent {
	return &BaseEvent{
		EventType: ExitRequested,
		Source:    source,
	}
}
