package pinhole

import (
	"github.com/akmonengine/pinhole/actor"
	"github.com/akmonengine/pinhole/camera"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	MOVE EventType = iota
	INTRINSICS_UPDATE
)

type EventType uint8

// Event interface - all events implement this
type Event interface {
	Type() EventType
}

// MoveEvent is sent after a move request has been applied to Body
type MoveEvent struct {
	Body     *actor.RigidBody
	Request  MoveRequest
	Movement mgl64.Mat4
}

func (e MoveEvent) Type() EventType { return MOVE }

// IntrinsicsEvent is sent after the intrinsics of Camera changed
type IntrinsicsEvent struct {
	Camera     *actor.RigidBody
	Previous   camera.Intrinsics
	Intrinsics camera.Intrinsics
}

func (e IntrinsicsEvent) Type() EventType { return INTRINSICS_UPDATE }

// EventListener - callback for events
type EventListener func(event Event)

// Events buffers the events of one scene call and sends them when it completes,
// so listeners always observe a fully updated scene
type Events struct {
	// Listeners by event type
	listeners map[EventType][]EventListener

	// Event buffer to send at flush
	buffer []Event
}

func NewEvents() Events {
	return Events{
		listeners: make(map[EventType][]EventListener),
		buffer:    make([]Event, 0, 8),
	}
}

// Subscribe adds a listener for an event type
func (e *Events) Subscribe(eventType EventType, listener EventListener) {
	if e.listeners == nil {
		e.listeners = make(map[EventType][]EventListener)
	}
	e.listeners[eventType] = append(e.listeners[eventType], listener)
}

func (e *Events) emit(event Event) {
	e.buffer = append(e.buffer, event)
}

// flush sends all buffered events and clears the buffer.
// A listener may call back into the scene: the events it causes are sent by
// its own flush, never redelivered by this one.
func (e *Events) flush() {
	events := e.buffer
	e.buffer = e.buffer[len(e.buffer):]

	for _, event := range events {
		if listeners, ok := e.listeners[event.Type()]; ok {
			for _, listener := range listeners {
				listener(event)
			}
		}
	}

	if len(e.buffer) == 0 {
		e.buffer = events[:0]
	}
}
