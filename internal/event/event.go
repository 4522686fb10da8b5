package event

import (
	"time"

	"github.com/google/uuid"

	"github.com/dshills/touchgesture/internal/event/topic"
)

// Event carries a payload of type T on a topic. Handlers receive it by
// value.
type Event[T any] struct {
	Topic   topic.Topic
	Payload T

	// ID is a random UUID assigned by NewEvent.
	ID     string
	Time   time.Time
	Source string
}

// NewEvent stamps payload with an ID and the current time.
func NewEvent[T any](t topic.Topic, payload T, source string) Event[T] {
	return Event[T]{
		Topic:   t,
		Payload: payload,
		ID:      uuid.NewString(),
		Time:    time.Now(),
		Source:  source,
	}
}

// EventTopic implements Routable.
func (e Event[T]) EventTopic() topic.Topic {
	return e.Topic
}

// Routable is anything the bus can publish.
type Routable interface {
	EventTopic() topic.Topic
}
