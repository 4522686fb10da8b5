package gesture

import (
	"context"

	"github.com/dshills/touchgesture/internal/event"
	"github.com/dshills/touchgesture/internal/event/topic"
)

// TopicRoot is the parent topic of every gesture event.
const TopicRoot topic.Topic = "gesture"

// Publisher receives every gesture that claimed a dispatch chain.
type Publisher interface {
	PublishGesture(ctx context.Context, g *Gesture) error
}

// PublisherFunc adapts a function to Publisher.
type PublisherFunc func(ctx context.Context, g *Gesture) error

// PublishGesture implements Publisher.
func (f PublisherFunc) PublishGesture(ctx context.Context, g *Gesture) error {
	return f(ctx, g)
}

// TopicFor returns the bus topic of kind: "gesture.tap" or
// "gesture.swipe.<direction>".
func TopicFor(kind Kind) topic.Topic {
	if kind.IsSwipe() {
		return TopicRoot.Child("swipe").Child(kind.Direction().String())
	}
	return TopicRoot.Child(kind.EventName())
}

// BusPublisher publishes gestures as event.Event[Gesture] on a bus.
type BusPublisher struct {
	Bus    *event.Bus
	Source string
}

// NewBusPublisher creates a publisher for bus.
func NewBusPublisher(bus *event.Bus) *BusPublisher {
	return &BusPublisher{Bus: bus, Source: "gesture"}
}

// PublishGesture implements Publisher. The payload is a copy of g.
func (p *BusPublisher) PublishGesture(ctx context.Context, g *Gesture) error {
	return p.Bus.Publish(ctx, event.NewEvent(TopicFor(g.Kind), *g, p.Source))
}
