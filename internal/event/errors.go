package event

import (
	"errors"
	"fmt"

	"github.com/dshills/touchgesture/internal/event/topic"
)

// Bus errors.
var (
	ErrInvalidEvent         = errors.New("event has no topic")
	ErrInvalidTopic         = errors.New("invalid topic")
	ErrNilHandler           = errors.New("handler cannot be nil")
	ErrInvalidSubscription  = errors.New("invalid subscription")
	ErrSubscriptionNotFound = errors.New("subscription not found")

	// ErrHandlerPanic matches a DeliveryError for a handler that panicked.
	ErrHandlerPanic = errors.New("handler panicked")
)

// DeliveryError reports a handler that returned an error or panicked.
type DeliveryError struct {
	Subscription string
	Topic        topic.Topic

	// Err is the handler's error. It is nil when the handler panicked.
	Err error
	// Recovered is the panic value.
	Recovered any
}

func (e *DeliveryError) Error() string {
	if e.Recovered != nil {
		return fmt.Sprintf("%s: subscriber %s panicked: %v", e.Topic, e.Subscription, e.Recovered)
	}
	return fmt.Sprintf("%s: subscriber %s: %v", e.Topic, e.Subscription, e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}

func (e *DeliveryError) Is(target error) bool {
	return target == ErrHandlerPanic && e.Recovered != nil
}
