package event

import "context"

// Priority orders the handlers of one event; lower runs first.
type Priority int

// Priorities used by the gesture consumers.
const (
	// PriorityCritical runs before anything else, e.g. counters.
	PriorityCritical Priority = 0
	// PriorityHigh is for UI reactions such as navigation.
	PriorityHigh Priority = 100
	// PriorityNormal is the default.
	PriorityNormal Priority = 200
	// PriorityLow is for recorders and printers that should see the
	// final state.
	PriorityLow Priority = 300
)

func (p Priority) String() string {
	switch {
	case p > PriorityNormal:
		return "low"
	case p > PriorityHigh:
		return "normal"
	case p > PriorityCritical:
		return "high"
	}
	return "critical"
}

// Handler receives published events.
type Handler interface {
	Handle(ctx context.Context, ev any) error
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, ev any) error

// Handle implements Handler.
func (f HandlerFunc) Handle(ctx context.Context, ev any) error {
	return f(ctx, ev)
}

// AsHandler returns a Handler that passes Event[T] values to fn and
// ignores events with other payload types.
func AsHandler[T any](fn func(ctx context.Context, ev Event[T]) error) Handler {
	return HandlerFunc(func(ctx context.Context, ev any) error {
		e, ok := ev.(Event[T])
		if !ok {
			return nil
		}
		return fn(ctx, e)
	})
}
