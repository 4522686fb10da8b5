// Package event is a small synchronous publish/subscribe bus. The gesture
// registry publishes every claimed gesture on it, and consumers such as
// counters, recorders and printers subscribe by topic pattern.
//
// Gesture topics are "gesture.tap" and "gesture.swipe.<direction>";
// "gesture.swipe.*" selects every swipe and "gesture.**" everything.
//
//	bus := event.NewBus()
//	sub, err := bus.Subscribe("gesture.swipe.*",
//	    event.AsHandler(func(ctx context.Context, ev event.Event[gesture.Gesture]) error {
//	        fmt.Println(ev.Payload.Name())
//	        return nil
//	    }),
//	    event.WithPriority(event.PriorityHigh))
//
// Handlers run on the publishing goroutine. A handler that panics is
// recovered and reported as a *DeliveryError matching ErrHandlerPanic.
package event
