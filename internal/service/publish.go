package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/customer-care/internal/events"
)

// publishWithDefaults stamps id and timestamp before dispatching. Dispatch
// errors are ignored; notifications never fail the request that caused them.
func publishWithDefaults(ctx context.Context, dispatcher events.Dispatcher, event events.Event) {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = dispatcher.Publish(ctx, event)
}
