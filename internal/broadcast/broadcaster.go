package broadcast

import (
	"context"

	"github.com/memearena/arena/internal/domain"
)

// Broadcaster fans out arena events to all connected observers. Delivery is
// fire-and-forget: a failed publish is logged, never retried, and never blocks
// a state transition.
//
//go:generate mockgen -source=broadcaster.go -destination=../mocks/broadcaster.go -package=mocks -mock_names=Broadcaster=MockBroadcaster
type Broadcaster interface {
	// Publish emits an event of the given type with the payload
	Publish(ctx context.Context, eventType domain.EventType, data interface{}) error
	// Close releases the underlying connection
	Close()
}
