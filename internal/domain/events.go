package domain

import "context"

// Change events published to the catalog topic.
const (
	EventProductCreated = "product.created"
	EventProductUpdated = "product.updated"
	EventProductDeleted = "product.deleted"
)

// Wire envelope for every published event.
type EventEnvelope struct {
	Event     string `json:"event"`
	Data      any    `json:"data"`
	Timestamp string `json:"timestamp"` // RFC 3339 UTC
}

// Publisher is fire-and-forget: Emit only hands the message to the
// transport; delivery failures are logged by the implementation and
// never surface to business logic.
type Publisher interface {
	Emit(ctx context.Context, event string, payload any) error
	Ping(context.Context) error
	Close()
}
