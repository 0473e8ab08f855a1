package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Watermill topics for item lifecycle events.
const (
	TopicItemCreated = "item.created"
	TopicItemUpdated = "item.updated"
	TopicItemDeleted = "item.deleted"
)

// Topics lists every item topic, in the order subscribers are registered.
var Topics = []string{TopicItemCreated, TopicItemUpdated, TopicItemDeleted}

// SchemaVersion is the payload version stamped on every item event.
// Increment on breaking changes.
const SchemaVersion = 1

// ItemCreatedEvent is published after a new Item is persisted.
type ItemCreatedEvent struct {
	EventID     uuid.UUID       `json:"event_id"` // Unique publish-time identifier for deduplication
	Version     int             `json:"version"`
	ItemID      uuid.UUID       `json:"item_id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	CreatedDate time.Time       `json:"created_date"`
}

// ItemUpdatedEvent is published after an Item's name and price are replaced.
type ItemUpdatedEvent struct {
	EventID    uuid.UUID       `json:"event_id"`
	Version    int             `json:"version"`
	ItemID     uuid.UUID       `json:"item_id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// ItemDeletedEvent is published after an Item is removed.
type ItemDeletedEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	Version    int       `json:"version"`
	ItemID     uuid.UUID `json:"item_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
