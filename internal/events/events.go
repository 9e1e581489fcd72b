package events

import "time"

// Event is the envelope written to every topic.
type Event struct {
	Type       string    `json:"type"`
	EntityID   uint      `json:"entityId"`
	UserID     uint      `json:"userId,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
	Data       any       `json:"data,omitempty"`
}

const (
	BookCreated   = "book.created"
	BookUpdated   = "book.updated"
	BookDeleted   = "book.deleted"
	CartItemAdded = "cart.item_added"
	CartUpdated   = "cart.item_updated"
	CartRemoved   = "cart.item_removed"
	CartCleared   = "cart.cleared"
	OrderPlaced   = "order.placed"
	UserCreated   = "user.registered"
	UserUpdated   = "user.updated"
)
