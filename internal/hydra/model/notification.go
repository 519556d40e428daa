package model

import "time"

// DeliveryStatus is the outcome of one notification send.
type DeliveryStatus string

var (
	DeliveryDelivered   DeliveryStatus = "delivered"
	DeliveryRateLimited DeliveryStatus = "rate_limited"
	DeliveryForbidden   DeliveryStatus = "forbidden"
	DeliveryFailed      DeliveryStatus = "failed"
)

// Notification is the archived record of a delivery attempt.
type Notification struct {
	EventID   string
	Event     EventKind
	Height    uint64
	BlockHash string
	Address   string
	UserID    int64
	ChatID    int64
	Sink      string
	Status    DeliveryStatus
	Text      string
	CreatedAt time.Time
}
