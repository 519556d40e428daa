package model

import "time"

// User is a subscriber identified by its external chat id.
type User struct {
	ID         int64
	ExternalID int64
	Config     Config
	Fiat       string
	CreatedAt  time.Time
}

// Subscription links a user to an address or token with an optional override.
type Subscription struct {
	User        User
	AddressID   int64
	Name        string
	Config      Config
	BlockCount  int64
	LastBlockAt *time.Time
}

// Subscriber is a subscription resolved for the address it follows.
type Subscriber struct {
	Address      AddressRef
	Subscription Subscription
}
