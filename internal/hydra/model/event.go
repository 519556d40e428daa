package model

import (
	"time"

	"github.com/google/uuid"
)

// EventKind tells block creation from reward maturity.
type EventKind string

var (
	EventCreate EventKind = "create"
	EventMature EventKind = "mature"
)

// AddressDelta is the per-address state change carried by a block event.
// PrevBlockAt is set on mined deltas and holds the time of the previous block
// the address mined.
type AddressDelta struct {
	Address     AddressRef  `json:"address"`
	Mined       bool        `json:"mined"`
	InfoOld     AccountInfo `json:"infoOld"`
	InfoNew     AccountInfo `json:"infoNew"`
	PrevBlockAt *time.Time  `json:"prevBlockAt,omitempty"`
}

// BlockEvent is one feed message. ID is derived from the kind and block hash,
// so redeliveries of the same event share it.
type BlockEvent struct {
	ID     string         `json:"eventId"`
	Kind   EventKind      `json:"event"`
	Block  Block          `json:"block"`
	Deltas []AddressDelta `json:"deltas"`
}

// NewBlockEvent builds an event with its deterministic ID.
func NewBlockEvent(kind EventKind, block Block, deltas []AddressDelta) BlockEvent {
	return BlockEvent{
		ID:     EventID(kind, block.Hash),
		Kind:   kind,
		Block:  block,
		Deltas: deltas,
	}
}

// EventID names the event of kind for the block with hash.
func EventID(kind EventKind, hash string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(string(kind)+":"+hash)).String()
}
