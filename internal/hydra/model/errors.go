// Package model defines domain models shared by the hydra watcher components.
package model

import "errors"

var (
	// ErrInvalidAddress reports an address that failed length, hex or node validation.
	ErrInvalidAddress = errors.New("invalid address")
	// ErrNotFound reports a lookup that matched no stored row.
	ErrNotFound = errors.New("not found")
)
