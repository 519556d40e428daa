package tracker

import "context"

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Chain runs read-only contract calls.
	Chain interface {
		CallReadOnly(ctx context.Context, hexAddr, data string) (succeeded bool, output string, err error)
	}
)
