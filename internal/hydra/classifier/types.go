package classifier

import "context"

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Chain is the node surface used to classify addresses.
	Chain interface {
		Validate(ctx context.Context, native string) (canonical string, valid bool, err error)
		HexForm(ctx context.Context, native string) (string, error)
		NativeForm(ctx context.Context, hexAddr string) (string, error)
		CallReadOnly(ctx context.Context, hexAddr, data string) (succeeded bool, output string, err error)
	}
)
