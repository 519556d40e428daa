package clickhouse

import (
	"context"
	"time"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Metrics interface {
		Observe(operation string, err error, started time.Time)
		ObserveRows(operation string, rows int)
	}

	// Conn is the subset of the ClickHouse connection the archive needs.
	Conn interface {
		PrepareBatch(ctx context.Context, query string) (Batch, error)
		Close() error
	}

	// Batch is a prepared insert batch.
	Batch interface {
		Append(v ...any) error
		Send() error
		Abort() error
	}
)
