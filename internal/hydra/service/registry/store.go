package registry

import (
	"context"

	"github.com/goodnatureofminers/hydrawatch/internal/hydra/repository/postgres"
)

type postgresStore struct {
	*postgres.Repository
}

// NewPostgresStore exposes repo as a Store.
func NewPostgresStore(repo *postgres.Repository) Store {
	return postgresStore{Repository: repo}
}

func (s postgresStore) InTx(ctx context.Context, fn func(tx Store) error) error {
	return s.Repository.InTx(ctx, func(tx *postgres.Repository) error {
		return fn(postgresStore{Repository: tx})
	})
}
