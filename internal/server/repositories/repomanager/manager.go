// Package repomanager vends the user and store repositories behind one
// handle, together with transactions, schema migrations and shutdown.
package repomanager

import (
	"context"

	"github.com/dmitrijs2005/storehub/internal/server/repositories/stores"
	"github.com/dmitrijs2005/storehub/internal/server/repositories/users"
)

// TxFunc receives repositories bound to a single transaction.
type TxFunc func(ctx context.Context, users users.Repository, stores stores.Repository) error

type RepositoryManager interface {
	Users() users.Repository
	Stores() stores.Repository
	// WithinTx runs fn with repositories sharing one transaction; the
	// transaction commits iff fn returns nil.
	WithinTx(ctx context.Context, fn TxFunc) error
	RunMigrations(ctx context.Context) error
	Close() error
}

// New returns a PostgreSQL manager for a non-empty DSN and an in-memory
// manager otherwise.
func New(ctx context.Context, dsn string) (RepositoryManager, error) {
	if dsn == "" {
		return NewMemoryRepositoryManager(), nil
	}
	return NewPostgresRepositoryManager(ctx, dsn)
}
