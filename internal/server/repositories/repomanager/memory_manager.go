package repomanager

import (
	"context"

	"github.com/dmitrijs2005/storehub/internal/server/repositories/stores"
	"github.com/dmitrijs2005/storehub/internal/server/repositories/users"
)

// MemoryRepositoryManager serves in-memory repositories. It backs the server
// when no database is configured and most service tests.
type MemoryRepositoryManager struct {
	users  *users.MemoryRepository
	stores *stores.MemoryRepository
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{
		users:  users.NewMemoryRepository(),
		stores: stores.NewMemoryRepository(),
	}
}

func (m *MemoryRepositoryManager) Users() users.Repository   { return m.users }
func (m *MemoryRepositoryManager) Stores() stores.Repository { return m.stores }

// WithinTx runs fn against the shared repositories. Writes made before fn
// fails are not rolled back.
func (m *MemoryRepositoryManager) WithinTx(ctx context.Context, fn TxFunc) error {
	return fn(ctx, m.users, m.stores)
}

func (m *MemoryRepositoryManager) RunMigrations(context.Context) error { return nil }

func (m *MemoryRepositoryManager) Close() error { return nil }
