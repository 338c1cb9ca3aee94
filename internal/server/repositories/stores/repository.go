// Package stores persists store aggregates together with their nested item
// and review collections. Every write bumps the aggregate's version, which
// CompareAndSwap uses for optimistic concurrency control.
package stores

import (
	"context"

	"github.com/dmitrijs2005/storehub/internal/server/models"
)

type Repository interface {
	// Create inserts store with version 0, assigning an id when it has none.
	Create(ctx context.Context, store *models.Store) (*models.Store, error)
	// Get returns the aggregate with its current Version.
	Get(ctx context.Context, id string) (*models.Store, error)
	List(ctx context.Context) ([]*models.Store, error)
	UpdateInfo(ctx context.Context, id, storeName, location string) (*models.Store, error)
	UpdateDescription(ctx context.Context, id, description string) (*models.Store, error)
	Delete(ctx context.Context, id string) (*models.Store, error)
	// CompareAndSwap writes store's collection iff the stored version still
	// equals expectedVersion. It returns common.ErrVersionConflict otherwise.
	// On success store.Version holds the new version.
	CompareAndSwap(ctx context.Context, store *models.Store, collection models.Collection, expectedVersion int64) error
}
