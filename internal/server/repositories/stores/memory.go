package stores

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/storehub/internal/common"
	"github.com/dmitrijs2005/storehub/internal/server/models"
	"github.com/google/uuid"
)

// MemoryRepository keeps deep copies of store aggregates under a mutex and
// honours the same version contract as the PostgreSQL repository.
type MemoryRepository struct {
	mu     sync.Mutex
	stores map[string]*models.Store
	now    func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{stores: make(map[string]*models.Store), now: time.Now}
}

func normalized(s *models.Store) *models.Store {
	c := s.Clone()
	if c.Items == nil {
		c.Items = []models.StoreItem{}
	}
	if c.Reviews == nil {
		c.Reviews = []models.Review{}
	}
	return c
}

func (r *MemoryRepository) Create(_ context.Context, store *models.Store) (*models.Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if store.ID == "" {
		store.ID = uuid.NewString()
	}
	if _, ok := r.stores[store.ID]; ok {
		return nil, common.ErrorAlreadyExists
	}

	s := normalized(store)
	s.Version = 0
	s.CreatedAt = r.now().UTC()
	s.UpdatedAt = s.CreatedAt
	r.stores[s.ID] = s
	return s.Clone(), nil
}

func (r *MemoryRepository) Get(_ context.Context, id string) (*models.Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.stores[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return s.Clone(), nil
}

func (r *MemoryRepository) List(_ context.Context) ([]*models.Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]*models.Store, 0, len(r.stores))
	for _, s := range r.stores {
		result = append(result, s.Clone())
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (r *MemoryRepository) update(id string, fn func(s *models.Store)) (*models.Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.stores[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	fn(s)
	s.Version++
	s.UpdatedAt = r.now().UTC()
	return s.Clone(), nil
}

func (r *MemoryRepository) UpdateInfo(_ context.Context, id, storeName, location string) (*models.Store, error) {
	return r.update(id, func(s *models.Store) {
		s.StoreName = storeName
		s.Location = location
	})
}

func (r *MemoryRepository) UpdateDescription(_ context.Context, id, description string) (*models.Store, error) {
	return r.update(id, func(s *models.Store) {
		s.Description = description
	})
}

func (r *MemoryRepository) Delete(_ context.Context, id string) (*models.Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.stores[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	delete(r.stores, id)
	return s, nil
}

func (r *MemoryRepository) CompareAndSwap(_ context.Context, store *models.Store, collection models.Collection, expectedVersion int64) error {
	if collection != models.CollectionItems && collection != models.CollectionReviews {
		return fmt.Errorf("unknown collection %q", collection)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.stores[store.ID]
	if !ok || current.Version != expectedVersion {
		return common.ErrVersionConflict
	}

	incoming := normalized(store)
	switch collection {
	case models.CollectionItems:
		current.Items = incoming.Items
	case models.CollectionReviews:
		current.Reviews = incoming.Reviews
	}
	current.Version++
	current.UpdatedAt = r.now().UTC()
	store.Version = current.Version
	return nil
}
