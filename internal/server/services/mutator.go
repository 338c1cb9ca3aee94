package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/storehub/internal/common"
	"github.com/dmitrijs2005/storehub/internal/logging"
	"github.com/dmitrijs2005/storehub/internal/server/config"
	"github.com/dmitrijs2005/storehub/internal/server/models"
	"github.com/dmitrijs2005/storehub/internal/server/repositories/repomanager"
	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
)

// Transform edits the nested collection of a private copy of the store.
// It reports whether anything changed; an unchanged store is not written.
type Transform func(store *models.Store) (changed bool, err error)

// SubResourceMutator applies read-modify-write cycles to a store's items or
// reviews. Each cycle reads the store with its version and writes back only
// if the version is unchanged; a lost race re-runs the whole cycle, up to
// maxAttempts times, and then fails with common.ErrVersionConflict.
type SubResourceMutator struct {
	repomanager repomanager.RepositoryManager
	maxAttempts int
	retryDelay  time.Duration
	log         logging.Logger
}

func NewSubResourceMutator(m repomanager.RepositoryManager, cfg *config.Config, log logging.Logger) *SubResourceMutator {
	attempts := cfg.MutationMaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	delay := cfg.MutationRetryDelay
	if delay <= 0 {
		delay = time.Millisecond
	}
	return &SubResourceMutator{
		repomanager: m,
		maxAttempts: attempts,
		retryDelay:  delay,
		log:         log.With("service", "mutator"),
	}
}

func (m *SubResourceMutator) backoff() retry.Backoff {
	b := retry.NewExponential(m.retryDelay)
	b = retry.WithCappedDuration(64*m.retryDelay, b)
	b = retry.WithJitterPercent(50, b)
	return retry.WithMaxRetries(uint64(m.maxAttempts-1), b)
}

// Mutate runs transform against the current state of storeID and persists
// the selected collection. It returns the store as written (or as read, when
// transform changed nothing).
func (m *SubResourceMutator) Mutate(ctx context.Context, storeID string, collection models.Collection, transform Transform) (*models.Store, error) {
	repo := m.repomanager.Stores()

	var (
		result  *models.Store
		attempt int
	)
	err := retry.Do(ctx, m.backoff(), func(ctx context.Context) error {
		attempt++

		store, err := repo.Get(ctx, storeID)
		if err != nil {
			return err
		}
		expected := store.Version

		changed, err := transform(store)
		if err != nil {
			return err
		}
		if !changed {
			result = store
			return nil
		}

		if err := repo.CompareAndSwap(ctx, store, collection, expected); err != nil {
			if errors.Is(err, common.ErrVersionConflict) {
				if attempt < m.maxAttempts {
					m.log.Warn(ctx, "store changed concurrently, retrying",
						"storeID", storeID, "collection", string(collection), "attempt", attempt)
				}
				return retry.RetryableError(err)
			}
			return err
		}
		result = store
		return nil
	})
	if err != nil {
		if errors.Is(err, common.ErrVersionConflict) {
			m.log.Error(ctx, "store mutation gave up", "storeID", storeID, "attempts", attempt)
			return nil, fmt.Errorf("store %s: %d attempts: %w", storeID, attempt, err)
		}
		return nil, err
	}
	return result, nil
}

// AddItem appends item. An item without id gets a fresh one; an id already
// present yields common.ErrorAlreadyExists.
func (m *SubResourceMutator) AddItem(ctx context.Context, storeID string, item models.StoreItem) (*models.Store, error) {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	store, err := m.Mutate(ctx, storeID, models.CollectionItems, func(s *models.Store) (bool, error) {
		if indexOfItem(s.Items, item.ID) >= 0 {
			return false, fmt.Errorf("item %s: %w", item.ID, common.ErrorAlreadyExists)
		}
		s.Items = append(s.Items, item)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	m.log.Info(ctx, "item added to store", "storeID", storeID, "itemID", item.ID)
	return store, nil
}

// ModifyItem merges patch into the item with the same id. A patch for an
// absent id leaves the store untouched.
func (m *SubResourceMutator) ModifyItem(ctx context.Context, storeID string, patch models.ItemPatch) (*models.Store, error) {
	store, err := m.Mutate(ctx, storeID, models.CollectionItems, func(s *models.Store) (bool, error) {
		i := indexOfItem(s.Items, patch.ID)
		if i < 0 {
			return false, nil
		}
		merged := patch.Apply(s.Items[i])
		if merged == s.Items[i] {
			return false, nil
		}
		s.Items[i] = merged
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	m.log.Info(ctx, "store item modified", "storeID", storeID, "itemID", patch.ID)
	return store, nil
}

// DeleteItem removes the item with itemID; deleting an absent item is a no-op.
func (m *SubResourceMutator) DeleteItem(ctx context.Context, storeID, itemID string) (*models.Store, error) {
	store, err := m.Mutate(ctx, storeID, models.CollectionItems, func(s *models.Store) (bool, error) {
		i := indexOfItem(s.Items, itemID)
		if i < 0 {
			return false, nil
		}
		s.Items = append(s.Items[:i], s.Items[i+1:]...)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	m.log.Info(ctx, "item deleted from store", "storeID", storeID, "itemID", itemID)
	return store, nil
}

// AddReview appends review. Reviews are never edited or deduplicated.
func (m *SubResourceMutator) AddReview(ctx context.Context, storeID string, review models.Review) (*models.Store, error) {
	store, err := m.Mutate(ctx, storeID, models.CollectionReviews, func(s *models.Store) (bool, error) {
		s.Reviews = append(s.Reviews, review)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	m.log.Info(ctx, "review added", "storeID", storeID, "userID", review.UserID)
	return store, nil
}

// indexOfItem matches on the id field only.
func indexOfItem(items []models.StoreItem, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}
