package users

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/storehub/internal/common"
	"github.com/dmitrijs2005/storehub/internal/server/models"
	"github.com/google/uuid"
)

// MemoryRepository keeps users in process memory. Records are copied on the
// way in and out so callers never share state with the store.
type MemoryRepository struct {
	mu    sync.RWMutex
	users map[string]models.User
	now   func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{users: make(map[string]models.User), now: time.Now}
}

func (r *MemoryRepository) nameTaken(userName, exceptID string) bool {
	for id, u := range r.users {
		if u.UserName == userName && id != exceptID {
			return true
		}
	}
	return false
}

func (r *MemoryRepository) Create(_ context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if _, ok := r.users[user.ID]; ok || r.nameTaken(user.UserName, "") {
		return nil, common.ErrorAlreadyExists
	}

	user.CreatedAt = r.now().UTC()
	r.users[user.ID] = *user
	return user, nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &u, nil
}

func (r *MemoryRepository) find(match func(models.User) bool) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if match(u) {
			u := u
			return &u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *MemoryRepository) GetByName(_ context.Context, userName string) (*models.User, error) {
	return r.find(func(u models.User) bool { return u.UserName == userName })
}

func (r *MemoryRepository) GetByNameAndRole(_ context.Context, userName, role string) (*models.User, error) {
	return r.find(func(u models.User) bool { return u.UserName == userName && u.Role == role })
}

func (r *MemoryRepository) List(_ context.Context) ([]*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*models.User, 0, len(r.users))
	for _, u := range r.users {
		u := u
		u.ImageKey = ""
		result = append(result, &u)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (r *MemoryRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.users)), nil
}

func (r *MemoryRepository) update(id string, fn func(u *models.User) error) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	if err := fn(&u); err != nil {
		return nil, err
	}
	r.users[id] = u
	return &u, nil
}

func (r *MemoryRepository) UpdateProfile(_ context.Context, id, userName, imageKey string) (*models.User, error) {
	return r.update(id, func(u *models.User) error {
		if r.nameTaken(userName, id) {
			return common.ErrorAlreadyExists
		}
		u.UserName = userName
		if imageKey != "" {
			u.ImageKey = imageKey
		}
		return nil
	})
}

func (r *MemoryRepository) UpdateStore(_ context.Context, id, storeID string) (*models.User, error) {
	return r.update(id, func(u *models.User) error {
		u.StoreID = storeID
		return nil
	})
}

func (r *MemoryRepository) SetGoogleToken(ctx context.Context, userName, role, token string) (*models.User, error) {
	u, err := r.GetByNameAndRole(ctx, userName, role)
	if err != nil {
		return nil, err
	}
	return r.update(u.ID, func(u *models.User) error {
		u.GoogleAuthAccessToken = token
		return nil
	})
}

func (r *MemoryRepository) Delete(_ context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	delete(r.users, id)
	return &u, nil
}
