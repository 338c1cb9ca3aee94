// Package users persists user accounts. It is the credential store consulted
// by the session service: lookups by id, by name, and by (name, role).
package users

import (
	"context"

	"github.com/dmitrijs2005/storehub/internal/server/models"
)

// Repository is implemented by the PostgreSQL and in-memory stores.
// Lookups that match nothing return common.ErrorNotFound; a duplicate
// username on Create or UpdateProfile returns common.ErrorAlreadyExists.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByName(ctx context.Context, userName string) (*models.User, error)
	GetByNameAndRole(ctx context.Context, userName, role string) (*models.User, error)
	// List returns every user without the image key.
	List(ctx context.Context) ([]*models.User, error)
	Count(ctx context.Context) (int64, error)
	// UpdateProfile renames the user; an empty imageKey keeps the current image.
	UpdateProfile(ctx context.Context, id, userName, imageKey string) (*models.User, error)
	UpdateStore(ctx context.Context, id, storeID string) (*models.User, error)
	SetGoogleToken(ctx context.Context, userName, role, token string) (*models.User, error)
	Delete(ctx context.Context, id string) (*models.User, error)
}
