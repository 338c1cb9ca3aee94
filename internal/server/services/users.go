package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/storehub/internal/common"
	"github.com/dmitrijs2005/storehub/internal/logging"
	"github.com/dmitrijs2005/storehub/internal/server/media"
	"github.com/dmitrijs2005/storehub/internal/server/models"
	"github.com/dmitrijs2005/storehub/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/storehub/internal/server/repositories/stores"
	"github.com/dmitrijs2005/storehub/internal/server/repositories/users"
)

// UserService covers account management outside of login and signup.
// Every returned user is sanitized.
type UserService struct {
	repomanager repomanager.RepositoryManager
	images      media.ImageStore
	log         logging.Logger
	now         func() time.Time
}

func NewUserService(m repomanager.RepositoryManager, images media.ImageStore, log logging.Logger) *UserService {
	return &UserService{repomanager: m, images: images, log: log.With("service", "users"), now: time.Now}
}

func sanitizeAll(list []*models.User) []*models.User {
	for i, u := range list {
		list[i] = u.Sanitized()
	}
	return list
}

// List returns every user without images.
func (s *UserService) List(ctx context.Context) ([]*models.User, error) {
	list, err := s.repomanager.Users().List(ctx)
	if err != nil {
		s.log.Error(ctx, "error fetching users", "error", err)
		return nil, err
	}
	return sanitizeAll(list), nil
}

func (s *UserService) Count(ctx context.Context) (int64, error) {
	return s.repomanager.Users().Count(ctx)
}

// Get returns the user with id if it holds role.
func (s *UserService) Get(ctx context.Context, id, role string) (*models.User, error) {
	u, err := s.repomanager.Users().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u.Role != role {
		return nil, common.ErrorNotFound
	}
	return u.Sanitized(), nil
}

// ImageURL returns a presigned URL for the user's profile image.
func (s *UserService) ImageURL(ctx context.Context, id string) (string, error) {
	u, err := s.repomanager.Users().GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if u.ImageKey == "" {
		return "", fmt.Errorf("user %s has no image: %w", id, common.ErrorNotFound)
	}
	if media.IsRemoteImage(u.ImageKey) {
		return u.ImageKey, nil
	}
	return s.images.PresignGet(ctx, u.ImageKey)
}

// UpdateProfile renames the user and, when Image is set, replaces the image.
func (s *UserService) UpdateProfile(ctx context.Context, req UpdateUserRequest) (*models.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	imageKey, err := saveImage(ctx, s.images, req.Image, s.now())
	if err != nil {
		return nil, err
	}
	u, err := s.repomanager.Users().UpdateProfile(ctx, req.UserID, req.UserName, imageKey)
	if err != nil {
		s.log.Error(ctx, "error updating user", "userID", req.UserID, "error", err)
		return nil, err
	}
	s.log.Info(ctx, "user updated", "userID", u.ID)
	return u.Sanitized(), nil
}

// LinkStore points the user at an existing store.
func (s *UserService) LinkStore(ctx context.Context, req LinkStoreRequest) (*models.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var linked *models.User
	err := s.repomanager.WithinTx(ctx, func(ctx context.Context, ur users.Repository, sr stores.Repository) error {
		if _, err := sr.Get(ctx, req.StoreID); err != nil {
			return fmt.Errorf("store %s: %w", req.StoreID, err)
		}
		u, err := ur.UpdateStore(ctx, req.UserID, req.StoreID)
		if err != nil {
			return err
		}
		linked = u
		return nil
	})
	if err != nil {
		s.log.Error(ctx, "error updating user's store", "userID", req.UserID, "storeID", req.StoreID, "error", err)
		return nil, err
	}
	s.log.Info(ctx, "user's store updated", "userID", req.UserID, "storeID", req.StoreID)
	return linked.Sanitized(), nil
}

func (s *UserService) Delete(ctx context.Context, id string) (*models.User, error) {
	u, err := s.repomanager.Users().Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	s.log.Info(ctx, "user deleted", "userID", id)
	return u.Sanitized(), nil
}

// GoogleToken returns the stored external-auth access token.
func (s *UserService) GoogleToken(ctx context.Context, userName, role string) (string, error) {
	u, err := s.repomanager.Users().GetByNameAndRole(ctx, userName, role)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.log.Warn(ctx, "user not found", "userName", userName, "role", role)
		}
		return "", err
	}
	return u.GoogleAuthAccessToken, nil
}

// SetGoogleToken stores the external-auth access token verbatim.
func (s *UserService) SetGoogleToken(ctx context.Context, req GoogleTokenRequest) (*models.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	u, err := s.repomanager.Users().SetGoogleToken(ctx, req.UserName, req.Role, req.GoogleAuthAccessToken)
	if err != nil {
		return nil, err
	}
	s.log.Info(ctx, "google access token updated", "userID", u.ID)
	return u.Sanitized(), nil
}
