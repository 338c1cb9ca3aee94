// Package services contains the server-side business logic: session
// issuance, race-free store collection mutations and the user and store
// operations behind the HTTP API.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/storehub/internal/common"
	"github.com/dmitrijs2005/storehub/internal/cryptox"
	"github.com/dmitrijs2005/storehub/internal/logging"
	"github.com/dmitrijs2005/storehub/internal/server/auth"
	"github.com/dmitrijs2005/storehub/internal/server/config"
	"github.com/dmitrijs2005/storehub/internal/server/media"
	"github.com/dmitrijs2005/storehub/internal/server/models"
	"github.com/dmitrijs2005/storehub/internal/server/repositories/repomanager"
)

// Session is what a successful login or signup yields: the user without its
// credential secret plus the two tokens the caller turns into cookies.
type Session struct {
	User      *models.User
	Token     string
	CSRFToken string
	ExpiresAt time.Time
}

// AuthSession verifies credentials, creates accounts and issues sessions.
// No token is minted unless verification succeeds.
type AuthSession struct {
	repomanager repomanager.RepositoryManager
	tokens      *auth.TokenIssuer
	csrf        *auth.CsrfGuard
	images      media.ImageStore
	log         logging.Logger
	now         func() time.Time
}

// NewAuthSession builds the service from the server config. An empty
// SecretKey fails with common.ErrSecretKeyMissing.
func NewAuthSession(m repomanager.RepositoryManager, cfg *config.Config, images media.ImageStore, log logging.Logger) (*AuthSession, error) {
	tokens, err := auth.NewTokenIssuer([]byte(cfg.SecretKey), cfg.SessionTTL)
	if err != nil {
		return nil, err
	}
	return &AuthSession{
		repomanager: m,
		tokens:      tokens,
		csrf:        auth.NewCsrfGuard(),
		images:      images,
		log:         log.With("service", "auth"),
		now:         time.Now,
	}, nil
}

// TTL returns the lifetime of issued sessions.
func (s *AuthSession) TTL() time.Duration {
	return s.tokens.TTL()
}

// Login checks the credentials and issues a session.
// Unknown users, wrong passwords and role mismatches all yield
// common.ErrorUnauthorized.
func (s *AuthSession) Login(ctx context.Context, req LoginRequest) (*Session, error) {
	if req.LoginType == "" {
		req.LoginType = common.LoginTypeSystem
	}
	s.log.Info(ctx, "user login attempt", "userName", req.UserName, "loginType", req.LoginType)

	if err := req.Validate(); err != nil {
		s.log.Warn(ctx, "user login rejected", "userName", req.UserName, "error", err)
		return nil, err
	}

	var (
		user *models.User
		err  error
	)
	switch req.LoginType {
	case common.LoginTypeGoogle:
		user, err = s.externalLogin(ctx, req)
	default:
		user, err = s.passwordLogin(ctx, req)
	}
	if err != nil {
		s.log.Error(ctx, "user login failed", "userName", req.UserName, "error", err)
		return nil, err
	}

	sess, err := s.issue(user)
	if err != nil {
		s.log.Error(ctx, "session issuance failed", "userID", user.ID, "error", err)
		return nil, err
	}
	s.log.Info(ctx, "user login successful", "userID", user.ID)
	return sess, nil
}

func (s *AuthSession) passwordLogin(ctx context.Context, req LoginRequest) (*models.User, error) {
	user, err := s.repomanager.Users().GetByNameAndRole(ctx, req.UserName, req.Role)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	// accounts created through an external provider have no local password
	if user.PasswordHash == "" {
		return nil, common.ErrorUnauthorized
	}
	if err := cryptox.VerifyPassword(user.PasswordHash, []byte(req.Password)); err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	return user, nil
}

// externalLogin trusts the external identity provider: the account is found
// by (name, role) or created on first login, and the supplied access token
// replaces the stored one. Admin accounts never sign in this way.
func (s *AuthSession) externalLogin(ctx context.Context, req LoginRequest) (*models.User, error) {
	if req.Role == common.RoleAdmin {
		return nil, common.ErrorUnauthorized
	}
	repo := s.repomanager.Users()

	user, err := repo.GetByNameAndRole(ctx, req.UserName, req.Role)
	switch {
	case err == nil:
		if req.GoogleAuthAccessToken == "" || req.GoogleAuthAccessToken == user.GoogleAuthAccessToken {
			return user, nil
		}
		return repo.SetGoogleToken(ctx, req.UserName, req.Role, req.GoogleAuthAccessToken)
	case !errors.Is(err, common.ErrorNotFound):
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	imageKey := req.Image
	if !media.IsRemoteImage(imageKey) {
		imageKey, err = saveImage(ctx, s.images, req.Image, s.now())
		if err != nil {
			return nil, err
		}
	}
	created, err := repo.Create(ctx, &models.User{
		UserName:              req.UserName,
		Role:                  req.Role,
		ImageKey:              imageKey,
		GoogleAuthAccessToken: req.GoogleAuthAccessToken,
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			// the name is held by an account with another role
			return nil, common.ErrorUnauthorized
		}
		return nil, err
	}
	return created, nil
}

// SignUp creates the account and issues a session for it. A taken username
// yields common.ErrorAlreadyExists and creates nothing.
func (s *AuthSession) SignUp(ctx context.Context, req SignUpRequest) (*Session, error) {
	s.log.Info(ctx, "user signup attempt", "userName", req.UserName, "role", req.Role)

	if err := req.Validate(); err != nil {
		s.log.Warn(ctx, "user signup rejected", "userName", req.UserName, "error", err)
		return nil, err
	}

	user, err := s.createAccount(ctx, req)
	if err != nil {
		s.log.Error(ctx, "user signup failed", "userName", req.UserName, "error", err)
		return nil, err
	}

	sess, err := s.issue(user)
	if err != nil {
		s.log.Error(ctx, "session issuance failed", "userID", user.ID, "error", err)
		return nil, err
	}
	s.log.Info(ctx, "user signup successful", "userID", user.ID)
	return sess, nil
}

func (s *AuthSession) createAccount(ctx context.Context, req SignUpRequest) (*models.User, error) {
	repo := s.repomanager.Users()

	if _, err := repo.GetByName(ctx, req.UserName); err == nil {
		return nil, common.ErrorAlreadyExists
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	hash, err := cryptox.HashPassword([]byte(req.Password))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	imageKey, err := saveImage(ctx, s.images, req.Image, s.now())
	if err != nil {
		return nil, err
	}

	return repo.Create(ctx, &models.User{
		UserName:     req.UserName,
		PasswordHash: hash,
		Contact:      req.Contact,
		Address:      req.Address,
		Role:         req.Role,
		ImageKey:     imageKey,
	})
}

// CreateAdmin provisions an admin account. Public signup cannot create one.
func (s *AuthSession) CreateAdmin(ctx context.Context, userName, password string) (*models.User, error) {
	req := SignUpRequest{UserName: userName, Password: password, Role: common.RoleCustomer}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	req.Role = common.RoleAdmin

	user, err := s.createAccount(ctx, req)
	if err != nil {
		return nil, err
	}
	s.log.Info(ctx, "admin account created", "userID", user.ID)
	return user.Sanitized(), nil
}

func (s *AuthSession) issue(user *models.User) (*Session, error) {
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	csrf, err := s.csrf.Issue()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	return &Session{
		User:      user.Sanitized(),
		Token:     token.Token,
		CSRFToken: csrf,
		ExpiresAt: token.ExpiresAt,
	}, nil
}
