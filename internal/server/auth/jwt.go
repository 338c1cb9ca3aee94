// Package auth issues the session credentials: a signed session token and
// the paired anti-forgery token, plus the cookies that carry them.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/storehub/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the payload of a session token. ID duplicates the subject under
// the "id" key that existing clients read.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"id"`
}

// IssuedToken is a signed session token and its expiry.
type IssuedToken struct {
	Token     string
	ExpiresAt time.Time
}

// TokenIssuer mints HS256 session tokens with a fixed lifetime.
// It is immutable after construction and safe for concurrent use.
type TokenIssuer struct {
	secretKey []byte
	ttl       time.Duration
	now       func() time.Time
}

// NewTokenIssuer returns an issuer for the given key and lifetime.
// An empty key is a configuration error.
func NewTokenIssuer(secretKey []byte, ttl time.Duration) (*TokenIssuer, error) {
	if len(secretKey) == 0 {
		return nil, common.ErrSecretKeyMissing
	}
	return &TokenIssuer{secretKey: secretKey, ttl: ttl, now: time.Now}, nil
}

// TTL returns the token lifetime.
func (i *TokenIssuer) TTL() time.Duration {
	return i.ttl
}

// Issue signs a token with subject userID, issued now and expiring after the TTL.
func (i *TokenIssuer) Issue(userID string) (*IssuedToken, error) {
	now := i.now().Truncate(time.Second)
	expiresAt := now.Add(i.ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		UserID: userID,
	})

	tokenString, err := token.SignedString(i.secretKey)
	if err != nil {
		return nil, fmt.Errorf("sign session token: %w", err)
	}

	return &IssuedToken{Token: tokenString, ExpiresAt: expiresAt}, nil
}

// Parse verifies the signature and expiry of tokenString and returns its claims.
func (i *TokenIssuer) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return i.secretKey, nil
	}, jwt.WithTimeFunc(i.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
