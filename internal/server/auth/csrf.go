package auth

import (
	"crypto/subtle"

	"github.com/dmitrijs2005/storehub/internal/common"
)

// CSRFTokenSize is the number of random bytes in an anti-forgery token.
const CSRFTokenSize = 32

// CsrfGuard mints and checks double-submit anti-forgery tokens.
type CsrfGuard struct {
	random func(size int) (string, error)
}

func NewCsrfGuard() *CsrfGuard {
	return &CsrfGuard{random: common.MakeRandHexString}
}

// Issue returns a fresh hex-encoded token of CSRFTokenSize random bytes.
func (g *CsrfGuard) Issue() (string, error) {
	return g.random(CSRFTokenSize)
}

// Validate checks that the token echoed by the client matches the cookie.
// Both must be present; the comparison is constant-time.
func (g *CsrfGuard) Validate(cookieToken, echoedToken string) error {
	if cookieToken == "" || echoedToken == "" {
		return common.ErrorForbidden
	}
	if subtle.ConstantTimeCompare([]byte(cookieToken), []byte(echoedToken)) != 1 {
		return common.ErrorForbidden
	}
	return nil
}
