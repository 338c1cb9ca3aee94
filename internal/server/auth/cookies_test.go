package auth

import (
	"net/http"
	"testing"
	"time"

	"github.com/dmitrijs2005/storehub/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionCookies(t *testing.T) {
	cookies := SessionCookies("jwt", "csrf", 72*time.Hour, false)
	require.Len(t, cookies, 2)

	session, csrf := cookies[0], cookies[1]

	assert.Equal(t, common.SessionCookieName, session.Name)
	assert.Equal(t, "jwt", session.Value)
	assert.True(t, session.HttpOnly)
	assert.Equal(t, http.SameSiteStrictMode, session.SameSite)
	assert.Equal(t, 259200, session.MaxAge)
	assert.False(t, session.Secure)

	assert.Equal(t, common.CSRFCookieName, csrf.Name)
	assert.Equal(t, "csrf", csrf.Value)
	assert.False(t, csrf.HttpOnly)
	assert.Equal(t, http.SameSiteStrictMode, csrf.SameSite)
	assert.Equal(t, session.MaxAge, csrf.MaxAge)
}

func TestSessionCookies_SecureInProduction(t *testing.T) {
	for _, c := range SessionCookies("a", "b", time.Hour, true) {
		assert.True(t, c.Secure, c.Name)
	}
}
