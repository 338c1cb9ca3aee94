package auth

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/storehub/internal/common"
)

// SessionCookies returns the two cookies of a session: the HTTP-only session
// token and the script-readable CSRF token. Both share the same lifetime and
// a strict same-site policy.
func SessionCookies(sessionToken, csrfToken string, ttl time.Duration, secure bool) []*http.Cookie {
	maxAge := int(ttl / time.Second)
	return []*http.Cookie{
		{
			Name:     common.SessionCookieName,
			Value:    sessionToken,
			Path:     "/",
			MaxAge:   maxAge,
			HttpOnly: true,
			Secure:   secure,
			SameSite: http.SameSiteStrictMode,
		},
		{
			Name:     common.CSRFCookieName,
			Value:    csrfToken,
			Path:     "/",
			MaxAge:   maxAge,
			HttpOnly: false,
			Secure:   secure,
			SameSite: http.SameSiteStrictMode,
		},
	}
}
