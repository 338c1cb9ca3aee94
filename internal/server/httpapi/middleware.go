package httpapi

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/storehub/internal/common"
	"github.com/dmitrijs2005/storehub/internal/logging"
	"github.com/dmitrijs2005/storehub/internal/server/auth"
	"github.com/gin-gonic/gin"
)

// RequestLogger writes one line per request.
func RequestLogger(log logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		log.Info(c.Request.Context(), "http request",
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"latency", time.Since(start).String(),
		)
	}
}

func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

// CSRF enforces the double-submit check on state-changing requests: the
// csrfToken cookie must be echoed in the X-CSRF-Token header. Routes listed
// in exempt (by their registered path) are let through; they are the ones
// that issue the cookie.
func CSRF(guard *auth.CsrfGuard, exempt ...string) gin.HandlerFunc {
	skip := make(map[string]bool, len(exempt))
	for _, p := range exempt {
		skip[p] = true
	}

	return func(c *gin.Context) {
		if isSafeMethod(c.Request.Method) || skip[c.FullPath()] {
			c.Next()
			return
		}

		cookie, _ := c.Cookie(common.CSRFCookieName)
		if err := guard.Validate(cookie, c.GetHeader(common.CSRFHeaderName)); err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"err": "invalid csrf token"})
			return
		}
		c.Next()
	}
}
