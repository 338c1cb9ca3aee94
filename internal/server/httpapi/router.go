// Package httpapi is the public HTTP surface: routes, session cookies, CSRF
// enforcement and the mapping of service errors to status codes.
package httpapi

import (
	"time"

	"github.com/dmitrijs2005/storehub/internal/logging"
	"github.com/dmitrijs2005/storehub/internal/server/auth"
	"github.com/dmitrijs2005/storehub/internal/server/services"
	"github.com/gin-gonic/gin"
)

const (
	loginPath  = "/user/login"
	signUpPath = "/user/signup"
)

// Handler holds the services behind the routes.
type Handler struct {
	auth          *services.AuthSession
	users         *services.UserService
	stores        *services.StoreService
	mutator       *services.SubResourceMutator
	csrf          *auth.CsrfGuard
	secureCookies bool
	sessionTTL    time.Duration
	log           logging.Logger
}

func NewHandler(
	a *services.AuthSession,
	us *services.UserService,
	ss *services.StoreService,
	m *services.SubResourceMutator,
	secureCookies bool,
	log logging.Logger,
) *Handler {
	return &Handler{
		auth:          a,
		users:         us,
		stores:        ss,
		mutator:       m,
		csrf:          auth.NewCsrfGuard(),
		secureCookies: secureCookies,
		sessionTTL:    a.TTL(),
		log:           log.With("module", "http"),
	}
}

// NewRouter registers every route on a fresh gin engine.
func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(h.log), CSRF(h.csrf, loginPath, signUpPath))

	u := r.Group("/user")
	u.POST("/login", h.login)
	u.POST("/signup", h.signUp)
	u.GET("", h.listUsers)
	u.GET("/count", h.userCount)
	u.GET("/:id/image", h.userImage)
	u.GET("/:id/:role", h.getUser)
	u.PUT("", h.updateUser)
	u.PUT("/store", h.updateUserStore)
	u.DELETE("/:id", h.deleteUser)
	u.GET("/google-token/:userName/:role", h.getGoogleToken)
	u.PUT("/google-token", h.setGoogleToken)

	s := r.Group("/store")
	s.POST("", h.createStore)
	s.GET("", h.listStores)
	s.GET("/:id", h.getStore)
	s.GET("/:id/description", h.storeDescription)
	s.GET("/:id/item-count", h.storeItemCount)
	s.PUT("", h.updateStore)
	s.PUT("/description", h.updateStoreDescription)
	s.DELETE("/:id", h.deleteStore)
	s.POST("/item", h.addItem)
	s.PUT("/item", h.modifyItem)
	s.DELETE("/item", h.deleteItem)
	s.POST("/review", h.addReview)

	return r
}
