package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/storehub/internal/server/auth"
	"github.com/dmitrijs2005/storehub/internal/server/media"
	"github.com/dmitrijs2005/storehub/internal/server/services"
	"github.com/gin-gonic/gin"
)

func (h *Handler) setSessionCookies(c *gin.Context, sess *services.Session) {
	for _, cookie := range auth.SessionCookies(sess.Token, sess.CSRFToken, h.sessionTTL, h.secureCookies) {
		http.SetCookie(c.Writer, cookie)
	}
}

func (h *Handler) login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	sess, err := h.auth.Login(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.setSessionCookies(c, sess)
	c.JSON(http.StatusOK, sess.User)
}

func (h *Handler) signUp(c *gin.Context) {
	var req services.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	sess, err := h.auth.SignUp(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.setSessionCookies(c, sess)
	c.JSON(http.StatusCreated, sess.User)
}

func (h *Handler) listUsers(c *gin.Context) {
	list, err := h.users.List(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": list, "userCount": len(list)})
}

func (h *Handler) userCount(c *gin.Context) {
	n, err := h.users.Count(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"userCount": n})
}

func (h *Handler) getUser(c *gin.Context) {
	u, err := h.users.Get(c.Request.Context(), c.Param("id"), c.Param("role"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *Handler) userImage(c *gin.Context) {
	url, err := h.users.ImageURL(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url, "expiresIn": int(media.PresignTTL.Seconds())})
}

func (h *Handler) updateUser(c *gin.Context) {
	var req services.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	u, err := h.users.UpdateProfile(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *Handler) updateUserStore(c *gin.Context) {
	var req services.LinkStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	u, err := h.users.LinkStore(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *Handler) deleteUser(c *gin.Context) {
	u, err := h.users.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *Handler) getGoogleToken(c *gin.Context) {
	tok, err := h.users.GoogleToken(c.Request.Context(), c.Param("userName"), c.Param("role"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"googleAuthAccessToken": tok})
}

func (h *Handler) setGoogleToken(c *gin.Context) {
	var req services.GoogleTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	u, err := h.users.SetGoogleToken(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}
