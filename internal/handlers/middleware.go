package handlers

import (
	"net/http"

	"recipe_share/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	currentUserKey   = "currentUser"
	errNotAuthorized = "Not authorized"
)

// sessionMiddleware resolves the session cookie to a user and stores it
// in the Gin context. Anything short of a live session aborts with 401.
func (h *Handler) sessionMiddleware(c *gin.Context) {
	token, err := c.Cookie(h.cookie.Name)
	if err != nil || token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errNotAuthorized})
		return
	}

	user, err := h.services.CurrentUser(c.Request.Context(), token)
	if err != nil {
		if h.log != nil {
			h.log.Infow("session_rejected", "err", err)
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errNotAuthorized})
		return
	}

	c.Set(currentUserKey, user)
	c.Next()
}

// currentUser returns the user resolved by sessionMiddleware, or nil if
// the handler is reached without it.
func currentUser(c *gin.Context) *models.User {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return nil
	}
	u, _ := v.(*models.User)
	return u
}
