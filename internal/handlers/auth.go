package handlers

import (
	"errors"
	"net/http"

	"recipe_share/internal/service"

	"github.com/gin-gonic/gin"
)

const errInvalidCredentials = "Invalid username or password"

type signUpRequest struct {
	Username string  `json:"username"`
	Password string  `json:"password"`
	ImageURL *string `json:"image_url"`
	Bio      *string `json:"bio"`
}

type logInRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// renderWriteError maps service errors from write paths onto the API's
// error payloads: validation problems and unexpected write failures both
// come back as a 422 errors array, auth failures as 401.
func (h *Handler) renderWriteError(c *gin.Context, logKey string, err error) {
	if h.log != nil {
		h.log.Infow(logKey, "err", err)
	}

	var vErr *service.ValidationError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": vErr.Messages})
	case errors.Is(err, service.ErrNotAuthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": errNotAuthorized})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": errInvalidCredentials})
	default:
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": []string{err.Error()}})
	}
}

// setSessionCookie attaches the signed session token to the response.
func (h *Handler) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, token, h.cookie.MaxAge, "/", "", h.cookie.Secure, true)
}

// clearSessionCookie expires the session cookie on the client.
func (h *Handler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, "", -1, "/", "", h.cookie.Secure, true)
}

// @Summary      Sign up
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body   signUpRequest  true  "New account"
// @Success      201   {object}  models.User
// @Failure      422   {object}  map[string][]string
// @Router       /signup [post]
func (h *Handler) signUp(c *gin.Context) {
	var req signUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": []string{err.Error()}})
		return
	}

	user, token, err := h.services.SignUp(c.Request.Context(), service.SignUpParams{
		Username: req.Username,
		Password: req.Password,
		ImageURL: req.ImageURL,
		Bio:      req.Bio,
	})
	if err != nil {
		h.renderWriteError(c, "signup_failed", err)
		return
	}

	h.setSessionCookie(c, token)
	c.JSON(http.StatusCreated, user)
}

// @Summary      Log in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body   logInRequest  true  "Credentials"
// @Success      200   {object}  models.User
// @Failure      401   {object}  map[string]string
// @Router       /login [post]
func (h *Handler) logIn(c *gin.Context) {
	var req logInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": errInvalidCredentials})
		return
	}

	user, token, err := h.services.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		// Every login failure looks the same to the client.
		if h.log != nil {
			h.log.Infow("login_failed", "username", req.Username, "err", err)
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": errInvalidCredentials})
		return
	}

	h.setSessionCookie(c, token)
	c.JSON(http.StatusOK, user)
}

// @Summary      Current session's user
// @Tags         auth
// @Produce      json
// @Success      200  {object}  models.User
// @Failure      401  {object}  map[string]string
// @Router       /check_session [get]
func (h *Handler) checkSession(c *gin.Context) {
	c.JSON(http.StatusOK, currentUser(c))
}

// @Summary      Log out
// @Tags         auth
// @Success      204
// @Failure      401  {object}  map[string]string
// @Router       /logout [delete]
func (h *Handler) logOut(c *gin.Context) {
	// Middleware already validated the cookie; re-read it for the token.
	token, _ := c.Cookie(h.cookie.Name)
	if err := h.services.EndSession(c.Request.Context(), token); err != nil {
		if h.log != nil {
			h.log.Infow("logout_failed", "err", err)
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": errNotAuthorized})
		return
	}

	h.clearSessionCookie(c)
	c.Status(http.StatusNoContent)
}
