package handlers

import (
	"net/http"

	"recipe_share/internal/logger"
	"recipe_share/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const defaultCookieName = "recipe_session"

// CookieConfig describes how the session cookie is issued.
type CookieConfig struct {
	Name   string
	MaxAge int // seconds; should match the server-side session TTL
	Secure bool
}

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
	cookie   CookieConfig
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger, cookie CookieConfig) *Handler {
	if cookie.Name == "" {
		cookie.Name = defaultCookieName
	}
	return &Handler{services: services, log: log, cookie: cookie}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	// Anonymous auth endpoints
	router.POST("/signup", h.signUp)
	router.POST("/login", h.logIn)

	// Session-gated endpoints
	authed := router.Group("/", h.sessionMiddleware)
	{
		authed.GET("/check_session", h.checkSession)
		authed.DELETE("/logout", h.logOut)
		authed.GET("/recipes", h.listRecipes)
		authed.POST("/recipes", h.createRecipe)
	}

	// Live recipe feed (HTTP upgrade) — same port
	router.GET("/ws", h.wsRecipeFeed)

	return router
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
