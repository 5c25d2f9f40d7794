package handlers

import (
	"net/http"

	"recipe_share/internal/service"

	"github.com/gin-gonic/gin"
)

const errListRecipes = "failed to load recipes"

type createRecipeRequest struct {
	Title             string `json:"title"`
	Instructions      string `json:"instructions"`
	MinutesToComplete *int   `json:"minutes_to_complete"`
}

// @Summary      List recipes
// @Description  All recipes from all users, each with its owner projection.
// @Tags         recipes
// @Produce      json
// @Success      200  {array}   models.Recipe
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /recipes [get]
func (h *Handler) listRecipes(c *gin.Context) {
	recipes, err := h.services.Recipes.List(c.Request.Context())
	if err != nil {
		if h.log != nil {
			h.log.Errorw("recipes_list_failed", "err", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": errListRecipes})
		return
	}
	c.JSON(http.StatusOK, recipes)
}

// @Summary      Create recipe
// @Description  Instructions must be at least 50 characters.
// @Tags         recipes
// @Accept       json
// @Produce      json
// @Param        body  body   createRecipeRequest  true  "Recipe payload"
// @Success      201   {object}  models.Recipe
// @Failure      401   {object}  map[string]string
// @Failure      422   {object}  map[string][]string
// @Router       /recipes [post]
func (h *Handler) createRecipe(c *gin.Context) {
	var req createRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// Covers malformed bodies and wrong-typed fields such as a
		// non-numeric minutes_to_complete.
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": []string{err.Error()}})
		return
	}

	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": errNotAuthorized})
		return
	}

	recipe, err := h.services.Recipes.Create(c.Request.Context(), user.ID, service.CreateRecipeParams{
		Title:             req.Title,
		Instructions:      req.Instructions,
		MinutesToComplete: req.MinutesToComplete,
	})
	if err != nil {
		h.renderWriteError(c, "recipe_create_failed", err)
		return
	}
	c.JSON(http.StatusCreated, recipe)
}
