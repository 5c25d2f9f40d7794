package service

import (
	"context"
	"strings"

	"recipe_share/internal/models"
	"recipe_share/internal/repository"
)

// minInstructionsLen is the shortest instructions text accepted; anything
// shorter is not considered a meaningful recipe.
const minInstructionsLen = 50

const (
	msgTitleRequired        = "Title must be present"
	msgInstructionsRequired = "Instructions must be present"
	msgInstructionsTooShort = "Instructions must be at least 50 characters long"
	msgMinutesNegative      = "Minutes to complete must be a non-negative integer"
)

type RecipeService struct {
	recipes repository.Recipes
	users   repository.Users
}

func NewRecipeService(recipes repository.Recipes, users repository.Users) *RecipeService {
	return &RecipeService{recipes: recipes, users: users}
}

type CreateRecipeParams struct {
	Title             string
	Instructions      string
	MinutesToComplete *int
}

// List returns all recipes with their owner projections attached.
func (s *RecipeService) List(ctx context.Context) ([]models.Recipe, error) {
	return s.recipes.ListWithOwners(ctx)
}

// Create validates the payload, persists the recipe under userID and
// returns it with the owner projection resolved.
func (s *RecipeService) Create(ctx context.Context, userID int, p CreateRecipeParams) (*models.Recipe, error) {
	if msgs := validateRecipe(p); len(msgs) > 0 {
		return nil, &ValidationError{Messages: msgs}
	}

	rec := models.Recipe{
		Title:             p.Title,
		Instructions:      p.Instructions,
		MinutesToComplete: p.MinutesToComplete,
		UserID:            userID,
	}
	id, err := s.recipes.Create(ctx, rec)
	if err != nil {
		// Write failures surface as 422 payloads per the API contract.
		return nil, newValidationError(err.Error())
	}
	rec.ID = id

	owner, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	rec.User = models.OwnerOf(owner)
	return &rec, nil
}

func validateRecipe(p CreateRecipeParams) []string {
	var msgs []string
	if strings.TrimSpace(p.Title) == "" {
		msgs = append(msgs, msgTitleRequired)
	}
	if strings.TrimSpace(p.Instructions) == "" {
		msgs = append(msgs, msgInstructionsRequired)
	} else if len(p.Instructions) < minInstructionsLen {
		msgs = append(msgs, msgInstructionsTooShort)
	}
	if p.MinutesToComplete != nil && *p.MinutesToComplete < 0 {
		msgs = append(msgs, msgMinutesNegative)
	}
	return msgs
}
