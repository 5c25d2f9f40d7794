package service

import (
	"context"
	"time"

	"recipe_share/internal/models"
	"recipe_share/internal/repository"
)

// Authorization handles accounts and the sessions bound to them. Every
// session-returning call also returns the signed token the cookie carries.
type Authorization interface {
	SignUp(ctx context.Context, p SignUpParams) (*models.User, string, error)
	Login(ctx context.Context, username, password string) (*models.User, string, error)
	CurrentUser(ctx context.Context, token string) (*models.User, error)
	EndSession(ctx context.Context, token string) error
}

// Recipes exposes the recipe catalog: list everything, create as a user.
type Recipes interface {
	List(ctx context.Context) ([]models.Recipe, error)
	Create(ctx context.Context, userID int, p CreateRecipeParams) (*models.Recipe, error)
}

// AuthConfig carries the session knobs sourced from configuration.
type AuthConfig struct {
	SigningKey []byte
	SessionTTL time.Duration
}

type Service struct {
	Authorization
	Recipes
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, cfg AuthConfig) *Service {
	return &Service{
		Authorization: NewAuthService(repos.Users, repos.Sessions, cfg),
		Recipes:       NewRecipeService(repos.Recipes, repos.Users),
	}
}
