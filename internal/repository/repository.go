package repository

import (
	"context"
	"database/sql"

	"recipe_share/internal/models"
)

type Users interface {
	Create(ctx context.Context, u models.User) (int, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByID(ctx context.Context, id int) (*models.User, error)
}

type Recipes interface {
	Create(ctx context.Context, r models.Recipe) (int, error)
	ListWithOwners(ctx context.Context) ([]models.Recipe, error)
}

type Sessions interface {
	Create(ctx context.Context, s models.Session) error
	Get(ctx context.Context, id string) (*models.Session, error)
	Delete(ctx context.Context, id string) error
}

type Repository struct {
	Users    Users
	Recipes  Recipes
	Sessions Sessions
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Users:    NewUserRepository(db),
		Recipes:  NewRecipeRepository(db),
		Sessions: NewSessionRepository(db),
	}
}
