package repository

import (
	"context"
	"database/sql"
	"fmt"

	"recipe_share/internal/models"
)

type RecipeRepository struct {
	db *sql.DB
}

func NewRecipeRepository(db *sql.DB) *RecipeRepository {
	return &RecipeRepository{db: db}
}

var _ Recipes = (*RecipeRepository)(nil)

const (
	insertRecipeSQL = `INSERT INTO recipes (title, instructions, minutes_to_complete, user_id) VALUES (?, ?, ?, ?)`

	// LEFT JOIN so recipes whose owner row is gone still come back, with
	// all owner columns NULL.
	listRecipesWithOwnersSQL = `
		SELECT r.id, r.title, r.instructions, r.minutes_to_complete, r.user_id,
		       u.id, u.username, u.image_url, u.bio
		FROM recipes r
		LEFT JOIN users u ON u.id = r.user_id`
)

// Create inserts a new recipe inside a transaction and returns its ID.
func (r *RecipeRepository) Create(ctx context.Context, rec models.Recipe) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin insert recipe %q: %w", rec.Title, err)
	}

	res, err := tx.ExecContext(ctx, insertRecipeSQL, rec.Title, rec.Instructions, rec.MinutesToComplete, rec.UserID)
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("insert recipe %q: %w", rec.Title, err)
	}

	lastID, err := res.LastInsertId()
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("get last insert id for recipe %q: %w", rec.Title, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit insert recipe %q: %w", rec.Title, err)
	}
	return int(lastID), nil
}

// ListWithOwners returns every recipe with its owner projection resolved
// in a single join. Ordering is whatever the store yields.
func (r *RecipeRepository) ListWithOwners(ctx context.Context) ([]models.Recipe, error) {
	rows, err := r.db.QueryContext(ctx, listRecipesWithOwnersSQL)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	defer rows.Close()

	out := make([]models.Recipe, 0, 32)
	for rows.Next() {
		var (
			rec      models.Recipe
			ownerID  *int
			username *string
			imageURL *string
			bio      *string
		)
		if err := rows.Scan(
			&rec.ID, &rec.Title, &rec.Instructions, &rec.MinutesToComplete, &rec.UserID,
			&ownerID, &username, &imageURL, &bio,
		); err != nil {
			return nil, fmt.Errorf("scan recipe row: %w", err)
		}
		rec.User = &models.RecipeOwner{
			ID:       ownerID,
			Username: username,
			ImageURL: imageURL,
			Bio:      bio,
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recipe rows: %w", err)
	}
	return out, nil
}
