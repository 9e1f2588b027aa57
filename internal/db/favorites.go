package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// AddFavorite marks a recipe as a favorite for a user.
func (d *DB) AddFavorite(ctx context.Context, userID, recipeID uuid.UUID) error {
	_, err := d.Pool.Exec(ctx, `
		INSERT INTO favorites (user_id, recipe_id) VALUES ($1, $2)
	`, userID, recipeID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return ErrDuplicateFavorite
			case "23503":
				return ErrRecipeNotFound
			}
		}
		return fmt.Errorf("failed to add favorite: %w", err)
	}
	return nil
}

// RemoveFavorite removes a recipe from a user's favorites.
func (d *DB) RemoveFavorite(ctx context.Context, userID, recipeID uuid.UUID) error {
	tag, err := d.Pool.Exec(ctx, `
		DELETE FROM favorites WHERE user_id = $1 AND recipe_id = $2
	`, userID, recipeID)
	if err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrFavoriteNotFound
	}
	return nil
}
