package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"foodgram/internal/models"
)

// AddToCart adds a recipe to a user's shopping cart. At most one entry may
// exist per (user, recipe) pair.
func (d *DB) AddToCart(ctx context.Context, userID, recipeID uuid.UUID) error {
	_, err := d.Pool.Exec(ctx, `
		INSERT INTO shopping_carts (user_id, recipe_id) VALUES ($1, $2)
	`, userID, recipeID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return ErrDuplicateCartEntry
			case "23503":
				return ErrRecipeNotFound
			}
		}
		return fmt.Errorf("failed to add to cart: %w", err)
	}
	return nil
}

// RemoveFromCart removes a recipe from a user's shopping cart.
func (d *DB) RemoveFromCart(ctx context.Context, userID, recipeID uuid.UUID) error {
	tag, err := d.Pool.Exec(ctx, `
		DELETE FROM shopping_carts WHERE user_id = $1 AND recipe_id = $2
	`, userID, recipeID)
	if err != nil {
		return fmt.Errorf("failed to remove from cart: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrCartEntryNotFound
	}
	return nil
}

// AggregatedIngredients computes a user's shopping list: every ingredient
// row reachable through the user's cart entries, grouped by (name, unit)
// with amounts summed, ordered ascending by ingredient name. An empty cart
// yields an empty slice, not an error.
func (d *DB) AggregatedIngredients(ctx context.Context, userID uuid.UUID) ([]models.AggregatedIngredient, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT i.name, i.measurement_unit, SUM(ri.amount) AS total_amount
		FROM recipe_ingredients ri
		JOIN ingredients i ON i.id = ri.ingredient_id
		JOIN shopping_carts sc ON sc.recipe_id = ri.recipe_id
		WHERE sc.user_id = $1
		GROUP BY i.name, i.measurement_unit
		ORDER BY i.name
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate ingredients: %w", err)
	}
	defer rows.Close()

	var items []models.AggregatedIngredient
	for rows.Next() {
		var item models.AggregatedIngredient
		if err := rows.Scan(&item.Name, &item.MeasurementUnit, &item.TotalAmount); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}
