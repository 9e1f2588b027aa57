package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"foodgram/internal/config"
	"foodgram/internal/models"
)

// ListIngredients returns catalog ingredients, optionally filtered by a
// case-insensitive name prefix, ordered by name.
func (d *DB) ListIngredients(ctx context.Context, namePrefix string) ([]models.Ingredient, error) {
	query := `
		SELECT id, name, measurement_unit
		FROM ingredients
		WHERE ($1 = '' OR name ILIKE $1 || '%')
		ORDER BY name
	`

	rows, err := d.Pool.Query(ctx, query, namePrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list ingredients: %w", err)
	}
	defer rows.Close()

	var ingredients []models.Ingredient
	for rows.Next() {
		var ing models.Ingredient
		if err := rows.Scan(&ing.ID, &ing.Name, &ing.MeasurementUnit); err != nil {
			return nil, err
		}
		ingredients = append(ingredients, ing)
	}

	return ingredients, rows.Err()
}

// GetIngredientByID fetches a single catalog ingredient.
func (d *DB) GetIngredientByID(ctx context.Context, id uuid.UUID) (*models.Ingredient, error) {
	var ing models.Ingredient
	err := d.Pool.QueryRow(ctx, `
		SELECT id, name, measurement_unit FROM ingredients WHERE id = $1
	`, id).Scan(&ing.ID, &ing.Name, &ing.MeasurementUnit)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrIngredientNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ing, nil
}

// SeedIngredients inserts catalog fixtures. Existing (name, unit) pairs are
// left untouched, so seeding is idempotent.
func (d *DB) SeedIngredients(ctx context.Context, fixtures []config.IngredientFixture) error {
	query := `
		INSERT INTO ingredients (name, measurement_unit)
		VALUES ($1, $2)
		ON CONFLICT ON CONSTRAINT unique_name_measurement_unit DO NOTHING
	`

	for _, f := range fixtures {
		if _, err := d.Pool.Exec(ctx, query, f.Name, f.MeasurementUnit); err != nil {
			return fmt.Errorf("failed to seed ingredient %s: %w", f.Name, err)
		}
	}

	return nil
}
