package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"foodgram/internal/models"
)

// recipeColumns selects the recipe row, its author and the per-viewer flags.
// $2 is the viewer ID and may be NULL for anonymous requests.
const recipeColumns = `
	r.id, r.name, r.text, r.image_url, r.cooking_time, r.created_at,
	u.id, u.username, u.email, u.first_name, u.last_name, u.avatar_url,
	($2::uuid IS NOT NULL AND EXISTS (
		SELECT 1 FROM favorites f WHERE f.user_id = $2 AND f.recipe_id = r.id)),
	($2::uuid IS NOT NULL AND EXISTS (
		SELECT 1 FROM shopping_carts sc WHERE sc.user_id = $2 AND sc.recipe_id = r.id)),
	($2::uuid IS NOT NULL AND EXISTS (
		SELECT 1 FROM follows fo WHERE fo.user_id = $2 AND fo.author_id = u.id))`

func scanRecipe(row pgx.Row) (*models.Recipe, error) {
	var recipe models.Recipe
	err := row.Scan(
		&recipe.ID,
		&recipe.Name,
		&recipe.Text,
		&recipe.ImageURL,
		&recipe.CookingTime,
		&recipe.CreatedAt,
		&recipe.Author.ID,
		&recipe.Author.Username,
		&recipe.Author.Email,
		&recipe.Author.FirstName,
		&recipe.Author.LastName,
		&recipe.Author.AvatarURL,
		&recipe.IsFavorited,
		&recipe.IsInShoppingCart,
		&recipe.Author.IsSubscribed,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrRecipeNotFound
	}
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

// GetRecipe fetches a recipe with its author, nested ingredients and the
// viewer-dependent flags. viewerID may be nil.
func (d *DB) GetRecipe(ctx context.Context, id uuid.UUID, viewerID *uuid.UUID) (*models.Recipe, error) {
	query := `
		SELECT ` + recipeColumns + `
		FROM recipes r
		JOIN users u ON u.id = r.author_id
		WHERE r.id = $1
	`

	recipe, err := scanRecipe(d.Pool.QueryRow(ctx, query, id, viewerID))
	if err != nil {
		return nil, err
	}

	ingredients, err := d.recipeIngredients(ctx, recipe.ID)
	if err != nil {
		return nil, err
	}
	recipe.Ingredients = ingredients

	return recipe, nil
}

// ListRecipes returns the most recent recipes with viewer flags, newest first.
func (d *DB) ListRecipes(ctx context.Context, viewerID *uuid.UUID, limit int) ([]models.Recipe, error) {
	query := `
		SELECT ` + recipeColumns + `
		FROM recipes r
		JOIN users u ON u.id = r.author_id
		ORDER BY r.created_at DESC
		LIMIT $1
	`

	rows, err := d.Pool.Query(ctx, query, limit, viewerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	defer rows.Close()

	var recipes []models.Recipe
	for rows.Next() {
		recipe, err := scanRecipe(rows)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, *recipe)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, len(recipes))
	for i := range recipes {
		ids[i] = recipes[i].ID
	}
	byRecipe, err := d.recipeIngredientsBatch(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range recipes {
		recipes[i].Ingredients = byRecipe[recipes[i].ID]
	}

	return recipes, nil
}

// RecipesByAuthor returns an author's recipes in short form, newest first.
// limit <= 0 returns all.
func (d *DB) RecipesByAuthor(ctx context.Context, authorID uuid.UUID, limit int) ([]models.RecipeSummary, error) {
	query := `
		SELECT id, name, image_url, cooking_time
		FROM recipes
		WHERE author_id = $1
		ORDER BY created_at DESC
	`
	args := []any{authorID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := d.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list author recipes: %w", err)
	}
	defer rows.Close()

	var recipes []models.RecipeSummary
	for rows.Next() {
		var r models.RecipeSummary
		if err := rows.Scan(&r.ID, &r.Name, &r.ImageURL, &r.CookingTime); err != nil {
			return nil, err
		}
		recipes = append(recipes, r)
	}

	return recipes, rows.Err()
}

// CountRecipesByAuthor returns the author's total recipe count. The count is
// independent of any limit applied when listing the recipes themselves.
func (d *DB) CountRecipesByAuthor(ctx context.Context, authorID uuid.UUID) (int, error) {
	var count int
	err := d.Pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM recipes WHERE author_id = $1
	`, authorID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count author recipes: %w", err)
	}
	return count, nil
}

// CreateRecipe inserts a recipe and its ingredient links in one transaction.
func (d *DB) CreateRecipe(ctx context.Context, authorID uuid.UUID, input *models.RecipeInput) (uuid.UUID, error) {
	tx, err := d.Pool.Begin(ctx)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var recipeID uuid.UUID
	err = tx.QueryRow(ctx, `
		INSERT INTO recipes (author_id, name, text, image_url, cooking_time)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, authorID, input.Name, input.Text, input.ImageURL, input.CookingTime).Scan(&recipeID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to insert recipe: %w", err)
	}

	if err := insertRecipeIngredients(ctx, tx, recipeID, input.Ingredients); err != nil {
		return uuid.Nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return uuid.Nil, fmt.Errorf("failed to commit recipe: %w", err)
	}

	return recipeID, nil
}

// UpdateRecipe updates a recipe row and replaces its ingredient links
// wholesale (delete then recreate, no partial diffing).
func (d *DB) UpdateRecipe(ctx context.Context, recipeID uuid.UUID, input *models.RecipeInput) error {
	tx, err := d.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		UPDATE recipes
		SET name = $2, text = $3, image_url = $4, cooking_time = $5, updated_at = NOW()
		WHERE id = $1
	`, recipeID, input.Name, input.Text, input.ImageURL, input.CookingTime)
	if err != nil {
		return fmt.Errorf("failed to update recipe: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrRecipeNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM recipe_ingredients WHERE recipe_id = $1`, recipeID); err != nil {
		return fmt.Errorf("failed to clear recipe ingredients: %w", err)
	}

	if err := insertRecipeIngredients(ctx, tx, recipeID, input.Ingredients); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit recipe update: %w", err)
	}

	return nil
}

// DeleteRecipe removes a recipe. Ingredient links, cart entries, favorites
// and the short link are removed by foreign-key cascade.
func (d *DB) DeleteRecipe(ctx context.Context, recipeID uuid.UUID) error {
	tag, err := d.Pool.Exec(ctx, `DELETE FROM recipes WHERE id = $1`, recipeID)
	if err != nil {
		return fmt.Errorf("failed to delete recipe: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrRecipeNotFound
	}
	return nil
}

// RecipeRef is the minimal recipe state used to derive a short-link hash.
type RecipeRef struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
}

// GetRecipeRef fetches the hash seed fields for a recipe.
func (d *DB) GetRecipeRef(ctx context.Context, id uuid.UUID) (*RecipeRef, error) {
	var ref RecipeRef
	err := d.Pool.QueryRow(ctx, `
		SELECT id, name, created_at FROM recipes WHERE id = $1
	`, id).Scan(&ref.ID, &ref.Name, &ref.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrRecipeNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ref, nil
}

func insertRecipeIngredients(ctx context.Context, tx pgx.Tx, recipeID uuid.UUID, ingredients []models.RecipeIngredientInput) error {
	query := `
		INSERT INTO recipe_ingredients (recipe_id, ingredient_id, amount)
		VALUES ($1, $2, $3)
	`

	for _, ing := range ingredients {
		if _, err := tx.Exec(ctx, query, recipeID, ing.ID, ing.Amount); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23503" {
				return ErrIngredientNotFound
			}
			return fmt.Errorf("failed to insert recipe ingredient: %w", err)
		}
	}

	return nil
}

// recipeIngredientsBatch fetches the ingredient lists for a page of recipes
// in one query, keyed by recipe ID. Rows stay ordered by ingredient name.
func (d *DB) recipeIngredientsBatch(ctx context.Context, recipeIDs []uuid.UUID) (map[uuid.UUID][]models.RecipeIngredient, error) {
	if len(recipeIDs) == 0 {
		return nil, nil
	}

	rows, err := d.Pool.Query(ctx, `
		SELECT ri.recipe_id, i.id, i.name, i.measurement_unit, ri.amount
		FROM recipe_ingredients ri
		JOIN ingredients i ON i.id = ri.ingredient_id
		WHERE ri.recipe_id = ANY($1)
		ORDER BY i.name
	`, recipeIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recipe ingredients: %w", err)
	}
	defer rows.Close()

	byRecipe := make(map[uuid.UUID][]models.RecipeIngredient, len(recipeIDs))
	for rows.Next() {
		var recipeID uuid.UUID
		var ing models.RecipeIngredient
		if err := rows.Scan(&recipeID, &ing.ID, &ing.Name, &ing.MeasurementUnit, &ing.Amount); err != nil {
			return nil, err
		}
		byRecipe[recipeID] = append(byRecipe[recipeID], ing)
	}

	return byRecipe, rows.Err()
}

func (d *DB) recipeIngredients(ctx context.Context, recipeID uuid.UUID) ([]models.RecipeIngredient, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT i.id, i.name, i.measurement_unit, ri.amount
		FROM recipe_ingredients ri
		JOIN ingredients i ON i.id = ri.ingredient_id
		WHERE ri.recipe_id = $1
		ORDER BY i.name
	`, recipeID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recipe ingredients: %w", err)
	}
	defer rows.Close()

	var ingredients []models.RecipeIngredient
	for rows.Next() {
		var ing models.RecipeIngredient
		if err := rows.Scan(&ing.ID, &ing.Name, &ing.MeasurementUnit, &ing.Amount); err != nil {
			return nil, err
		}
		ingredients = append(ingredients, ing)
	}

	return ingredients, rows.Err()
}
