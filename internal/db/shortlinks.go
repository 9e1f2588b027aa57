package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"foodgram/internal/models"
)

const shortLinkColumns = `id, recipe_id, url_hash, created_at`

func scanShortLink(row pgx.Row) (*models.ShortLink, error) {
	var link models.ShortLink
	err := row.Scan(&link.ID, &link.RecipeID, &link.URLHash, &link.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrShortLinkNotFound
	}
	if err != nil {
		return nil, err
	}
	return &link, nil
}

// GetShortLinkByRecipe fetches the short link for a recipe, if one exists.
func (d *DB) GetShortLinkByRecipe(ctx context.Context, recipeID uuid.UUID) (*models.ShortLink, error) {
	query := `SELECT ` + shortLinkColumns + ` FROM recipe_short_links WHERE recipe_id = $1`
	return scanShortLink(d.Pool.QueryRow(ctx, query, recipeID))
}

// GetShortLinkByHash fetches a short link by its URL hash.
func (d *DB) GetShortLinkByHash(ctx context.Context, hash string) (*models.ShortLink, error) {
	query := `SELECT ` + shortLinkColumns + ` FROM recipe_short_links WHERE url_hash = $1`
	return scanShortLink(d.Pool.QueryRow(ctx, query, hash))
}

// InsertShortLink persists a new short link. A unique violation on either
// the hash column or the recipe column maps to ErrDuplicateHash; callers
// are expected to re-read by recipe to find the winning row.
func (d *DB) InsertShortLink(ctx context.Context, link *models.ShortLink) error {
	err := d.Pool.QueryRow(ctx, `
		INSERT INTO recipe_short_links (recipe_id, url_hash)
		VALUES ($1, $2)
		RETURNING id, created_at
	`, link.RecipeID, link.URLHash).Scan(&link.ID, &link.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return ErrDuplicateHash
			case "23503":
				return ErrRecipeNotFound
			}
		}
		return fmt.Errorf("failed to insert short link: %w", err)
	}
	return nil
}
