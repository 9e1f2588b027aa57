// Package shortlink generates and resolves short recipe links.
package shortlink

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"foodgram/internal/cache"
	"foodgram/internal/db"
	"foodgram/internal/models"
)

const (
	// HashLength is the length of a short-link URL hash.
	HashLength = 8

	cacheKeyPrefix = "recipe_hash_"
	cacheTTL       = time.Hour
)

// Store is the persistence surface the service needs.
type Store interface {
	GetRecipeRef(ctx context.Context, id uuid.UUID) (*db.RecipeRef, error)
	GetShortLinkByRecipe(ctx context.Context, recipeID uuid.UUID) (*models.ShortLink, error)
	GetShortLinkByHash(ctx context.Context, hash string) (*models.ShortLink, error)
	InsertShortLink(ctx context.Context, link *models.ShortLink) error
}

// Service implements lazy short-link creation and cached resolution.
type Service struct {
	store Store
	cache cache.Store
}

// NewService creates a short-link service backed by the given store and cache.
func NewService(store Store, cacheStore cache.Store) *Service {
	return &Service{store: store, cache: cacheStore}
}

// Hash derives the URL hash for a recipe: sha256 over the concatenation of
// recipe ID, name and creation timestamp, URL-safe base64, first 8 chars.
// Deterministic for a fixed recipe state; collisions across recipes are
// possible but astronomically unlikely, and the unique constraint on the
// hash column makes the first writer win.
func Hash(id uuid.UUID, name string, createdAt time.Time) string {
	seed := id.String() + name + createdAt.UTC().Format(time.RFC3339Nano)
	sum := sha256.Sum256([]byte(seed))
	return base64.URLEncoding.EncodeToString(sum[:])[:HashLength]
}

// GetOrCreate returns the recipe's short link, creating it on first request.
// The stored hash is never regenerated, even if the recipe is renamed later.
// A lost insert race is resolved by re-reading the winning row once; if the
// re-read finds no row for this recipe, the hash collided with a different
// recipe and ErrDuplicateHash propagates.
func (s *Service) GetOrCreate(ctx context.Context, recipeID uuid.UUID) (*models.ShortLink, error) {
	link, err := s.store.GetShortLinkByRecipe(ctx, recipeID)
	if err == nil {
		return link, nil
	}
	if !errors.Is(err, db.ErrShortLinkNotFound) {
		return nil, err
	}

	ref, err := s.store.GetRecipeRef(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	link = &models.ShortLink{
		RecipeID: recipeID,
		URLHash:  Hash(ref.ID, ref.Name, ref.CreatedAt),
	}

	err = s.store.InsertShortLink(ctx, link)
	if errors.Is(err, db.ErrDuplicateHash) {
		existing, readErr := s.store.GetShortLinkByRecipe(ctx, recipeID)
		if readErr == nil {
			return existing, nil
		}
		if errors.Is(readErr, db.ErrShortLinkNotFound) {
			return nil, db.ErrDuplicateHash
		}
		return nil, readErr
	}
	if err != nil {
		return nil, err
	}

	return link, nil
}

// Resolve maps a URL hash back to its recipe ID, reading through the cache.
// Returns db.ErrShortLinkNotFound for unknown hashes.
func (s *Service) Resolve(ctx context.Context, hash string) (uuid.UUID, error) {
	key := cacheKeyPrefix + hash

	data, found, err := s.cache.Get(ctx, key)
	if err != nil {
		slog.Warn("short link cache read failed", "hash", hash, "error", err)
	} else if found {
		if recipeID, parseErr := uuid.ParseBytes(data); parseErr == nil {
			return recipeID, nil
		}
		// Unparseable entry: fall through to the database.
	}

	link, err := s.store.GetShortLinkByHash(ctx, hash)
	if err != nil {
		return uuid.Nil, err
	}

	if err := s.cache.Set(ctx, key, []byte(link.RecipeID.String()), cacheTTL); err != nil {
		slog.Warn("short link cache write failed", "hash", hash, "error", err)
	}

	return link.RecipeID, nil
}
