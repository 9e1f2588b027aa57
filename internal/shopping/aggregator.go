// Package shopping computes aggregated shopping lists from cart contents.
package shopping

import (
	"bytes"
	"context"
	"encoding/csv"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"

	"foodgram/internal/cache"
	"foodgram/internal/models"
)

const (
	cacheKeyPrefix = "shopping_cart_"
	cacheTTL       = 300 * time.Second

	// ContentType is the MIME type of the generated shopping list.
	ContentType = "text/tab-separated-values"
	// AttachmentFilename is the download filename hint for the list.
	AttachmentFilename = "shopping_list.txt"
)

// File header rows. The data rows follow the column header.
var (
	titleRow  = []string{"Список покупок"}
	columnRow = []string{"Ингредиенты", "Количество", "Ед. измерения"}
)

// CartReader supplies the aggregated cart contents for a user, grouped by
// (name, unit) and sorted ascending by name.
type CartReader interface {
	AggregatedIngredients(ctx context.Context, userID uuid.UUID) ([]models.AggregatedIngredient, error)
}

// Service builds tab-separated shopping lists with read-through caching.
// Cart mutations do not invalidate the cache; staleness is bounded by TTL.
type Service struct {
	store CartReader
	cache cache.Store
}

// NewService creates an aggregator backed by the given store and cache.
func NewService(store CartReader, cacheStore cache.Store) *Service {
	return &Service{store: store, cache: cacheStore}
}

// ShoppingList returns the serialized shopping list for a user. A cache hit
// returns the cached bytes verbatim. An empty cart produces a well-formed
// file with only the two header rows.
func (s *Service) ShoppingList(ctx context.Context, userID uuid.UUID) ([]byte, error) {
	key := cacheKeyPrefix + userID.String()

	data, found, err := s.cache.Get(ctx, key)
	if err != nil {
		// Fail open: an unavailable cache must not take down the read path.
		slog.Warn("shopping list cache read failed", "user_id", userID, "error", err)
	} else if found && len(data) > 0 {
		return data, nil
	}

	items, err := s.store.AggregatedIngredients(ctx, userID)
	if err != nil {
		return nil, err
	}

	content, err := serialize(items)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, content, cacheTTL); err != nil {
		slog.Warn("shopping list cache write failed", "user_id", userID, "error", err)
	}

	return content, nil
}

// serialize writes the aggregated rows as tab-delimited text.
func serialize(items []models.AggregatedIngredient) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = '\t'

	if err := w.Write(titleRow); err != nil {
		return nil, err
	}
	if err := w.Write(columnRow); err != nil {
		return nil, err
	}

	for _, item := range items {
		row := []string{item.Name, strconv.Itoa(item.TotalAmount), item.MeasurementUnit}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
