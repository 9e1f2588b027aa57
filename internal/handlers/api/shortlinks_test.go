package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"foodgram/internal/cache"
	"foodgram/internal/config"
	"foodgram/internal/db"
	"foodgram/internal/models"
	"foodgram/internal/shortlink"
)

// stubLinkStore backs the short-link service with one known recipe.
type stubLinkStore struct {
	recipeID uuid.UUID
	links    map[uuid.UUID]*models.ShortLink
}

func (s *stubLinkStore) GetRecipeRef(_ context.Context, id uuid.UUID) (*db.RecipeRef, error) {
	if id != s.recipeID {
		return nil, db.ErrRecipeNotFound
	}
	return &db.RecipeRef{ID: id, Name: "Pancakes", CreatedAt: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}, nil
}

func (s *stubLinkStore) GetShortLinkByRecipe(_ context.Context, recipeID uuid.UUID) (*models.ShortLink, error) {
	link, ok := s.links[recipeID]
	if !ok {
		return nil, db.ErrShortLinkNotFound
	}
	return link, nil
}

func (s *stubLinkStore) GetShortLinkByHash(context.Context, string) (*models.ShortLink, error) {
	return nil, db.ErrShortLinkNotFound
}

func (s *stubLinkStore) InsertShortLink(_ context.Context, link *models.ShortLink) error {
	link.ID = uuid.New()
	s.links[link.RecipeID] = link
	return nil
}

func newShortLinkTestApp(store *stubLinkStore) *fiber.App {
	cfg := &config.Config{BaseURL: "http://localhost:3000"}
	service := shortlink.NewService(store, cache.NewMemory())
	handler := NewShortLinkHandler(service, cfg)

	app := fiber.New()
	app.Get("/api/recipes/:id/get-link", handler.GetLink)
	return app
}

func TestGetLink_ResponseShape(t *testing.T) {
	store := &stubLinkStore{
		recipeID: uuid.New(),
		links:    make(map[uuid.UUID]*models.ShortLink),
	}
	app := newShortLinkTestApp(store)

	req, _ := http.NewRequest("GET", "/api/recipes/"+store.recipeID.String()+"/get-link", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, fiber.StatusOK)
	}

	body, _ := io.ReadAll(resp.Body)

	// The response is the bare short-link object, not the usual envelope.
	var out map[string]string
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("response is not a flat JSON object: %v (%s)", err, body)
	}
	if len(out) != 1 {
		t.Errorf("response has %d keys, want only short-link: %s", len(out), body)
	}
	link, ok := out["short-link"]
	if !ok {
		t.Fatalf("response missing short-link key: %s", body)
	}
	if !strings.HasPrefix(link, "http://localhost:3000/a/r/") {
		t.Errorf("short-link = %q, want prefix %q", link, "http://localhost:3000/a/r/")
	}
	if hash := strings.TrimPrefix(link, "http://localhost:3000/a/r/"); len(hash) != shortlink.HashLength {
		t.Errorf("short-link hash %q has length %d, want %d", hash, len(hash), shortlink.HashLength)
	}
}

func TestGetLink_UnknownRecipe(t *testing.T) {
	store := &stubLinkStore{
		recipeID: uuid.New(),
		links:    make(map[uuid.UUID]*models.ShortLink),
	}
	app := newShortLinkTestApp(store)

	req, _ := http.NewRequest("GET", "/api/recipes/"+uuid.NewString()+"/get-link", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Errorf("status = %d, want %d", resp.StatusCode, fiber.StatusNotFound)
	}

	var out struct {
		Status string `json:"status"`
		Error  string `json:"error"`
	}
	body, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("error response is not the JSON envelope: %v (%s)", err, body)
	}
	if out.Status != "error" || out.Error == "" {
		t.Errorf("error envelope = %+v", out)
	}
}

func TestGetLink_InvalidID(t *testing.T) {
	store := &stubLinkStore{
		recipeID: uuid.New(),
		links:    make(map[uuid.UUID]*models.ShortLink),
	}
	app := newShortLinkTestApp(store)

	req, _ := http.NewRequest("GET", "/api/recipes/not-a-uuid/get-link", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("status = %d, want %d", resp.StatusCode, fiber.StatusBadRequest)
	}
}
