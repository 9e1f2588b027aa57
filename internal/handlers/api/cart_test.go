package api

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v3"
)

func TestDownload_Unauthenticated(t *testing.T) {
	// No session middleware, so no user lands in Locals. The handler must
	// refuse before touching the aggregator.
	handler := NewCartHandler(nil, nil)

	app := fiber.New()
	app.Get("/api/recipes/download_shopping_cart", handler.Download)

	req, _ := http.NewRequest("GET", "/api/recipes/download_shopping_cart", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("status = %d, want %d", resp.StatusCode, fiber.StatusUnauthorized)
	}

	var out struct {
		Status string `json:"status"`
		Error  string `json:"error"`
	}
	body, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("error response is not the JSON envelope: %v (%s)", err, body)
	}
	if out.Status != "error" {
		t.Errorf("error envelope status = %q, want %q", out.Status, "error")
	}
}
