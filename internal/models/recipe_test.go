package models

import (
	"testing"

	"github.com/google/uuid"
)

func TestRecipeSummary(t *testing.T) {
	recipe := Recipe{
		ID:          uuid.New(),
		Name:        "Pancakes",
		ImageURL:    "https://example.com/pancakes.png",
		CookingTime: 20,
		Text:        "Mix and fry",
	}

	summary := recipe.Summary()

	if summary.ID != recipe.ID {
		t.Errorf("Summary() ID = %v, want %v", summary.ID, recipe.ID)
	}
	if summary.Name != "Pancakes" || summary.CookingTime != 20 {
		t.Errorf("Summary() = %+v", summary)
	}
	if summary.ImageURL != recipe.ImageURL {
		t.Errorf("Summary() image = %q, want %q", summary.ImageURL, recipe.ImageURL)
	}
}
