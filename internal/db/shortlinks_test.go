package db

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"foodgram/internal/models"
)

func TestInsertShortLink(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	author := createTestUser(t, db, "test-author", "author")
	flour := createTestIngredient(t, db, "flour", "g")
	recipeID := createTestRecipe(t, db, author.ID, "Bread", []models.RecipeIngredientInput{
		{ID: flour, Amount: 700},
	})

	link := &models.ShortLink{RecipeID: recipeID, URLHash: "abc123_-"}
	if err := db.InsertShortLink(ctx, link); err != nil {
		t.Fatalf("InsertShortLink() error = %v", err)
	}
	if link.ID == uuid.Nil {
		t.Error("InsertShortLink() did not set ID")
	}

	byRecipe, err := db.GetShortLinkByRecipe(ctx, recipeID)
	if err != nil {
		t.Fatalf("GetShortLinkByRecipe() error = %v", err)
	}
	if byRecipe.URLHash != "abc123_-" {
		t.Errorf("GetShortLinkByRecipe() hash = %q, want %q", byRecipe.URLHash, "abc123_-")
	}

	byHash, err := db.GetShortLinkByHash(ctx, "abc123_-")
	if err != nil {
		t.Fatalf("GetShortLinkByHash() error = %v", err)
	}
	if byHash.RecipeID != recipeID {
		t.Errorf("GetShortLinkByHash() recipe = %v, want %v", byHash.RecipeID, recipeID)
	}
}

func TestInsertShortLink_DuplicateHash(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	author := createTestUser(t, db, "test-author", "author")
	flour := createTestIngredient(t, db, "flour", "g")
	first := createTestRecipe(t, db, author.ID, "Bread", []models.RecipeIngredientInput{
		{ID: flour, Amount: 700},
	})
	second := createTestRecipe(t, db, author.ID, "Buns", []models.RecipeIngredientInput{
		{ID: flour, Amount: 300},
	})

	if err := db.InsertShortLink(ctx, &models.ShortLink{RecipeID: first, URLHash: "samehash"}); err != nil {
		t.Fatalf("InsertShortLink() first error = %v", err)
	}
	err := db.InsertShortLink(ctx, &models.ShortLink{RecipeID: second, URLHash: "samehash"})
	if err != ErrDuplicateHash {
		t.Errorf("InsertShortLink() second error = %v, want ErrDuplicateHash", err)
	}
}

func TestInsertShortLink_UnknownRecipe(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	err := db.InsertShortLink(context.Background(), &models.ShortLink{
		RecipeID: uuid.New(),
		URLHash:  "orphaned",
	})
	if err != ErrRecipeNotFound {
		t.Errorf("InsertShortLink() error = %v, want ErrRecipeNotFound", err)
	}
}

func TestGetShortLinkByHash_NotFound(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := db.GetShortLinkByHash(context.Background(), "nope1234")
	if err != ErrShortLinkNotFound {
		t.Errorf("GetShortLinkByHash() error = %v, want ErrShortLinkNotFound", err)
	}
}

func TestShortLink_RemovedWithRecipe(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	author := createTestUser(t, db, "test-author", "author")
	flour := createTestIngredient(t, db, "flour", "g")
	recipeID := createTestRecipe(t, db, author.ID, "Bread", []models.RecipeIngredientInput{
		{ID: flour, Amount: 700},
	})

	if err := db.InsertShortLink(ctx, &models.ShortLink{RecipeID: recipeID, URLHash: "gonesoon"}); err != nil {
		t.Fatalf("InsertShortLink() error = %v", err)
	}
	if err := db.DeleteRecipe(ctx, recipeID); err != nil {
		t.Fatalf("DeleteRecipe() error = %v", err)
	}

	_, err := db.GetShortLinkByHash(ctx, "gonesoon")
	if err != ErrShortLinkNotFound {
		t.Errorf("GetShortLinkByHash() after recipe delete error = %v, want ErrShortLinkNotFound", err)
	}
}
