package db

import "errors"

// Domain-level database error sentinels.
var (
	// Recipe errors
	ErrRecipeNotFound = errors.New("recipe not found")

	// Ingredient errors
	ErrIngredientNotFound  = errors.New("ingredient not found")
	ErrDuplicateIngredient = errors.New("ingredient already exists")

	// User errors
	ErrUserNotFound = errors.New("user not found")

	// Shopping cart errors
	ErrDuplicateCartEntry = errors.New("recipe already in shopping cart")
	ErrCartEntryNotFound  = errors.New("recipe not in shopping cart")

	// Favorite errors
	ErrDuplicateFavorite = errors.New("recipe already in favorites")
	ErrFavoriteNotFound  = errors.New("recipe not in favorites")

	// Follow errors
	ErrDuplicateFollow = errors.New("already subscribed to this author")
	ErrFollowNotFound  = errors.New("not subscribed to this author")
	ErrSelfFollow      = errors.New("cannot subscribe to yourself")

	// Short link errors
	ErrShortLinkNotFound = errors.New("short link not found")
	ErrDuplicateHash     = errors.New("url hash already exists")
)
