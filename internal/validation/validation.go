// Package validation validates write payloads before they reach the core.
package validation

import (
	"errors"
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"foodgram/internal/models"
)

// HashPattern defines the valid short-link hash format: 8 URL-safe base64
// characters.
var HashPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{8}$`)

// UsernamePattern defines the valid username format.
var UsernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

// Payload validation error messages.
var (
	ErrNoIngredients        = errors.New("recipe must list at least one ingredient")
	ErrDuplicateIngredients = errors.New("recipe ingredients must not repeat")
)

// New creates the validator instance shared by the handlers.
func New() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

// ValidateHash checks if a string is a well-formed short-link hash.
func ValidateHash(hash string) bool {
	return HashPattern.MatchString(hash)
}

// ValidateUsername checks if a username uses only the allowed characters.
func ValidateUsername(username string) bool {
	if username == "" || len(username) > 150 {
		return false
	}
	return UsernamePattern.MatchString(username)
}

// ValidateRecipeInput runs struct validation on a recipe write payload and
// rejects duplicate ingredient ids, which struct tags cannot express.
func ValidateRecipeInput(v *validator.Validate, input *models.RecipeInput) error {
	if err := v.Struct(input); err != nil {
		return err
	}

	if len(input.Ingredients) == 0 {
		return ErrNoIngredients
	}

	seen := make(map[uuid.UUID]struct{}, len(input.Ingredients))
	for _, ing := range input.Ingredients {
		if _, ok := seen[ing.ID]; ok {
			return ErrDuplicateIngredients
		}
		seen[ing.ID] = struct{}{}
	}

	return nil
}
