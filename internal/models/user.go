package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a user authenticated via OIDC.
type User struct {
	ID        uuid.UUID `json:"id"`
	Sub       string    `json:"-"` // OIDC subject identifier
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	AvatarURL string    `json:"avatar"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// Profile is the public representation of a user, including the
// is_subscribed flag computed for the requesting viewer.
type Profile struct {
	User
	IsSubscribed bool `json:"is_subscribed"`
}

// Subscription is a followed author together with their recipes.
type Subscription struct {
	Profile
	Recipes      []RecipeSummary `json:"recipes"`
	RecipesCount int             `json:"recipes_count"`
}
