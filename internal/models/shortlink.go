package models

import (
	"time"

	"github.com/google/uuid"
)

// ShortLink maps an 8-character URL hash to a recipe. Created lazily on the
// first get-link request and never mutated afterwards.
type ShortLink struct {
	ID        uuid.UUID `json:"id"`
	RecipeID  uuid.UUID `json:"recipe_id"`
	URLHash   string    `json:"url_hash"`
	CreatedAt time.Time `json:"created_at"`
}

// ShortLinkLookup is one (hash, outcome) resolution counter row, exported
// as a Prometheus metric.
type ShortLinkLookup struct {
	URLHash    string
	Outcome    string
	Count      int64
	LastSeenAt time.Time
}
