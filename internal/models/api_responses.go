package models

// ShortLinkResponse contains the absolute short link for a recipe.
type ShortLinkResponse struct {
	ShortLink string `json:"short-link"`
}
