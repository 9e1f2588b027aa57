package api

import (
	"encoding/json"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"foodgram/internal/db"
	"foodgram/internal/email"
	"foodgram/internal/models"
)

// UserHandler handles profiles and subscriptions.
type UserHandler struct {
	db       *db.DB
	notifier *email.Notifier
}

// NewUserHandler creates a new user handler.
func NewUserHandler(database *db.DB, notifier *email.Notifier) *UserHandler {
	return &UserHandler{db: database, notifier: notifier}
}

// Me returns the authenticated user's own profile.
func (h *UserHandler) Me(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	return jsonSuccess(c, models.Profile{User: *user})
}

// Get returns a public profile with the is_subscribed flag for the viewer.
func (h *UserHandler) Get(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid user id")
	}

	target, err := h.db.GetUserByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrUserNotFound) {
			return jsonError(c, fiber.StatusNotFound, "user not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch user")
	}

	profile := models.Profile{User: *target}
	if viewer, ok := c.Locals("user").(*models.User); ok {
		subscribed, err := h.db.IsSubscribed(c.Context(), viewer.ID, target.ID)
		if err != nil {
			return jsonError(c, fiber.StatusInternalServerError, "failed to fetch user")
		}
		profile.IsSubscribed = subscribed
	}

	return jsonSuccess(c, profile)
}

// Subscribe makes the caller follow an author and notifies the author.
func (h *UserHandler) Subscribe(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	authorID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid user id")
	}

	author, err := h.db.GetUserByID(c.Context(), authorID)
	if err != nil {
		if errors.Is(err, db.ErrUserNotFound) {
			return jsonError(c, fiber.StatusNotFound, "user not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch user")
	}

	if err := h.db.Follow(c.Context(), user.ID, authorID); err != nil {
		switch {
		case errors.Is(err, db.ErrSelfFollow):
			return jsonError(c, fiber.StatusBadRequest, "you cannot subscribe to yourself")
		case errors.Is(err, db.ErrDuplicateFollow):
			return jsonError(c, fiber.StatusBadRequest, "already subscribed to this author")
		default:
			return jsonError(c, fiber.StatusInternalServerError, "failed to subscribe")
		}
	}

	h.notifier.NotifyNewSubscriber(author, user)

	sub, err := h.subscription(c, author, 0)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch subscription")
	}
	return jsonCreated(c, sub)
}

// Unsubscribe removes the caller's subscription to an author.
func (h *UserHandler) Unsubscribe(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	authorID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid user id")
	}

	if err := h.db.Unfollow(c.Context(), user.ID, authorID); err != nil {
		if errors.Is(err, db.ErrFollowNotFound) {
			return jsonError(c, fiber.StatusBadRequest, "not subscribed to this author")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to unsubscribe")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// Subscriptions lists the authors the caller follows, with their recipes.
// The recipes_limit query param caps recipes per author.
func (h *UserHandler) Subscriptions(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	recipesLimit := 0
	if raw := c.Query("recipes_limit", ""); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			recipesLimit = n
		}
	}

	authors, err := h.db.ListSubscriptions(c.Context(), user.ID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch subscriptions")
	}

	subs := make([]models.Subscription, 0, len(authors))
	for _, author := range authors {
		recipes, err := h.db.RecipesByAuthor(c.Context(), author.ID, recipesLimit)
		if err != nil {
			return jsonError(c, fiber.StatusInternalServerError, "failed to fetch subscriptions")
		}
		// recipes_limit truncates the listed recipes only; the count stays
		// the author's total.
		count, err := h.db.CountRecipesByAuthor(c.Context(), author.ID)
		if err != nil {
			return jsonError(c, fiber.StatusInternalServerError, "failed to fetch subscriptions")
		}
		subs = append(subs, models.Subscription{
			Profile:      author,
			Recipes:      recipes,
			RecipesCount: count,
		})
	}

	return jsonSuccess(c, subs)
}

// UpdateAvatar sets the caller's avatar URL.
func (h *UserHandler) UpdateAvatar(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var body struct {
		Avatar string `json:"avatar"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil || body.Avatar == "" {
		return jsonError(c, fiber.StatusBadRequest, "avatar is required")
	}

	if err := h.db.UpdateUserAvatar(c.Context(), user.ID, body.Avatar); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to update avatar")
	}

	return jsonSuccess(c, fiber.Map{"avatar": body.Avatar})
}

// DeleteAvatar clears the caller's avatar URL.
func (h *UserHandler) DeleteAvatar(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	if err := h.db.UpdateUserAvatar(c.Context(), user.ID, ""); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to delete avatar")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *UserHandler) subscription(c fiber.Ctx, author *models.User, recipesLimit int) (*models.Subscription, error) {
	recipes, err := h.db.RecipesByAuthor(c.Context(), author.ID, recipesLimit)
	if err != nil {
		return nil, err
	}
	count, err := h.db.CountRecipesByAuthor(c.Context(), author.ID)
	if err != nil {
		return nil, err
	}
	return &models.Subscription{
		Profile:      models.Profile{User: *author, IsSubscribed: true},
		Recipes:      recipes,
		RecipesCount: count,
	}, nil
}
