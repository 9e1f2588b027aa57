package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"foodgram/internal/models"
)

// Follow subscribes a user to an author.
func (d *DB) Follow(ctx context.Context, userID, authorID uuid.UUID) error {
	if userID == authorID {
		return ErrSelfFollow
	}

	_, err := d.Pool.Exec(ctx, `
		INSERT INTO follows (user_id, author_id) VALUES ($1, $2)
	`, userID, authorID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return ErrDuplicateFollow
			case "23503":
				return ErrUserNotFound
			case "23514":
				return ErrSelfFollow
			}
		}
		return fmt.Errorf("failed to follow author: %w", err)
	}
	return nil
}

// Unfollow removes a subscription.
func (d *DB) Unfollow(ctx context.Context, userID, authorID uuid.UUID) error {
	tag, err := d.Pool.Exec(ctx, `
		DELETE FROM follows WHERE user_id = $1 AND author_id = $2
	`, userID, authorID)
	if err != nil {
		return fmt.Errorf("failed to unfollow author: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrFollowNotFound
	}
	return nil
}

// IsSubscribed reports whether user follows author.
func (d *DB) IsSubscribed(ctx context.Context, userID, authorID uuid.UUID) (bool, error) {
	var subscribed bool
	err := d.Pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM follows WHERE user_id = $1 AND author_id = $2)
	`, userID, authorID).Scan(&subscribed)
	if err != nil {
		return false, fmt.Errorf("failed to check subscription: %w", err)
	}
	return subscribed, nil
}

// ListSubscriptions returns the authors a user follows, newest subscription
// first. Recipes are not populated here; callers attach them separately.
func (d *DB) ListSubscriptions(ctx context.Context, userID uuid.UUID) ([]models.Profile, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT u.id, u.username, u.email, u.first_name, u.last_name, u.avatar_url
		FROM follows f
		JOIN users u ON u.id = f.author_id
		WHERE f.user_id = $1
		ORDER BY f.created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	defer rows.Close()

	var authors []models.Profile
	for rows.Next() {
		var p models.Profile
		if err := rows.Scan(&p.ID, &p.Username, &p.Email, &p.FirstName, &p.LastName, &p.AvatarURL); err != nil {
			return nil, err
		}
		p.IsSubscribed = true
		authors = append(authors, p)
	}

	return authors, rows.Err()
}
