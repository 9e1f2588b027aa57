package db

import (
	"context"

	"foodgram/internal/models"
)

// IncrementShortLinkLookup upserts a short-link lookup count by outcome.
func (d *DB) IncrementShortLinkLookup(ctx context.Context, hash, outcome string) error {
	_, err := d.Pool.Exec(ctx, `
		INSERT INTO shortlink_lookups (url_hash, outcome, count, last_seen_at)
		VALUES ($1, $2, 1, NOW())
		ON CONFLICT (url_hash, outcome) DO UPDATE
		SET count = shortlink_lookups.count + 1, last_seen_at = NOW()
	`, hash, outcome)
	return err
}

// GetAllShortLinkLookups returns all lookup rows for metrics export.
func (d *DB) GetAllShortLinkLookups(ctx context.Context) ([]models.ShortLinkLookup, error) {
	rows, err := d.Pool.Query(ctx, `SELECT url_hash, outcome, count, last_seen_at FROM shortlink_lookups`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lookups []models.ShortLinkLookup
	for rows.Next() {
		var l models.ShortLinkLookup
		if err := rows.Scan(&l.URLHash, &l.Outcome, &l.Count, &l.LastSeenAt); err != nil {
			return nil, err
		}
		lookups = append(lookups, l)
	}
	return lookups, rows.Err()
}
