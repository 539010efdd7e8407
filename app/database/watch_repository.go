package database

import (
	"database/sql"
	"fmt"
	"time"
)

var _ WatchRepository = (*SQLWatchRepository)(nil)

// SQLWatchRepository handles database operations for watches
type SQLWatchRepository struct {
	db *DB
}

func NewWatchRepository(db *DB) *SQLWatchRepository {
	return &SQLWatchRepository{db: db}
}

// UpsertWatch registers a watch, keeping fetch bookkeeping intact when
// it already exists.
func (r *SQLWatchRepository) UpsertWatch(watchName string) error {
	now := time.Now().UTC()
	_, err := r.db.Exec(`
		INSERT INTO watches (name, created_at, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (name) DO UPDATE SET updated_at = excluded.updated_at
	`, watchName, now, now)

	if err != nil {
		return fmt.Errorf("failed to upsert watch: %w", err)
	}

	return nil
}

// UpdateWatchFetched records a successful fetch and schedules the next one.
func (r *SQLWatchRepository) UpdateWatchFetched(watchName string, nextFetch time.Time) error {
	now := time.Now().UTC()
	_, err := r.db.Exec(`
		UPDATE watches
		SET last_fetched_at = ?, next_fetch_at = ?, updated_at = ?
		WHERE name = ?
	`, now, nextFetch, now, watchName)

	if err != nil {
		return fmt.Errorf("failed to update watch fetch times: %w", err)
	}

	return nil
}

func (r *SQLWatchRepository) GetWatch(watchName string) (*Watch, error) {
	var watch Watch
	err := r.db.QueryRow(`
		SELECT name, last_fetched_at, next_fetch_at, created_at, updated_at
		FROM watches
		WHERE name = ?
	`, watchName).Scan(
		&watch.Name, &watch.LastFetchedAt, &watch.NextFetchAt,
		&watch.CreatedAt, &watch.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get watch: %w", err)
	}

	return &watch, nil
}

func (r *SQLWatchRepository) GetWatchCount() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM watches").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get watch count: %w", err)
	}
	return count, nil
}
