package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/hwg121/eProject-sub001/app/content"
	"github.com/hwg121/eProject-sub001/app/source"
)

// SnapshotRepository stores one collection snapshot per content type.
type SnapshotRepository struct {
	db *DB
}

func NewSnapshotRepository(db *DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

func (r *SnapshotRepository) GetSnapshot(ctx context.Context, t content.Type) (*source.Snapshot, error) {
	var (
		payload   []byte
		fetchedAt int64
	)

	err := r.db.QueryRowContext(ctx, `
		SELECT payload, fetched_at
		FROM collection_snapshots
		WHERE content_type = ?
	`, string(t)).Scan(&payload, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}

	return &source.Snapshot{
		Type:      t,
		Payload:   payload,
		FetchedAt: time.UnixMilli(fetchedAt).UTC(),
	}, nil
}

func (r *SnapshotRepository) PutSnapshot(ctx context.Context, snapshot source.Snapshot) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO collection_snapshots (content_type, payload, fetched_at)
		VALUES (?, ?, ?)
		ON CONFLICT (content_type) DO UPDATE
		SET payload = excluded.payload, fetched_at = excluded.fetched_at
	`, string(snapshot.Type), snapshot.Payload, snapshot.FetchedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to upsert snapshot: %w", err)
	}

	return nil
}

// DeleteOlderThan removes snapshots fetched before cutoff and reports how
// many were removed.
func (r *SnapshotRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM collection_snapshots WHERE fetched_at < ?`, cutoff.UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("failed to prune snapshots: %w", err)
	}

	count, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count pruned snapshots: %w", err)
	}
	return count, nil
}
