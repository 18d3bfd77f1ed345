package source

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hwg121/eProject-sub001/app/content"
	"github.com/hwg121/eProject-sub001/app/json"
)

// CachedSource serves collections from a snapshot store while they are
// younger than ttl. A stale or missing snapshot always triggers a fetch and
// fetch errors are returned as is, so a snapshot never hides an outage.
type CachedSource struct {
	next  content.Source
	store SnapshotStore
	ttl   time.Duration
	now   func() time.Time
}

func NewCachedSource(next content.Source, store SnapshotStore, ttl time.Duration) *CachedSource {
	return &CachedSource{
		next:  next,
		store: store,
		ttl:   ttl,
		now:   time.Now,
	}
}

func (s *CachedSource) ListRecords(ctx context.Context, t content.Type) (any, error) {
	if envelope, ok := s.fresh(ctx, t); ok {
		return envelope, nil
	}
	return s.Refresh(ctx, t)
}

// Refresh fetches the collection unconditionally and stores the result.
func (s *CachedSource) Refresh(ctx context.Context, t content.Type) (any, error) {
	envelope, err := s.next.ListRecords(ctx, t)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(envelope)
	if err != nil {
		slog.Warn("Snapshot not stored", "type", t, "error", err)
		return envelope, nil
	}

	snapshot := Snapshot{Type: t, Payload: payload, FetchedAt: s.now().UTC()}
	if err := s.store.PutSnapshot(ctx, snapshot); err != nil {
		slog.Warn("Snapshot not stored", "type", t, "error", err)
	}

	return envelope, nil
}

func (s *CachedSource) fresh(ctx context.Context, t content.Type) (any, bool) {
	if s.ttl <= 0 {
		return nil, false
	}

	snapshot, err := s.store.GetSnapshot(ctx, t)
	if err != nil {
		slog.Warn("Snapshot lookup failed", "type", t, "error", err)
		return nil, false
	}
	if snapshot == nil || s.now().Sub(snapshot.FetchedAt) >= s.ttl {
		return nil, false
	}

	envelope, err := decodeSnapshot(snapshot)
	if err != nil {
		slog.Warn("Snapshot unreadable", "type", t, "error", err)
		return nil, false
	}

	slog.Debug("Serving snapshot", "type", t, "age", s.now().Sub(snapshot.FetchedAt))
	return envelope, true
}

func decodeSnapshot(snapshot *Snapshot) (any, error) {
	var envelope any
	if err := json.Unmarshal(snapshot.Payload, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return envelope, nil
}
