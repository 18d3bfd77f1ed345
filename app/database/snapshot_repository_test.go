package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/hwg121/eProject-sub001/app/content"
	"github.com/hwg121/eProject-sub001/app/source"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "data", "snapshots.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRunMigrationsIsIdempotent(t *testing.T) {
	db := openTestDB(t)

	version, dirty, err := RunMigrations(db)
	if err != nil {
		t.Fatalf("Expected second run to succeed, got %v", err)
	}
	if version != 1 || dirty {
		t.Errorf("Expected version 1 clean, got %d dirty=%v", version, dirty)
	}
}

func TestSnapshotRepositoryRoundTrip(t *testing.T) {
	repo := NewSnapshotRepository(openTestDB(t))
	ctx := context.Background()

	missing, err := repo.GetSnapshot(ctx, content.TypeArticle)
	if err != nil {
		t.Fatal(err)
	}
	if missing != nil {
		t.Errorf("Expected nil snapshot, got %+v", missing)
	}

	fetchedAt := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
	err = repo.PutSnapshot(ctx, source.Snapshot{
		Type:      content.TypeArticle,
		Payload:   []byte(`[{"slug":"a"}]`),
		FetchedAt: fetchedAt,
	})
	if err != nil {
		t.Fatal(err)
	}

	err = repo.PutSnapshot(ctx, source.Snapshot{
		Type:      content.TypeArticle,
		Payload:   []byte(`[{"slug":"b"}]`),
		FetchedAt: fetchedAt.Add(time.Minute),
	})
	if err != nil {
		t.Fatalf("Expected upsert to replace the snapshot, got %v", err)
	}

	got, err := repo.GetSnapshot(ctx, content.TypeArticle)
	if err != nil {
		t.Fatal(err)
	}
	if got == nil {
		t.Fatal("Expected snapshot, got nil")
	}
	if string(got.Payload) != `[{"slug":"b"}]` {
		t.Errorf("Expected latest payload, got %s", got.Payload)
	}
	if !got.FetchedAt.Equal(fetchedAt.Add(time.Minute)) {
		t.Errorf("Expected fetched_at %v, got %v", fetchedAt.Add(time.Minute), got.FetchedAt)
	}
	if got.Type != content.TypeArticle {
		t.Errorf("Expected type article, got %s", got.Type)
	}
}

func TestSnapshotRepositoryDeleteOlderThan(t *testing.T) {
	repo := NewSnapshotRepository(openTestDB(t))
	ctx := context.Background()
	now := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

	snapshots := []source.Snapshot{
		{Type: content.TypeTool, Payload: []byte(`[]`), FetchedAt: now.Add(-2 * time.Hour)},
		{Type: content.TypePot, Payload: []byte(`[]`), FetchedAt: now.Add(-30 * time.Minute)},
		{Type: content.TypeTag, Payload: []byte(`[]`), FetchedAt: now},
	}
	for _, s := range snapshots {
		if err := repo.PutSnapshot(ctx, s); err != nil {
			t.Fatal(err)
		}
	}

	pruned, err := repo.DeleteOlderThan(ctx, now.Add(-time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if pruned != 1 {
		t.Errorf("Expected 1 pruned snapshot, got %d", pruned)
	}

	if got, _ := repo.GetSnapshot(ctx, content.TypeTool); got != nil {
		t.Errorf("Expected tool snapshot to be pruned, got %+v", got)
	}
	if got, _ := repo.GetSnapshot(ctx, content.TypePot); got == nil {
		t.Error("Expected pot snapshot to survive")
	}
}
