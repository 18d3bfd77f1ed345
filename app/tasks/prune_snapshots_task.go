package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

type Pruner interface {
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// PruneSnapshotsTask deletes snapshots older than retention.
type PruneSnapshotsTask struct {
	Task
	pruner    Pruner
	retention time.Duration
	now       func() time.Time
}

func NewPruneSnapshotsTask(pruner Pruner, retention time.Duration) *PruneSnapshotsTask {
	return &PruneSnapshotsTask{
		Task:      NewTask(TaskTypePruneSnapshots, ""),
		pruner:    pruner,
		retention: retention,
		now:       time.Now,
	}
}

func (t *PruneSnapshotsTask) Execute(ctx context.Context) error {

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	cutoff := t.now().UTC().Add(-t.retention)
	pruned, err := t.pruner.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to prune snapshots: %w", err)
	}

	slog.Info("Task completed",
		"type", "PruneSnapshots",
		"duration", t.GetDuration(),
		"cutoff", cutoff,
		"pruned", pruned)

	return nil
}
