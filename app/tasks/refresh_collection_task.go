package tasks

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hwg121/eProject-sub001/app/content"
	"github.com/hwg121/eProject-sub001/app/source"
)

// Refresher fetches a collection bypassing any fresh snapshot and stores
// the result.
type Refresher interface {
	Refresh(ctx context.Context, t content.Type) (any, error)
}

type RefreshCollectionTask struct {
	Task
	Config    *source.Config
	refresher Refresher
	// force runs the task even when background refresh is disabled.
	force bool
}

func NewRefreshCollectionTask(config *source.Config, refresher Refresher, force bool) *RefreshCollectionTask {
	return &RefreshCollectionTask{
		Task:      NewTask(TaskTypeRefreshCollection, config.Type),
		Config:    config,
		refresher: refresher,
		force:     force,
	}
}

func (t *RefreshCollectionTask) Execute(ctx context.Context) error {

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if !t.Config.Settings.Enabled && !t.force {
		slog.Debug("Content type disabled, skipping", "type", t.ContentType)
		return nil
	}

	envelope, err := t.refresher.Refresh(ctx, t.ContentType)
	if err != nil {
		return fmt.Errorf("failed to refresh %s: %w", t.ContentType, err)
	}

	slog.Info("Task completed",
		"type", "RefreshCollection",
		"content_type", t.ContentType,
		"duration", t.GetDuration(),
		"records", len(content.Unwrap(envelope)))

	return nil
}
