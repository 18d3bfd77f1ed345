package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/hwg121/eProject-sub001/app/content"
	"github.com/hwg121/eProject-sub001/app/source"
)

var _ TaskSchedulerInterface = (*Scheduler)(nil)

const taskTimeout = 5 * time.Minute

type ConfigLister interface {
	GetConfig(t content.Type) (*source.Config, error)
	GetConfigs() map[content.Type]*source.Config
	GetEnabledConfigs() map[content.Type]*source.Config
}

type Scheduler struct {
	configs     ConfigLister
	refresher   Refresher
	pruner      Pruner
	retention   time.Duration
	interval    time.Duration
	workerCount int
	ctx         context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	taskQueue   chan TaskInterface

	// nextRefresh is only touched by the ticker goroutine.
	nextRefresh       map[content.Type]time.Time
	backgroundRefresh bool
	now         func() time.Time
}

// NewScheduler builds the worker pool. pruner may be nil when the snapshot
// backend expires entries on its own.
func NewScheduler(configs ConfigLister, refresher Refresher, pruner Pruner,
	interval time.Duration, workerCount int, retention time.Duration) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())

	if workerCount < 1 {
		workerCount = 1
	}

	return &Scheduler{
		configs:     configs,
		refresher:   refresher,
		pruner:      pruner,
		retention:   retention,
		interval:    interval,
		workerCount: workerCount,
		ctx:         ctx,
		cancel:      cancel,
		taskQueue:   make(chan TaskInterface, 100),
		nextRefresh: make(map[content.Type]time.Time),
		now:         time.Now,

		backgroundRefresh: true,
	}
}

// SetBackgroundRefresh turns the periodic refresh of enabled content types
// on or off. It must be called before Start. EnqueueRefresh is unaffected.
func (s *Scheduler) SetBackgroundRefresh(enabled bool) {
	s.backgroundRefresh = enabled
}

func (s *Scheduler) Start() {
	for i := 0; i < s.workerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.enqueueTasks()

		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				s.enqueueTasks()
			}
		}
	}()
}

func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
}

func (s *Scheduler) EnqueueTask(task TaskInterface) error {
	select {
	case <-s.ctx.Done():
		return s.ctx.Err()
	default:
	}

	select {
	case s.taskQueue <- task:
		return nil
	default:
		return fmt.Errorf("task queue is full")
	}
}

// EnqueueRefresh queues an immediate refresh of t, even when background
// refresh is disabled for it, and returns the task ID.
func (s *Scheduler) EnqueueRefresh(t content.Type) (string, error) {
	config, err := s.configs.GetConfig(t)
	if err != nil {
		return "", err
	}

	task := NewRefreshCollectionTask(config, s.refresher, true)
	if err := s.EnqueueTask(task); err != nil {
		return "", err
	}
	return task.GetID(), nil
}

func (s *Scheduler) enqueueTasks() {
	if s.backgroundRefresh {
		s.enqueueRefreshes()
	}

	if s.pruner != nil && s.retention > 0 {
		if err := s.EnqueueTask(NewPruneSnapshotsTask(s.pruner, s.retention)); err != nil {
			slog.Warn("Failed to enqueue PruneSnapshotsTask", "error", err)
		}
	}
}

func (s *Scheduler) enqueueRefreshes() {
	configs := s.configs.GetEnabledConfigs()
	if len(configs) == 0 {
		slog.Debug("No enabled content types found")
	}

	now := s.now().UTC()
	for t, config := range configs {
		if next, ok := s.nextRefresh[t]; ok && next.After(now) {
			slog.Debug("Collection not due for refresh yet", "type", t, "next_refresh_at", next)
			continue
		}

		task := NewRefreshCollectionTask(config, s.refresher, false)
		if err := s.EnqueueTask(task); err != nil {
			slog.Warn("Failed to enqueue RefreshCollectionTask", "type", t, "error", err)
			continue
		}
		s.nextRefresh[t] = now.Add(config.RefreshDuration())
	}
}

func (s *Scheduler) worker(id int) {
	defer s.wg.Done()

	for {
		select {
		case task := <-s.taskQueue:
			s.executeTask(id, task)

		case <-s.ctx.Done():
			return
		}
	}
}

func (s *Scheduler) executeTask(workerID int, task TaskInterface) {
	task.Start()

	taskCtx, cancel := context.WithTimeout(s.ctx, taskTimeout)
	defer cancel()

	err := task.Execute(taskCtx)
	if err == nil {
		return
	}

	slog.Error("Worker task execution failed", "worker_id", workerID, "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "error", err)

	if !task.CanRetry() {
		slog.Error("Task failed after maximum retries", "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "max_retries", task.GetMaxRetries(), "last_error", err)
		return
	}

	task.IncrementRetryCount()
	retryDelay := task.NextRetryDelay()

	slog.Warn("Task retry scheduled", "type", string(task.GetType()), "content_type", task.GetContentType(), "retry_count", task.GetRetryCount(), "max_retries", task.GetMaxRetries(), "delay", retryDelay.String())

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		select {
		case <-s.ctx.Done():
			slog.Debug("Scheduler stopped, skipping task retry", "type", string(task.GetType()), "id", task.GetID())
		case <-time.After(retryDelay):
			if retryErr := s.EnqueueTask(task); retryErr != nil {
				slog.Error("Failed to re-enqueue task for retry", "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "error", retryErr)
			}
		}
	}()
}
