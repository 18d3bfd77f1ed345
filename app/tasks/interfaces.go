package tasks

import "github.com/hwg121/eProject-sub001/app/content"

// TaskSchedulerInterface is what the rest of the application sees of the
// background worker pool.
//
//	scheduler := NewScheduler(registry, cachedSource, snapshotRepo, interval, workers, retention)
//	scheduler.Start()
//	defer scheduler.Stop()
//	scheduler.EnqueueRefresh(content.TypeArticle)
type TaskSchedulerInterface interface {
	Start()
	Stop()
	EnqueueTask(task TaskInterface) error
	EnqueueRefresh(t content.Type) (string, error)
}
