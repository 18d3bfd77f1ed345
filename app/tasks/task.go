package tasks

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"

	"github.com/hwg121/eProject-sub001/app/content"
)

type TaskType string

const (
	TaskTypeRefreshCollection TaskType = "refresh_collection"
	TaskTypePruneSnapshots    TaskType = "prune_snapshots"
)

const (
	DefaultMaxRetries = 3

	initialRetryDelay = time.Second
	maxRetryDelay     = 30 * time.Second
)

type TaskInterface interface {
	Execute(ctx context.Context) error
	GetID() string
	GetType() TaskType
	GetContentType() content.Type
	GetRetryCount() int
	GetMaxRetries() int
	IncrementRetryCount()
	CanRetry() bool
	NextRetryDelay() time.Duration
	Start()
	GetDuration() time.Duration
}

type Task struct {
	ID          string
	Type        TaskType
	ContentType content.Type
	RetryCount  int
	MaxRetries  int
	StartedAt   *time.Time

	retryPolicy *backoff.ExponentialBackOff
}

func (t *Task) GetID() string {
	return t.ID
}

func (t *Task) GetType() TaskType {
	return t.Type
}

func (t *Task) GetContentType() content.Type {
	return t.ContentType
}

func (t *Task) GetRetryCount() int {
	return t.RetryCount
}

func (t *Task) GetMaxRetries() int {
	return t.MaxRetries
}

func (t *Task) IncrementRetryCount() {
	t.RetryCount++
}

func (t *Task) CanRetry() bool {
	return t.RetryCount < t.MaxRetries
}

// NextRetryDelay doubles on every call starting at one second, capped at
// thirty seconds.
func (t *Task) NextRetryDelay() time.Duration {
	return t.retryPolicy.NextBackOff()
}

func (t *Task) Start() {
	now := time.Now()
	t.StartedAt = &now
}

func (t *Task) GetDuration() time.Duration {
	if t.StartedAt == nil {
		return 0
	}
	return time.Since(*t.StartedAt)
}

func NewTask(taskType TaskType, contentType content.Type) Task {
	return Task{
		ID:          uuid.NewString(),
		Type:        taskType,
		ContentType: contentType,
		RetryCount:  0,
		MaxRetries:  DefaultMaxRetries,
		retryPolicy: newRetryPolicy(),
	}
}

func newRetryPolicy() *backoff.ExponentialBackOff {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = initialRetryDelay
	policy.MaxInterval = maxRetryDelay
	policy.Multiplier = 2
	policy.RandomizationFactor = 0
	policy.MaxElapsedTime = 0
	policy.Reset()
	return policy
}
