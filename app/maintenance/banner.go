package maintenance

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

const DefaultInterval = 60 * time.Second

// Banner keeps the countdown text of a maintenance window up to date. The
// text is recomputed on a fixed interval until the banner is stopped or its
// context ends.
type Banner struct {
	formatter Formatter
	endsAt    string
	interval  time.Duration

	mu      sync.RWMutex
	text    string
	updates atomic.Int64

	runMu  sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewBanner(formatter Formatter, endsAt string, interval time.Duration) *Banner {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Banner{
		formatter: formatter,
		endsAt:    endsAt,
		interval:  interval,
	}
}

func (b *Banner) Active() bool {
	return b.endsAt != ""
}

func (b *Banner) EndsAt() string {
	return b.endsAt
}

func (b *Banner) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.text
}

// Updates reports how many times the text has been recomputed.
func (b *Banner) Updates() int64 {
	return b.updates.Load()
}

// Start computes the text once and keeps refreshing it in the background.
// An inactive banner does nothing, and so does a second call.
func (b *Banner) Start(ctx context.Context) {
	if !b.Active() {
		return
	}

	b.runMu.Lock()
	defer b.runMu.Unlock()
	if b.cancel != nil {
		return
	}

	ctx, b.cancel = context.WithCancel(ctx)
	b.refresh()

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()

		ticker := time.NewTicker(b.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				slog.Debug("Maintenance banner stopped", "ends_at", b.endsAt)
				return
			case <-ticker.C:
				b.refresh()
			}
		}
	}()
}

// Stop cancels the refresh loop and waits for it to exit.
func (b *Banner) Stop() {
	b.runMu.Lock()
	cancel := b.cancel
	b.runMu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	b.wg.Wait()
}

func (b *Banner) refresh() {
	text := b.formatter.FormatRemaining(b.endsAt)

	b.mu.Lock()
	b.text = text
	b.mu.Unlock()

	b.updates.Add(1)
}
