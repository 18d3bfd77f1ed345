package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/hwg121/eProject-sub001/app/content"
	"github.com/hwg121/eProject-sub001/app/json"
)

const (
	DefaultMaxRetries      = 2
	DefaultInitialInterval = 250 * time.Millisecond
)

var ErrUnexpectedStatus = errors.New("unexpected status")

// HTTPSource fetches whole collections from the content API. A body that
// cannot be decoded is reported as a nil envelope, which resolves to
// nothing; only network errors and bad statuses are transport failures.
type HTTPSource struct {
	configs         ConfigProvider
	httpClient      *http.Client
	parser          *FeedParser
	userAgent       string
	maxRetries      uint64
	initialInterval time.Duration
}

func NewHTTPSource(configs ConfigProvider, httpClient *http.Client, parser *FeedParser, userAgent string) *HTTPSource {
	return &HTTPSource{
		configs:         configs,
		httpClient:      httpClient,
		parser:          parser,
		userAgent:       userAgent,
		maxRetries:      DefaultMaxRetries,
		initialInterval: DefaultInitialInterval,
	}
}

func (s *HTTPSource) ListRecords(ctx context.Context, t content.Type) (any, error) {
	config, err := s.configs.GetConfig(t)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	data, err := s.fetchWithRetry(ctx, config)
	if err != nil {
		return nil, err
	}

	envelope := s.decode(config, data)

	slog.Debug("Collection fetched", "type", t, "endpoint", config.Endpoint, "bytes", len(data), "duration", time.Since(start))

	return envelope, nil
}

func (s *HTTPSource) decode(config *Config, data []byte) any {
	if config.Format == FormatFeed {
		records, err := s.parser.Run(data)
		if err != nil {
			slog.Warn("Discarding undecodable feed", "type", config.Type, "error", err)
			return nil
		}
		return records
	}

	var envelope any
	if err := json.Unmarshal(data, &envelope); err != nil {
		slog.Warn("Discarding undecodable response", "type", config.Type, "error", err)
		return nil
	}
	return envelope
}

func (s *HTTPSource) fetchWithRetry(ctx context.Context, config *Config) ([]byte, error) {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = s.initialInterval
	policy.MaxElapsedTime = 0

	var data []byte
	operation := func() error {
		var err error
		data, err = s.fetch(ctx, config)
		return err
	}

	notify := func(err error, wait time.Duration) {
		slog.Warn("Retrying collection fetch", "type", config.Type, "wait", wait, "error", err)
	}

	b := backoff.WithContext(backoff.WithMaxRetries(policy, s.maxRetries), ctx)
	if err := backoff.RetryNotify(operation, b, notify); err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", config.Type, err)
	}

	return data, nil
}

func (s *HTTPSource) fetch(ctx context.Context, config *Config) ([]byte, error) {
	timeout := config.TimeoutDuration()
	if timeout <= 0 {
		timeout = DefaultTimeout * time.Second
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", config.Endpoint, nil)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("failed to create request: %w", err))
	}

	req.Header.Set("User-Agent", s.userAgent)
	if config.Format == FormatFeed {
		req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/feed+json, */*")
	} else {
		req.Header.Set("Accept", "application/json")
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, backoff.Permanent(err)
		}
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("%w: %s", ErrUnexpectedStatus, resp.Status)
		if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
			return nil, backoff.Permanent(err)
		}
		return nil, err
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}
