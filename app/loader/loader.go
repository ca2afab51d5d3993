package loader

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/lysyi3m/benefit-slides/app/benefits"
	"github.com/lysyi3m/benefit-slides/app/cache"
	"github.com/lysyi3m/benefit-slides/app/metrics"
)

// Loader fetches the benefits page, extracts items and keeps the last good
// payload in a cache slot to serve when a later refresh fails.
type Loader struct {
	fetcher   Fetcher
	slot      *cache.Slot
	extractor *benefits.Extractor
	sourceURL string
	runtime   benefits.RuntimeConfig

	now      func() time.Time
	timeout  time.Duration
	freshFor time.Duration
	metrics  *metrics.Metrics
	logger   *slog.Logger

	group singleflight.Group
}

type Option func(*Loader)

func WithClock(now func() time.Time) Option {
	return func(l *Loader) {
		l.now = now
	}
}

// WithTimeout bounds each upstream fetch. Zero means no extra bound.
func WithTimeout(d time.Duration) Option {
	return func(l *Loader) {
		l.timeout = d
	}
}

// WithFreshFor serves the cached payload without fetching while it is
// younger than d.
func WithFreshFor(d time.Duration) Option {
	return func(l *Loader) {
		l.freshFor = d
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(l *Loader) {
		l.metrics = m
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		l.logger = logger
	}
}

func New(fetcher Fetcher, slot *cache.Slot, sourceURL string, runtime benefits.RuntimeConfig, opts ...Option) *Loader {
	l := &Loader{
		fetcher:   fetcher,
		slot:      slot,
		extractor: benefits.NewExtractor(),
		sourceURL: sourceURL,
		runtime:   runtime,
		now:       time.Now,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Loader) SourceURL() string {
	return l.sourceURL
}

func (l *Loader) Runtime() benefits.RuntimeConfig {
	return l.runtime
}

// Load returns a fresh payload, or the cached one marked stale when the
// fetch or extraction fails. The original error is returned only when the
// cache is empty. Concurrent calls share a single upstream fetch, which is
// bounded by WithTimeout but not by any single caller's context; a caller
// whose ctx ends first falls back on its own.
func (l *Loader) Load(ctx context.Context) (benefits.Payload, error) {
	shared := context.WithoutCancel(ctx)
	ch := l.group.DoChan("load", func() (any, error) {
		return l.load(shared)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return benefits.Payload{}, res.Err
		}
		return res.Val.(benefits.Payload), nil

	case <-ctx.Done():
		return l.fallback(&UpstreamError{URL: l.sourceURL, Err: ctx.Err()})
	}
}

func (l *Loader) load(ctx context.Context) (benefits.Payload, error) {
	now := l.now()

	if l.freshFor > 0 {
		if entry, ok := l.slot.Get(); ok && now.Sub(entry.FetchedAt) < l.freshFor {
			l.logger.Debug("Serving cached benefits", "fetched_at", entry.FetchedAt, "items", len(entry.Payload.Items))
			return entry.Payload, nil
		}
	}

	payload, err := l.refresh(ctx, now)
	if err == nil {
		return payload, nil
	}

	return l.fallback(err)
}

func (l *Loader) fallback(err error) (benefits.Payload, error) {
	entry, ok := l.slot.Get()
	if !ok {
		l.logger.Error("Failed to load benefits", "source_url", l.sourceURL, "error", err)
		return benefits.Payload{}, err
	}

	l.metrics.StaleServed()
	l.logger.Warn("Serving stale benefits", "source_url", l.sourceURL, "updated_at", entry.Payload.UpdatedAt, "error", err)

	stale := entry.Payload
	stale.Stale = true
	return stale, nil
}

func (l *Loader) refresh(ctx context.Context, now time.Time) (benefits.Payload, error) {
	start := time.Now()

	fetchCtx := ctx
	if l.timeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	html, err := l.fetcher.Fetch(fetchCtx, l.sourceURL)
	if err != nil {
		l.metrics.ObserveFetch(metrics.ResultUpstreamError, time.Since(start))
		var upstreamErr *UpstreamError
		if !errors.As(err, &upstreamErr) {
			err = &UpstreamError{URL: l.sourceURL, Err: err}
		}
		return benefits.Payload{}, err
	}

	result := l.extractor.Run(html, l.sourceURL)
	for _, skipped := range result.Skipped {
		l.logger.Debug("Benefit candidate skipped", "title", skipped.Title, "reason", skipped.Reason)
	}

	if len(result.Items) == 0 {
		l.metrics.ObserveFetch(metrics.ResultEmpty, time.Since(start))
		return benefits.Payload{}, ErrNoItems
	}

	payload := benefits.NewPayload(result.Items, now, l.sourceURL, l.runtime)
	l.slot.Set(cache.Entry{FetchedAt: now, Payload: payload})

	l.metrics.ObserveFetch(metrics.ResultSuccess, time.Since(start))
	l.metrics.SetItems(len(result.Items))
	l.logger.Info("Benefits refreshed",
		"source_url", l.sourceURL,
		"items", len(result.Items),
		"skipped", len(result.Skipped),
		"duration", time.Since(start))

	return payload, nil
}
