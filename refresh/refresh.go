// Package refresh keeps the cached catalog in step with its published
// source. A Refresher polls the cheap revision marker on a fixed interval
// and only downloads and parses the dataset when the marker changes or the
// cache is still empty.
package refresh

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/vipbot"
)

var _ vipbot.RefreshMonitor = (*Refresher)(nil)

// Refresher runs refresh cycles against a Source and a Catalog.
type Refresher struct {
	Source  vipbot.Source
	Catalog vipbot.Catalog

	// Notifier, if set, is told about updates adopted after the cache was
	// first populated.
	Notifier vipbot.Notifier
	Logger   *slog.Logger

	// Interval between cycles. Defaults to vipbot.DefaultRefreshInterval.
	Interval time.Duration

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time

	mu     sync.Mutex
	status vipbot.RefreshStatus
}

// Run performs one cycle immediately and then one per Interval until ctx is
// canceled. Cycles never overlap and their failures never stop the loop.
func (r *Refresher) Run(ctx context.Context) error {
	interval := r.interval()

	r.mu.Lock()
	r.status.Running = true
	r.status.Interval = interval
	r.mu.Unlock()
	defer func() {
		r.mu.Lock()
		r.status.Running = false
		r.mu.Unlock()
	}()

	r.cycle(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			r.cycle(ctx)
		}
	}
}

func (r *Refresher) cycle(ctx context.Context) {
	if _, err := r.Refresh(ctx); err != nil && ctx.Err() == nil {
		r.logger().Error("refresh cycle failed", "err", err)
	}
}

// Refresh runs a single cycle: check the revision marker and, when it
// changed or the cache is empty, fetch, parse and offer a new snapshot to
// the catalog.
func (r *Refresher) Refresh(ctx context.Context) (result *vipbot.RefreshResult, err error) {
	log := r.logger()
	result = &vipbot.RefreshResult{}

	begin := r.now()
	revision, revErr := r.Source.FetchRevision(ctx)
	latency := r.now().Sub(begin)

	defer func() {
		recErr := err
		if recErr == nil {
			recErr = revErr
		}
		r.record(begin, latency, revErr == nil, recErr)
	}()

	if revErr != nil {
		log.Warn("revision check failed, assuming no change", "err", revErr)
	} else {
		result.Checked = true
		result.Revision = revision
	}

	current := r.Catalog.Snapshot()
	result.Bootstrap = current.IsEmpty()

	changed := revision != "" && revision != current.Revision
	if !result.Bootstrap && !changed {
		log.Debug("catalog is up to date", "revision", current.ShortRevision())
		return result, nil
	}

	if result.Bootstrap {
		log.Info("catalog cache is empty, fetching dataset")
	} else {
		log.Info("revision changed, fetching dataset", "from", current.ShortRevision(), "to", revision)
	}

	text, err := r.Source.FetchDataset(ctx)
	if err != nil {
		return result, fmt.Errorf("fetch dataset: %w", err)
	}

	snap, warnings := vipbot.ParseCatalog(text)
	for _, w := range warnings {
		log.Warn("skipping malformed dataset line", "line", w.Line, "reason", w.Reason, "text", w.Text)
	}
	snap.Revision = revision
	snap.Digest = Digest(text)
	snap.FetchedAt = r.now()

	result.Fetched = true
	result.Products = len(snap.Products)
	result.FAQ = len(snap.FAQ)
	result.Warnings = warnings

	if !r.Catalog.Replace(snap) {
		log.Warn("dataset has no products or FAQ, keeping previous catalog", "digest", snap.Digest)
		return result, nil
	}
	result.Adopted = true

	log.Info("catalog updated",
		"products", result.Products,
		"faq", result.FAQ,
		"categories", len(snap.Categories),
		"revision", snap.ShortRevision(),
	)

	if !result.Bootstrap && r.Notifier != nil {
		if err := r.Notifier.NotifyUpdate(ctx, vipbot.NewCatalogUpdate(snap)); err != nil {
			log.Error("update notification failed", "err", err)
		}
	}

	return result, nil
}

// Status reports the state of the refresh loop.
func (r *Refresher) Status() vipbot.RefreshStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.status
	if s.Interval == 0 {
		s.Interval = r.interval()
	}
	return s
}

// record stores the outcome of a cycle. The latency is kept only when the
// revision check succeeded, since a failed check includes retry backoff.
func (r *Refresher) record(checkedAt time.Time, latency time.Duration, checked bool, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.status.Cycles++
	r.status.LastCheck = checkedAt
	if checked {
		r.status.LastLatency = latency
	}
	r.status.LastError = ""
	if err != nil {
		r.status.LastError = err.Error()
	}
}

func (r *Refresher) interval() time.Duration {
	if r.Interval > 0 {
		return r.Interval
	}
	return vipbot.DefaultRefreshInterval
}

func (r *Refresher) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

func (r *Refresher) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.New(slog.DiscardHandler)
}

// Digest returns a short content hash of a raw dataset.
func Digest(content string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(content))
}
