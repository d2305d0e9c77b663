package prometheus

import (
	"context"
	"time"

	"github.com/fwojciec/vipbot"
	"github.com/prometheus/client_golang/prometheus"
)

// Ensure MetricsSource implements vipbot.Source at compile time.
var _ vipbot.Source = (*MetricsSource)(nil)

// Source operation labels.
const (
	OpDataset  = "dataset"
	OpRevision = "revision"
)

// MetricsSource wraps a Source, counting fetches by outcome and timing them.
type MetricsSource struct {
	next     vipbot.Source
	fetches  *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetricsSource wraps next and registers its metrics with reg.
func NewMetricsSource(next vipbot.Source, reg prometheus.Registerer) *MetricsSource {
	s := &MetricsSource{
		next: next,
		fetches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Subsystem: "source",
				Name:      "fetches_total",
				Help:      "Total upstream fetches by operation and result.",
			},
			[]string{"op", "result"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Subsystem: "source",
				Name:      "fetch_duration_seconds",
				Help:      "Upstream fetch latency, retries included.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"op"},
		),
	}
	reg.MustRegister(s.fetches, s.duration)
	return s
}

// FetchDataset delegates to the wrapped source and records the outcome.
func (s *MetricsSource) FetchDataset(ctx context.Context) (content string, err error) {
	defer s.observe(OpDataset, time.Now(), &err)
	return s.next.FetchDataset(ctx)
}

// FetchRevision delegates to the wrapped source and records the outcome.
func (s *MetricsSource) FetchRevision(ctx context.Context) (rev string, err error) {
	defer s.observe(OpRevision, time.Now(), &err)
	return s.next.FetchRevision(ctx)
}

func (s *MetricsSource) observe(op string, begin time.Time, err *error) {
	result := "ok"
	if *err != nil {
		result = vipbot.ErrorCode(*err)
	}
	s.duration.WithLabelValues(op).Observe(time.Since(begin).Seconds())
	s.fetches.WithLabelValues(op, result).Inc()
}
