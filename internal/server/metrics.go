package server

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/wizenheimer/localsearch"
)

// Metrics are the service's prometheus collectors, registered on their own
// registry so tests can build servers repeatedly.
type Metrics struct {
	Registry *prometheus.Registry

	Queries        *prometheus.CounterVec
	QueryDuration  prometheus.Histogram
	ResultsPerHit  prometheus.Histogram
	HighlightMarks prometheus.Counter
	RateLimited    prometheus.Counter
}

// Query outcomes used as the "outcome" label.
const (
	outcomeResults = "results"
	outcomeEmpty   = "empty"
	outcomeCleared = "cleared"
	outcomePending = "pending"
)

// NewMetrics creates and registers the collectors. The session state gauge is
// read live on every scrape.
func NewMetrics(session *localsearch.Session) *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		Queries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "localsearch",
			Name:      "queries_total",
			Help:      "Search queries answered, by outcome.",
		}, []string{"outcome"}),
		QueryDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "localsearch",
			Name:      "query_duration_seconds",
			Help:      "Time spent evaluating a query.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
		}),
		ResultsPerHit: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "localsearch",
			Name:      "query_results",
			Help:      "Number of results returned per query.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		}),
		HighlightMarks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "localsearch",
			Name:      "highlight_marks_total",
			Help:      "Marks inserted by the page highlighter.",
		}),
		RateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "localsearch",
			Name:      "rate_limited_total",
			Help:      "API requests rejected by the rate limiter.",
		}),
	}
	state := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "localsearch",
		Name:      "session_state",
		Help:      "Search session state: 0 unloaded, 1 loading, 2 ready.",
	}, func() float64 {
		return float64(session.State())
	})

	m.Registry.MustRegister(m.Queries, m.QueryDuration, m.ResultsPerHit, m.HighlightMarks, m.RateLimited, state)
	return m
}

func outcomeOf(res localsearch.Results) string {
	switch {
	case res.Pending:
		return outcomePending
	case res.Cleared:
		return outcomeCleared
	case len(res.Items) == 0:
		return outcomeEmpty
	default:
		return outcomeResults
	}
}
