package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/virgidrex/sentinela-bot/models"
)

var (
	lookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sentinela",
		Subsystem: "balance_lookup",
		Name:      "requests_total",
		Help:      "Count of balance lookups.",
	}, []string{"source", "status"})
	lookupDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "sentinela",
		Subsystem: "balance_lookup",
		Name:      "duration_seconds",
		Help:      "Duration of balance lookups.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"source", "status"})
	outcomesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sentinela",
		Subsystem: "classifier",
		Name:      "outcomes_total",
		Help:      "Count of address checks by outcome.",
	}, []string{"outcome"})
)

// Recorder tracks lookup and classification metrics for one balance source.
type Recorder struct {
	source string
}

func NewRecorder(source string) *Recorder {
	if source == "" {
		source = "unknown"
	}
	return &Recorder{source: source}
}

// ObserveLookup records a single lookup outcome and duration.
func (r Recorder) ObserveLookup(err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}

	lookupsTotal.WithLabelValues(r.source, status).Inc()
	lookupDuration.WithLabelValues(r.source, status).Observe(time.Since(started).Seconds())
}

func (r Recorder) ObserveOutcome(kind models.OutcomeKind) {
	outcomesTotal.WithLabelValues(string(kind)).Inc()
}
