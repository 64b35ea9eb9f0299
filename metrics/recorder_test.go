package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/virgidrex/sentinela-bot/models"
)

func delta(t *testing.T, collector prometheus.Collector, observe func()) float64 {
	t.Helper()

	before := testutil.ToFloat64(collector)
	observe()
	after := testutil.ToFloat64(collector)
	return after - before
}

func TestRecorderLookups(t *testing.T) {
	r := NewRecorder("")
	start := time.Now().Add(-100 * time.Millisecond)

	if inc := delta(t, lookupsTotal.WithLabelValues("unknown", "success"), func() {
		r.ObserveLookup(nil, start)
	}); inc != 1 {
		t.Fatalf("expected lookup success increment, got %v", inc)
	}

	if inc := delta(t, lookupsTotal.WithLabelValues("unknown", "error"), func() {
		r.ObserveLookup(errors.New("timeout"), start)
	}); inc != 1 {
		t.Fatalf("expected lookup error increment, got %v", inc)
	}
}

func TestRecorderOutcomes(t *testing.T) {
	r := NewRecorder("explorer")

	if inc := delta(t, outcomesTotal.WithLabelValues("holder"), func() {
		r.ObserveOutcome(models.OutcomeHolder)
	}); inc != 1 {
		t.Fatalf("expected holder increment, got %v", inc)
	}

	if inc := delta(t, outcomesTotal.WithLabelValues("invalid_address"), func() {
		r.ObserveOutcome(models.OutcomeInvalidAddress)
	}); inc != 1 {
		t.Fatalf("expected invalid address increment, got %v", inc)
	}
}
