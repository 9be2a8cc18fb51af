package trace

import (
	"context"
	"errors"
	"testing"
	"time"

	"chainboard/internal/api"
)

func record(path string, status int, d time.Duration, err error) api.RequestRecord {
	return api.RequestRecord{
		Method:   "POST",
		Path:     path,
		Status:   status,
		Start:    time.Now(),
		Duration: d,
		Err:      err,
	}
}

func TestRecorderKeepsNewestFirst(t *testing.T) {
	r := NewRecorder(10, nil)

	r.ObserveRequest(record("/predict/supplier", 200, 5*time.Millisecond, nil))
	r.ObserveRequest(record("/predict/shipment", 200, 5*time.Millisecond, nil))
	r.ObserveRequest(record("/optimize/routing", 200, 5*time.Millisecond, nil))

	entries := r.Recent()
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].Path != "/optimize/routing" {
		t.Errorf("expected newest entry first, got %q", entries[0].Path)
	}
	if entries[2].Path != "/predict/supplier" {
		t.Errorf("expected oldest entry last, got %q", entries[2].Path)
	}
}

func TestRecorderEvictsOldest(t *testing.T) {
	r := NewRecorder(3, nil)

	for i := 0; i < 5; i++ {
		r.ObserveRequest(record("/health", 200, time.Millisecond, nil))
	}

	entries := r.Recent()
	if len(entries) != 3 {
		t.Fatalf("expected ring capped at 3, got %d", len(entries))
	}
	// Sequence numbers survive eviction.
	if entries[0].Seq != 5 {
		t.Errorf("expected newest seq 5, got %d", entries[0].Seq)
	}
	if entries[2].Seq != 3 {
		t.Errorf("expected oldest retained seq 3, got %d", entries[2].Seq)
	}
}

func TestRecorderDefaultCapacity(t *testing.T) {
	r := NewRecorder(0, nil)

	for i := 0; i < DefaultMaxEntries+10; i++ {
		r.ObserveRequest(record("/health", 200, time.Millisecond, nil))
	}

	if got := len(r.Recent()); got != DefaultMaxEntries {
		t.Errorf("expected default cap %d, got %d", DefaultMaxEntries, got)
	}
}

func TestRecorderStats(t *testing.T) {
	r := NewRecorder(10, nil)

	if s := r.Stats(); s.Total != 0 || s.Errors != 0 || s.AvgLatency != 0 {
		t.Errorf("expected zero stats on empty recorder, got %+v", s)
	}

	r.ObserveRequest(record("/predict/supplier", 200, 10*time.Millisecond, nil))
	r.ObserveRequest(record("/predict/supplier", 200, 30*time.Millisecond, nil))
	r.ObserveRequest(record("/predict/supplier", 503, 20*time.Millisecond, errors.New("model not loaded")))

	s := r.Stats()
	if s.Total != 3 {
		t.Errorf("expected total 3, got %d", s.Total)
	}
	if s.Errors != 1 {
		t.Errorf("expected 1 error, got %d", s.Errors)
	}
	if s.AvgLatency != 20*time.Millisecond {
		t.Errorf("expected avg 20ms, got %v", s.AvgLatency)
	}
}

func TestRecorderOnChange(t *testing.T) {
	r := NewRecorder(10, nil)

	fired := 0
	r.SetOnChange(func() { fired++ })

	r.ObserveRequest(record("/health", 200, time.Millisecond, nil))
	r.ObserveRequest(record("/health", 200, time.Millisecond, nil))

	if fired != 2 {
		t.Errorf("expected onChange fired twice, got %d", fired)
	}
}

func TestEntryFailed(t *testing.T) {
	ok := Entry{RequestRecord: record("/health", 200, time.Millisecond, nil)}
	if ok.Failed() {
		t.Error("expected successful entry not failed")
	}
	bad := Entry{RequestRecord: record("/health", 422, time.Millisecond, errors.New("validation error"))}
	if !bad.Failed() {
		t.Error("expected errored entry failed")
	}
}

func TestNewOTLPExporterDisabled(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")

	exporter, err := NewOTLPExporter(context.Background(), "", "chainboard")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if exporter != nil {
		t.Error("expected nil exporter when no endpoint configured")
	}

	// Nil exporter methods are no-ops.
	exporter.ExportRequest(context.Background(), Entry{})
	if err := exporter.Shutdown(context.Background()); err != nil {
		t.Errorf("unexpected shutdown error: %v", err)
	}
}

func TestRecorderShutdownWithoutExporter(t *testing.T) {
	r := NewRecorder(10, nil)
	if err := r.Shutdown(context.Background()); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
