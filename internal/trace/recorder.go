// Package trace keeps a bounded history of backend requests for the
// dashboard's history panel and optionally exports each completed
// request as an OTLP span.
package trace

import (
	"context"
	"sync"
	"time"

	"chainboard/internal/api"
)

// DefaultMaxEntries is the request history ring size.
const DefaultMaxEntries = 50

// Entry is one recorded request.
type Entry struct {
	Seq int
	api.RequestRecord
}

// Failed reports whether the request errored, transport or backend.
func (e Entry) Failed() bool {
	return e.Err != nil
}

// Stats summarizes the recorded history.
type Stats struct {
	Total      int
	Errors     int
	AvgLatency time.Duration
}

// Recorder stores recent requests newest-last and notifies on change.
// It implements api.RequestObserver.
type Recorder struct {
	mu       sync.RWMutex
	entries  []Entry
	nextSeq  int
	max      int
	onChange func()
	exporter *OTLPExporter
}

var _ api.RequestObserver = (*Recorder)(nil)

// NewRecorder creates a recorder keeping up to max entries. A max of
// zero or less selects DefaultMaxEntries; exporter may be nil.
func NewRecorder(max int, exporter *OTLPExporter) *Recorder {
	if max <= 0 {
		max = DefaultMaxEntries
	}
	return &Recorder{
		max:      max,
		nextSeq:  1,
		exporter: exporter,
	}
}

// ObserveRequest records a completed request, exports it, and fires the
// change callback.
func (r *Recorder) ObserveRequest(rec api.RequestRecord) {
	r.mu.Lock()
	entry := Entry{Seq: r.nextSeq, RequestRecord: rec}
	r.nextSeq++
	r.entries = append(r.entries, entry)
	if len(r.entries) > r.max {
		r.entries = r.entries[len(r.entries)-r.max:]
	}
	exporter := r.exporter
	onChange := r.onChange
	r.mu.Unlock()

	if exporter != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		exporter.ExportRequest(ctx, entry)
		cancel()
	}
	if onChange != nil {
		onChange()
	}
}

// Recent returns recorded requests newest first.
func (r *Recorder) Recent() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Entry, 0, len(r.entries))
	for i := len(r.entries) - 1; i >= 0; i-- {
		out = append(out, r.entries[i])
	}
	return out
}

// Stats computes totals over the retained history.
func (r *Recorder) Stats() Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := Stats{Total: len(r.entries)}
	if stats.Total == 0 {
		return stats
	}
	var sum time.Duration
	for _, e := range r.entries {
		sum += e.Duration
		if e.Failed() {
			stats.Errors++
		}
	}
	stats.AvgLatency = sum / time.Duration(stats.Total)
	return stats
}

// SetOnChange sets the callback fired after each recorded request.
func (r *Recorder) SetOnChange(fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onChange = fn
}

// Shutdown flushes pending exports. Must be called before process exit
// when an exporter is attached.
func (r *Recorder) Shutdown(ctx context.Context) error {
	r.mu.RLock()
	exporter := r.exporter
	r.mu.RUnlock()

	if exporter != nil {
		return exporter.Shutdown(ctx)
	}
	return nil
}
