// Package diag collects structured diagnostic events from the harness.
//
// The resolution and injection phases are deliberately lenient: an
// unresolvable reference or injection point is skipped rather than fatal.
// A skip is still a reportable event, not a silent no-op — tests and the
// CLI inspect the recorder to tell a clean run from a degraded one.
package diag

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vk/webstage/internal/ctxlog"
)

// Kind classifies a diagnostic event.
type Kind string

const (
	// KindSkippedReference is recorded when a declared reference has no
	// matching registry binding and resolution skips it.
	KindSkippedReference Kind = "skipped_reference"

	// KindUnresolvedInjectionPoint is recorded when a handler field cannot
	// be injected and is left at its zero value.
	KindUnresolvedInjectionPoint Kind = "unresolved_injection_point"
)

// Event is a single recorded diagnostic.
type Event struct {
	ID     string
	Kind   Kind
	Name   string
	Detail string
	Time   time.Time
}

// Recorder is an append-only, thread-safe collector of diagnostic events.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Record appends an event and logs it at Warn through the context logger.
func (r *Recorder) Record(ctx context.Context, kind Kind, name, detail string) Event {
	ev := Event{
		ID:     uuid.New().String(),
		Kind:   kind,
		Name:   name,
		Detail: detail,
		Time:   time.Now(),
	}

	r.mu.Lock()
	r.events = append(r.events, ev)
	r.mu.Unlock()

	ctxlog.FromContext(ctx).Warn("Diagnostic event recorded.",
		"kind", string(kind), "name", name, "detail", detail, "event_id", ev.ID)
	return ev
}

// Snapshot returns a copy of all recorded events in record order.
func (r *Recorder) Snapshot() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// ByKind returns all recorded events of the given kind.
func (r *Recorder) ByKind(kind Kind) []Event {
	var out []Event
	for _, ev := range r.Snapshot() {
		if ev.Kind == kind {
			out = append(out, ev)
		}
	}
	return out
}
