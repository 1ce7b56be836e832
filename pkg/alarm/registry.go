// Package alarm owns the in-memory pending-alarm set and the polling
// clock that fires due alarms.
package alarm

import (
	"time"

	"go.uber.org/zap"

	"github.com/glintapp/glint/pkg/store"
)

// Registry is the exclusive owner of the in-memory pending-alarm set. The
// store is a passive mirror: every mutation synchronously rewrites the
// alarms document, so the persisted set stays consistent with memory.
//
// The set is order-preserving and scanned linearly; volumes are a few
// alarms per user, so there is no index or sort.
type Registry struct {
	store   *store.Store
	log     *zap.Logger
	pending []store.PendingAlarm
}

// NewRegistry creates a Registry seeded from the persisted alarms
// document. Callers should follow up with ReconcileOnLoad once at process
// start to drop alarms that went due while the process was down.
func NewRegistry(st *store.Store, log *zap.Logger) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry{
		store:   st,
		log:     log,
		pending: st.LoadAlarms(),
	}
}

// ReconcileOnLoad discards alarms whose due time is strictly in the past;
// they are considered missed and are not re-surfaced. Records with an
// unparseable reminder time are kept: they are inert, never due, and never
// silently dropped. Idempotent.
func (r *Registry) ReconcileOnLoad(now time.Time) {
	before := len(r.pending)
	kept := r.pending[:0]
	for _, a := range r.pending {
		due, err := a.DueAt()
		if err == nil && due.Before(now) {
			r.log.Info("dropping missed alarm",
				zap.String("text", a.Text),
				zap.String("reminder_time", a.ReminderTime))
			continue
		}
		kept = append(kept, a)
	}
	r.pending = kept
	if len(kept) != before {
		r.Persist()
	}
}

// Enqueue appends an alarm to the pending set and persists.
func (r *Registry) Enqueue(a store.PendingAlarm) {
	r.pending = append(r.pending, a)
	r.Persist()
	r.log.Info("alarm scheduled",
		zap.String("text", a.Text),
		zap.String("reminder_time", a.ReminderTime))
}

// Reinstate re-enters a fired alarm's replacement into the set. Snooze
// uses this; the snoozed alarm is a fresh entity, not the original.
func (r *Registry) Reinstate(a store.PendingAlarm) {
	r.Enqueue(a)
}

// TakeDue removes and returns the first alarm (in insertion order) that is
// due at the given instant. At most one alarm is removed per call, so a
// backlog of due alarms drains one per tick instead of bursting.
// Unparseable records are skipped but left in place.
func (r *Registry) TakeDue(now time.Time) (store.PendingAlarm, bool) {
	for i, a := range r.pending {
		if !a.Due(now) {
			continue
		}
		r.pending = append(r.pending[:i], r.pending[i+1:]...)
		r.Persist()
		return a, true
	}
	return store.PendingAlarm{}, false
}

// Remove deletes the first alarm equal to a from the set and persists.
// Returns false when no match exists.
func (r *Registry) Remove(a store.PendingAlarm) bool {
	for i, p := range r.pending {
		if p == a {
			r.pending = append(r.pending[:i], r.pending[i+1:]...)
			r.Persist()
			return true
		}
	}
	return false
}

// Pending returns a copy of the pending set in insertion order.
func (r *Registry) Pending() []store.PendingAlarm {
	out := make([]store.PendingAlarm, len(r.pending))
	copy(out, r.pending)
	return out
}

// Len returns the number of pending alarms.
func (r *Registry) Len() int {
	return len(r.pending)
}

// Persist rewrites the alarms document from the in-memory set.
func (r *Registry) Persist() {
	r.store.SaveAlarms(r.pending)
}
