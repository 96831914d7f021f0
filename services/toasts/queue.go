// Package toasts holds the queue of ephemeral user-facing feedback messages.
package toasts

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"animebharat/models"
)

// DefaultDuration is how long a toast stays visible, measured from insertion.
const DefaultDuration = 5 * time.Second

type entry struct {
	toast models.Toast
	timer *time.Timer
}

// Queue is an insertion-ordered toast queue. Every toast owns its own expiry
// timer; dismissing one never affects the others.
type Queue struct {
	mu       sync.Mutex
	duration time.Duration
	entries  []*entry
}

// New creates a queue expiring toasts after the given duration. A duration
// of zero uses DefaultDuration.
func New(duration time.Duration) *Queue {
	if duration <= 0 {
		duration = DefaultDuration
	}
	return &Queue{duration: duration}
}

// Show appends a toast and schedules its expiry.
func (q *Queue) Show(message string, severity models.ToastSeverity) models.Toast {
	toast := models.Toast{
		ID:        uuid.NewString(),
		Message:   message,
		Severity:  severity,
		CreatedAt: time.Now().UTC(),
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	e := &entry{toast: toast}
	e.timer = time.AfterFunc(q.duration, func() { q.Dismiss(toast.ID) })
	q.entries = append(q.entries, e)
	return toast
}

// Success is shorthand for a success toast.
func (q *Queue) Success(message string) models.Toast {
	return q.Show(message, models.ToastSuccess)
}

// Error is shorthand for a failure toast.
func (q *Queue) Error(message string) models.Toast {
	return q.Show(message, models.ToastError)
}

// Info is shorthand for an informational toast.
func (q *Queue) Info(message string) models.Toast {
	return q.Show(message, models.ToastInfo)
}

// Dismiss removes a toast and cancels its expiry timer. Dismissing an
// unknown or already expired ID is a no-op.
func (q *Queue) Dismiss(id string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i, e := range q.entries {
		if e.toast.ID != id {
			continue
		}
		// Stopping an already fired timer is harmless.
		e.timer.Stop()
		q.entries = append(q.entries[:i], q.entries[i+1:]...)
		return
	}
}

// Active returns the visible toasts in insertion order.
func (q *Queue) Active() []models.Toast {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]models.Toast, len(q.entries))
	for i, e := range q.entries {
		out[i] = e.toast
	}
	return out
}

// Close cancels all pending expiry timers.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	for _, e := range q.entries {
		e.timer.Stop()
	}
	q.entries = nil
}
