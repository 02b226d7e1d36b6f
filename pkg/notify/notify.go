// Package notify carries user-facing notifications from the store to whatever displays
// them. The store only produces notifications; sinks decide how and for how long to
// show them.
package notify

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Severity controls how a notification is presented.
type Severity string

// These constants refer to the supported severities.
const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityInfo    Severity = "info"
)

// DefaultDuration is how long a notification stays visible unless it says otherwise.
const DefaultDuration = 4 * time.Second

// Notification is a transient message for the user.
type Notification struct {
	ID          string
	Title       string
	Description string
	Severity    Severity
	Duration    time.Duration
	CreatedAt   time.Time
}

// Sink accepts notifications.
type Sink interface {
	Notify(n Notification)
}

// Queue keeps notifications until they are removed or expire.
type Queue struct {
	mu    sync.Mutex
	now   func() time.Time
	items []Notification
}

// NewQueue returns an empty Queue.
func NewQueue() *Queue {
	return &Queue{now: time.Now}
}

// Notify appends n, filling in its id, creation time and default duration.
func (q *Queue) Notify(n Notification) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if n.ID == "" {
		n.ID = uuid.NewString()
	}

	if n.Severity == "" {
		n.Severity = SeverityInfo
	}

	if n.Duration <= 0 {
		n.Duration = DefaultDuration
	}

	n.CreatedAt = q.now()
	q.items = append(q.items, n)
}

// Remove drops the notification with the given id. It reports whether one was found.
func (q *Queue) Remove(id string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i := range q.items {
		if q.items[i].ID == id {
			q.items = append(q.items[:i], q.items[i+1:]...)

			return true
		}
	}

	return false
}

// List returns a copy of the pending notifications, oldest first.
func (q *Queue) List() []Notification {
	q.mu.Lock()
	defer q.mu.Unlock()

	return append([]Notification{}, q.items...)
}

// Latest returns the most recent pending notification.
func (q *Queue) Latest() (Notification, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) == 0 {
		return Notification{}, false
	}

	return q.items[len(q.items)-1], true
}

// Expire removes every notification whose duration has elapsed at now and returns
// how many were removed.
func (q *Queue) Expire(now time.Time) int {
	q.mu.Lock()
	defer q.mu.Unlock()

	kept := q.items[:0]

	for _, n := range q.items {
		if now.Before(n.CreatedAt.Add(n.Duration)) {
			kept = append(kept, n)
		}
	}

	removed := len(q.items) - len(kept)
	q.items = kept

	return removed
}

// Printer writes each notification as one line, for non-interactive commands.
type Printer struct {
	W io.Writer
}

// Notify writes n to the printer's writer.
func (p Printer) Notify(n Notification) {
	if n.Description == "" {
		fmt.Fprintf(p.W, "%s\n", n.Title)

		return
	}

	fmt.Fprintf(p.W, "%s %s\n", n.Title, n.Description)
}
