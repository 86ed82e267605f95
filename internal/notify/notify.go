// Package notify surfaces success and failure messages to the user.
//
// The board core only depends on the Notifier interface. Center is the
// implementation used by the TUI: notifications stack up, expire after a
// fixed interval and can be dismissed by hand.
package notify

import (
	"time"

	"github.com/google/uuid"
)

// DefaultTTL is how long a notification stays visible unless dismissed
const DefaultTTL = 5 * time.Second

// Kind represents the severity/type of a notification.
type Kind int

const (
	// KindInfo is a neutral hint (reloads, no-op actions)
	KindInfo Kind = iota
	// KindSuccess confirms that a remote change was accepted
	KindSuccess
	// KindError reports a rejected or failed remote change
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindError:
		return "error"
	default:
		return "info"
	}
}

// Notifier is the fire-and-forget feedback sink the board core talks to.
type Notifier interface {
	Notify(kind Kind, message string)
}

// Func adapts an ordinary function to the Notifier interface.
type Func func(kind Kind, message string)

// Notify calls f(kind, message).
func (f Func) Notify(kind Kind, message string) {
	f(kind, message)
}

// Discard drops every notification.
var Discard Notifier = Func(func(Kind, string) {})

// Notification is a single message with its severity and creation time.
type Notification struct {
	ID        string
	Kind      Kind
	Message   string
	CreatedAt time.Time
}

// Center keeps the visible notifications in arrival order.
// It is not safe for concurrent use; the TUI drives it from its update loop.
type Center struct {
	items []Notification
	ttl   time.Duration
	now   func() time.Time
}

// NewCenter creates a Center whose notifications expire after ttl.
// A non-positive ttl falls back to DefaultTTL.
func NewCenter(ttl time.Duration) *Center {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Center{ttl: ttl, now: time.Now}
}

// WithClock replaces the time source, for tests.
func (c *Center) WithClock(now func() time.Time) *Center {
	c.now = now
	return c
}

// TTL returns the auto-dismiss interval.
func (c *Center) TTL() time.Duration {
	return c.ttl
}

// Notify implements Notifier.
func (c *Center) Notify(kind Kind, message string) {
	c.Add(kind, message)
}

// Add records a notification and returns it so callers can dismiss it later.
func (c *Center) Add(kind Kind, message string) Notification {
	n := Notification{
		ID:        uuid.NewString(),
		Kind:      kind,
		Message:   message,
		CreatedAt: c.now(),
	}
	c.items = append(c.items, n)
	return n
}

// Dismiss removes the notification with the given id.
// Returns false if it was already gone.
func (c *Center) Dismiss(id string) bool {
	for i, n := range c.items {
		if n.ID == id {
			c.items = append(c.items[:i:i], c.items[i+1:]...)
			return true
		}
	}
	return false
}

// DismissLatest removes the most recent notification.
func (c *Center) DismissLatest() bool {
	if len(c.items) == 0 {
		return false
	}
	c.items = c.items[:len(c.items)-1]
	return true
}

// Clear removes all notifications.
func (c *Center) Clear() {
	c.items = nil
}

// Prune drops every notification older than the TTL and reports how many were removed.
func (c *Center) Prune() int {
	now := c.now()
	kept := c.items[:0]
	removed := 0
	for _, n := range c.items {
		if now.Sub(n.CreatedAt) >= c.ttl {
			removed++
			continue
		}
		kept = append(kept, n)
	}
	c.items = kept
	return removed
}

// Active returns the notifications that have not expired yet, oldest first.
func (c *Center) Active() []Notification {
	now := c.now()
	active := make([]Notification, 0, len(c.items))
	for _, n := range c.items {
		if now.Sub(n.CreatedAt) < c.ttl {
			active = append(active, n)
		}
	}
	return active
}

// HasAny returns true if any notification is still held (expired or not).
func (c *Center) HasAny() bool {
	return len(c.items) > 0
}
