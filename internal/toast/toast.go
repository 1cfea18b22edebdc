// Package toast implements transient notification messages. Messages expire
// on their own after a timeout, can be dismissed early, and are delivered to
// the view in arrival order.
package toast

import (
	"sync"
	"time"

	"storefront/internal/logging"
)

// Kind classifies a message for styling.
type Kind int

const (
	KindInfo Kind = iota
	KindSuccess
	KindWarning
	KindError
)

// String returns the display name for each kind.
func (k Kind) String() string {
	switch k {
	case KindInfo:
		return "info"
	case KindSuccess:
		return "success"
	case KindWarning:
		return "warning"
	case KindError:
		return "error"
	}
	return "unknown"
}

// DefaultTimeout is how long a message stays up when the caller does not
// pick a duration.
const DefaultTimeout = 4 * time.Second

// Message is one active notification.
type Message struct {
	ID   int
	Text string
	Kind Kind
}

// Notifier manages the active message list. Safe for concurrent use.
type Notifier struct {
	mu             sync.Mutex
	nextID         int
	defaultTimeout time.Duration
	messages       []Message
	timers         map[int]*time.Timer
	subscribers    map[int]func()
	nextSubID      int
}

// NewNotifier creates an empty notifier using DefaultTimeout.
func NewNotifier() *Notifier {
	return NewNotifierWithTimeout(DefaultTimeout)
}

// NewNotifierWithTimeout creates an empty notifier whose messages expire
// after d unless the caller picks a duration per message.
func NewNotifierWithTimeout(d time.Duration) *Notifier {
	if d <= 0 {
		d = DefaultTimeout
	}
	return &Notifier{
		nextID:         1,
		defaultTimeout: d,
		timers:         make(map[int]*time.Timer),
		subscribers:    make(map[int]func()),
	}
}

// Subscribe registers a callback invoked whenever the message list changes.
// The returned function unsubscribes.
func (n *Notifier) Subscribe(fn func()) func() {
	n.mu.Lock()
	id := n.nextSubID
	n.nextSubID++
	n.subscribers[id] = fn
	n.mu.Unlock()

	return func() {
		n.mu.Lock()
		delete(n.subscribers, id)
		n.mu.Unlock()
	}
}

func (n *Notifier) notifyLocked() []func() {
	fns := make([]func(), 0, len(n.subscribers))
	for _, fn := range n.subscribers {
		fns = append(fns, fn)
	}
	return fns
}

// Show adds a message and schedules its expiry. A non-positive timeout uses
// the notifier's default. The returned id can be used to dismiss early.
func (n *Notifier) Show(text string, kind Kind, timeout time.Duration) int {
	if timeout <= 0 {
		timeout = n.defaultTimeout
	}

	n.mu.Lock()
	id := n.nextID
	n.nextID++
	n.messages = append(n.messages, Message{ID: id, Text: text, Kind: kind})
	n.timers[id] = time.AfterFunc(timeout, func() { n.Dismiss(id) })
	fns := n.notifyLocked()
	n.mu.Unlock()

	logging.UI("toast %d (%s): %s", id, kind, text)
	for _, fn := range fns {
		fn()
	}
	return id
}

// Dismiss removes a message by id. Unknown or already-expired ids are
// ignored.
func (n *Notifier) Dismiss(id int) {
	n.mu.Lock()
	idx := -1
	for i, m := range n.messages {
		if m.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		n.mu.Unlock()
		return
	}
	n.messages = append(n.messages[:idx], n.messages[idx+1:]...)
	if t, ok := n.timers[id]; ok {
		t.Stop()
		delete(n.timers, id)
	}
	fns := n.notifyLocked()
	n.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// Clear drops every active message and stops their timers.
func (n *Notifier) Clear() {
	n.mu.Lock()
	if len(n.messages) == 0 {
		n.mu.Unlock()
		return
	}
	n.messages = nil
	for id, t := range n.timers {
		t.Stop()
		delete(n.timers, id)
	}
	fns := n.notifyLocked()
	n.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// Messages returns the active messages, oldest first.
func (n *Notifier) Messages() []Message {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Message(nil), n.messages...)
}

// Success shows a success message with the default timeout.
func (n *Notifier) Success(text string) int { return n.Show(text, KindSuccess, 0) }

// Error shows an error message with the default timeout.
func (n *Notifier) Error(text string) int { return n.Show(text, KindError, 0) }

// Info shows an info message with the default timeout.
func (n *Notifier) Info(text string) int { return n.Show(text, KindInfo, 0) }

// Warning shows a warning message with the default timeout.
func (n *Notifier) Warning(text string) int { return n.Show(text, KindWarning, 0) }
