package audit

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Log is an append-only in-memory audit trail. There is no mutation or
// deletion API. Append is atomic and ordering-preserving under concurrent
// writers; everything else is a read-only snapshot.
type Log struct {
	mu     sync.Mutex
	events []Event
}

// NewLog returns an empty session log.
func NewLog() *Log {
	return &Log{}
}

// Append adds an event to the end of the log. A missing ID or timestamp
// is filled in. The stored event is returned.
func (l *Log) Append(e Event) Event {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, e)
	return e
}

// Events returns a snapshot of all events in insertion order.
func (l *Log) Events() []Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Event, len(l.events))
	copy(out, l.events)
	return out
}

// Len returns the number of recorded events.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.events)
}

// Export writes a snapshot of the log to a sink in insertion order.
// The log itself is left untouched.
func (l *Log) Export(s Sink) error {
	for _, e := range l.Events() {
		if err := s.Write(e); err != nil {
			return err
		}
	}
	return nil
}
