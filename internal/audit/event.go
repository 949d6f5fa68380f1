// Package audit records every mediated access attempt. The in-memory Log
// is the session's authoritative trail; sinks persist events outside the
// session and are driven by collaborators, never by the access pipeline
// itself.
package audit

import "time"

// Event is one immutable record of an access attempt and its outcome.
// Failed attempts carry a non-empty "error" entry in Details.
type Event struct {
	ID        string         `json:"event_id"`
	Timestamp time.Time      `json:"timestamp"`
	AgentID   string         `json:"agent_id"`
	Operation string         `json:"operation"`
	Path      string         `json:"path"`
	Success   bool           `json:"success"`
	Details   map[string]any `json:"details,omitempty"`
}
