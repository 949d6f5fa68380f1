// Package sandbox is the coarse, session-level gate in front of the
// access gate: an allow-list of operation kinds checked before any
// path-level permission is consulted. Rejections at this layer never
// reach the gate and are not audited.
package sandbox

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/ppiankov/filewarden/internal/gate"
)

// OpReadFile is the only dispatchable operation kind.
const OpReadFile = "read_file"

// Request is one agent request routed through the sandbox.
type Request struct {
	Operation string `json:"operation"`
	Path      string `json:"file_path"`
}

// Response is the dispatcher's external contract: success with data, or
// failure with an error string.
type Response struct {
	Success bool           `json:"success"`
	Data    map[string]any `json:"data,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// Sandbox binds one agent identity to a gate and a session allow-list.
type Sandbox struct {
	gate      *gate.Gate
	allowed   map[string]bool
	agentID   string
	sessionID string
}

// New creates a sandbox with a generated agent identity. The allow-list
// is fixed for the session's lifetime.
func New(g *gate.Gate, allowedOps []string) *Sandbox {
	allowed := make(map[string]bool, len(allowedOps))
	for _, op := range allowedOps {
		allowed[op] = true
	}
	return &Sandbox{
		gate:      g,
		allowed:   allowed,
		agentID:   "agent-" + uuid.NewString()[:8],
		sessionID: uuid.NewString(),
	}
}

// AgentID returns the sandbox's agent identity.
func (s *Sandbox) AgentID() string { return s.agentID }

// SessionID returns the sandbox's session identity.
func (s *Sandbox) SessionID() string { return s.sessionID }

// Gate returns the underlying access gate.
func (s *Sandbox) Gate() *gate.Gate { return s.gate }

// ExecuteRequest dispatches one request. Operations outside the session
// allow-list are rejected without invoking the gate and without an audit
// event; operations the dispatcher does not recognize report an unknown
// operation error. Both rejections stay at this layer.
func (s *Sandbox) ExecuteRequest(req Request) Response {
	return translate(s.dispatch(req), req.Operation)
}

func (s *Sandbox) dispatch(req Request) gate.Outcome {
	if !s.allowed[req.Operation] {
		return gate.Outcome{Status: gate.StatusOperationNotAllowed}
	}
	switch req.Operation {
	case OpReadFile:
		return s.gate.ReadFile(s.agentID, req.Path)
	default:
		return gate.Outcome{Status: gate.StatusUnknownOperation}
	}
}

// translate maps every outcome variant onto the external response shape.
func translate(out gate.Outcome, operation string) Response {
	switch out.Status {
	case gate.StatusAllowed:
		return Response{
			Success: true,
			Data: map[string]any{
				"content":                 out.Content,
				"file_size":               out.Size,
				"sensitive_info_detected": out.SensitiveDetected,
				"sensitive_categories":    out.Categories,
			},
		}
	case gate.StatusOperationNotAllowed:
		return Response{Error: fmt.Sprintf("Operation %s not allowed", operation)}
	case gate.StatusUnknownOperation:
		return Response{Error: fmt.Sprintf("Unknown operation: %s", operation)}
	case gate.StatusDenied, gate.StatusNotFound, gate.StatusIOFailure:
		return Response{Error: out.Reason}
	default:
		return Response{Error: fmt.Sprintf("unhandled outcome status %q", out.Status)}
	}
}
