package gate

import (
	"errors"
	"io/fs"
	"os"

	"github.com/ppiankov/filewarden/internal/audit"
	"github.com/ppiankov/filewarden/internal/classify"
	"github.com/ppiankov/filewarden/internal/pathscope"
	"github.com/ppiankov/filewarden/internal/redact"
)

// Gate mediates file access for agents. The permission store and
// classifier are read-only after construction; the audit log is the only
// shared mutable state and handles its own locking. A Gate is safe for
// concurrent use.
type Gate struct {
	store      *pathscope.Store
	classifier *classify.Classifier
	log        *audit.Log
}

// New creates a gate over the given permission store. A nil classifier
// gets the built-in detectors; a nil log gets a fresh session log.
func New(store *pathscope.Store, classifier *classify.Classifier, log *audit.Log) *Gate {
	if classifier == nil {
		classifier = classify.Default()
	}
	if log == nil {
		log = audit.NewLog()
	}
	return &Gate{store: store, classifier: classifier, log: log}
}

// AuditLog returns the session audit log.
func (g *Gate) AuditLog() *audit.Log {
	return g.log
}

// CheckPermission reports whether the governing scope rule grants op on
// path. It is a pure query: deterministic, no audit side effect.
func (g *Gate) CheckPermission(path string, op pathscope.Operation) bool {
	return g.store.CanAccess(path, op)
}

// ReadFile runs the full mediated read pipeline. Every terminal state,
// success or failure, produces exactly one audit event before the
// outcome is returned.
func (g *Gate) ReadFile(agentID, path string) Outcome {
	if !g.store.CanAccess(path, pathscope.OpRead) {
		return g.fail(agentID, path, StatusDenied, "permission denied")
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return g.fail(agentID, path, StatusNotFound, "file not found")
		}
		return g.fail(agentID, path, StatusIOFailure, err.Error())
	}

	content := string(raw)
	result := g.classifier.Classify(content)
	if !result.Empty() {
		content = redact.Redact(content, result)
	}

	out := Outcome{
		Status:            StatusAllowed,
		Content:           content,
		Size:              len(content),
		SensitiveDetected: !result.Empty(),
		Categories:        result.Categories(),
	}
	g.log.Append(audit.Event{
		AgentID:   agentID,
		Operation: string(pathscope.OpRead),
		Path:      path,
		Success:   true,
		Details: map[string]any{
			"file_size":               out.Size,
			"sensitive_info_detected": out.SensitiveDetected,
			"sensitive_categories":    out.Categories,
		},
	})
	return out
}

// fail records the failure and returns its outcome.
func (g *Gate) fail(agentID, path string, status Status, reason string) Outcome {
	g.log.Append(audit.Event{
		AgentID:   agentID,
		Operation: string(pathscope.OpRead),
		Path:      path,
		Success:   false,
		Details:   map[string]any{"error": reason},
	})
	return Outcome{Status: status, Reason: reason}
}
