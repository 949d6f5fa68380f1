// Package pathscope resolves which scope rule, if any, governs a
// filesystem path. Rules are held in operator priority order: the first
// rule whose scope contains a path wins, regardless of later rules.
package pathscope

import "strings"

// Operation is one of the closed vocabulary of operations a rule can grant.
type Operation string

const (
	OpRead    Operation = "read"
	OpWrite   Operation = "write"
	OpDelete  Operation = "delete"
	OpExecute Operation = "execute"
	OpNone    Operation = "none"
)

// knownOperations is the closed vocabulary. Tokens outside it are kept in
// rules as-is but never match a requested operation.
var knownOperations = map[Operation]bool{
	OpRead:    true,
	OpWrite:   true,
	OpDelete:  true,
	OpExecute: true,
	OpNone:    true,
}

// ParseOperation normalizes a config token to an Operation.
// The boolean reports whether the token is in the closed vocabulary.
func ParseOperation(token string) (Operation, bool) {
	op := Operation(strings.ToLower(strings.TrimSpace(token)))
	return op, knownOperations[op]
}

// AuditLevel controls how much detail collaborators record for a scope.
type AuditLevel string

const (
	AuditLow    AuditLevel = "low"
	AuditMedium AuditLevel = "medium"
	AuditHigh   AuditLevel = "high"
)

// ParseAuditLevel normalizes a config token, falling back to medium for
// anything outside the enum.
func ParseAuditLevel(token string) AuditLevel {
	switch AuditLevel(strings.ToLower(strings.TrimSpace(token))) {
	case AuditLow:
		return AuditLow
	case AuditHigh:
		return AuditHigh
	default:
		return AuditMedium
	}
}

// ScopeRule associates a canonical path prefix with its permitted
// operations and audit policy. ScopePath is always canonical: NewStore
// canonicalizes it before the rule is stored or compared.
type ScopeRule struct {
	ScopePath           string      `yaml:"path" json:"path"`
	Operations          []Operation `yaml:"operations" json:"operations"`
	SensitiveKeywords   []string    `yaml:"sensitive_keywords,omitempty" json:"sensitive_keywords,omitempty"`
	RequireConfirmation bool        `yaml:"require_confirmation,omitempty" json:"require_confirmation,omitempty"`
	AuditLevel          AuditLevel  `yaml:"audit_level,omitempty" json:"audit_level,omitempty"`
}

// Allows reports whether the rule grants the requested operation.
// An empty operation list denies everything, an explicit "none" entry
// denies everything, and tokens outside the closed vocabulary never
// match. Requesting "none" itself is always denied.
func (r ScopeRule) Allows(op Operation) bool {
	if op == OpNone || !knownOperations[op] {
		return false
	}
	for _, o := range r.Operations {
		if o == OpNone {
			return false
		}
	}
	for _, o := range r.Operations {
		if o == op {
			return true
		}
	}
	return false
}
