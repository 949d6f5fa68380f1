package pathscope

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Canonicalize resolves a path to its absolute, normalized form:
// no "." or ".." segments, consistent separators, no trailing separator
// except for the root itself.
func Canonicalize(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("pathscope: empty path")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("pathscope: canonicalize %q: %w", path, err)
	}
	return filepath.Clean(abs), nil
}

// Matches reports whether requested is scope itself or a descendant of
// scope. Both paths must already be canonical. The comparison is made on
// path segments, not raw string prefixes, so a scope "/a/private" never
// matches a sibling "/a/private2".
func Matches(requested, scope string) bool {
	if requested == scope {
		return true
	}
	sep := string(filepath.Separator)
	prefix := scope
	if !strings.HasSuffix(prefix, sep) {
		prefix += sep
	}
	return strings.HasPrefix(requested, prefix)
}

// Store is an ordered, immutable collection of scope rules. It is
// read-only after construction and safe for concurrent use.
type Store struct {
	rules []ScopeRule
}

// NewStore canonicalizes every rule's scope path and returns a store
// holding the rules in the given priority order.
func NewStore(rules []ScopeRule) (*Store, error) {
	canonical := make([]ScopeRule, len(rules))
	for i, r := range rules {
		scope, err := Canonicalize(r.ScopePath)
		if err != nil {
			return nil, fmt.Errorf("pathscope: rule %d: %w", i, err)
		}
		r.ScopePath = scope
		canonical[i] = r
	}
	return &Store{rules: canonical}, nil
}

// Resolve returns the first rule whose scope contains path.
// The second return value is false when no rule matches.
func (s *Store) Resolve(path string) (ScopeRule, bool) {
	canonical, err := Canonicalize(path)
	if err != nil {
		return ScopeRule{}, false
	}
	for _, r := range s.rules {
		if Matches(canonical, r.ScopePath) {
			return r, true
		}
	}
	return ScopeRule{}, false
}

// CanAccess reports whether the governing rule for path grants op.
// Paths outside every scope are denied.
func (s *Store) CanAccess(path string, op Operation) bool {
	rule, ok := s.Resolve(path)
	if !ok {
		return false
	}
	return rule.Allows(op)
}

// Rules returns a copy of the stored rules in priority order.
func (s *Store) Rules() []ScopeRule {
	out := make([]ScopeRule, len(s.rules))
	copy(out, s.rules)
	return out
}
