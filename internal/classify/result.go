package classify

// Result maps each detected category to its matches. A zero Result
// reports no sensitive data.
type Result struct {
	byCategory map[string][]Match
	order      []string
}

// Empty reports whether no detector matched.
func (r Result) Empty() bool {
	return len(r.order) == 0
}

// Categories returns the matched category names in detector order.
func (r Result) Categories() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Matches returns the matches for one category in occurrence order.
func (r Result) Matches(category string) []Match {
	return r.byCategory[category]
}

// AllMatches returns every match across all categories. Order is by
// category, then occurrence; callers that need positional order sort by
// span themselves.
func (r Result) AllMatches() []Match {
	var out []Match
	for _, cat := range r.order {
		out = append(out, r.byCategory[cat]...)
	}
	return out
}
