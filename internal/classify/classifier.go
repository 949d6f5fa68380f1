// Package classify detects sensitive data categories in text via
// precompiled pattern detectors.
package classify

import (
	"fmt"
	"regexp"
)

// Category names for the built-in detectors.
const (
	CategoryCreditCard = "credit_card"
	CategoryEmail      = "email"
	CategoryPhone      = "phone"
	CategorySSN        = "ssn"
	CategoryPassword   = "password"
)

// Built-in patterns. All are applied case-insensitively.
const (
	creditCardPattern = `\b\d{4}[- ]?\d{4}[- ]?\d{4}[- ]?\d{4}\b`
	emailPattern      = `\b[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}\b`
	phonePattern      = `\b\d{3}[-.]?\d{3}[-.]?\d{4}\b`
	ssnPattern        = `\b\d{3}-\d{2}-\d{4}\b`
	passwordPattern   = `password["']?\s*[:=]\s*["']?[^"'\s]+`
)

// Match is a single occurrence of sensitive data. Start and End are byte
// offsets into the scanned content; content[Start:End] == Value.
type Match struct {
	Category string
	Value    string
	Start    int
	End      int
}

// detector pairs a category name with its compiled matcher.
type detector struct {
	category string
	re       *regexp.Regexp
}

// Classifier holds a fixed set of named detectors. It is read-only after
// the last Register call and safe for concurrent use.
type Classifier struct {
	detectors []detector
}

// New returns a classifier with no detectors registered.
func New() *Classifier {
	return &Classifier{}
}

// Default returns a classifier with the built-in detectors: credit card,
// email, phone, SSN, and password-assignment text.
func Default() *Classifier {
	c := New()
	for _, d := range []struct{ category, pattern string }{
		{CategoryCreditCard, creditCardPattern},
		{CategoryEmail, emailPattern},
		{CategoryPhone, phonePattern},
		{CategorySSN, ssnPattern},
		{CategoryPassword, passwordPattern},
	} {
		if err := c.Register(d.category, d.pattern); err != nil {
			panic(fmt.Sprintf("classify: built-in pattern %s: %v", d.category, err))
		}
	}
	return c
}

// Register adds a named detector. The pattern is compiled once,
// case-insensitively, and reused for every Classify call. Registering an
// already-registered category replaces its pattern.
func (c *Classifier) Register(category, pattern string) error {
	if category == "" {
		return fmt.Errorf("classify: empty category name")
	}
	re, err := regexp.Compile(`(?i)` + pattern)
	if err != nil {
		return fmt.Errorf("classify: compile pattern for %q: %w", category, err)
	}
	for i, d := range c.detectors {
		if d.category == category {
			c.detectors[i].re = re
			return nil
		}
	}
	c.detectors = append(c.detectors, detector{category: category, re: re})
	return nil
}

// Categories returns the registered category names in registration order.
func (c *Classifier) Categories() []string {
	out := make([]string, len(c.detectors))
	for i, d := range c.detectors {
		out[i] = d.category
	}
	return out
}

// Classify runs every detector over content and collects all matches per
// category with their position spans, in first-occurrence order.
func (c *Classifier) Classify(content string) Result {
	res := Result{byCategory: make(map[string][]Match)}
	for _, d := range c.detectors {
		locs := d.re.FindAllStringIndex(content, -1)
		if len(locs) == 0 {
			continue
		}
		matches := make([]Match, 0, len(locs))
		for _, loc := range locs {
			matches = append(matches, Match{
				Category: d.category,
				Value:    content[loc[0]:loc[1]],
				Start:    loc[0],
				End:      loc[1],
			})
		}
		res.byCategory[d.category] = matches
		res.order = append(res.order, d.category)
	}
	return res
}
