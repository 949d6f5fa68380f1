// Package redact masks classified spans in text. Redaction is span-based:
// matched intervals are rewritten in a single left-to-right pass, so an
// unrelated fragment that happens to equal a matched value is never
// touched, and each occurrence is redacted exactly once.
package redact

import (
	"sort"
	"strings"

	"github.com/ppiankov/filewarden/internal/classify"
)

// Redact rewrites content with every matched span masked according to its
// category's strategy. Unmatched regions are copied verbatim. When spans
// overlap, the earliest-starting (then longest) span wins and spans
// contained in an already-redacted region are skipped.
func Redact(content string, result classify.Result) string {
	spans := result.AllMatches()
	if len(spans) == 0 {
		return content
	}

	sort.Slice(spans, func(i, j int) bool {
		if spans[i].Start != spans[j].Start {
			return spans[i].Start < spans[j].Start
		}
		return spans[i].End > spans[j].End
	})

	var b strings.Builder
	b.Grow(len(content))
	cursor := 0
	for _, m := range spans {
		if m.Start < cursor {
			continue
		}
		b.WriteString(content[cursor:m.Start])
		b.WriteString(mask(m))
		cursor = m.End
	}
	b.WriteString(content[cursor:])
	return b.String()
}

// mask applies the category-specific strategy to one matched span.
func mask(m classify.Match) string {
	switch m.Category {
	case classify.CategoryCreditCard:
		return maskKeepSuffix(m.Value, 4)
	case classify.CategoryEmail:
		return maskEmail(m.Value)
	case classify.CategoryPhone:
		return maskInterior(m.Value, 3, 3)
	default:
		return strings.Repeat("*", len(m.Value))
	}
}

// maskKeepSuffix masks all but the last keep characters, preserving length.
func maskKeepSuffix(s string, keep int) string {
	if len(s) <= keep {
		return strings.Repeat("*", len(s))
	}
	return strings.Repeat("*", len(s)-keep) + s[len(s)-keep:]
}

// maskEmail keeps the first two characters of the local part and the
// domain. A local part of two characters or fewer is left unmasked:
// partial masking that short would reveal the whole value anyway.
func maskEmail(s string) string {
	at := strings.LastIndex(s, "@")
	if at < 0 {
		return strings.Repeat("*", len(s))
	}
	local, domain := s[:at], s[at:]
	if len(local) <= 2 {
		return s
	}
	return local[:2] + strings.Repeat("*", len(local)-2) + domain
}

// maskInterior keeps the first head and last tail characters and masks
// the interior. Matches too short to have an interior fall back to a
// full-length mask, so the mask length never goes negative.
func maskInterior(s string, head, tail int) string {
	if len(s) <= head+tail {
		return strings.Repeat("*", len(s))
	}
	return s[:head] + strings.Repeat("*", len(s)-head-tail) + s[len(s)-tail:]
}
