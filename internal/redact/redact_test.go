package redact

import (
	"strings"
	"testing"

	"github.com/ppiankov/filewarden/internal/classify"
)

func redactAll(t *testing.T, content string) string {
	t.Helper()
	return Redact(content, classify.Default().Classify(content))
}

func TestRedactCreditCardKeepsLast4(t *testing.T) {
	got := redactAll(t, "card 1234-5678-9012-3456 on file")
	want := "card ***************3456 on file"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRedactEmail(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"long local part", "mail user@example.com now", "mail us**@example.com now"},
		{"two-char local part left unmasked", "mail ab@example.com now", "mail ab@example.com now"},
		{"one-char local part left unmasked", "mail a@example.com now", "mail a@example.com now"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := redactAll(t, tt.content); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRedactPhoneKeepsEdges(t *testing.T) {
	got := redactAll(t, "call 555-867-5309 today")
	want := "call 555******309 today"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRedactPhoneShortMatchFullMask(t *testing.T) {
	// A span of six or fewer characters has no interior; the guard falls
	// back to a full-length mask instead of a negative-length one.
	c := classify.New()
	if err := c.Register(classify.CategoryPhone, `\d{6}`); err != nil {
		t.Fatal(err)
	}
	got := Redact("pin 123456 end", c.Classify("pin 123456 end"))
	want := "pin ****** end"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRedactSSNAndPasswordFullMask(t *testing.T) {
	got := redactAll(t, "ssn 123-45-6789 pw password=hunter2")
	if strings.Contains(got, "123-45-6789") {
		t.Error("SSN left verbatim")
	}
	if strings.Contains(got, "hunter2") {
		t.Error("password value left verbatim")
	}
	if !strings.Contains(got, "ssn *********** pw") {
		t.Errorf("SSN mask should preserve length: %q", got)
	}
}

func TestRedactSpanBasedLeavesIdenticalTextAlone(t *testing.T) {
	// "hunter2" appears twice: once as a password value (masked), once as
	// plain text (untouched). Substring replacement would corrupt both.
	content := "password=hunter2 but the word hunter2 alone is fine"
	got := redactAll(t, content)
	if !strings.Contains(got, "the word hunter2 alone") {
		t.Errorf("unmatched identical fragment was redacted: %q", got)
	}
	if strings.Contains(got, "password=hunter2") {
		t.Errorf("matched span left verbatim: %q", got)
	}
}

func TestRedactEveryOccurrenceOnce(t *testing.T) {
	content := "a user@example.com b user@example.com c"
	got := redactAll(t, content)
	if strings.Count(got, "us**@example.com") != 2 {
		t.Errorf("both occurrences should be masked independently: %q", got)
	}
}

func TestRedactPreservesLength(t *testing.T) {
	content := "my email is user@example.com, card 1234-5678-9012-3456"
	got := redactAll(t, content)
	if len(got) != len(content) {
		t.Errorf("redaction changed length: %d -> %d", len(content), len(got))
	}
}

func TestRedactOverlappingSpansFirstWins(t *testing.T) {
	c := classify.New()
	if err := c.Register("outer", `abcdef`); err != nil {
		t.Fatal(err)
	}
	if err := c.Register("inner", `cde`); err != nil {
		t.Fatal(err)
	}
	got := Redact("xx abcdef yy", c.Classify("xx abcdef yy"))
	want := "xx ****** yy"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRedactNoMatchesReturnsContentUnchanged(t *testing.T) {
	content := "plain text"
	if got := Redact(content, classify.Default().Classify(content)); got != content {
		t.Errorf("got %q, want unchanged", got)
	}
}
