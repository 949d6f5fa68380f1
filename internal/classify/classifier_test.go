package classify

import "testing"

func TestClassifyCreditCard(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"dashed", "card 1234-5678-9012-3456 on file", "1234-5678-9012-3456"},
		{"spaced", "card 1234 5678 9012 3456 on file", "1234 5678 9012 3456"},
		{"bare", "card 1234567890123456 on file", "1234567890123456"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Default().Classify(tt.content)
			matches := res.Matches(CategoryCreditCard)
			if len(matches) != 1 {
				t.Fatalf("expected 1 credit_card match, got %d", len(matches))
			}
			if matches[0].Value != tt.want {
				t.Errorf("matched %q, want %q", matches[0].Value, tt.want)
			}
		})
	}
}

func TestClassifySpansAreLiteralSubstrings(t *testing.T) {
	content := "email a@example.com then card 1234-5678-9012-3456 then SSN 123-45-6789 " +
		"then phone 555-867-5309 then password=hunter2"
	res := Default().Classify(content)

	for _, cat := range res.Categories() {
		for _, m := range res.Matches(cat) {
			if content[m.Start:m.End] != m.Value {
				t.Errorf("%s span [%d,%d) yields %q, want %q",
					cat, m.Start, m.End, content[m.Start:m.End], m.Value)
			}
		}
	}

	for _, want := range []string{CategoryEmail, CategoryCreditCard, CategorySSN, CategoryPhone, CategoryPassword} {
		if len(res.Matches(want)) == 0 {
			t.Errorf("expected a %s match", want)
		}
	}
}

func TestClassifyPasswordAssignments(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"colon", "password: hunter2"},
		{"equals", "password=hunter2"},
		{"quoted key", `"password": "hunter2"`},
		{"uppercase", "PASSWORD = hunter2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Default().Classify(tt.content)
			if len(res.Matches(CategoryPassword)) != 1 {
				t.Errorf("expected password match in %q", tt.content)
			}
		})
	}
}

func TestClassifyMultipleOccurrencesKeepOrder(t *testing.T) {
	content := "first a@example.com then b@example.com"
	res := Default().Classify(content)
	matches := res.Matches(CategoryEmail)
	if len(matches) != 2 {
		t.Fatalf("expected 2 email matches, got %d", len(matches))
	}
	if matches[0].Start >= matches[1].Start {
		t.Error("matches must be in first-occurrence order")
	}
}

func TestClassifyCleanContent(t *testing.T) {
	res := Default().Classify("nothing sensitive in here, just notes")
	if !res.Empty() {
		t.Errorf("expected empty result, got categories %v", res.Categories())
	}
}

func TestRegisterExtendsCategories(t *testing.T) {
	c := Default()
	if err := c.Register("ipv4", `\b\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}\b`); err != nil {
		t.Fatalf("register: %v", err)
	}
	res := c.Classify("connect to 10.0.0.12 now")
	if len(res.Matches("ipv4")) != 1 {
		t.Error("registered detector should match")
	}
}

func TestRegisterRejectsBadPattern(t *testing.T) {
	if err := New().Register("broken", `(`); err == nil {
		t.Error("expected compile error")
	}
	if err := New().Register("", `x`); err == nil {
		t.Error("expected error for empty category")
	}
}

func TestRegisterReplacesExisting(t *testing.T) {
	c := New()
	if err := c.Register("word", `alpha`); err != nil {
		t.Fatal(err)
	}
	if err := c.Register("word", `beta`); err != nil {
		t.Fatal(err)
	}
	if got := len(c.Categories()); got != 1 {
		t.Fatalf("expected 1 category after replacement, got %d", got)
	}
	if len(c.Classify("beta").Matches("word")) != 1 {
		t.Error("replacement pattern should be in effect")
	}
}

func TestIsSensitivePath(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/home/user/server.key", true},
		{"/home/user/cert.PEM", true},
		{"/app/.env", true},
		{"/home/user/passwords.txt", true},
		{"/home/user/Private/notes.txt", true},
		{"/etc/app/config.yaml", true},
		{"/home/user/report.txt", false},
		{"/home/user/photo.jpg", false},
	}
	for _, tt := range tests {
		if got := IsSensitivePath(tt.path); got != tt.want {
			t.Errorf("IsSensitivePath(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
