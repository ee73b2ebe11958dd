package uischema

import (
	"strings"
	"testing"
)

func TestSanitizeIconRemovesScripts(t *testing.T) {
	input := `  <svg viewBox="0 0 24 24"><script>alert('x')</script><path d="M0 0h24v24H0z" /></svg>`
	got := SanitizeIcon(input)
	if got == "" {
		t.Fatalf("expected sanitized markup, got empty string")
	}
	if strings.Contains(got, "script") {
		t.Fatalf("expected script tag to be removed, got %q", got)
	}
	if !strings.Contains(got, "<svg") || !strings.Contains(got, "<path") {
		t.Fatalf("expected svg/path elements to remain, got %q", got)
	}
}

func TestSanitizeIconKeepsPlainNames(t *testing.T) {
	if got := SanitizeIcon(" lucide-key "); got != "lucide-key" {
		t.Fatalf("expected icon name to survive, got %q", got)
	}
	if got := SanitizeIcon(`<script>alert(1)</script>`); got != "" {
		t.Fatalf("expected script-only markup to be dropped, got %q", got)
	}
}

func TestIconAllowed(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"lucide-key", true},
		{"a & b", true},
		{`<svg viewBox="0 0 24 24"></svg>`, true},
		{`<svg><path d="M1 1" onclick="x"/></svg>`, false},
		{`<svg><script>alert(1)</script></svg>`, false},
		{`<script>alert(1)</script>`, false},
	}
	for _, tc := range cases {
		if got := IconAllowed(tc.input); got != tc.want {
			t.Fatalf("IconAllowed(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}
