package uischema

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-propschema/pkg/validation"
)

var stringSpec = WidgetSpec{Kind: KindString, Default: "input", Components: []string{"input", "textarea"}}

func TestCheckAcceptsCommonPropsAndPassThrough(t *testing.T) {
	cfg, err := Validate(map[string]any{
		"component":   "textarea",
		"placeholder": map[string]any{"en": "Type here", "de": "Hier tippen"},
		"hint":        "Shown below the field",
		"width":       "full",
		"disabled":    false,
		"rows":        4,
		"icon":        "lucide-pencil",
		"extra":       nil,
	}, stringSpec)
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}

	want := Config{
		"component":   "textarea",
		"placeholder": map[string]any{"en": "Type here", "de": "Hier tippen"},
		"hint":        "Shown below the field",
		"width":       "full",
		"disabled":    false,
		"rows":        float64(4),
		"icon":        "lucide-pencil",
		"extra":       nil,
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
	if cfg.Component() != "textarea" {
		t.Fatalf("Component() = %q", cfg.Component())
	}
}

func TestCheckNilIsAbsent(t *testing.T) {
	cfg, err := Validate(nil, stringSpec)
	if err != nil || cfg != nil {
		t.Fatalf("expected nil config, got %#v (%v)", cfg, err)
	}
}

func TestCheckReportsBadProps(t *testing.T) {
	var c validation.Collector
	_, ok := Check(&c, validation.Path{"ui"}, map[string]any{
		"component": "slider",
		"hidden":    "yes",
		"width":     12,
		"hint":      7,
		"icon":      "<script>alert(1)</script>",
	}, stringSpec)
	if ok {
		t.Fatalf("expected config to be rejected")
	}

	var issues validation.Errors
	if !errors.As(c.Err(), &issues) {
		t.Fatalf("expected validation errors")
	}
	got := make(map[string]string, len(issues))
	for _, issue := range issues {
		got[issue.Field] = issue.Message
	}
	want := map[string]string{
		"ui.component": `unsupported component "slider" for string widget`,
		"ui.hidden":    "hidden must be a boolean",
		"ui.width":     "width must be a string",
		"ui.hint":      "must be a string or a map of locale tag to string",
		"ui.icon":      "icon contains markup that is not allowed",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("issues mismatch (-want +got):\n%s", diff)
	}
}

func TestCheckKeepsIconVerbatim(t *testing.T) {
	cases := []string{
		`<svg viewBox="0 0 24 24"><path d="M0 0h24v24H0z"/></svg>`,
		"a & b",
		"lucide-key",
	}
	for _, icon := range cases {
		var c validation.Collector
		cfg, ok := Check(&c, validation.Path{"ui"}, map[string]any{"icon": icon}, stringSpec)
		if !ok {
			t.Fatalf("expected icon %q to be accepted, got %v", icon, c.Err())
		}
		if got := cfg["icon"]; got != icon {
			t.Fatalf("icon rewritten: want %q, got %q", icon, got)
		}
	}

	for _, icon := range []string{
		`<svg viewBox="0 0 24 24"><script>alert(1)</script></svg>`,
		`<svg onload="alert(1)"><path d="M0 0"/></svg>`,
	} {
		var c validation.Collector
		if _, ok := Check(&c, validation.Path{"ui"}, map[string]any{"icon": icon}, stringSpec); ok {
			t.Fatalf("expected icon %q to be rejected", icon)
		}
	}
}

func TestCheckRejectsNonObject(t *testing.T) {
	_, err := Validate([]any{"input"}, stringSpec)
	var issues validation.Errors
	if !errors.As(err, &issues) || issues[0].Message != "ui config must be an object" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCheckSpecWithoutComponentsAcceptsAnyName(t *testing.T) {
	if _, err := Validate(map[string]any{"component": "custom"}, WidgetSpec{Kind: KindObject}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
