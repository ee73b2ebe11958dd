package i18n

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-propschema/pkg/validation"
)

func TestParsePlainAndLocalized(t *testing.T) {
	plain, err := Parse("Access token")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if plain.IsLocalized() || plain.Default != "Access token" {
		t.Fatalf("unexpected plain text: %#v", plain)
	}

	localized, err := Parse(map[string]any{"en-US": "Token", "zh-Hans": "令牌"})
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	want := Text{Locales: map[string]string{"en-US": "Token", "zh-Hans": "令牌"}}
	if diff := cmp.Diff(want, localized); diff != "" {
		t.Fatalf("localized mismatch (-want +got):\n%s", diff)
	}
}

func TestParseRejectsBadShapes(t *testing.T) {
	_, err := Parse(42)
	var issues validation.Errors
	if !errors.As(err, &issues) || len(issues) != 1 {
		t.Fatalf("expected one issue, got %v", err)
	}

	_, err = Parse(map[string]any{"en": 1, "not a tag!": "x"})
	if !errors.As(err, &issues) {
		t.Fatalf("expected validation errors, got %v", err)
	}
	if diff := cmp.Diff([]string{"translation must be a string", `invalid locale tag "not a tag!"`}, issues.Messages()); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	for _, raw := range []string{`"Hello"`, `{"en":"Hello","fr":"Bonjour"}`} {
		var text Text
		if err := json.Unmarshal([]byte(raw), &text); err != nil {
			t.Fatalf("unmarshal %s: %v", raw, err)
		}
		out, err := json.Marshal(text)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if string(out) != raw {
			t.Fatalf("round trip mismatch: want %s, got %s", raw, out)
		}
	}
}

func TestResolve(t *testing.T) {
	text := Localized(map[string]string{"en": "Color", "en-GB": "Colour", "fr": "Couleur"})

	cases := map[string]string{
		"en-GB": "Colour",
		"fr-CA": "Couleur",
		"en-US": "Color",
	}
	for locale, want := range cases {
		if got := text.Resolve(locale); got != want {
			t.Fatalf("Resolve(%q) = %q, want %q", locale, got, want)
		}
	}

	if got := Plain("Name").Resolve("de"); got != "Name" {
		t.Fatalf("plain text must ignore locale, got %q", got)
	}
}
