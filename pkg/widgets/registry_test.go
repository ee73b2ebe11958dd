package widgets

import (
	"testing"

	"github.com/goliatone/go-propschema/pkg/uischema"
	"github.com/goliatone/go-propschema/pkg/validation"
)

func TestResolve_ExplicitComponentWins(t *testing.T) {
	reg := NewRegistry()
	field := Field{
		Kind:    uischema.KindString,
		HasEnum: true,
		UI:      uischema.Config{"component": "radio-group"},
	}

	if got, ok := reg.Resolve(field); !ok || got != "radio-group" {
		t.Fatalf("expected explicit component to win, got %q (ok=%v)", got, ok)
	}
}

func TestResolve_Builtins(t *testing.T) {
	reg := NewRegistry()

	cases := []struct {
		name   string
		field  Field
		expect string
	}{
		{"string default", Field{Kind: uischema.KindString}, "input"},
		{"string enum select", Field{Kind: uischema.KindString, HasEnum: true}, ComponentSelect},
		{"number enum select", Field{Kind: uischema.KindNumber, HasEnum: true}, ComponentSelect},
		{"boolean default", Field{Kind: uischema.KindBoolean, HasEnum: true}, "switch"},
		{"array of enum multi select", Field{Kind: uischema.KindArray, ItemKind: uischema.KindString, ItemHasEnum: true}, ComponentMultiSelect},
		{"array of objects key value", Field{Kind: uischema.KindArray, ItemKind: uischema.KindObject}, ComponentKeyValue},
		{"array default", Field{Kind: uischema.KindArray, ItemKind: uischema.KindNumber}, "list"},
		{"bare object json editor", Field{Kind: uischema.KindObject}, ComponentJSONEditor},
		{"object fieldset", Field{Kind: uischema.KindObject, PropertyCount: 2}, "fieldset"},
		{"boolean discriminator switch", Field{Kind: uischema.KindDiscriminator, Options: []any{true, false}}, ComponentSwitch},
		{"small discriminator radio", Field{Kind: uischema.KindDiscriminator, Options: []any{"a", "b"}}, ComponentRadioGroup},
		{"large discriminator select", Field{Kind: uischema.KindDiscriminator, Options: []any{"a", "b", "c", "d"}}, ComponentSelect},
		{"credential default", Field{Kind: uischema.KindCredentialID}, "credential-select"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := reg.Resolve(tc.field)
			if !ok || got != tc.expect {
				t.Fatalf("expected %q, got %q (ok=%v)", tc.expect, got, ok)
			}
		})
	}
}

func TestRegister_PriorityOrdering(t *testing.T) {
	reg := NewRegistry()
	reg.Define(uischema.WidgetSpec{Kind: uischema.KindString, Default: "input", Components: []string{"input", "select", "markdown"}})
	reg.Register("markdown", 100, func(field Field) bool {
		return field.UI["format"] == "markdown"
	})

	field := Field{Kind: uischema.KindString, HasEnum: true, UI: uischema.Config{"format": "markdown"}}
	if got, _ := reg.Resolve(field); got != "markdown" {
		t.Fatalf("expected custom matcher to win, got %q", got)
	}

	field.UI = nil
	if got, _ := reg.Resolve(field); got != ComponentSelect {
		t.Fatalf("expected select fallback, got %q", got)
	}
}

func TestResolve_SkipsComponentsTheKindDisallows(t *testing.T) {
	reg := NewRegistry()
	reg.Define(uischema.WidgetSpec{Kind: uischema.KindString, Default: "input", Components: []string{"input"}})

	if got, _ := reg.Resolve(Field{Kind: uischema.KindString, HasEnum: true}); got != "input" {
		t.Fatalf("expected default when select is not allowed, got %q", got)
	}
}

func TestValidateUI_UsesKindSpec(t *testing.T) {
	reg := NewRegistry()

	var c validation.Collector
	if _, ok := reg.ValidateUI(&c, validation.Path{"ui"}, uischema.KindBoolean, map[string]any{"component": "checkbox"}); !ok {
		t.Fatalf("checkbox should be accepted for booleans: %v", c.Err())
	}
	if _, ok := reg.ValidateUI(&c, validation.Path{"ui"}, uischema.KindBoolean, map[string]any{"component": "slider"}); ok {
		t.Fatalf("slider must be rejected for booleans")
	}
	issues := c.Issues()
	if len(issues) != 1 || issues[0].Message != `unsupported component "slider" for boolean widget` {
		t.Fatalf("unexpected issues: %v", issues)
	}
}

func TestNilRegistryAcceptsAnything(t *testing.T) {
	var reg *Registry
	var c validation.Collector
	if _, ok := reg.ValidateUI(&c, nil, uischema.KindArray, map[string]any{"component": "anything"}); !ok {
		t.Fatalf("nil registry should not restrict components: %v", c.Err())
	}
	if _, ok := reg.Resolve(Field{Kind: uischema.KindArray}); ok {
		t.Fatalf("nil registry cannot resolve a component")
	}
}
