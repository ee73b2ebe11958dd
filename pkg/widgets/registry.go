// Package widgets maps property widget kinds to the UI components they
// accept and picks a default component for a property when its ui config
// leaves the choice open.
package widgets

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-propschema/pkg/uischema"
	"github.com/goliatone/go-propschema/pkg/validation"
)

// Built-in component identifiers chosen by the registry matchers.
const (
	ComponentSelect      = "select"
	ComponentSwitch      = "switch"
	ComponentMultiSelect = "multi-select"
	ComponentKeyValue    = "key-value"
	ComponentJSONEditor  = "json-editor"
	ComponentRadioGroup  = "radio-group"
)

// Field summarises the parts of a property that influence component choice.
type Field struct {
	Kind uischema.Kind
	// HasEnum is set when the property restricts values to an enum.
	HasEnum bool
	// ItemKind and ItemHasEnum describe array items.
	ItemKind    uischema.Kind
	ItemHasEnum bool
	// PropertyCount is the number of declared object properties.
	PropertyCount int
	// Options holds the discriminator constants of a union selector.
	Options []any
	// UI is the property's validated configuration, if any.
	UI uischema.Config
}

// Matcher decides whether a component should handle the supplied field.
type Matcher func(field Field) bool

type rule struct {
	name     string
	priority int
	match    Matcher
	order    int
}

// Registry holds the widget catalog and component matchers. Higher priority
// matchers win; ties fall back to registration order. A matcher only applies
// when the field's widget kind allows its component. The registry is safe for
// concurrent use.
type Registry struct {
	mu      sync.RWMutex
	widgets map[uischema.Kind]uischema.WidgetSpec
	rules   []rule
}

// NewRegistry constructs a registry seeded with the bundled catalog and the
// built-in matchers.
func NewRegistry() *Registry {
	catalog, err := uischema.DefaultCatalog()
	if err != nil {
		// The bundled catalog is compiled in; failing to parse it is a
		// programming error.
		panic(err)
	}
	return NewRegistryFromCatalog(catalog)
}

// NewRegistryFromCatalog constructs a registry using catalog for component
// lists. Kinds missing from the catalog accept any component.
func NewRegistryFromCatalog(catalog *uischema.Catalog) *Registry {
	reg := &Registry{widgets: make(map[uischema.Kind]uischema.WidgetSpec)}
	for _, spec := range catalog.Specs() {
		reg.widgets[spec.Kind] = spec
	}
	reg.registerBuiltins()
	return reg
}

// Define installs or replaces the spec for one widget kind.
func (r *Registry) Define(spec uischema.WidgetSpec) {
	if r == nil || !spec.Kind.Valid() {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.widgets == nil {
		r.widgets = make(map[uischema.Kind]uischema.WidgetSpec)
	}
	spec.Components = append([]string(nil), spec.Components...)
	r.widgets[spec.Kind] = spec
}

// Spec returns the spec for kind. Unknown kinds yield a spec that accepts any
// component.
func (r *Registry) Spec(kind uischema.Kind) uischema.WidgetSpec {
	if r == nil {
		return uischema.WidgetSpec{Kind: kind}
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	spec, ok := r.widgets[kind]
	if !ok {
		return uischema.WidgetSpec{Kind: kind}
	}
	spec.Components = append([]string(nil), spec.Components...)
	return spec
}

// Register adds a component matcher with the provided name and priority.
// Higher priority values take precedence. Callers should avoid duplicate
// names; the latest registration wins during resolution.
func (r *Registry) Register(name string, priority int, matcher Matcher) {
	if r == nil || matcher == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		name:     trimmed,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// Resolve returns the component for a field. An explicit ui component is
// honoured before matcher evaluation; the kind's default is the fallback.
func (r *Registry) Resolve(field Field) (string, bool) {
	if explicit := field.UI.Component(); explicit != "" {
		return explicit, true
	}
	if r == nil {
		return "", false
	}
	spec := r.Spec(field.Kind)

	r.mu.RLock()
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if spec.Allows(entry.name) && entry.match(field) {
			return entry.name, true
		}
	}
	if spec.Default != "" {
		return spec.Default, true
	}
	return "", false
}

// ValidateUI checks a ui config against the spec registered for kind.
func (r *Registry) ValidateUI(c *validation.Collector, path validation.Path, kind uischema.Kind, v any) (uischema.Config, bool) {
	return uischema.Check(c, path, v, r.Spec(kind))
}

func (r *Registry) registerBuiltins() {
	r.Register(ComponentSwitch, 90, func(field Field) bool {
		if field.Kind != uischema.KindDiscriminator || len(field.Options) != 2 {
			return false
		}
		for _, option := range field.Options {
			if _, ok := option.(bool); !ok {
				return false
			}
		}
		return true
	})

	r.Register(ComponentMultiSelect, 80, func(field Field) bool {
		return field.Kind == uischema.KindArray && field.ItemHasEnum
	})

	r.Register(ComponentSelect, 70, func(field Field) bool {
		switch field.Kind {
		case uischema.KindString, uischema.KindNumber:
			return field.HasEnum
		default:
			return false
		}
	})

	r.Register(ComponentRadioGroup, 60, func(field Field) bool {
		return field.Kind == uischema.KindDiscriminator && len(field.Options) > 0 && len(field.Options) <= 3
	})

	r.Register(ComponentJSONEditor, 50, func(field Field) bool {
		return field.Kind == uischema.KindObject && field.PropertyCount == 0
	})

	r.Register(ComponentKeyValue, 40, func(field Field) bool {
		return field.Kind == uischema.KindArray && field.ItemKind == uischema.KindObject
	})
}
