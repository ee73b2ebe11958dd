package uischema

import (
	"sort"
	"strings"
)

// Kind identifies the widget family a UI configuration belongs to. Each
// property variant maps to one kind; the discriminator selector of a
// discriminated union has its own.
type Kind string

const (
	KindString             Kind = "string"
	KindNumber             Kind = "number"
	KindBoolean            Kind = "boolean"
	KindEncryptedString    Kind = "encrypted_string"
	KindCredentialID       Kind = "credential_id"
	KindArray              Kind = "array"
	KindObject             Kind = "object"
	KindDiscriminatedUnion Kind = "discriminated_union"
	KindDiscriminator      Kind = "discriminator"
)

// Kinds lists every widget kind in declaration order.
func Kinds() []Kind {
	return []Kind{
		KindString, KindNumber, KindBoolean, KindEncryptedString, KindCredentialID,
		KindArray, KindObject, KindDiscriminatedUnion, KindDiscriminator,
	}
}

// Valid reports whether k is a known widget kind.
func (k Kind) Valid() bool {
	for _, known := range Kinds() {
		if k == known {
			return true
		}
	}
	return false
}

// Common props understood by every widget kind. Other keys pass through
// untouched.
const (
	KeyComponent   = "component"
	KeyHint        = "hint"
	KeyPlaceholder = "placeholder"
	KeyWidth       = "width"
	KeyClassName   = "class_name"
	KeyHidden      = "hidden"
	KeyDisabled    = "disabled"
	KeyReadOnly    = "readonly"
	KeyIcon        = "icon"
)

// Config is a validated widget configuration in JSON data model form.
type Config map[string]any

// Component returns the configured component name, if any.
func (c Config) Component() string {
	if c == nil {
		return ""
	}
	name, _ := c[KeyComponent].(string)
	return strings.TrimSpace(name)
}

// Clone returns a shallow copy of the configuration.
func (c Config) Clone() Config {
	if c == nil {
		return nil
	}
	out := make(Config, len(c))
	for key, value := range c {
		out[key] = value
	}
	return out
}

// WidgetSpec lists the components a widget kind accepts.
type WidgetSpec struct {
	Kind       Kind
	Default    string
	Components []string
	Source     string
}

// Allows reports whether component is accepted. A spec without components
// accepts any name.
func (s WidgetSpec) Allows(component string) bool {
	if len(s.Components) == 0 {
		return true
	}
	for _, name := range s.Components {
		if name == component {
			return true
		}
	}
	return false
}

// Catalog holds one WidgetSpec per kind. It is safe for concurrent readers
// when treated as immutable after construction.
type Catalog struct {
	widgets map[Kind]WidgetSpec
}

// NewCatalog builds a catalog from specs. Later specs for the same kind
// replace earlier ones.
func NewCatalog(specs ...WidgetSpec) *Catalog {
	cat := &Catalog{widgets: make(map[Kind]WidgetSpec, len(specs))}
	for _, spec := range specs {
		cat.widgets[spec.Kind] = cloneSpec(spec)
	}
	return cat
}

// Widget returns the spec registered for kind.
func (c *Catalog) Widget(kind Kind) (WidgetSpec, bool) {
	if c == nil {
		return WidgetSpec{}, false
	}
	spec, ok := c.widgets[kind]
	if !ok {
		return WidgetSpec{}, false
	}
	return cloneSpec(spec), true
}

// Specs returns every spec sorted by kind.
func (c *Catalog) Specs() []WidgetSpec {
	if c == nil {
		return nil
	}
	out := make([]WidgetSpec, 0, len(c.widgets))
	for _, spec := range c.widgets {
		out = append(out, cloneSpec(spec))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Kind < out[j].Kind })
	return out
}

// Empty reports whether the catalog holds any specs.
func (c *Catalog) Empty() bool {
	return c == nil || len(c.widgets) == 0
}

func cloneSpec(spec WidgetSpec) WidgetSpec {
	out := spec
	out.Components = append([]string(nil), spec.Components...)
	return out
}
