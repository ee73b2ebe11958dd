package property

import (
	"github.com/goliatone/go-propschema/pkg/filter"
	"github.com/goliatone/go-propschema/pkg/i18n"
	"github.com/goliatone/go-propschema/pkg/uischema"
)

// Kind is the value of a property's `type` tag.
type Kind string

const (
	KindString             Kind = "string"
	KindNumber             Kind = "number"
	KindInteger            Kind = "integer"
	KindBoolean            Kind = "boolean"
	KindEncryptedString    Kind = "encrypted_string"
	KindCredentialID       Kind = "credential_id"
	KindArray              Kind = "array"
	KindObject             Kind = "object"
	KindDiscriminatedUnion Kind = "discriminated_union"
)

func (k Kind) known() bool {
	switch k {
	case KindString, KindNumber, KindInteger, KindBoolean, KindEncryptedString,
		KindCredentialID, KindArray, KindObject, KindDiscriminatedUnion:
		return true
	default:
		return false
	}
}

// Scalar reports whether k may appear in a bare scalar property list.
func (k Kind) Scalar() bool {
	switch k {
	case KindString, KindNumber, KindInteger, KindBoolean, KindEncryptedString:
		return true
	default:
		return false
	}
}

// Widget returns the UI widget kind configured by a property of kind k.
func (k Kind) Widget() uischema.Kind {
	switch k {
	case KindNumber, KindInteger:
		return uischema.KindNumber
	default:
		return uischema.Kind(k)
	}
}

// Property is one node of a property schema tree. The set of
// implementations is closed: *String, *Number, *Boolean, *EncryptedString,
// *CredentialID, *Array, *Object and *DiscriminatedUnion.
type Property interface {
	Kind() Kind
	Common() *Base
	property()
}

// Base holds the fields shared by every variant.
type Base struct {
	Name        string
	DisplayName *i18n.Text
	Required    *bool
	Display     *Display
	AI          *AI
	UI          uischema.Config
}

// Common returns the shared fields.
func (b *Base) Common() *Base { return b }

func (b *Base) property() {}

// Display controls visibility from sibling values.
type Display struct {
	Hide *filter.Filter
	Show *filter.Filter
}

// AI carries advisory metadata for language-model consumers.
type AI struct {
	LLMDescription *i18n.Text
}

// String is a free-text property.
type String struct {
	Base
	Constant  *string
	Default   *string
	Enum      []string
	MaxLength *float64
	MinLength *float64
}

// Number is a numeric property. Integer selects the "integer" type tag; both
// tags share one shape.
type Number struct {
	Base
	Integer  bool
	Constant *float64
	Default  *float64
	Enum     []float64
	Maximum  *float64
	Minimum  *float64
}

// Boolean is a true/false property.
type Boolean struct {
	Base
	Constant *bool
	Default  *bool
	Enum     []bool
}

// EncryptedString is a secret always supplied at runtime.
type EncryptedString struct {
	Base
}

// CredentialID references a credential declared by the plugin.
type CredentialID struct {
	Base
	CredentialName string
}

// Array is a list whose elements follow Items.
type Array struct {
	Base
	Constant []any
	Default  []any
	Enum     [][]any
	Items    Property
	MaxItems *float64
	MinItems *float64
}

// Object groups named child properties.
type Object struct {
	Base
	Properties           []Property
	AdditionalProperties Property
	Constant             map[string]any
	Default              map[string]any
	Enum                 []map[string]any
}

// DiscriminatedUnion selects one of several object shapes by the constant
// value of the Discriminator property.
type DiscriminatedUnion struct {
	Base
	AnyOf           []*Object
	Discriminator   string
	DiscriminatorUI uischema.Config
}

func (*String) Kind() Kind { return KindString }

func (n *Number) Kind() Kind {
	if n.Integer {
		return KindInteger
	}
	return KindNumber
}

func (*Boolean) Kind() Kind            { return KindBoolean }
func (*EncryptedString) Kind() Kind    { return KindEncryptedString }
func (*CredentialID) Kind() Kind       { return KindCredentialID }
func (*Array) Kind() Kind              { return KindArray }
func (*Object) Kind() Kind             { return KindObject }
func (*DiscriminatedUnion) Kind() Kind { return KindDiscriminatedUnion }

var (
	_ Property = (*String)(nil)
	_ Property = (*Number)(nil)
	_ Property = (*Boolean)(nil)
	_ Property = (*EncryptedString)(nil)
	_ Property = (*CredentialID)(nil)
	_ Property = (*Array)(nil)
	_ Property = (*Object)(nil)
	_ Property = (*DiscriminatedUnion)(nil)
)

// Lookup returns the child property with the given name.
func (o *Object) Lookup(name string) (Property, bool) {
	if o == nil {
		return nil, false
	}
	for _, prop := range o.Properties {
		if prop != nil && prop.Common().Name == name {
			return prop, true
		}
	}
	return nil, false
}

// DiscriminatorValue returns the constant of the named child when it is a
// string, number or boolean property with a constant set.
func (o *Object) DiscriminatorValue(name string) (any, bool) {
	prop, ok := o.Lookup(name)
	if !ok {
		return nil, false
	}
	switch typed := prop.(type) {
	case *String:
		if typed.Constant != nil {
			return *typed.Constant, true
		}
	case *Number:
		if typed.Constant != nil {
			return *typed.Constant, true
		}
	case *Boolean:
		if typed.Constant != nil {
			return *typed.Constant, true
		}
	}
	return nil, false
}

// Variant returns the any_of entry whose discriminator constant equals value.
func (u *DiscriminatedUnion) Variant(value any) (*Object, bool) {
	if u == nil {
		return nil, false
	}
	for _, entry := range u.AnyOf {
		if got, ok := entry.DiscriminatorValue(u.Discriminator); ok && sameLiteral(got, value) {
			return entry, true
		}
	}
	return nil, false
}
