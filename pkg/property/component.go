package property

import (
	"github.com/goliatone/go-propschema/pkg/uischema"
	"github.com/goliatone/go-propschema/pkg/widgets"
)

// WidgetField summarises prop for component resolution.
func WidgetField(prop Property) widgets.Field {
	if isNil(prop) {
		return widgets.Field{}
	}
	field := widgets.Field{
		Kind: prop.Kind().Widget(),
		UI:   prop.Common().UI,
	}
	switch typed := prop.(type) {
	case *String:
		field.HasEnum = len(typed.Enum) > 0
	case *Number:
		field.HasEnum = len(typed.Enum) > 0
	case *Boolean:
		field.HasEnum = len(typed.Enum) > 0
	case *Array:
		field.HasEnum = len(typed.Enum) > 0
		if !isNil(typed.Items) {
			item := WidgetField(typed.Items)
			field.ItemKind = item.Kind
			field.ItemHasEnum = item.HasEnum
		}
	case *Object:
		field.HasEnum = len(typed.Enum) > 0
		field.PropertyCount = len(typed.Properties)
	case *DiscriminatedUnion:
		field.PropertyCount = len(typed.AnyOf)
	}
	return field
}

// Component returns the UI component for prop: its explicit ui component,
// else the registry's choice.
func (v *Validator) Component(prop Property) (string, bool) {
	return v.widgets.Resolve(WidgetField(prop))
}

// DiscriminatorComponent returns the UI component for a union's variant
// selector.
func (v *Validator) DiscriminatorComponent(u *DiscriminatedUnion) (string, bool) {
	if u == nil {
		return "", false
	}
	field := widgets.Field{Kind: uischema.KindDiscriminator, UI: u.DiscriminatorUI}
	for _, entry := range u.AnyOf {
		if value, ok := entry.DiscriminatorValue(u.Discriminator); ok {
			field.Options = append(field.Options, value)
		}
	}
	return v.widgets.Resolve(field)
}

// Component resolves prop's component with the default Validator.
func Component(prop Property) (string, bool) { return shared().Component(prop) }
