package property

import (
	"encoding/json"
	"errors"
)

// Encode returns the JSON data model form of prop, the exact inverse of
// Parse: Parse(Encode(p)) yields a tree equal to p for every valid p. Nil
// fields are omitted; empty but non-nil slices and maps are kept.
func Encode(prop Property) map[string]any {
	if isNil(prop) {
		return nil
	}
	out := map[string]any{"type": string(prop.Kind())}
	encodeBase(out, prop.Common())

	switch typed := prop.(type) {
	case *String:
		putString(out, "constant", typed.Constant)
		putString(out, "default", typed.Default)
		if typed.Enum != nil {
			enum := make([]any, len(typed.Enum))
			for idx, value := range typed.Enum {
				enum[idx] = value
			}
			out["enum"] = enum
		}
		putNumber(out, "max_length", typed.MaxLength)
		putNumber(out, "min_length", typed.MinLength)
	case *Number:
		putNumber(out, "constant", typed.Constant)
		putNumber(out, "default", typed.Default)
		if typed.Enum != nil {
			enum := make([]any, len(typed.Enum))
			for idx, value := range typed.Enum {
				enum[idx] = value
			}
			out["enum"] = enum
		}
		putNumber(out, "maximum", typed.Maximum)
		putNumber(out, "minimum", typed.Minimum)
	case *Boolean:
		putBool(out, "constant", typed.Constant)
		putBool(out, "default", typed.Default)
		if typed.Enum != nil {
			enum := make([]any, len(typed.Enum))
			for idx, value := range typed.Enum {
				enum[idx] = value
			}
			out["enum"] = enum
		}
	case *EncryptedString:
	case *CredentialID:
		out["credential_name"] = typed.CredentialName
	case *Array:
		if typed.Constant != nil {
			out["constant"] = copyArray(typed.Constant)
		}
		if typed.Default != nil {
			out["default"] = copyArray(typed.Default)
		}
		if typed.Enum != nil {
			enum := make([]any, len(typed.Enum))
			for idx, value := range typed.Enum {
				enum[idx] = copyArray(value)
			}
			out["enum"] = enum
		}
		if !isNil(typed.Items) {
			out["items"] = Encode(typed.Items)
		}
		putNumber(out, "max_items", typed.MaxItems)
		putNumber(out, "min_items", typed.MinItems)
	case *Object:
		out["properties"] = EncodeProperties(typed.Properties)
		if !isNil(typed.AdditionalProperties) {
			out["additional_properties"] = Encode(typed.AdditionalProperties)
		}
		if typed.Constant != nil {
			out["constant"] = copyObject(typed.Constant)
		}
		if typed.Default != nil {
			out["default"] = copyObject(typed.Default)
		}
		if typed.Enum != nil {
			enum := make([]any, len(typed.Enum))
			for idx, value := range typed.Enum {
				enum[idx] = copyObject(value)
			}
			out["enum"] = enum
		}
	case *DiscriminatedUnion:
		anyOf := make([]any, 0, len(typed.AnyOf))
		for _, entry := range typed.AnyOf {
			anyOf = append(anyOf, Encode(entry))
		}
		out["any_of"] = anyOf
		out["discriminator"] = typed.Discriminator
		if typed.DiscriminatorUI != nil {
			out["discriminator_ui"] = map[string]any(typed.DiscriminatorUI.Clone())
		}
	}
	return out
}

// EncodeProperties encodes a sibling list. A nil list encodes as an empty
// array.
func EncodeProperties(props []Property) []any {
	out := make([]any, 0, len(props))
	for _, prop := range props {
		out = append(out, Encode(prop))
	}
	return out
}

// Marshal encodes prop as JSON.
func Marshal(prop Property) ([]byte, error) {
	if isNil(prop) {
		return nil, errors.New("property: nil property")
	}
	return json.Marshal(Encode(prop))
}

func encodeBase(out map[string]any, b *Base) {
	out["name"] = b.Name
	if b.DisplayName != nil {
		out["display_name"] = b.DisplayName.Value()
	}
	putBool(out, "required", b.Required)
	if b.Display != nil {
		display := map[string]any{}
		if b.Display.Hide != nil {
			display["hide"] = b.Display.Hide.Value()
		}
		if b.Display.Show != nil {
			display["show"] = b.Display.Show.Value()
		}
		out["display"] = display
	}
	if b.AI != nil {
		ai := map[string]any{}
		if b.AI.LLMDescription != nil {
			ai["llm_description"] = b.AI.LLMDescription.Value()
		}
		out["ai"] = ai
	}
	if b.UI != nil {
		out["ui"] = map[string]any(b.UI.Clone())
	}
}

func putString(out map[string]any, key string, value *string) {
	if value != nil {
		out[key] = *value
	}
}

func putNumber(out map[string]any, key string, value *float64) {
	if value != nil {
		out[key] = *value
	}
}

func putBool(out map[string]any, key string, value *bool) {
	if value != nil {
		out[key] = *value
	}
}

func copyArray(in []any) []any {
	return append(make([]any, 0, len(in)), in...)
}

func copyObject(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}
