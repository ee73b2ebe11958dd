package openapi

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-propschema/pkg/i18n"
	"github.com/goliatone/go-propschema/pkg/property"
	"github.com/goliatone/go-propschema/pkg/validation"
)

// Extension keys written on exported schemas.
const (
	ExtensionPropertyType    = "x-property-type"
	ExtensionCredentialName  = "x-credential-name"
	ExtensionUI              = "x-ui"
	ExtensionDiscriminatorUI = "x-discriminator-ui"
	ExtensionDisplay         = "x-display"
)

// FormatEncrypted marks encrypted_string schemas.
const FormatEncrypted = "password"

// Exporter converts property trees into kin-openapi schemas.
type Exporter struct {
	options ExportOptions
}

// NewExporter constructs an Exporter.
func NewExporter(options ...ExportOption) *Exporter {
	return &Exporter{options: NewExportOptions(options...)}
}

// FromProperty exports prop with the default options.
func FromProperty(prop property.Property) (*openapi3.Schema, error) {
	return NewExporter().Schema(prop)
}

// FromProperties exports a sibling list with the default options.
func FromProperties(props []property.Property) (*openapi3.Schema, error) {
	return NewExporter().Properties(props)
}

// Schema returns the schema for a single property.
func (e *Exporter) Schema(prop property.Property) (*openapi3.Schema, error) {
	if property.TypeName(prop) == "" {
		return nil, errors.New("openapi export: property is nil")
	}
	return e.schema(nil, prop)
}

// Properties returns an object schema whose properties are props. Required
// lists the names flagged required, in declaration order.
func (e *Exporter) Properties(props []property.Property) (*openapi3.Schema, error) {
	out := openapi3.NewObjectSchema()
	if err := e.fields(validation.Path{}, out, props); err != nil {
		return nil, err
	}
	return out, nil
}

// Document builds a components-only OpenAPI document with one schema per
// entry of components and validates it with kin-openapi.
func (e *Exporter) Document(ctx context.Context, title, version string, components map[string][]property.Property) (*openapi3.T, error) {
	if title == "" {
		return nil, errors.New("openapi export: document title is required")
	}
	if version == "" {
		return nil, errors.New("openapi export: document version is required")
	}

	names := make([]string, 0, len(components))
	for name := range components {
		names = append(names, name)
	}
	sort.Strings(names)

	schemas := make(openapi3.Schemas, len(names))
	for _, name := range names {
		schema, err := e.Properties(components[name])
		if err != nil {
			return nil, fmt.Errorf("openapi export: component %q: %w", name, err)
		}
		schemas[name] = openapi3.NewSchemaRef("", schema)
	}

	doc := &openapi3.T{
		OpenAPI:    e.options.OpenAPIVersion,
		Info:       &openapi3.Info{Title: title, Version: version},
		Paths:      openapi3.NewPaths(),
		Components: &openapi3.Components{Schemas: schemas},
	}
	if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("openapi export: validate document: %w", err)
	}
	return doc, nil
}

func (e *Exporter) schema(path validation.Path, prop property.Property) (*openapi3.Schema, error) {
	var (
		out *openapi3.Schema
		err error
	)
	switch typed := prop.(type) {
	case *property.String:
		out, err = e.stringSchema(path, typed)
	case *property.Number:
		out = e.numberSchema(typed)
	case *property.Boolean:
		out = openapi3.NewBoolSchema()
		out.Enum = boolEnum(typed.Enum, typed.Constant)
		if typed.Default != nil {
			out.Default = *typed.Default
		}
	case *property.EncryptedString:
		out = openapi3.NewStringSchema()
		out.Format = FormatEncrypted
		out.WriteOnly = true
	case *property.CredentialID:
		out = openapi3.NewStringSchema()
		out.Extensions = map[string]any{ExtensionCredentialName: typed.CredentialName}
	case *property.Array:
		out, err = e.arraySchema(path, typed)
	case *property.Object:
		out, err = e.objectSchema(path, typed)
	case *property.DiscriminatedUnion:
		out, err = e.unionSchema(path, typed)
	default:
		return nil, fmt.Errorf("openapi export: %s: unsupported property %T", location(path), prop)
	}
	if err != nil {
		return nil, err
	}
	e.decorate(out, prop.Common(), prop.Kind())
	return out, nil
}

func (e *Exporter) decorate(out *openapi3.Schema, base *property.Base, kind property.Kind) {
	out.Title = e.text(base.DisplayName)
	if base.AI != nil {
		out.Description = e.text(base.AI.LLMDescription)
	}
	if out.Extensions == nil {
		out.Extensions = map[string]any{}
	}
	out.Extensions[ExtensionPropertyType] = string(kind)
	if e.options.UIExtensions && base.UI != nil {
		out.Extensions[ExtensionUI] = map[string]any(base.UI.Clone())
	}
	if e.options.DisplayExtensions && base.Display != nil {
		display := map[string]any{}
		if base.Display.Hide != nil {
			display["hide"] = base.Display.Hide.Value()
		}
		if base.Display.Show != nil {
			display["show"] = base.Display.Show.Value()
		}
		out.Extensions[ExtensionDisplay] = display
	}
}

func (e *Exporter) text(t *i18n.Text) string {
	if t == nil {
		return ""
	}
	return t.Resolve(e.options.Locale)
}

func (e *Exporter) stringSchema(path validation.Path, prop *property.String) (*openapi3.Schema, error) {
	out := openapi3.NewStringSchema()
	switch {
	case prop.Constant != nil:
		out.Enum = []any{*prop.Constant}
	case prop.Enum != nil:
		out.Enum = make([]any, len(prop.Enum))
		for idx, value := range prop.Enum {
			out.Enum[idx] = value
		}
	}
	if prop.Default != nil {
		out.Default = *prop.Default
	}
	if prop.MinLength != nil {
		n, err := count(path, "min_length", *prop.MinLength)
		if err != nil {
			return nil, err
		}
		out.MinLength = n
	}
	if prop.MaxLength != nil {
		n, err := count(path, "max_length", *prop.MaxLength)
		if err != nil {
			return nil, err
		}
		out.MaxLength = &n
	}
	return out, nil
}

func (e *Exporter) numberSchema(prop *property.Number) *openapi3.Schema {
	out := openapi3.NewFloat64Schema()
	if prop.Integer {
		out = openapi3.NewIntegerSchema()
	}
	switch {
	case prop.Constant != nil:
		out.Enum = []any{*prop.Constant}
	case prop.Enum != nil:
		out.Enum = make([]any, len(prop.Enum))
		for idx, value := range prop.Enum {
			out.Enum[idx] = value
		}
	}
	if prop.Default != nil {
		out.Default = *prop.Default
	}
	out.Min = copyFloat(prop.Minimum)
	out.Max = copyFloat(prop.Maximum)
	return out
}

func (e *Exporter) arraySchema(path validation.Path, prop *property.Array) (*openapi3.Schema, error) {
	out := openapi3.NewArraySchema()
	if property.TypeName(prop.Items) != "" {
		items, err := e.schema(path.Key("items"), prop.Items)
		if err != nil {
			return nil, err
		}
		out.Items = openapi3.NewSchemaRef("", items)
	}
	switch {
	case prop.Constant != nil:
		out.Enum = []any{copyArray(prop.Constant)}
	case prop.Enum != nil:
		out.Enum = make([]any, len(prop.Enum))
		for idx, value := range prop.Enum {
			out.Enum[idx] = copyArray(value)
		}
	}
	if prop.Default != nil {
		out.Default = copyArray(prop.Default)
	}
	if prop.MinItems != nil {
		n, err := count(path, "min_items", *prop.MinItems)
		if err != nil {
			return nil, err
		}
		out.MinItems = n
	}
	if prop.MaxItems != nil {
		n, err := count(path, "max_items", *prop.MaxItems)
		if err != nil {
			return nil, err
		}
		out.MaxItems = &n
	}
	return out, nil
}

func (e *Exporter) objectSchema(path validation.Path, prop *property.Object) (*openapi3.Schema, error) {
	out := openapi3.NewObjectSchema()
	if err := e.fields(path.Key("properties"), out, prop.Properties); err != nil {
		return nil, err
	}
	if property.TypeName(prop.AdditionalProperties) != "" {
		extra, err := e.schema(path.Key("additional_properties"), prop.AdditionalProperties)
		if err != nil {
			return nil, err
		}
		out.AdditionalProperties = openapi3.AdditionalProperties{Schema: openapi3.NewSchemaRef("", extra)}
	}
	switch {
	case prop.Constant != nil:
		out.Enum = []any{copyObject(prop.Constant)}
	case prop.Enum != nil:
		out.Enum = make([]any, len(prop.Enum))
		for idx, value := range prop.Enum {
			out.Enum[idx] = copyObject(value)
		}
	}
	if prop.Default != nil {
		out.Default = copyObject(prop.Default)
	}
	return out, nil
}

func (e *Exporter) unionSchema(path validation.Path, prop *property.DiscriminatedUnion) (*openapi3.Schema, error) {
	out := &openapi3.Schema{
		Discriminator: &openapi3.Discriminator{PropertyName: prop.Discriminator},
	}
	for idx, entry := range prop.AnyOf {
		entryPath := path.Key("any_of").Index(idx)
		if entry == nil {
			return nil, fmt.Errorf("openapi export: %s: entry is nil", location(entryPath))
		}
		schema, err := e.schema(entryPath, entry)
		if err != nil {
			return nil, err
		}
		if _, ok := schema.Properties[prop.Discriminator]; ok && !contains(schema.Required, prop.Discriminator) {
			schema.Required = append(schema.Required, prop.Discriminator)
		}
		out.OneOf = append(out.OneOf, openapi3.NewSchemaRef("", schema))
	}
	if e.options.UIExtensions && prop.DiscriminatorUI != nil {
		out.Extensions = map[string]any{ExtensionDiscriminatorUI: map[string]any(prop.DiscriminatorUI.Clone())}
	}
	return out, nil
}

func (e *Exporter) fields(path validation.Path, out *openapi3.Schema, props []property.Property) error {
	if out.Properties == nil {
		out.Properties = make(openapi3.Schemas, len(props))
	}
	for idx, child := range props {
		childPath := path.Index(idx)
		if property.TypeName(child) == "" {
			return fmt.Errorf("openapi export: %s: property is nil", location(childPath))
		}
		name := child.Common().Name
		if _, dup := out.Properties[name]; dup {
			return fmt.Errorf("openapi export: %s: %s", location(childPath), validation.DuplicateNameMessage)
		}
		schema, err := e.schema(childPath, child)
		if err != nil {
			return err
		}
		out.Properties[name] = openapi3.NewSchemaRef("", schema)
		if required := child.Common().Required; required != nil && *required {
			out.Required = append(out.Required, name)
		}
	}
	return nil
}

// count converts a length or item bound into the unsigned form OpenAPI uses.
func count(path validation.Path, key string, v float64) (uint64, error) {
	if v < 0 || v != math.Trunc(v) || v > math.MaxInt64 {
		return 0, fmt.Errorf("openapi export: %s: %s must be a non-negative integer, got %v", location(path.Key(key)), key, v)
	}
	return uint64(v), nil
}

func location(path validation.Path) string {
	if field := path.Field(); field != "" {
		return field
	}
	return "root"
}

func boolEnum(enum []bool, constant *bool) []any {
	if constant != nil {
		return []any{*constant}
	}
	if enum == nil {
		return nil
	}
	out := make([]any, len(enum))
	for idx, value := range enum {
		out[idx] = value
	}
	return out
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	out := *v
	return &out
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

func contains(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}
