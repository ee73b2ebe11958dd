package property

import (
	"github.com/goliatone/go-propschema/pkg/filter"
	"github.com/goliatone/go-propschema/pkg/jsonvalue"
	"github.com/goliatone/go-propschema/pkg/uischema"
	"github.com/goliatone/go-propschema/pkg/validation"
)

// Cross-field messages.
const (
	ConstantPropertiesMessage = "properties must be empty when constant is defined"
	AnyOfMinMessage           = "anyOf must have at least two items"
	DiscriminatorEmptyMessage = "discriminator cannot be empty"
	DiscriminatorMissing      = "Each item in anyOf must contain the discriminator field with constant string/number/boolean value"
	DiscriminatorDuplicate    = "Discriminator values must be unique across all anyOf items"
)

func (p *parser) stringNode(path validation.Path, obj map[string]any) *String {
	node := &String{
		Base:      p.base(path, obj, KindString),
		Constant:  p.str(path, obj, "constant"),
		Default:   p.str(path, obj, "default"),
		Enum:      p.strs(path, obj, "enum"),
		MaxLength: p.num(path, obj, "max_length"),
		MinLength: p.num(path, obj, "min_length"),
	}
	p.bounds(path, "min_length", "max_length", node.MinLength, node.MaxLength)
	return node
}

func (p *parser) numberNode(path validation.Path, obj map[string]any, kind Kind) *Number {
	node := &Number{
		Base:     p.base(path, obj, kind),
		Integer:  kind == KindInteger,
		Constant: p.num(path, obj, "constant"),
		Default:  p.num(path, obj, "default"),
		Enum:     p.nums(path, obj, "enum"),
		Maximum:  p.num(path, obj, "maximum"),
		Minimum:  p.num(path, obj, "minimum"),
	}
	p.bounds(path, "minimum", "maximum", node.Minimum, node.Maximum)
	return node
}

func (p *parser) booleanNode(path validation.Path, obj map[string]any) *Boolean {
	return &Boolean{
		Base:     p.base(path, obj, KindBoolean),
		Constant: p.boolean(path, obj, "constant"),
		Default:  p.boolean(path, obj, "default"),
		Enum:     p.bools(path, obj, "enum"),
	}
}

func (p *parser) credentialNode(path validation.Path, obj map[string]any) *CredentialID {
	node := &CredentialID{Base: p.base(path, obj, KindCredentialID)}
	switch raw := obj["credential_name"].(type) {
	case nil:
		p.c.Add(path.Key("credential_name"), validation.KindStructural, "credential_name is required")
	case string:
		if raw == "" {
			p.c.Add(path.Key("credential_name"), validation.KindFieldFormat, "credential_name cannot be empty")
		}
		node.CredentialName = raw
	default:
		p.c.Add(path.Key("credential_name"), validation.KindFieldFormat, "credential_name must be a string")
	}
	return node
}

func (p *parser) arrayNode(path validation.Path, obj map[string]any, depth int) *Array {
	node := &Array{
		Base:     p.base(path, obj, KindArray),
		Constant: p.jsonArray(path, obj, "constant"),
		Default:  p.jsonArray(path, obj, "default"),
		Enum:     p.jsonArrays(path, obj, "enum"),
		MaxItems: p.num(path, obj, "max_items"),
		MinItems: p.num(path, obj, "min_items"),
	}
	if raw := obj["items"]; raw == nil {
		p.c.Add(path.Key("items"), validation.KindStructural, "items is required")
	} else if items, ok := p.property(path.Key("items"), raw, depth+1); ok {
		node.Items = items
	}
	p.bounds(path, "min_items", "max_items", node.MinItems, node.MaxItems)
	return node
}

func (p *parser) objectNode(path validation.Path, obj map[string]any, depth int) *Object {
	node := &Object{Base: p.base(path, obj, KindObject)}

	start := p.c.Len()
	node.Constant = p.jsonObject(path, obj, "constant")
	constantOK := p.c.Len() == start

	propsOK := false
	if raw := obj["properties"]; raw == nil {
		p.c.Add(path.Key("properties"), validation.KindStructural, "properties is required")
	} else {
		node.Properties, propsOK = p.list(path.Key("properties"), raw, depth, nil)
	}

	if raw := obj["additional_properties"]; raw != nil {
		if extra, ok := p.property(path.Key("additional_properties"), raw, depth+1); ok {
			node.AdditionalProperties = extra
		}
	}
	node.Default = p.jsonObject(path, obj, "default")
	node.Enum = p.jsonObjects(path, obj, "enum")

	if constantOK && propsOK && node.Constant != nil && len(node.Properties) > 0 {
		p.c.Add(path, validation.KindCrossField, ConstantPropertiesMessage)
	}
	return node
}

func (p *parser) unionNode(path validation.Path, obj map[string]any, depth int) *DiscriminatedUnion {
	node := &DiscriminatedUnion{Base: p.base(path, obj, KindDiscriminatedUnion)}

	discOK := false
	switch raw := obj["discriminator"].(type) {
	case nil:
		p.c.Add(path.Key("discriminator"), validation.KindStructural, "discriminator is required")
	case string:
		if raw == "" {
			p.c.Add(path.Key("discriminator"), validation.KindFieldFormat, DiscriminatorEmptyMessage)
		} else {
			node.Discriminator = raw
			discOK = true
		}
	default:
		p.c.Add(path.Key("discriminator"), validation.KindFieldFormat, "discriminator must be a string")
	}

	if cfg, ok := p.ui.ValidateUI(p.c, path.Key("discriminator_ui"), uischema.KindDiscriminator, obj["discriminator_ui"]); ok {
		node.DiscriminatorUI = cfg
	}

	anyOfPath := path.Key("any_of")
	raw := obj["any_of"]
	if raw == nil {
		p.c.Add(anyOfPath, validation.KindStructural, "any_of is required")
		return node
	}
	items, ok := jsonvalue.AsArray(raw)
	if !ok {
		p.c.Add(anyOfPath, validation.KindStructural, "any_of must be an array")
		return node
	}

	start := p.c.Len()
	node.AnyOf = make([]*Object, 0, len(items))
	for idx, item := range items {
		entryPath := anyOfPath.Index(idx)
		entry, isObject := jsonvalue.AsObject(item)
		if !isObject || entry["type"] != string(KindObject) {
			p.c.Add(entryPath, validation.KindStructural, `expected type "object"`)
			continue
		}
		if depth+1 > p.maxDepth {
			p.c.Add(entryPath, validation.KindStructural, filter.MaxDepthMessage)
			continue
		}
		if prop, ok := p.node(entryPath, entry, KindObject, depth+1); ok {
			node.AnyOf = append(node.AnyOf, prop.(*Object))
		}
	}
	entriesOK := p.c.Len() == start

	if len(items) < 2 {
		p.c.Add(anyOfPath, validation.KindFieldFormat, AnyOfMinMessage)
		return node
	}
	if entriesOK && discOK {
		p.discriminatorRules(anyOfPath, node)
	}
	return node
}

// discriminatorRules checks that every entry carries a literal
// discriminator constant and that those constants are pairwise distinct.
func (p *parser) discriminatorRules(path validation.Path, node *DiscriminatedUnion) {
	values := make([]any, len(node.AnyOf))
	var missing []int
	for idx, entry := range node.AnyOf {
		value, ok := entry.DiscriminatorValue(node.Discriminator)
		if !ok {
			missing = append(missing, idx)
			continue
		}
		values[idx] = value
	}
	if len(missing) > 0 {
		p.c.AddEntries(path, validation.KindCrossField, DiscriminatorMissing, missing)
		return
	}

	for i := 0; i < len(values); i++ {
		for j := i + 1; j < len(values); j++ {
			if sameLiteral(values[i], values[j]) {
				p.c.AddEntries(path, validation.KindCrossField, DiscriminatorDuplicate, []int{i, j})
				return
			}
		}
	}
}

func (p *parser) bounds(path validation.Path, minKey, maxKey string, lo, hi *float64) {
	if !p.rangeChecks || lo == nil || hi == nil || *lo <= *hi {
		return
	}
	p.c.Addf(path.Key(minKey), validation.KindCrossField, "%s cannot exceed %s", minKey, maxKey)
}

func sameLiteral(a, b any) bool {
	return jsonvalue.Equal(a, b)
}

func isNil(prop Property) bool {
	if prop == nil {
		return true
	}
	switch typed := prop.(type) {
	case *String:
		return typed == nil
	case *Number:
		return typed == nil
	case *Boolean:
		return typed == nil
	case *EncryptedString:
		return typed == nil
	case *CredentialID:
		return typed == nil
	case *Array:
		return typed == nil
	case *Object:
		return typed == nil
	case *DiscriminatedUnion:
		return typed == nil
	}
	return false
}

// TypeName returns the `type` tag of prop, or "" for nil.
func TypeName(prop Property) string {
	if isNil(prop) {
		return ""
	}
	return string(prop.Kind())
}
