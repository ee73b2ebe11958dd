package property

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/goliatone/go-propschema/pkg/filter"
	"github.com/goliatone/go-propschema/pkg/jsonvalue"
	"github.com/goliatone/go-propschema/pkg/validation"
)

// Parse validates v with the default Validator.
func Parse(v any) (Property, error) { return shared().Parse(v) }

// ParseProperties validates a property list with the default Validator.
func ParseProperties(v any) ([]Property, error) { return shared().ParseProperties(v) }

// ParseScalarProperties validates a scalar property list with the default
// Validator.
func ParseScalarProperties(v any) ([]Property, error) { return shared().ParseScalarProperties(v) }

// ParseJSON decodes and validates a single property document with the
// default Validator.
func ParseJSON(data []byte) (Property, error) { return shared().ParseJSON(data) }

// Validate re-checks a tree built in code with the default Validator.
func Validate(p Property) error { return shared().Validate(p) }

// Parse validates v as a single property node. On failure the error is a
// validation.Errors listing every issue found.
func (v *Validator) Parse(raw any) (Property, error) {
	p := v.newParser()
	prop, _ := p.property(nil, raw, 0)
	if err := p.c.Err(); err != nil {
		return nil, err
	}
	return prop, nil
}

// ParseProperties validates v as an ordered list of sibling properties with
// unique names.
func (v *Validator) ParseProperties(raw any) ([]Property, error) {
	p := v.newParser()
	props, _ := p.list(nil, raw, 0, nil)
	if err := p.c.Err(); err != nil {
		return nil, err
	}
	return props, nil
}

// ParseScalarProperties validates v as a list of string, number, integer,
// boolean and encrypted_string properties with unique names.
func (v *Validator) ParseScalarProperties(raw any) ([]Property, error) {
	p := v.newParser()
	props, _ := p.list(nil, raw, 0, func(kind Kind) bool { return kind.Scalar() })
	if err := p.c.Err(); err != nil {
		return nil, err
	}
	return props, nil
}

// ParseJSON decodes data and validates it as a single property node.
func (v *Validator) ParseJSON(data []byte) (Property, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("property: decode JSON: %w", err)
	}
	return v.Parse(raw)
}

// Validate checks a programmatically built tree by encoding it and parsing
// the result, so it enforces exactly what Parse enforces. Display filters
// are first checked for conditions that have no encoded form.
func (v *Validator) Validate(prop Property) error {
	if isNil(prop) {
		return errors.New("property: nil property")
	}
	var c validation.Collector
	Walk(prop, func(path validation.Path, node Property) bool {
		display := node.Common().Display
		if display == nil {
			return true
		}
		if display.Hide != nil {
			filter.Verify(&c, path.Key("display").Key("hide"), *display.Hide)
		}
		if display.Show != nil {
			filter.Verify(&c, path.Key("display").Key("show"), *display.Show)
		}
		return true
	})
	if err := c.Err(); err != nil {
		return err
	}
	_, err := v.Parse(Encode(prop))
	return err
}

type parser struct {
	*Validator
	c *validation.Collector
}

func (v *Validator) newParser() *parser {
	return &parser{Validator: v, c: &validation.Collector{}}
}

// property parses one node. ok is false when any issue was recorded inside
// the node.
func (p *parser) property(path validation.Path, raw any, depth int) (Property, bool) {
	if depth > p.maxDepth {
		p.c.Add(path, validation.KindStructural, filter.MaxDepthMessage)
		return nil, false
	}
	obj, ok := jsonvalue.AsObject(raw)
	if !ok {
		p.c.Add(path, validation.KindStructural, "property must be an object")
		return nil, false
	}
	kind, ok := p.kind(path, obj)
	if !ok {
		return nil, false
	}
	return p.node(path, obj, kind, depth)
}

func (p *parser) kind(path validation.Path, obj map[string]any) (Kind, bool) {
	raw, present := obj["type"]
	if !present || raw == nil {
		p.c.Add(path.Key("type"), validation.KindStructural, "type is required")
		return "", false
	}
	tag, ok := raw.(string)
	if !ok {
		p.c.Add(path.Key("type"), validation.KindStructural, "type must be a string")
		return "", false
	}
	if kind := Kind(tag); kind.known() {
		return kind, true
	}
	p.c.Addf(path.Key("type"), validation.KindStructural, "unknown property type %q", tag)
	return "", false
}

func (p *parser) node(path validation.Path, obj map[string]any, kind Kind, depth int) (Property, bool) {
	start := p.c.Len()
	var prop Property
	switch kind {
	case KindString:
		prop = p.stringNode(path, obj)
	case KindNumber, KindInteger:
		prop = p.numberNode(path, obj, kind)
	case KindBoolean:
		prop = p.booleanNode(path, obj)
	case KindEncryptedString:
		prop = &EncryptedString{Base: p.base(path, obj, kind)}
	case KindCredentialID:
		prop = p.credentialNode(path, obj)
	case KindArray:
		prop = p.arrayNode(path, obj, depth)
	case KindObject:
		prop = p.objectNode(path, obj, depth)
	case KindDiscriminatedUnion:
		prop = p.unionNode(path, obj, depth)
	}
	if p.strictKeys {
		p.unknownKeys(path, obj, kind)
	}
	if p.c.Len() > start {
		return nil, false
	}
	return prop, true
}

// list parses sibling properties and checks their names are unique. When
// allow is non-nil, entries whose kind it rejects are reported.
func (p *parser) list(path validation.Path, raw any, depth int, allow func(Kind) bool) ([]Property, bool) {
	items, ok := jsonvalue.AsArray(raw)
	if !ok {
		p.c.Add(path, validation.KindStructural, "properties must be an array")
		return nil, false
	}

	start := p.c.Len()
	props := make([]Property, 0, len(items))
	positions := make([]int, 0, len(items))
	for idx, item := range items {
		next := path.Index(idx)
		if allow != nil && !p.allowed(next, item, allow) {
			continue
		}
		prop, ok := p.property(next, item, depth+1)
		if !ok {
			continue
		}
		props = append(props, prop)
		positions = append(positions, idx)
	}
	validation.CheckDuplicateNames(p.c, path, props, positions, nameOf)

	if p.c.Len() > start {
		return nil, false
	}
	return props, true
}

func (p *parser) allowed(path validation.Path, item any, allow func(Kind) bool) bool {
	obj, ok := jsonvalue.AsObject(item)
	if !ok {
		return true
	}
	tag, ok := obj["type"].(string)
	if !ok || !Kind(tag).known() || allow(Kind(tag)) {
		return true
	}
	p.c.Addf(path.Key("type"), validation.KindStructural, "type %q is not allowed in a scalar property list", tag)
	return false
}

func nameOf(p Property) string {
	return p.Common().Name
}
