package property

import (
	"github.com/goliatone/go-propschema/pkg/jsonvalue"
	"github.com/goliatone/go-propschema/pkg/validation"
)

// Field readers treat null and an absent key alike and return nil for both.
// A present value of the wrong shape is reported at path.key.

func (p *parser) str(path validation.Path, obj map[string]any, key string) *string {
	raw := obj[key]
	if raw == nil {
		return nil
	}
	value, ok := raw.(string)
	if !ok {
		p.c.Addf(path.Key(key), validation.KindFieldFormat, "%s must be a string", key)
		return nil
	}
	return &value
}

func (p *parser) num(path validation.Path, obj map[string]any, key string) *float64 {
	raw := obj[key]
	if raw == nil {
		return nil
	}
	value, ok := jsonvalue.Number(raw)
	if !ok {
		p.c.Addf(path.Key(key), validation.KindFieldFormat, "%s must be a number", key)
		return nil
	}
	return &value
}

func (p *parser) boolean(path validation.Path, obj map[string]any, key string) *bool {
	raw := obj[key]
	if raw == nil {
		return nil
	}
	value, ok := raw.(bool)
	if !ok {
		p.c.Addf(path.Key(key), validation.KindFieldFormat, "%s must be a boolean", key)
		return nil
	}
	return &value
}

func (p *parser) strs(path validation.Path, obj map[string]any, key string) []string {
	items, ok := p.array(path, obj, key, "an array of strings")
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		value, ok := item.(string)
		if !ok {
			p.c.Addf(path.Key(key), validation.KindFieldFormat, "%s must be an array of strings", key)
			return nil
		}
		out = append(out, value)
	}
	return out
}

func (p *parser) nums(path validation.Path, obj map[string]any, key string) []float64 {
	items, ok := p.array(path, obj, key, "an array of numbers")
	if !ok {
		return nil
	}
	out := make([]float64, 0, len(items))
	for _, item := range items {
		value, ok := jsonvalue.Number(item)
		if !ok {
			p.c.Addf(path.Key(key), validation.KindFieldFormat, "%s must be an array of numbers", key)
			return nil
		}
		out = append(out, value)
	}
	return out
}

func (p *parser) bools(path validation.Path, obj map[string]any, key string) []bool {
	items, ok := p.array(path, obj, key, "an array of booleans")
	if !ok {
		return nil
	}
	out := make([]bool, 0, len(items))
	for _, item := range items {
		value, ok := item.(bool)
		if !ok {
			p.c.Addf(path.Key(key), validation.KindFieldFormat, "%s must be an array of booleans", key)
			return nil
		}
		out = append(out, value)
	}
	return out
}

// jsonArray reads an array of arbitrary JSON values.
func (p *parser) jsonArray(path validation.Path, obj map[string]any, key string) []any {
	raw := obj[key]
	if raw == nil {
		return nil
	}
	norm, err := jsonvalue.Normalize(raw)
	if err == nil && norm == nil {
		return nil
	}
	value, ok := norm.([]any)
	if err != nil || !ok {
		p.c.Addf(path.Key(key), validation.KindFieldFormat, "%s must be an array of JSON values", key)
		return nil
	}
	return value
}

// jsonObject reads an object of arbitrary JSON values.
func (p *parser) jsonObject(path validation.Path, obj map[string]any, key string) map[string]any {
	raw := obj[key]
	if raw == nil {
		return nil
	}
	norm, err := jsonvalue.Normalize(raw)
	if err == nil && norm == nil {
		return nil
	}
	value, ok := norm.(map[string]any)
	if err != nil || !ok {
		p.c.Addf(path.Key(key), validation.KindFieldFormat, "%s must be an object of JSON values", key)
		return nil
	}
	return value
}

func (p *parser) jsonArrays(path validation.Path, obj map[string]any, key string) [][]any {
	items, ok := p.array(path, obj, key, "an array of JSON arrays")
	if !ok {
		return nil
	}
	out := make([][]any, 0, len(items))
	for _, item := range items {
		norm, err := jsonvalue.Normalize(item)
		value, ok := norm.([]any)
		if err != nil || !ok {
			p.c.Addf(path.Key(key), validation.KindFieldFormat, "%s must be an array of JSON arrays", key)
			return nil
		}
		out = append(out, value)
	}
	return out
}

func (p *parser) jsonObjects(path validation.Path, obj map[string]any, key string) []map[string]any {
	items, ok := p.array(path, obj, key, "an array of JSON objects")
	if !ok {
		return nil
	}
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		norm, err := jsonvalue.Normalize(item)
		value, ok := norm.(map[string]any)
		if err != nil || !ok {
			p.c.Addf(path.Key(key), validation.KindFieldFormat, "%s must be an array of JSON objects", key)
			return nil
		}
		out = append(out, value)
	}
	return out
}

// array returns the raw elements of a present array field. shape completes
// the "<key> must be ..." message.
func (p *parser) array(path validation.Path, obj map[string]any, key, shape string) ([]any, bool) {
	raw := obj[key]
	if raw == nil {
		return nil, false
	}
	items, ok := jsonvalue.AsArray(raw)
	if !ok {
		p.c.Addf(path.Key(key), validation.KindFieldFormat, "%s must be %s", key, shape)
		return nil, false
	}
	return items, true
}
