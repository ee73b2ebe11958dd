package uischema

import (
	"fmt"

	"github.com/goliatone/go-propschema/pkg/i18n"
	"github.com/goliatone/go-propschema/pkg/jsonvalue"
	"github.com/goliatone/go-propschema/pkg/validation"
)

// Check validates v as a widget configuration for spec, recording issues at
// path. A nil v is an absent configuration and yields a nil Config. Common
// props are type-checked and icon markup is screened but kept as written;
// every other key must only be a JSON value.
func Check(c *validation.Collector, path validation.Path, v any, spec WidgetSpec) (Config, bool) {
	if v == nil {
		return nil, true
	}
	obj, ok := jsonvalue.AsObject(v)
	if !ok {
		c.Add(path, validation.KindFieldFormat, "ui config must be an object")
		return nil, false
	}

	start := c.Len()
	out := make(Config, len(obj))
	for _, key := range jsonvalue.Keys(obj) {
		raw := obj[key]
		next := path.Key(key)
		value, err := jsonvalue.Normalize(raw)
		if err != nil {
			c.Addf(next, validation.KindFieldFormat, "%s must be a JSON value", key)
			continue
		}
		if value == nil {
			out[key] = nil
			continue
		}

		switch key {
		case KeyComponent:
			name, ok := value.(string)
			if !ok {
				c.Add(next, validation.KindFieldFormat, "component must be a string")
				continue
			}
			if !spec.Allows(name) {
				c.Addf(next, validation.KindFieldFormat, "unsupported component %q for %s widget", name, spec.Kind)
				continue
			}
		case KeyHint, KeyPlaceholder:
			if _, ok := i18n.Validate(c, next, value); !ok {
				continue
			}
		case KeyWidth, KeyClassName:
			if _, ok := value.(string); !ok {
				c.Addf(next, validation.KindFieldFormat, "%s must be a string", key)
				continue
			}
		case KeyHidden, KeyDisabled, KeyReadOnly:
			if _, ok := value.(bool); !ok {
				c.Addf(next, validation.KindFieldFormat, "%s must be a boolean", key)
				continue
			}
		case KeyIcon:
			markup, ok := value.(string)
			if !ok {
				c.Add(next, validation.KindFieldFormat, "icon must be a string")
				continue
			}
			if !IconAllowed(markup) {
				c.Add(next, validation.KindFieldFormat, "icon contains markup that is not allowed")
				continue
			}
		}
		out[key] = value
	}

	if c.Len() > start {
		return nil, false
	}
	return out, true
}

// Validate checks a configuration outside of a property tree.
func Validate(v any, spec WidgetSpec) (Config, error) {
	var c validation.Collector
	cfg, ok := Check(&c, nil, v, spec)
	if !ok {
		if err := c.Err(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("uischema: invalid %s widget config", spec.Kind)
	}
	return cfg, nil
}
