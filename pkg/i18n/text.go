// Package i18n models localizable display text: either a single default
// string or a mapping from BCP 47 locale tag to string.
package i18n

import (
	"encoding/json"
	"errors"
	"sort"

	"golang.org/x/text/language"

	"github.com/goliatone/go-propschema/pkg/jsonvalue"
	"github.com/goliatone/go-propschema/pkg/validation"
)

// Text is a localizable string. When Locales is nil the text is the single
// Default string; otherwise Locales holds one translation per locale tag.
type Text struct {
	Default string
	Locales map[string]string
}

// Plain returns a non-localized text.
func Plain(value string) *Text {
	return &Text{Default: value}
}

// Localized returns a text holding one entry per locale.
func Localized(entries map[string]string) *Text {
	locales := make(map[string]string, len(entries))
	for key, value := range entries {
		locales[key] = value
	}
	return &Text{Locales: locales}
}

// IsLocalized reports whether the text is a locale mapping.
func (t Text) IsLocalized() bool {
	return t.Locales != nil
}

// Value returns the JSON data model form: a string or a map[string]any.
func (t Text) Value() any {
	if t.Locales == nil {
		return t.Default
	}
	out := make(map[string]any, len(t.Locales))
	for key, value := range t.Locales {
		out[key] = value
	}
	return out
}

// MarshalJSON emits a string or an object.
func (t Text) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Value())
}

// UnmarshalJSON accepts a string or an object of locale tag to string.
func (t *Text) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := Parse(raw)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Resolve returns the translation that best matches locale. Plain texts
// return Default regardless of locale.
func (t Text) Resolve(locale string) string {
	if len(t.Locales) == 0 {
		return t.Default
	}

	keys := make([]string, 0, len(t.Locales))
	for key := range t.Locales {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	tags := make([]language.Tag, 0, len(keys))
	tagKeys := make([]string, 0, len(keys))
	for _, key := range keys {
		tag, err := language.Parse(key)
		if err != nil {
			continue
		}
		tags = append(tags, tag)
		tagKeys = append(tagKeys, key)
	}
	if len(tags) == 0 {
		return t.Locales[keys[0]]
	}

	desired, err := language.Parse(locale)
	if err != nil {
		return t.Locales[tagKeys[0]]
	}
	_, idx, _ := language.NewMatcher(tags).Match(desired)
	return t.Locales[tagKeys[idx]]
}

// Parse validates v and returns the corresponding Text.
func Parse(v any) (Text, error) {
	var c validation.Collector
	text, ok := Validate(&c, nil, v)
	if !ok {
		if err := c.Err(); err != nil {
			return Text{}, err
		}
		return Text{}, errors.New("i18n: invalid text")
	}
	return text, nil
}

// Validate checks v against the localizable text shape, recording issues at
// path. It reports false when any issue was recorded.
func Validate(c *validation.Collector, path validation.Path, v any) (Text, bool) {
	if value, ok := v.(string); ok {
		return Text{Default: value}, true
	}
	obj, ok := jsonvalue.AsObject(v)
	if !ok {
		c.Add(path, validation.KindFieldFormat, "must be a string or a map of locale tag to string")
		return Text{}, false
	}

	start := c.Len()
	locales := make(map[string]string, len(obj))
	for _, key := range jsonvalue.Keys(obj) {
		value, ok := obj[key].(string)
		if !ok {
			c.Add(path.Key(key), validation.KindFieldFormat, "translation must be a string")
			continue
		}
		if _, err := language.Parse(key); err != nil {
			c.Addf(path.Key(key), validation.KindFieldFormat, "invalid locale tag %q", key)
			continue
		}
		locales[key] = value
	}
	if c.Len() > start {
		return Text{}, false
	}
	return Text{Locales: locales}, true
}
