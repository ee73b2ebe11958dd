package property

import (
	"strings"
	"unicode"

	"github.com/goliatone/go-propschema/pkg/filter"
	"github.com/goliatone/go-propschema/pkg/i18n"
	"github.com/goliatone/go-propschema/pkg/jsonvalue"
	"github.com/goliatone/go-propschema/pkg/validation"
)

// Name format messages.
const (
	NameEmptyMessage     = "name cannot be empty"
	NameLeadingMessage   = "name cannot start with $ or whitespace"
	NameForbiddenMessage = `name cannot contain ".", "[", or "]" characters`
)

// CheckName reports the first name format rule s violates, or "" when s is
// a valid property name.
func CheckName(s string) string {
	if s == "" {
		return NameEmptyMessage
	}
	if first := []rune(s)[0]; first == '$' || leadingSpace(first) {
		return NameLeadingMessage
	}
	if strings.ContainsAny(s, ".[]") {
		return NameForbiddenMessage
	}
	return ""
}

// leadingSpace matches the ECMAScript \s class: Unicode white space plus the
// byte order mark, without U+0085.
func leadingSpace(r rune) bool {
	return r == '\uFEFF' || (r != '\u0085' && unicode.IsSpace(r))
}

var baseKeys = []string{"type", "name", "display_name", "required", "display", "ai", "ui"}

func (p *parser) base(path validation.Path, obj map[string]any, kind Kind) Base {
	var b Base

	switch raw := obj["name"].(type) {
	case nil:
		p.c.Add(path.Key("name"), validation.KindStructural, "name is required")
	case string:
		if msg := CheckName(raw); msg != "" {
			p.c.Add(path.Key("name"), validation.KindFieldFormat, msg)
		}
		b.Name = raw
	default:
		p.c.Add(path.Key("name"), validation.KindFieldFormat, "name must be a string")
	}

	if raw := obj["display_name"]; raw != nil {
		if text, ok := i18n.Validate(p.c, path.Key("display_name"), raw); ok {
			b.DisplayName = &text
		}
	}
	b.Required = p.boolean(path, obj, "required")
	b.Display = p.display(path.Key("display"), obj["display"])
	b.AI = p.ai(path.Key("ai"), obj["ai"])

	if cfg, ok := p.ui.ValidateUI(p.c, path.Key("ui"), kind.Widget(), obj["ui"]); ok {
		b.UI = cfg
	}
	return b
}

func (p *parser) display(path validation.Path, raw any) *Display {
	if raw == nil {
		return nil
	}
	obj, ok := jsonvalue.AsObject(raw)
	if !ok {
		p.c.Add(path, validation.KindFieldFormat, "display must be an object")
		return nil
	}
	out := &Display{}
	if hide := obj["hide"]; hide != nil {
		if f, ok := filter.Check(p.c, path.Key("hide"), hide, p.maxDepth); ok {
			out.Hide = &f
		}
	}
	if show := obj["show"]; show != nil {
		if f, ok := filter.Check(p.c, path.Key("show"), show, p.maxDepth); ok {
			out.Show = &f
		}
	}
	if p.strictKeys {
		p.rejectExtra(path, obj, []string{"hide", "show"})
	}
	return out
}

func (p *parser) ai(path validation.Path, raw any) *AI {
	if raw == nil {
		return nil
	}
	obj, ok := jsonvalue.AsObject(raw)
	if !ok {
		p.c.Add(path, validation.KindFieldFormat, "ai must be an object")
		return nil
	}
	out := &AI{}
	if desc := obj["llm_description"]; desc != nil {
		if text, ok := i18n.Validate(p.c, path.Key("llm_description"), desc); ok {
			out.LLMDescription = &text
		}
	}
	if p.strictKeys {
		p.rejectExtra(path, obj, []string{"llm_description"})
	}
	return out
}

// unknownKeys reports keys outside the variant's shape.
func (p *parser) unknownKeys(path validation.Path, obj map[string]any, kind Kind) {
	allowed := append(append([]string(nil), baseKeys...), variantKeys[kind]...)
	p.rejectExtra(path, obj, allowed)
}

func (p *parser) rejectExtra(path validation.Path, obj map[string]any, allowed []string) {
	for _, key := range jsonvalue.Keys(obj) {
		known := false
		for _, candidate := range allowed {
			if key == candidate {
				known = true
				break
			}
		}
		if !known {
			p.c.Addf(path.Key(key), validation.KindFieldFormat, "unknown key %q", key)
		}
	}
}

var variantKeys = map[Kind][]string{
	KindString:             {"constant", "default", "enum", "max_length", "min_length"},
	KindNumber:             {"constant", "default", "enum", "maximum", "minimum"},
	KindInteger:            {"constant", "default", "enum", "maximum", "minimum"},
	KindBoolean:            {"constant", "default", "enum"},
	KindEncryptedString:    nil,
	KindCredentialID:       {"credential_name"},
	KindArray:              {"constant", "default", "enum", "items", "max_items", "min_items"},
	KindObject:             {"properties", "additional_properties", "constant", "default", "enum"},
	KindDiscriminatedUnion: {"any_of", "discriminator", "discriminator_ui"},
}
