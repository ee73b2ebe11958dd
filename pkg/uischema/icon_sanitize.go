package uischema

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// shapeAttrs are shared by every SVG drawing primitive.
var shapeAttrs = []string{
	"d", "cx", "cy", "r", "rx", "ry", "x", "y", "x1", "y1", "x2", "y2",
	"points", "fill", "stroke", "stroke-width", "stroke-linecap",
	"stroke-linejoin", "class",
}

// iconElements maps each element a widget icon may use to its attributes.
var iconElements = map[string][]string{
	"svg": {
		"xmlns", "viewBox", "width", "height", "fill", "stroke", "stroke-width",
		"stroke-linecap", "stroke-linejoin", "aria-hidden", "role", "focusable", "class",
	},
	"g":        {"id"},
	"defs":     {"id"},
	"clipPath": {"id", "clipPathUnits"},
	"use":      {"href", "xlink:href", "clip-path"},
	"title":    nil,
	"desc":     nil,
	"path":     shapeAttrs,
	"circle":   shapeAttrs,
	"rect":     shapeAttrs,
	"line":     shapeAttrs,
	"polyline": shapeAttrs,
	"polygon":  shapeAttrs,
	"ellipse":  shapeAttrs,
}

var iconPolicy = sync.OnceValue(func() *bluemonday.Policy {
	policy := bluemonday.StrictPolicy()
	for element, attrs := range iconElements {
		policy.AllowElements(element)
		if len(attrs) > 0 {
			policy.AllowAttrs(attrs...).OnElements(element)
		}
	}
	return policy
})

// SanitizeIcon reduces a widget icon to inline SVG drawing markup. Plain icon
// names come back trimmed; an empty result means nothing allowed was left.
func SanitizeIcon(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(iconPolicy().Sanitize(trimmed))
}

// IconAllowed reports whether sanitizing raw would keep every element and
// attribute. Sanitized output differs from the input in letter case and
// entity escaping, so elements and attributes are counted instead of the
// text compared; raw itself is what callers store.
func IconAllowed(raw string) bool {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return true
	}
	cleaned := SanitizeIcon(trimmed)
	if cleaned == "" {
		return false
	}
	return strings.Count(cleaned, "<") == strings.Count(trimmed, "<") &&
		strings.Count(cleaned, "=") == strings.Count(trimmed, "=")
}
