package validation

import (
	"strconv"
	"strings"
)

// Path locates a node inside the validated input. Segments are object keys or
// decimal array indices. Paths are values; Key and Index return copies.
type Path []string

// Key returns the path extended with an object key.
func (p Path) Key(key string) Path {
	next := make(Path, len(p), len(p)+1)
	copy(next, p)
	return append(next, key)
}

// Index returns the path extended with an array index.
func (p Path) Index(idx int) Path {
	return p.Key(strconv.Itoa(idx))
}

// Pointer renders the path as a JSON pointer ("/properties/0/name").
func (p Path) Pointer() string {
	if len(p) == 0 {
		return ""
	}
	var b strings.Builder
	for _, segment := range p {
		b.WriteByte('/')
		segment = strings.ReplaceAll(segment, "~", "~0")
		segment = strings.ReplaceAll(segment, "/", "~1")
		b.WriteString(segment)
	}
	return b.String()
}

// Field renders the path in dotted notation with bracketed indices
// ("properties[0].name").
func (p Path) Field() string {
	return FieldFromPointer(p.Pointer())
}

// FieldFromPointer converts a JSON pointer into dotted field notation.
func FieldFromPointer(pointer string) string {
	trimmed := strings.TrimSpace(pointer)
	trimmed = strings.TrimPrefix(trimmed, "#")
	trimmed = strings.TrimPrefix(trimmed, "/")
	if trimmed == "" {
		return ""
	}

	var b strings.Builder
	for _, part := range strings.Split(trimmed, "/") {
		segment := strings.ReplaceAll(part, "~1", "/")
		segment = strings.ReplaceAll(segment, "~0", "~")
		if isNumeric(segment) {
			b.WriteString("[" + segment + "]")
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(segment)
	}
	return b.String()
}

func isNumeric(value string) bool {
	if value == "" {
		return false
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
