package property

import "github.com/goliatone/go-propschema/pkg/validation"

// Walk visits prop and its descendants depth-first in declaration order.
// Paths are relative to prop. Returning false from fn skips the node's
// children.
func Walk(prop Property, fn func(path validation.Path, prop Property) bool) {
	walk(nil, prop, fn)
}

// WalkAll visits each property of a sibling list. Paths start at the list
// index.
func WalkAll(props []Property, fn func(path validation.Path, prop Property) bool) {
	for idx, prop := range props {
		walk(validation.Path{}.Index(idx), prop, fn)
	}
}

func walk(path validation.Path, prop Property, fn func(validation.Path, Property) bool) {
	if isNil(prop) || !fn(path, prop) {
		return
	}
	switch typed := prop.(type) {
	case *Array:
		walk(path.Key("items"), typed.Items, fn)
	case *Object:
		for idx, child := range typed.Properties {
			walk(path.Key("properties").Index(idx), child, fn)
		}
		walk(path.Key("additional_properties"), typed.AdditionalProperties, fn)
	case *DiscriminatedUnion:
		for idx, entry := range typed.AnyOf {
			walk(path.Key("any_of").Index(idx), entry, fn)
		}
	}
}

// CredentialNames returns the credential names referenced anywhere in
// props, in first-seen order without duplicates.
func CredentialNames(props []Property) []string {
	var out []string
	seen := make(map[string]struct{})
	WalkAll(props, func(_ validation.Path, prop Property) bool {
		if cred, ok := prop.(*CredentialID); ok {
			if _, dup := seen[cred.CredentialName]; !dup {
				seen[cred.CredentialName] = struct{}{}
				out = append(out, cred.CredentialName)
			}
		}
		return true
	})
	return out
}
