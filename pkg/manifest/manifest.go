package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-propschema/pkg/jsonvalue"
	"github.com/goliatone/go-propschema/pkg/property"
	"github.com/goliatone/go-propschema/pkg/validation"
)

// ErrShape is returned for documents that are neither a property list nor
// an object with a properties key.
var ErrShape = errors.New("manifest: document must be a property list or an object with properties")

// Manifest is a validated plugin configuration document.
type Manifest struct {
	Name        string
	Version     string
	Description string
	Properties  []property.Property
	// Credentials lists credential names referenced by credential_id
	// properties, in first-seen order.
	Credentials []string
	Source      Source
	Hash        string
}

// Lookup returns the top-level property called name.
func (m *Manifest) Lookup(name string) (property.Property, bool) {
	if m == nil {
		return nil, false
	}
	for _, prop := range m.Properties {
		if prop.Common().Name == name {
			return prop, true
		}
	}
	return nil, false
}

// Decode parses data as JSON, falling back to YAML, and returns the JSON
// data model form.
func Decode(data []byte) (any, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, errors.New("manifest: document is empty")
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.New("manifest: invalid JSON or YAML")
	}
	normalized, err := jsonvalue.Normalize(doc)
	if err != nil {
		return nil, fmt.Errorf("manifest: decode YAML: %w", err)
	}
	return normalized, nil
}

// header holds the optional metadata of object-shaped documents.
type header struct {
	name, version, description string
}

// split returns the property list and metadata of a decoded document. The
// prefix is the path of the list inside the document.
func split(doc any) (any, header, validation.Path, error) {
	if list, ok := jsonvalue.AsArray(doc); ok {
		return list, header{}, nil, nil
	}
	obj, ok := jsonvalue.AsObject(doc)
	if !ok {
		return nil, header{}, nil, ErrShape
	}
	props, ok := obj["properties"]
	if !ok {
		return nil, header{}, nil, ErrShape
	}

	var h header
	fields := []struct {
		key    string
		target *string
	}{{"name", &h.name}, {"version", &h.version}, {"description", &h.description}}
	for _, field := range fields {
		switch value := obj[field.key].(type) {
		case nil:
		case string:
			*field.target = value
		default:
			return nil, header{}, nil, fmt.Errorf("manifest: %s must be a string", field.key)
		}
	}
	return props, h, validation.Path{"properties"}, nil
}

// rebase anchors issues found in a property list at its position inside the
// document.
func rebase(err error, prefix validation.Path) error {
	var issues validation.Errors
	if len(prefix) == 0 || !errors.As(err, &issues) {
		return err
	}
	out := make(validation.Errors, len(issues))
	for idx, issue := range issues {
		issue.Path = prefix.Pointer() + issue.Path
		issue.Field = validation.FieldFromPointer(issue.Path)
		out[idx] = issue
	}
	return out
}
