package uischema

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFS walks the provided filesystem and parses JSON/YAML widget catalog
// files. When fsys is nil or no catalog files are present, the returned
// catalog is empty. A kind may be defined by one file only.
func LoadFS(fsys fs.FS) (*Catalog, error) {
	catalog := &Catalog{widgets: make(map[Kind]WidgetSpec)}
	if fsys == nil {
		return catalog, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isCatalogFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("uischema: read %s: %w", path, err)
		}

		doc, err := parseDocument(data, path)
		if err != nil {
			return err
		}

		for rawKind, raw := range doc.Widgets {
			kind := Kind(strings.TrimSpace(rawKind))
			if !kind.Valid() {
				return fmt.Errorf("uischema: file %s defines unknown widget kind %q", path, rawKind)
			}
			if existing, exists := catalog.widgets[kind]; exists {
				return fmt.Errorf("uischema: duplicate widget kind %q (files %s and %s)", kind, existing.Source, path)
			}
			spec, err := normaliseWidget(raw, kind, path)
			if err != nil {
				return err
			}
			catalog.widgets[kind] = spec
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return catalog, nil
}

type documentFile struct {
	Widgets map[string]widgetFile `json:"widgets" yaml:"widgets"`
}

type widgetFile struct {
	Default    string   `json:"default" yaml:"default"`
	Components []string `json:"components" yaml:"components"`
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("uischema: file %s is empty", source)
	}

	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	if err := yaml.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	return documentFile{}, fmt.Errorf("uischema: parse %s: invalid JSON or YAML", source)
}

func normaliseWidget(raw widgetFile, kind Kind, source string) (WidgetSpec, error) {
	spec := WidgetSpec{
		Kind:    kind,
		Default: strings.TrimSpace(raw.Default),
		Source:  source,
	}

	seen := make(map[string]struct{}, len(raw.Components))
	for idx, entry := range raw.Components {
		name := strings.TrimSpace(entry)
		if name == "" {
			return WidgetSpec{}, fmt.Errorf("uischema: file %s widget %q contains an empty component at index %d", source, kind, idx)
		}
		if _, dup := seen[name]; dup {
			return WidgetSpec{}, fmt.Errorf("uischema: file %s widget %q lists component %q twice", source, kind, name)
		}
		seen[name] = struct{}{}
		spec.Components = append(spec.Components, name)
	}

	if spec.Default != "" && !spec.Allows(spec.Default) {
		return WidgetSpec{}, fmt.Errorf("uischema: file %s widget %q default %q is not a listed component", source, kind, spec.Default)
	}
	return spec, nil
}

func isCatalogFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
