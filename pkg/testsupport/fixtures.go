package testsupport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-propschema/pkg/manifest"
	"github.com/goliatone/go-propschema/pkg/validation"
)

// UpdateGoldens reports whether golden files should be rewritten.
func UpdateGoldens() bool {
	return os.Getenv("UPDATE_GOLDENS") != ""
}

// LoadDocument reads a fixture into a manifest.Document with a file source.
func LoadDocument(t *testing.T, path string) manifest.Document {
	t.Helper()

	doc, err := LoadDocumentFromPath(path)
	if err != nil {
		t.Fatalf("load document: %v", err)
	}
	return doc
}

// LoadDocumentFromPath is LoadDocument for setup code without a testing.T.
func LoadDocumentFromPath(path string) (manifest.Document, error) {
	if path == "" {
		return manifest.Document{}, errors.New("testsupport: document path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return manifest.Document{}, fmt.Errorf("testsupport: read document: %w", err)
	}
	doc, err := manifest.NewDocument(manifest.FileSource(path), data)
	if err != nil {
		return manifest.Document{}, fmt.Errorf("testsupport: new document: %w", err)
	}
	return doc, nil
}

// MustLoadJSON decodes a JSON fixture into the JSON data model.
func MustLoadJSON(t *testing.T, path string) any {
	t.Helper()

	var out any
	if err := json.Unmarshal(MustReadGolden(t, path), &out); err != nil {
		t.Fatalf("unmarshal fixture %s: %v", path, err)
	}
	return out
}

// MustLoadResult reads a golden validation.Result.
func MustLoadResult(t *testing.T, path string) validation.Result {
	t.Helper()

	var out validation.Result
	if err := json.Unmarshal(MustReadGolden(t, path), &out); err != nil {
		t.Fatalf("unmarshal golden %s: %v", path, err)
	}
	return out
}

// AssertResultGolden compares the Result for err against a golden file,
// rewriting the golden instead when UPDATE_GOLDENS is set.
func AssertResultGolden(t *testing.T, path string, err error) {
	t.Helper()

	got := validation.ResultFromError(err)
	if UpdateGoldens() {
		WriteGolden(t, path, got)
		return
	}
	if diff := CompareGolden(MustLoadResult(t, path), got); diff != "" {
		t.Fatalf("result mismatch for %s (-want +got):\n%s", path, diff)
	}
}

// WriteGolden writes value as indented JSON when UPDATE_GOLDENS is set.
func WriteGolden(t *testing.T, path string, value any) {
	t.Helper()

	if !UpdateGoldens() {
		return
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	WriteMaybeGolden(t, path, append(payload, '\n'))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. It
// returns true if the golden was written.
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()

	if !UpdateGoldens() {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
