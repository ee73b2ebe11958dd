package validation

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPathRendering(t *testing.T) {
	cases := []struct {
		name    string
		path    Path
		pointer string
		field   string
	}{
		{name: "root", path: nil, pointer: "", field: ""},
		{name: "index", path: Path{}.Index(2), pointer: "/2", field: "[2]"},
		{
			name:    "nested",
			path:    Path{}.Key("properties").Index(0).Key("name"),
			pointer: "/properties/0/name",
			field:   "properties[0].name",
		},
		{
			name:    "escaped",
			path:    Path{}.Key("display").Key("show").Key("a/b~c"),
			pointer: "/display/show/a~1b~0c",
			field:   "display.show.a/b~c",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.path.Pointer(); got != tc.pointer {
				t.Fatalf("pointer: want %q, got %q", tc.pointer, got)
			}
			if got := tc.path.Field(); got != tc.field {
				t.Fatalf("field: want %q, got %q", tc.field, got)
			}
		})
	}
}

func TestPathKeyDoesNotAlias(t *testing.T) {
	base := Path{}.Key("any_of")
	a := base.Index(0)
	b := base.Index(1)
	if a.Pointer() != "/any_of/0" || b.Pointer() != "/any_of/1" {
		t.Fatalf("sibling paths aliased: %q %q", a.Pointer(), b.Pointer())
	}
}

func TestCollectorErr(t *testing.T) {
	var c Collector
	if err := c.Err(); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	c.Add(Path{}.Key("name"), KindFieldFormat, "name cannot be empty")
	c.AddEntries(Path{}.Key("any_of"), KindCrossField, "boom", []int{0, 2})

	err := c.Err()
	var issues Errors
	if !errors.As(err, &issues) {
		t.Fatalf("expected Errors, got %T", err)
	}
	want := Errors{
		{Path: "/name", Field: "name", Kind: KindFieldFormat, Message: "name cannot be empty"},
		{Path: "/any_of", Field: "any_of", Kind: KindCrossField, Message: "boom", Entries: []int{0, 2}},
	}
	if diff := cmp.Diff(want, issues); diff != "" {
		t.Fatalf("issues mismatch (-want +got):\n%s", diff)
	}
	if !issues.Has("boom") || issues.Has("missing") {
		t.Fatalf("Has mismatch")
	}
	if got := len(issues.At("name")); got != 1 {
		t.Fatalf("expected one issue at name, got %d", got)
	}
}

func TestFirstDuplicate(t *testing.T) {
	names := []string{"a", "b", "c", "b", "a"}
	first, second, found := FirstDuplicate(names, func(s string) string { return s })
	if !found || first != 1 || second != 3 {
		t.Fatalf("expected (1,3,true), got (%d,%d,%v)", first, second, found)
	}

	if _, _, found := FirstDuplicate([]string{"x", "X"}, func(s string) string { return s }); found {
		t.Fatalf("comparison must be case sensitive")
	}
}

func TestCheckDuplicateNamesUsesInputPositions(t *testing.T) {
	var c Collector
	items := []string{"x", "y", "x"}
	ok := CheckDuplicateNames(&c, Path{}.Key("properties"), items, []int{0, 2, 5}, func(s string) string { return s })
	if ok {
		t.Fatalf("expected duplicate to be detected")
	}
	issues := c.Issues()
	if len(issues) != 1 {
		t.Fatalf("expected a single issue, got %d", len(issues))
	}
	if issues[0].Field != "properties[5]" {
		t.Fatalf("expected issue anchored at properties[5], got %q", issues[0].Field)
	}
	if diff := cmp.Diff([]int{0, 5}, issues[0].Entries); diff != "" {
		t.Fatalf("entries mismatch (-want +got):\n%s", diff)
	}
}

func TestResultFromError(t *testing.T) {
	if res := ResultFromError(nil); !res.Valid {
		t.Fatalf("nil error must be valid")
	}

	wrapped := fmt.Errorf("manifest: %w", Errors{{Field: "name", Message: "name cannot be empty"}})
	res := ResultFromError(wrapped)
	if res.Valid || len(res.Issues) != 1 || res.Issues[0].Message != "name cannot be empty" {
		t.Fatalf("unexpected result: %#v", res)
	}

	res = ResultFromError(errors.New("manifest: unexpected token at /properties/1"))
	if res.Valid || len(res.Issues) != 1 {
		t.Fatalf("unexpected result: %#v", res)
	}
	if res.Issues[0].Field != "properties[1]" {
		t.Fatalf("expected field properties[1], got %q", res.Issues[0].Field)
	}
	if res.Issues[0].Message != "manifest: unexpected token" {
		t.Fatalf("expected trimmed message, got %q", res.Issues[0].Message)
	}
}
