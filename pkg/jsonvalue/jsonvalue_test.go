package jsonvalue

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNormalizeAcceptsPrimitives(t *testing.T) {
	for _, value := range []any{nil, true, false, 0, 123.456, "", "hello", int64(7), uint8(3), json.Number("12.5")} {
		if !IsValue(value) {
			t.Fatalf("expected %#v (%T) to be a JSON value", value, value)
		}
	}
}

func TestNormalizeAcceptsArraysAndObjects(t *testing.T) {
	type label string

	got, err := Normalize(map[string]any{
		"a": 1,
		"b": "x",
		"c": nil,
		"d": []bool{true, false},
		"e": map[string]int{"n": 2},
		"f": label("named"),
		"g": []any{1, "a", nil, map[string]any{"k": "v"}},
	})
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	want := map[string]any{
		"a": float64(1),
		"b": "x",
		"c": nil,
		"d": []any{true, false},
		"e": map[string]any{"n": float64(2)},
		"f": "named",
		"g": []any{float64(1), "a", nil, map[string]any{"k": "v"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("normalized mismatch (-want +got):\n%s", diff)
	}
}

type bigID int64

func TestNormalizeRejectsNonJSONValues(t *testing.T) {
	type point struct{ X int }
	cases := map[string]any{
		"func":        func() {},
		"chan":        make(chan int),
		"struct":      point{X: 1},
		"nan":         math.NaN(),
		"inf":         math.Inf(1),
		"int map key": map[int]string{1: "a"},
		"nested func": []any{1, map[string]any{"f": func() {}}},
		"big int64":   int64(MaxSafeInteger + 2),
		"big uint64":  uint64(1 << 63),
		"big named":   bigID(-(MaxSafeInteger + 1)),
		"big number":  json.Number("9007199254740993"),
	}
	for name, value := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Normalize(value)
			if !errors.Is(err, ErrNotJSON) {
				t.Fatalf("expected ErrNotJSON, got %v", err)
			}
		})
	}
}

func TestNormalizeDepthGuard(t *testing.T) {
	var value any = "leaf"
	for i := 0; i < MaxDepth+2; i++ {
		value = []any{value}
	}
	if _, err := Normalize(value); !errors.Is(err, ErrTooDeep) {
		t.Fatalf("expected ErrTooDeep, got %v", err)
	}
}

func TestEqual(t *testing.T) {
	cases := []struct {
		name string
		a, b any
		want bool
	}{
		{"numbers across kinds", 1, float64(1), true},
		{"number vs string", 1, "1", false},
		{"bool vs number", true, 1, false},
		{"null", nil, nil, true},
		{"arrays", []any{1, "a"}, []string{"1", "a"}, false},
		{"typed arrays", []int{1, 2}, []any{1.0, 2.0}, true},
		{"objects", map[string]any{"a": []any{1}}, map[string]any{"a": []int{1}}, true},
		{"object extra key", map[string]any{"a": 1}, map[string]any{"a": 1, "b": 2}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Equal(tc.a, tc.b); got != tc.want {
				t.Fatalf("Equal(%#v, %#v) = %v, want %v", tc.a, tc.b, got, tc.want)
			}
		})
	}
}

func TestIsPrimitive(t *testing.T) {
	for _, value := range []any{"a", 1, 2.5, false} {
		if !IsPrimitive(value) {
			t.Fatalf("expected %#v to be primitive", value)
		}
	}
	for _, value := range []any{nil, []any{}, map[string]any{}, math.NaN()} {
		if IsPrimitive(value) {
			t.Fatalf("expected %#v not to be primitive", value)
		}
	}
}

func TestNumberSafeIntegers(t *testing.T) {
	cases := []struct {
		in   any
		want float64
		ok   bool
	}{
		{int64(MaxSafeInteger), MaxSafeInteger, true},
		{int64(-MaxSafeInteger), -MaxSafeInteger, true},
		{uint64(MaxSafeInteger), MaxSafeInteger, true},
		{int64(MaxSafeInteger + 1), 0, false},
		{uint64(MaxSafeInteger + 1), 0, false},
		{json.Number("9007199254740993"), 0, false},
		{json.Number("99999999999999999999"), 0, false},
		{json.Number("1e20"), 1e20, true},
		{json.Number("12"), 12, true},
	}
	for _, tc := range cases {
		got, ok := Number(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("Number(%#v) = %v, %v; want %v, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}
