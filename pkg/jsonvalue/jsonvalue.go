// Package jsonvalue validates and normalises values from the open JSON data
// model: objects, arrays, strings, numbers, booleans and null.
//
// Decoders disagree on how they represent JSON in Go (encoding/json yields
// float64 and map[string]any, yaml.v3 yields int and map[string]any, callers
// building values by hand use []string or map[string]int). Normalize folds all
// of them into one canonical form so later equality checks are exact.
package jsonvalue

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strings"
)

// MaxDepth bounds the nesting accepted by Normalize.
const MaxDepth = 256

var (
	// ErrNotJSON is returned for values outside the JSON data model.
	ErrNotJSON = errors.New("jsonvalue: value is not representable as JSON")
	// ErrTooDeep is returned when a value nests beyond MaxDepth.
	ErrTooDeep = errors.New("jsonvalue: value nesting exceeds maximum depth")
)

// Normalize returns the canonical form of v: nil, bool, float64, string,
// []any or map[string]any, recursively. Any integer or float kind and
// json.Number become float64; any slice or array becomes []any; any map with
// string keys becomes map[string]any; nil slices and maps become null, as
// with encoding/json. NaN, infinities, functions, channels,
// structs and non-string map keys are rejected with ErrNotJSON.
func Normalize(v any) (any, error) {
	return normalize(v, 0)
}

// IsValue reports whether v is representable as JSON.
func IsValue(v any) bool {
	_, err := Normalize(v)
	return err == nil
}

// Object normalises v and requires a JSON object.
func Object(v any) (map[string]any, bool) {
	norm, err := Normalize(v)
	if err != nil {
		return nil, false
	}
	obj, ok := norm.(map[string]any)
	return obj, ok
}

// Array normalises v and requires a JSON array.
func Array(v any) ([]any, bool) {
	norm, err := Normalize(v)
	if err != nil {
		return nil, false
	}
	arr, ok := norm.([]any)
	return arr, ok
}

// MaxSafeInteger is the largest integer every float64 holds exactly.
const MaxSafeInteger = 1<<53 - 1

func safeInt(n int64) bool {
	return n >= -MaxSafeInteger && n <= MaxSafeInteger
}

// Number converts any numeric kind (or json.Number) to float64. NaN and
// infinities are not JSON numbers, and integers beyond MaxSafeInteger are
// rejected rather than rounded.
func Number(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		if !safeInt(int64(n)) {
			return 0, false
		}
		f = float64(n)
	case int8:
		f = float64(n)
	case int16:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		if !safeInt(n) {
			return 0, false
		}
		f = float64(n)
	case uint:
		if uint64(n) > MaxSafeInteger {
			return 0, false
		}
		f = float64(n)
	case uint8:
		f = float64(n)
	case uint16:
		f = float64(n)
	case uint32:
		f = float64(n)
	case uint64:
		if n > MaxSafeInteger {
			return 0, false
		}
		f = float64(n)
	case json.Number:
		if !strings.ContainsAny(n.String(), ".eE") {
			i, err := n.Int64()
			if err != nil || !safeInt(i) {
				return 0, false
			}
		}
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// IsPrimitive reports whether v is a string, number or boolean. Null is not
// a primitive here: it cannot select a union variant.
func IsPrimitive(v any) bool {
	switch v.(type) {
	case string, bool:
		return true
	}
	_, ok := Number(v)
	return ok
}

// Equal compares two values under JSON semantics: numbers by value, arrays
// element-wise, objects key-wise. Values of different JSON types are never
// equal (1 != "1", true != 1).
func Equal(a, b any) bool {
	na, errA := Normalize(a)
	nb, errB := Normalize(b)
	if errA != nil || errB != nil {
		return false
	}
	return equal(na, nb)
}

// Keys returns the object's keys in sorted order for deterministic walks.
func Keys(obj map[string]any) []string {
	keys := make([]string, 0, len(obj))
	for key := range obj {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func normalize(v any, depth int) (any, error) {
	if depth > MaxDepth {
		return nil, ErrTooDeep
	}
	switch typed := v.(type) {
	case nil:
		return nil, nil
	case bool, string:
		return typed, nil
	case map[string]any:
		if typed == nil {
			return nil, nil
		}
		out := make(map[string]any, len(typed))
		for key, value := range typed {
			norm, err := normalize(value, depth+1)
			if err != nil {
				return nil, err
			}
			out[key] = norm
		}
		return out, nil
	case []any:
		if typed == nil {
			return nil, nil
		}
		out := make([]any, len(typed))
		for idx, value := range typed {
			norm, err := normalize(value, depth+1)
			if err != nil {
				return nil, err
			}
			out[idx] = norm
		}
		return out, nil
	}
	if f, ok := Number(v); ok {
		return f, nil
	}
	if n, ok := v.(json.Number); ok {
		return nil, fmt.Errorf("%w: number %s", ErrNotJSON, n)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil, nil
		}
		return normalize(rv.Elem().Interface(), depth)
	case reflect.Bool:
		return rv.Bool(), nil
	case reflect.String:
		return rv.String(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if !safeInt(rv.Int()) {
			return nil, fmt.Errorf("%w: integer %d is not exactly representable", ErrNotJSON, rv.Int())
		}
		return float64(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if rv.Uint() > MaxSafeInteger {
			return nil, fmt.Errorf("%w: integer %d is not exactly representable", ErrNotJSON, rv.Uint())
		}
		return float64(rv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("%w: %v", ErrNotJSON, f)
		}
		return f, nil
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return nil, nil
		}
		out := make([]any, rv.Len())
		for idx := 0; idx < rv.Len(); idx++ {
			norm, err := normalize(rv.Index(idx).Interface(), depth+1)
			if err != nil {
				return nil, err
			}
			out[idx] = norm
		}
		return out, nil
	case reflect.Map:
		if rv.IsNil() {
			return nil, nil
		}
		if rv.Type().Key().Kind() != reflect.String {
			return nil, fmt.Errorf("%w: map key type %s", ErrNotJSON, rv.Type().Key())
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			norm, err := normalize(iter.Value().Interface(), depth+1)
			if err != nil {
				return nil, err
			}
			out[iter.Key().String()] = norm
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: %T", ErrNotJSON, v)
}

func equal(a, b any) bool {
	switch av := a.(type) {
	case nil:
		return b == nil
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for idx := range av {
			if !equal(av[idx], bv[idx]) {
				return false
			}
		}
		return true
	case map[string]any:
		bv, ok := b.(map[string]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for key, value := range av {
			other, exists := bv[key]
			if !exists || !equal(value, other) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// AsObject returns v as map[string]any without descending into its values.
// Any map type with string keys is accepted.
func AsObject(v any) (map[string]any, bool) {
	if obj, ok := v.(map[string]any); ok {
		return obj, obj != nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.IsNil() || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out, true
}

// AsArray returns v as []any without descending into its elements. Any
// slice or array type is accepted.
func AsArray(v any) ([]any, bool) {
	if arr, ok := v.([]any); ok {
		return arr, arr != nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice:
		if rv.IsNil() {
			return nil, false
		}
	case reflect.Array:
	default:
		return nil, false
	}
	out := make([]any, rv.Len())
	for idx := range out {
		out[idx] = rv.Index(idx).Interface()
	}
	return out, true
}
