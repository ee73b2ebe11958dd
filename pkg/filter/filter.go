// Package filter models the display-condition language used to show or hide
// a property based on its siblings' values. Conditions follow MongoDB query
// predicate syntax: a mapping from sibling field path to a condition, or a
// root combinator of $and, $or and $nor.
//
// The package validates shape only; it never evaluates a filter and never
// checks that referenced fields exist.
package filter

import (
	"encoding/json"
	"regexp"
	"sort"

	"github.com/goliatone/go-propschema/pkg/validation"
)

// Filter is one node of a condition tree. A field filter sets Fields; a root
// filter sets any of And, Or, Nor. A nil slice means the combinator is
// absent, an empty non-nil slice means it is present with no clauses.
type Filter struct {
	Fields map[string]Condition
	And    []Filter
	Or     []Filter
	Nor    []Filter
}

// IsRoot reports whether the filter combines nested filters.
func (f Filter) IsRoot() bool {
	return f.And != nil || f.Or != nil || f.Nor != nil
}

// Condition constrains a single sibling field. When Operators is nil the
// condition is an equality match against Value.
type Condition struct {
	Value     any
	Operators *Operators
}

// Equals builds a literal equality condition.
func Equals(value any) Condition {
	return Condition{Value: value}
}

// Operators is the operator form of a condition. Nil fields are absent.
// Null lists the operators written with an explicit null operand, in key
// order; they carry no constraint but keep the condition in operator form.
type Operators struct {
	Eq      any
	Ne      any
	Gt      any
	Gte     any
	Lt      any
	Lte     any
	In      []any
	Nin     []any
	Exists  *bool
	Mod     *[2]float64
	Regex   *Regex
	Options *string
	Size    *float64
	Null    []string
}

// Empty reports whether no operator is present. An empty operator set has no
// data model form: it would read back as an equality match against {}.
func (o Operators) Empty() bool {
	return o.Eq == nil && o.Ne == nil && o.Gt == nil && o.Gte == nil &&
		o.Lt == nil && o.Lte == nil && o.In == nil && o.Nin == nil &&
		o.Exists == nil && o.Mod == nil && o.Regex == nil && o.Options == nil &&
		o.Size == nil && len(o.Null) == 0
}

// Regex holds a $regex operand: a pattern string, or a compiled expression
// supplied by a caller building filters in code.
type Regex struct {
	Pattern  string
	Compiled *regexp.Regexp
}

// String returns the pattern source.
func (r Regex) String() string {
	if r.Compiled != nil {
		return r.Compiled.String()
	}
	return r.Pattern
}

// Value returns the data model form of the filter. Compiled regular
// expressions are kept as-is so the result parses back to the same filter.
func (f Filter) Value() map[string]any {
	out := make(map[string]any)
	for path, cond := range f.Fields {
		out[path] = cond.value()
	}
	if f.And != nil {
		out[OpAnd] = filterValues(f.And)
	}
	if f.Or != nil {
		out[OpOr] = filterValues(f.Or)
	}
	if f.Nor != nil {
		out[OpNor] = filterValues(f.Nor)
	}
	return out
}

// MarshalJSON encodes the filter; compiled regular expressions are written
// as their pattern source.
func (f Filter) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonSafe(f.Value()))
}

// UnmarshalJSON parses and validates a filter.
func (f *Filter) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := Parse(raw)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// FieldPaths returns every sibling path referenced anywhere in the tree,
// sorted and without duplicates.
func (f Filter) FieldPaths() []string {
	seen := make(map[string]struct{})
	f.collectPaths(seen)
	out := make([]string, 0, len(seen))
	for path := range seen {
		out = append(out, path)
	}
	sort.Strings(out)
	return out
}

func (f Filter) collectPaths(seen map[string]struct{}) {
	for path := range f.Fields {
		seen[path] = struct{}{}
	}
	for _, group := range [][]Filter{f.And, f.Or, f.Nor} {
		for _, nested := range group {
			nested.collectPaths(seen)
		}
	}
}

// Verify checks a filter built in code for conditions that cannot be
// written out: operator conditions with no operator and unknown null
// operator keys. Issues are recorded at path.
func Verify(c *validation.Collector, path validation.Path, f Filter) bool {
	start := c.Len()
	f.verify(c, path)
	return c.Len() == start
}

func (f Filter) verify(c *validation.Collector, path validation.Path) {
	for _, key := range sortedFields(f.Fields) {
		ops := f.Fields[key].Operators
		if ops == nil {
			continue
		}
		next := path.Key(key)
		if ops.Empty() {
			c.Add(next, validation.KindStructural, "operator condition must set at least one operator")
		}
		for _, op := range ops.Null {
			if !knownOperator(op) {
				c.Addf(next.Key(op), validation.KindFieldFormat, "unknown filter operator %q", op)
			}
		}
	}
	for _, group := range []struct {
		op      string
		filters []Filter
	}{{OpAnd, f.And}, {OpOr, f.Or}, {OpNor, f.Nor}} {
		for idx, nested := range group.filters {
			nested.verify(c, path.Key(group.op).Index(idx))
		}
	}
}

func sortedFields(fields map[string]Condition) []string {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func filterValues(filters []Filter) []any {
	out := make([]any, len(filters))
	for idx, nested := range filters {
		out[idx] = nested.Value()
	}
	return out
}

func (c Condition) value() any {
	if c.Operators == nil {
		return c.Value
	}
	return c.Operators.value()
}

func (o Operators) value() map[string]any {
	out := make(map[string]any)
	set := func(key string, value any) {
		if value != nil {
			out[key] = value
		}
	}
	set(OpEq, o.Eq)
	set(OpNe, o.Ne)
	set(OpGt, o.Gt)
	set(OpGte, o.Gte)
	set(OpLt, o.Lt)
	set(OpLte, o.Lte)
	if o.In != nil {
		out[OpIn] = append([]any{}, o.In...)
	}
	if o.Nin != nil {
		out[OpNin] = append([]any{}, o.Nin...)
	}
	if o.Exists != nil {
		out[OpExists] = *o.Exists
	}
	if o.Mod != nil {
		out[OpMod] = []any{o.Mod[0], o.Mod[1]}
	}
	if o.Regex != nil {
		if o.Regex.Compiled != nil {
			out[OpRegex] = o.Regex.Compiled
		} else {
			out[OpRegex] = o.Regex.Pattern
		}
	}
	if o.Options != nil {
		out[OpOptions] = *o.Options
	}
	if o.Size != nil {
		out[OpSize] = *o.Size
	}
	for _, key := range o.Null {
		if _, set := out[key]; !set {
			out[key] = nil
		}
	}
	return out
}

func jsonSafe(v any) any {
	switch typed := v.(type) {
	case *regexp.Regexp:
		return typed.String()
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, value := range typed {
			out[key] = jsonSafe(value)
		}
		return out
	case []any:
		out := make([]any, len(typed))
		for idx, value := range typed {
			out[idx] = jsonSafe(value)
		}
		return out
	default:
		return v
	}
}
