package filter

import (
	"errors"
	"regexp"
	"strings"

	"github.com/goliatone/go-propschema/pkg/jsonvalue"
	"github.com/goliatone/go-propschema/pkg/validation"
)

// Root combinators.
const (
	OpAnd = "$and"
	OpOr  = "$or"
	OpNor = "$nor"
)

// Field operators.
const (
	OpEq      = "$eq"
	OpNe      = "$ne"
	OpGt      = "$gt"
	OpGte     = "$gte"
	OpLt      = "$lt"
	OpLte     = "$lte"
	OpIn      = "$in"
	OpNin     = "$nin"
	OpExists  = "$exists"
	OpMod     = "$mod"
	OpRegex   = "$regex"
	OpOptions = "$options"
	OpSize    = "$size"
)

// DefaultMaxDepth bounds filter nesting when no explicit limit is given.
const DefaultMaxDepth = 64

// MaxDepthMessage is reported when an input nests beyond the depth limit.
const MaxDepthMessage = "maximum nesting depth exceeded"

// Parse validates v as a filter expression using DefaultMaxDepth.
func Parse(v any) (Filter, error) {
	var c validation.Collector
	f, ok := Check(&c, nil, v, DefaultMaxDepth)
	if !ok {
		if err := c.Err(); err != nil {
			return Filter{}, err
		}
		return Filter{}, errors.New("filter: invalid filter")
	}
	return f, nil
}

// Check validates v as a filter expression, recording issues at path. Nested
// filters deeper than maxDepth are rejected. It reports false when any issue
// was recorded.
func Check(c *validation.Collector, path validation.Path, v any, maxDepth int) (Filter, bool) {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	p := parser{c: c, maxDepth: maxDepth}
	start := c.Len()
	f := p.filter(path, v, 0)
	return f, c.Len() == start
}

type parser struct {
	c        *validation.Collector
	maxDepth int
}

func (p parser) filter(path validation.Path, v any, depth int) Filter {
	if depth > p.maxDepth {
		p.c.Add(path, validation.KindStructural, MaxDepthMessage)
		return Filter{}
	}
	obj, ok := jsonvalue.AsObject(v)
	if !ok {
		p.c.Add(path, validation.KindStructural, "filter must be an object")
		return Filter{}
	}

	keys := jsonvalue.Keys(obj)
	if hasOperatorKey(keys) {
		return p.root(path, obj, keys, depth)
	}

	var f Filter
	for _, key := range keys {
		if strings.TrimSpace(key) == "" {
			p.c.Add(path.Key(key), validation.KindFieldFormat, "condition field path cannot be empty")
			continue
		}
		cond, ok := p.condition(path.Key(key), obj[key])
		if !ok {
			continue
		}
		if f.Fields == nil {
			f.Fields = make(map[string]Condition, len(keys))
		}
		f.Fields[key] = cond
	}
	return f
}

func (p parser) root(path validation.Path, obj map[string]any, keys []string, depth int) Filter {
	var f Filter
	for _, key := range keys {
		next := path.Key(key)
		switch key {
		case OpAnd:
			f.And = p.group(next, key, obj[key], depth)
		case OpOr:
			f.Or = p.group(next, key, obj[key], depth)
		case OpNor:
			f.Nor = p.group(next, key, obj[key], depth)
		default:
			if strings.HasPrefix(key, "$") {
				p.c.Addf(next, validation.KindStructural, "unknown root operator %q", key)
			} else {
				p.c.Addf(next, validation.KindStructural, "field condition %q cannot be combined with root operators", key)
			}
		}
	}
	return f
}

func (p parser) group(path validation.Path, op string, v any, depth int) []Filter {
	if v == nil {
		return nil
	}
	items, ok := jsonvalue.AsArray(v)
	if !ok {
		p.c.Addf(path, validation.KindStructural, "%s must be an array", op)
		return nil
	}
	out := make([]Filter, 0, len(items))
	for idx, item := range items {
		out = append(out, p.filter(path.Index(idx), item, depth+1))
	}
	return out
}

func (p parser) condition(path validation.Path, v any) (Condition, bool) {
	obj, isObject := jsonvalue.AsObject(v)
	if !isObject || len(obj) == 0 || !hasOperatorKey(jsonvalue.Keys(obj)) {
		value, err := jsonvalue.Normalize(v)
		if err != nil {
			p.c.Add(path, validation.KindFieldFormat, "condition must be a JSON value or an operator object")
			return Condition{}, false
		}
		return Condition{Value: value}, true
	}

	start := p.c.Len()
	ops := &Operators{}
	for _, key := range jsonvalue.Keys(obj) {
		p.operator(path.Key(key), key, obj[key], ops)
	}
	if p.c.Len() > start {
		return Condition{}, false
	}
	return Condition{Operators: ops}, true
}

func (p parser) operator(path validation.Path, key string, raw any, ops *Operators) {
	if !strings.HasPrefix(key, "$") {
		p.c.Addf(path, validation.KindFieldFormat, "literal key %q cannot be mixed with filter operators", key)
		return
	}
	if raw == nil {
		if !knownOperator(key) {
			p.c.Addf(path, validation.KindFieldFormat, "unknown filter operator %q", key)
			return
		}
		ops.Null = append(ops.Null, key)
		return
	}

	switch key {
	case OpEq, OpNe, OpGt, OpGte, OpLt, OpLte:
		value, err := jsonvalue.Normalize(raw)
		if err != nil {
			p.c.Addf(path, validation.KindFieldFormat, "%s must be a JSON value", key)
			return
		}
		switch key {
		case OpEq:
			ops.Eq = value
		case OpNe:
			ops.Ne = value
		case OpGt:
			ops.Gt = value
		case OpGte:
			ops.Gte = value
		case OpLt:
			ops.Lt = value
		case OpLte:
			ops.Lte = value
		}
	case OpIn, OpNin:
		norm, err := jsonvalue.Normalize(raw)
		values, ok := norm.([]any)
		if err != nil || !ok {
			p.c.Addf(path, validation.KindFieldFormat, "%s must be an array of JSON values", key)
			return
		}
		if key == OpIn {
			ops.In = values
		} else {
			ops.Nin = values
		}
	case OpExists:
		value, ok := raw.(bool)
		if !ok {
			p.c.Add(path, validation.KindFieldFormat, "$exists must be a boolean")
			return
		}
		ops.Exists = &value
	case OpMod:
		pair, ok := modPair(raw)
		if !ok {
			p.c.Add(path, validation.KindFieldFormat, "$mod must be a [divisor, remainder] pair of numbers")
			return
		}
		ops.Mod = &pair
	case OpRegex:
		switch typed := raw.(type) {
		case string:
			ops.Regex = &Regex{Pattern: typed}
		case *regexp.Regexp:
			ops.Regex = &Regex{Compiled: typed}
		default:
			p.c.Add(path, validation.KindFieldFormat, "$regex must be a string or a regular expression")
		}
	case OpOptions:
		value, ok := raw.(string)
		if !ok {
			p.c.Add(path, validation.KindFieldFormat, "$options must be a string")
			return
		}
		ops.Options = &value
	case OpSize:
		value, ok := jsonvalue.Number(raw)
		if !ok {
			p.c.Add(path, validation.KindFieldFormat, "$size must be a number")
			return
		}
		ops.Size = &value
	default:
		p.c.Addf(path, validation.KindFieldFormat, "unknown filter operator %q", key)
	}
}

func modPair(raw any) ([2]float64, bool) {
	items, ok := jsonvalue.AsArray(raw)
	if !ok || len(items) != 2 {
		return [2]float64{}, false
	}
	divisor, ok := jsonvalue.Number(items[0])
	if !ok {
		return [2]float64{}, false
	}
	remainder, ok := jsonvalue.Number(items[1])
	if !ok {
		return [2]float64{}, false
	}
	return [2]float64{divisor, remainder}, true
}

func hasOperatorKey(keys []string) bool {
	for _, key := range keys {
		if strings.HasPrefix(key, "$") {
			return true
		}
	}
	return false
}

func knownOperator(key string) bool {
	switch key {
	case OpEq, OpNe, OpGt, OpGte, OpLt, OpLte, OpIn, OpNin, OpExists, OpMod, OpRegex, OpOptions, OpSize:
		return true
	default:
		return false
	}
}
