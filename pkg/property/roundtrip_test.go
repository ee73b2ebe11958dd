package property

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/goliatone/go-propschema/pkg/filter"
	"github.com/goliatone/go-propschema/pkg/i18n"
	"github.com/goliatone/go-propschema/pkg/uischema"
	"github.com/goliatone/go-propschema/pkg/validation"
)

// treeBuilder produces valid trees from a seed so failures can be replayed.
type treeBuilder struct {
	r *rand.Rand
	n int
}

func newTreeBuilder(seed int64) *treeBuilder {
	return &treeBuilder{r: rand.New(rand.NewSource(seed))}
}

func (b *treeBuilder) coin() bool { return b.r.Intn(2) == 0 }

func (b *treeBuilder) num(v float64) *float64 { return &v }

func (b *treeBuilder) name() string {
	b.n++
	return fmt.Sprintf("field_%d", b.n)
}

func (b *treeBuilder) base() Base {
	base := Base{Name: b.name()}
	switch b.r.Intn(3) {
	case 0:
		base.DisplayName = i18n.Plain("Label")
	case 1:
		base.DisplayName = i18n.Localized(map[string]string{"en": "Label", "fr": "Libellé"})
	}
	if b.coin() {
		required := b.coin()
		base.Required = &required
	}
	switch b.r.Intn(4) {
	case 0:
		show := b.filter(2)
		base.Display = &Display{Show: &show}
	case 1:
		hide, show := b.filter(2), b.filter(0)
		base.Display = &Display{Hide: &hide, Show: &show}
	}
	if b.coin() {
		base.AI = &AI{LLMDescription: i18n.Plain("What this field configures")}
	}
	if b.coin() {
		base.UI = b.ui()
	}
	return base
}

var icons = []string{
	"lucide-key",
	"a & b",
	`<svg viewBox="0 0 24 24" fill="none"><path d="M3 3h18v18H3z"/></svg>`,
}

func (b *treeBuilder) ui() uischema.Config {
	cfg := uischema.Config{}
	if b.coin() {
		cfg["width"] = "full"
	}
	if b.coin() {
		cfg["hidden"] = b.coin()
	}
	if b.coin() {
		cfg["class_name"] = "wide"
	}
	if b.coin() {
		cfg["icon"] = icons[b.r.Intn(len(icons))]
	}
	return cfg
}

// filter builds a filter using every operator form, nesting root
// combinators up to depth.
func (b *treeBuilder) filter(depth int) filter.Filter {
	if depth > 0 && b.coin() {
		var f filter.Filter
		groups := []*[]filter.Filter{&f.And, &f.Or, &f.Nor}
		for _, group := range groups {
			if !b.coin() {
				continue
			}
			*group = []filter.Filter{}
			for i := b.r.Intn(3); i > 0; i-- {
				*group = append(*group, b.filter(depth-1))
			}
		}
		if f.IsRoot() {
			return f
		}
	}
	fields := make(map[string]filter.Condition)
	for i := 1 + b.r.Intn(3); i > 0; i-- {
		fields[fmt.Sprintf("field_%d", b.r.Intn(5))] = b.condition()
	}
	return filter.Filter{Fields: fields}
}

func (b *treeBuilder) condition() filter.Condition {
	literals := []any{nil, "advanced", float64(3), true, []any{"a"}, map[string]any{}, map[string]any{"k": "v"}}
	if b.r.Intn(3) == 0 {
		return filter.Equals(literals[b.r.Intn(len(literals))])
	}

	ops := &filter.Operators{}
	setters := []struct {
		key string
		set func()
	}{
		{filter.OpEq, func() { ops.Eq = literals[1+b.r.Intn(len(literals)-1)] }},
		{filter.OpExists, func() { value := b.coin(); ops.Exists = &value }},
		{filter.OpGt, func() { ops.Gt = float64(1) }},
		{filter.OpGte, func() { ops.Gte = "b" }},
		{filter.OpIn, func() { ops.In = []any{"a", float64(2), nil} }},
		{filter.OpLt, func() { ops.Lt = float64(10) }},
		{filter.OpLte, func() { ops.Lte = float64(-1.5) }},
		{filter.OpMod, func() { ops.Mod = &[2]float64{4, 1} }},
		{filter.OpNe, func() { ops.Ne = false }},
		{filter.OpNin, func() { ops.Nin = []any{} }},
		{filter.OpOptions, func() { value := "i"; ops.Options = &value }},
		{filter.OpRegex, func() { ops.Regex = &filter.Regex{Pattern: "^(?=a)b"} }},
		{filter.OpSize, func() { ops.Size = b.num(2) }},
	}
	for ops.Empty() {
		for _, setter := range setters {
			switch b.r.Intn(4) {
			case 0:
				setter.set()
			case 1:
				ops.Null = append(ops.Null, setter.key)
			}
		}
	}
	return filter.Condition{Operators: ops}
}

func (b *treeBuilder) leaf() Property {
	switch b.r.Intn(5) {
	case 0:
		node := &String{Base: b.base()}
		if b.coin() {
			value := "default"
			node.Default = &value
		}
		if b.coin() {
			node.Enum = []string{"a", "b"}
		}
		if b.coin() {
			node.MinLength, node.MaxLength = b.num(1), b.num(64)
		}
		return node
	case 1:
		node := &Number{Base: b.base(), Integer: b.coin()}
		if b.coin() {
			node.Minimum, node.Maximum = b.num(0), b.num(100)
		}
		if b.coin() {
			node.Enum = []float64{1, 2.5}
		}
		if b.coin() {
			node.Default = b.num(1)
		}
		return node
	case 2:
		node := &Boolean{Base: b.base()}
		if b.coin() {
			value := true
			node.Default = &value
		}
		if b.coin() {
			node.Enum = []bool{}
		}
		return node
	case 3:
		return &EncryptedString{Base: b.base()}
	default:
		return &CredentialID{Base: b.base(), CredentialName: "github"}
	}
}

func (b *treeBuilder) node(depth int) Property {
	if depth <= 0 {
		return b.leaf()
	}
	switch b.r.Intn(4) {
	case 0:
		return b.leaf()
	case 1:
		node := &Array{Base: b.base(), Items: b.node(depth - 1)}
		if b.coin() {
			node.Default = []any{"a", float64(1), nil, map[string]any{"k": []any{true}}}
		}
		if b.coin() {
			node.Enum = [][]any{{"a"}, {}}
		}
		if b.coin() {
			node.MinItems = b.num(0)
		}
		return node
	case 2:
		return b.object(depth)
	default:
		return b.union(depth)
	}
}

func (b *treeBuilder) object(depth int) *Object {
	node := &Object{Base: b.base(), Properties: []Property{}}
	for i := b.r.Intn(4); i > 0; i-- {
		node.Properties = append(node.Properties, b.node(depth-1))
	}
	if len(node.Properties) == 0 && b.coin() {
		node.Constant = map[string]any{"mode": "fixed"}
	}
	if b.coin() {
		node.AdditionalProperties = b.leaf()
	}
	if b.coin() {
		node.Default = map[string]any{}
	}
	if b.coin() {
		node.Enum = []map[string]any{{"a": float64(1)}}
	}
	return node
}

func (b *treeBuilder) union(depth int) *DiscriminatedUnion {
	node := &DiscriminatedUnion{Base: b.base(), Discriminator: "kind"}
	literals := []func(i int) Property{
		func(i int) Property {
			value := fmt.Sprintf("variant_%d", i)
			return &String{Base: Base{Name: "kind"}, Constant: &value}
		},
		func(i int) Property {
			return &Number{Base: Base{Name: "kind"}, Constant: b.num(float64(i))}
		},
	}
	pick := literals[b.r.Intn(len(literals))]
	for i := 0; i < 2+b.r.Intn(2); i++ {
		entry := b.object(depth - 1)
		entry.Constant = nil
		entry.Properties = append([]Property{pick(i)}, entry.Properties...)
		node.AnyOf = append(node.AnyOf, entry)
	}
	if b.coin() {
		node.DiscriminatorUI = uischema.Config{"component": "select"}
		if b.coin() {
			node.DiscriminatorUI["icon"] = icons[b.r.Intn(len(icons))]
		}
	}
	return node
}

func TestRoundTrip_BuiltTreesAreAcceptedUnchanged(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("Parse(Encode(tree)) equals tree", prop.ForAll(
		func(seed int64, depth int) bool {
			tree := newTreeBuilder(seed).node(depth)
			parsed, err := Parse(Encode(tree))
			if err != nil {
				t.Logf("seed %d depth %d: %v", seed, depth, err)
				return false
			}
			if diff := cmp.Diff(tree, parsed); diff != "" {
				t.Logf("seed %d depth %d: mismatch (-built +parsed):\n%s", seed, depth, diff)
				return false
			}
			return true
		},
		gen.Int64(),
		gen.IntRange(0, 3),
	))

	properties.Property("Encode(Parse(raw)) equals raw", prop.ForAll(
		func(seed int64, depth int) bool {
			raw := Encode(newTreeBuilder(seed).node(depth))
			parsed, err := Parse(raw)
			if err != nil {
				return false
			}
			return cmp.Equal(raw, Encode(parsed))
		},
		gen.Int64(),
		gen.IntRange(0, 3),
	))

	properties.Property("JSON round trip preserves the tree", prop.ForAll(
		func(seed int64) bool {
			tree := newTreeBuilder(seed).node(2)
			data, err := Marshal(tree)
			if err != nil {
				return false
			}
			parsed, err := ParseJSON(data)
			if err != nil {
				t.Logf("seed %d: %v", seed, err)
				return false
			}
			return cmp.Equal(tree, parsed)
		},
		gen.Int64(),
	))

	properties.TestingRun(t)
}

func TestRoundTrip_DuplicateNamesAlwaysFail(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("two siblings with one name are rejected", prop.ForAll(
		func(seed int64, first, second int) bool {
			b := newTreeBuilder(seed)
			obj := b.object(1)
			a, c := b.leaf(), b.leaf()
			a.Common().Name, c.Common().Name = "dup", "dup"
			obj.Constant = nil
			props := append([]Property{}, obj.Properties...)
			first %= len(props) + 1
			props = append(props[:first], append([]Property{a}, props[first:]...)...)
			second = first + 1 + second%(len(props)-first)
			props = append(props[:second], append([]Property{c}, props[second:]...)...)
			obj.Properties = props

			_, err := Parse(Encode(obj))
			var issues validation.Errors
			if !errors.As(err, &issues) {
				return false
			}
			return issues.Has(validation.DuplicateNameMessage)
		},
		gen.Int64(),
		gen.IntRange(0, 10),
		gen.IntRange(0, 10),
	))

	properties.TestingRun(t)
}
