package property

import (
	"sync"

	"github.com/goliatone/go-propschema/pkg/uischema"
	"github.com/goliatone/go-propschema/pkg/validation"
	"github.com/goliatone/go-propschema/pkg/widgets"
)

// DefaultMaxDepth bounds property nesting when WithMaxDepth is not given.
const DefaultMaxDepth = 64

// UIValidator checks the `ui` and `discriminator_ui` configurations of a
// property. *widgets.Registry satisfies it.
type UIValidator interface {
	ValidateUI(c *validation.Collector, path validation.Path, kind uischema.Kind, v any) (uischema.Config, bool)
}

// Option customises a Validator.
type Option func(*Validator)

// WithMaxDepth limits how deeply properties (and the filters inside them) may
// nest. Values below one are ignored.
func WithMaxDepth(depth int) Option {
	return func(v *Validator) {
		if depth > 0 {
			v.maxDepth = depth
		}
	}
}

// WithWidgets validates ui configs and resolves components with reg.
func WithWidgets(reg *widgets.Registry) Option {
	return func(v *Validator) {
		if reg != nil {
			v.widgets = reg
		}
	}
}

// WithUIValidator replaces the ui config checker without changing the
// registry used for component resolution.
func WithUIValidator(ui UIValidator) Option {
	return func(v *Validator) {
		if ui != nil {
			v.ui = ui
		}
	}
}

// WithStrictKeys reports keys a variant does not define instead of dropping
// them.
func WithStrictKeys() Option {
	return func(v *Validator) {
		v.strictKeys = true
	}
}

// WithRangeChecks rejects min_length/minimum/min_items values greater than
// their max counterparts.
func WithRangeChecks() Option {
	return func(v *Validator) {
		v.rangeChecks = true
	}
}

// Validator parses and validates property trees. It holds no per-call state
// and is safe for concurrent use.
type Validator struct {
	maxDepth    int
	widgets     *widgets.Registry
	ui          UIValidator
	strictKeys  bool
	rangeChecks bool
}

// NewValidator constructs a Validator. Without WithWidgets it uses a registry
// seeded with the bundled widget catalog.
func NewValidator(opts ...Option) *Validator {
	v := &Validator{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		if opt != nil {
			opt(v)
		}
	}
	if v.widgets == nil {
		v.widgets = widgets.NewRegistry()
	}
	if v.ui == nil {
		v.ui = v.widgets
	}
	return v
}

// MaxDepth returns the configured nesting limit.
func (v *Validator) MaxDepth() int {
	return v.maxDepth
}

// Widgets returns the registry used for component resolution.
func (v *Validator) Widgets() *widgets.Registry {
	return v.widgets
}

var (
	defaultOnce      sync.Once
	defaultValidator *Validator
)

func shared() *Validator {
	defaultOnce.Do(func() {
		defaultValidator = NewValidator()
	})
	return defaultValidator
}
