package validation

import (
	"strconv"
	"strings"
)

// Kind classifies a validation issue.
type Kind string

const (
	// KindFieldFormat marks a value that fails a local constraint: wrong JSON
	// type, empty string, forbidden characters, bad operator operand.
	KindFieldFormat Kind = "field_format"
	// KindStructural marks a wrong or missing type tag, a missing required
	// field, or an input nested beyond the configured depth.
	KindStructural Kind = "structural"
	// KindCrossField marks a rule spanning several fields or siblings:
	// duplicate names, constant vs properties, discriminator presence and
	// uniqueness.
	KindCrossField Kind = "cross_field"
)

// Issue represents a validation error anchored at the offending node.
type Issue struct {
	Path    string `json:"path,omitempty"`
	Field   string `json:"field,omitempty"`
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	// Entries lists sibling indices involved in a cross-entry rule, such as
	// the any_of entries missing a discriminator value.
	Entries []int `json:"entries,omitempty"`
}

func (i Issue) String() string {
	if i.Field == "" {
		return i.Message
	}
	return i.Field + ": " + i.Message
}

// Errors is the aggregated failure returned by validators. Issues keep the
// order in which they were found.
type Errors []Issue

func (e Errors) Error() string {
	switch len(e) {
	case 0:
		return "validation: no issues"
	case 1:
		return "validation: " + e[0].String()
	default:
		parts := make([]string, 0, len(e))
		for _, issue := range e {
			parts = append(parts, issue.String())
		}
		return "validation: " + strconv.Itoa(len(e)) + " issues: " + strings.Join(parts, "; ")
	}
}

// Messages returns every issue message in order.
func (e Errors) Messages() []string {
	if len(e) == 0 {
		return nil
	}
	out := make([]string, 0, len(e))
	for _, issue := range e {
		out = append(out, issue.Message)
	}
	return out
}

// Has reports whether any issue carries the exact message.
func (e Errors) Has(message string) bool {
	for _, issue := range e {
		if issue.Message == message {
			return true
		}
	}
	return false
}

// At returns the issues anchored at the dotted field path.
func (e Errors) At(field string) []Issue {
	var out []Issue
	for _, issue := range e {
		if issue.Field == field {
			out = append(out, issue)
		}
	}
	return out
}
