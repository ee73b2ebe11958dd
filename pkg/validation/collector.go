package validation

import "fmt"

// Collector accumulates issues during a single validation pass. The zero
// value is ready to use. A Collector is not safe for concurrent use.
type Collector struct {
	issues Errors
}

// Add records an issue at path.
func (c *Collector) Add(path Path, kind Kind, message string) {
	c.issues = append(c.issues, Issue{
		Path:    path.Pointer(),
		Field:   path.Field(),
		Kind:    kind,
		Message: message,
	})
}

// Addf records an issue with a formatted message.
func (c *Collector) Addf(path Path, kind Kind, format string, args ...any) {
	c.Add(path, kind, fmt.Sprintf(format, args...))
}

// AddEntries records an issue that names the sibling entries involved.
func (c *Collector) AddEntries(path Path, kind Kind, message string, entries []int) {
	c.issues = append(c.issues, Issue{
		Path:    path.Pointer(),
		Field:   path.Field(),
		Kind:    kind,
		Message: message,
		Entries: append([]int(nil), entries...),
	})
}

// Len reports how many issues were recorded so far. Callers snapshot it to
// learn whether a sub-check added anything.
func (c *Collector) Len() int {
	return len(c.issues)
}

// Issues returns a copy of the recorded issues.
func (c *Collector) Issues() Errors {
	if len(c.issues) == 0 {
		return nil
	}
	return append(Errors(nil), c.issues...)
}

// Err returns the recorded issues as an error, or nil when there are none.
func (c *Collector) Err() error {
	if len(c.issues) == 0 {
		return nil
	}
	return c.Issues()
}
