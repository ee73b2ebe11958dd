package validation

import (
	"errors"
	"strings"
)

// Result captures validation outcomes in a serialisable form for previews
// and lint reports.
type Result struct {
	Valid  bool    `json:"valid"`
	Issues []Issue `json:"issues,omitempty"`
}

// ResultFromError converts any error returned by a validator into a Result.
// Errors values keep their issues; other errors become a single issue whose
// location is recovered from a trailing " at <pointer>" suffix when present.
func ResultFromError(err error) Result {
	if err == nil {
		return Result{Valid: true}
	}
	var issues Errors
	if errors.As(err, &issues) && len(issues) > 0 {
		return Result{Valid: false, Issues: append([]Issue(nil), issues...)}
	}
	return Result{Valid: false, Issues: []Issue{issueFromError(err)}}
}

func issueFromError(err error) Issue {
	msg := strings.TrimSpace(err.Error())
	path := extractJSONPointer(msg)
	if path != "" {
		msg = strings.Replace(msg, " at "+path, "", 1)
	}
	return Issue{
		Path:    path,
		Field:   FieldFromPointer(path),
		Kind:    KindStructural,
		Message: strings.TrimSpace(msg),
	}
}

func extractJSONPointer(message string) string {
	if message == "" {
		return ""
	}
	idx := strings.LastIndex(message, " at ")
	if idx < 0 {
		return ""
	}
	candidate := strings.TrimSpace(message[idx+4:])
	candidate = strings.TrimRight(candidate, ".)];,")
	if !strings.HasPrefix(candidate, "/") {
		return ""
	}
	return candidate
}
