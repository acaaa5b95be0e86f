package cellar

import "strings"

// Warning describes a non-fatal issue encountered while converting.
// The operation succeeded but the result may be imperfect, such as a
// trailing CSV cell dropped for lack of a row terminator.
type Warning struct {
	// Op names the stage that produced the warning, e.g. "decode".
	Op string
	// Message is a human-readable description of the issue.
	Message string
}

// String returns the warning as "op: message".
func (w Warning) String() string {
	if w.Op == "" {
		return w.Message
	}
	return w.Op + ": " + w.Message
}

// FormatWarnings renders a warning list as a single semicolon-separated
// string, suitable for logging.
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	parts := make([]string, len(warnings))
	for i, w := range warnings {
		parts[i] = w.String()
	}
	return strings.Join(parts, "; ")
}
