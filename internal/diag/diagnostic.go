package diag

import "fmt"

// Location points at the declaration a diagnostic is about. The zero value
// means "no location" (pass-level diagnostics).
type Location struct {
	File   string
	Line   int
	Column int
}

// IsZero reports whether l carries no position.
func (l Location) IsZero() bool {
	return l.File == "" && l.Line == 0
}

func (l Location) String() string {
	switch {
	case l.IsZero():
		return ""
	case l.Column > 0:
		return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
	default:
		return fmt.Sprintf("%s:%d", l.File, l.Line)
	}
}

type Diagnostic struct {
	Code     Code
	Severity Severity
	Message  string
	Location Location
}

func (d Diagnostic) String() string {
	if d.Location.IsZero() {
		return fmt.Sprintf("%s %s: %s", d.Severity, d.Code, d.Message)
	}
	return fmt.Sprintf("%s: %s %s: %s", d.Location, d.Severity, d.Code, d.Message)
}
