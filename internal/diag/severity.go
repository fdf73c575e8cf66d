package diag

import "github.com/rs/zerolog"

// Severity orders diagnostics from trace output to pass failures.
type Severity uint8

const (
	// SevInfo traces stage transitions and accepted candidates.
	SevInfo Severity = iota
	// SevWarning marks a candidate dropped from the pass.
	SevWarning
	// SevError marks a candidate whose unit could not be produced, or a pass
	// that could not run. Any error fails generate and check.
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}

// Level is the log level a diagnostic of this severity is mirrored at. Info
// maps to debug so a normal run only logs warnings and errors.
func (s Severity) Level() zerolog.Level {
	switch s {
	case SevError:
		return zerolog.ErrorLevel
	case SevWarning:
		return zerolog.WarnLevel
	}
	return zerolog.DebugLevel
}
