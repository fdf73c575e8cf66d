package diag

import "fmt"

// Code identifies the condition a diagnostic reports. Values are stable
// across releases; add new codes at the end.
type Code uint16

const (
	UnknownCode Code = iota
	PassStarted
	CandidateFound
	SemanticResolutionFailed
	InheritanceCheckFailed
	MarkerNotFound
	AttributeCompared
	GenerationSucceeded
	UnsupportedTypeFatal
	MarkerTypeUnresolved
	NoCandidates
	EncapsulatedTypeMissing
	EmissionFailed
	PassFinished
)

var codeSlugs = map[Code]string{
	UnknownCode:              "unknown",
	PassStarted:              "pass-started",
	CandidateFound:           "candidate-found",
	SemanticResolutionFailed: "semantic-resolution-failed",
	InheritanceCheckFailed:   "inheritance-check-failed",
	MarkerNotFound:           "marker-not-found",
	AttributeCompared:        "attribute-compared",
	GenerationSucceeded:      "generation-succeeded",
	UnsupportedTypeFatal:     "unsupported-type-fatal",
	MarkerTypeUnresolved:     "marker-type-unresolved",
	NoCandidates:             "no-candidates",
	EncapsulatedTypeMissing:  "encapsulated-type-missing",
	EmissionFailed:           "emission-failed",
	PassFinished:             "pass-finished",
}

// String returns the compact form, e.g. "AG004".
func (c Code) String() string {
	return fmt.Sprintf("AG%03d", uint16(c))
}

// Slug returns the kebab-case name of the condition, e.g.
// "inheritance-check-failed".
func (c Code) Slug() string {
	if s, ok := codeSlugs[c]; ok {
		return s
	}
	return codeSlugs[UnknownCode]
}

// Codes returns every known code in ascending order.
func Codes() []Code {
	out := make([]Code, 0, len(codeSlugs))
	for c := UnknownCode + 1; int(c) < len(codeSlugs); c++ {
		out = append(out, c)
	}
	return out
}
