package diagfmt

import (
	"io"

	"github.com/goccy/go-json"

	"github.com/okra-platform/adaptergen/internal/diag"
)

// LocationJSON is a diagnostic position in JSON output.
type LocationJSON struct {
	File   string `json:"file"`
	Line   int    `json:"line,omitempty"`
	Column int    `json:"column,omitempty"`
}

// DiagnosticJSON is one diagnostic in JSON output.
type DiagnosticJSON struct {
	Severity  string        `json:"severity"`
	Code      string        `json:"code"`
	Condition string        `json:"condition"`
	Message   string        `json:"message"`
	Location  *LocationJSON `json:"location,omitempty"`
}

// DiagnosticsOutput is the root of JSON output.
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
	Errors      int              `json:"errors"`
	Warnings    int              `json:"warnings"`
}

// BuildDiagnosticsOutput converts bag into its JSON shape. Count is the
// number of diagnostics before opts.Max truncation.
func BuildDiagnosticsOutput(bag *diag.Bag, opts JSONOpts) DiagnosticsOutput {
	out := DiagnosticsOutput{Diagnostics: []DiagnosticJSON{}}
	for _, d := range bag.Items() {
		if d.Severity < opts.MinSeverity {
			continue
		}
		out.Count++
		switch d.Severity {
		case diag.SevError:
			out.Errors++
		case diag.SevWarning:
			out.Warnings++
		}
		if opts.Max > 0 && len(out.Diagnostics) >= opts.Max {
			continue
		}

		dj := DiagnosticJSON{
			Severity:  d.Severity.String(),
			Code:      d.Code.String(),
			Condition: d.Code.Slug(),
			Message:   d.Message,
		}
		if !d.Location.IsZero() {
			dj.Location = &LocationJSON{
				File:   formatPath(d.Location.File, opts.PathMode, opts.BaseDir),
				Line:   d.Location.Line,
				Column: d.Location.Column,
			}
		}
		out.Diagnostics = append(out.Diagnostics, dj)
	}
	return out
}

// JSON writes bag as an indented DiagnosticsOutput document.
func JSON(w io.Writer, bag *diag.Bag, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildDiagnosticsOutput(bag, opts))
}
