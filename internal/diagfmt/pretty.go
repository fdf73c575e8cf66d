package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/okra-platform/adaptergen/internal/diag"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan)
	codeColor    = color.New(color.Faint)
)

// Pretty writes one line per diagnostic of bag at or above opts.MinSeverity:
//
//	<path>:<line>:<col>: <SEV> <CODE>: <message>
//
// Pass-level diagnostics have no location prefix. The bag is printed in its
// current order; call bag.Sort first for file order.
func Pretty(w io.Writer, bag *diag.Bag, opts PrettyOpts) error {
	for _, d := range bag.Items() {
		if d.Severity < opts.MinSeverity {
			continue
		}
		if _, err := io.WriteString(w, prettyLine(d, opts)+"\n"); err != nil {
			return err
		}
	}
	return nil
}

func prettyLine(d diag.Diagnostic, opts PrettyOpts) string {
	var b strings.Builder
	if !d.Location.IsZero() {
		loc := d.Location
		loc.File = formatPath(loc.File, opts.PathMode, opts.BaseDir)
		b.WriteString(loc.String())
		b.WriteString(": ")
	}
	b.WriteString(paint(severityColor(d.Severity), opts.Color, d.Severity.String()))
	b.WriteString(" ")
	b.WriteString(paint(codeColor, opts.Color, d.Code.String()))
	b.WriteString(": ")
	b.WriteString(d.Message)
	if opts.ShowSlug {
		b.WriteString(paint(codeColor, opts.Color, " ["+d.Code.Slug()+"]"))
	}
	return b.String()
}

// Summary writes a one-line count of errors and warnings in bag.
func Summary(w io.Writer, bag *diag.Bag, opts PrettyOpts) error {
	errs, warns := bag.Count(diag.SevError), bag.Count(diag.SevWarning)
	line := fmt.Sprintf("%s, %s", plural(errs, "error"), plural(warns, "warning"))
	switch {
	case errs > 0:
		line = paint(errorColor, opts.Color, line)
	case warns > 0:
		line = paint(warningColor, opts.Color, line)
	}
	_, err := fmt.Fprintln(w, line)
	return err
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return errorColor
	case diag.SevWarning:
		return warningColor
	default:
		return infoColor
	}
}

// paint applies c only when enabled, regardless of the terminal fatih/color
// detected.
func paint(c *color.Color, enabled bool, s string) string {
	if !enabled {
		return s
	}
	cc := *c
	cc.EnableColor()
	return cc.Sprint(s)
}
