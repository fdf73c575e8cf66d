package diag

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// Reporter receives diagnostics from pipeline stages.
type Reporter interface {
	Report(code Code, sev Severity, loc Location, msg string)
}

// Infof reports an informational diagnostic with a formatted message.
func Infof(r Reporter, code Code, loc Location, format string, args ...any) {
	r.Report(code, SevInfo, loc, fmt.Sprintf(format, args...))
}

// Warnf reports a warning with a formatted message.
func Warnf(r Reporter, code Code, loc Location, format string, args ...any) {
	r.Report(code, SevWarning, loc, fmt.Sprintf(format, args...))
}

// Errorf reports an error with a formatted message.
func Errorf(r Reporter, code Code, loc Location, format string, args ...any) {
	r.Report(code, SevError, loc, fmt.Sprintf(format, args...))
}

// BagReporter writes into a *Bag. It is safe for concurrent use.
type BagReporter struct {
	mu  sync.Mutex
	Bag *Bag
}

func (r *BagReporter) Report(code Code, sev Severity, loc Location, msg string) {
	if r.Bag == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Bag.Add(Diagnostic{Code: code, Severity: sev, Location: loc, Message: msg})
}

// NopReporter drops everything.
type NopReporter struct{}

func (NopReporter) Report(Code, Severity, Location, string) {}

// MultiReporter fans a diagnostic out to every reporter in order.
type MultiReporter []Reporter

func (m MultiReporter) Report(code Code, sev Severity, loc Location, msg string) {
	for _, r := range m {
		if r != nil {
			r.Report(code, sev, loc, msg)
		}
	}
}

// LogReporter mirrors diagnostics to a zerolog logger at Severity.Level.
type LogReporter struct {
	Logger zerolog.Logger
}

func (r LogReporter) Report(code Code, sev Severity, loc Location, msg string) {
	ev := r.Logger.WithLevel(sev.Level())
	if !loc.IsZero() {
		ev = ev.Str("location", loc.String())
	}
	ev.Str("code", code.String()).
		Str("condition", code.Slug()).
		Msg(msg)
}
