package diag

import (
	"sort"
)

// Bag is an append-only list of diagnostics for one pass.
type Bag struct {
	items []Diagnostic
}

func NewBag() *Bag {
	return &Bag{}
}

// Add appends d.
func (b *Bag) Add(d Diagnostic) {
	b.items = append(b.items, d)
}

// Merge appends every diagnostic of other, keeping its order.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	b.items = append(b.items, other.items...)
}

// Replay reports every diagnostic of b to r in order.
func (b *Bag) Replay(r Reporter) {
	for _, d := range b.items {
		r.Report(d.Code, d.Severity, d.Location, d.Message)
	}
}

func (b *Bag) Len() int {
	return len(b.items)
}

// Items returns the diagnostics in insertion order. Do not modify the
// returned slice.
func (b *Bag) Items() []Diagnostic {
	return b.items
}

// HasErrors reports whether at least one diagnostic is an error.
func (b *Bag) HasErrors() bool {
	return b.Count(SevError) > 0
}

// Count returns the number of diagnostics with exactly severity sev.
func (b *Bag) Count(sev Severity) int {
	n := 0
	for i := range b.items {
		if b.items[i].Severity == sev {
			n++
		}
	}
	return n
}

// WithCode returns the diagnostics carrying code, in insertion order.
func (b *Bag) WithCode(code Code) []Diagnostic {
	var out []Diagnostic
	for _, d := range b.items {
		if d.Code == code {
			out = append(out, d)
		}
	}
	return out
}

// Filter returns a new bag with the diagnostics at or above min.
func (b *Bag) Filter(min Severity) *Bag {
	out := NewBag()
	for _, d := range b.items {
		if d.Severity >= min {
			out.Add(d)
		}
	}
	return out
}

// Sort orders diagnostics by file, line, column, then code. Pass-level
// diagnostics (no location) come first. The sort is stable.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		li, lj := b.items[i].Location, b.items[j].Location
		if li.File != lj.File {
			return li.File < lj.File
		}
		if li.Line != lj.Line {
			return li.Line < lj.Line
		}
		if li.Column != lj.Column {
			return li.Column < lj.Column
		}
		return b.items[i].Code < b.items[j].Code
	})
}
