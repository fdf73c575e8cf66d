package diag

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCode_StringAndSlug(t *testing.T) {
	tests := []struct {
		code Code
		str  string
		slug string
	}{
		{PassStarted, "AG001", "pass-started"},
		{CandidateFound, "AG002", "candidate-found"},
		{SemanticResolutionFailed, "AG003", "semantic-resolution-failed"},
		{InheritanceCheckFailed, "AG004", "inheritance-check-failed"},
		{MarkerNotFound, "AG005", "marker-not-found"},
		{AttributeCompared, "AG006", "attribute-compared"},
		{GenerationSucceeded, "AG007", "generation-succeeded"},
		{UnsupportedTypeFatal, "AG008", "unsupported-type-fatal"},
		{MarkerTypeUnresolved, "AG009", "marker-type-unresolved"},
		{Code(999), "AG999", "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.str, func(t *testing.T) {
			assert.Equal(t, tt.str, tt.code.String())
			assert.Equal(t, tt.slug, tt.code.Slug())
		})
	}
}

func TestCodes_AllHaveDistinctSlugs(t *testing.T) {
	seen := make(map[string]Code)
	for _, c := range Codes() {
		slug := c.Slug()
		require.NotEqual(t, "unknown", slug, "code %s has no slug", c)
		if prev, ok := seen[slug]; ok {
			t.Fatalf("slug %q shared by %s and %s", slug, prev, c)
		}
		seen[slug] = c
	}
	assert.Len(t, seen, int(PassFinished))
}

func TestBag_CountsAndSort(t *testing.T) {
	bag := NewBag()
	r := &BagReporter{Bag: bag}

	Warnf(r, InheritanceCheckFailed, Location{File: "b.go", Line: 3}, "%s rejected", "B")
	Infof(r, PassStarted, Location{}, "pass started")
	Errorf(r, UnsupportedTypeFatal, Location{File: "a.go", Line: 10}, "no converter")
	Infof(r, CandidateFound, Location{File: "a.go", Line: 2}, "found A")

	assert.Equal(t, 4, bag.Len())
	assert.True(t, bag.HasErrors())
	assert.Equal(t, 2, bag.Count(SevInfo))
	assert.Equal(t, 1, bag.Count(SevWarning))
	assert.Len(t, bag.WithCode(UnsupportedTypeFatal), 1)
	assert.Equal(t, 2, bag.Filter(SevWarning).Len())

	bag.Sort()
	codes := make([]Code, 0, bag.Len())
	for _, d := range bag.Items() {
		codes = append(codes, d.Code)
	}
	assert.Equal(t, []Code{PassStarted, CandidateFound, UnsupportedTypeFatal, InheritanceCheckFailed}, codes)
}

func TestBag_MergeAndReplay(t *testing.T) {
	first := NewBag()
	first.Add(Diagnostic{Code: PassStarted, Severity: SevInfo, Message: "start"})
	second := NewBag()
	second.Add(Diagnostic{Code: GenerationSucceeded, Severity: SevInfo, Message: "done"})

	first.Merge(second)
	first.Merge(nil)
	require.Equal(t, 2, first.Len())

	out := NewBag()
	first.Replay(MultiReporter{&BagReporter{Bag: out}, NopReporter{}, nil})
	assert.Equal(t, first.Items(), out.Items())
}

func TestDiagnostic_String(t *testing.T) {
	d := Diagnostic{Code: MarkerNotFound, Severity: SevWarning, Message: "OrderID has no marker",
		Location: Location{File: "orders.go", Line: 12, Column: 6}}
	assert.Equal(t, "orders.go:12:6: WARNING AG005: OrderID has no marker", d.String())

	d.Location = Location{}
	assert.Equal(t, "WARNING AG005: OrderID has no marker", d.String())
}

func TestLogReporter(t *testing.T) {
	// Test: warnings are logged with code and location, info is debug only
	var buf bytes.Buffer
	r := LogReporter{Logger: zerolog.New(&buf).Level(zerolog.InfoLevel)}

	r.Report(InheritanceCheckFailed, SevWarning, Location{File: "x.go", Line: 1}, "X rejected")
	r.Report(CandidateFound, SevInfo, Location{}, "hidden")

	out := buf.String()
	assert.Contains(t, out, `"level":"warn"`)
	assert.Contains(t, out, `"code":"AG004"`)
	assert.Contains(t, out, `"condition":"inheritance-check-failed"`)
	assert.Contains(t, out, `"location":"x.go:1"`)
	assert.NotContains(t, out, "hidden")
}

func TestSeverity_Level(t *testing.T) {
	tests := []struct {
		sev   Severity
		name  string
		level zerolog.Level
	}{
		{SevInfo, "INFO", zerolog.DebugLevel},
		{SevWarning, "WARNING", zerolog.WarnLevel},
		{SevError, "ERROR", zerolog.ErrorLevel},
		{Severity(9), "UNKNOWN", zerolog.DebugLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.sev.String())
			assert.Equal(t, tt.level, tt.sev.Level())
		})
	}
}
