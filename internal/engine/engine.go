// Package engine runs the adapter generation pass: scan declarations for the
// marker, validate that candidates are strong types, extract their
// configuration, resolve the encapsulated type, synthesize the unit and hand
// it to a sink.
package engine

import (
	"context"
	"runtime"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/okra-platform/adaptergen/internal/codegen"
	"github.com/okra-platform/adaptergen/internal/decl"
	"github.com/okra-platform/adaptergen/internal/diag"
	"github.com/okra-platform/adaptergen/internal/emit"
	"github.com/okra-platform/adaptergen/internal/errors"
)

// DefaultMarkerType is the qualified name of the marker annotation type.
const DefaultMarkerType = codegen.DefaultRuntimePackage + ".GenerateAdapters"

// Default wrapper base names.
const (
	DefaultRecordBase = "Record"
	DefaultClassBase  = "Class"
)

// ErrMarkerTypeUnresolved aborts a pass whose marker type is not part of the
// loaded program.
var ErrMarkerTypeUnresolved = errors.New("marker type unresolved")

// Options configures an Engine. Zero values select the defaults.
type Options struct {
	MarkerType          string
	RecordBase          string
	ClassBase           string
	MissingTypeArgument MissingTypeArgument
	Jobs                int
	Synthesizer         *codegen.Synthesizer
	Logger              zerolog.Logger
}

// Engine runs generation passes. It holds no per-pass state, so one Engine
// can run any number of passes, including concurrently.
type Engine struct {
	markerType string
	validator  Validator
	resolver   Resolver
	jobs       int
	synth      *codegen.Synthesizer
	logger     zerolog.Logger
}

func New(opts Options) *Engine {
	e := &Engine{
		markerType: opts.MarkerType,
		validator:  Validator{Bases: []string{opts.RecordBase, opts.ClassBase}},
		resolver:   Resolver{Policy: opts.MissingTypeArgument},
		jobs:       opts.Jobs,
		synth:      opts.Synthesizer,
		logger:     opts.Logger,
	}
	if e.markerType == "" {
		e.markerType = DefaultMarkerType
	}
	if e.validator.Bases[0] == "" {
		e.validator.Bases[0] = DefaultRecordBase
	}
	if e.validator.Bases[1] == "" {
		e.validator.Bases[1] = DefaultClassBase
	}
	if e.resolver.Policy == "" {
		e.resolver.Policy = RejectMissingTypeArgument
	}
	if e.jobs <= 0 {
		e.jobs = runtime.GOMAXPROCS(0)
	}
	if e.synth == nil {
		e.synth = codegen.NewSynthesizer()
	}
	return e
}

// Result summarizes a pass.
type Result struct {
	Candidates int
	Generated  int
	Rejected   int
	Failed     int
}

type outcome int

const (
	rejected outcome = iota
	failed
	synthesized
)

// slot is the private output of one candidate.
type slot struct {
	bag     *diag.Bag
	unit    *codegen.Unit
	outcome outcome
}

// Run executes one pass over the declarations of o. Units reach sink in
// candidate order after every candidate has been processed; a cancelled pass
// hands nothing to the sink. Run returns an error only when the pass itself
// cannot complete: an unresolvable marker type or cancellation.
func (e *Engine) Run(ctx context.Context, o decl.Oracle, sink emit.Sink, r diag.Reporter) (Result, error) {
	if r == nil {
		r = diag.NopReporter{}
	}

	decls := o.Declarations()
	diag.Infof(r, diag.PassStarted, diag.Location{},
		"adapter generation pass started over %d declarations", len(decls))

	_, short := decl.SplitQualified(e.markerType)
	candidates := Scan(decls, short)
	res := Result{Candidates: len(candidates)}
	if len(candidates) == 0 {
		diag.Infof(r, diag.NoCandidates, diag.Location{}, "no declarations annotated with %s", short)
		e.finish(r, res)
		return res, nil
	}
	for _, c := range candidates {
		diag.Infof(r, diag.CandidateFound, c.Location, "%s: candidate", c.QualifiedName())
	}

	marker, ok := o.ResolveMarkerType(e.markerType)
	if !ok {
		diag.Errorf(r, diag.MarkerTypeUnresolved, diag.Location{},
			"marker type %s is not part of the loaded packages", e.markerType)
		pkg, _ := decl.SplitQualified(e.markerType)
		return res, errors.WithHintf(
			errors.Wrapf(ErrMarkerTypeUnresolved, "%s", e.markerType),
			"import %q in the packages that declare strong types", pkg)
	}

	slots := make([]slot, len(candidates))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.jobs)
	for i, c := range candidates {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			slots[i] = e.process(o, c, marker)
			return nil
		})
	}
	err := g.Wait()

	for _, s := range slots {
		if s.bag != nil {
			s.bag.Replay(r)
		}
	}
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		e.logger.Debug().Err(err).Msg("pass cancelled")
		return res, errors.Wrap(err, "generation pass cancelled")
	}

	for _, s := range slots {
		switch s.outcome {
		case rejected:
			res.Rejected++
		case failed:
			res.Failed++
		case synthesized:
			if err := e.add(sink, s.unit); err != nil {
				diag.Errorf(r, diag.EmissionFailed, diag.Location{},
					"%s.%s: %v", s.unit.NamespacePath, s.unit.DeclarationName, err)
				res.Failed++
				continue
			}
			res.Generated++
		}
	}

	e.finish(r, res)
	return res, nil
}

// add hands u to sink. When another wrapper in the package already took the
// snake_case file name, u is keyed by its declaration name instead.
func (e *Engine) add(sink emit.Sink, u *codegen.Unit) error {
	err := sink.AddGeneratedUnit(u.Key, u)
	if !errors.Is(err, emit.ErrDuplicateUnit) {
		return err
	}
	alt := e.synth.DeclarationKey(u.DeclarationName)
	if alt == u.Key {
		return err
	}
	e.logger.Debug().
		Str("declaration", u.DeclarationName).
		Str("taken", u.Key).
		Str("key", alt).
		Msg("unit key taken")
	u.Key = alt
	return sink.AddGeneratedUnit(alt, u)
}

func (e *Engine) finish(r diag.Reporter, res Result) {
	diag.Infof(r, diag.PassFinished, diag.Location{},
		"adapter generation pass finished: %d candidates, %d generated, %d rejected, %d failed",
		res.Candidates, res.Generated, res.Rejected, res.Failed)
	e.logger.Debug().
		Int("candidates", res.Candidates).
		Int("generated", res.Generated).
		Int("rejected", res.Rejected).
		Int("failed", res.Failed).
		Msg("pass finished")
}

// process takes one candidate through validation, extraction, resolution and
// synthesis, reporting into its own bag.
func (e *Engine) process(o decl.Oracle, d *decl.Declaration, marker *decl.TypeSymbol) slot {
	s := slot{bag: diag.NewBag()}
	r := &diag.BagReporter{Bag: s.bag}

	sym, base, ok := e.validator.Validate(o, d, r)
	if !ok {
		return s
	}
	cfg, ok := ExtractConfig(sym, marker, r)
	if !ok {
		return s
	}
	typ, ok := e.resolver.Resolve(sym, base, r)
	if !ok {
		return s
	}

	unit, err := e.synth.Synthesize(codegen.Request{
		Name:        d.Name,
		Namespace:   d.Namespace,
		PackageName: d.PackageName,
		Dir:         d.Dir,
		Type:        typ,
		Config:      cfg,
	})
	if err != nil {
		s.outcome = failed
		if errors.Is(err, codegen.ErrUnsupportedType) {
			diag.Errorf(r, diag.UnsupportedTypeFatal, d.Location,
				"%s: JSON adapter requested for unsupported type %s", d.QualifiedName(), typ.Name)
		} else {
			diag.Errorf(r, diag.EmissionFailed, d.Location, "%s: %v", d.QualifiedName(), err)
		}
		return s
	}

	diag.Infof(r, diag.GenerationSucceeded, d.Location,
		"%s: generated %s (persistence=%t json=%t conversion=%t)",
		d.QualifiedName(), unit.Key, cfg.Persistence, cfg.JSON, cfg.Conversion)
	s.unit = unit
	s.outcome = synthesized
	return s
}
