// Package loader implements decl.Oracle on top of golang.org/x/tools/go/packages.
//
// Declarations come from the syntax trees of the loaded packages, annotations
// from the doc comment of each type spec. Symbols are built from go/types:
// every embedded named field becomes a base, followed through its own
// embedded fields and marked when embedded through a pointer, and attribute
// names resolve through the declaring file's imports.
package loader

import (
	"context"
	"go/ast"
	"go/token"
	"go/types"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/tools/go/packages"

	"github.com/okra-platform/adaptergen/internal/decl"
	"github.com/okra-platform/adaptergen/internal/diag"
	"github.com/okra-platform/adaptergen/internal/errors"
)

const loadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedCompiledGoFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// Config controls which packages are loaded.
type Config struct {
	Dir       string
	Patterns  []string
	BuildTags []string
	Logger    zerolog.Logger
}

// entry ties a declaration back to the syntax and package it came from.
type entry struct {
	pkg  *packages.Package
	file *ast.File
	spec *ast.TypeSpec
}

// Oracle is a decl.Oracle over loaded Go packages. It is safe for concurrent
// use.
type Oracle struct {
	logger  zerolog.Logger
	pkgs    []*packages.Package
	decls   []*decl.Declaration
	entries map[*decl.Declaration]entry

	mu      sync.Mutex
	symbols map[*decl.Declaration]*decl.Symbol
	types   map[string]*decl.TypeSymbol
}

var _ decl.Oracle = (*Oracle)(nil)

// Load loads the packages matching cfg.Patterns. Type errors do not fail the
// load: on a first run the annotated package usually refers to generated code
// that does not exist yet. Packages that could not be type-checked at all are
// skipped with a warning.
func Load(ctx context.Context, cfg Config) (*Oracle, error) {
	patterns := cfg.Patterns
	if len(patterns) == 0 {
		patterns = []string{"./..."}
	}

	pcfg := &packages.Config{
		Context: ctx,
		Dir:     cfg.Dir,
		Mode:    loadMode,
	}
	if len(cfg.BuildTags) > 0 {
		pcfg.BuildFlags = []string{"-tags=" + strings.Join(cfg.BuildTags, ",")}
	}

	pkgs, err := packages.Load(pcfg, patterns...)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load packages %v", patterns)
	}

	o := &Oracle{
		logger:  cfg.Logger,
		entries: make(map[*decl.Declaration]entry),
		symbols: make(map[*decl.Declaration]*decl.Symbol),
		types:   make(map[string]*decl.TypeSymbol),
	}

	sort.Slice(pkgs, func(i, j int) bool { return pkgs[i].PkgPath < pkgs[j].PkgPath })
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			o.logger.Debug().Str("package", pkg.PkgPath).Str("error", e.Error()).Msg("package error")
		}
		if pkg.Types == nil || pkg.TypesInfo == nil {
			o.logger.Warn().Str("package", pkg.PkgPath).Msg("skipping package without type information")
			continue
		}
		o.pkgs = append(o.pkgs, pkg)
		o.collect(pkg)
	}

	if len(o.pkgs) == 0 {
		return nil, errors.WithHintf(
			errors.Wrapf(errors.ErrNotFound, "no packages matched %v", patterns),
			"check that %s is inside a Go module", displayDir(cfg.Dir))
	}

	o.logger.Debug().
		Int("packages", len(o.pkgs)).
		Int("declarations", len(o.decls)).
		Msg("packages loaded")

	return o, nil
}

func displayDir(dir string) string {
	if dir == "" {
		return "the working directory"
	}
	return dir
}

func (o *Oracle) collect(pkg *packages.Package) {
	files := append([]*ast.File(nil), pkg.Syntax...)
	sort.Slice(files, func(i, j int) bool {
		return pkg.Fset.Position(files[i].Pos()).Filename < pkg.Fset.Position(files[j].Pos()).Filename
	})

	for _, file := range files {
		for _, node := range file.Decls {
			gd, ok := node.(*ast.GenDecl)
			if !ok || gd.Tok != token.TYPE {
				continue
			}
			for _, spec := range gd.Specs {
				ts := spec.(*ast.TypeSpec)
				doc := ts.Doc
				if doc == nil && len(gd.Specs) == 1 {
					doc = gd.Doc
				}

				pos := pkg.Fset.Position(ts.Name.Pos())
				d := &decl.Declaration{
					Name:        ts.Name.Name,
					Namespace:   pkg.PkgPath,
					PackageName: pkg.Name,
					Dir:         filepath.Dir(pos.Filename),
					Location:    diag.Location{File: pos.Filename, Line: pos.Line, Column: pos.Column},
					Annotations: annotations(doc),
				}
				o.decls = append(o.decls, d)
				o.entries[d] = entry{pkg: pkg, file: file, spec: ts}
			}
		}
	}
}

func annotations(doc *ast.CommentGroup) []decl.Annotation {
	if doc == nil {
		return nil
	}
	var out []decl.Annotation
	for _, c := range doc.List {
		if a, ok := decl.ParseAnnotation(c.Text); ok {
			out = append(out, a)
		}
	}
	return out
}

// Declarations returns every type declaration ordered by package path, file
// name and position.
func (o *Oracle) Declarations() []*decl.Declaration {
	return o.decls
}

// ResolveSymbol builds the semantic view of d. Generic declarations and
// declarations the type checker could not define do not resolve.
func (o *Oracle) ResolveSymbol(d *decl.Declaration) (*decl.Symbol, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if s, ok := o.symbols[d]; ok {
		return s, s != nil
	}
	s := o.resolve(d)
	o.symbols[d] = s
	return s, s != nil
}

func (o *Oracle) resolve(d *decl.Declaration) *decl.Symbol {
	e, ok := o.entries[d]
	if !ok {
		return nil
	}
	obj, ok := e.pkg.TypesInfo.Defs[e.spec.Name].(*types.TypeName)
	if !ok || obj == nil {
		return nil
	}
	named, ok := obj.Type().(*types.Named)
	if !ok || named.TypeParams().Len() > 0 {
		return nil
	}

	onPath := map[*types.TypeName]bool{obj: true}
	s := &decl.Symbol{
		Name:        d.Name,
		Namespace:   d.Namespace,
		Base:        o.bases(named, e.pkg.Types, onPath),
		Declaration: d,
	}
	for _, a := range d.Annotations {
		s.Attributes = append(s.Attributes, o.attribute(e, a))
	}
	return s
}

// bases returns the embedded named fields of t in field order, each followed
// transitively through its own embedded fields. A type already on the path
// from the wrapper ends that branch.
func (o *Oracle) bases(t *types.Named, from *types.Package, onPath map[*types.TypeName]bool) *decl.BaseType {
	st, ok := t.Underlying().(*types.Struct)
	if !ok {
		return nil
	}

	var first, last *decl.BaseType
	for i := 0; i < st.NumFields(); i++ {
		f := st.Field(i)
		if !f.Embedded() {
			continue
		}
		embedded, pointer := namedOf(f.Type())
		if embedded == nil {
			continue
		}

		origin := embedded.Origin().Obj()
		b := &decl.BaseType{Name: origin.Name(), Package: pkgPath(origin.Pkg()), Pointer: pointer}
		args := embedded.TypeArgs()
		for j := 0; j < args.Len(); j++ {
			b.TypeArgs = append(b.TypeArgs, typeArg(args.At(j), from))
		}
		if !onPath[origin] {
			onPath[origin] = true
			b.Base = o.bases(embedded, from, onPath)
			delete(onPath, origin)
		}

		if first == nil {
			first = b
		} else {
			last.Next = b
		}
		last = b
	}
	return first
}

func namedOf(t types.Type) (*types.Named, bool) {
	p, pointer := types.Unalias(t).(*types.Pointer)
	if pointer {
		t = p.Elem()
	}
	n, _ := types.Unalias(t).(*types.Named)
	return n, pointer
}

func pkgPath(p *types.Package) string {
	if p == nil {
		return ""
	}
	return p.Path()
}

// typeArg spells t as code in package from would, recording the imports the
// spelling needs.
func typeArg(t types.Type, from *types.Package) decl.TypeArg {
	var imports []string
	qual := func(p *types.Package) string {
		if p == from {
			return ""
		}
		imports = append(imports, p.Path())
		return p.Name()
	}
	display := types.TypeString(t, qual)
	sort.Strings(imports)
	return decl.TypeArg{Display: display, Imports: dedupe(imports)}
}

func dedupe(sorted []string) []string {
	out := sorted[:0]
	for i, s := range sorted {
		if i == 0 || s != sorted[i-1] {
			out = append(out, s)
		}
	}
	return out
}

func (o *Oracle) attribute(e entry, a decl.Annotation) decl.Attribute {
	attr := decl.Attribute{Name: a.Name}

	args, err := decl.ParseArgs(a.Args)
	if err != nil {
		o.logger.Debug().Str("annotation", a.Name).Err(err).Msg("unparsable annotation arguments")
	}
	attr.Args = args

	if obj := lookupAnnotation(e, a.Name); obj != nil {
		attr.Type = o.intern(obj)
	}
	return attr
}

// lookupAnnotation resolves "pkg.Name" through the imports of the file the
// annotation is written in, and "Name" in the declaring package.
func lookupAnnotation(e entry, name string) *types.TypeName {
	qualifier, short := decl.SplitQualified(name)
	if qualifier == "" {
		obj, _ := e.pkg.Types.Scope().Lookup(short).(*types.TypeName)
		return obj
	}
	for _, spec := range e.file.Imports {
		pn := e.pkg.TypesInfo.PkgNameOf(spec)
		if pn == nil || pn.Name() != qualifier {
			continue
		}
		obj, _ := pn.Imported().Scope().Lookup(short).(*types.TypeName)
		return obj
	}
	return nil
}

// ResolveMarkerType finds "import/path.Name" among the loaded packages and
// everything they import.
func (o *Oracle) ResolveMarkerType(qualifiedName string) (*decl.TypeSymbol, bool) {
	path, name := decl.SplitQualified(qualifiedName)
	if path == "" {
		return nil, false
	}

	seen := make(map[*types.Package]bool)
	var find func(p *types.Package) *types.Package
	find = func(p *types.Package) *types.Package {
		if p == nil || seen[p] {
			return nil
		}
		seen[p] = true
		if p.Path() == path {
			return p
		}
		for _, imp := range p.Imports() {
			if found := find(imp); found != nil {
				return found
			}
		}
		return nil
	}

	for _, pkg := range o.pkgs {
		if p := find(pkg.Types); p != nil {
			obj, ok := p.Scope().Lookup(name).(*types.TypeName)
			if !ok {
				return nil, false
			}
			o.mu.Lock()
			defer o.mu.Unlock()
			return o.intern(obj), true
		}
	}
	return nil, false
}

// intern returns the single TypeSymbol for obj. Symbols are keyed by
// qualified name so that objects read from different export data still
// compare equal. Callers hold o.mu.
func (o *Oracle) intern(obj *types.TypeName) *decl.TypeSymbol {
	key := pkgPath(obj.Pkg()) + "." + obj.Name()
	if t, ok := o.types[key]; ok {
		return t
	}
	t := &decl.TypeSymbol{Name: obj.Name(), Package: pkgPath(obj.Pkg())}
	o.types[key] = t
	return t
}
