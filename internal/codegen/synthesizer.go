package codegen

import (
	"path"

	"golang.org/x/tools/imports"

	"github.com/okra-platform/adaptergen/internal/codegen/writer"
	"github.com/okra-platform/adaptergen/internal/errors"
)

// Synthesizer renders adapter units.
type Synthesizer struct {
	runtimeImport string
	runtimeName   string
	fileSuffix    string
}

// Option configures a Synthesizer.
type Option func(*Synthesizer)

// WithRuntimePackage sets the import path of the runtime package generated
// code refers to.
func WithRuntimePackage(importPath string) Option {
	return func(s *Synthesizer) {
		if importPath != "" {
			s.runtimeImport = importPath
		}
	}
}

// WithFileSuffix sets the suffix of generated file names.
func WithFileSuffix(suffix string) Option {
	return func(s *Synthesizer) {
		if suffix != "" {
			s.fileSuffix = suffix
		}
	}
}

// NewSynthesizer creates a Synthesizer targeting DefaultRuntimePackage.
func NewSynthesizer(opts ...Option) *Synthesizer {
	s := &Synthesizer{
		runtimeImport: DefaultRuntimePackage,
		fileSuffix:    DefaultFileSuffix,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.runtimeName = path.Base(s.runtimeImport)
	return s
}

// section is the per-wrapper naming shared by every adapter renderer.
type section struct {
	name    string // wrapper type
	typ     string // encapsulated type
	rt      string // runtime package name
	factory string
}

// Synthesize renders the unit for req. It fails with ErrUnsupportedType
// before rendering anything when a JSON adapter is requested for a type
// outside the converter table.
func (s *Synthesizer) Synthesize(req Request) (*Unit, error) {
	if req.Name == "" {
		return nil, errors.New("declaration name is required")
	}
	if req.PackageName == "" {
		return nil, errors.Newf("package name is required for %s", req.Name)
	}
	if req.Type.Name == "" {
		return nil, errors.Newf("encapsulated type is required for %s", req.Name)
	}

	var jsonBase string
	if req.Config.JSON {
		base, ok := JSONConverterFor(req.Type.Name)
		if !ok {
			err := errors.Wrapf(ErrUnsupportedType, "no JSON converter for %s in %s", req.Type.Name, req.Name)
			return nil, errors.WithHintf(err, "JSON adapters support %v; disable the JSON flag for %s", SupportedJSONTypes(), req.Name)
		}
		jsonBase = base
	}

	sec := section{
		name:    req.Name,
		typ:     req.Type.Name,
		rt:      s.runtimeName,
		factory: "New" + req.Name,
	}

	w := writer.New()
	w.Line("// Code generated by adaptergen. DO NOT EDIT.")
	w.BlankLine()
	w.Line("package %s", req.PackageName)
	w.BlankLine()
	w.Imports(s.imports(req))
	w.BlankLine()

	s.writeFactory(w, sec)
	if req.Config.Persistence {
		w.BlankLine()
		s.writePersistence(w, sec)
	}
	if req.Config.JSON {
		w.BlankLine()
		s.writeJSON(w, sec, jsonBase)
	}
	if req.Config.Conversion {
		w.BlankLine()
		s.writeConversion(w, sec)
	}

	key := UnitKey(req.Name, s.fileSuffix)
	src, err := imports.Process(key, w.Bytes(), &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to format generated source for %s", req.Name)
	}

	return &Unit{
		DeclarationName: req.Name,
		NamespacePath:   req.Namespace,
		PackageName:     req.PackageName,
		Dir:             req.Dir,
		Key:             key,
		Source:          src,
	}, nil
}

func (s *Synthesizer) imports(req Request) []string {
	paths := append([]string(nil), req.Type.Imports...)
	if req.Config.Persistence {
		paths = append(paths, "database/sql/driver")
	}
	if req.Config.Persistence || req.Config.JSON || req.Config.Conversion {
		paths = append(paths, s.runtimeImport)
	}
	return paths
}

func (s *Synthesizer) writeFactory(w *writer.Writer, sec section) {
	w.Doc("%s returns %s %s holding value.", sec.factory, article(sec.name), sec.name)
	w.Block("func %s(value %s) %s", sec.factory, sec.typ, sec.name)(func() {
		w.Line("var w %s", sec.name)
		w.Line("w.Set(value)")
		w.Line("return w")
	})
}

func (s *Synthesizer) writePersistence(w *writer.Writer, sec section) {
	conv := sec.name + "ValueConverter"

	w.Doc("%s maps %s to and from the %s stored by a persistence layer.", conv, sec.name, sec.typ)
	w.Line("type %s struct{}", conv)
	w.BlankLine()
	w.Line("var _ %s.ValueConverter[%s, %s] = %s{}", sec.rt, sec.name, sec.typ, conv)
	w.BlankLine()
	w.Doc("ToProvider extracts the stored value from model.")
	w.Block("func (%s) ToProvider(model %s) %s", conv, sec.name, sec.typ)(func() {
		w.Line("return model.Get()")
	})
	w.BlankLine()
	w.Doc("FromProvider builds %s %s from a stored value.", article(sec.name), sec.name)
	w.Block("func (%s) FromProvider(value %s) %s", conv, sec.typ, sec.name)(func() {
		w.Line("return %s(value)", sec.factory)
	})
	w.BlankLine()
	w.Doc("Value implements driver.Valuer.")
	w.Block("func (w %s) Value() (driver.Value, error)", sec.name)(func() {
		w.Line("return %s.ProviderValue(%s{}.ToProvider(w))", sec.rt, conv)
	})
	w.BlankLine()
	w.Doc("Scan implements sql.Scanner.")
	w.Block("func (w *%s) Scan(src any) error", sec.name)(func() {
		w.Line("value, err := %s.ScanProvider[%s](src)", sec.rt, sec.typ)
		writeErrReturn(w, "err")
		w.Line("*w = %s{}.FromProvider(value)", conv)
		w.Line("return nil")
	})
}

func (s *Synthesizer) writeJSON(w *writer.Writer, sec section, base string) {
	conv := sec.name + "JSONConverter"

	w.Doc("%s encodes %s through %s.%s.", conv, sec.name, sec.rt, base)
	w.Block("type %s struct", conv)(func() {
		w.Line("%s.%s", sec.rt, base)
	})
	w.BlankLine()
	w.Line("var _ %s.JSONConverter[%s, %s] = %s{}", sec.rt, sec.name, sec.typ, conv)
	w.BlankLine()
	w.Doc("CreateInstance builds %s %s from a decoded value.", article(sec.name), sec.name)
	w.Block("func (%s) CreateInstance(value %s) %s", conv, sec.typ, sec.name)(func() {
		w.Line("return %s(value)", sec.factory)
	})
	w.BlankLine()
	w.Doc("GetValue returns the value of instance to encode.")
	w.Block("func (%s) GetValue(instance %s) %s", conv, sec.name, sec.typ)(func() {
		w.Line("return instance.Get()")
	})
	w.BlankLine()
	w.Doc("MarshalJSON implements json.Marshaler.")
	w.Block("func (w %s) MarshalJSON() ([]byte, error)", sec.name)(func() {
		w.Line("c := %s{}", conv)
		w.Line("return c.Encode(c.GetValue(w))")
	})
	w.BlankLine()
	w.Doc("UnmarshalJSON implements json.Unmarshaler.")
	w.Block("func (w *%s) UnmarshalJSON(data []byte) error", sec.name)(func() {
		w.Line("c := %s{}", conv)
		w.Line("value, err := c.Decode(data)")
		writeErrReturn(w, "err")
		w.Line("*w = c.CreateInstance(value)")
		w.Line("return nil")
	})
}

func (s *Synthesizer) writeConversion(w *writer.Writer, sec section) {
	conv := sec.name + "TypeConverter"

	w.Doc("%s converts between %s and %s for text and UI layers.", conv, sec.name, sec.typ)
	w.Line("type %s struct{}", conv)
	w.BlankLine()
	w.Line("var _ %s.TypeConverter[%s, %s] = %s{}", sec.rt, sec.name, sec.typ, conv)
	w.BlankLine()
	w.Doc("ConvertFromType wraps value with %s.", sec.factory)
	w.Block("func (%s) ConvertFromType(value %s) %s", conv, sec.typ, sec.name)(func() {
		w.Line("return %s(value)", sec.factory)
	})
	w.BlankLine()
	w.Doc("ConvertToType unwraps value.")
	w.Block("func (%s) ConvertToType(value %s) %s", conv, sec.name, sec.typ)(func() {
		w.Line("return value.Get()")
	})
	w.BlankLine()
	w.Doc("MarshalText implements encoding.TextMarshaler.")
	w.Block("func (w %s) MarshalText() ([]byte, error)", sec.name)(func() {
		w.Line("text, err := %s.FormatText(%s{}.ConvertToType(w))", sec.rt, conv)
		w.Block("if err != nil")(func() {
			w.Line("return nil, err")
		})
		w.Line("return []byte(text), nil")
	})
	w.BlankLine()
	w.Doc("UnmarshalText implements encoding.TextUnmarshaler.")
	w.Block("func (w *%s) UnmarshalText(text []byte) error", sec.name)(func() {
		w.Line("value, err := %s.ParseText[%s](string(text))", sec.rt, sec.typ)
		writeErrReturn(w, "err")
		w.Line("*w = %s{}.ConvertFromType(value)", conv)
		w.Line("return nil")
	})
}

func writeErrReturn(w *writer.Writer, name string) {
	w.Block("if %s != nil", name)(func() {
		w.Line("return %s", name)
	})
}
