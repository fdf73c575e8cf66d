// Package codegen synthesizes the adapter source file for one strong type.
//
// Given a wrapper name, its encapsulated type and a GenerationConfig, the
// Synthesizer renders a gofmt-formatted Go file holding the factory function
// and up to three adapters, always in the same order: factory, persistence,
// JSON, conversion. The output depends only on the Request, so repeated runs
// are byte-identical.
package codegen

import (
	"github.com/okra-platform/adaptergen/internal/errors"
)

// DefaultRuntimePackage is the import path of the package generated code
// builds on.
const DefaultRuntimePackage = "github.com/okra-platform/adaptergen/strongtype"

// DefaultFileSuffix is appended to the snake_case wrapper name to form the
// generated file name.
const DefaultFileSuffix = "_adapters.gen.go"

// ErrUnsupportedType is returned when a JSON adapter is requested for an
// encapsulated type that has no base converter.
var ErrUnsupportedType = errors.New("unsupported encapsulated type")

// GenerationConfig selects the adapters to emit. Any subset is valid; the
// empty one yields the factory only.
type GenerationConfig struct {
	Persistence bool
	JSON        bool
	Conversion  bool
}

// EncapsulatedType is the single value type a wrapper holds, displayed as it
// is written in the wrapper's package, with the imports that spelling needs.
type EncapsulatedType struct {
	Name    string
	Imports []string
}

// Request is everything the Synthesizer needs for one wrapper.
type Request struct {
	Name        string
	Namespace   string
	PackageName string
	Dir         string
	Type        EncapsulatedType
	Config      GenerationConfig
}

// Unit is one generated source file.
type Unit struct {
	DeclarationName string
	NamespacePath   string
	PackageName     string
	Dir             string
	Key             string
	Source          []byte
}

// jsonConverters maps an encapsulated type to its base JSON converter in the
// runtime package. Types outside this table cannot get a JSON adapter.
var jsonConverters = map[string]string{
	"int":       "IntConverter",
	"float64":   "DoubleConverter",
	"time.Time": "DateTimeConverter",
}

// JSONConverterFor returns the base JSON converter for an encapsulated type.
func JSONConverterFor(typeName string) (string, bool) {
	base, ok := jsonConverters[typeName]
	return base, ok
}

// SupportedJSONTypes returns the keys of the JSON converter table.
func SupportedJSONTypes() []string {
	return []string{"int", "float64", "time.Time"}
}
