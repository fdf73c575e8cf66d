// Package errors provides error handling for adaptergen.
//
// It re-exports github.com/cockroachdb/errors so every package wraps errors
// the same way and hints survive wrapping up to the CLI:
//
//	if err := loader.Load(ctx, dir, patterns); err != nil {
//	    return errors.Wrap(err, "failed to load packages")
//	}
//
//	return errors.WithHint(err, "run adaptergen init to create a config file")
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is            = crdb.Is
	As            = crdb.As
	UnwrapAll     = crdb.UnwrapAll
	GetAllHints   = crdb.GetAllHints
	FlattenHints  = crdb.FlattenHints
	GetAllDetails = crdb.GetAllDetails
)

// Sentinel errors shared across packages. Wrap them to add context while
// keeping them matchable with Is.
var (
	// ErrNotFound indicates a file, package or declaration does not exist
	ErrNotFound = New("not found")

	// ErrInvalidConfig indicates the configuration failed validation
	ErrInvalidConfig = New("invalid configuration")
)

// Hints returns every hint attached to err, flattened into one string.
// It returns "" for nil errors.
func Hints(err error) string {
	if err == nil {
		return ""
	}
	return FlattenHints(err)
}
