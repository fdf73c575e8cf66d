// Package diag defines the diagnostic model shared by every stage of a
// generation pass.
//
// A Diagnostic carries a stable Code, a Severity, a human oriented Message and
// an optional source Location. Stages emit through a Reporter so they never
// depend on where diagnostics end up: a Bag collects them for the CLI, a
// LogReporter mirrors them to zerolog and MultiReporter fans out to several.
//
// Diagnostics never change control flow. The engine decides what is fatal;
// this package only records what happened.
package diag
