// Package diag defines the diagnostic model shared by the region-error
// reporting pass and the CLI.
//
// Diagnostic is the central record: severity, a stable numeric Code, a
// primary span plus message, secondary Notes (the provenance chain of a
// region error), inline span Labels, and Helps (suggested fixes such as an
// explicit lifetime bound).
//
// Producers emit through a Reporter. ReportBuilder accumulates one
// diagnostic and is resolved exactly once, either with Emit or with Cancel;
// the resolution is returned as an Outcome so suppression of derived errors
// stays observable and testable. Bag aggregates diagnostics with a
// deterministic sort order; DedupReporter filters duplicates in flight.
//
// The package performs no formatting or IO. Rendering lives in
// internal/diagfmt.
package diag
