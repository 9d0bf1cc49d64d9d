// Package diag defines the diagnostic model consumed by the layout and
// rendering layers.
//
// # Purpose
//
//   - Provide a small, deterministic data structure (Diagnostic) that captures
//     a positioned finding in a text buffer.
//   - Offer a light-weight accumulator (Bag) that producers can fill without
//     coupling to storage or formatting layers.
//
// # Scope
//
// Package diag does not perform formatting beyond the short one-line form, no
// IO, and no CLI integration. Visual layout of diagnostics lives in
// internal/virtlines; terminal presentation lives in internal/term.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Line, Col – 0-based position of the finding (Col is a rune offset).
//   - Severity – four-level enum (Hint, Info, Warning, Error) in severity.go.
//   - Message – human oriented text; keep it short and actionable. A blank
//     message is legal and means "mark the position, say nothing".
//   - Code – optional free-form identifier (lint rule name, compiler code).
//
// # Ordering
//
// Bag.SortByPosition establishes the canonical processing order for layout:
// line ascending, column ascending, stable on ties. Downstream passes assume
// this order and the stability guarantee; changing either breaks connector
// stacking.
//
// Keep the data model deterministic: new fields must not introduce side
// effects, so diagnostics stay safe to serialise for caching and testing.
package diag
