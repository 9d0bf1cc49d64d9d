// Package virtlines lays positioned diagnostics out as read-only annotation
// lines anchored directly beneath their source line, connected to the exact
// column with box-drawing glyphs.
//
// # Pipeline
//
// One render call runs four passes over the input:
//
//   - sort: diagnostics are ordered by (line, column), stable on ties
//     (diag.SortByPosition).
//   - group: the sorted sequence is folded into per-line layout stacks of
//     spacing runs, diagnostic markers, blank markers and overlap markers
//     (group.go). Spacing is measured in display cells through the
//     WidthOracle, so tabs and wide runes land on the right column.
//   - render: each stack is walked last-to-first; every diagnostic marker
//     yields a connector prefix, a joint glyph, an icon and its word-wrapped
//     message (render.go, wrap.go).
//   - publish: the per-line results replace the previous annotation set for
//     the (namespace, buffer) key through the Presenter.
//
// # Hosts
//
// The package implements layout only. Display-width computation and the
// actual anchoring of lines are host concerns, consumed through the
// WidthOracle and Presenter interfaces in host.go. internal/source provides
// the bundled oracle, internal/term the bundled presenter.
//
// Styling is indirect: rendered segments carry opaque StyleIDs taken from
// the StyleProfile passed into Render. Profiles and icon sets are frozen
// configuration and are never mutated or copied per line.
//
// Render is synchronous, single-threaded and idempotent per
// (namespace, buffer); see Render for the exact contract.
package virtlines
