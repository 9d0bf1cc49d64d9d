package virtlines

import (
	"errors"
	"fmt"
	"sort"

	"virtlines/internal/diag"
	"virtlines/internal/source"
)

// Contract-violation errors. These signal caller bugs, not runtime
// conditions; Render reports them before touching any published state.
var (
	ErrNilPresenter = errors.New("virtlines: nil presenter")
	ErrNilOracle    = errors.New("virtlines: nil width oracle")
	ErrBadProfile   = errors.New("virtlines: incomplete style profile")
	ErrBadPosition  = errors.New("virtlines: negative diagnostic position")
	ErrBadSeverity  = errors.New("virtlines: severity out of range")
)

// autoWidthMargin is subtracted from the viewport width under AutoWidth,
// leaving room for line numbers and sign columns.
const autoWidthMargin = 10

// Render lays the diagnostics out beneath their source lines in buf and
// publishes the result to p under ns, fully replacing whatever that
// (namespace, buffer) key held before.
//
// A call is synchronous and all-or-nothing: input is validated before any
// state changes, an unloaded buffer is a silent no-op, and an empty
// diagnostic list clears the key and succeeds. Render never mutates diags
// and retains no reference to it after returning.
func Render(p Presenter, oracle WidthOracle, ns NamespaceID, buf source.BufferID,
	diags []diag.Diagnostic, cfg Config, profile StyleProfile, icons IconSet) error {
	if p == nil {
		return ErrNilPresenter
	}
	if oracle == nil {
		return ErrNilOracle
	}
	if err := profile.validate(icons); err != nil {
		return err
	}
	for i, d := range diags {
		if d.Line < 0 || d.Col < 0 {
			return fmt.Errorf("%w: diagnostic %d at %d:%d", ErrBadPosition, i, d.Line, d.Col)
		}
		if !d.Severity.Valid() {
			return fmt.Errorf("%w: diagnostic %d has severity %d", ErrBadSeverity, i, d.Severity)
		}
	}

	if !p.IsLoaded(buf) {
		return nil
	}
	if len(diags) == 0 {
		p.Clear(buf, ns)
		return nil
	}

	width := cfg.Width
	if width <= 0 {
		width = DefaultConfig().Width
	}
	if cfg.AutoWidth {
		if vw, ok := p.SmallestViewportWidth(buf); ok {
			width = vw - autoWidthMargin
			if width < minMessageWidth {
				width = minMessageWidth
			}
		}
	}

	// Sort a copy: the caller keeps ownership of the input order.
	sorted := make([]diag.Diagnostic, len(diags))
	copy(sorted, diags)
	diag.SortByPosition(sorted)

	stacks := groupByLine(sorted, oracle)
	r := renderer{
		profile:            profile,
		icons:              icons,
		width:              width,
		highlightWholeLine: cfg.HighlightWholeLine,
	}
	batch := make(RenderBatch, len(stacks))
	for line, stack := range stacks {
		// a line holding only blank markers renders nothing; do not hand
		// the presenter a zero-line anchor
		if rendered := r.renderStack(stack); len(rendered) > 0 {
			batch[line] = rendered
		}
	}

	p.Clear(buf, ns)
	lines := make([]int, 0, len(batch))
	for line := range batch {
		lines = append(lines, line)
	}
	sort.Ints(lines)
	for _, line := range lines {
		p.Present(buf, ns, line, batch[line])
	}
	return nil
}
