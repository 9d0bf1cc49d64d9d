package virtlines

import (
	"errors"
	"strings"
	"testing"

	"virtlines/internal/diag"
	"virtlines/internal/source"
)

type fakePresenter struct {
	loaded   bool
	viewport int
	hasView  bool

	clears   int
	presents map[NamespaceID]map[int][]VirtualLine
}

func newFakePresenter() *fakePresenter {
	return &fakePresenter{
		loaded:   true,
		presents: make(map[NamespaceID]map[int][]VirtualLine),
	}
}

func (p *fakePresenter) IsLoaded(source.BufferID) bool { return p.loaded }

func (p *fakePresenter) SmallestViewportWidth(source.BufferID) (int, bool) {
	return p.viewport, p.hasView
}

func (p *fakePresenter) Clear(_ source.BufferID, ns NamespaceID) {
	p.clears++
	delete(p.presents, ns)
}

func (p *fakePresenter) Present(_ source.BufferID, ns NamespaceID, line int, lines []VirtualLine) {
	m := p.presents[ns]
	if m == nil {
		m = make(map[int][]VirtualLine)
		p.presents[ns] = m
	}
	m[line] = lines
}

func renderInto(t *testing.T, p *fakePresenter, diags []diag.Diagnostic, cfg Config) {
	t.Helper()
	err := Render(p, asciiOracle{}, "lint", 0, diags, cfg, testProfile(), testIcons())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
}

func TestRender_SingleDiagnostic(t *testing.T) {
	p := newFakePresenter()
	cfg := DefaultConfig()
	cfg.HighlightWholeLine = false
	renderInto(t, p, []diag.Diagnostic{
		{Line: 0, Col: 5, Severity: diag.SevError, Message: "bad type"},
	}, cfg)

	lines := p.presents["lint"][0]
	if len(lines) != 1 {
		t.Fatalf("got %d virtual lines at line 0, want 1", len(lines))
	}
	if got := lines[0].Text(); got != "     └───E  bad type" {
		t.Errorf("rendered text = %q", got)
	}
}

func TestRender_EmptyListClears(t *testing.T) {
	p := newFakePresenter()
	renderInto(t, p, []diag.Diagnostic{
		{Line: 1, Col: 0, Severity: diag.SevWarn, Message: "old"},
	}, DefaultConfig())
	if len(p.presents["lint"]) == 0 {
		t.Fatal("first render published nothing")
	}

	renderInto(t, p, nil, DefaultConfig())
	if len(p.presents["lint"]) != 0 {
		t.Error("empty render should clear previous annotations")
	}
	if p.clears != 2 {
		t.Errorf("clears = %d, want 2", p.clears)
	}
}

func TestRender_UnloadedBufferIsNoop(t *testing.T) {
	p := newFakePresenter()
	p.loaded = false
	renderInto(t, p, []diag.Diagnostic{
		{Line: 0, Col: 0, Severity: diag.SevError, Message: "x"},
	}, DefaultConfig())
	if p.clears != 0 || len(p.presents) != 0 {
		t.Error("unloaded buffer must not be cleared or published to")
	}
}

func TestRender_ContractViolations(t *testing.T) {
	diags := []diag.Diagnostic{{Line: 0, Col: 0, Severity: diag.SevError, Message: "x"}}

	if err := Render(nil, asciiOracle{}, "lint", 0, diags, DefaultConfig(), testProfile(), testIcons()); !errors.Is(err, ErrNilPresenter) {
		t.Errorf("nil presenter: err = %v", err)
	}
	p := newFakePresenter()
	if err := Render(p, nil, "lint", 0, diags, DefaultConfig(), testProfile(), testIcons()); !errors.Is(err, ErrNilOracle) {
		t.Errorf("nil oracle: err = %v", err)
	}

	incomplete := testProfile()
	incomplete.Text = map[diag.Severity]StyleID{diag.SevError: "error"}
	if err := Render(p, asciiOracle{}, "lint", 0, diags, DefaultConfig(), incomplete, testIcons()); !errors.Is(err, ErrBadProfile) {
		t.Errorf("incomplete profile: err = %v", err)
	}

	bad := []diag.Diagnostic{{Line: -1, Col: 0, Severity: diag.SevError, Message: "x"}}
	if err := Render(p, asciiOracle{}, "lint", 0, bad, DefaultConfig(), testProfile(), testIcons()); !errors.Is(err, ErrBadPosition) {
		t.Errorf("negative line: err = %v", err)
	}

	bad = []diag.Diagnostic{{Line: 0, Col: 0, Severity: diag.Severity(9), Message: "x"}}
	if err := Render(p, asciiOracle{}, "lint", 0, bad, DefaultConfig(), testProfile(), testIcons()); !errors.Is(err, ErrBadSeverity) {
		t.Errorf("bad severity: err = %v", err)
	}

	// a failed call must not have touched published state
	if p.clears != 0 || len(p.presents) != 0 {
		t.Error("contract violations must abort before clearing or publishing")
	}
}

func TestRender_ReplacesPreviousBatch(t *testing.T) {
	p := newFakePresenter()
	renderInto(t, p, []diag.Diagnostic{
		{Line: 0, Col: 0, Severity: diag.SevError, Message: "old"},
		{Line: 5, Col: 0, Severity: diag.SevWarn, Message: "stale"},
	}, DefaultConfig())

	renderInto(t, p, []diag.Diagnostic{
		{Line: 2, Col: 1, Severity: diag.SevInfo, Message: "new"},
	}, DefaultConfig())

	got := p.presents["lint"]
	if len(got) != 1 {
		t.Fatalf("lines with annotations = %d, want 1", len(got))
	}
	if _, ok := got[2]; !ok {
		t.Error("expected annotations at line 2 only")
	}
}

func TestRender_DoesNotMutateInput(t *testing.T) {
	p := newFakePresenter()
	diags := []diag.Diagnostic{
		{Line: 3, Col: 0, Severity: diag.SevError, Message: "later"},
		{Line: 0, Col: 0, Severity: diag.SevWarn, Message: "earlier"},
	}
	renderInto(t, p, diags, DefaultConfig())

	if diags[0].Line != 3 || diags[1].Line != 0 {
		t.Error("Render reordered the caller's slice")
	}
}

func TestRender_AutoWidth(t *testing.T) {
	long := strings.Repeat("pad ", 40)

	p := newFakePresenter()
	p.viewport = 50
	p.hasView = true
	cfg := DefaultConfig()
	cfg.AutoWidth = true
	renderInto(t, p, []diag.Diagnostic{
		{Line: 0, Col: 0, Severity: diag.SevError, Message: long},
	}, cfg)

	// width = 50 - 10; no prefix at col 0, so messages wrap at 40 cells
	for _, line := range p.presents["lint"][0] {
		if n := len([]rune(line.Text())); n > 47 {
			t.Errorf("line %q is %d cells, want <= 47", line.Text(), n)
		}
	}

	// hidden buffer falls back to the configured width
	p = newFakePresenter()
	p.hasView = false
	cfg.Width = 30
	renderInto(t, p, []diag.Diagnostic{
		{Line: 0, Col: 0, Severity: diag.SevError, Message: long},
	}, cfg)
	for _, line := range p.presents["lint"][0] {
		if n := len([]rune(line.Text())); n > 37 {
			t.Errorf("fallback line %q is %d cells, want <= 37", line.Text(), n)
		}
	}
}

// Blank-message diagnostics contribute glyphs to other markers on their
// line but render nothing on their own; a line holding only blanks must not
// reach the presenter as an empty anchor.
func TestRender_BlankOnlyLineNotPublished(t *testing.T) {
	p := newFakePresenter()
	renderInto(t, p, []diag.Diagnostic{
		{Line: 2, Col: 4, Severity: diag.SevHint, Message: "   "},
		{Line: 5, Col: 0, Severity: diag.SevError, Message: "real"},
	}, DefaultConfig())

	if _, ok := p.presents["lint"][2]; ok {
		t.Error("blank-only line 2 was published")
	}
	if _, ok := p.presents["lint"][5]; !ok {
		t.Error("line 5 with a real diagnostic was not published")
	}
}

func TestRender_MultipleLinesPublishedSeparately(t *testing.T) {
	p := newFakePresenter()
	renderInto(t, p, []diag.Diagnostic{
		{Line: 0, Col: 0, Severity: diag.SevError, Message: "a"},
		{Line: 4, Col: 2, Severity: diag.SevWarn, Message: "b"},
		{Line: 4, Col: 6, Severity: diag.SevHint, Message: "c"},
	}, DefaultConfig())

	got := p.presents["lint"]
	if len(got) != 2 {
		t.Fatalf("annotated lines = %d, want 2", len(got))
	}
	if len(got[0]) != 1 {
		t.Errorf("line 0 virtual lines = %d, want 1", len(got[0]))
	}
	if len(got[4]) != 2 {
		t.Errorf("line 4 virtual lines = %d, want 2", len(got[4]))
	}
}

// Render with the real width oracle: a tab before the diagnostic column
// pushes the connector to the expanded cell position.
func TestRender_TabAwareOracle(t *testing.T) {
	set := source.NewBufferSet()
	id := set.AddVirtual("tab.txt", []byte("\tx = 1"))
	buf := set.Get(id)

	p := newFakePresenter()
	cfg := DefaultConfig()
	cfg.HighlightWholeLine = false
	err := Render(p, buf, "lint", id, []diag.Diagnostic{
		{Line: 0, Col: 1, Severity: diag.SevError, Message: "undefined"},
	}, cfg, testProfile(), testIcons())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	line := p.presents["lint"][0][0].Text()
	// tab expands to 8 cells, so the corner sits at display column 8
	if !strings.HasPrefix(line, strings.Repeat(" ", 8)+"└───") {
		t.Errorf("rendered line = %q", line)
	}
}
