package virtlines

import (
	"testing"

	"virtlines/internal/diag"
)

// asciiOracle treats every column as one display cell wide.
type asciiOracle struct{}

func (asciiOracle) CellDistance(line, colStart, colEnd int) int {
	if colEnd <= colStart {
		return 0
	}
	return colEnd - colStart
}

func kinds(stack lineStack) []elemKind {
	out := make([]elemKind, len(stack))
	for i, el := range stack {
		out[i] = el.kind
	}
	return out
}

func TestGroupByLine_SingleDiagnostic(t *testing.T) {
	diags := []diag.Diagnostic{
		{Line: 0, Col: 5, Severity: diag.SevError, Message: "bad type"},
	}
	stacks := groupByLine(diags, asciiOracle{})

	stack, ok := stacks[0]
	if !ok {
		t.Fatal("no stack for line 0")
	}
	if len(stack) != 2 {
		t.Fatalf("stack length = %d, want 2", len(stack))
	}
	if stack[0].kind != elemSpacing || stack[0].width != 5 {
		t.Errorf("leading element = kind %d width %d, want spacing of 5", stack[0].kind, stack[0].width)
	}
	if stack[1].kind != elemDiagnostic || stack[1].diag.Message != "bad type" {
		t.Errorf("marker element wrong: %+v", stack[1])
	}
}

func TestGroupByLine_GapMinusConnectorCell(t *testing.T) {
	diags := []diag.Diagnostic{
		{Line: 1, Col: 3, Severity: diag.SevError, Message: "a"},
		{Line: 1, Col: 9, Severity: diag.SevWarn, Message: "b"},
	}
	stack := groupByLine(diags, asciiOracle{})[1]

	want := []elemKind{elemSpacing, elemDiagnostic, elemSpacing, elemDiagnostic}
	got := kinds(stack)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("stack kinds = %v, want %v", got, want)
		}
	}
	// cells spanned by [3, 9), minus the connector cell at col 3
	if stack[2].width != 5 {
		t.Errorf("gap width = %d, want 5", stack[2].width)
	}
}

func TestGroupByLine_AdjacentColumnsClampToZero(t *testing.T) {
	diags := []diag.Diagnostic{
		{Line: 0, Col: 3, Severity: diag.SevError, Message: "a"},
		{Line: 0, Col: 4, Severity: diag.SevWarn, Message: "b"},
	}
	stack := groupByLine(diags, asciiOracle{})[0]
	if stack[2].kind != elemSpacing {
		t.Fatalf("expected spacing between adjacent markers, got kind %d", stack[2].kind)
	}
	if stack[2].width != 0 {
		t.Errorf("adjacent gap width = %d, want 0", stack[2].width)
	}
}

func TestGroupByLine_SharedColumnBecomesOverlap(t *testing.T) {
	diags := []diag.Diagnostic{
		{Line: 2, Col: 3, Severity: diag.SevError, Message: "first"},
		{Line: 2, Col: 3, Severity: diag.SevWarn, Message: "second"},
	}
	stack := groupByLine(diags, asciiOracle{})[2]

	want := []elemKind{elemSpacing, elemDiagnostic, elemOverlap, elemDiagnostic}
	got := kinds(stack)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("stack kinds = %v, want %v", got, want)
		}
	}
	if stack[2].sev != diag.SevWarn {
		t.Errorf("overlap severity = %v, want %v", stack[2].sev, diag.SevWarn)
	}
}

func TestGroupByLine_BlankMessageBecomesBlankMarker(t *testing.T) {
	diags := []diag.Diagnostic{
		{Line: 0, Col: 2, Severity: diag.SevHint, Message: "   "},
		{Line: 0, Col: 6, Severity: diag.SevError, Message: "real"},
	}
	stack := groupByLine(diags, asciiOracle{})[0]

	want := []elemKind{elemSpacing, elemBlank, elemSpacing, elemDiagnostic}
	got := kinds(stack)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("stack kinds = %v, want %v", got, want)
		}
	}
}

func TestGroupByLine_MultipleLines(t *testing.T) {
	diags := []diag.Diagnostic{
		{Line: 0, Col: 1, Severity: diag.SevError, Message: "a"},
		{Line: 3, Col: 2, Severity: diag.SevWarn, Message: "b"},
		{Line: 3, Col: 7, Severity: diag.SevInfo, Message: "c"},
	}
	stacks := groupByLine(diags, asciiOracle{})
	if len(stacks) != 2 {
		t.Fatalf("got %d stacks, want 2", len(stacks))
	}
	if len(stacks[0]) != 2 {
		t.Errorf("line 0 stack length = %d, want 2", len(stacks[0]))
	}
	if len(stacks[3]) != 4 {
		t.Errorf("line 3 stack length = %d, want 4", len(stacks[3]))
	}
	// a new line resets the margin: spacing measured from column 0
	if stacks[3][0].width != 2 {
		t.Errorf("line 3 margin = %d, want 2", stacks[3][0].width)
	}
}

// Between consecutive markers on one line there is exactly one spacing or
// overlap element, plus the line's leading margin.
func TestGroupByLine_ElementCountInvariant(t *testing.T) {
	diags := []diag.Diagnostic{
		{Line: 5, Col: 0, Message: "a"},
		{Line: 5, Col: 4, Message: "b"},
		{Line: 5, Col: 4, Message: "c"},
		{Line: 5, Col: 11, Message: "d"},
	}
	stack := groupByLine(diags, asciiOracle{})[5]

	markers, separators := 0, 0
	for _, el := range stack {
		switch el.kind {
		case elemDiagnostic, elemBlank:
			markers++
		case elemSpacing, elemOverlap:
			separators++
		}
	}
	if markers != len(diags) {
		t.Errorf("markers = %d, want %d", markers, len(diags))
	}
	if separators != len(diags) {
		t.Errorf("separators = %d, want %d (margin + between-marker gaps)", separators, len(diags))
	}
}
