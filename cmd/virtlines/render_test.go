package main

import (
	"testing"

	"virtlines/internal/diag"
	"virtlines/internal/source"
)

// Diagnostics payloads may spell a path differently from the CLI argument;
// matching goes through the buffer set's normalized path index.
func TestMatchDiagnostics_NormalizesPaths(t *testing.T) {
	buffers := source.NewBufferSet()
	id := buffers.AddVirtual("src/a.txt", []byte("let x = y\n"))

	byFile := map[string][]diag.Diagnostic{
		"./src/a.txt": {{Line: 0, Col: 8, Severity: diag.SevError, Message: "undefined: y"}},
		"other.txt":   {{Line: 0, Col: 0, Severity: diag.SevWarn, Message: "ignored"}},
	}
	diagsFor := matchDiagnostics(buffers, byFile)

	if len(diagsFor) != 1 {
		t.Fatalf("expected diagnostics for 1 buffer, got %d", len(diagsFor))
	}
	got := diagsFor[id]
	if len(got) != 1 || got[0].Message != "undefined: y" {
		t.Fatalf("unexpected diagnostics for buffer: %+v", got)
	}
}
