package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vmihailenco/msgpack/v5"

	"virtlines/internal/diag"
)

// diagnosticPayload is one entry of a diagnostics file.
type diagnosticPayload struct {
	File     string `json:"file" msgpack:"file"`
	Line     int    `json:"line" msgpack:"line"`
	Col      int    `json:"col" msgpack:"col"`
	Severity string `json:"severity" msgpack:"severity"`
	Message  string `json:"message" msgpack:"message"`
	Code     string `json:"code,omitempty" msgpack:"code"`
}

// diagnosticsEnvelope wraps msgpack payloads with a schema version so stale
// files produced by older builds are rejected instead of misread.
type diagnosticsEnvelope struct {
	SchemaVersion uint32              `msgpack:"schema_version"`
	Items         []diagnosticPayload `msgpack:"items"`
}

const diagnosticsSchemaVersion uint32 = 1

const maxDiagnosticsPerFile = 4096

// loadDiagnostics reads one or more diagnostics files and accumulates their
// entries into per-source-file bags. Entries from later files merge into the
// earlier ones and exact repeats are dropped, so overlapping tool outputs can
// be fed together.
func loadDiagnostics(paths []string) (map[string][]diag.Diagnostic, error) {
	total := make(map[string]*diag.Bag)
	for _, path := range paths {
		byFile, err := loadDiagnosticsFile(path)
		if err != nil {
			return nil, err
		}
		for file, bag := range byFile {
			if existing, ok := total[file]; ok {
				existing.Merge(bag)
			} else {
				total[file] = bag
			}
		}
	}

	errFiles, warnFiles := 0, 0
	out := make(map[string][]diag.Diagnostic, len(total))
	for file, bag := range total {
		bag.Dedup()
		switch {
		case bag.HasErrors():
			errFiles++
		case bag.HasWarnings():
			warnFiles++
		}
		out[file] = bag.Items()
	}
	logger.Debug("diagnostics loaded",
		"files", len(total), "with_errors", errFiles, "with_warnings", warnFiles)
	return out, nil
}

// loadDiagnosticsFile parses a single diagnostics file. The format is chosen
// by extension: .msgpack for the binary envelope, anything else is parsed as
// a JSON array.
func loadDiagnosticsFile(path string) (map[string]*diag.Bag, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read diagnostics file: %w", err)
	}

	var payloads []diagnosticPayload
	if strings.EqualFold(filepath.Ext(path), ".msgpack") {
		var env diagnosticsEnvelope
		if err := msgpack.Unmarshal(data, &env); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", path, err)
		}
		if env.SchemaVersion != diagnosticsSchemaVersion {
			return nil, fmt.Errorf("diagnostics schema version %d is not supported (want %d)", env.SchemaVersion, diagnosticsSchemaVersion)
		}
		payloads = env.Items
	} else {
		if err := json.Unmarshal(data, &payloads); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", path, err)
		}
	}

	return toBags(payloads)
}

func toBags(payloads []diagnosticPayload) (map[string]*diag.Bag, error) {
	byFile := make(map[string]*diag.Bag)
	for i, p := range payloads {
		if p.File == "" {
			return nil, fmt.Errorf("diagnostic %d has no file", i)
		}
		if p.Line < 0 || p.Col < 0 {
			return nil, fmt.Errorf("diagnostic %d has negative position %d:%d", i, p.Line, p.Col)
		}
		sev, err := diag.ParseSeverity(p.Severity)
		if err != nil {
			return nil, fmt.Errorf("diagnostic %d: %w", i, err)
		}
		bag := byFile[p.File]
		if bag == nil {
			bag = diag.NewBag(maxDiagnosticsPerFile)
			byFile[p.File] = bag
		}
		if !bag.Add(diag.Diagnostic{
			Line:     p.Line,
			Col:      p.Col,
			Severity: sev,
			Message:  p.Message,
			Code:     p.Code,
		}) {
			logger.Warn("diagnostics truncated", "file", p.File, "cap", bag.Cap())
		}
	}
	return byFile, nil
}
