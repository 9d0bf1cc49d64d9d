package source

import (
	"crypto/sha256"
	"fmt"
	"os"

	"fortio.org/safecast"
	"golang.org/x/text/unicode/norm"
)

// BufferSet manages a collection of text buffers and answers the width
// queries the annotation renderer needs.
type BufferSet struct {
	buffers []Buffer
	index   map[string]BufferID // path -> id
	baseDir string
}

// NewBufferSet creates a new empty BufferSet.
func NewBufferSet() *BufferSet {
	return &BufferSet{
		buffers: make([]Buffer, 0),
		index:   make(map[string]BufferID),
	}
}

// NewBufferSetWithBase creates a BufferSet with the given base directory.
func NewBufferSetWithBase(baseDir string) *BufferSet {
	return &BufferSet{
		buffers: make([]Buffer, 0),
		index:   make(map[string]BufferID),
		baseDir: baseDir,
	}
}

// BaseDir returns the current base directory, falling back to the working
// directory when none was set.
func (set *BufferSet) BaseDir() string {
	if set.baseDir == "" {
		if wd, err := os.Getwd(); err == nil {
			return wd
		}
	}
	return set.baseDir
}

// Add stores a buffer from normalized bytes, computes LineIdx and Hash, and
// returns a new BufferID. It always creates a new BufferID even if a buffer
// with the same path already exists; the index tracks the latest version.
func (set *BufferSet) Add(path string, content []byte, flags BufferFlags) BufferID {
	hash := sha256.Sum256(content)
	lineIdx := buildLineIndex(content)
	normalizedPath := normalizePath(path)

	lenBuffers, err := safecast.Conv[uint32](len(set.buffers))
	if err != nil {
		panic(fmt.Errorf("buffer count overflow: %w", err))
	}
	id := BufferID(lenBuffers)
	set.buffers = append(set.buffers, Buffer{
		ID:      id,
		Path:    normalizedPath,
		Content: content,
		LineIdx: lineIdx,
		Hash:    hash,
		Flags:   flags,
	})
	set.index[normalizedPath] = id
	return id
}

// Load reads a file from disk, strips the BOM, normalizes CRLF and recomposes
// to NFC, then calls Add. Diagnostic columns are rune offsets, so content must
// be in a single canonical form before any width math happens.
func (set *BufferSet) Load(path string) (BufferID, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	content, hadBOM := removeBOM(content)
	content, hadCRLF := normalizeCRLF(content)

	flags := BufferFlags(0)
	if hadBOM {
		flags |= BufferHadBOM
	}
	if hadCRLF {
		flags |= BufferNormalizedCRLF
	}
	if !norm.NFC.IsNormal(content) {
		content = norm.NFC.Bytes(content)
		flags |= BufferRecomposedNFC
	}
	return set.Add(path, content, flags), nil
}

// AddVirtual adds a virtual buffer (stdin, test, or generated) with the
// BufferVirtual flag.
func (set *BufferSet) AddVirtual(name string, content []byte) BufferID {
	return set.Add(name, content, BufferVirtual)
}

// Get returns the buffer for the given ID, or nil when the ID is unknown.
func (set *BufferSet) Get(id BufferID) *Buffer {
	if int(id) >= len(set.buffers) {
		return nil
	}
	return &set.buffers[id]
}

// GetByPath returns the latest buffer for the given path, if loaded.
func (set *BufferSet) GetByPath(path string) (*Buffer, bool) {
	if id, ok := set.index[normalizePath(path)]; ok {
		return &set.buffers[id], true
	}
	return nil, false
}

// IsLoaded reports whether the ID refers to a buffer in this set.
func (set *BufferSet) IsLoaded(id BufferID) bool {
	return int(id) < len(set.buffers)
}

// Len returns the number of buffers in the set.
func (set *BufferSet) Len() int {
	return len(set.buffers)
}

// LineCount returns the number of lines in the buffer. An empty buffer has
// one (empty) line.
func (b *Buffer) LineCount() int {
	return len(b.LineIdx) + 1
}

// LineText returns the text of the 0-based line, without the trailing
// newline. Out-of-range lines yield "".
func (b *Buffer) LineText(line int) string {
	if b == nil || line < 0 || line >= b.LineCount() {
		return ""
	}

	var start uint32
	if line > 0 {
		start = b.LineIdx[line-1] + 1
	}

	lenContent, err := safecast.Conv[uint32](len(b.Content))
	if err != nil {
		panic(fmt.Errorf("content length overflow: %w", err))
	}
	end := lenContent
	if line < len(b.LineIdx) {
		end = b.LineIdx[line]
	}

	if start >= lenContent {
		return ""
	}
	if end > lenContent {
		end = lenContent
	}
	return string(b.Content[start:end])
}
