package term

import (
	"os"
	"sort"

	"golang.org/x/term"

	"virtlines/internal/source"
	"virtlines/internal/virtlines"
)

type storeKey struct {
	buf source.BufferID
	ns  virtlines.NamespaceID
}

// Store is the bundled Presenter implementation: an in-memory annotation
// store keyed by (buffer, namespace). Each render call fully replaces a
// key's annotations, matching the renderer's idempotency contract. Store is
// not safe for concurrent use; give each goroutine its own.
type Store struct {
	buffers *source.BufferSet
	width   func(source.BufferID) (int, bool)
	batches map[storeKey]virtlines.RenderBatch
}

// NewStore builds a store over the given buffers. widthFn answers
// SmallestViewportWidth; nil means "no viewport", which makes AutoWidth fall
// back to the configured width.
func NewStore(buffers *source.BufferSet, widthFn func(source.BufferID) (int, bool)) *Store {
	return &Store{
		buffers: buffers,
		width:   widthFn,
		batches: make(map[storeKey]virtlines.RenderBatch),
	}
}

// TerminalWidth is a widthFn reporting the controlling terminal's width for
// every buffer, for CLI use where stdout is the single viewport.
func TerminalWidth(source.BufferID) (int, bool) {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0, false
	}
	w, _, err := term.GetSize(fd)
	if err != nil || w <= 0 {
		return 0, false
	}
	return w, true
}

func (s *Store) IsLoaded(buf source.BufferID) bool {
	return s.buffers != nil && s.buffers.IsLoaded(buf)
}

func (s *Store) SmallestViewportWidth(buf source.BufferID) (int, bool) {
	if s.width == nil {
		return 0, false
	}
	return s.width(buf)
}

func (s *Store) Clear(buf source.BufferID, ns virtlines.NamespaceID) {
	delete(s.batches, storeKey{buf: buf, ns: ns})
}

func (s *Store) Present(buf source.BufferID, ns virtlines.NamespaceID, line int, lines []virtlines.VirtualLine) {
	key := storeKey{buf: buf, ns: ns}
	batch := s.batches[key]
	if batch == nil {
		batch = make(virtlines.RenderBatch)
		s.batches[key] = batch
	}
	batch[line] = lines
}

// Lines returns the virtual lines anchored below the given source line, in
// their publish order.
func (s *Store) Lines(buf source.BufferID, ns virtlines.NamespaceID, line int) []virtlines.VirtualLine {
	return s.batches[storeKey{buf: buf, ns: ns}][line]
}

// AnnotatedLines returns the sorted source line numbers that currently have
// annotations under the key.
func (s *Store) AnnotatedLines(buf source.BufferID, ns virtlines.NamespaceID) []int {
	batch := s.batches[storeKey{buf: buf, ns: ns}]
	lines := make([]int, 0, len(batch))
	for line := range batch {
		lines = append(lines, line)
	}
	sort.Ints(lines)
	return lines
}
