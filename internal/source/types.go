package source

type (
	// BufferID uniquely identifies a text buffer within a BufferSet.
	BufferID uint32
	// BufferFlags encodes metadata about a buffer.
	BufferFlags uint8
)

const (
	// BufferVirtual indicates the buffer was added from memory (test, stdin, etc.).
	BufferVirtual BufferFlags = 1 << iota
	BufferHadBOM
	BufferNormalizedCRLF
	BufferRecomposedNFC
)

// Buffer captures metadata and content for a single text buffer.
type Buffer struct {
	ID      BufferID
	Path    string
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   BufferFlags
}
