package source

type (
	// FileID identifies a file within its FileSet, in insertion order.
	FileID uint32
	// FileFlags records how the content reached the set.
	FileFlags uint8
)

const (
	// FileVirtual marks content added from memory (tests, batches)
	// rather than loaded from disk.
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
)

// File holds the content and derived metadata of one source file.
// LineIdx caches newline offsets for line/column resolution.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol is a 1-based human-readable position.
type LineCol struct {
	Line uint32
	Col  uint32
}
