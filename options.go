package lz77

const (
	// DefaultMinMatchLength is the shortest run considered a match.
	DefaultMinMatchLength = 12
	// DefaultTableSize is the number of slots in the lookup table.
	DefaultTableSize = 1024
	// DefaultMaxDecodedLen bounds the output allocation of Decompress.
	DefaultMaxDecodedLen = 1 << 30
)

// Mode selects how hard the match finder works.
type Mode int

const (
	// ModeFast hashes a short prefix of the window and takes the first
	// candidate that is long enough.
	ModeFast Mode = iota
	// ModeThorough hashes the whole MinMatchLength window and scans the
	// entire table for the candidate with the best quality.
	ModeThorough
)

func (m Mode) String() string {
	switch m {
	case ModeFast:
		return "fast"
	case ModeThorough:
		return "thorough"
	}
	return "unknown"
}

// CompressOptions configures compression. Fields that are zero or negative
// are replaced with their defaults.
type CompressOptions struct {
	// MinMatchLength is the shortest run encoded as a back-reference.
	// The default is 12.
	MinMatchLength int

	// TableSize is the number of slots in the lookup table. Larger tables
	// may find better matches at the cost of compression time.
	// The default is 1024.
	TableSize int

	Mode Mode
}

// DefaultCompressOptions returns options for fast compression with the
// default match length and table size.
func DefaultCompressOptions() *CompressOptions {
	return &CompressOptions{
		MinMatchLength: DefaultMinMatchLength,
		TableSize:      DefaultTableSize,
		Mode:           ModeFast,
	}
}

func (o *CompressOptions) normalize() CompressOptions {
	var n CompressOptions
	if o != nil {
		n = *o
	}
	if n.MinMatchLength <= 0 {
		n.MinMatchLength = DefaultMinMatchLength
	}
	if n.TableSize <= 0 {
		n.TableSize = DefaultTableSize
	}
	if n.Mode != ModeThorough {
		n.Mode = ModeFast
	}
	return n
}

// DecompressOptions configures decompression.
type DecompressOptions struct {
	// MaxDecodedLen is the largest uncompressed length a header may declare.
	// The default is DefaultMaxDecodedLen.
	MaxDecodedLen int
}

// DefaultDecompressOptions returns options with the default allocation limit.
func DefaultDecompressOptions() *DecompressOptions {
	return &DecompressOptions{MaxDecodedLen: DefaultMaxDecodedLen}
}
