package compress

// ZstdCompressor gives BYTEA its best-ratio codec, for properties where
// storage cost matters more than compression speed.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
