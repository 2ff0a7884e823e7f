// Package compression provides pluggable byte-level compression for
// persisted snapshots.
package compression

// Compressor compresses and decompresses whole snapshots.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
	Decompress(data []byte) ([]byte, error)
}

// NopCompressor passes data through unchanged.
type NopCompressor struct{}

func (NopCompressor) Compress(data []byte) ([]byte, error)   { return data, nil }
func (NopCompressor) Decompress(data []byte) ([]byte, error) { return data, nil }

// ForName maps a config value to a Compressor. Unknown names get no compression.
func ForName(name string) Compressor {
	switch name {
	case "zstd":
		return ZstdCompressor{}
	case "gzip":
		return GzipCompressor{}
	default:
		return NopCompressor{}
	}
}
