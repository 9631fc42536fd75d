package uef

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Compression algorithm names as spelled in file headers. Matching is
// exact: exporters write the names uppercase.
const (
	CompressionZstd = "ZSTD"
	CompressionGzip = "GZIP"
)

// decompress inflates one compressed payload region. The result is a
// fresh buffer owned by the caller; no decoder state outlives the call.
func decompress(algorithm string, data []byte) ([]byte, error) {
	switch algorithm {
	case CompressionZstd:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, fmt.Errorf("creating zstd decoder: %w", err)
		}
		defer dec.Close()
		out, err := dec.DecodeAll(data, nil)
		if err != nil {
			return nil, fmt.Errorf("decompressing ZSTD payload: %w", err)
		}
		return out, nil

	case CompressionGzip:
		zr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("decompressing GZIP payload: %w", err)
		}
		defer zr.Close()
		out, err := io.ReadAll(zr)
		if err != nil {
			return nil, fmt.Errorf("decompressing GZIP payload: %w", err)
		}
		return out, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedCompression, algorithm)
	}
}
