// Package uef decodes the UEFormat binary asset container and its
// UEModel mesh payload into plain geometry arrays.
//
// The container is little-endian throughout: an eight byte magic, a
// short header, then either a raw or a whole-payload compressed body of
// sections. Sections, LOD records, and chunks all declare their own
// byte lengths, and the declared lengths drive cursor advancement, so
// tags written by newer exporters are skipped losslessly.
package uef

import (
	"errors"
	"fmt"
	"os"
)

// uefMagic opens every UEFormat file, written as eight raw bytes with
// no length prefix.
const uefMagic = "UEFORMAT"

// ModelIdentifier marks a payload carrying mesh data. Files with other
// identifiers decode to a header-only Model.
const ModelIdentifier = "UEMODEL"

// Serialization milestones named by the header version byte.
const (
	VersionSerializeBinormalSign          = 1
	VersionAddMultipleVertexColors        = 2
	VersionAddConvexCollisionGeom         = 3
	VersionLevelOfDetailFormatRestructure = 4
	VersionSerializeVirtualBones          = 5

	// Files older than the LOD restructure carry a single-mesh layout
	// this package does not decode.
	MinSupportedVersion = VersionLevelOfDetailFormatRestructure
	MaxSupportedVersion = VersionSerializeVirtualBones
)

// Decoding errors.
var (
	ErrInvalidMagic             = errors.New("invalid magic: expected 'UEFORMAT'")
	ErrUnsupportedFormat        = errors.New("payload is not a mesh")
	ErrUnsupportedVersion       = errors.New("unsupported file version")
	ErrUnsupportedCompression   = errors.New("unsupported compression algorithm")
	ErrDecompressedSizeMismatch = errors.New("decompressed size mismatch")
	ErrTruncated                = errors.New("truncated data")
	ErrMalformedChunk           = errors.New("malformed chunk")
	ErrMalformedLOD             = errors.New("malformed LOD record")
	ErrMalformedModel           = errors.New("malformed model payload")
)

// Parse decodes a UEFormat file held in memory. The returned Model owns
// all of its data; nothing aliases the input slice. On any mid-decode
// failure no partial Model escapes.
func Parse(data []byte) (*Model, error) {
	r := newReader(data)

	magic, err := r.readN(len(uefMagic))
	if err != nil {
		return nil, fmt.Errorf("reading magic: %w", err)
	}
	if string(magic) != uefMagic {
		return nil, ErrInvalidMagic
	}

	var h Header
	if h.Identifier, err = r.readString(); err != nil {
		return nil, fmt.Errorf("reading identifier: %w", err)
	}
	if h.Version, err = r.readU8(); err != nil {
		return nil, fmt.Errorf("reading version: %w", err)
	}
	if h.Version < MinSupportedVersion || h.Version > MaxSupportedVersion {
		return nil, fmt.Errorf("%w: %d (supported: %d through %d)",
			ErrUnsupportedVersion, h.Version, MinSupportedVersion, MaxSupportedVersion)
	}
	if h.ObjectName, err = r.readString(); err != nil {
		return nil, fmt.Errorf("reading object name: %w", err)
	}
	if h.IsCompressed, err = r.readBool(); err != nil {
		return nil, fmt.Errorf("reading compression flag: %w", err)
	}

	payload := r
	if h.IsCompressed {
		if h.CompressionType, err = r.readString(); err != nil {
			return nil, fmt.Errorf("reading compression type: %w", err)
		}
		if h.UncompressedSize, err = r.readI32(); err != nil {
			return nil, fmt.Errorf("reading uncompressed size: %w", err)
		}
		if h.CompressedSize, err = r.readI32(); err != nil {
			return nil, fmt.Errorf("reading compressed size: %w", err)
		}
		if h.CompressedSize < 0 || int(h.CompressedSize) > r.remaining() {
			return nil, fmt.Errorf("%w: compressed region declares %d bytes, %d remain",
				ErrTruncated, h.CompressedSize, r.remaining())
		}
		compressed, err := r.readN(int(h.CompressedSize))
		if err != nil {
			return nil, err
		}
		raw, err := decompress(h.CompressionType, compressed)
		if err != nil {
			return nil, err
		}
		if int64(len(raw)) != int64(h.UncompressedSize) {
			return nil, fmt.Errorf("%w: got %d bytes, header declares %d",
				ErrDecompressedSizeMismatch, len(raw), h.UncompressedSize)
		}
		payload = newReader(raw)
	}

	model := &Model{Header: h}
	if h.Identifier != ModelIdentifier {
		// Unknown payload kinds are not an error: the header survives
		// and the model carries no LODs.
		return model, nil
	}
	if err := decodeModel(payload, model); err != nil {
		return nil, err
	}
	return model, nil
}

// ParseFile decodes a UEFormat file from disk.
func ParseFile(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading model file: %w", err)
	}
	return Parse(data)
}
