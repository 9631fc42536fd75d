package uef

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Section and chunk tags of the model payload.
const (
	sectionLODs = "LODS"

	chunkVertices     = "VERTICES"
	chunkIndices      = "INDICES"
	chunkNormals      = "NORMALS"
	chunkTangents     = "TANGENTS"
	chunkVertexColors = "VERTEXCOLORS"
	chunkTexCoords    = "TEXCOORDS"
	chunkMaterials    = "MATERIALS"
	chunkWeights      = "WEIGHTS"
	chunkMorphTargets = "MORPHTARGETS"
)

// Fixed wire sizes of array chunk elements. Weights are packed on the
// wire, not struct-padded.
const (
	positionSize   = 12 // 3 x float32
	indexSize      = 4  // int32
	normalSize     = 16 // 4 x float32, sign first
	colorSize      = 4  // 4 x uint8
	texCoordSize   = 8  // 2 x float32
	weightSize     = 10 // int16 + int32 + float32
	morphDeltaSize = 28 // 2 x 3 float32 + int32
)

// decodeModel walks payload sections until the buffer is exhausted.
// Only LODS is decoded; every other section is skipped over its
// declared byte length.
func decodeModel(r *reader, m *Model) error {
	for r.remaining() > 0 {
		name, err := r.readString()
		if err != nil {
			return fmt.Errorf("reading section name: %w", err)
		}
		count, err := r.readI32()
		if err != nil {
			return fmt.Errorf("reading %s section count: %w", name, err)
		}
		byteLength, err := r.readI32()
		if err != nil {
			return fmt.Errorf("reading %s section length: %w", name, err)
		}

		if name == sectionLODs {
			if count < 0 {
				return fmt.Errorf("%w: LODS section count %d", ErrMalformedModel, count)
			}
			for i := int32(0); i < count; i++ {
				lod, err := decodeLOD(r)
				if err != nil {
					return fmt.Errorf("decoding LOD %d: %w", i, err)
				}
				m.LODs = append(m.LODs, *lod)
			}
			continue
		}

		if byteLength < 0 || int(byteLength) > r.remaining() {
			return fmt.Errorf("%w: section %q declares %d bytes, %d remain",
				ErrMalformedModel, name, byteLength, r.remaining())
		}
		if err := r.skip(int(byteLength)); err != nil {
			return err
		}
	}
	return nil
}

// decodeLOD reads one LOD record: a name, a declared region length, and
// chunks filling the region exactly.
func decodeLOD(r *reader) (*LOD, error) {
	name, err := r.readString()
	if err != nil {
		return nil, fmt.Errorf("reading LOD name: %w", err)
	}
	regionLen, err := r.readI32()
	if err != nil {
		return nil, fmt.Errorf("reading LOD %q region length: %w", name, err)
	}
	if regionLen < 0 {
		return nil, fmt.Errorf("%w: LOD %q declares %d region bytes", ErrMalformedLOD, name, regionLen)
	}
	region, err := r.sub(int(regionLen))
	if err != nil {
		return nil, fmt.Errorf("LOD %q region: %w", name, err)
	}

	lod := &LOD{Name: name}
	for region.remaining() > 0 {
		if err := decodeChunk(region, lod); err != nil {
			return nil, fmt.Errorf("LOD %q: %w", name, err)
		}
	}
	return lod, nil
}

// decodeChunk reads one chunk header and dispatches on its tag. The
// declared byte length is authoritative for every tag, recognized or
// not: the cursor always lands exactly past the declared payload.
func decodeChunk(r *reader, lod *LOD) error {
	tag, err := r.readString()
	if err != nil {
		return fmt.Errorf("%w: reading chunk tag: %v", ErrMalformedLOD, err)
	}
	count, err := r.readI32()
	if err != nil {
		return fmt.Errorf("%w: reading %s chunk count: %v", ErrMalformedLOD, tag, err)
	}
	byteLength, err := r.readI32()
	if err != nil {
		return fmt.Errorf("%w: reading %s chunk length: %v", ErrMalformedLOD, tag, err)
	}
	if byteLength < 0 {
		return fmt.Errorf("%w: %s chunk declares %d bytes", ErrMalformedChunk, tag, byteLength)
	}
	if int(byteLength) > r.remaining() {
		return fmt.Errorf("%w: %s chunk declares %d bytes, %d remain in region",
			ErrMalformedLOD, tag, byteLength, r.remaining())
	}
	body, err := r.sub(int(byteLength))
	if err != nil {
		return err
	}

	switch tag {
	case chunkVertices:
		lod.Positions, err = decodeVec3s(body, count)
	case chunkIndices:
		lod.Indices, err = decodeIndices(body, count)
	case chunkNormals:
		lod.Normals, err = decodeVec4s(body, count)
	case chunkVertexColors:
		lod.VertexColors, err = decodeVertexColors(body, count)
	case chunkTexCoords:
		lod.TexCoords, err = decodeTexCoords(body, count)
	case chunkMaterials:
		lod.Materials, err = decodeMaterials(body, count)
	case chunkWeights:
		lod.Weights, err = decodeWeights(body, count)
	case chunkMorphTargets:
		lod.Morphs, err = decodeMorphTargets(body, count)
	default:
		// TANGENTS and anything unrecognized: the payload was already
		// consumed by the sub carve above.
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformedChunk, tag, err)
	}
	return nil
}

// decodeVec3s reads count three-float vectors from a chunk body.
func decodeVec3s(r *reader, count int32) ([][3]float32, error) {
	if count < 0 || int64(count)*positionSize > int64(r.remaining()) {
		return nil, fmt.Errorf("element count %d exceeds %d payload bytes", count, r.remaining())
	}
	b, err := r.readN(int(count) * positionSize)
	if err != nil {
		return nil, err
	}
	out := make([][3]float32, count)
	for i := range out {
		o := i * positionSize
		out[i] = [3]float32{f32le(b[o:]), f32le(b[o+4:]), f32le(b[o+8:])}
	}
	return out, nil
}

// decodeVec4s reads count four-float vectors from a chunk body,
// preserving the on-wire component order.
func decodeVec4s(r *reader, count int32) ([][4]float32, error) {
	if count < 0 || int64(count)*normalSize > int64(r.remaining()) {
		return nil, fmt.Errorf("element count %d exceeds %d payload bytes", count, r.remaining())
	}
	b, err := r.readN(int(count) * normalSize)
	if err != nil {
		return nil, err
	}
	out := make([][4]float32, count)
	for i := range out {
		o := i * normalSize
		out[i] = [4]float32{f32le(b[o:]), f32le(b[o+4:]), f32le(b[o+8:]), f32le(b[o+12:])}
	}
	return out, nil
}

func decodeIndices(r *reader, count int32) ([]uint32, error) {
	if count < 0 || int64(count)*indexSize > int64(r.remaining()) {
		return nil, fmt.Errorf("element count %d exceeds %d payload bytes", count, r.remaining())
	}
	b, err := r.readN(int(count) * indexSize)
	if err != nil {
		return nil, err
	}
	out := make([]uint32, count)
	for i := range out {
		out[i] = binary.LittleEndian.Uint32(b[i*indexSize:])
	}
	return out, nil
}

func decodeWeights(r *reader, count int32) ([]VertexWeight, error) {
	if count < 0 || int64(count)*weightSize > int64(r.remaining()) {
		return nil, fmt.Errorf("element count %d exceeds %d payload bytes", count, r.remaining())
	}
	b, err := r.readN(int(count) * weightSize)
	if err != nil {
		return nil, err
	}
	out := make([]VertexWeight, count)
	for i := range out {
		o := i * weightSize
		out[i] = VertexWeight{
			BoneIndex:   int16(binary.LittleEndian.Uint16(b[o:])),
			VertexIndex: int32(binary.LittleEndian.Uint32(b[o+2:])),
			Weight:      f32le(b[o+6:]),
		}
	}
	return out, nil
}

// decodeVertexColors reads count named color channels. Each channel is
// a name, an element count, and that many RGBA quads.
func decodeVertexColors(r *reader, count int32) ([]VertexColorChannel, error) {
	// A channel occupies at least its two length prefixes.
	if count < 0 || int64(count)*8 > int64(r.remaining()) {
		return nil, fmt.Errorf("channel count %d exceeds %d payload bytes", count, r.remaining())
	}
	out := make([]VertexColorChannel, 0, count)
	for i := int32(0); i < count; i++ {
		name, err := r.readString()
		if err != nil {
			return nil, fmt.Errorf("channel %d name: %w", i, err)
		}
		n, err := r.readI32()
		if err != nil {
			return nil, fmt.Errorf("channel %q count: %w", name, err)
		}
		if n < 0 || int64(n)*colorSize > int64(r.remaining()) {
			return nil, fmt.Errorf("channel %q: color count %d exceeds %d payload bytes", name, n, r.remaining())
		}
		b, err := r.readN(int(n) * colorSize)
		if err != nil {
			return nil, err
		}
		colors := make([][4]uint8, n)
		for j := range colors {
			copy(colors[j][:], b[j*colorSize:])
		}
		out = append(out, VertexColorChannel{Name: name, Colors: colors})
	}
	return out, nil
}

// decodeTexCoords reads count UV channels. Each channel is an element
// count followed by that many float pairs.
func decodeTexCoords(r *reader, count int32) ([][][2]float32, error) {
	if count < 0 || int64(count)*4 > int64(r.remaining()) {
		return nil, fmt.Errorf("channel count %d exceeds %d payload bytes", count, r.remaining())
	}
	out := make([][][2]float32, 0, count)
	for i := int32(0); i < count; i++ {
		n, err := r.readI32()
		if err != nil {
			return nil, fmt.Errorf("channel %d count: %w", i, err)
		}
		if n < 0 || int64(n)*texCoordSize > int64(r.remaining()) {
			return nil, fmt.Errorf("channel %d: element count %d exceeds %d payload bytes", i, n, r.remaining())
		}
		b, err := r.readN(int(n) * texCoordSize)
		if err != nil {
			return nil, err
		}
		uvs := make([][2]float32, n)
		for j := range uvs {
			o := j * texCoordSize
			uvs[j] = [2]float32{f32le(b[o:]), f32le(b[o+4:])}
		}
		out = append(out, uvs)
	}
	return out, nil
}

// decodeMaterials reads count material slots, each a name and the
// triangle range it covers.
func decodeMaterials(r *reader, count int32) ([]Material, error) {
	// Name prefix plus two int32 fields at minimum.
	if count < 0 || int64(count)*12 > int64(r.remaining()) {
		return nil, fmt.Errorf("material count %d exceeds %d payload bytes", count, r.remaining())
	}
	out := make([]Material, 0, count)
	for i := int32(0); i < count; i++ {
		name, err := r.readString()
		if err != nil {
			return nil, fmt.Errorf("material %d name: %w", i, err)
		}
		first, err := r.readI32()
		if err != nil {
			return nil, fmt.Errorf("material %q first index: %w", name, err)
		}
		num, err := r.readI32()
		if err != nil {
			return nil, fmt.Errorf("material %q face count: %w", name, err)
		}
		out = append(out, Material{Name: name, FirstIndex: first, NumFaces: num})
	}
	return out, nil
}

// decodeMorphTargets reads count morph targets, each a name and a list
// of vertex displacements.
func decodeMorphTargets(r *reader, count int32) ([]MorphTarget, error) {
	if count < 0 || int64(count)*8 > int64(r.remaining()) {
		return nil, fmt.Errorf("morph count %d exceeds %d payload bytes", count, r.remaining())
	}
	out := make([]MorphTarget, 0, count)
	for i := int32(0); i < count; i++ {
		name, err := r.readString()
		if err != nil {
			return nil, fmt.Errorf("morph %d name: %w", i, err)
		}
		n, err := r.readI32()
		if err != nil {
			return nil, fmt.Errorf("morph %q delta count: %w", name, err)
		}
		if n < 0 || int64(n)*morphDeltaSize > int64(r.remaining()) {
			return nil, fmt.Errorf("morph %q: delta count %d exceeds %d payload bytes", name, n, r.remaining())
		}
		b, err := r.readN(int(n) * morphDeltaSize)
		if err != nil {
			return nil, err
		}
		deltas := make([]MorphDelta, n)
		for j := range deltas {
			o := j * morphDeltaSize
			deltas[j] = MorphDelta{
				PositionDelta: [3]float32{f32le(b[o:]), f32le(b[o+4:]), f32le(b[o+8:])},
				NormalDelta:   [3]float32{f32le(b[o+12:]), f32le(b[o+16:]), f32le(b[o+20:])},
				VertexIndex:   int32(binary.LittleEndian.Uint32(b[o+24:])),
			}
		}
		out = append(out, MorphTarget{Name: name, Deltas: deltas})
	}
	return out, nil
}

// f32le decodes a little-endian float32 from the start of b.
func f32le(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}
