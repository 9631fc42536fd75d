//go:build ignore

// This program generates a small sample model file for manual testing
// of the decoder and the CLI. Run with: go run generate.go
package main

import (
	"bytes"
	"encoding/binary"
	"math"
	"os"

	"github.com/klauspost/compress/zstd"
)

const magic = "UEFORMAT"

func main() {
	payload := buildPayload()

	enc, err := zstd.NewWriter(nil)
	if err != nil {
		panic(err)
	}
	compressed := enc.EncodeAll(payload, nil)
	enc.Close()

	var f bytes.Buffer
	f.WriteString(magic)
	putString(&f, "UEMODEL")
	f.WriteByte(5) // version
	putString(&f, "Cube")
	f.WriteByte(1) // compressed
	putString(&f, "ZSTD")
	putI32(&f, int32(len(payload)))
	putI32(&f, int32(len(compressed)))
	f.Write(compressed)

	if err := os.WriteFile("cube.uemodel", f.Bytes(), 0o644); err != nil {
		panic(err)
	}
}

// buildPayload assembles a LODS section holding one unit cube LOD.
func buildPayload() []byte {
	positions := [][3]float32{
		{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
		{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1},
	}
	indices := []int32{
		0, 2, 1, 0, 3, 2, // bottom
		4, 5, 6, 4, 6, 7, // top
		0, 1, 5, 0, 5, 4, // front
		1, 2, 6, 1, 6, 5, // right
		2, 3, 7, 2, 7, 6, // back
		3, 0, 4, 3, 4, 7, // left
	}

	var vertices bytes.Buffer
	for _, p := range positions {
		putF32(&vertices, p[0])
		putF32(&vertices, p[1])
		putF32(&vertices, p[2])
	}

	var idx bytes.Buffer
	for _, i := range indices {
		putI32(&idx, i)
	}

	// Normals point away from the cube center; the first float carries
	// the binormal sign.
	var normals bytes.Buffer
	for _, p := range positions {
		n := [3]float32{p[0]*2 - 1, p[1]*2 - 1, p[2]*2 - 1}
		l := float32(math.Sqrt(float64(n[0]*n[0] + n[1]*n[1] + n[2]*n[2])))
		putF32(&normals, 1) // sign
		putF32(&normals, n[0]/l)
		putF32(&normals, n[1]/l)
		putF32(&normals, n[2]/l)
	}

	var uvs bytes.Buffer
	putI32(&uvs, int32(len(positions)))
	for _, p := range positions {
		putF32(&uvs, p[0])
		putF32(&uvs, p[1])
	}

	var materials bytes.Buffer
	putString(&materials, "M_Cube")
	putI32(&materials, 0)  // first triangle
	putI32(&materials, 12) // face count

	var lodBody bytes.Buffer
	writeChunk(&lodBody, "VERTICES", int32(len(positions)), vertices.Bytes())
	writeChunk(&lodBody, "INDICES", int32(len(indices)), idx.Bytes())
	writeChunk(&lodBody, "NORMALS", int32(len(positions)), normals.Bytes())
	writeChunk(&lodBody, "TEXCOORDS", 1, uvs.Bytes())
	writeChunk(&lodBody, "MATERIALS", 1, materials.Bytes())

	var lods bytes.Buffer
	putString(&lods, "LOD0")
	putI32(&lods, int32(lodBody.Len()))
	lods.Write(lodBody.Bytes())

	var payload bytes.Buffer
	putString(&payload, "LODS")
	putI32(&payload, 1) // LOD count
	putI32(&payload, int32(lods.Len()))
	payload.Write(lods.Bytes())

	return payload.Bytes()
}

func writeChunk(buf *bytes.Buffer, tag string, count int32, body []byte) {
	putString(buf, tag)
	putI32(buf, count)
	putI32(buf, int32(len(body)))
	buf.Write(body)
}

func putString(buf *bytes.Buffer, s string) {
	putI32(buf, int32(len(s)))
	buf.WriteString(s)
}

func putI32(buf *bytes.Buffer, v int32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], uint32(v))
	buf.Write(b[:])
}

func putF32(buf *bytes.Buffer, v float32) {
	putI32(buf, int32(math.Float32bits(v)))
}
