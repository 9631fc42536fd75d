package importer

import (
	"context"
	"encoding/binary"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/arkavell/uefkit/internal/config"
	"github.com/arkavell/uefkit/pkg/uef"
)

func TestImport_Basic(t *testing.T) {
	dir := t.TempDir()
	path := writeModel(t, dir, "cube.uemodel",
		modelFile("UEMODEL", "Cube", triPositions(), []uint32{0, 1, 2}))

	imp := New(config.Default(), nil)
	res, err := imp.Import(path)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}

	if res.Model.Header.ObjectName != "Cube" {
		t.Errorf("expected object name Cube, got %q", res.Model.Header.ObjectName)
	}
	if len(res.Meshes) != 1 {
		t.Fatalf("expected 1 mesh, got %d", len(res.Meshes))
	}
	m := res.Meshes[0]
	if m.Name != "Cube_LOD0" {
		t.Errorf("expected mesh name Cube_LOD0, got %q", m.Name)
	}

	if res.Stats.LODCount != 1 {
		t.Errorf("expected 1 LOD, got %d", res.Stats.LODCount)
	}
	if res.Stats.Vertices != 3 {
		t.Errorf("expected 3 vertices, got %d", res.Stats.Vertices)
	}
	if res.Stats.Triangles != 1 {
		t.Errorf("expected 1 triangle, got %d", res.Stats.Triangles)
	}
	if res.Stats.FromCache {
		t.Error("first import should not come from cache")
	}

	// Default scale 0.01 turns the 100-unit vertex into 1.0
	if got := m.Vertices[1].Position[0]; math.Abs(float64(got-1)) > 1e-5 {
		t.Errorf("expected scaled x near 1.0, got %f", got)
	}
}

func TestImport_Missing(t *testing.T) {
	imp := New(config.Default(), nil)
	_, err := imp.Import(filepath.Join(t.TempDir(), "nope.uemodel"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist, got %v", err)
	}
}

func TestImport_NotAMesh(t *testing.T) {
	dir := t.TempDir()
	path := writeModel(t, dir, "level.uemodel",
		modelFile("UEWORLD", "Level", nil, nil))

	imp := New(config.Default(), nil)
	_, err := imp.Import(path)
	if err == nil {
		t.Fatal("expected error for non-mesh payload")
	}
	if !errors.Is(err, uef.ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestImport_CacheHit(t *testing.T) {
	dir := t.TempDir()
	path := writeModel(t, dir, "cube.uemodel",
		modelFile("UEMODEL", "Cube", triPositions(), []uint32{0, 1, 2}))

	imp := New(config.Default(), nil)

	first, err := imp.Import(path)
	if err != nil {
		t.Fatalf("first Import: %v", err)
	}
	second, err := imp.Import(path)
	if err != nil {
		t.Fatalf("second Import: %v", err)
	}

	if !second.Stats.FromCache {
		t.Error("second import of unchanged file should come from cache")
	}
	if second.Model != first.Model {
		t.Error("expected cached model to be reused")
	}
	if hits, misses := imp.CacheStats(); hits != 1 || misses != 1 {
		t.Errorf("expected 1 hit / 1 miss, got %d / %d", hits, misses)
	}
	if imp.CacheLen() != 1 {
		t.Errorf("expected 1 cached model, got %d", imp.CacheLen())
	}

	// Rewriting the file with different content invalidates the entry
	quad := append(triPositions(), [3]float32{100, 100, 0})
	writeModel(t, dir, "cube.uemodel",
		modelFile("UEMODEL", "Cube", quad, []uint32{0, 1, 2, 1, 3, 2}))

	third, err := imp.Import(path)
	if err != nil {
		t.Fatalf("third Import: %v", err)
	}
	if third.Stats.FromCache {
		t.Error("changed file should not come from cache")
	}
	if third.Stats.Vertices != 4 {
		t.Errorf("expected 4 vertices after rewrite, got %d", third.Stats.Vertices)
	}
}

func TestImport_CacheDisabled(t *testing.T) {
	dir := t.TempDir()
	path := writeModel(t, dir, "cube.uemodel",
		modelFile("UEMODEL", "Cube", triPositions(), []uint32{0, 1, 2}))

	cfg := config.Default()
	cfg.Cache.Entries = 0
	imp := New(cfg, nil)

	for i := 0; i < 2; i++ {
		res, err := imp.Import(path)
		if err != nil {
			t.Fatalf("Import %d: %v", i, err)
		}
		if res.Stats.FromCache {
			t.Errorf("import %d: caching is disabled, got cache hit", i)
		}
	}
	if hits, misses := imp.CacheStats(); hits != 0 || misses != 0 {
		t.Errorf("expected no cache activity, got %d / %d", hits, misses)
	}
	if imp.CacheLen() != 0 {
		t.Errorf("expected empty cache, got %d", imp.CacheLen())
	}
}

func TestImportAll(t *testing.T) {
	dir := t.TempDir()
	pathA := writeModel(t, dir, "a.uemodel",
		modelFile("UEMODEL", "A", triPositions(), []uint32{0, 1, 2}))
	pathB := writeModel(t, dir, "b.uemodel",
		modelFile("UEMODEL", "B", triPositions(), []uint32{0, 1, 2}))
	missing := filepath.Join(dir, "missing.uemodel")

	imp := New(config.Default(), nil)
	results, err := imp.ImportAll(context.Background(), []string{pathA, missing, pathB})
	if err != nil {
		t.Fatalf("ImportAll: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	// Results keep input order
	if results[0].Err != nil {
		t.Errorf("result 0: unexpected error %v", results[0].Err)
	}
	if results[0].Model.Header.ObjectName != "A" {
		t.Errorf("result 0: expected object A, got %q", results[0].Model.Header.ObjectName)
	}
	if results[1].Err == nil {
		t.Error("result 1: expected error for missing file")
	} else if !errors.Is(results[1].Err, os.ErrNotExist) {
		t.Errorf("result 1: expected os.ErrNotExist, got %v", results[1].Err)
	}
	if results[2].Err != nil {
		t.Errorf("result 2: unexpected error %v", results[2].Err)
	}
	if results[2].Model.Header.ObjectName != "B" {
		t.Errorf("result 2: expected object B, got %q", results[2].Model.Header.ObjectName)
	}
}

func TestImportAll_FailFast(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		filepath.Join(dir, "one.uemodel"),
		filepath.Join(dir, "two.uemodel"),
		filepath.Join(dir, "three.uemodel"),
	}

	cfg := config.Default()
	cfg.Import.FailFast = true
	imp := New(cfg, nil)

	results, err := imp.ImportAll(context.Background(), paths)
	if err == nil {
		t.Fatal("expected batch error with fail_fast enabled")
	}
	for i, res := range results {
		if res.Err == nil {
			t.Errorf("result %d: expected per-file error", i)
		}
	}
}

func TestImportAll_Canceled(t *testing.T) {
	dir := t.TempDir()
	path := writeModel(t, dir, "cube.uemodel",
		modelFile("UEMODEL", "Cube", triPositions(), []uint32{0, 1, 2}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	imp := New(config.Default(), nil)
	results, err := imp.ImportAll(ctx, []string{path})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if len(results) != 1 || results[0].Err == nil {
		t.Error("expected the canceled file to carry an error")
	}
}

// Helpers

func triPositions() [][3]float32 {
	return [][3]float32{{0, 0, 0}, {100, 0, 0}, {0, 100, 0}}
}

func writeModel(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

type fileBuf struct{ b []byte }

func (f *fileBuf) raw(p []byte)  { f.b = append(f.b, p...) }
func (f *fileBuf) u8(v uint8)    { f.b = append(f.b, v) }
func (f *fileBuf) i32(v int32)   { f.b = binary.LittleEndian.AppendUint32(f.b, uint32(v)) }
func (f *fileBuf) f32(v float32) { f.b = binary.LittleEndian.AppendUint32(f.b, math.Float32bits(v)) }
func (f *fileBuf) str(s string)  { f.i32(int32(len(s))); f.raw([]byte(s)) }

// modelFile assembles an uncompressed file with a single LOD carrying
// vertex and index chunks.
func modelFile(identifier, objectName string, positions [][3]float32, indices []uint32) []byte {
	var verts fileBuf
	for _, p := range positions {
		verts.f32(p[0])
		verts.f32(p[1])
		verts.f32(p[2])
	}
	var idx fileBuf
	for _, i := range indices {
		idx.i32(int32(i))
	}

	var lod fileBuf
	lod.str("VERTICES")
	lod.i32(int32(len(positions)))
	lod.i32(int32(len(verts.b)))
	lod.raw(verts.b)
	lod.str("INDICES")
	lod.i32(int32(len(indices)))
	lod.i32(int32(len(idx.b)))
	lod.raw(idx.b)

	var rec fileBuf
	rec.str("LOD0")
	rec.i32(int32(len(lod.b)))
	rec.raw(lod.b)

	var f fileBuf
	f.raw([]byte("UEFORMAT"))
	f.str(identifier)
	f.u8(5)
	f.str(objectName)
	f.u8(0)
	f.str("LODS")
	f.i32(1)
	f.i32(int32(len(rec.b)))
	f.raw(rec.b)
	return f.b
}
