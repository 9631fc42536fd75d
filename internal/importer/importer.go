// Package importer turns model files on disk into render-ready meshes.
package importer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/arkavell/uefkit/internal/config"
	"github.com/arkavell/uefkit/internal/mesh"
	"github.com/arkavell/uefkit/pkg/uef"
)

// Importer decodes model files and builds meshes according to config.
// Decoded models are cached; meshes are rebuilt per call since the scale
// can change between calls.
type Importer struct {
	cfg   *config.Config
	log   *zap.Logger
	cache *modelCache
}

// Result holds everything produced for one file.
type Result struct {
	Path   string
	Model  *uef.Model
	Meshes []*mesh.Mesh
	Stats  Stats
	Err    error // set instead of Model/Meshes when the file failed
}

// Stats summarizes one import.
type Stats struct {
	LODCount  int
	Vertices  int
	Triangles int
	Elapsed   time.Duration
	FromCache bool
}

// New creates an Importer. A nil config uses defaults; a nil logger
// discards output.
func New(cfg *config.Config, log *zap.Logger) *Importer {
	if cfg == nil {
		cfg = config.Default()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Importer{
		cfg:   cfg,
		log:   log,
		cache: newModelCache(cfg.Cache.Entries),
	}
}

// Import decodes a single file and builds one mesh per populated LOD.
func (imp *Importer) Import(path string) (*Result, error) {
	start := time.Now()

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("reading model file: %w", err)
	}
	key := keyFor(abs, info)

	model, cached := imp.cache.get(key)
	if !cached {
		model, err = uef.ParseFile(abs)
		if err != nil {
			return nil, err
		}
		imp.cache.add(key, model)
	}

	if !model.IsMesh() {
		return nil, fmt.Errorf("%w: %s", uef.ErrUnsupportedFormat, model.Header.Identifier)
	}

	meshes := mesh.BuildAll(model, mesh.BuildOptions{
		Scale:       imp.cfg.Import.Scale,
		FlipWinding: imp.cfg.Import.FlipWinding,
	})

	res := &Result{
		Path:   abs,
		Model:  model,
		Meshes: meshes,
		Stats: Stats{
			LODCount:  len(model.LODs),
			Elapsed:   time.Since(start),
			FromCache: cached,
		},
	}
	for _, m := range meshes {
		res.Stats.Vertices += len(m.Vertices)
		res.Stats.Triangles += m.FaceCount()
	}

	imp.log.Debug("imported model",
		zap.String("path", abs),
		zap.Int("lods", res.Stats.LODCount),
		zap.Int("vertices", res.Stats.Vertices),
		zap.Int("triangles", res.Stats.Triangles),
		zap.Bool("cached", cached),
		zap.Duration("elapsed", res.Stats.Elapsed))

	return res, nil
}

// ImportAll imports every path concurrently, one goroutine per file,
// with at most Workers files decoding at once. Results keep the order
// of paths; a failed file logs a warning and yields a Result with Err
// set. The returned error is nil unless fail-fast aborted the batch or
// the context was canceled.
func (imp *Importer) ImportAll(ctx context.Context, paths []string) ([]*Result, error) {
	results := make([]*Result, len(paths))

	workers := imp.cfg.Import.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	sem := make(chan struct{}, workers)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)

	for i, path := range paths {
		wg.Add(1)
		go func() {
			defer wg.Done()

			if err := runCtx.Err(); err != nil {
				results[i] = &Result{Path: path, Err: err}
				return
			}
			select {
			case sem <- struct{}{}:
			case <-runCtx.Done():
				results[i] = &Result{Path: path, Err: runCtx.Err()}
				return
			}
			defer func() { <-sem }()

			res, err := imp.Import(path)
			if err != nil {
				imp.log.Warn("import failed", zap.String("path", path), zap.Error(err))
				results[i] = &Result{Path: path, Err: err}
				if imp.cfg.Import.FailFast {
					mu.Lock()
					if firstErr == nil {
						firstErr = err
					}
					mu.Unlock()
					cancel()
				}
				return
			}
			results[i] = res
		}()
	}
	wg.Wait()

	if firstErr == nil && ctx.Err() != nil {
		firstErr = ctx.Err()
	}
	return results, firstErr
}

// CacheStats reports cache hits and misses since creation.
func (imp *Importer) CacheStats() (hits, misses uint64) {
	return imp.cache.stats()
}

// CacheLen reports the number of cached models.
func (imp *Importer) CacheLen() int {
	return imp.cache.len()
}
