package importer

import (
	"os"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/arkavell/uefkit/pkg/uef"
)

// cacheKey identifies one on-disk revision of a file. A file whose
// mtime or size changed misses and gets decoded again.
type cacheKey struct {
	path    string
	modTime int64
	size    int64
}

func keyFor(path string, info os.FileInfo) cacheKey {
	return cacheKey{
		path:    path,
		modTime: info.ModTime().UnixNano(),
		size:    info.Size(),
	}
}

// modelCache is a bounded LRU of decoded models with hit/miss counters.
// A nil *modelCache is valid and caches nothing.
type modelCache struct {
	lru    *lru.Cache[cacheKey, *uef.Model]
	hits   atomic.Uint64
	misses atomic.Uint64
}

func newModelCache(entries int) *modelCache {
	if entries <= 0 {
		return nil
	}
	c, err := lru.New[cacheKey, *uef.Model](entries)
	if err != nil {
		return nil
	}
	return &modelCache{lru: c}
}

func (c *modelCache) get(key cacheKey) (*uef.Model, bool) {
	if c == nil {
		return nil, false
	}
	m, ok := c.lru.Get(key)
	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return m, ok
}

func (c *modelCache) add(key cacheKey, m *uef.Model) {
	if c == nil {
		return
	}
	c.lru.Add(key, m)
}

func (c *modelCache) stats() (hits, misses uint64) {
	if c == nil {
		return 0, 0
	}
	return c.hits.Load(), c.misses.Load()
}

func (c *modelCache) len() int {
	if c == nil {
		return 0
	}
	return c.lru.Len()
}
