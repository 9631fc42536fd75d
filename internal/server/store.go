package server

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/arkavell/uefkit/pkg/uef"
)

// storedModel pairs a decoded model with its upload metadata.
type storedModel struct {
	Summary ModelSummary
	Model   *uef.Model
}

// ModelStore holds uploaded models in a bounded LRU so an abandoned
// server does not grow without bound.
type ModelStore struct {
	lru *lru.Cache[string, *storedModel]
}

// NewModelStore creates a store holding at most entries models.
func NewModelStore(entries int) *ModelStore {
	if entries <= 0 {
		entries = 64
	}
	c, _ := lru.New[string, *storedModel](entries)
	return &ModelStore{lru: c}
}

func (s *ModelStore) Add(m *storedModel) {
	s.lru.Add(m.Summary.ID, m)
}

func (s *ModelStore) Get(id string) (*storedModel, bool) {
	return s.lru.Get(id)
}

func (s *ModelStore) Delete(id string) bool {
	return s.lru.Remove(id)
}

// List returns summaries oldest first without disturbing recency.
func (s *ModelStore) List() []ModelSummary {
	keys := s.lru.Keys()
	out := make([]ModelSummary, 0, len(keys))
	for _, k := range keys {
		if m, ok := s.lru.Peek(k); ok {
			out = append(out, m.Summary)
		}
	}
	return out
}

func (s *ModelStore) Len() int {
	return s.lru.Len()
}
