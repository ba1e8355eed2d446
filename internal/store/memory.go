package store

import (
	"context"
	"sync"

	"github.com/entrelineas/entrelineas/internal/document"
)

// Memory is an in-process Cache: an RWMutex-guarded map. Used standalone
// in tests and as the read-through front of Tiered.
type Memory struct {
	mu   sync.RWMutex
	docs map[string]*document.InterlinearDocument
}

var _ Cache = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{docs: make(map[string]*document.InterlinearDocument)}
}

func (m *Memory) Get(_ context.Context, fingerprint string) (*document.InterlinearDocument, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	doc, ok := m.docs[fingerprint]
	return doc, ok, nil
}

func (m *Memory) Put(_ context.Context, fingerprint string, doc *document.InterlinearDocument) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.docs[fingerprint]; ok {
		return nil // populate-once
	}
	m.docs[fingerprint] = doc
	return nil
}

// Tiered fronts a persistent Cache with a Memory layer so repeated reads
// within one process never touch the database.
type Tiered struct {
	front *Memory
	back  Cache
}

var _ Cache = (*Tiered)(nil)

func NewTiered(back Cache) *Tiered {
	return &Tiered{front: NewMemory(), back: back}
}

func (t *Tiered) Get(ctx context.Context, fingerprint string) (*document.InterlinearDocument, bool, error) {
	if doc, ok, _ := t.front.Get(ctx, fingerprint); ok {
		return doc, true, nil
	}
	doc, ok, err := t.back.Get(ctx, fingerprint)
	if err != nil || !ok {
		return nil, false, err
	}
	_ = t.front.Put(ctx, fingerprint, doc)
	return doc, true, nil
}

func (t *Tiered) Put(ctx context.Context, fingerprint string, doc *document.InterlinearDocument) error {
	if err := t.back.Put(ctx, fingerprint, doc); err != nil {
		return err
	}
	return t.front.Put(ctx, fingerprint, doc)
}
