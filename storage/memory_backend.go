package storage

import (
	"context"
	"sort"
	"sync"
)

// MemoryBackend is a map-backed Backend for development and tests.
type MemoryBackend struct {
	mu      sync.RWMutex
	records map[string]Record
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{records: make(map[string]Record)}
}

func (b *MemoryBackend) Load(_ context.Context, physicalKey string) ([]byte, bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	rec, ok := b.records[physicalKey]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), rec.Value...), true, nil
}

func (b *MemoryBackend) Save(_ context.Context, rec Record) error {
	rec.Value = append([]byte(nil), rec.Value...)
	b.mu.Lock()
	b.records[rec.PhysicalKey] = rec
	b.mu.Unlock()
	return nil
}

// Atomic relies on the Store's per-key lock; a single process owns the map.
func (b *MemoryBackend) Atomic(ctx context.Context, _ string, fn func(ctx context.Context, tx Tx) error) error {
	return fn(ctx, b)
}

func (b *MemoryBackend) Namespaces(_ context.Context) ([]string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	seen := make(map[string]struct{})
	for _, rec := range b.records {
		seen[rec.Namespace] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for ns := range seen {
		out = append(out, ns)
	}
	sort.Strings(out)
	return out, nil
}

func (b *MemoryBackend) Close() error { return nil }
