// Package memory keeps repositories in process memory. It follows the same
// contracts as the DynamoDB repositories and backs STORAGE_DRIVER=memory and
// the workflow tests.
package memory

import (
	"fmt"
	"sync"

	"topreparateurs/internal/domain/entities"
)

// table is a versioned record set guarded by a single lock.
type table[T any] struct {
	mu    sync.RWMutex
	items map[string]T
	order []string
}

func newTable[T any]() *table[T] {
	return &table[T]{items: map[string]T{}}
}

func (t *table[T]) create(id string, v T) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.items[id]; ok {
		return fmt.Errorf("%w: record %s already exists", entities.ErrConflict, id)
	}
	t.items[id] = v
	t.order = append(t.order, id)
	return nil
}

func (t *table[T]) get(id string) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	v, ok := t.items[id]
	return v, ok
}

// swap replaces the record when version(stored) equals expected.
func (t *table[T]) swap(id string, expected int64, version func(T) int64, v T) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	cur, ok := t.items[id]
	if !ok || version(cur) != expected {
		return entities.ErrVersionConflict
	}
	t.items[id] = v
	return nil
}

// filter returns matching records in insertion order.
func (t *table[T]) filter(match func(T) bool) []T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]T, 0)
	for _, id := range t.order {
		if v := t.items[id]; match(v) {
			out = append(out, v)
		}
	}
	return out
}
