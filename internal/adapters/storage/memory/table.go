package memory

import (
	"slices"
	"sync"
)

// table guarda filas por clave y devuelve siempre copias. Las dos tablas del
// paquete solo cambian en la clave, la copia y el orden de List.
type table[T any] struct {
	mu      sync.RWMutex
	rows    map[string]T
	copyRow func(T) T
	compare func(a, b T) int
}

func newTable[T any](copyRow func(T) T, compare func(a, b T) int) *table[T] {
	return &table[T]{
		rows:    make(map[string]T),
		copyRow: copyRow,
		compare: compare,
	}
}

// insert devuelve false si la clave ya existe.
func (t *table[T]) insert(key string, row T) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[key]; ok {
		return false
	}
	t.rows[key] = t.copyRow(row)
	return true
}

// replace devuelve false si la clave no existe.
func (t *table[T]) replace(key string, row T) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[key]; !ok {
		return false
	}
	t.rows[key] = t.copyRow(row)
	return true
}

func (t *table[T]) remove(key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[key]; !ok {
		return false
	}
	delete(t.rows, key)
	return true
}

func (t *table[T]) get(key string) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	row, ok := t.rows[key]
	if !ok {
		var zero T
		return zero, false
	}
	return t.copyRow(row), true
}

func (t *table[T]) list() []T {
	t.mu.RLock()
	out := make([]T, 0, len(t.rows))
	for _, row := range t.rows {
		out = append(out, t.copyRow(row))
	}
	t.mu.RUnlock()

	slices.SortFunc(out, t.compare)
	return out
}
