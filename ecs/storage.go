package ecs

// storage is the untyped view of a component table, used by the world to
// drop rows when an entity is destroyed.
type storage interface {
	drop(id uint32) bool
	has(id uint32) bool
	size() int
}

// table is a sparse-set component store keyed by entity slot id.
type table[T any] struct {
	denseIDs []uint32
	dense    []T
	sparse   []int
}

func (t *table[T]) indexOf(id uint32) int {
	if id == 0 || int(id) > len(t.sparse) {
		return -1
	}
	idx := t.sparse[id-1]
	if idx < 0 || idx >= len(t.denseIDs) || t.denseIDs[idx] != id {
		return -1
	}
	return idx
}

func (t *table[T]) has(id uint32) bool {
	return t.indexOf(id) >= 0
}

func (t *table[T]) get(id uint32) *T {
	idx := t.indexOf(id)
	if idx < 0 {
		return nil
	}
	return &t.dense[idx]
}

func (t *table[T]) set(id uint32, v T) {
	if idx := t.indexOf(id); idx >= 0 {
		t.dense[idx] = v
		return
	}
	for int(id) > len(t.sparse) {
		t.sparse = append(t.sparse, -1)
	}
	t.denseIDs = append(t.denseIDs, id)
	t.dense = append(t.dense, v)
	t.sparse[id-1] = len(t.denseIDs) - 1
}

func (t *table[T]) drop(id uint32) bool {
	idx := t.indexOf(id)
	if idx < 0 {
		return false
	}
	last := len(t.denseIDs) - 1
	lastID := t.denseIDs[last]

	t.denseIDs[idx] = lastID
	t.dense[idx] = t.dense[last]
	t.sparse[lastID-1] = idx

	t.denseIDs = t.denseIDs[:last]
	t.dense = t.dense[:last]
	t.sparse[id-1] = -1
	return true
}

func (t *table[T]) size() int {
	return len(t.denseIDs)
}
