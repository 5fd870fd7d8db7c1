package ecs

import "github.com/tbrandt/blastpad/ecs/component"

// System updates a world each tick.
type System interface {
	Update(w *World)
}

// World owns entities, component tables, and system order. All access
// happens on the game loop goroutine; nothing here locks.
type World struct {
	entities entityStore
	stores   map[component.ID]storage
	order    []Entity
	systems  []System
}

// NewWorld creates an empty registry.
func NewWorld() *World {
	return &World{stores: make(map[component.ID]storage)}
}

// CreateEntity allocates a new entity handle.
func (w *World) CreateEntity() Entity {
	e := w.entities.create()
	w.order = append(w.order, e)
	return e
}

// DestroyEntity removes an entity and every component attached to it.
// Destroying a dead or stale handle is a no-op and returns false; the
// sweeper, lifetime expiry, clear-all, and detonation may all race to
// remove the same entity across ticks.
func (w *World) DestroyEntity(e Entity) bool {
	if !w.entities.isAlive(e) {
		return false
	}
	for _, st := range w.stores {
		st.drop(e.id())
	}
	w.entities.destroy(e)
	for i, o := range w.order {
		if o == e {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
	return true
}

// IsAlive reports whether an entity handle is still valid.
func (w *World) IsAlive(e Entity) bool {
	return w.entities.isAlive(e)
}

// Entities returns live entities in creation order. Erase relies on this
// ordering: iterating the result in reverse prefers the most recently
// added entity when pick radii overlap.
func (w *World) Entities() []Entity {
	out := make([]Entity, len(w.order))
	copy(out, w.order)
	return out
}

// AddSystem appends a system to the update order.
func (w *World) AddSystem(s System) {
	if s == nil {
		return
	}
	w.systems = append(w.systems, s)
}

// Update runs all systems once.
func (w *World) Update() {
	for _, s := range w.systems {
		s.Update(w)
	}
}

func tableFor[T any](w *World, h component.Handle[T], create bool) *table[T] {
	st, ok := w.stores[h.ID()]
	if !ok {
		if !create {
			return nil
		}
		t := &table[T]{}
		w.stores[h.ID()] = t
		return t
	}
	t, ok := st.(*table[T])
	if !ok {
		return nil
	}
	return t
}

// Add attaches or overwrites a component on a live entity.
func Add[T any](w *World, e Entity, h component.Handle[T], v T) error {
	if !h.Valid() {
		return component.ErrInvalidHandle
	}
	if !w.entities.isAlive(e) {
		return component.ErrEntityNotAlive
	}
	tableFor(w, h, true).set(e.id(), v)
	return nil
}

// Get returns a pointer into the component table, valid until the next
// Add or Remove for that component type.
func Get[T any](w *World, e Entity, h component.Handle[T]) (*T, bool) {
	if !w.entities.isAlive(e) {
		return nil, false
	}
	t := tableFor(w, h, false)
	if t == nil {
		return nil, false
	}
	v := t.get(e.id())
	if v == nil {
		return nil, false
	}
	return v, true
}

// Has reports whether a live entity carries the component.
func Has[T any](w *World, e Entity, h component.Handle[T]) bool {
	if !w.entities.isAlive(e) {
		return false
	}
	t := tableFor(w, h, false)
	return t != nil && t.has(e.id())
}

// Remove detaches a component; returns false if it was not present.
func Remove[T any](w *World, e Entity, h component.Handle[T]) bool {
	if !w.entities.isAlive(e) {
		return false
	}
	t := tableFor(w, h, false)
	return t != nil && t.drop(e.id())
}

// Count returns how many live entities carry the component.
func Count[T any](w *World, h component.Handle[T]) int {
	t := tableFor(w, h, false)
	if t == nil {
		return 0
	}
	return t.size()
}

// ForEach visits every entity carrying the component. The callback may
// destroy the visited entity; the iteration snapshot tolerates it.
func ForEach[T any](w *World, h component.Handle[T], fn func(Entity, *T)) {
	t := tableFor(w, h, false)
	if t == nil {
		return
	}
	ids := make([]uint32, len(t.denseIDs))
	copy(ids, t.denseIDs)
	for _, id := range ids {
		e := w.entities.entityFor(id)
		if !w.entities.isAlive(e) {
			continue
		}
		v := t.get(id)
		if v == nil {
			continue
		}
		fn(e, v)
	}
}

// ForEach2 visits entities carrying both components.
func ForEach2[A, B any](w *World, ha component.Handle[A], hb component.Handle[B], fn func(Entity, *A, *B)) {
	ForEach(w, ha, func(e Entity, a *A) {
		b, ok := Get(w, e, hb)
		if !ok {
			return
		}
		fn(e, a, b)
	})
}
