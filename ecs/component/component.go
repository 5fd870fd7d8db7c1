package component

import (
	"errors"
	"sync/atomic"
)

var (
	ErrEntityNotAlive = errors.New("ecs: entity not alive")
	ErrInvalidHandle  = errors.New("ecs: invalid component handle")
)

// ID identifies a component type at runtime.
type ID uint32

var nextID atomic.Uint32

// Handle is a typed key into a world's component tables. Handles are
// created once at package init via NewComponent.
type Handle[T any] struct {
	id ID
}

func NewComponent[T any]() Handle[T] {
	return Handle[T]{id: ID(nextID.Add(1))}
}

func (h Handle[T]) ID() ID {
	return h.id
}

func (h Handle[T]) Valid() bool {
	return h.id != 0
}
