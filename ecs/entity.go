package ecs

import "strconv"

// Entity is a generational handle into the world registry. The low 32 bits
// are the slot id, the high 32 bits the generation, so stale handles held
// across a destroy never alias a reused slot.
type Entity uint64

const entityIDBits = 32

func makeEntity(id, gen uint32) Entity {
	return Entity(uint64(gen)<<entityIDBits | uint64(id))
}

func (e Entity) id() uint32 {
	return uint32(e)
}

func (e Entity) generation() uint32 {
	return uint32(uint64(e) >> entityIDBits)
}

func (e Entity) Valid() bool {
	return e != 0
}

func (e Entity) String() string {
	return strconv.FormatUint(uint64(e), 10)
}

// entityStore tracks slot generations and free ids.
type entityStore struct {
	nextID uint32
	gen    []uint32
	free   []uint32
}

func (s *entityStore) create() Entity {
	var id uint32
	if n := len(s.free); n > 0 {
		id = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		s.nextID++
		id = s.nextID
		if int(id) > len(s.gen) {
			s.gen = append(s.gen, 0)
		}
	}
	return makeEntity(id, s.gen[id-1])
}

func (s *entityStore) destroy(e Entity) bool {
	if !s.isAlive(e) {
		return false
	}
	idx := e.id() - 1
	s.gen[idx]++
	s.free = append(s.free, e.id())
	return true
}

func (s *entityStore) isAlive(e Entity) bool {
	id := e.id()
	if id == 0 || int(id) > len(s.gen) {
		return false
	}
	return s.gen[id-1] == e.generation()
}

func (s *entityStore) entityFor(id uint32) Entity {
	if id == 0 || int(id) > len(s.gen) {
		return 0
	}
	return makeEntity(id, s.gen[id-1])
}
