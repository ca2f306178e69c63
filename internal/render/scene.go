// Package render keeps the set of drawable entities of a session and turns
// their parts into screen-space sprites for the terminal canvas or a remote
// browser.
package render

import (
	"cmp"
	"slices"
	"sync"

	"github.com/tomz197/tunnelrunner/internal/object"
)

// Scene is the entity set a session draws from. It implements object.Scene
// and counts contract violations instead of failing on them.
type Scene struct {
	mu       sync.Mutex
	entities []object.Entity
	index    map[object.Entity]int

	added        int
	removed      int
	doubleAdds   int
	strayRemoves int
}

// NewScene creates an empty scene.
func NewScene() *Scene {
	return &Scene{index: make(map[object.Entity]int)}
}

// Add implements object.Scene.
func (s *Scene) Add(e object.Entity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.index[e]; ok {
		s.doubleAdds++
		return
	}
	s.index[e] = len(s.entities)
	s.entities = append(s.entities, e)
	s.added++
}

// Remove implements object.Scene.
func (s *Scene) Remove(e object.Entity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.index[e]
	if !ok {
		s.strayRemoves++
		return
	}
	last := len(s.entities) - 1
	if i != last {
		moved := s.entities[last]
		s.entities[i] = moved
		s.index[moved] = i
	}
	s.entities[last] = nil
	s.entities = s.entities[:last]
	delete(s.index, e)
	s.removed++
}

// Contains reports whether e is in the scene.
func (s *Scene) Contains(e object.Entity) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.index[e]
	return ok
}

// Len returns the number of entities in the scene.
func (s *Scene) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entities)
}

// Counters are the lifetime add/remove statistics of a scene.
type Counters struct {
	Added        int
	Removed      int
	DoubleAdds   int // Add of an entity already present
	StrayRemoves int // Remove of an entity not present
}

// Counters returns a snapshot of the scene's statistics.
func (s *Scene) Counters() Counters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Counters{Added: s.added, Removed: s.removed, DoubleAdds: s.doubleAdds, StrayRemoves: s.strayRemoves}
}

// Parts appends the parts of every entity to dst, farthest first.
func (s *Scene) Parts(dst []object.Part) []object.Part {
	s.mu.Lock()
	start := len(dst)
	for _, e := range s.entities {
		dst = e.AppendParts(dst)
	}
	s.mu.Unlock()

	slices.SortStableFunc(dst[start:], func(a, b object.Part) int {
		return cmp.Compare(a.Position.Z, b.Position.Z)
	})
	return dst
}

// Clear drops every entity without counting removals.
func (s *Scene) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.entities)
	s.entities = s.entities[:0]
	clear(s.index)
}
