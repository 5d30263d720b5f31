// Package scene holds the editor's drawable entities. Insertion order is draw
// order; the most recently added entity is on top.
package scene

// Scene is an ordered collection of entities.
type Scene struct {
	entities []*Entity
	byID     map[string]*Entity
}

// NewScene creates an empty scene.
func NewScene() *Scene {
	return &Scene{byID: make(map[string]*Entity)}
}

// Add appends e on top of the scene.
func (s *Scene) Add(e *Entity) {
	s.entities = append(s.entities, e)
	s.byID[e.ID] = e
}

// Entities returns the entities in draw order. The slice must not be
// modified by the caller.
func (s *Scene) Entities() []*Entity {
	return s.entities
}

// Len returns the number of entities.
func (s *Scene) Len() int { return len(s.entities) }

// Get looks up an entity by ID.
func (s *Scene) Get(id string) (*Entity, bool) {
	e, ok := s.byID[id]
	return e, ok
}

// Topmost scans from the top of the scene down and returns the first entity
// for which match returns true, or nil.
func (s *Scene) Topmost(match func(*Entity) bool) *Entity {
	for i := len(s.entities) - 1; i >= 0; i-- {
		if match(s.entities[i]) {
			return s.entities[i]
		}
	}
	return nil
}

// Clear drops every entity.
func (s *Scene) Clear() {
	s.entities = nil
	s.byID = make(map[string]*Entity)
}
