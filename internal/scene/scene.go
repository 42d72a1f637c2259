// Package scene tracks the visuals placed for a dungeon: one floor instance
// per cell, with wall instances parented to it, all under a single root.
package scene

import "github.com/samdwyer/dungeondesigner/internal/world"

// RootName is the name of the instance every placed visual hangs from.
const RootName = "Dungeon"

// NoParent marks an instance without a parent.
const NoParent = 0

// Instance is one placed copy of an asset.
type Instance struct {
	ID        int
	Name      string
	Asset     string // GUID, empty for the root
	Position  world.Vec3
	RotationY float64 // degrees
	Parent    int
}

// Scene holds placed instances keyed by id.
type Scene struct {
	instances map[int]*Instance
	children  map[int][]int
	root      int
	nextID    int
}

// New creates an empty scene.
func New() *Scene {
	return &Scene{
		instances: make(map[int]*Instance),
		children:  make(map[int][]int),
		nextID:    1,
	}
}

// Root returns the root instance, creating it on first use.
func (s *Scene) Root() *Instance {
	if r, ok := s.instances[s.root]; ok {
		return r
	}
	r := s.add(&Instance{Name: RootName, Parent: NoParent})
	s.root = r.ID
	return r
}

// HasRoot reports whether the root exists.
func (s *Scene) HasRoot() bool {
	_, ok := s.instances[s.root]
	return ok
}

// Instantiate places an asset under parent. A parent that does not exist
// falls back to the root.
func (s *Scene) Instantiate(asset, name string, pos world.Vec3, rotationY float64, parent int) *Instance {
	if _, ok := s.instances[parent]; !ok {
		parent = s.Root().ID
	}
	return s.add(&Instance{
		Name:      name,
		Asset:     asset,
		Position:  pos,
		RotationY: rotationY,
		Parent:    parent,
	})
}

func (s *Scene) add(in *Instance) *Instance {
	in.ID = s.nextID
	s.nextID++
	s.instances[in.ID] = in
	if in.Parent != NoParent {
		s.children[in.Parent] = append(s.children[in.Parent], in.ID)
	}
	return in
}

// Get returns the instance with the given id.
func (s *Scene) Get(id int) (*Instance, bool) {
	in, ok := s.instances[id]
	return in, ok
}

// Children returns the direct children of id, oldest first.
func (s *Scene) Children(id int) []*Instance {
	ids := s.children[id]
	out := make([]*Instance, 0, len(ids))
	for _, c := range ids {
		out = append(out, s.instances[c])
	}
	return out
}

// Remove deletes an instance and all of its descendants.
func (s *Scene) Remove(id int) bool {
	in, ok := s.instances[id]
	if !ok {
		return false
	}
	for _, c := range append([]int(nil), s.children[id]...) {
		s.Remove(c)
	}
	delete(s.children, id)
	delete(s.instances, id)

	if in.Parent != NoParent {
		siblings := s.children[in.Parent]
		for i, c := range siblings {
			if c == id {
				s.children[in.Parent] = append(siblings[:i], siblings[i+1:]...)
				break
			}
		}
	}
	return true
}

// DestroyRoot removes the root and everything under it.
func (s *Scene) DestroyRoot() int {
	before := len(s.instances)
	s.Remove(s.root)
	s.root = 0
	return before - len(s.instances)
}

// Len returns the number of instances, root included.
func (s *Scene) Len() int {
	return len(s.instances)
}

// CountAsset returns how many instances of an asset are placed.
func (s *Scene) CountAsset(asset string) int {
	n := 0
	for _, in := range s.instances {
		if in.Asset == asset {
			n++
		}
	}
	return n
}
