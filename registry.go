package rubik3d

import "sort"

// Rotatable is anything the rotation controller can address: cubies and
// pivot groups.
type Rotatable interface {
	SetAxisRotation(axis Axis, radians float64)
	Rotation() Degrees
}

// Registry maps cubie indices to live handles. A missing entry means the
// piece has not mounted yet, or has unmounted; callers treat that as a
// normal state.
type Registry struct {
	handles map[int]Rotatable
}

func NewRegistry() *Registry {
	return &Registry{handles: make(map[int]Rotatable)}
}

// Register adds or replaces the handle for index.
func (r *Registry) Register(index int, h Rotatable) {
	if h == nil {
		return
	}
	r.handles[index] = h
}

func (r *Registry) Unregister(index int) {
	delete(r.handles, index)
}

// Resolve returns the handle for index and whether one is present.
func (r *Registry) Resolve(index int) (Rotatable, bool) {
	h, ok := r.handles[index]
	return h, ok
}

func (r *Registry) Len() int {
	return len(r.handles)
}

// Indices returns the registered indices in ascending order.
func (r *Registry) Indices() []int {
	out := make([]int, 0, len(r.handles))
	for i := range r.handles {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}
