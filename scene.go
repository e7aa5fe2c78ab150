package rubik3d

import (
	"fmt"
	"log"

	"github.com/go-gl/mathgl/mgl64"
)

// Scene is one assembled puzzle: every cubie hangs, directly or through
// pivot groups, under the assembly group, which hangs under Root.
type Scene struct {
	Root     *Node
	Assembly *PivotGroup
	Registry *Registry

	assets   *AssetCache
	paths    map[int]string
	cubies   []*Cubie
	byIndex  map[int]*Cubie
	groups   []*PivotGroup
	byName   map[string]*PivotGroup
	detached map[int]bool
	fan      *PivotGroup
	fanAxis  Axis
}

// NewScene builds the node tree for sc and requests every asset it needs.
// Cubies mount later, from Update, as their assets arrive.
func NewScene(sc SceneConfig, assets *AssetCache) (*Scene, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}

	s := &Scene{
		Root:     NewNode("root"),
		Assembly: NewPivotGroup(AssemblyGroup, mgl64.Vec3{}),
		Registry: NewRegistry(),
		assets:   assets,
		paths:    make(map[int]string, sc.Cubies),
		byIndex:  make(map[int]*Cubie, sc.Cubies),
		byName:   map[string]*PivotGroup{},
		detached: map[int]bool{},
	}
	s.Assembly.NormalizeSteps = sc.NormalizeSteps
	s.Assembly.Attach(s.Root)
	s.groups = append(s.groups, s.Assembly)
	s.byName[AssemblyGroup] = s.Assembly

	owner := map[int]*PivotGroup{}
	for _, gc := range sc.Groups {
		g := NewPivotGroup(gc.Name, mgl64.Vec3(gc.Pivot))
		g.NormalizeSteps = sc.NormalizeSteps
		parent := s.Assembly
		if gc.Parent != "" {
			parent = s.byName[gc.Parent]
		}
		parent.AddGroup(g)
		s.groups = append(s.groups, g)
		s.byName[g.Name] = g
		for _, m := range gc.Members {
			owner[m] = g
		}
	}

	var table *LayoutTable
	if sc.Positions == nil {
		var err error
		if table, err = sc.LayoutTable(); err != nil {
			return nil, err
		}
	}

	initial := Rotation{
		X: ToRadians(sc.InitialRotation[0]),
		Y: ToRadians(sc.InitialRotation[1]),
		Z: ToRadians(sc.InitialRotation[2]),
	}
	scale := sc.Scale
	if scale == 0 {
		scale = 1
	}

	for i := 1; i <= sc.Cubies; i++ {
		var base Coord
		var pos mgl64.Vec3
		if table != nil {
			base, _ = table.Position(i)
			pos = base.Add(sc.Shift).Vec3()
		} else {
			pos = mgl64.Vec3(sc.Positions[i])
		}

		c := NewCubie(i, base)
		c.Node().Scale = scale
		c.SetInitialRotation(initial)

		g := owner[i]
		if g == nil {
			g = s.Assembly
		}
		g.AddCubie(c, pos)

		s.cubies = append(s.cubies, c)
		s.byIndex[i] = c
		s.paths[i] = sc.ModelPath(i)
	}

	if sc.FanGroup != "" {
		s.fan = s.byName[sc.FanGroup]
		s.fanAxis, _ = ParseAxis(sc.FanAxis)
	}

	if assets != nil {
		assets.Preload(sc.AssetPaths()...)
	}
	log.Printf("Scene built: %d cubies, %d groups", len(s.cubies), len(s.groups))
	return s, nil
}

// Update collects finished asset loads and mounts every cubie whose model
// is ready. It returns how many cubies mounted.
func (s *Scene) Update() int {
	if s.assets == nil {
		return 0
	}
	s.assets.Poll()
	n := 0
	for _, c := range s.cubies {
		if c.Mounted() || s.detached[c.Index] {
			continue
		}
		m, ok := s.assets.Get(s.paths[c.Index])
		if !ok {
			continue
		}
		s.mount(c, m)
		n++
	}
	return n
}

// Mount shows m on a cubie right away and registers it.
func (s *Scene) Mount(index int, m *Model) error {
	c, ok := s.byIndex[index]
	if !ok {
		return fmt.Errorf("no cubie %d", index)
	}
	if m == nil {
		return fmt.Errorf("cubie %d: nil model", index)
	}
	delete(s.detached, index)
	s.mount(c, m)
	return nil
}

func (s *Scene) mount(c *Cubie, m *Model) {
	c.Mount(m)
	s.Registry.Register(c.Index, c)
}

// Unmount hides a cubie and drops it from the registry. Update leaves it
// unmounted until Remount is called.
func (s *Scene) Unmount(index int) bool {
	c, ok := s.byIndex[index]
	if !ok || !c.Mounted() {
		return false
	}
	c.Unmount()
	s.Registry.Unregister(index)
	s.detached[index] = true
	return true
}

// Remount lets Update mount the cubie again once its asset is available.
func (s *Scene) Remount(index int) {
	delete(s.detached, index)
}

func (s *Scene) Cubie(index int) (*Cubie, bool) {
	c, ok := s.byIndex[index]
	return c, ok
}

// Cubies returns the cubies in index order.
func (s *Scene) Cubies() []*Cubie {
	return s.cubies
}

func (s *Scene) Group(name string) (*PivotGroup, bool) {
	g, ok := s.byName[name]
	return g, ok
}

// Groups returns the assembly first, then groups in declaration order.
func (s *Scene) Groups() []*PivotGroup {
	return s.groups
}

// Fan returns the group and axis of the fixed-step action, if any.
func (s *Scene) Fan() (*PivotGroup, Axis, bool) {
	return s.fan, s.fanAxis, s.fan != nil
}
