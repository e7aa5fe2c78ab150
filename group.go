package rubik3d

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// PivotGroup rotates its children rigidly about a shared pivot point.
//
// Every position handed to a group is expressed in the space of the scene
// root before any rotation. A child added with intended position p is placed
// at p minus the pivot inside the group, so at zero rotation it sits exactly
// at p and rotating the group swings it around the pivot.
type PivotGroup struct {
	Name string

	// NormalizeSteps wraps Step results into [0, 2π).
	NormalizeSteps bool

	node  *Node
	pivot mgl64.Vec3
}

func NewPivotGroup(name string, pivot mgl64.Vec3) *PivotGroup {
	g := &PivotGroup{
		Name:  name,
		node:  NewNode(name),
		pivot: pivot,
	}
	g.node.Position = pivot
	return g
}

func (g *PivotGroup) Node() *Node {
	return g.node
}

func (g *PivotGroup) Pivot() mgl64.Vec3 {
	return g.pivot
}

// Add places a node so that it lands on intended at zero rotation.
func (g *PivotGroup) Add(child *Node, intended mgl64.Vec3) {
	child.Position = intended.Sub(g.pivot)
	g.node.Add(child)
}

func (g *PivotGroup) AddCubie(c *Cubie, intended mgl64.Vec3) {
	g.Add(c.Node(), intended)
}

// AddGroup nests sub so that it still pivots about its own pivot point.
func (g *PivotGroup) AddGroup(sub *PivotGroup) {
	g.Add(sub.node, sub.pivot)
}

// Attach hangs the group under a root node at its pivot.
func (g *PivotGroup) Attach(root *Node) {
	g.node.Position = g.pivot
	root.Add(g.node)
}

// SetGroupRotation overwrites one axis angle of the group.
func (g *PivotGroup) SetGroupRotation(axis Axis, radians float64) {
	g.node.Rotation.Set(axis, radians)
}

// SetAxisRotation is SetGroupRotation; it lets groups sit in a Registry.
func (g *PivotGroup) SetAxisRotation(axis Axis, radians float64) {
	g.SetGroupRotation(axis, radians)
}

// Step advances one axis by FanStep and returns the new angle. Repeated
// steps keep accumulating without bound unless NormalizeSteps is set.
func (g *PivotGroup) Step(axis Axis) float64 {
	angle := g.node.Rotation.Get(axis) + FanStep
	if g.NormalizeSteps {
		angle = math.Mod(angle, 2*math.Pi)
		if angle < 0 {
			angle += 2 * math.Pi
		}
	}
	g.node.Rotation.Set(axis, angle)
	return angle
}

func (g *PivotGroup) Rotation() Degrees {
	return g.node.Rotation.Degrees()
}
