package rubik3d

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Node is a transform in the scene graph. A node's world transform is its
// parent's world transform followed by its own position, rotation and scale.
type Node struct {
	Name     string
	Position mgl64.Vec3
	Rotation Rotation
	Scale    float64
	Model    *Model

	parent   *Node
	children []*Node
}

func NewNode(name string) *Node {
	return &Node{Name: name, Scale: 1}
}

func (n *Node) Parent() *Node {
	return n.parent
}

func (n *Node) Children() []*Node {
	return n.children
}

// Add attaches child to n, detaching it from any previous parent.
func (n *Node) Add(child *Node) {
	if child == nil || child == n {
		return
	}
	if child.parent != nil {
		child.parent.Remove(child)
	}
	child.parent = n
	n.children = append(n.children, child)
}

// Remove detaches child. It reports whether child was attached to n.
func (n *Node) Remove(child *Node) bool {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			return true
		}
	}
	return false
}

// Attached reports whether the node hangs under root.
func (n *Node) Attached(root *Node) bool {
	for p := n; p != nil; p = p.parent {
		if p == root {
			return true
		}
	}
	return false
}

func (n *Node) LocalMatrix() mgl64.Mat4 {
	s := n.Scale
	if s == 0 {
		s = 1
	}
	return mgl64.Translate3D(n.Position.X(), n.Position.Y(), n.Position.Z()).
		Mul4(n.Rotation.Matrix()).
		Mul4(mgl64.Scale3D(s, s, s))
}

func (n *Node) WorldMatrix() mgl64.Mat4 {
	m := n.LocalMatrix()
	for p := n.parent; p != nil; p = p.parent {
		m = p.LocalMatrix().Mul4(m)
	}
	return m
}

// WorldPosition returns where the node's local origin ends up in the world.
func (n *Node) WorldPosition() mgl64.Vec3 {
	return mgl64.TransformCoordinate(mgl64.Vec3{}, n.WorldMatrix())
}

// Walk visits n and every descendant depth first, passing each node's world
// matrix. Returning false from fn skips the node's children.
func (n *Node) Walk(fn func(node *Node, world mgl64.Mat4) bool) {
	start := mgl64.Ident4()
	if n.parent != nil {
		start = n.parent.WorldMatrix()
	}
	n.walk(start, fn)
}

func (n *Node) walk(parent mgl64.Mat4, fn func(*Node, mgl64.Mat4) bool) {
	world := parent.Mul4(n.LocalMatrix())
	if !fn(n, world) {
		return
	}
	for _, c := range n.children {
		c.walk(world, fn)
	}
}
