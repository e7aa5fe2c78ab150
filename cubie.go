package rubik3d

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Cubie is one puzzle piece. Its node rotates about the node origin and the
// mesh hangs under a separate asset node that is shifted on mount so the
// mesh's bounding box is centred on that origin.
type Cubie struct {
	Index int
	Base  Coord

	node    *Node
	asset   *Node
	initial Rotation
	mounted bool
	mounts  int
}

func NewCubie(index int, base Coord) *Cubie {
	c := &Cubie{
		Index: index,
		Base:  base,
		node:  NewNode("cubie"),
		asset: NewNode("asset"),
	}
	c.node.Add(c.asset)
	return c
}

// Node is the transform that rotates when the cubie is rotated.
func (c *Cubie) Node() *Node {
	return c.node
}

// SetInitialRotation sets the rotation the cubie takes on every mount.
func (c *Cubie) SetInitialRotation(r Rotation) {
	c.initial = r
	c.node.Rotation = r
}

func (c *Cubie) Mounted() bool {
	return c.mounted
}

// Mounts counts how many times the cubie has been mounted.
func (c *Cubie) Mounts() int {
	return c.mounts
}

// Mount attaches the loaded mesh and centres its bounding box on the node
// origin. It runs once per mount; later rotations never re-centre.
func (c *Cubie) Mount(m *Model) {
	if m == nil {
		return
	}
	c.asset.Model = m
	c.asset.Position = mgl64.Vec3{}.Sub(m.Center())
	c.node.Rotation = c.initial
	c.mounted = true
	c.mounts++
}

// Unmount drops the mesh. Rotation state goes back to the initial value,
// like a freshly created node would have.
func (c *Cubie) Unmount() {
	c.asset.Model = nil
	c.asset.Position = mgl64.Vec3{}
	c.node.Rotation = c.initial
	c.mounted = false
}

// SetAxisRotation overwrites one axis angle. Any finite value is accepted
// as is. Calls on an unmounted cubie are ignored.
func (c *Cubie) SetAxisRotation(axis Axis, radians float64) {
	if !c.mounted {
		return
	}
	c.node.Rotation.Set(axis, radians)
}

// SetAxisRotationDefault applies DefaultAxisAngle to one axis.
func (c *Cubie) SetAxisRotationDefault(axis Axis) {
	c.SetAxisRotation(axis, DefaultAxisAngle)
}

// Rotation reports the stored angles in degrees, or zero before mount.
func (c *Cubie) Rotation() Degrees {
	if !c.mounted {
		return Degrees{}
	}
	return c.node.Rotation.Degrees()
}
