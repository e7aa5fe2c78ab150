package rubik3d

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// Axis selects one of the three orthogonal rotation axes.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// Axes lists the axes in the order they are displayed and applied.
var Axes = [3]Axis{AxisX, AxisY, AxisZ}

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	}
	return fmt.Sprintf("Axis(%d)", int(a))
}

// ParseAxis accepts "x", "y" or "z" in either case.
func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "x":
		return AxisX, nil
	case "y":
		return AxisY, nil
	case "z":
		return AxisZ, nil
	}
	return 0, fmt.Errorf("unknown axis %q", s)
}

// DefaultAxisAngle is applied by SetAxisRotationDefault.
const DefaultAxisAngle = 0.2

// FanStep is the angle added on each activation of a group step.
const FanStep = math.Pi / 6

// Rotation holds three independent per-axis angles in radians.
//
// The angles are not a combined orientation. Each one is overwritten on its
// own and the transform applies them X, then Y, then Z, so when more than
// one axis is non-zero the visual result depends on that order.
type Rotation struct {
	X, Y, Z float64
}

// Get returns the angle stored for an axis.
func (r Rotation) Get(axis Axis) float64 {
	switch axis {
	case AxisX:
		return r.X
	case AxisY:
		return r.Y
	case AxisZ:
		return r.Z
	}
	return 0
}

// Set overwrites the angle stored for an axis. Unknown axes are ignored.
func (r *Rotation) Set(axis Axis, angle float64) {
	switch axis {
	case AxisX:
		r.X = angle
	case AxisY:
		r.Y = angle
	case AxisZ:
		r.Z = angle
	}
}

// Degrees converts the stored radians for display.
func (r Rotation) Degrees() Degrees {
	return Degrees{
		X: ToDegrees(r.X),
		Y: ToDegrees(r.Y),
		Z: ToDegrees(r.Z),
	}
}

// Matrix returns the homogeneous rotation for the three angles.
func (r Rotation) Matrix() mgl64.Mat4 {
	return mgl64.HomogRotate3DX(r.X).
		Mul4(mgl64.HomogRotate3DY(r.Y)).
		Mul4(mgl64.HomogRotate3DZ(r.Z))
}

// Degrees is the UI-facing readout of a Rotation.
type Degrees struct {
	X, Y, Z float64
}

func (d Degrees) String() string {
	return fmt.Sprintf("X: %.1f°, Y: %.1f°, Z: %.1f°", d.X, d.Y, d.Z)
}

// ApproxEqual compares each axis within tolerance.
func (d Degrees) ApproxEqual(o Degrees, tolerance float64) bool {
	return math.Abs(d.X-o.X) <= tolerance &&
		math.Abs(d.Y-o.Y) <= tolerance &&
		math.Abs(d.Z-o.Z) <= tolerance
}

func ToRadians(degrees float64) float64 {
	return mgl64.DegToRad(degrees)
}

func ToDegrees(radians float64) float64 {
	return mgl64.RadToDeg(radians)
}
