package rubik3d

import (
	"log"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	defaultFovY = 50
	nearPlane   = 0.1
	farPlane    = 1000
)

type Camera struct {
	position   mgl64.Vec3
	target     mgl64.Vec3
	view       mgl64.Mat4
	projection mgl64.Mat4
	fovY       float64
	aspect     float64
}

// NewCamera creates a camera at (xp, yp, zp) looking at the origin with a
// vertical field of view in degrees.
func NewCamera(xp, yp, zp, fovY float64) *Camera {
	if fovY <= 0 {
		fovY = defaultFovY
	}
	c := &Camera{
		position: mgl64.Vec3{xp, yp, zp},
		fovY:     fovY,
		aspect:   1,
	}
	c.LookAt(mgl64.Vec3{})
	c.UpdateProjection()
	return c
}

func (c *Camera) GetPosition() mgl64.Vec3 {
	return c.position
}

func (c *Camera) SetCameraPosition(x, y, z float64) {
	c.position = mgl64.Vec3{x, y, z}
}

// LookAt aims the camera at target from its current position.
func (c *Camera) LookAt(target mgl64.Vec3) {
	c.target = target
	dir := target.Sub(c.position)
	if dir.Len() < 1e-9 {
		// eye on the target: keep a plain translation
		c.view = mgl64.Translate3D(-c.position.X(), -c.position.Y(), -c.position.Z())
		return
	}
	up := mgl64.Vec3{0, 1, 0}
	if dir.Normalize().Cross(up).Len() < 1e-9 {
		up = mgl64.Vec3{0, 0, -1}
	}
	c.view = mgl64.LookAtV(c.position, target, up)
}

// SetAspect changes the viewport ratio and recomputes the projection.
func (c *Camera) SetAspect(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.aspect = float64(width) / float64(height)
	c.UpdateProjection()
}

func (c *Camera) UpdateProjection() {
	c.projection = mgl64.Perspective(mgl64.DegToRad(c.fovY), c.aspect, nearPlane, farPlane)
}

func (c *Camera) View() mgl64.Mat4 {
	return c.view
}

func (c *Camera) Projection() mgl64.Mat4 {
	return c.projection
}

func (c *Camera) Target() mgl64.Vec3 {
	return c.target
}

// Forward is the world direction the camera faces.
func (c *Camera) Forward() mgl64.Vec3 {
	return c.view.Row(2).Vec3().Mul(-1)
}

// CameraController moves the camera whenever the observed position state
// changes, and only then.
type CameraController struct {
	camera   *Camera
	position mgl64.Vec3
	updates  int
}

func NewCameraController(camera *Camera) *CameraController {
	return &CameraController{
		camera:   camera,
		position: camera.GetPosition(),
	}
}

func (cc *CameraController) Camera() *Camera {
	return cc.camera
}

// Position is the current camera position state.
func (cc *CameraController) Position() mgl64.Vec3 {
	return cc.position
}

// Updates counts how many times the viewpoint was recomputed.
func (cc *CameraController) Updates() int {
	return cc.updates
}

// SetPosition changes the position state. It reports whether the state
// changed and the camera moved.
func (cc *CameraController) SetPosition(x, y, z float64) bool {
	p := mgl64.Vec3{x, y, z}
	if p == cc.position {
		return false
	}
	cc.position = p
	cc.apply()
	return true
}

// SetAxis changes one coordinate from UI text; non-numeric text reads as 0.
func (cc *CameraController) SetAxis(axis Axis, value string) bool {
	v, ok := ParseNumber(value)
	if !ok && strings.TrimSpace(value) != "" {
		log.Printf("camera: %q is not a number, using 0", value)
	}
	p := cc.position
	switch axis {
	case AxisX:
		p[0] = v
	case AxisY:
		p[1] = v
	case AxisZ:
		p[2] = v
	default:
		return false
	}
	return cc.SetPosition(p.X(), p.Y(), p.Z())
}

// Reset returns the position state to the world origin.
func (cc *CameraController) Reset() bool {
	return cc.SetPosition(0, 0, 0)
}

func (cc *CameraController) apply() {
	cc.camera.SetCameraPosition(cc.position.X(), cc.position.Y(), cc.position.Z())
	cc.camera.LookAt(mgl64.Vec3{})
	cc.camera.UpdateProjection()
	cc.updates++
}
