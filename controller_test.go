package rubik3d

import (
	"bytes"
	"log"
	"math"
	"os"
	"strconv"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mountedRegistry(t *testing.T, indices ...int) (*Registry, map[int]*Cubie) {
	t.Helper()
	r := NewRegistry()
	cubies := map[int]*Cubie{}
	m := NewCubieModel("test", 1, StickerColors)
	for _, i := range indices {
		c := NewCubie(i, Coord{})
		c.Mount(m)
		r.Register(i, c)
		cubies[i] = c
	}
	return r, cubies
}

func TestParseNumber(t *testing.T) {
	testCases := []struct {
		in       string
		expected float64
		ok       bool
	}{
		{"90", 90, true},
		{" -45.5 ", -45.5, true},
		{"1e2", 100, true},
		{"", 0, false},
		{"abc", 0, false},
		{"12deg", 0, false},
		{"NaN", 0, false},
		{"Inf", 0, false},
		{"-Infinity", 0, false},
	}
	for _, tc := range testCases {
		v, ok := ParseNumber(tc.in)
		assert.Equal(t, tc.ok, ok, "input %q", tc.in)
		assert.Equal(t, tc.expected, v, "input %q", tc.in)
	}
}

func TestApplyRotationSetsAxisAndDisplay(t *testing.T) {
	r, cubies := mountedRegistry(t, 5)
	c := NewRotationController(r)

	d, ok := c.ApplyRotation(5, AxisY, "90")
	require.True(t, ok)
	assert.True(t, d.ApproxEqual(Degrees{Y: 90}, 1e-9), "got %v", d)
	assert.InDelta(t, math.Pi/2, cubies[5].Node().Rotation.Y, 1e-12)

	shown, ok := c.Display(5)
	require.True(t, ok)
	assert.Equal(t, d, shown)
	assert.Equal(t, "X: 0.0°, Y: 90.0°, Z: 0.0°", shown.String())
}

func TestApplyRotationUnregisteredIsNoOp(t *testing.T) {
	r, cubies := mountedRegistry(t, 1, 2)
	c := NewRotationController(r)
	before := r.Indices()

	_, ok := c.ApplyRotation(7, AxisX, "45")
	assert.False(t, ok)
	_, shown := c.Display(7)
	assert.False(t, shown)
	assert.Equal(t, before, r.Indices())
	for _, cb := range cubies {
		assert.Equal(t, Rotation{}, cb.Node().Rotation)
	}
}

func TestApplyRotationMalformedIsZero(t *testing.T) {
	r, _ := mountedRegistry(t, 3)
	c := NewRotationController(r)

	c.ApplyRotation(3, AxisZ, "30")
	bad, _ := c.ApplyRotation(3, AxisZ, "abc")
	r2, _ := mountedRegistry(t, 3)
	zero, _ := NewRotationController(r2).ApplyRotation(3, AxisZ, "0")
	assert.Equal(t, zero, bad)

	empty, _ := c.ApplyRotation(3, AxisZ, "")
	assert.Equal(t, zero, empty)
}

func TestApplyRotationIsIdempotent(t *testing.T) {
	r, _ := mountedRegistry(t, 9)
	c := NewRotationController(r)
	first, _ := c.ApplyRotation(9, AxisX, "33.3")
	second, _ := c.ApplyRotation(9, AxisX, "33.3")
	assert.Equal(t, first, second)
}

func TestApplyRotationRoundTrip(t *testing.T) {
	r, _ := mountedRegistry(t, 1)
	c := NewRotationController(r)
	for _, v := range []float64{0, 12.5, -170, 359, 1080} {
		d, ok := c.ApplyRotation(1, AxisX, strconv.FormatFloat(v, 'g', -1, 64))
		require.True(t, ok)
		assert.InDelta(t, v, d.X, 1e-9*math.Max(1, math.Abs(v)))
	}
}

func TestApplyGroupRotationAndStep(t *testing.T) {
	c := NewRotationController(NewRegistry())
	g := NewPivotGroup("hinge", mgl64.Vec3{})

	d, ok := c.ApplyGroupRotation(g, AxisX, "-90")
	require.True(t, ok)
	assert.True(t, d.ApproxEqual(Degrees{X: -90}, 1e-9))

	c.ApplyGroupRotation(g, AxisZ, "0")
	c.StepGroup(g, AxisZ)
	d, _ = c.StepGroup(g, AxisZ)
	assert.InDelta(t, math.Pi/3, g.Node().Rotation.Z, 1e-12)
	assert.True(t, d.ApproxEqual(Degrees{X: -90, Z: 60}, 1e-9))

	shown, ok := c.GroupDisplay(g)
	require.True(t, ok)
	assert.Equal(t, d, shown)

	_, ok = c.ApplyGroupRotation(nil, AxisX, "1")
	assert.False(t, ok)
	_, ok = c.StepGroup(nil, AxisX)
	assert.False(t, ok)
}

func TestDisplayFollowsUnmountAndRemount(t *testing.T) {
	s, err := NewScene(FanPreset(), nil)
	require.NoError(t, err)
	m := NewCubieModel("test", 2, StickerColors)
	require.NoError(t, s.Mount(3, m))
	c := NewRotationController(s.Registry)

	d, ok := c.ApplyRotation(3, AxisY, "90")
	require.True(t, ok)
	assert.True(t, d.ApproxEqual(Degrees{Y: 90}, 1e-9))

	require.True(t, s.Unmount(3))
	require.NoError(t, s.Mount(3, m))
	cubie, _ := s.Cubie(3)
	d, ok = c.Display(3)
	require.True(t, ok)
	assert.Equal(t, cubie.Rotation(), d)
	assert.True(t, d.ApproxEqual(Degrees{}, 1e-9), "got %v", d)

	require.True(t, s.Unmount(3))
	_, ok = c.Display(3)
	assert.False(t, ok)
	require.NoError(t, s.Mount(3, m))
	_, ok = c.Display(3)
	assert.False(t, ok, "readout is dropped once the cubie unregisters")
}

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })
	return &buf
}

func TestBlankInputIsNotDiagnosed(t *testing.T) {
	r, _ := mountedRegistry(t, 1)
	rc := NewRotationController(r)
	cc := NewCameraController(NewCamera(1, 2, 3, 50))
	buf := captureLog(t)

	rc.ApplyRotation(1, AxisX, "   ")
	assert.True(t, cc.SetAxis(AxisX, " \t"))
	assert.Equal(t, mgl64.Vec3{0, 2, 3}, cc.Position())
	assert.Empty(t, buf.String())

	cc.SetAxis(AxisY, "up")
	assert.Contains(t, buf.String(), "not a number")
}
