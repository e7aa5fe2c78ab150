package rubik3d

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const float64EqualityThreshold = 1e-6

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= float64EqualityThreshold
}

func vecAlmostEqual(a, b mgl64.Vec3) bool {
	return almostEqual(a.X(), b.X()) && almostEqual(a.Y(), b.Y()) && almostEqual(a.Z(), b.Z())
}

func TestDegreeRadianRoundTrip(t *testing.T) {
	for _, d := range []float64{0, 1, -1, 45, 90, 180, -270, 359.9, 720, 12345.678} {
		back := ToDegrees(ToRadians(d))
		tol := 1e-9 * math.Max(1, math.Abs(d))
		assert.InDelta(t, d, back, tol, "degrees %v", d)
	}
	assert.InDelta(t, math.Pi/2, ToRadians(90), 1e-12)
}

func TestParseAxis(t *testing.T) {
	testCases := []struct {
		in       string
		expected Axis
		wantErr  bool
	}{
		{"x", AxisX, false},
		{"Y", AxisY, false},
		{" z ", AxisZ, false},
		{"w", 0, true},
		{"", 0, true},
	}
	for _, tc := range testCases {
		a, err := ParseAxis(tc.in)
		if tc.wantErr {
			assert.Error(t, err, "input %q", tc.in)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tc.expected, a)
		assert.Equal(t, a, mustParseAxis(t, a.String()))
	}
}

func mustParseAxis(t *testing.T, s string) Axis {
	t.Helper()
	a, err := ParseAxis(s)
	require.NoError(t, err)
	return a
}

func TestRotationSetIsIndependentPerAxis(t *testing.T) {
	var r Rotation
	r.Set(AxisX, 1)
	r.Set(AxisY, 2)
	r.Set(AxisX, 3)
	assert.Equal(t, Rotation{X: 3, Y: 2}, r)
	assert.Equal(t, 2.0, r.Get(AxisY))
	assert.Equal(t, 0.0, r.Get(Axis(7)))

	r.Set(Axis(7), 9)
	assert.Equal(t, Rotation{X: 3, Y: 2}, r)
}

func TestRotationMatrixOrder(t *testing.T) {
	r := Rotation{X: math.Pi / 2, Z: math.Pi / 2}
	// Rx * Rz: the point meets Rz first.
	p := mgl64.TransformCoordinate(mgl64.Vec3{1, 0, 0}, r.Matrix())
	assert.True(t, vecAlmostEqual(mgl64.Vec3{0, 0, 1}, p), "got %v", p)

	swapped := mgl64.HomogRotate3DZ(math.Pi / 2).Mul4(mgl64.HomogRotate3DX(math.Pi / 2))
	q := mgl64.TransformCoordinate(mgl64.Vec3{1, 0, 0}, swapped)
	assert.False(t, vecAlmostEqual(p, q))
}

func TestDegreesString(t *testing.T) {
	d := Rotation{Y: math.Pi / 2}.Degrees()
	assert.Equal(t, "X: 0.0°, Y: 90.0°, Z: 0.0°", d.String())
	assert.True(t, d.ApproxEqual(Degrees{Y: 90}, 1e-9))
	assert.False(t, d.ApproxEqual(Degrees{Y: 90.1}, 1e-9))
}
