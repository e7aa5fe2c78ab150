package rubik3d

import (
	"image/color"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedPolygon struct {
	xs, ys []float32
	fill   color.RGBA
}

type recordingSink struct {
	polys []recordedPolygon
}

func (s *recordingSink) AddPolygonAndOutline(xp, yp []float32, fillClr, strokeClr color.RGBA, strokeWidth float32) {
	s.polys = append(s.polys, recordedPolygon{xs: xp, ys: yp, fill: fillClr})
}

func centredCube(size float64) *Node {
	root := NewNode("root")
	c := NewCubie(1, Coord{})
	root.Add(c.Node())
	c.Mount(NewCubieModel("cube", size, StickerColors))
	return root
}

func TestRendererFrontViewShowsOneFace(t *testing.T) {
	root := centredCube(2)
	cam := NewCamera(0, 0, 10, 50)
	r := NewRenderer(200, 200)
	sink := &recordingSink{}

	n := r.Paint(sink, root, cam)
	require.Equal(t, 1, n)
	require.Len(t, sink.polys, 1)

	p := sink.polys[0]
	assert.Len(t, p.xs, 4)
	var cx, cy float32
	for i := range p.xs {
		cx += p.xs[i]
		cy += p.ys[i]
	}
	assert.InDelta(t, 100, cx/4, 1e-3)
	assert.InDelta(t, 100, cy/4, 1e-3)
	// +Z sticker, lit head on
	assert.InDelta(t, StickerColors[4].G, p.fill.G, 2)
	assert.InDelta(t, StickerColors[4].B, p.fill.B, 2)
}

func TestRendererScreenYPointsDown(t *testing.T) {
	root := NewNode("root")
	n := NewNode("tri")
	m := NewModel("tri")
	f := NewFace([]mgl64.Vec3{{0, 1, 0}, {-1, 0, 0}, {1, 0, 0}}, color.RGBA{R: 200, A: 255})
	f.Finished(FACE_NORMAL)
	m.AddFace(f)
	m.Finished()
	n.Model = m
	root.Add(n)

	sink := &recordingSink{}
	NewRenderer(100, 100).Paint(sink, root, NewCamera(0, 0, 10, 50))
	require.Len(t, sink.polys, 1)
	// the apex is above the base on screen
	assert.Less(t, sink.polys[0].ys[0], sink.polys[0].ys[1])
}

func TestRendererCornerViewPaintsFarthestFirst(t *testing.T) {
	root := centredCube(2)
	cam := NewCamera(10, 8, 6, 50)
	r := NewRenderer(320, 240)

	polys := r.project(root, cam)
	require.Len(t, polys, 3)
	for i := 1; i < len(polys); i++ {
		assert.LessOrEqual(t, polys[i-1].depth, polys[i].depth)
	}
}

func TestRendererSkipsUnmountedAndBehind(t *testing.T) {
	root := NewNode("root")
	c := NewCubie(1, Coord{})
	root.Add(c.Node())
	sink := &recordingSink{}
	assert.Zero(t, NewRenderer(100, 100).Paint(sink, root, NewCamera(0, 0, 10, 50)))

	behind := centredCube(2)
	cam := NewCamera(0, 0, 10, 50)
	cam.LookAt(mgl64.Vec3{0, 0, 20})
	assert.Zero(t, NewRenderer(100, 100).Paint(sink, behind, cam))
}

func TestClipPolygonAgainstNearPlane(t *testing.T) {
	testCases := []struct {
		name     string
		input    []mgl64.Vec3
		expected []mgl64.Vec3
	}{
		{
			name:     "fully in front",
			input:    []mgl64.Vec3{{0, 0, -5}, {1, 0, -5}, {0, 1, -5}},
			expected: []mgl64.Vec3{{0, 0, -5}, {1, 0, -5}, {0, 1, -5}},
		},
		{
			name:     "fully behind",
			input:    []mgl64.Vec3{{0, 0, 1}, {1, 0, 1}, {0, 1, 1}},
			expected: []mgl64.Vec3{},
		},
		{
			name:  "one vertex behind",
			input: []mgl64.Vec3{{0, 0, -1.1}, {1, 0, 0.9}, {0, 1, -1.1}},
			expected: []mgl64.Vec3{
				{0, 0, -1.1},
				{0.5, 0, -nearPlane},
				{0.5, 0.5, -nearPlane},
				{0, 1, -1.1},
			},
		},
		{
			name:     "empty",
			input:    nil,
			expected: []mgl64.Vec3{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := clipPolygonAgainstNearPlane(tc.input)
			require.Len(t, got, len(tc.expected))
			for i := range got {
				assert.True(t, vecAlmostEqual(tc.expected[i], got[i]), "vertex %d: want %v got %v", i, tc.expected[i], got[i])
			}
		})
	}
}

func TestGetColor(t *testing.T) {
	base := color.RGBA{R: 200, G: 100, B: 50, A: 255}

	lit := getColor(mgl64.Vec3{0, 0, -10}, mgl64.Vec3{0, 0, 1}, base)
	assert.Equal(t, base, lit)

	// edge-on faces only get ambient light
	dim := getColor(mgl64.Vec3{0, 0, -10}, mgl64.Vec3{1, 0, 0}, base)
	assert.Less(t, dim.R, base.R)
	assert.Equal(t, uint8(7), dim.B)
	assert.Equal(t, base.A, dim.A)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 7, clamp(-3, 7, 255))
	assert.Equal(t, 255, clamp(300, 7, 255))
	assert.Equal(t, 42, clamp(42, 7, 255))
}
