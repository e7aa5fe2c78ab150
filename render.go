package rubik3d

import (
	"image/color"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// polygonSink receives projected polygons in paint order.
type polygonSink interface {
	AddPolygonAndOutline(xp, yp []float32, fillClr, strokeClr color.RGBA, strokeWidth float32)
}

// Renderer paints every mesh in a node tree with the painter's algorithm.
// It only reads node transforms.
type Renderer struct {
	Width, Height int
	LinesOnly     bool
}

type screenPoly struct {
	xs, ys []float32
	depth  float64
	col    color.RGBA
}

func NewRenderer(width, height int) *Renderer {
	return &Renderer{Width: width, Height: height}
}

// Paint projects the tree under root through cam and sends the visible
// faces to sink, farthest first.
func (r *Renderer) Paint(sink polygonSink, root *Node, cam *Camera) int {
	polys := r.project(root, cam)
	outline := color.RGBA{R: 50, G: 50, B: 50, A: 25}
	for _, p := range polys {
		if r.LinesOnly {
			sink.AddPolygonAndOutline(p.xs, p.ys, color.RGBA{A: 255}, p.col, 1.0)
			continue
		}
		sink.AddPolygonAndOutline(p.xs, p.ys, p.col, outline, 1.0)
	}
	return len(polys)
}

func (r *Renderer) project(root *Node, cam *Camera) []screenPoly {
	view := cam.View()
	proj := cam.Projection()
	var out []screenPoly

	root.Walk(func(n *Node, world mgl64.Mat4) bool {
		if n.Model == nil {
			return true
		}
		mv := view.Mul4(world)
		for _, f := range n.Model.Faces() {
			pts := make([]mgl64.Vec3, len(f.Points))
			for i, p := range f.Points {
				pts[i] = mgl64.TransformCoordinate(p, mv)
			}
			mid := midpoint(pts)
			normal := mgl64.TransformNormal(f.GetNormal(), mv)
			if normal.Len() > 0 {
				normal = normal.Normalize()
			}
			// camera sits at the origin of view space
			if normal.Dot(mid) >= 0 {
				continue
			}

			pts = clipPolygonAgainstNearPlane(pts)
			if len(pts) < 3 {
				continue
			}

			sp := screenPoly{
				xs:    make([]float32, len(pts)),
				ys:    make([]float32, len(pts)),
				depth: mid.Z(),
				col:   getColor(mid, normal, f.Col),
			}
			for i, p := range pts {
				win := mgl64.Project(p, mgl64.Ident4(), proj, 0, 0, r.Width, r.Height)
				sp.xs[i] = float32(win.X())
				sp.ys[i] = float32(float64(r.Height) - win.Y())
			}
			out = append(out, sp)
		}
		return true
	})

	// view space looks down -Z, so more negative is farther away
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].depth < out[j].depth
	})
	return out
}

func midpoint(points []mgl64.Vec3) mgl64.Vec3 {
	var sum mgl64.Vec3
	if len(points) == 0 {
		return sum
	}
	for _, p := range points {
		sum = sum.Add(p)
	}
	return sum.Mul(1 / float64(len(points)))
}

// clipPolygonAgainstNearPlane keeps the part of a polygon in front of the
// near plane (z <= -nearPlane in view space).
func clipPolygonAgainstNearPlane(points []mgl64.Vec3) []mgl64.Vec3 {
	out := make([]mgl64.Vec3, 0, len(points)+1)
	if len(points) == 0 {
		return out
	}
	inside := func(p mgl64.Vec3) bool { return p.Z() <= -nearPlane }

	prev := points[len(points)-1]
	for _, cur := range points {
		switch {
		case inside(cur) && inside(prev):
			out = append(out, cur)
		case inside(cur):
			out = append(out, intersectNearPlane(prev, cur), cur)
		case inside(prev):
			out = append(out, intersectNearPlane(prev, cur))
		}
		prev = cur
	}
	return out
}

func intersectNearPlane(p1, p2 mgl64.Vec3) mgl64.Vec3 {
	dz := p2.Z() - p1.Z()
	if math.Abs(dz) < 1e-12 {
		return p1
	}
	t := (-nearPlane - p1.Z()) / dz
	return p1.Add(p2.Sub(p1).Mul(t))
}

// getColor darkens a face colour with an ambient term plus a spotlight
// pointing down the view direction.
func getColor(point, normal mgl64.Vec3, polyColor color.RGBA) color.RGBA {
	const ambientLight = 0.65
	const spotlightConePower = 10.0
	const spotlightLightAmount = 1.0 - ambientLight

	// faces turned toward the eye have normals pointing to +Z
	diffuseFactor := normal.Z()
	if diffuseFactor < 0 {
		diffuseFactor = 0
	}

	spotlightFactor := 1.0
	if l := point.Len(); l > 0 {
		cosAngle := -point.Z() / l
		if cosAngle < 0 {
			cosAngle = 0
		}
		spotlightFactor = math.Pow(cosAngle, spotlightConePower)
	}

	finalBrightness := ambientLight + diffuseFactor*spotlightFactor*spotlightLightAmount

	c := 240 - int(finalBrightness*240)
	min := 7
	return color.RGBA{
		R: uint8(clamp(int(polyColor.R)-c, min, 255)),
		G: uint8(clamp(int(polyColor.G)-c, min, 255)),
		B: uint8(clamp(int(polyColor.B)-c, min, 255)),
		A: polyColor.A,
	}
}

func clamp(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
