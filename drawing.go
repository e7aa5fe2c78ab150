package rubik3d

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	whiteImage = ebiten.NewImage(3, 3)
	whiteSub   *ebiten.Image
)

func init() {
	whiteImage.Fill(color.White)
	whiteSub = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}

// PolygonBatcher collects filled and stroked polygons and draws them with
// as few DrawTriangles calls as the index format allows.
type PolygonBatcher struct {
	vertices []ebiten.Vertex
	indices  []uint16
	screen   *ebiten.Image
}

func NewPolygonBatcher(screen *ebiten.Image) *PolygonBatcher {
	return &PolygonBatcher{screen: screen}
}

func (b *PolygonBatcher) AddPolygon(xp, yp []float32, clr color.RGBA) {
	if len(xp) < 3 {
		return
	}
	b.reserve(len(xp))

	base := uint16(len(b.vertices))
	cr, cg, cb, ca := colorComponents(clr)
	for i := range xp {
		b.vertices = append(b.vertices, ebiten.Vertex{
			DstX:   xp[i],
			DstY:   yp[i],
			SrcX:   1,
			SrcY:   1,
			ColorR: cr,
			ColorG: cg,
			ColorB: cb,
			ColorA: ca,
		})
	}
	for i := 2; i < len(xp); i++ {
		b.indices = append(b.indices, base, base+uint16(i-1), base+uint16(i))
	}
}

// AddOutline strokes the closed outline of a polygon.
func (b *PolygonBatcher) AddOutline(xp, yp []float32, strokeWidth float32, clr color.RGBA) {
	if len(xp) < 2 {
		return
	}

	var path vector.Path
	path.MoveTo(xp[0], yp[0])
	for i := 1; i < len(xp); i++ {
		path.LineTo(xp[i], yp[i])
	}
	path.Close()

	vs, is := path.AppendVerticesAndIndicesForStroke(nil, nil, &vector.StrokeOptions{Width: strokeWidth})
	b.reserve(len(vs))

	base := uint16(len(b.vertices))
	cr, cg, cb, ca := colorComponents(clr)
	for i := range vs {
		vs[i].ColorR = cr
		vs[i].ColorG = cg
		vs[i].ColorB = cb
		vs[i].ColorA = ca
		vs[i].SrcX = 1
		vs[i].SrcY = 1
	}
	b.vertices = append(b.vertices, vs...)
	for _, idx := range is {
		b.indices = append(b.indices, base+idx)
	}
}

func (b *PolygonBatcher) AddPolygonAndOutline(xp, yp []float32, fillClr, strokeClr color.RGBA, strokeWidth float32) {
	b.AddPolygon(xp, yp, fillClr)
	b.AddOutline(xp, yp, strokeWidth, strokeClr)
}

// Flush draws everything batched so far. Triangles are drawn in the order
// they were added, which keeps the painter's ordering.
func (b *PolygonBatcher) Flush() {
	if len(b.indices) == 0 || b.screen == nil {
		b.vertices = b.vertices[:0]
		b.indices = b.indices[:0]
		return
	}
	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	b.screen.DrawTriangles(b.vertices, b.indices, whiteSub, op)
	b.vertices = b.vertices[:0]
	b.indices = b.indices[:0]
}

func (b *PolygonBatcher) reserve(n int) {
	if len(b.vertices)+n > math.MaxUint16 {
		b.Flush()
	}
}

func colorComponents(clr color.RGBA) (float32, float32, float32, float32) {
	return float32(clr.R) / 255.0, float32(clr.G) / 255.0, float32(clr.B) / 255.0, float32(clr.A) / 255.0
}
