package rubik3d

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"log"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// Model is a polygon mesh loaded from an asset. Models are shared between
// every node that displays them and are never modified after loading.
type Model struct {
	Name  string
	faces []*Face
	min   mgl64.Vec3
	max   mgl64.Vec3
}

func NewModel(name string) *Model {
	return &Model{Name: name}
}

func (o *Model) AddFace(f *Face) {
	o.faces = append(o.faces, f)
}

func (o *Model) Faces() []*Face {
	return o.faces
}

func (o *Model) FaceCount() int {
	return len(o.faces)
}

// Finished computes the bounding box once all faces are added.
func (o *Model) Finished() {
	o.calcBounds()
	size := o.Size()
	log.Printf("Model %s: %d faces, size X: %.2f, Y: %.2f, Z: %.2f", o.Name, len(o.faces), size.X(), size.Y(), size.Z())
}

func (o *Model) calcBounds() {
	first := true
	for _, f := range o.faces {
		for _, p := range f.Points {
			if first {
				o.min, o.max = p, p
				first = false
				continue
			}
			for i := 0; i < 3; i++ {
				o.min[i] = math.Min(o.min[i], p[i])
				o.max[i] = math.Max(o.max[i], p[i])
			}
		}
	}
	if first {
		o.min, o.max = mgl64.Vec3{}, mgl64.Vec3{}
	}
}

// Bounds returns the corners of the axis-aligned bounding box.
func (o *Model) Bounds() (mgl64.Vec3, mgl64.Vec3) {
	return o.min, o.max
}

// Center returns the middle of the bounding box.
func (o *Model) Center() mgl64.Vec3 {
	return o.min.Add(o.max).Mul(0.5)
}

func (o *Model) Size() mgl64.Vec3 {
	return o.max.Sub(o.min)
}

// Clone returns a deep copy that can be edited without touching o.
func (o *Model) Clone() *Model {
	return o.transform(o.Name, func(p mgl64.Vec3) mgl64.Vec3 { return p })
}

// Scaled returns a copy with every point multiplied by factor.
func (o *Model) Scaled(factor float64) *Model {
	return o.transform(fmt.Sprintf("%s*%g", o.Name, factor), func(p mgl64.Vec3) mgl64.Vec3 { return p.Mul(factor) })
}

func (o *Model) transform(name string, fn func(mgl64.Vec3) mgl64.Vec3) *Model {
	clone := &Model{Name: name, faces: make([]*Face, 0, len(o.faces))}
	for _, f := range o.faces {
		pts := make([]mgl64.Vec3, len(f.Points))
		for i, p := range f.Points {
			pts[i] = fn(p)
		}
		nf := NewFace(pts, f.Col)
		nf.meRev = f.meRev
		clone.faces = append(clone.faces, nf)
	}
	clone.calcBounds()
	return clone
}

// Standard sticker colours, indexed +X, -X, +Y, -Y, +Z, -Z.
var StickerColors = [6]color.RGBA{
	{R: 183, G: 18, B: 52, A: 255},
	{R: 255, G: 88, B: 0, A: 255},
	{R: 255, G: 255, B: 255, A: 255},
	{R: 255, G: 213, B: 0, A: 255},
	{R: 0, G: 155, B: 72, A: 255},
	{R: 0, G: 70, B: 173, A: 255},
}

// NewCubieModel builds a cube with edge size whose corner sits at the local
// origin, the way exported assets often carry an off-centre origin.
func NewCubieModel(name string, size float64, colors [6]color.RGBA) *Model {
	s := size
	quads := [6][4]mgl64.Vec3{
		{{s, 0, 0}, {s, s, 0}, {s, s, s}, {s, 0, s}},
		{{0, 0, 0}, {0, 0, s}, {0, s, s}, {0, s, 0}},
		{{0, s, 0}, {0, s, s}, {s, s, s}, {s, s, 0}},
		{{0, 0, 0}, {s, 0, 0}, {s, 0, s}, {0, 0, s}},
		{{0, 0, s}, {s, 0, s}, {s, s, s}, {0, s, s}},
		{{0, 0, 0}, {0, s, 0}, {s, s, 0}, {s, 0, 0}},
	}

	m := NewModel(name)
	for i, q := range quads {
		pts := make([]mgl64.Vec3, len(q))
		copy(pts, q[:])
		f := NewFace(pts, colors[i])
		f.Finished(FACE_NORMAL)
		m.AddFace(f)
	}
	m.Finished()
	return m
}

// LoadModelFromFile picks a loader by file extension.
func LoadModelFromFile(fileName string, reverse int) (*Model, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return nil, fmt.Errorf("could not open model file %s: %w", fileName, err)
	}
	defer file.Close()

	var m *Model
	switch ext := strings.ToLower(filepath.Ext(fileName)); ext {
	case ".ply":
		m, err = LoadModelFromPLYReader(file, reverse)
	case ".dxf":
		m, err = LoadModelFromDXFReader(file, reverse)
	default:
		return nil, fmt.Errorf("unsupported model format %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("error parsing model file %s: %w", fileName, err)
	}
	m.Name = fileName
	return m, nil
}

type plyVertex struct {
	pos   mgl64.Vec3
	color color.RGBA
}

// LoadModelFromPLYReader reads an ASCII PLY mesh. Face colours come from
// face properties when present, else from the average vertex colour, else
// a neutral grey.
func LoadModelFromPLYReader(reader io.Reader, reverse int) (*Model, error) {
	obj := NewModel("ply")
	scanner := bufio.NewScanner(reader)

	var vertexCount, faceCount int
	var hasVertexColor, hasFaceColor bool
	var currentElement string
	headerDone := false

	for !headerDone && scanner.Scan() {
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "element":
			if len(parts) == 3 {
				currentElement = parts[1]
				n, err := strconv.Atoi(parts[2])
				if err != nil {
					return nil, fmt.Errorf("invalid element count %q: %w", parts[2], err)
				}
				switch parts[1] {
				case "vertex":
					vertexCount = n
				case "face":
					faceCount = n
				}
			}
		case "property":
			if len(parts) > 2 && (parts[2] == "red" || parts[2] == "diffuse_red") {
				switch currentElement {
				case "vertex":
					hasVertexColor = true
				case "face":
					hasFaceColor = true
				}
			}
		case "end_header":
			headerDone = true
		}
	}
	if !headerDone {
		return nil, fmt.Errorf("missing end_header")
	}

	vertices := make([]plyVertex, 0, vertexCount)
	for i := 0; i < vertexCount; i++ {
		if !scanner.Scan() {
			return nil, fmt.Errorf("unexpected end of file while reading vertices")
		}
		parts := strings.Fields(scanner.Text())
		want := 3
		if hasVertexColor {
			want = 6
		}
		if len(parts) < want {
			return nil, fmt.Errorf("invalid vertex data on line %d", i)
		}
		var v plyVertex
		for j := 0; j < 3; j++ {
			f, err := strconv.ParseFloat(parts[j], 64)
			if err != nil {
				return nil, fmt.Errorf("could not parse vertex %d: %w", i, err)
			}
			v.pos[j] = f
		}
		v.color = color.RGBA{R: 255, G: 255, B: 255, A: 255}
		if hasVertexColor {
			v.color = parseRGB(parts[3:6])
		}
		vertices = append(vertices, v)
	}

	for i := 0; i < faceCount; i++ {
		if !scanner.Scan() {
			return nil, fmt.Errorf("unexpected end of file while reading faces")
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			return nil, fmt.Errorf("empty face on line %d", i)
		}
		numFaceVerts, err := strconv.Atoi(parts[0])
		if err != nil || numFaceVerts < 3 || len(parts) < numFaceVerts+1 {
			return nil, fmt.Errorf("invalid face data on line %d", i)
		}

		idx := make([]int, numFaceVerts)
		for j := range idx {
			n, err := strconv.Atoi(parts[j+1])
			if err != nil || n < 0 || n >= len(vertices) {
				return nil, fmt.Errorf("invalid vertex index %q on face %d", parts[j+1], i)
			}
			idx[j] = n
		}

		var faceColor color.RGBA
		switch {
		case hasFaceColor:
			if len(parts) != numFaceVerts+1+3 {
				return nil, fmt.Errorf("invalid face-color data on line %d", i)
			}
			faceColor = parseRGB(parts[numFaceVerts+1:])
		case hasVertexColor:
			var r, g, b int
			for _, n := range idx {
				r += int(vertices[n].color.R)
				g += int(vertices[n].color.G)
				b += int(vertices[n].color.B)
			}
			faceColor = color.RGBA{
				R: uint8(r / numFaceVerts),
				G: uint8(g / numFaceVerts),
				B: uint8(b / numFaceVerts),
				A: 255,
			}
		default:
			faceColor = color.RGBA{R: 128, G: 128, B: 128, A: 255}
		}

		aFace := NewFace(nil, faceColor)
		for _, n := range idx {
			p := vertices[n].pos
			aFace.AddPoint(p.X(), p.Y(), p.Z())
		}
		aFace.Finished(reverse)
		obj.AddFace(aFace)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from PLY source: %w", err)
	}

	obj.Finished()
	return obj, nil
}

func parseRGB(parts []string) color.RGBA {
	var c [3]uint8
	for i := 0; i < 3 && i < len(parts); i++ {
		v, _ := strconv.ParseUint(parts[i], 10, 8)
		c[i] = uint8(v)
	}
	return color.RGBA{R: c[0], G: c[1], B: c[2], A: 255}
}

// LoadModelFromDXFReader reads the 3DFACE entities of a simplified ASCII
// DXF file. Faces are coloured from the sticker palette in turn.
func LoadModelFromDXFReader(reader io.Reader, reverse int) (*Model, error) {
	obj := NewModel("dxf")
	scanner := bufio.NewScanner(reader)

	readFloatLine := func() (float64, error) {
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return 0, err
			}
			return 0, io.ErrUnexpectedEOF
		}
		val, err := strconv.ParseFloat(strings.TrimSpace(scanner.Text()), 64)
		if err != nil {
			return 0, fmt.Errorf("could not parse float value '%s': %w", scanner.Text(), err)
		}
		return val, nil
	}

	for scanner.Scan() {
		if !strings.HasPrefix(strings.TrimSpace(scanner.Text()), "3DFACE") {
			continue
		}

		// layer group code, layer name, first coordinate group code
		for i := 0; i < 3; i++ {
			if !scanner.Scan() {
				return nil, fmt.Errorf("unexpected end of file while parsing 3DFACE header")
			}
		}

		aFace := NewFace(nil, StickerColors[obj.FaceCount()%len(StickerColors)])
		for c := 0; c < 4; c++ {
			var xyz [3]float64
			for k := range xyz {
				v, err := readFloatLine()
				if err != nil {
					return nil, fmt.Errorf("error reading coordinate %d of vertex %d: %w", k, c, err)
				}
				xyz[k] = v
				scanner.Scan() // next group code
			}
			aFace.AddPoint(xyz[0], xyz[1], xyz[2])
		}

		aFace.Finished(reverse)
		obj.AddFace(aFace)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from DXF source: %w", err)
	}

	obj.Finished()
	return obj, nil
}
