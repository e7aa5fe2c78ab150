package rubik3d

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
)

type Face struct {
	Points []mgl64.Vec3
	Col    color.RGBA
	normal *mgl64.Vec3
	meRev  bool
}

const (
	FACE_NORMAL  = 0
	FACE_REVERSE = 1
)

func NewFace(pnts []mgl64.Vec3, col color.RGBA) *Face {
	return &Face{
		Points: pnts,
		Col:    col,
	}
}

func (f *Face) AddPoint(x, y, z float64) {
	f.Points = append(f.Points, mgl64.Vec3{x, y, z})
	f.normal = nil
}

// Finished marks the winding. With FACE_REVERSE the normal is flipped.
func (f *Face) Finished(reverse int) {
	f.meRev = reverse == FACE_REVERSE
	f.normal = nil
}

func (f *Face) GetNormal() mgl64.Vec3 {
	if f.normal == nil {
		f.createNormal()
	}
	return *f.normal
}

func (f *Face) createNormal() {
	if len(f.Points) < 3 {
		n := mgl64.Vec3{0, 0, 1}
		f.normal = &n
		return
	}

	u := f.Points[1].Sub(f.Points[0])
	v := f.Points[2].Sub(f.Points[1])
	n := u.Cross(v)
	if f.meRev {
		n = n.Mul(-1)
	}
	if n.Len() > 0 {
		n = n.Normalize()
	}
	f.normal = &n
}

// get midpoint of the face
func (f *Face) GetMidPoint() mgl64.Vec3 {
	if len(f.Points) == 0 {
		return mgl64.Vec3{}
	}

	var sum mgl64.Vec3
	for _, p := range f.Points {
		sum = sum.Add(p)
	}
	return sum.Mul(1 / float64(len(f.Points)))
}
