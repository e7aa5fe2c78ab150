package rubik3d

import (
	"fmt"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// Coord is a slot in the cubie lattice.
type Coord struct {
	X, Y, Z int
}

func (c Coord) Vec3() mgl64.Vec3 {
	return mgl64.Vec3{float64(c.X), float64(c.Y), float64(c.Z)}
}

func (c Coord) Add(shift int) Coord {
	return Coord{c.X + shift, c.Y + shift, c.Z + shift}
}

// LatticeStep is the distance between neighbouring cubies on every axis.
const LatticeStep = 3

// DefaultLayoutShift moves the standard table so it is centred on the origin.
const DefaultLayoutShift = 3

// standardLayout is the fixed slot order of the 27 cubies. Layers run from
// z=0 to z=-6 and each layer is walked back and forth, continuing from the
// slot where the previous layer ended.
var standardLayout = [...]Coord{
	1: {0, 0, 0}, 2: {-3, 0, 0}, 3: {-6, 0, 0},
	4: {-6, -3, 0}, 5: {-3, -3, 0}, 6: {0, -3, 0},
	7: {0, -6, 0}, 8: {-3, -6, 0}, 9: {-6, -6, 0},

	10: {-6, -6, -3}, 11: {-3, -6, -3}, 12: {0, -6, -3},
	13: {0, -3, -3}, 14: {-3, -3, -3}, 15: {-6, -3, -3},
	16: {-6, 0, -3}, 17: {-3, 0, -3}, 18: {0, 0, -3},

	19: {0, 0, -6}, 20: {-3, 0, -6}, 21: {-6, 0, -6},
	22: {-6, -3, -6}, 23: {-3, -3, -6}, 24: {0, -3, -6},
	25: {0, -6, -6}, 26: {-3, -6, -6}, 27: {-6, -6, -6},
}

// LayoutTable maps a cubie index to its lattice slot.
type LayoutTable struct {
	slots map[int]Coord
}

// StandardLayout returns the 27-slot table used by the full grid.
func StandardLayout() *LayoutTable {
	t := &LayoutTable{slots: make(map[int]Coord, len(standardLayout)-1)}
	for i := 1; i < len(standardLayout); i++ {
		t.slots[i] = standardLayout[i]
	}
	return t
}

// NewLayoutTable builds a table from explicit entries and validates it.
func NewLayoutTable(slots map[int]Coord) (*LayoutTable, error) {
	t := &LayoutTable{slots: make(map[int]Coord, len(slots))}
	for i, c := range slots {
		t.slots[i] = c
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Position returns the unshifted slot of a cubie.
func (t *LayoutTable) Position(index int) (Coord, bool) {
	c, ok := t.slots[index]
	return c, ok
}

// Shifted returns the slot moved by a uniform shift on every axis.
func (t *LayoutTable) Shifted(index, shift int) (Coord, bool) {
	c, ok := t.slots[index]
	if !ok {
		return Coord{}, false
	}
	return c.Add(shift), true
}

func (t *LayoutTable) Len() int {
	return len(t.slots)
}

// Indices returns the table's indices in ascending order.
func (t *LayoutTable) Indices() []int {
	out := make([]int, 0, len(t.slots))
	for i := range t.slots {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// Validate checks that indices run 1..n and that no slot is used twice.
func (t *LayoutTable) Validate() error {
	if len(t.slots) == 0 {
		return fmt.Errorf("layout table is empty")
	}
	seen := make(map[Coord]int, len(t.slots))
	for _, i := range t.Indices() {
		c := t.slots[i]
		if other, dup := seen[c]; dup {
			return fmt.Errorf("cubies %d and %d share slot %v", other, i, c)
		}
		seen[c] = i
	}
	for i := 1; i <= len(t.slots); i++ {
		if _, ok := t.slots[i]; !ok {
			return fmt.Errorf("layout table is missing index %d", i)
		}
	}
	return nil
}
