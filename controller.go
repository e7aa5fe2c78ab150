package rubik3d

import (
	"log"
	"math"
	"strconv"
	"strings"
)

// RotationController turns degree strings typed into the UI into rotations
// and keeps the readout for each target in step with what the node stores.
type RotationController struct {
	registry      *Registry
	displays      map[int]Degrees
	groupDisplays map[*PivotGroup]Degrees
}

func NewRotationController(registry *Registry) *RotationController {
	return &RotationController{
		registry:      registry,
		displays:      make(map[int]Degrees),
		groupDisplays: make(map[*PivotGroup]Degrees),
	}
}

// ParseNumber reads a value typed into a UI field. Anything that is not a
// finite number reads as 0; ok reports whether the input was usable as typed.
func ParseNumber(s string) (v float64, ok bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// ApplyRotation sets one axis of the cubie registered under index and
// returns the readout taken from the node afterwards. Unknown indices are
// ignored and report false.
func (c *RotationController) ApplyRotation(index int, axis Axis, value string) (Degrees, bool) {
	radians := c.parse(value)
	h, ok := c.registry.Resolve(index)
	if !ok {
		log.Printf("rotation: cubie %d is not mounted, ignoring %s=%q", index, axis, value)
		return Degrees{}, false
	}
	h.SetAxisRotation(axis, radians)
	d := h.Rotation()
	c.displays[index] = d
	return d, true
}

// ApplyGroupRotation is ApplyRotation for a directly held group.
func (c *RotationController) ApplyGroupRotation(g *PivotGroup, axis Axis, value string) (Degrees, bool) {
	radians := c.parse(value)
	if g == nil {
		return Degrees{}, false
	}
	g.SetGroupRotation(axis, radians)
	d := g.Rotation()
	c.groupDisplays[g] = d
	return d, true
}

// StepGroup runs the group's fixed-step action and refreshes its readout.
func (c *RotationController) StepGroup(g *PivotGroup, axis Axis) (Degrees, bool) {
	if g == nil {
		return Degrees{}, false
	}
	g.Step(axis)
	d := g.Rotation()
	c.groupDisplays[g] = d
	return d, true
}

// Display returns the readout for a cubie that has been rotated through the
// controller. It is re-read from the live node, so a cubie that was unmounted
// or remounted since never shows a stale angle. Unregistered cubies drop
// their readout.
func (c *RotationController) Display(index int) (Degrees, bool) {
	h, ok := c.registry.Resolve(index)
	if !ok {
		delete(c.displays, index)
		return Degrees{}, false
	}
	if _, shown := c.displays[index]; !shown {
		return Degrees{}, false
	}
	d := h.Rotation()
	c.displays[index] = d
	return d, true
}

func (c *RotationController) GroupDisplay(g *PivotGroup) (Degrees, bool) {
	d, ok := c.groupDisplays[g]
	return d, ok
}

func (c *RotationController) parse(value string) float64 {
	deg, ok := ParseNumber(value)
	if !ok && strings.TrimSpace(value) != "" {
		log.Printf("rotation: %q is not a number, using 0", value)
	}
	return ToRadians(deg)
}
