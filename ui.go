package rubik3d

import (
	"fmt"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type targetKind int

const (
	targetCubie targetKind = iota
	targetGroup
	targetCamera
)

// Target is something the panel's fields edit: a cubie by index, a pivot
// group held directly, or the camera position.
type Target struct {
	Label string
	kind  targetKind
	index int
	group *PivotGroup
}

// InputField holds the text typed for one axis.
type InputField struct {
	Axis Axis
	Text string
}

// Panel is the on-screen control surface. All of its methods run on the
// ebiten Update callback.
type Panel struct {
	scene     *Scene
	rotations *RotationController
	cameras   *CameraController

	targets []Target
	current int
	fields  [3]*InputField
	focus   int

	Status string
}

func NewPanel(scene *Scene, rotations *RotationController, cameras *CameraController) *Panel {
	p := &Panel{
		scene:     scene,
		rotations: rotations,
		cameras:   cameras,
		focus:     -1,
	}
	for i, a := range Axes {
		p.fields[i] = &InputField{Axis: a}
	}
	if scene != nil {
		for _, c := range scene.Cubies() {
			p.targets = append(p.targets, Target{Label: fmt.Sprintf("cubie %d", c.Index), kind: targetCubie, index: c.Index})
		}
		for _, g := range scene.Groups() {
			p.targets = append(p.targets, Target{Label: "group " + g.Name, kind: targetGroup, group: g})
		}
	}
	if cameras != nil {
		p.targets = append(p.targets, Target{Label: "camera", kind: targetCamera})
	}
	p.fillCameraFields()
	return p
}

func (p *Panel) Targets() []Target {
	return p.targets
}

// Target returns the target the fields currently edit.
func (p *Panel) Target() (Target, bool) {
	if len(p.targets) == 0 {
		return Target{}, false
	}
	return p.targets[p.current], true
}

// SelectTarget moves delta entries through the target list, wrapping at
// either end, and clears the fields.
func (p *Panel) SelectTarget(delta int) {
	if len(p.targets) == 0 {
		return
	}
	n := len(p.targets)
	p.current = ((p.current+delta)%n + n) % n
	for _, f := range p.fields {
		f.Text = ""
	}
	p.fillCameraFields()
}

func (p *Panel) Field(axis Axis) *InputField {
	return p.fields[axis]
}

// Focused returns the field receiving keystrokes, if any.
func (p *Panel) Focused() (*InputField, bool) {
	if p.focus < 0 {
		return nil, false
	}
	return p.fields[p.focus], true
}

// FocusNext moves focus X, Y, Z and round again.
func (p *Panel) FocusNext() {
	p.focus = (p.focus + 1) % len(p.fields)
}

func (p *Panel) Blur() {
	p.focus = -1
}

func (p *Panel) Type(chars []rune) {
	f, ok := p.Focused()
	if !ok {
		return
	}
	f.Text += string(chars)
}

func (p *Panel) Backspace() {
	f, ok := p.Focused()
	if !ok || f.Text == "" {
		return
	}
	r := []rune(f.Text)
	f.Text = string(r[:len(r)-1])
}

// Submit applies the focused field to the current target.
func (p *Panel) Submit() {
	f, ok := p.Focused()
	if !ok {
		return
	}
	t, ok := p.Target()
	if !ok {
		return
	}
	switch t.kind {
	case targetCubie:
		if _, ok := p.rotations.ApplyRotation(t.index, f.Axis, f.Text); !ok {
			p.Status = fmt.Sprintf("%s is not mounted", t.Label)
			return
		}
	case targetGroup:
		p.rotations.ApplyGroupRotation(t.group, f.Axis, f.Text)
	case targetCamera:
		p.cameras.SetAxis(f.Axis, f.Text)
	}
	p.Status = fmt.Sprintf("%s %s = %s", t.Label, f.Axis, f.Text)
}

// ResetCamera sends the camera back to the origin.
func (p *Panel) ResetCamera() {
	if p.cameras == nil {
		return
	}
	p.cameras.Reset()
	p.fillCameraFields()
	p.Status = "camera reset"
}

// Fan runs the scene's fixed-step action.
func (p *Panel) Fan() {
	if p.scene == nil {
		return
	}
	g, axis, ok := p.scene.Fan()
	if !ok {
		return
	}
	p.rotations.StepGroup(g, axis)
	p.Status = fmt.Sprintf("fan %s about %s", g.Name, axis)
}

// Readout is the rotation line for a target. Cubies and groups show the
// controller's stored display, falling back to the node's own state.
func (p *Panel) Readout(t Target) string {
	switch t.kind {
	case targetCubie:
		if d, ok := p.rotations.Display(t.index); ok {
			return "Current Rotation → " + d.String()
		}
		if h, ok := p.scene.Registry.Resolve(t.index); ok {
			return "Current Rotation → " + h.Rotation().String()
		}
		return "Current Rotation → " + Degrees{}.String()
	case targetGroup:
		if d, ok := p.rotations.GroupDisplay(t.group); ok {
			return "Current Rotation → " + d.String()
		}
		return "Current Rotation → " + t.group.Rotation().String()
	case targetCamera:
		pos := p.cameras.Position()
		return fmt.Sprintf("Camera → X: %.1f, Y: %.1f, Z: %.1f", pos.X(), pos.Y(), pos.Z())
	}
	return ""
}

// Lines renders the panel as text, one entry per screen line.
func (p *Panel) Lines() []string {
	t, ok := p.Target()
	if !ok {
		return []string{"nothing to control"}
	}
	lines := []string{"Target: " + t.Label + "  (Left/Right to change)"}
	for i, f := range p.fields {
		cursor := " "
		if i == p.focus {
			cursor = ">"
		}
		lines = append(lines, fmt.Sprintf("%s %s: [%s]", cursor, f.Axis, f.Text))
	}
	lines = append(lines, p.Readout(t))
	lines = append(lines, "Tab: field  Enter: apply  Esc: done  R: reset camera  F: fan")
	if p.Status != "" {
		lines = append(lines, p.Status)
	}
	return lines
}

// Update reads keyboard input for this frame.
func (p *Panel) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		p.FocusNext()
		return
	}
	if _, ok := p.Focused(); ok {
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			p.Blur()
			return
		}
		p.Type(ebiten.AppendInputChars(nil))
		if repeatingKeyPressed(ebiten.KeyBackspace) {
			p.Backspace()
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter) {
			p.Submit()
		}
		return
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		p.ResetCamera()
	case inpututil.IsKeyJustPressed(ebiten.KeyF):
		p.Fan()
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowRight):
		p.SelectTarget(1)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft):
		p.SelectTarget(-1)
	}
}

func (p *Panel) Draw(screen *ebiten.Image, x, y int) {
	for i, l := range p.Lines() {
		ebitenutil.DebugPrintAt(screen, l, x, y+i*16)
	}
}

func (p *Panel) fillCameraFields() {
	t, ok := p.Target()
	if !ok || t.kind != targetCamera {
		return
	}
	pos := p.cameras.Position()
	for i, f := range p.fields {
		f.Text = strconv.FormatFloat(pos[i], 'g', -1, 64)
	}
}

func repeatingKeyPressed(key ebiten.Key) bool {
	const (
		delay    = 30
		interval = 3
	)
	d := inpututil.KeyPressDuration(key)
	if d == 1 {
		return true
	}
	if d >= delay && (d-delay)%interval == 0 {
		return true
	}
	return false
}
