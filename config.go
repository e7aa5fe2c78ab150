package rubik3d

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Config is everything the harness reads at startup.
type Config struct {
	Window  WindowConfig           `yaml:"window"`
	Camera  CameraConfig           `yaml:"camera"`
	Workers int                    `yaml:"workers"`
	Preload []string               `yaml:"preload"`
	Variant string                 `yaml:"variant"`
	Scenes  map[string]SceneConfig `yaml:"scenes"`
}

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

type CameraConfig struct {
	Position [3]float64 `yaml:"position"`
	FovY     float64    `yaml:"fov"`
}

// SceneConfig describes one puzzle variant. Cubie positions come from
// Positions when it is set, else from Layout (or the standard table)
// moved by Shift.
type SceneConfig struct {
	Cubies          int                `yaml:"cubies"`
	Model           string             `yaml:"model"`
	Models          map[int]string     `yaml:"models"`
	Scale           float64            `yaml:"scale"`
	Shift           int                `yaml:"shift"`
	Layout          map[int][3]int     `yaml:"layout"`
	Positions       map[int][3]float64 `yaml:"positions"`
	InitialRotation [3]float64         `yaml:"initial_rotation"`
	Groups          []GroupConfig      `yaml:"groups"`
	FanGroup        string             `yaml:"fan_group"`
	FanAxis         string             `yaml:"fan_axis"`
	NormalizeSteps  bool               `yaml:"normalize_steps"`
}

// GroupConfig is a pivot group. Parent names another group; empty means
// the whole assembly.
type GroupConfig struct {
	Name    string     `yaml:"name"`
	Pivot   [3]float64 `yaml:"pivot"`
	Parent  string     `yaml:"parent"`
	Members []int      `yaml:"members"`
}

const AssemblyGroup = "assembly"

func DefaultConfig() Config {
	return Config{
		Window:  WindowConfig{Width: 960, Height: 720, Title: "rubik3d"},
		Camera:  CameraConfig{Position: [3]float64{30, 10, 10}, FovY: 50},
		Workers: 4,
		Variant: "grid",
		Scenes: map[string]SceneConfig{
			"single": SinglePreset(),
			"fan":    FanPreset(),
			"grid":   GridPreset(),
		},
	}
}

// SinglePreset is one whole model tilted on start.
func SinglePreset() SceneConfig {
	return SceneConfig{
		Cubies:          1,
		Model:           "builtin:cubie:6",
		Scale:           1.5,
		Positions:       map[int][3]float64{1: {0, 0, 0}},
		InitialRotation: [3]float64{6, 26, -10},
	}
}

// FanPreset hinges two cubes about their outer edges and leaves a third on
// its own.
func FanPreset() SceneConfig {
	return SceneConfig{
		Cubies:    3,
		Model:     "builtin:cubie:2",
		Scale:     1.5,
		Positions: map[int][3]float64{1: {0, 0, 0}, 2: {0, 0, 0}, 3: {-6, 0, 0}},
		Groups: []GroupConfig{
			{Name: "hinge"},
			{Name: "left", Parent: "hinge", Pivot: [3]float64{-1.5, 0, 0}, Members: []int{1}},
			{Name: "right", Parent: "hinge", Pivot: [3]float64{1.5, 0, 0}, Members: []int{2}},
		},
		FanGroup: "hinge",
		FanAxis:  "z",
	}
}

// GridPreset is the full 27 cubie puzzle with its top layer in a group.
func GridPreset() SceneConfig {
	top := make([]int, 0, 9)
	layout := StandardLayout()
	for _, i := range layout.Indices() {
		if c, _ := layout.Position(i); c.Y == 0 {
			top = append(top, i)
		}
	}
	return SceneConfig{
		Cubies: 27,
		Model:  "builtin:cubie:2.8",
		Scale:  1,
		Shift:  DefaultLayoutShift,
		Groups: []GroupConfig{
			{Name: "top", Pivot: [3]float64{0, 3, 0}, Members: top},
		},
		FanGroup: "top",
		FanAxis:  "y",
	}
}

// LoadConfig reads a YAML config. A missing file yields DefaultConfig; any
// section left out of the file keeps its default.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("config: %s not found, using defaults", path)
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("could not read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("could not parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if _, ok := c.Scenes[c.Variant]; !ok {
		return fmt.Errorf("unknown variant %q", c.Variant)
	}
	for _, name := range c.VariantNames() {
		if err := c.Scenes[name].Validate(); err != nil {
			return fmt.Errorf("scene %s: %w", name, err)
		}
	}
	return nil
}

// Scene returns the selected variant.
func (c Config) Scene() SceneConfig {
	return c.Scenes[c.Variant]
}

func (c Config) VariantNames() []string {
	out := make([]string, 0, len(c.Scenes))
	for n := range c.Scenes {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Validate checks the layout and the group tree.
func (sc SceneConfig) Validate() error {
	if sc.Cubies <= 0 {
		return fmt.Errorf("cubies must be positive, got %d", sc.Cubies)
	}
	if sc.Positions == nil {
		table, err := sc.LayoutTable()
		if err != nil {
			return err
		}
		if sc.Cubies > table.Len() {
			return fmt.Errorf("%d cubies but the layout has %d slots", sc.Cubies, table.Len())
		}
	} else {
		for i := 1; i <= sc.Cubies; i++ {
			if _, ok := sc.Positions[i]; !ok {
				return fmt.Errorf("no position for cubie %d", i)
			}
		}
	}

	names := map[string]bool{AssemblyGroup: true}
	owner := map[int]string{}
	for _, g := range sc.Groups {
		if g.Name == "" || names[g.Name] {
			return fmt.Errorf("group name %q is empty or repeated", g.Name)
		}
		if g.Parent != "" && !names[g.Parent] {
			return fmt.Errorf("group %s: parent %q must be declared before it", g.Name, g.Parent)
		}
		names[g.Name] = true
		for _, m := range g.Members {
			if m < 1 || m > sc.Cubies {
				return fmt.Errorf("group %s: no cubie %d", g.Name, m)
			}
			if prev, dup := owner[m]; dup {
				return fmt.Errorf("cubie %d is in both %s and %s", m, prev, g.Name)
			}
			owner[m] = g.Name
		}
	}
	if sc.FanGroup != "" {
		if !names[sc.FanGroup] {
			return fmt.Errorf("fan group %q does not exist", sc.FanGroup)
		}
		if _, err := ParseAxis(sc.FanAxis); err != nil {
			return fmt.Errorf("fan axis: %w", err)
		}
	}
	return nil
}

// LayoutTable returns the configured lattice, or the standard one.
func (sc SceneConfig) LayoutTable() (*LayoutTable, error) {
	if len(sc.Layout) == 0 {
		return StandardLayout(), nil
	}
	slots := make(map[int]Coord, len(sc.Layout))
	for i, c := range sc.Layout {
		slots[i] = Coord{c[0], c[1], c[2]}
	}
	return NewLayoutTable(slots)
}

// ModelPath is the asset shown for a cubie.
func (sc SceneConfig) ModelPath(index int) string {
	if p, ok := sc.Models[index]; ok {
		return p
	}
	return sc.Model
}

// AssetPaths lists every distinct asset the scene uses.
func (sc SceneConfig) AssetPaths() []string {
	seen := map[string]bool{}
	var out []string
	for i := 1; i <= sc.Cubies; i++ {
		p := sc.ModelPath(i)
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}
