package rubik3d

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rubik3d.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, []string{"fan", "grid", "single"}, cfg.VariantNames())
	assert.Equal(t, 27, cfg.Scene().Cubies)
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	cfg, err = LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigOverrides(t *testing.T) {
	path := writeConfig(t, `
window:
  width: 640
  height: 480
  title: test
camera:
  position: [0, 0, 40]
  fov: 35
variant: pair
scenes:
  pair:
    cubies: 2
    model: builtin:cubie:1
    layout:
      1: [0, 0, 0]
      2: [-3, 0, 0]
    shift: 1
    groups:
      - name: both
        pivot: [-1, 0, 0]
        members: [1, 2]
    fan_group: both
    fan_axis: x
    normalize_steps: true
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 640, cfg.Window.Width)
	assert.Equal(t, [3]float64{0, 0, 40}, cfg.Camera.Position)
	assert.Equal(t, 35.0, cfg.Camera.FovY)
	assert.Equal(t, 4, cfg.Workers, "unset fields keep defaults")

	sc := cfg.Scene()
	assert.Equal(t, 2, sc.Cubies)
	assert.True(t, sc.NormalizeSteps)
	table, err := sc.LayoutTable()
	require.NoError(t, err)
	c, _ := table.Shifted(2, sc.Shift)
	assert.Equal(t, Coord{-2, 1, 1}, c)

	// presets stay available next to the configured scene
	assert.Contains(t, cfg.VariantNames(), "grid")
}

func TestLoadConfigErrors(t *testing.T) {
	testCases := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"bad yaml", "window: [", "could not parse"},
		{"unknown variant", "variant: cube4", "unknown variant"},
		{
			name:    "duplicate layout slot",
			body:    "variant: x\nscenes:\n  x:\n    cubies: 2\n    layout:\n      1: [0, 0, 0]\n      2: [0, 0, 0]\n",
			wantErr: "share slot",
		},
		{
			name:    "cubie in two groups",
			body:    "variant: x\nscenes:\n  x:\n    cubies: 2\n    groups:\n      - {name: a, members: [1]}\n      - {name: b, members: [1]}\n",
			wantErr: "both a and b",
		},
		{
			name:    "parent declared late",
			body:    "variant: x\nscenes:\n  x:\n    cubies: 1\n    groups:\n      - {name: a, parent: b}\n      - {name: b}\n",
			wantErr: "must be declared before",
		},
		{
			name:    "bad fan axis",
			body:    "variant: x\nscenes:\n  x:\n    cubies: 1\n    fan_group: assembly\n    fan_axis: w\n",
			wantErr: "fan axis",
		},
		{
			name:    "missing position",
			body:    "variant: x\nscenes:\n  x:\n    cubies: 2\n    positions:\n      1: [0, 0, 0]\n",
			wantErr: "no position for cubie 2",
		},
		{
			name:    "too many cubies",
			body:    "variant: x\nscenes:\n  x:\n    cubies: 28\n",
			wantErr: "28 cubies",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tc.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestSceneConfigAssetPaths(t *testing.T) {
	sc := SceneConfig{
		Cubies: 3,
		Model:  "builtin:cubie",
		Models: map[int]string{2: "two.ply"},
	}
	assert.Equal(t, "two.ply", sc.ModelPath(2))
	assert.Equal(t, "builtin:cubie", sc.ModelPath(3))
	assert.Equal(t, []string{"builtin:cubie", "two.ply"}, sc.AssetPaths())
}

func TestGridPresetTopLayer(t *testing.T) {
	sc := GridPreset()
	require.Len(t, sc.Groups, 1)
	top := sc.Groups[0]
	assert.Len(t, top.Members, 9)
	layout := StandardLayout()
	for _, m := range top.Members {
		c, _ := layout.Position(m)
		assert.Equal(t, 0, c.Y, "cubie %d", m)
	}
}
