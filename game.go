package rubik3d

import (
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

var background = color.RGBA{R: 24, G: 24, B: 32, A: 255}

// Game wires the scene, controllers and panel into ebiten's loop. Update
// is the only place scene state changes; Draw only reads it.
type Game struct {
	Scene     *Scene
	Assets    *AssetCache
	Rotations *RotationController
	Cameras   *CameraController
	Panel     *Panel

	renderer      *Renderer
	width, height int
	faces         int
}

func NewGame(cfg Config) (*Game, error) {
	log.Println("Initializing scene...")
	assets := NewAssetCache(cfg.Workers, nil)
	assets.Preload(cfg.Preload...)

	scene, err := NewScene(cfg.Scene(), assets)
	if err != nil {
		return nil, fmt.Errorf("could not build scene %q: %w", cfg.Variant, err)
	}

	p := cfg.Camera.Position
	cam := NewCamera(p[0], p[1], p[2], cfg.Camera.FovY)
	cam.SetAspect(cfg.Window.Width, cfg.Window.Height)

	g := &Game{
		Scene:     scene,
		Assets:    assets,
		Rotations: NewRotationController(scene.Registry),
		Cameras:   NewCameraController(cam),
		renderer:  NewRenderer(cfg.Window.Width, cfg.Window.Height),
		width:     cfg.Window.Width,
		height:    cfg.Window.Height,
	}
	g.Panel = NewPanel(scene, g.Rotations, g.Cameras)

	log.Printf("Variant %s: %d cubies, camera at (%.1f, %.1f, %.1f), fov %.0f",
		cfg.Variant, len(scene.Cubies()), p[0], p[1], p[2], cfg.Camera.FovY)
	log.Println("Initialization Complete.")
	return g, nil
}

func (g *Game) Update() error {
	if n := g.Scene.Update(); n > 0 {
		log.Printf("Mounted %d cubies, %d registered", n, g.Scene.Registry.Len())
	}
	g.Panel.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)

	batcher := NewPolygonBatcher(screen)
	g.faces = g.renderer.Paint(batcher, g.Scene.Root, g.Cameras.Camera())
	batcher.Flush()

	g.Panel.Draw(screen, 8, 8)
	ebitenutil.DebugPrintAt(screen,
		fmt.Sprintf("FPS: %0.2f  faces: %d  loading: %d", ebiten.ActualFPS(), g.faces, g.Assets.Pending()),
		8, g.height-20)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.renderer.Width, g.renderer.Height = outsideWidth, outsideHeight
		g.Cameras.Camera().SetAspect(outsideWidth, outsideHeight)
	}
	return g.width, g.height
}

// Run opens the window and blocks until it is closed.
func Run(cfg Config) error {
	g, err := NewGame(cfg)
	if err != nil {
		return err
	}
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(g)
}
