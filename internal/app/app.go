//go:build ebiten

package app

import (
	"time"

	"worldgen/internal/polymap"
	"worldgen/internal/render"
	"worldgen/internal/worldgen"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game adapts a generated world to the ebiten.Game interface.
type Game struct {
	mesh  *polymap.PolyMap
	gen   *worldgen.WorldGenerator
	world *worldgen.WorldMap

	mode  render.ViewMode
	frame *ebiten.Image
	dirty bool
	seed  int64
}

// New constructs a Game showing the given world.
func New(mesh *polymap.PolyMap, gen *worldgen.WorldGenerator, seed int64) *Game {
	return &Game{
		mesh:  mesh,
		gen:   gen,
		world: gen.Generate(mesh, seed),
		mode:  render.ViewTerrain,
		dirty: true,
		seed:  seed,
	}
}

// Reset regenerates the world from the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.world = g.gen.Generate(g.mesh, seed)
	g.dirty = true
}

// Update handles per-frame input.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		g.world.Reflow(time.Now().UnixNano())
		g.dirty = true
	}
	for key, mode := range map[ebiten.Key]render.ViewMode{
		ebiten.Key1: render.ViewTerrain,
		ebiten.Key2: render.ViewHeightmap,
		ebiten.Key3: render.ViewHydrology,
		ebiten.Key4: render.ViewThermology,
	} {
		if inpututil.IsKeyJustPressed(key) && g.mode != mode {
			g.mode = mode
			g.dirty = true
		}
	}
	return nil
}

// Draw renders the current view, repainting only after a change.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.dirty {
		img := render.Render(g.mesh, render.WorldView{Map: g.world, Mode: g.mode})
		if g.frame == nil {
			g.frame = ebiten.NewImageFromImage(img)
		} else {
			g.frame.WritePixels(img.Pix)
		}
		g.dirty = false
	}
	screen.DrawImage(g.frame, nil)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return int(g.mesh.Width()), int(g.mesh.Height())
}
