//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"worldgen/internal/app"
	"worldgen/internal/polymap"
	"worldgen/internal/worldgen"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewFlags()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	mesh, err := polymap.Build(cfg.Width, cfg.Height, cfg.Spacing, cfg.Seed)
	if err != nil {
		log.Fatalf("build mesh: %v", err)
	}

	gen := worldgen.NewWorldGenerator(worldgen.DefaultConfig())
	game := app.New(mesh, gen, cfg.Seed)

	ebiten.SetWindowTitle("worldgen")
	ebiten.SetWindowSize(cfg.Width, cfg.Height)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
