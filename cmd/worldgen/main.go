// Command worldgen renders a generated world to a PNG file.
package main

import (
	"flag"
	"image/png"
	"log"
	"os"

	"worldgen/internal/app"
	"worldgen/internal/polymap"
	"worldgen/internal/render"
	"worldgen/internal/worldgen"
)

func main() {
	cfg := app.NewFlags()
	cfg.Bind(flag.CommandLine)
	mode := flag.String("mode", "terrain", "view to render: terrain, heightmap, hydrology, thermology")
	out := flag.String("out", "world.png", "output file path")
	flag.Parse()

	viewMode, err := render.ParseViewMode(*mode)
	if err != nil {
		log.Fatalf("parse mode: %v", err)
	}

	mesh, err := polymap.Build(cfg.Width, cfg.Height, cfg.Spacing, cfg.Seed)
	if err != nil {
		log.Fatalf("build mesh: %v", err)
	}
	log.Printf("mesh ready: %d cells, %d vertices, %d edges",
		mesh.NumCells(), mesh.NumVertices(), mesh.NumEdges())

	gen := worldgen.NewWorldGenerator(worldgen.DefaultConfig())
	world := gen.Generate(mesh, cfg.Seed)
	log.Printf("world generated: seed %d, %d rivers",
		cfg.Seed, len(world.Hydrology().Rivers().Paths()))

	img := render.Render(mesh, render.WorldView{Map: world, Mode: viewMode})

	f, err := os.Create(*out)
	if err != nil {
		log.Fatalf("create %s: %v", *out, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		log.Fatalf("encode %s: %v", *out, err)
	}
	log.Printf("wrote %s", *out)
}
