// Command worldserver serves generated worlds over HTTP.
package main

import (
	"flag"
	"log"
	"net/http"

	"worldgen/internal/app"
	"worldgen/internal/server"
	"worldgen/internal/worldgen"
)

func main() {
	cfg := app.NewFlags()
	cfg.Bind(flag.CommandLine)
	addr := flag.String("addr", ":8080", "listen address")
	flag.Parse()

	svc, err := server.NewWorldService(cfg.Width, cfg.Height, cfg.Spacing, cfg.Seed, worldgen.DefaultConfig())
	if err != nil {
		log.Fatalf("init world service: %v", err)
	}

	log.Printf("listening on %s", *addr)
	if err := http.ListenAndServe(*addr, server.Routes(svc)); err != nil {
		log.Fatal(err)
	}
}
