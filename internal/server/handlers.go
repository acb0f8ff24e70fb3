package server

import (
	"bytes"
	"encoding/json"
	"image/png"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"worldgen/internal/render"
)

// Routes configures the HTTP router for the service.
func Routes(ws *WorldService) http.Handler {
	r := chi.NewRouter()

	r.Route("/api", func(r chi.Router) {
		r.Get("/world/{seed}", getWorld(ws))
		r.Get("/world/{seed}/map.png", getWorldMap(ws))

		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})
	})

	return r
}

// getWorld handles GET /api/world/{seed} and returns the world summary.
func getWorld(ws *WorldService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		seed, err := strconv.ParseInt(chi.URLParam(r, "seed"), 10, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid seed")
			return
		}
		respondJSON(w, http.StatusOK, ws.Summary(seed))
	}
}

// getWorldMap handles GET /api/world/{seed}/map.png?mode=terrain and
// returns a PNG render of the requested view.
func getWorldMap(ws *WorldService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		seed, err := strconv.ParseInt(chi.URLParam(r, "seed"), 10, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid seed")
			return
		}
		mode, err := render.ParseViewMode(r.URL.Query().Get("mode"))
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		world := ws.World(seed)
		img := render.Render(ws.Mesh(), render.WorldView{Map: world, Mode: mode})

		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			respondError(w, http.StatusInternalServerError, "encode image")
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(buf.Bytes()); err != nil {
			log.Printf("Error writing image response: %v", err)
		}
	}
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON: %v", err)
	}
}

// respondError writes an error JSON response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
