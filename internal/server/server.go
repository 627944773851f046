// Package server exposes the compositor over HTTP. Every request is an
// independent one-shot composition against the local tile tree.
package server

import (
	"bytes"
	"encoding/json"
	"image/png"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/maptile/mosaic/internal/compose"
	"github.com/maptile/mosaic/internal/manifest"
	"github.com/maptile/mosaic/pkg/tile"
)

// Server holds the shared, read-only collaborators of the HTTP surface.
type Server struct {
	manifest  *manifest.Manifest
	loader    compose.Loader
	startTime time.Time
	version   string
}

// New creates a server over a loaded manifest and tile loader.
func New(man *manifest.Manifest, loader compose.Loader, version string) *Server {
	return &Server{
		manifest:  man,
		loader:    loader,
		startTime: time.Now(),
		version:   version,
	}
}

// Routes registers the API endpoints on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/health", s.GetHealth)
	r.Get("/composite", s.GetComposite)
}

// HealthResponse is the health endpoint payload.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Uptime    int       `json:"uptime"`
	Version   string    `json:"version"`
}

// ErrorResponse is the JSON body of every non-2xx response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// GetHealth implements the health check endpoint.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Uptime:    int(time.Since(s.startTime).Seconds()),
		Version:   s.version,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("Error encoding health response: %v", err)
	}
}

// GetComposite composites the requested window and streams it as PNG.
// Query parameters: zoom (required, within the manifest range) and bbox
// (optional "minLon,minLat,maxLon,maxLat"; full manifest extent when
// omitted).
func (s *Server) GetComposite(w http.ResponseWriter, r *http.Request) {
	zoomStr := r.URL.Query().Get("zoom")
	if zoomStr == "" {
		s.writeError(w, http.StatusBadRequest, "MISSING_ZOOM", "zoom query parameter is required")
		return
	}
	zoom, err := strconv.Atoi(zoomStr)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "INVALID_ZOOM", "zoom must be an integer")
		return
	}
	if zoom < s.manifest.MinZoom || zoom > s.manifest.MaxZoom {
		s.writeError(w, http.StatusBadRequest, "INVALID_ZOOM",
			"zoom must be between "+strconv.Itoa(s.manifest.MinZoom)+" and "+strconv.Itoa(s.manifest.MaxZoom))
		return
	}

	rect := tile.Extent(s.manifest.Bounds, zoom)
	if bboxStr := r.URL.Query().Get("bbox"); bboxStr != "" {
		bounds, err := tile.ParseBounds(bboxStr)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, "INVALID_BBOX", err.Error())
			return
		}
		rect = tile.Intersect(bounds, s.manifest.Bounds, zoom)
	}
	if rect.Empty() {
		s.writeError(w, http.StatusUnprocessableEntity, "EMPTY_WINDOW",
			"requested bounds do not intersect the tile set")
		return
	}

	window := &compose.Window{Scale: s.manifest.Scale}
	window.Zoom = &zoom
	window.SetRect(rect)

	comp := &compose.Compositor{Loader: s.loader, Log: log.Writer()}
	canvas, res, err := comp.Render(r.Context(), window)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "COMPOSE_ERROR", err.Error())
		return
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		s.writeError(w, http.StatusInternalServerError, "ENCODE_ERROR", err.Error())
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("X-Tile-Count", strconv.Itoa(res.Tiles))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Printf("Error writing composite response: %v", err)
	}
}

// writeError writes a standard error response.
func (s *Server) writeError(w http.ResponseWriter, statusCode int, errorCode, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(ErrorResponse{Error: errorCode, Message: message}); err != nil {
		log.Printf("Error encoding error response: %v", err)
	}
}
