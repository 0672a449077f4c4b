// Package server exposes the raytracer over HTTP.
package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync/atomic"

	"github.com/golang/glog"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

const (
	maxImageSize    = 2000
	consoleCapacity = 256
)

// Server handles web requests for the raytracer
type Server struct {
	port    int
	workers int
	renders int64 // Counter used to name renders in the logs
	handler http.Handler
}

// NewServer creates a new web server. workers bounds the rows each render
// shades concurrently; 0 uses one per CPU.
func NewServer(port, workers int) *Server {
	s := &Server{port: port, workers: workers}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/health", s.handleHealth)
	s.handler = withMetrics(mux)

	return s
}

// Handler returns the server's routes wrapped with request metrics
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start starts the web server
func (s *Server) Start() error {
	if err := RegisterViews(); err != nil {
		return fmt.Errorf("while registering server metrics: %w", err)
	}
	addr := fmt.Sprintf(":%d", s.port)
	glog.Infof("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.handler)
}

// RenderRequest represents a render request from the client. Zero sizes
// and field of view keep the scene's own values.
type RenderRequest struct {
	Scene         string  `json:"scene"`
	Width         int     `json:"width"`
	Height        int     `json:"height"`
	FieldOfView   float64 `json:"fov"`
	FailurePolicy string  `json:"failurePolicy"`
	Format        string  `json:"format"` // "png" or "json"
}

// RenderResponse is returned by /api/render when format=json
type RenderResponse struct {
	Scene     string           `json:"scene"`
	Width     int              `json:"width"`
	Height    int              `json:"height"`
	ImageData string           `json:"imageData"` // Base64 encoded PNG
	Stats     Stats            `json:"stats"`
	Console   []ConsoleMessage `json:"console"`
}

// Stats represents render statistics
type Stats struct {
	TotalPixels  int   `json:"totalPixels"`
	FailedPixels int   `json:"failedPixels"`
	Workers      int   `json:"workers"`
	ElapsedMs    int64 `json:"elapsedMs"`
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scene.ListScenes())
}

// handleRender renders a scene and returns it as a PNG, or as JSON with the
// image, stats and render log when format=json
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := parseRenderRequest(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}
	policy, err := renderer.ParseFailurePolicy(req.FailurePolicy)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}
	sceneObj, err := req.buildScene()
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	camera, err := renderer.NewCameraFromConfig(sceneObj.Camera)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("Invalid camera: %v", err))
		return
	}

	renderID := fmt.Sprintf("render-%d", atomic.AddInt64(&s.renders, 1))
	consoleChan := make(chan ConsoleMessage, consoleCapacity)
	logger := NewWebLogger(renderID, consoleChan)

	config := renderer.RenderConfig{Workers: s.workers, FailurePolicy: policy}
	raytracer := renderer.NewRaytracer(camera, sceneObj.World, config, logger)

	// Use request context to stop rendering when the client disconnects
	canvas, stats, err := raytracer.Render(r.Context())
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("Render error: %v", err))
		return
	}

	w.Header().Set("X-Render-Failed-Pixels", strconv.Itoa(stats.FailedPixels))
	w.Header().Set("X-Render-Elapsed-Ms", strconv.FormatInt(stats.Duration.Milliseconds(), 10))

	if req.Format == "json" {
		imageData, err := canvasToBase64PNG(canvas)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("failed to encode image: %v", err))
			return
		}
		writeJSON(w, http.StatusOK, RenderResponse{
			Scene:     sceneObj.Name,
			Width:     canvas.Width(),
			Height:    canvas.Height(),
			ImageData: imageData,
			Stats:     toStats(stats),
			Console:   drainConsole(consoleChan),
		})
		return
	}

	var buf bytes.Buffer
	if err := loaders.WritePNG(&buf, canvas); err != nil {
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// parseRenderRequest parses request parameters
func parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	query := r.URL.Query()
	req := &RenderRequest{
		Scene:         stringParam(query, "scene", "default"),
		FailurePolicy: stringParam(query, "failurePolicy", renderer.FailAbort.String()),
		Format:        stringParam(query, "format", "png"),
	}
	if req.Format != "png" && req.Format != "json" {
		return nil, fmt.Errorf("format must be png or json, got: %s", req.Format)
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", 0, 1, maxImageSize); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(query, "height", 0, 1, maxImageSize); err != nil {
		return nil, err
	}
	if req.FieldOfView, err = parseFloatParam(query, "fov", 0, 1, 179); err != nil {
		return nil, err
	}

	if req.Width*req.Height > 800*600 {
		glog.Warningf("Render warning: %dx%d image may render slowly", req.Width, req.Height)
	}
	return req, nil
}

// buildScene looks up the requested scene and applies its overrides
func (req *RenderRequest) buildScene() (*scene.Scene, error) {
	s, err := scene.Lookup(req.Scene)
	if err != nil {
		return nil, err
	}
	if req.Width > 0 {
		s.Camera.Width = req.Width
	}
	if req.Height > 0 {
		s.Camera.Height = req.Height
	}
	if req.FieldOfView > 0 {
		s.Camera.FieldOfView = req.FieldOfView
	}
	return s, nil
}

func stringParam(values url.Values, key, defaultValue string) string {
	if value := values.Get(key); value != "" {
		return value
	}
	return defaultValue
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseFloatParam parses a float parameter from URL query with validation
func parseFloatParam(values url.Values, key string, defaultValue, min, max float64) (float64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %g and %g, got: %g", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

func toStats(s renderer.RenderStats) Stats {
	return Stats{
		TotalPixels:  s.TotalPixels,
		FailedPixels: s.FailedPixels,
		Workers:      s.Workers,
		ElapsedMs:    s.Duration.Milliseconds(),
	}
}

// canvasToBase64PNG converts a canvas to base64-encoded PNG
func canvasToBase64PNG(c *core.Canvas) (string, error) {
	var buf bytes.Buffer
	if err := loaders.WritePNG(&buf, c); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		glog.Errorf("failed to encode response: %v", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
