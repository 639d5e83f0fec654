package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Limits for request parameters
const (
	minSize  = 2
	maxSize  = 2000
	maxLevel = 16
)

// Server handles web requests for the raytracer
type Server struct {
	port      int
	workers   int
	scenesDir string
}

// NewServer creates a new web server
func NewServer(port int) *Server {
	return &Server{port: port, workers: -1, scenesDir: scene.DefaultScenesDir}
}

// SetScenesDir sets the directory searched for JSON scene files
func (s *Server) SetScenesDir(dir string) {
	s.scenesDir = dir
}

// SetWorkers sets the render goroutines used per request (0 = serial)
func (s *Server) SetWorkers(workers int) {
	s.workers = workers
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene  string  `json:"scene"`  // Built-in or file scene ID
	Width  int     `json:"width"`  // Screen width, 0 = scene default
	Height int     `json:"height"` // Screen height, 0 = scene default
	Level  int     `json:"level"`  // Reflection depth, -1 = scene default
	Gamma  float64 `json:"gamma"`  // Output gamma
}

// Handler returns the HTTP handler serving all API endpoints
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/render/stream", s.handleRenderStream)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleScenes lists the built-in and file scenes with their sizes
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")

	files, err := scene.ListFileScenes(s.scenesDir)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	response := map[string]interface{}{
		"scenes": append(scene.List(), files...),
		"limits": map[string]interface{}{
			"width":  map[string]int{"min": minSize, "max": maxSize},
			"height": map[string]int{"min": minSize, "max": maxSize},
			"level":  map[string]int{"min": 0, "max": maxLevel},
		},
	}
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

// writeJSONError writes {"error": message} with the given status
func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	query := r.URL.Query()
	req := &RenderRequest{Scene: "default"}
	if name := query.Get("scene"); name != "" {
		req.Scene = name
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", 0, minSize, maxSize); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(query, "height", 0, minSize, maxSize); err != nil {
		return nil, err
	}
	if req.Level, err = parseIntParam(query, "level", -1, 0, maxLevel); err != nil {
		return nil, err
	}
	if req.Gamma, err = parseFloatParam(query, "gamma", 1.0, 0.1, 5.0); err != nil {
		return nil, err
	}

	if req.Width*req.Height > 1000*1000 && req.Level > 8 {
		log.Printf("Render warning: Large image with deep reflections may render slowly")
	}

	return req, nil
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

// createScene builds the requested scene at the requested size. Scene
// names are resolved as IDs only, never as file paths.
func (s *Server) createScene(req *RenderRequest) (*scene.Scene, error) {
	if strings.ContainsAny(req.Scene, `/\.`) {
		return nil, fmt.Errorf("invalid scene name %q", req.Scene)
	}
	sceneObj, err := scene.Open(req.Scene, s.scenesDir, req.Width, req.Height)
	if err != nil {
		return nil, err
	}
	if req.Level >= 0 {
		sceneObj.Level = req.Level
	}
	// Record the resolved size for callers that need it
	req.Width, req.Height = sceneObj.Width, sceneObj.Height
	return sceneObj, nil
}
