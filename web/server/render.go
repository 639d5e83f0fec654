package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/png"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// RenderIDHeader carries the ID of a render in responses
const RenderIDHeader = "X-Render-ID"

// progressSteps is the number of progress events sent per streamed frame
const progressSteps = 10

// ProgressUpdate reports scanlines completed during a streamed render
type ProgressUpdate struct {
	RenderID   string `json:"renderId"`
	Scanlines  int    `json:"scanlines"`
	TotalLines int    `json:"totalLines"`
	ElapsedMs  int64  `json:"elapsedMs"`
}

// CompleteUpdate carries the finished frame of a streamed render
type CompleteUpdate struct {
	RenderID  string `json:"renderId"`
	ImageData string `json:"imageData"` // Base64 encoded PNG
	Stats     Stats  `json:"stats"`
}

// Stats represents render statistics
type Stats struct {
	TotalPixels     int     `json:"totalPixels"`
	Scanlines       int     `json:"scanlines"`
	Workers         int     `json:"workers"`
	DurationMs      int64   `json:"durationMs"`
	PixelsPerSecond float64 `json:"pixelsPerSecond"`
}

// SSEEvent represents a unified SSE event for thread-safe writing
type SSEEvent struct {
	Type string `json:"type"` // "console", "progress", "complete", "error"
	Data string `json:"data"` // JSON-encoded data
}

func toStats(stats renderer.RenderStats) Stats {
	return Stats{
		TotalPixels:     stats.TotalPixels,
		Scanlines:       stats.Scanlines,
		Workers:         stats.Workers,
		DurationMs:      stats.Duration.Milliseconds(),
		PixelsPerSecond: stats.PixelsPerSecond(),
	}
}

// newRaytracer configures a raytracer for one request
func (s *Server) newRaytracer(sceneObj *scene.Scene, req *RenderRequest, logger core.Logger) *renderer.Raytracer {
	raytracer := renderer.NewRaytracer(sceneObj, logger)
	raytracer.SetRenderConfig(renderer.RenderConfig{
		Workers: s.workers,
		Gamma:   req.Gamma,
	})
	return raytracer
}

// handleRender renders a frame and responds with it as a PNG
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")

	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	sceneObj, err := s.createScene(req)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	renderID := uuid.NewString()
	logger := NewWebLogger(renderID, nil)
	logger.Printf("Render %s: %dx%d level %d\n", req.Scene, req.Width, req.Height, sceneObj.Level)

	img, _, err := s.newRaytracer(sceneObj, req, logger).RenderImage(r.Context())
	if err != nil {
		if errors.Is(err, context.Canceled) {
			// Client went away, nobody to answer
			return
		}
		writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("Render error: %v", err))
		return
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to encode image: %v", err))
		return
	}

	w.Header().Set(RenderIDHeader, renderID)
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// handleRenderStream renders a frame while streaming console output and
// progress via SSE, ending with a complete event holding the PNG
func (s *Server) handleRenderStream(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}
	sceneObj, err := s.createScene(req)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	renderID := uuid.NewString()
	w.Header().Set(RenderIDHeader, renderID)
	s.setSSEHeaders(w)

	// Single writer goroutine owns w; the handler waits for it before returning
	sseEventChan := make(chan SSEEvent, 100)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		s.writeSSEEvents(w, ctx, sseEventChan)
	}()

	consoleChan := make(chan ConsoleMessage, 50)
	consoleDone := make(chan struct{})
	go func() {
		defer close(consoleDone)
		s.streamConsoleMessages(ctx, consoleChan, sseEventChan)
	}()

	logger := NewWebLogger(renderID, consoleChan)
	logger.Printf("Render %s: %dx%d level %d\n", req.Scene, req.Width, req.Height, sceneObj.Level)

	startTime := time.Now()
	sink := renderer.NewImageSink(req.Width, req.Height)
	sink.SetGamma(req.Gamma)
	progress := newProgressSink(sink.Set, req.Width, req.Height, func(scanlines, total int) {
		s.sendEvent(ctx, sseEventChan, "progress", ProgressUpdate{
			RenderID:   renderID,
			Scanlines:  scanlines,
			TotalLines: total,
			ElapsedMs:  time.Since(startTime).Milliseconds(),
		})
	})

	stats, err := s.newRaytracer(sceneObj, req, logger).RenderTo(ctx, progress)

	// Drain console output before the final event
	close(consoleChan)
	<-consoleDone

	if err != nil {
		s.sendEvent(ctx, sseEventChan, "error", map[string]string{"error": fmt.Sprintf("Render error: %v", err)})
	} else if imageData, encErr := s.imageToBase64PNG(sink.Image()); encErr != nil {
		s.sendEvent(ctx, sseEventChan, "error", map[string]string{"error": fmt.Sprintf("Failed to encode image: %v", encErr)})
	} else {
		s.sendEvent(ctx, sseEventChan, "complete", CompleteUpdate{
			RenderID:  renderID,
			ImageData: imageData,
			Stats:     toStats(stats),
		})
	}

	close(sseEventChan)
	<-writerDone
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// sendEvent JSON-encodes data and queues it, giving up if the client is gone
func (s *Server) sendEvent(ctx context.Context, sseEventChan chan<- SSEEvent, eventType string, data interface{}) {
	encoded, err := json.Marshal(data)
	if err != nil {
		log.Printf("Failed to encode %s event: %v", eventType, err)
		return
	}
	select {
	case sseEventChan <- SSEEvent{Type: eventType, Data: string(encoded)}:
	case <-ctx.Done():
	}
}

// writeSSEEvents handles writing all SSE events in a single goroutine (thread-safe)
func (s *Server) writeSSEEvents(w http.ResponseWriter, ctx context.Context, sseEventChan <-chan SSEEvent) {
	for {
		select {
		case event, ok := <-sseEventChan:
			if !ok {
				return
			}

			_, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, event.Data)
			if err != nil {
				// Client disconnected during write
				return
			}
			if flusher, ok := w.(http.Flusher); ok {
				flusher.Flush()
			}

		case <-ctx.Done():
			return
		}
	}
}

// streamConsoleMessages forwards logger output as console events until
// consoleChan is closed
func (s *Server) streamConsoleMessages(ctx context.Context, consoleChan <-chan ConsoleMessage, sseEventChan chan<- SSEEvent) {
	for msg := range consoleChan {
		s.sendEvent(ctx, sseEventChan, "console", msg)
	}
}

// imageToBase64PNG converts an image to base64-encoded PNG
func (s *Server) imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// newProgressSink forwards pixels to next and reports after every
// completed tenth of the frame and after the last scanline
func newProgressSink(next renderer.PixelSink, width, height int, report func(scanlines, total int)) renderer.PixelSink {
	totalLines := height + 1
	step := max(1, totalLines/progressSteps)
	return renderer.CountScanlines(next, width, func(done int) {
		if done%step == 0 || done == totalLines {
			report(done, totalLines)
		}
	})
}
