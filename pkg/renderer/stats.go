package renderer

import "time"

// RenderStats contains statistics about one rendered frame
type RenderStats struct {
	TotalPixels int           // Pixels in the frame, (width+1)*(height+1)
	Scanlines   int           // Scanlines delivered to the sink
	Workers     int           // Goroutines used
	Duration    time.Duration // Wall time of the frame
}

func newRenderStats(vp Viewport, workers int) RenderStats {
	return RenderStats{
		TotalPixels: (vp.Width + 1) * (vp.Height + 1),
		Workers:     workers,
	}
}

func (s *RenderStats) finish(start time.Time) {
	s.Duration = time.Since(start)
}

// PixelsPerSecond returns the throughput of the frame
func (s RenderStats) PixelsPerSecond() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.TotalPixels) / s.Duration.Seconds()
}
