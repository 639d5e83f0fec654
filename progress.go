package main

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

const progressBarWidth = 40

type scanlineMsg struct {
	done int
}

type renderDoneMsg struct {
	stats renderer.RenderStats
	err   error
}

// progressModel shows a scanline progress bar while a frame renders.
// Pressing q or ctrl+c cancels the render; the model quits once the render
// has stopped.
type progressModel struct {
	sceneName string
	total     int
	done      int
	canceled  bool
	finished  bool
	stats     renderer.RenderStats
	err       error
	cancel    context.CancelFunc
}

func newProgressModel(sceneName string, totalLines int, cancel context.CancelFunc) progressModel {
	return progressModel{
		sceneName: sceneName,
		total:     totalLines,
		cancel:    cancel,
	}
}

func (m progressModel) Init() tea.Cmd {
	return nil
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			if !m.canceled {
				m.canceled = true
				m.cancel()
			}
		}
	case scanlineMsg:
		m.done = msg.done
	case renderDoneMsg:
		m.finished = true
		m.stats = msg.stats
		m.err = msg.err
		return m, tea.Quit
	}
	return m, nil
}

func (m progressModel) View() string {
	if m.finished {
		if m.err != nil {
			return fmt.Sprintf("Render of %s stopped: %v\n", m.sceneName, m.err)
		}
		return fmt.Sprintf("Rendered %s: %d pixels in %v\n", m.sceneName, m.stats.TotalPixels, m.stats.Duration)
	}

	filled := 0
	if m.total > 0 {
		filled = progressBarWidth * m.done / m.total
	}
	bar := strings.Repeat("#", filled) + strings.Repeat("-", progressBarWidth-filled)
	status := "q to cancel"
	if m.canceled {
		status = "canceling..."
	}
	return fmt.Sprintf("Rendering %s [%s] %d/%d scanlines (%s)\n", m.sceneName, bar, m.done, m.total, status)
}

// renderWithProgress renders onto a new canvas while a terminal progress
// bar tracks completed scanlines
func renderWithProgress(raytracer *renderer.Raytracer, sceneName string, width, height int, gamma float64) (*renderer.CanvasSink, renderer.RenderStats, error) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	canvas := renderer.NewCanvasSink(width, height)
	canvas.SetGamma(gamma)

	program := tea.NewProgram(newProgressModel(sceneName, height+1, cancel))
	sink := renderer.CountScanlines(canvas.Set, width, func(done int) {
		program.Send(scanlineMsg{done: done})
	})

	go func() {
		stats, err := raytracer.RenderTo(ctx, sink)
		program.Send(renderDoneMsg{stats: stats, err: err})
	}()

	final, err := program.Run()
	if err != nil {
		return nil, renderer.RenderStats{}, fmt.Errorf("progress display: %w", err)
	}
	m := final.(progressModel)
	if m.err != nil {
		return nil, m.stats, m.err
	}
	return canvas, m.stats, nil
}
