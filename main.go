package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

func main() {
	// Parse command line flags
	sceneType := flag.String("scene", "default", "Scene: built-in ("+strings.Join(scene.Names(), ", ")+") or a file in scenes/")
	configFile := flag.String("config", "", "JSON scene file (overrides -scene)")
	width := flag.Int("width", 0, "Image width in pixels (0 = scene default)")
	height := flag.Int("height", 0, "Image height in pixels (0 = scene default)")
	level := flag.Int("level", -1, "Reflection depth (-1 = scene default)")
	workers := flag.Int("workers", -1, "Render goroutines: 0 = serial, -1 = one per CPU")
	gamma := flag.Float64("gamma", 1.0, "Output gamma, 1 = none")
	tui := flag.Bool("tui", false, "Show a terminal progress bar while rendering")
	outFile := flag.String("out", "", "Output PNG path (default output/<scene>/render_<timestamp>.png)")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	// Show help if requested
	if *help {
		fmt.Println("Whitted Raytracer")
		fmt.Println("Usage: raytracer [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("Available scenes:")
		for _, info := range scene.List() {
			fmt.Printf("  %-10s - %s (%dx%d)\n", info.ID, info.Description, info.Width, info.Height)
		}
		if files, err := scene.ListFileScenes(scene.DefaultScenesDir); err == nil {
			for _, info := range files {
				fmt.Printf("  %-10s - %s (%s)\n", info.ID, info.Description, info.FilePath)
			}
		}
		fmt.Println()
		fmt.Println("Output will be saved to output/<scene>/render_<timestamp>.png")
		return
	}

	fmt.Println("Starting Whitted Raytracer...")

	var selectedScene *scene.Scene
	var err error
	if *configFile != "" {
		fmt.Printf("Loading scene file %s...\n", *configFile)
		selectedScene, err = loadSceneFile(*configFile, *width, *height)
	} else {
		fmt.Printf("Using %s scene...\n", *sceneType)
		selectedScene, err = createScene(*sceneType, *width, *height)
	}
	if err != nil {
		fmt.Printf("Error creating scene: %v\n", err)
		os.Exit(1)
	}
	if *level >= 0 {
		selectedScene.Level = *level
	}
	if err := selectedScene.Validate(); err != nil {
		fmt.Printf("Invalid scene: %v\n", err)
		os.Exit(1)
	}

	filename := *outFile
	if filename == "" {
		outputDir, err := createOutputDir(selectedScene.Name)
		if err != nil {
			fmt.Printf("Error creating output directory: %v\n", err)
			os.Exit(1)
		}
		timestamp := time.Now().Format("20060102_150405")
		filename = filepath.Join(outputDir, fmt.Sprintf("render_%s.png", timestamp))
	}

	// The progress bar owns the terminal, so engine logs are dropped with -tui
	var logger core.Logger = renderer.NewDefaultLogger()
	if *tui {
		logger = nil
	}
	raytracer := renderer.NewRaytracer(selectedScene, logger)
	raytracer.SetRenderConfig(renderer.RenderConfig{
		Workers: *workers,
		Gamma:   *gamma,
	})

	var canvas *renderer.CanvasSink
	var stats renderer.RenderStats
	if *tui {
		canvas, stats, err = renderWithProgress(raytracer, selectedScene.Name, selectedScene.Width, selectedScene.Height, *gamma)
	} else {
		canvas, stats, err = raytracer.RenderCanvas(context.Background())
	}
	if err != nil {
		fmt.Printf("Render failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Render completed in %v (%d scanlines)\n", stats.Duration, stats.Scanlines)

	if err := canvas.SavePNG(filename); err != nil {
		fmt.Printf("Error saving PNG: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Render saved as %s\n", filename)
}

// createScene resolves a built-in scene name or a JSON scene in scenes/.
// Zero width or height keeps the scene's own size.
func createScene(sceneType string, width, height int) (*scene.Scene, error) {
	return scene.Open(sceneType, scene.DefaultScenesDir, width, height)
}

// loadSceneFile loads a JSON scene, optionally overriding its resolution
func loadSceneFile(path string, width, height int) (*scene.Scene, error) {
	return scene.OpenFile(path, width, height)
}

// createOutputDir creates output/<scene name>/ and returns its path
func createOutputDir(sceneName string) (string, error) {
	name := fileBaseName(sceneName)
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "custom"
	}
	outputDir := filepath.Join("output", name)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", err
	}
	return outputDir, nil
}

func fileBaseName(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}
