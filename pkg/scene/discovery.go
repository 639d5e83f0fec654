package scene

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultScenesDir is where JSON scene files are looked up by name
const DefaultScenesDir = "scenes"

// fileSceneID derives a scene ID from a file path: scenes/room.json -> room
func fileSceneID(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ListFileScenes scans dir for *.json scene files and returns their
// metadata sorted by ID. A missing directory yields no scenes.
func ListFileScenes(dir string) ([]SceneInfo, error) {
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		return []SceneInfo{}, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	scenes := make([]SceneInfo, 0, len(files))
	for _, path := range files {
		cfg, err := readConfig(path)
		if err != nil {
			// Skip unreadable files, keep the rest
			fmt.Printf("Warning: skipping scene file %s: %v\n", path, err)
			continue
		}
		id := fileSceneID(path)
		displayName := cfg.Name
		if displayName == "" {
			displayName = id
		}
		scenes = append(scenes, SceneInfo{
			ID:          id,
			DisplayName: displayName,
			Description: cfg.Description,
			Width:       cfg.Width,
			Height:      cfg.Height,
			Type:        TypeFile,
			FilePath:    path,
		})
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].ID < scenes[j].ID
	})
	return scenes, nil
}

// Open resolves name to a scene. Built-in names come first; a name ending in
// .json is read as a file path; any other name is looked up as
// <dir>/<name>.json. Non-zero width or height override the scene's size.
func Open(name, dir string, width, height int) (*Scene, error) {
	if name == "" {
		return nil, fmt.Errorf("scene name must not be empty")
	}
	if _, ok := builtins[name]; ok {
		return Create(name, width, height)
	}

	path := name
	if !strings.HasSuffix(name, ".json") {
		path = filepath.Join(dir, name+".json")
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("unknown scene %q", name)
		}
	}

	return OpenFile(path, width, height)
}

// OpenFile loads a JSON scene file. Non-zero width or height override the
// size given in the file.
func OpenFile(path string, width, height int) (*Scene, error) {
	s, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	if width == 0 && height == 0 {
		return s, nil
	}
	if width == 0 {
		width = s.Width
	}
	if height == 0 {
		height = s.Height
	}
	if err := s.SetScreenSize(width, height); err != nil {
		return nil, err
	}
	return s, nil
}
