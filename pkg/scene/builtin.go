package scene

import (
	"fmt"
	"sort"
)

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Description string `json:"description"`
	Width       int    `json:"width"`              // Recommended width
	Height      int    `json:"height"`             // Recommended height
	Type        string `json:"type"`               // "builtin" or "file"
	FilePath    string `json:"filePath,omitempty"` // Path to the JSON file (file type only)
}

// Scene types reported in SceneInfo.Type
const (
	TypeBuiltin = "builtin"
	TypeFile    = "file"
)

type builtin struct {
	info   SceneInfo
	create func(width, height int) (*Scene, error)
}

var builtins = map[string]builtin{
	"default": {
		info:   SceneInfo{ID: "default", DisplayName: "Three Spheres", Description: "Colored spheres, a triangle and a checkerboard floor", Width: 400, Height: 400},
		create: NewDefaultScene,
	},
	"mirrors": {
		info:   SceneInfo{ID: "mirrors", DisplayName: "Mirror Corridor", Description: "A sphere between two facing mirrors", Width: 400, Height: 300},
		create: NewMirrorScene,
	},
	"shadow": {
		info:   SceneInfo{ID: "shadow", DisplayName: "Hard Shadows", Description: "Two colored lights and an occluder", Width: 400, Height: 300},
		create: NewShadowScene,
	},
	"spheregrid": {
		info:   SceneInfo{ID: "spheregrid", DisplayName: "Sphere Grid", Description: "Hue and glossiness sweep", Width: 640, Height: 360},
		create: NewSphereGridScene,
	},
}

// Names returns the built-in scene names in sorted order
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// List returns metadata for all built-in scenes, sorted by ID
func List() []SceneInfo {
	infos := make([]SceneInfo, 0, len(builtins))
	for _, name := range Names() {
		info := builtins[name].info
		info.Type = TypeBuiltin
		infos = append(infos, info)
	}
	return infos
}

// Create builds a built-in scene. Zero width or height selects the scene's
// recommended size.
func Create(name string, width, height int) (*Scene, error) {
	b, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q", name)
	}
	if width == 0 {
		width = b.info.Width
	}
	if height == 0 {
		height = b.info.Height
	}
	return b.create(width, height)
}
