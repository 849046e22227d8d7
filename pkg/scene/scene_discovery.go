package scene

import (
	"fmt"
	"sort"
	"strings"

	"github.com/df07/go-tiled-pathtracer/pkg/geometry"
	"github.com/df07/go-tiled-pathtracer/pkg/integrator"
)

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	Name        string `json:"name"`        // Scene name
	Description string `json:"description"` // Optional description
	Shading     string `json:"shading"`     // Integrator the scene is meant for
	Seeded      bool   `json:"seeded"`      // Layout depends on the seed
}

// ScenesResponse represents the complete response for /api/scenes
type ScenesResponse struct {
	Scenes []SceneInfo `json:"scenes"`
}

// builder constructs a scene from a seed and optional camera overrides
type builder func(seed int64, overrides ...geometry.CameraConfig) *Scene

type entry struct {
	info  SceneInfo
	build builder
}

var builtins = map[string]entry{
	"default": {
		info: SceneInfo{
			Description: "Diffuse, glass and metal spheres on a yellow ground",
			Shading:     integrator.ShadingPath,
		},
		build: func(_ int64, overrides ...geometry.CameraConfig) *Scene {
			return NewDefaultScene(overrides...)
		},
	},
	"final": {
		info: SceneInfo{
			Description: "Hundreds of random small spheres around three large ones, with depth of field",
			Shading:     integrator.ShadingPath,
			Seeded:      true,
		},
		build: NewFinalScene,
	},
	"normals": {
		info: SceneInfo{
			Description: "A sphere on a ground sphere for surface normal shading",
			Shading:     integrator.ShadingNormals,
		},
		build: func(_ int64, overrides ...geometry.CameraConfig) *Scene {
			return NewNormalsScene(overrides...)
		},
	},
}

// ListScenes returns every built-in scene sorted by ID
func ListScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(builtins))
	for id, e := range builtins {
		info := e.info
		info.ID = id
		info.Name = titleCase(id)
		scenes = append(scenes, info)
	}
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].ID < scenes[j].ID
	})
	return scenes
}

// Lookup returns the description of a built-in scene
func Lookup(id string) (SceneInfo, bool) {
	for _, info := range ListScenes() {
		if info.ID == id {
			return info, true
		}
	}
	return SceneInfo{}, false
}

// NewScene builds the named built-in scene. The seed only affects seeded scenes.
func NewScene(id string, seed int64, cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	e, ok := builtins[id]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q (available: %s)", id, strings.Join(sceneIDs(), ", "))
	}
	return e.build(seed, cameraOverrides...), nil
}

func sceneIDs() []string {
	ids := make([]string, 0, len(builtins))
	for _, info := range ListScenes() {
		ids = append(ids, info.ID)
	}
	return ids
}

// titleCase converts kebab-case or snake_case to Title Case
func titleCase(s string) string {
	if s == "" {
		return ""
	}

	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}

	return strings.Join(words, " ")
}
