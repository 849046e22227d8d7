package scene

import (
	"github.com/df07/go-tiled-pathtracer/pkg/core"
	"github.com/df07/go-tiled-pathtracer/pkg/geometry"
)

// Scene contains all the elements needed for rendering. It is read-only once
// built and shared by every render worker.
type Scene struct {
	Camera         *geometry.Camera
	World          *geometry.HittableList // Objects in the scene
	SamplingConfig SamplingConfig         // Recommended render settings
	CameraConfig   geometry.CameraConfig
	TopColor       core.Vec3 // Sky color straight up
	BottomColor    core.Vec3 // Sky color at the horizon and below
}

// SamplingConfig contains the render settings a scene looks best with
type SamplingConfig struct {
	Width           int // Image width
	SamplesPerPixel int // Number of rays per pixel
	MaxDepth        int // Maximum ray bounce depth
}

// newScene creates an empty scene with the standard sky and the given camera
func newScene(cameraConfig geometry.CameraConfig, samplingConfig SamplingConfig) *Scene {
	return &Scene{
		Camera:         geometry.NewCamera(cameraConfig),
		World:          geometry.NewHittableList(),
		SamplingConfig: samplingConfig,
		CameraConfig:   cameraConfig,
		TopColor:       core.NewVec3(0.5, 0.7, 1.0),
		BottomColor:    core.NewVec3(1.0, 1.0, 1.0),
	}
}

// cameraConfigWith applies the first override, if any, to base
func cameraConfigWith(base geometry.CameraConfig, overrides []geometry.CameraConfig) geometry.CameraConfig {
	if len(overrides) > 0 {
		return geometry.MergeCameraConfig(base, overrides[0])
	}
	return base
}

// Add appends objects to the scene
func (s *Scene) Add(objects ...geometry.Hittable) {
	for _, o := range objects {
		s.World.Add(o)
	}
}

// GetCamera returns the scene's camera
func (s *Scene) GetCamera() *geometry.Camera {
	return s.Camera
}

// GetWorld returns everything a ray can hit
func (s *Scene) GetWorld() geometry.Hittable {
	return s.World
}

// GetBackgroundColors returns the gradient colors for background
func (s *Scene) GetBackgroundColors() (topColor, bottomColor core.Vec3) {
	return s.TopColor, s.BottomColor
}

// GetPrimitiveCount returns the number of spheres in the scene
func (s *Scene) GetPrimitiveCount() int {
	return s.World.Len()
}
