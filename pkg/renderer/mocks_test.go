package renderer

import (
	"sync/atomic"

	"github.com/df07/go-tiled-pathtracer/pkg/core"
	"github.com/df07/go-tiled-pathtracer/pkg/geometry"
	"github.com/df07/go-tiled-pathtracer/pkg/integrator"
	"github.com/df07/go-tiled-pathtracer/pkg/material"
)

// MockScene implements Scene for renderer tests
type MockScene struct {
	world       *geometry.HittableList
	camera      *geometry.Camera
	topColor    core.Vec3
	bottomColor core.Vec3
}

func (m *MockScene) GetWorld() geometry.Hittable                 { return m.world }
func (m *MockScene) GetCamera() *geometry.Camera                 { return m.camera }
func (m *MockScene) GetBackgroundColors() (core.Vec3, core.Vec3) { return m.topColor, m.bottomColor }

// createMockScene creates a square-view scene with a diffuse sphere on a diffuse ground
func createMockScene() *MockScene {
	return &MockScene{
		world: geometry.NewHittableList(
			geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))),
			geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0))),
		),
		camera:      geometry.NewCamera(squareCameraConfig()),
		topColor:    core.NewVec3(0.5, 0.7, 1.0),
		bottomColor: core.NewVec3(1.0, 1.0, 1.0),
	}
}

// createFillingSphereScene creates a scene whose sphere covers the whole 90 degree view
func createFillingSphereScene() (*MockScene, *geometry.Sphere) {
	sphere := geometry.NewSphere(core.NewVec3(0, 0, -3), 2.5, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))
	return &MockScene{
		world:       geometry.NewHittableList(sphere),
		camera:      geometry.NewCamera(squareCameraConfig()),
		topColor:    core.NewVec3(0.5, 0.7, 1.0),
		bottomColor: core.NewVec3(1.0, 1.0, 1.0),
	}, sphere
}

func squareCameraConfig() geometry.CameraConfig {
	config := geometry.DefaultCameraConfig()
	config.AspectRatio = 1.0
	return config
}

// MockIntegrator returns a constant color and counts calls from any goroutine
type MockIntegrator struct {
	returnColor core.Vec3
	callCount   atomic.Int64
}

func (m *MockIntegrator) RayColor(ray core.Ray, scene integrator.Scene, sampler core.Sampler) core.Vec3 {
	m.callCount.Add(1)
	return m.returnColor
}

// PanicIntegrator panics on rays aimed steeply upward
type PanicIntegrator struct{}

func (PanicIntegrator) RayColor(ray core.Ray, scene integrator.Scene, sampler core.Sampler) core.Vec3 {
	if ray.Direction.Y > 0.5 {
		panic("integrator exploded")
	}
	return core.Vec3{}
}

func testConfig(width, height int) RenderConfig {
	config := DefaultRenderConfig()
	config.Width = width
	config.Height = height
	config.SamplesPerPixel = 2
	config.MaxDepth = 5
	config.TileCount = 4
	config.ThreadCount = 2
	return config
}
