package scene

import (
	"github.com/df07/go-tiled-pathtracer/pkg/core"
	"github.com/df07/go-tiled-pathtracer/pkg/geometry"
	"github.com/df07/go-tiled-pathtracer/pkg/material"
)

// NewNormalsScene creates a single sphere resting on a ground sphere, seen
// through the fixed pinhole camera. Meant for normal shading.
func NewNormalsScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	cameraConfig := cameraConfigWith(geometry.DefaultCameraConfig(), cameraOverrides)

	s := newScene(cameraConfig, SamplingConfig{
		Width:           400,
		SamplesPerPixel: 100,
		MaxDepth:        50,
	})

	gray := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	s.Add(
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, gray),
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, gray),
	)

	return s
}
