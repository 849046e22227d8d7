package scene

import (
	"math/rand"

	"github.com/df07/go-tiled-pathtracer/pkg/core"
	"github.com/df07/go-tiled-pathtracer/pkg/geometry"
	"github.com/df07/go-tiled-pathtracer/pkg/material"
)

// spheresHalfRow is half the side of the small sphere grid
const spheresHalfRow = 11

// NewFinalScene creates the classic cover scene: a field of small random
// spheres around three large ones. The layout depends only on seed.
func NewFinalScene(seed int64, cameraOverrides ...geometry.CameraConfig) *Scene {
	defaultCameraConfig := geometry.CameraConfig{
		Center:        core.NewVec3(13, 2, 3),
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.NewVec3(0, 1, 0),
		AspectRatio:   3.0 / 2.0,
		VFov:          20.0,
		Aperture:      0.1,
		FocusDistance: 10.0,
	}
	cameraConfig := cameraConfigWith(defaultCameraConfig, cameraOverrides)

	s := newScene(cameraConfig, SamplingConfig{
		Width:           600,
		SamplesPerPixel: 50,
		MaxDepth:        50,
	})

	random := rand.New(rand.NewSource(seed))

	s.Add(geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))))

	clearing := core.NewVec3(4, 0.2, 0)
	for i := -spheresHalfRow; i < spheresHalfRow; i++ {
		for j := -spheresHalfRow; j < spheresHalfRow; j++ {
			chooseMat := random.Float64()
			center := core.NewVec3(float64(i)+0.9*random.Float64(), 0.2, float64(j)+0.9*random.Float64())

			// Keep the space around the big metal sphere clear
			if center.Subtract(clearing).Length() <= 0.9 {
				continue
			}

			s.Add(geometry.NewSphere(center, 0.2, randomMaterial(chooseMat, random)))
		}
	}

	s.Add(
		geometry.NewSphere(core.NewVec3(0, 1, 0), 1, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(-4, 1, 0), 1, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))),
		geometry.NewSphere(core.NewVec3(4, 1, 0), 1, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0)),
	)

	return s
}

// randomMaterial picks 80% diffuse, 15% metal and 5% glass
func randomMaterial(choose float64, random *rand.Rand) material.Material {
	switch {
	case choose < 0.8:
		albedo := core.NewVec3(
			random.Float64()*random.Float64(),
			random.Float64()*random.Float64(),
			random.Float64()*random.Float64(),
		)
		return material.NewLambertian(albedo)
	case choose < 0.95:
		albedo := core.NewVec3(
			0.5*(1+random.Float64()),
			0.5*(1+random.Float64()),
			0.5*(1+random.Float64()),
		)
		return material.NewMetal(albedo, 0.5*random.Float64())
	default:
		return material.NewDielectric(1.5)
	}
}
