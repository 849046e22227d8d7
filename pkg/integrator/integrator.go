package integrator

import (
	"fmt"
	"math"

	"github.com/df07/go-tiled-pathtracer/pkg/core"
	"github.com/df07/go-tiled-pathtracer/pkg/geometry"
	"github.com/df07/go-tiled-pathtracer/pkg/material"
)

const (
	// ShadowAcneEpsilon is the minimum hit distance for any ray
	ShadowAcneEpsilon = 0.001
)

// Scene is the read-only view of a scene an integrator needs
type Scene interface {
	GetWorld() geometry.Hittable
	GetBackgroundColors() (topColor, bottomColor core.Vec3)
}

// Integrator defines the interface for light transport algorithms.
// Implementations hold no per-ray state and may be shared across workers;
// all randomness comes from the caller's sampler.
type Integrator interface {
	RayColor(ray core.Ray, scene Scene, sampler core.Sampler) core.Vec3
}

// BackgroundGradient returns the vertical sky gradient for a ray direction:
// white at the bottom blending into topColor straight up.
func BackgroundGradient(r core.Ray, scene Scene) core.Vec3 {
	topColor, bottomColor := scene.GetBackgroundColors()

	unitDirection := r.Direction.Normalize()

	// Map y from [-1,1] to [0,1]
	t := 0.5 * (unitDirection.Y + 1.0)

	return bottomColor.Multiply(1.0 - t).Add(topColor.Multiply(t))
}

// hitWorld intersects a ray with the scene from ShadowAcneEpsilon to infinity
func hitWorld(ray core.Ray, scene Scene) (*material.HitRecord, bool) {
	return scene.GetWorld().Hit(ray, ShadowAcneEpsilon, math.Inf(1))
}

// Shading names accepted by New
const (
	ShadingPath    = "path"
	ShadingNormals = "normals"
)

// New creates the integrator for a shading name
func New(shading string, maxDepth int) (Integrator, error) {
	switch shading {
	case ShadingPath, "":
		return NewPathTracingIntegrator(maxDepth), nil
	case ShadingNormals:
		return NewNormalIntegrator(maxDepth), nil
	default:
		return nil, fmt.Errorf("unknown shading %q (expected %q or %q)", shading, ShadingPath, ShadingNormals)
	}
}
