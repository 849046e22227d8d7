package integrator

import (
	"github.com/df07/go-tiled-pathtracer/pkg/core"
)

// NormalIntegrator shades hits by their surface normal mapped into [0,1]³.
// It never scatters, so depth only matters when it is zero.
type NormalIntegrator struct {
	maxDepth int
}

// NewNormalIntegrator creates a normal visualisation integrator
func NewNormalIntegrator(maxDepth int) *NormalIntegrator {
	return &NormalIntegrator{maxDepth: max(0, maxDepth)}
}

// RayColor returns (normal + 1) / 2 on a hit and the background on a miss
func (n *NormalIntegrator) RayColor(ray core.Ray, scene Scene, sampler core.Sampler) core.Vec3 {
	if n.maxDepth <= 0 {
		return core.Vec3{}
	}

	hit, isHit := hitWorld(ray, scene)
	if !isHit {
		return BackgroundGradient(ray, scene)
	}

	return NormalColor(hit.Normal)
}

// NormalColor maps a unit normal to a color
func NormalColor(normal core.Vec3) core.Vec3 {
	return normal.Add(core.NewVec3(1, 1, 1)).Multiply(0.5)
}
