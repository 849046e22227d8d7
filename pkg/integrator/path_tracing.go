package integrator

import (
	"github.com/df07/go-tiled-pathtracer/pkg/core"
)

// PathTracingIntegrator implements unidirectional path tracing with material scattering
type PathTracingIntegrator struct {
	maxDepth int
}

// NewPathTracingIntegrator creates a path tracer that follows at most maxDepth bounces
func NewPathTracingIntegrator(maxDepth int) *PathTracingIntegrator {
	return &PathTracingIntegrator{maxDepth: max(0, maxDepth)}
}

// MaxDepth returns the bounce limit
func (pt *PathTracingIntegrator) MaxDepth() int {
	return pt.maxDepth
}

// RayColor computes the color for a single camera ray
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, scene Scene, sampler core.Sampler) core.Vec3 {
	return pt.Trace(ray, scene, pt.maxDepth, sampler)
}

// Trace follows a ray for at most depth bounces. Each bounce multiplies the
// running throughput by the material attenuation; the path ends on a miss
// (background), an absorption (black), or when depth runs out (black).
func (pt *PathTracingIntegrator) Trace(ray core.Ray, scene Scene, depth int, sampler core.Sampler) core.Vec3 {
	throughput := core.NewVec3(1, 1, 1)

	for ; depth > 0; depth-- {
		hit, isHit := hitWorld(ray, scene)
		if !isHit {
			return throughput.MultiplyVec(BackgroundGradient(ray, scene))
		}

		scatter, didScatter := hit.Material.Scatter(ray, *hit, sampler)
		if !didScatter {
			return core.Vec3{}
		}

		throughput = throughput.MultiplyVec(scatter.Attenuation)
		ray = scatter.Scattered
	}

	// Energy exhausted
	return core.Vec3{}
}
