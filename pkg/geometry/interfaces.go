package geometry

import (
	"github.com/df07/go-tiled-pathtracer/pkg/core"
	"github.com/df07/go-tiled-pathtracer/pkg/material"
)

// Hittable is anything a ray can intersect: a Sphere or a HittableList.
// Implementations are read-only once built and safe for concurrent Hit calls.
type Hittable interface {
	// Hit returns the intersection with t in [tMin, tMax], or false on a miss
	Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool)

	sealed()
}
