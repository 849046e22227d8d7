package renderer

import (
	"image"

	"github.com/df07/go-tiled-pathtracer/pkg/core"
	"github.com/df07/go-tiled-pathtracer/pkg/geometry"
	"github.com/df07/go-tiled-pathtracer/pkg/integrator"
)

// Scene is what the renderer needs from a scene: the world and background for
// the integrator, and the camera that generates primary rays
type Scene interface {
	integrator.Scene
	GetCamera() *geometry.Camera
}

// TileRenderer renders rectangular pixel regions with an integrator. It holds
// no mutable state, so one instance is shared by all workers.
type TileRenderer struct {
	scene      Scene
	integrator integrator.Integrator
	width      int
	height     int
	samples    int
	jitter     bool
}

// NewTileRenderer creates a tile renderer for a full image of the configured size
func NewTileRenderer(scene Scene, integratorInst integrator.Integrator, config RenderConfig) *TileRenderer {
	return &TileRenderer{
		scene:      scene,
		integrator: integratorInst,
		width:      config.Width,
		height:     config.Height,
		samples:    config.SamplesPerPixel,
		jitter:     config.Jitter,
	}
}

// RenderBounds renders every pixel in bounds into a new framebuffer, drawing all
// randomness from sampler. Rows are walked from the top of the region down.
func (tr *TileRenderer) RenderBounds(bounds image.Rectangle, sampler core.Sampler) (*image.RGBA, RenderStats) {
	fb := NewFrameBuffer(bounds)
	stats := RenderStats{TotalPixels: bounds.Dx() * bounds.Dy()}

	for j := bounds.Max.Y - 1; j >= bounds.Min.Y; j-- {
		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			fb.SetRGBA(i, j, Vec3ToRGBA(tr.samplePixel(i, j, sampler)))
			stats.TotalSamples += tr.samples
		}
	}

	return fb, stats
}

// samplePixel averages the configured number of camera samples for pixel (i, j)
func (tr *TileRenderer) samplePixel(i, j int, sampler core.Sampler) core.Vec3 {
	camera := tr.scene.GetCamera()
	uScale := 1.0 / float64(max(tr.width-1, 1))
	vScale := 1.0 / float64(max(tr.height-1, 1))

	var accum core.Vec3
	for s := 0; s < tr.samples; s++ {
		du, dv := 0.0, 0.0
		if tr.jitter {
			du, dv = sampler.Get1D(), sampler.Get1D()
		}
		u := (float64(i) + du) * uScale
		v := (float64(j) + dv) * vScale
		ray := camera.GetRay(u, v, sampler)
		accum = accum.Add(tr.integrator.RayColor(ray, tr.scene, sampler))
	}

	return accum.Multiply(1.0 / float64(tr.samples))
}
