package renderer

import (
	"fmt"

	"github.com/df07/go-tiled-pathtracer/pkg/integrator"
)

// RenderConfig contains the parameters of one tiled render
type RenderConfig struct {
	Width           int    // Output width in pixels
	Height          int    // Output height in pixels
	SamplesPerPixel int    // Camera rays averaged per pixel
	MaxDepth        int    // Maximum bounces per path
	TileCount       int    // Requested number of tiles; the grid is floor(sqrt(TileCount)) square
	ThreadCount     int    // Workers per tile; 0 detects the hardware thread count
	Seed            int64  // Base seed for the per-worker random streams
	Jitter          bool   // Randomly offset samples within each pixel
	Shading         string // Integrator name, see integrator.New
}

// DefaultRenderConfig returns a 400x225 path traced render over a 10x10 tile grid
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		Width:           400,
		Height:          225,
		SamplesPerPixel: 50,
		MaxDepth:        50,
		TileCount:       100,
		ThreadCount:     0,
		Seed:            0,
		Jitter:          true,
		Shading:         integrator.ShadingPath,
	}
}

// Validate checks that the configuration describes a renderable image
func (c RenderConfig) Validate() error {
	switch {
	case c.Width < 1 || c.Height < 1:
		return fmt.Errorf("%w: image size %dx%d", ErrInvalidConfig, c.Width, c.Height)
	case c.SamplesPerPixel < 1:
		return fmt.Errorf("%w: samples per pixel %d", ErrInvalidConfig, c.SamplesPerPixel)
	case c.MaxDepth < 0:
		return fmt.Errorf("%w: max depth %d", ErrInvalidConfig, c.MaxDepth)
	case c.TileCount < 1:
		return fmt.Errorf("%w: tile count %d", ErrInvalidConfig, c.TileCount)
	case c.ThreadCount < 0:
		return fmt.Errorf("%w: thread count %d", ErrInvalidConfig, c.ThreadCount)
	}
	return nil
}

// AspectRatio returns width over height
func (c RenderConfig) AspectRatio() float64 {
	return float64(c.Width) / float64(c.Height)
}
