package renderer

import (
	"image"
	"image/color"
	"math"

	"github.com/df07/go-tiled-pathtracer/pkg/core"
)

// NewFrameBuffer allocates an image covering exactly bounds. Each worker owns
// one until it is handed to the compositor.
func NewFrameBuffer(bounds image.Rectangle) *image.RGBA {
	return image.NewRGBA(bounds)
}

// Vec3ToRGBA converts an averaged linear color into an opaque 8-bit pixel
// using gamma 2
func Vec3ToRGBA(c core.Vec3) color.RGBA {
	c = c.Clamp(0, 1).GammaCorrect(2.0)
	return color.RGBA{
		R: quantize(c.X),
		G: quantize(c.Y),
		B: quantize(c.Z),
		A: 255,
	}
}

func quantize(x float64) uint8 {
	if math.IsNaN(x) {
		return 0
	}
	return uint8(255 * x)
}

// FlipVertical returns a copy of img with its rows in reverse order
func FlipVertical(img *image.RGBA) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(b)
	rowBytes := b.Dx() * 4
	for y := 0; y < b.Dy(); y++ {
		src := img.PixOffset(b.Min.X, b.Min.Y+y)
		dst := out.PixOffset(b.Min.X, b.Max.Y-1-y)
		copy(out.Pix[dst:dst+rowBytes], img.Pix[src:src+rowBytes])
	}
	return out
}
