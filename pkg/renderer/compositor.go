package renderer

import (
	"fmt"
	"image"

	xdraw "golang.org/x/image/draw"
)

// Compositor assembles non-overlapping sub-images into one destination.
// Merging is placement, not blending; every placement is checked so a lost or
// doubled tile fails the render instead of corrupting it.
type Compositor struct {
	dst     *image.RGBA
	placed  []image.Rectangle
	covered int
}

// NewCompositor creates a compositor for an empty image covering bounds
func NewCompositor(bounds image.Rectangle) *Compositor {
	return &Compositor{dst: image.NewRGBA(bounds)}
}

// Place copies src into the destination at src's own bounds
func (c *Compositor) Place(src *image.RGBA) error {
	r := src.Bounds()
	if r.Empty() {
		return nil
	}
	if !r.In(c.dst.Bounds()) {
		return fmt.Errorf("%w: %v not in %v", ErrTileOutOfBounds, r, c.dst.Bounds())
	}
	for _, p := range c.placed {
		if r.Overlaps(p) {
			return fmt.Errorf("%w: %v and %v", ErrTileOverlap, r, p)
		}
	}

	xdraw.Draw(c.dst, r, src, r.Min, xdraw.Src)
	c.placed = append(c.placed, r)
	c.covered += r.Dx() * r.Dy()
	return nil
}

// Bounds returns the destination bounds
func (c *Compositor) Bounds() image.Rectangle {
	return c.dst.Bounds()
}

// Complete returns the merged image once every pixel has been placed exactly once
func (c *Compositor) Complete() (*image.RGBA, error) {
	b := c.dst.Bounds()
	if total := b.Dx() * b.Dy(); c.covered != total {
		return nil, fmt.Errorf("%w: %d of %d pixels in %v", ErrIncompleteImage, c.covered, total, b)
	}
	return c.dst, nil
}
