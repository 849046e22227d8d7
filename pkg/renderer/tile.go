package renderer

import (
	"image"
	"math"
)

// Tile is one cell of the render grid. Bounds are in render space, where
// row 0 is the bottom of the image.
type Tile struct {
	ID     int             // Position in reading order: left to right, top to bottom
	Band   int             // Row of the grid, counted from the top
	Column int             // Column of the grid, counted from the left
	Bounds image.Rectangle // Pixel region covered by the tile
}

// GridSize returns the side D of the square tile grid for a requested tile
// count, never more than the smaller image dimension.
func GridSize(tileCount, width, height int) int {
	d := int(math.Floor(math.Sqrt(float64(tileCount))))
	d = max(d, 1)
	return min(d, width, height)
}

// split returns the half-open range of part i when [0, n) is cut into parts pieces
func split(n, parts, i int) (int, int) {
	return i * n / parts, (i + 1) * n / parts
}

// NewTileGrid partitions a width x height image into a D x D grid and returns
// the tiles grouped by band, top band first
func NewTileGrid(width, height, tileCount int) [][]*Tile {
	d := GridSize(tileCount, width, height)
	bands := make([][]*Tile, d)

	id := 0
	for b := 0; b < d; b++ {
		y0, y1 := split(height, d, d-1-b)
		bands[b] = make([]*Tile, d)
		for c := 0; c < d; c++ {
			x0, x1 := split(width, d, c)
			bands[b][c] = &Tile{
				ID:     id,
				Band:   b,
				Column: c,
				Bounds: image.Rect(x0, y0, x1, y1),
			}
			id++
		}
	}

	return bands
}

// BandBounds returns the union of a band's tiles
func BandBounds(band []*Tile) image.Rectangle {
	var r image.Rectangle
	for _, tile := range band {
		r = r.Union(tile.Bounds)
	}
	return r
}

// SplitRows divides bounds into at most threads horizontal slices of whole rows
func SplitRows(bounds image.Rectangle, threads int) []image.Rectangle {
	rows := bounds.Dy()
	n := max(min(threads, rows), 1)

	slices := make([]image.Rectangle, 0, n)
	for i := 0; i < n; i++ {
		y0, y1 := split(rows, n, i)
		slices = append(slices, image.Rect(bounds.Min.X, bounds.Min.Y+y0, bounds.Max.X, bounds.Min.Y+y1))
	}
	return slices
}
