package renderer

import "time"

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels    int           // Total number of pixels rendered
	TotalSamples   int           // Total number of camera samples taken
	Tiles          int           // Tiles in the grid
	Bands          int           // Bands in the grid
	Workers        int           // Worker goroutines started over the whole render
	ThreadsPerTile int           // Configured workers per tile before clamping to tile rows
	Duration       time.Duration // Wall time from first band to final composite
}

// add folds a worker's pixel counts into the totals
func (s *RenderStats) add(other RenderStats) {
	s.TotalPixels += other.TotalPixels
	s.TotalSamples += other.TotalSamples
}

// AverageSamples returns the mean samples per pixel
func (s RenderStats) AverageSamples() float64 {
	if s.TotalPixels == 0 {
		return 0
	}
	return float64(s.TotalSamples) / float64(s.TotalPixels)
}
