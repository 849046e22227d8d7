package renderer

import "errors"

var (
	// ErrInvalidConfig is returned when a RenderConfig fails validation
	ErrInvalidConfig = errors.New("invalid render config")

	// ErrTileOutOfBounds is returned when an image is placed outside the merge target
	ErrTileOutOfBounds = errors.New("tile outside destination bounds")

	// ErrTileOverlap is returned when two placed images cover the same pixel
	ErrTileOverlap = errors.New("tile overlaps an already placed tile")

	// ErrIncompleteImage is returned when a merge target still has uncovered pixels
	ErrIncompleteImage = errors.New("merged image has uncovered pixels")

	// ErrInsufficientMemory is returned when the framebuffers would not fit in memory
	ErrInsufficientMemory = errors.New("insufficient memory for framebuffers")

	// ErrWorkerFailed wraps a panic or error raised inside a render worker
	ErrWorkerFailed = errors.New("render worker failed")
)
