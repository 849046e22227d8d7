package renderer

import (
	"errors"
	"fmt"
	"image"
	"sync"
	"sync/atomic"
	"time"

	"github.com/df07/go-tiled-pathtracer/pkg/core"
	"github.com/df07/go-tiled-pathtracer/pkg/integrator"
)

// seedOffset separates worker streams from a zero base seed
const seedOffset = 42

// PartResult is delivered to the OnPart callback as each tile is merged
type PartResult struct {
	Part       int         // 1-based part number
	TotalParts int         // Number of tiles in the grid
	Tile       *Tile       // Tile that was rendered
	Image      *image.RGBA // Tile pixels in render space (row 0 at the bottom)
}

// TiledRaytracer renders an image band by band. Every tile in a band is split
// into row slices, each rendered by its own goroutine with its own random
// stream; the band is merged only after all of its workers have returned.
type TiledRaytracer struct {
	scene      Scene
	config     RenderConfig
	integrator integrator.Integrator
	logger     core.Logger
	onPart     func(PartResult)
	state      atomic.Int32
}

// NewTiledRaytracer validates the configuration and prepares a render of scene
func NewTiledRaytracer(scene Scene, config RenderConfig, logger core.Logger) (*TiledRaytracer, error) {
	if scene == nil {
		return nil, fmt.Errorf("%w: nil scene", ErrInvalidConfig)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	integ, err := integrator.New(config.Shading, config.MaxDepth)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if logger == nil {
		logger = NewNopLogger()
	}

	rt := &TiledRaytracer{
		scene:      scene,
		config:     config,
		integrator: integ,
		logger:     logger,
	}
	rt.setState(StateSceneBuilt)
	return rt, nil
}

// SetIntegrator replaces the integrator chosen from the configured shading
func (rt *TiledRaytracer) SetIntegrator(integ integrator.Integrator) {
	rt.integrator = integ
}

// OnPart registers a callback invoked on the render goroutine after each tile is merged
func (rt *TiledRaytracer) OnPart(fn func(PartResult)) {
	rt.onPart = fn
}

// State returns the current lifecycle stage; safe to call from any goroutine
func (rt *TiledRaytracer) State() RenderState {
	return RenderState(rt.state.Load())
}

func (rt *TiledRaytracer) setState(s RenderState) {
	rt.state.Store(int32(s))
}

// Threads returns the number of workers each tile is split across before
// clamping to the tile's row count
func (rt *TiledRaytracer) Threads() int {
	if rt.config.ThreadCount > 0 {
		return rt.config.ThreadCount
	}
	return HardwareThreads()
}

// Render runs the whole render and returns the final image with row 0 at the top.
// Any worker or merge failure aborts the run and no image is returned.
func (rt *TiledRaytracer) Render() (*image.RGBA, RenderStats, error) {
	if !rt.state.CompareAndSwap(int32(StateSceneBuilt), int32(StateRendering)) &&
		!rt.state.CompareAndSwap(int32(StateDone), int32(StateRendering)) {
		return nil, RenderStats{}, fmt.Errorf("cannot start render in state %s", rt.State())
	}

	img, stats, err := rt.render()
	if err != nil {
		rt.setState(StateFailed)
		rt.logger.Printf("Render failed: %v\n", err)
		return nil, stats, err
	}

	rt.setState(StateDone)
	return img, stats, nil
}

func (rt *TiledRaytracer) render() (*image.RGBA, RenderStats, error) {
	start := time.Now()
	threads := rt.Threads()
	rt.logger.Printf("Using %d threads per tile (%d hardware threads)\n", threads, HardwareThreads())

	need := framebufferBytes(rt.config.Width, rt.config.Height)
	if avail := availableMemory(); avail > 0 && need > avail {
		return nil, RenderStats{}, fmt.Errorf("%w: need %d bytes, %d available", ErrInsufficientMemory, need, avail)
	}

	bands := NewTileGrid(rt.config.Width, rt.config.Height, rt.config.TileCount)
	totalParts := len(bands) * len(bands)
	stats := RenderStats{
		Tiles:          totalParts,
		Bands:          len(bands),
		ThreadsPerTile: threads,
	}

	tr := NewTileRenderer(rt.scene, rt.integrator, rt.config)
	final := NewCompositor(image.Rect(0, 0, rt.config.Width, rt.config.Height))
	part := 0

	for b, band := range bands {
		rt.setState(StateRendering)
		rt.logger.Printf("Rendering band %d/%d\n", b+1, len(bands))

		results, err := rt.renderBand(tr, band, threads, stats.Workers)
		stats.Workers += len(results)
		if err != nil {
			return nil, stats, fmt.Errorf("band %d: %w", b, err)
		}

		rt.setState(StateMerging)
		bandImage, err := rt.mergeBand(band, results, &part, totalParts, &stats)
		if err != nil {
			return nil, stats, fmt.Errorf("merging band %d: %w", b, err)
		}
		if err := final.Place(bandImage); err != nil {
			return nil, stats, fmt.Errorf("merging band %d: %w", b, err)
		}
	}

	img, err := final.Complete()
	if err != nil {
		return nil, stats, err
	}

	stats.Duration = time.Since(start)
	rt.logger.Printf("Render completed in %v (%d samples over %d pixels)\n",
		stats.Duration, stats.TotalSamples, stats.TotalPixels)

	return FlipVertical(img), stats, nil
}

// workerResult is one worker's finished framebuffer
type workerResult struct {
	tile  int
	image *image.RGBA
	stats RenderStats
	err   error
}

// renderBand starts one goroutine per row slice of every tile in the band and
// blocks until all of them have returned
func (rt *TiledRaytracer) renderBand(tr *TileRenderer, band []*Tile, threads, firstWorker int) ([]workerResult, error) {
	type job struct {
		tile   int
		bounds image.Rectangle
	}

	var jobs []job
	for t, tile := range band {
		for _, slice := range SplitRows(tile.Bounds, threads) {
			jobs = append(jobs, job{tile: t, bounds: slice})
		}
	}

	results := make([]workerResult, len(jobs))
	var wg sync.WaitGroup
	for k, j := range jobs {
		k, j := k, j
		wg.Add(1)
		go func() {
			defer wg.Done()
			seed := rt.config.Seed + seedOffset + int64(firstWorker+k)
			results[k] = runWorker(tr, j.bounds, seed)
			results[k].tile = j.tile
		}()
	}
	wg.Wait()

	var errs []error
	for _, r := range results {
		if r.err != nil {
			errs = append(errs, r.err)
		}
	}
	return results, errors.Join(errs...)
}

// runWorker renders one row slice, turning a panic into an error for the coordinator
func runWorker(tr *TileRenderer, bounds image.Rectangle, seed int64) (result workerResult) {
	defer func() {
		if r := recover(); r != nil {
			result = workerResult{err: fmt.Errorf("%w: rows %d-%d: %v", ErrWorkerFailed, bounds.Min.Y, bounds.Max.Y, r)}
		}
	}()

	sampler := core.NewSeededSampler(seed)
	img, stats := tr.RenderBounds(bounds, sampler)
	return workerResult{image: img, stats: stats}
}

// mergeBand assembles worker framebuffers into one image per tile, then the
// tiles into the band image
func (rt *TiledRaytracer) mergeBand(band []*Tile, results []workerResult, part *int, totalParts int, stats *RenderStats) (*image.RGBA, error) {
	bandComp := NewCompositor(BandBounds(band))

	for t, tile := range band {
		tileComp := NewCompositor(tile.Bounds)
		for _, r := range results {
			if r.tile != t {
				continue
			}
			if err := tileComp.Place(r.image); err != nil {
				return nil, fmt.Errorf("tile %d: %w", tile.ID, err)
			}
			stats.add(r.stats)
		}

		tileImage, err := tileComp.Complete()
		if err != nil {
			return nil, fmt.Errorf("tile %d: %w", tile.ID, err)
		}
		if err := bandComp.Place(tileImage); err != nil {
			return nil, fmt.Errorf("tile %d: %w", tile.ID, err)
		}

		*part++
		rt.logger.Printf("Part %d/%d combined\n", *part, totalParts)
		if rt.onPart != nil {
			rt.onPart(PartResult{Part: *part, TotalParts: totalParts, Tile: tile, Image: tileImage})
		}
	}

	return bandComp.Complete()
}
