package main

import (
	"flag"
	"fmt"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/df07/go-tiled-pathtracer/pkg/core"
	"github.com/df07/go-tiled-pathtracer/pkg/geometry"
	"github.com/df07/go-tiled-pathtracer/pkg/renderer"
	"github.com/df07/go-tiled-pathtracer/pkg/scene"
)

// options holds the parsed command line
type options struct {
	Scene   string
	Width   int
	Samples int
	Depth   int
	Tiles   int
	Threads int
	Seed    int64
	Shading string
	Out     string
}

func main() {
	var opts options
	flag.StringVar(&opts.Scene, "scene", "default", "Scene: 'default', 'final' or 'normals'")
	flag.IntVar(&opts.Width, "width", 0, "Image width in pixels (0 = scene default)")
	flag.IntVar(&opts.Samples, "samples", 0, "Samples per pixel (0 = scene default)")
	flag.IntVar(&opts.Depth, "depth", -1, "Maximum bounce depth (-1 = scene default)")
	flag.IntVar(&opts.Tiles, "tiles", 100, "Number of tiles; the grid is floor(sqrt(tiles)) square")
	flag.IntVar(&opts.Threads, "threads", 0, "Worker threads per tile (0 = hardware threads)")
	flag.Int64Var(&opts.Seed, "seed", 0, "Seed for random scene layout and sampling")
	flag.StringVar(&opts.Shading, "shading", "", "Shading: 'path' or 'normals' (empty = scene default)")
	flag.StringVar(&opts.Out, "out", "", "Output PNG path (default output/<scene>/render_<timestamp>.png)")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	if *help {
		fmt.Println("Tiled Path Tracer")
		fmt.Println("Usage: pathtracer [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("Available scenes:")
		for _, info := range scene.ListScenes() {
			fmt.Printf("  %-8s - %s\n", info.ID, info.Description)
		}
		fmt.Println()
		fmt.Println("Output will be saved to output/<scene>/render_<timestamp>.png")
		return
	}

	fmt.Println("Starting Tiled Path Tracer...")

	filename, err := run(opts, renderer.NewDefaultLogger(), time.Now())
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Render saved as %s\n", filename)
}

// run renders the selected scene and writes it as a PNG, returning the file name
func run(opts options, logger core.Logger, now time.Time) (string, error) {
	selectedScene, config, err := createRender(opts)
	if err != nil {
		return "", err
	}

	logger.Printf("Rendering %s scene at %dx%d, %d samples, depth %d, %s shading\n",
		opts.Scene, config.Width, config.Height, config.SamplesPerPixel, config.MaxDepth, config.Shading)

	raytracer, err := renderer.NewTiledRaytracer(selectedScene, config, logger)
	if err != nil {
		return "", err
	}

	img, stats, err := raytracer.Render()
	if err != nil {
		return "", fmt.Errorf("render failed: %w", err)
	}
	logger.Printf("Samples per pixel: %.1f over %d tiles, %d workers\n",
		stats.AverageSamples(), stats.Tiles, stats.Workers)

	filename := outputPath(opts, now)
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return "", fmt.Errorf("error creating output directory: %w", err)
	}

	file, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("error creating file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return "", fmt.Errorf("error saving PNG: %w", err)
	}

	return filename, nil
}

// createRender builds the scene and render configuration for the given options,
// falling back to the scene's recommended settings for unset values
func createRender(opts options) (*scene.Scene, renderer.RenderConfig, error) {
	// Build once to read the scene's preferred camera and sampling
	preview, err := scene.NewScene(opts.Scene, opts.Seed)
	if err != nil {
		return nil, renderer.RenderConfig{}, err
	}
	info, _ := scene.Lookup(opts.Scene)
	sampling := preview.SamplingConfig

	config := renderer.DefaultRenderConfig()
	config.Width = pick(opts.Width, sampling.Width)
	config.Height = max(1, int(math.Round(float64(config.Width)/preview.CameraConfig.AspectRatio)))
	config.SamplesPerPixel = pick(opts.Samples, sampling.SamplesPerPixel)
	config.MaxDepth = sampling.MaxDepth
	if opts.Depth >= 0 {
		config.MaxDepth = opts.Depth
	}
	config.TileCount = opts.Tiles
	config.ThreadCount = opts.Threads
	config.Seed = opts.Seed
	config.Shading = info.Shading
	if opts.Shading != "" {
		config.Shading = opts.Shading
	}

	if err := config.Validate(); err != nil {
		return nil, renderer.RenderConfig{}, err
	}

	// Rebuild with the exact pixel aspect so pixels stay square
	selectedScene, err := scene.NewScene(opts.Scene, opts.Seed, geometry.CameraConfig{
		AspectRatio: config.AspectRatio(),
	})
	if err != nil {
		return nil, renderer.RenderConfig{}, err
	}

	return selectedScene, config, nil
}

// outputPath returns the file to write for opts
func outputPath(opts options, now time.Time) string {
	if opts.Out != "" {
		return opts.Out
	}
	timestamp := now.Format("20060102_150405")
	return filepath.Join("output", opts.Scene, fmt.Sprintf("render_%s.png", timestamp))
}

func pick(value, fallback int) int {
	if value > 0 {
		return value
	}
	return fallback
}
