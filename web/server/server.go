package server

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	xdraw "golang.org/x/image/draw"

	"github.com/df07/go-tiled-pathtracer/pkg/core"
	"github.com/df07/go-tiled-pathtracer/pkg/geometry"
	"github.com/df07/go-tiled-pathtracer/pkg/renderer"
	"github.com/df07/go-tiled-pathtracer/pkg/scene"
)

// Server handles web requests for the tiled path tracer
type Server struct {
	port int
	echo *echo.Echo
}

// NewServer creates a new web server with all routes registered
func NewServer(port int) *Server {
	s := &Server{port: port, echo: echo.New()}
	s.echo.HideBanner = true

	s.echo.Use(middleware.Recover())
	s.echo.Use(middleware.Logger())
	s.echo.Use(corsMiddleware)

	s.echo.GET("/api/health", s.handleHealth)
	s.echo.GET("/api/scenes", s.handleScenes)
	s.echo.GET("/api/scene-config", s.handleSceneConfig)
	s.echo.GET("/api/render", s.handleRender)
	s.echo.GET("/api/render/stream", s.handleRenderStream)
	s.echo.GET("/api/inspect", s.handleInspect)

	return s
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene   string `json:"scene"`   // Scene ID (e.g., "final")
	Width   int    `json:"width"`   // Image width
	Height  int    `json:"height"`  // Image height
	Samples int    `json:"samples"` // Samples per pixel
	Depth   int    `json:"depth"`   // Maximum bounce depth
	Tiles   int    `json:"tiles"`   // Requested tile count
	Threads int    `json:"threads"` // Workers per tile, 0 for auto
	Seed    int64  `json:"seed"`    // Scene layout and sampling seed
	Shading string `json:"shading"` // Integrator override
	Thumb   int    `json:"thumb"`   // Downscale to this width, 0 keeps full size
}

// Stats represents render statistics
type Stats struct {
	TotalPixels    int     `json:"totalPixels"`
	TotalSamples   int64   `json:"totalSamples"`
	AverageSamples float64 `json:"averageSamples"`
	Tiles          int     `json:"tiles"`
	Workers        int     `json:"workers"`
	ElapsedMs      int64   `json:"elapsedMs"`
}

func newStats(stats renderer.RenderStats) Stats {
	return Stats{
		TotalPixels:    stats.TotalPixels,
		TotalSamples:   int64(stats.TotalSamples),
		AverageSamples: stats.AverageSamples(),
		Tiles:          stats.Tiles,
		Workers:        stats.Workers,
		ElapsedMs:      stats.Duration.Milliseconds(),
	}
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return s.echo.Start(addr)
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.echo
}

func corsMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Set("Access-Control-Allow-Origin", "*")
		c.Response().Header().Set("Access-Control-Allow-Methods", "GET")
		c.Response().Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept")

		if c.Request().Method == http.MethodOptions {
			return c.NoContent(http.StatusOK)
		}

		return next(c)
	}
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes
func (s *Server) handleScenes(c echo.Context) error {
	return c.JSON(http.StatusOK, scene.ScenesResponse{Scenes: scene.ListScenes()})
}

// handleSceneConfig returns the default configuration for a scene
func (s *Server) handleSceneConfig(c echo.Context) error {
	sceneName := c.QueryParam("scene")
	if sceneName == "" {
		sceneName = "default"
	}

	info, ok := scene.Lookup(sceneName)
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Unknown scene: " + sceneName})
	}
	sceneObj, err := scene.NewScene(sceneName, 0)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	config := sceneObj.SamplingConfig
	return c.JSON(http.StatusOK, map[string]interface{}{
		"scene": info,
		"defaults": map[string]interface{}{
			"width":           config.Width,
			"aspectRatio":     sceneObj.CameraConfig.AspectRatio,
			"samplesPerPixel": config.SamplesPerPixel,
			"maxDepth":        config.MaxDepth,
			"shading":         info.Shading,
		},
		"limits": map[string]interface{}{
			"width":   map[string]int{"min": 1, "max": 2000},
			"height":  map[string]int{"min": 1, "max": 2000},
			"samples": map[string]int{"min": 1, "max": 10000},
			"depth":   map[string]int{"min": 0, "max": 1000},
			"tiles":   map[string]int{"min": 1, "max": 10000},
			"threads": map[string]int{"min": 0, "max": 256},
		},
	})
}

// handleRender renders the whole image and responds with a PNG
func (s *Server) handleRender(c echo.Context) error {
	req, err := parseRenderRequest(c.QueryParams())
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request: " + err.Error()})
	}

	raytracer, err := setupRaytracer(req, renderer.NewNopLogger())
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	img, stats, err := raytracer.Render()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Render error: " + err.Error()})
	}

	var out image.Image = img
	if req.Thumb > 0 && req.Thumb < req.Width {
		out = thumbnail(img, req.Thumb)
	}

	data, err := encodePNG(out)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to encode image: " + err.Error()})
	}

	c.Response().Header().Set("X-Render-Samples", strconv.Itoa(stats.TotalSamples))
	c.Response().Header().Set("X-Render-Ms", strconv.FormatInt(stats.Duration.Milliseconds(), 10))
	return c.Blob(http.StatusOK, "image/png", data)
}

// parseRenderRequest parses and validates query parameters
func parseRenderRequest(values url.Values) (*RenderRequest, error) {
	req := &RenderRequest{
		Scene:   values.Get("scene"),
		Shading: values.Get("shading"),
	}
	if req.Scene == "" {
		req.Scene = "default"
	}

	var err error
	if req.Width, err = parseIntParam(values, "width", 400, 1, 2000); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(values, "height", 225, 1, 2000); err != nil {
		return nil, err
	}
	if req.Samples, err = parseIntParam(values, "samples", 10, 1, 10000); err != nil {
		return nil, err
	}
	if req.Depth, err = parseIntParam(values, "depth", 50, 0, 1000); err != nil {
		return nil, err
	}
	if req.Tiles, err = parseIntParam(values, "tiles", 16, 1, 10000); err != nil {
		return nil, err
	}
	if req.Threads, err = parseIntParam(values, "threads", 0, 0, 256); err != nil {
		return nil, err
	}
	if req.Thumb, err = parseIntParam(values, "thumb", 0, 0, 2000); err != nil {
		return nil, err
	}
	if value := values.Get("seed"); value != "" {
		if req.Seed, err = strconv.ParseInt(value, 10, 64); err != nil {
			return nil, fmt.Errorf("invalid seed: %s", value)
		}
	}

	// Performance warning
	if req.Width*req.Height > 800*600 && req.Samples > 100 {
		log.Printf("Render warning: Large image with high samples may render slowly")
	}

	return req, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// createScene builds the requested scene with a camera matching the image aspect
func createScene(req *RenderRequest) (*scene.Scene, error) {
	return scene.NewScene(req.Scene, req.Seed, geometry.CameraConfig{
		AspectRatio: float64(req.Width) / float64(req.Height),
	})
}

// setupRaytracer creates the scene and a tiled raytracer for a request
func setupRaytracer(req *RenderRequest, logger core.Logger) (*renderer.TiledRaytracer, error) {
	sceneObj, err := createScene(req)
	if err != nil {
		return nil, err
	}

	config := renderer.DefaultRenderConfig()
	config.Width = req.Width
	config.Height = req.Height
	config.SamplesPerPixel = req.Samples
	config.MaxDepth = req.Depth
	config.TileCount = req.Tiles
	config.ThreadCount = req.Threads
	config.Seed = req.Seed
	if info, ok := scene.Lookup(req.Scene); ok {
		config.Shading = info.Shading
	}
	if req.Shading != "" {
		config.Shading = req.Shading
	}

	return renderer.NewTiledRaytracer(sceneObj, config, logger)
}

// thumbnail downscales img to the given width, keeping its aspect ratio
func thumbnail(img image.Image, width int) *image.RGBA {
	b := img.Bounds()
	height := max(1, b.Dy()*width/b.Dx())
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}

// encodePNG encodes an image as PNG bytes
func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
