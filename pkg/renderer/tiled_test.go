package renderer

import (
	"bytes"
	"errors"
	"image"
	"math"
	"testing"

	"github.com/df07/go-tiled-pathtracer/pkg/core"
	"github.com/df07/go-tiled-pathtracer/pkg/integrator"
)

func TestNewTiledRaytracerErrors(t *testing.T) {
	tests := []struct {
		name   string
		scene  Scene
		modify func(*RenderConfig)
	}{
		{"nil scene", nil, func(c *RenderConfig) {}},
		{"invalid size", createMockScene(), func(c *RenderConfig) { c.Width = 0 }},
		{"unknown shading", createMockScene(), func(c *RenderConfig) { c.Shading = "wireframe" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := testConfig(8, 8)
			tt.modify(&config)
			rt, err := NewTiledRaytracer(tt.scene, config, nil)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig, got %v", err)
			}
			if rt != nil {
				t.Error("Expected no raytracer on error")
			}
		})
	}
}

func TestTiledRaytracerNormalsEndToEnd(t *testing.T) {
	tests := []struct {
		name    string
		tiles   int
		threads int
	}{
		{"single tile", 1, 1},
		{"tile per pixel", 4, 1},
		{"thread per row", 1, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scene, sphere := createFillingSphereScene()
			config := RenderConfig{
				Width:           2,
				Height:          2,
				SamplesPerPixel: 1,
				MaxDepth:        1,
				TileCount:       tt.tiles,
				ThreadCount:     tt.threads,
				Jitter:          false,
				Shading:         integrator.ShadingNormals,
			}

			rt, err := NewTiledRaytracer(scene, config, NewNopLogger())
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			img, _, err := rt.Render()
			if err != nil {
				t.Fatalf("Unexpected render error: %v", err)
			}
			if img.Bounds() != image.Rect(0, 0, 2, 2) {
				t.Fatalf("Expected 2x2 image, got %v", img.Bounds())
			}

			// Render row j is output row H-1-j
			for j := 0; j < 2; j++ {
				for i := 0; i < 2; i++ {
					ray := scene.GetCamera().GetRay(float64(i), float64(j), nil)
					hit, ok := sphere.Hit(ray, integrator.ShadowAcneEpsilon, math.Inf(1))
					if !ok {
						t.Fatalf("Pixel (%d,%d) ray should hit the sphere", i, j)
					}
					expected := Vec3ToRGBA(integrator.NormalColor(hit.Normal))
					if got := img.RGBAAt(i, 1-j); got != expected {
						t.Errorf("Pixel (%d,%d): expected %v, got %v", i, 1-j, expected, got)
					}
				}
			}

			// Top corners look up, so their green channel beats the bottom corners'
			if img.RGBAAt(0, 0).G <= img.RGBAAt(0, 1).G {
				t.Errorf("Expected top row to face up: top %v bottom %v", img.RGBAAt(0, 0), img.RGBAAt(0, 1))
			}
		})
	}
}

func renderPix(t *testing.T, config RenderConfig) []byte {
	t.Helper()
	rt, err := NewTiledRaytracer(createMockScene(), config, NewNopLogger())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	img, _, err := rt.Render()
	if err != nil {
		t.Fatalf("Unexpected render error: %v", err)
	}
	return img.Pix
}

func TestTiledRaytracerDeterministic(t *testing.T) {
	config := testConfig(24, 16)
	config.ThreadCount = 3
	config.Seed = 7

	first := renderPix(t, config)
	second := renderPix(t, config)
	if !bytes.Equal(first, second) {
		t.Error("Expected identical renders for identical inputs")
	}

	config.Seed = 8
	if bytes.Equal(first, renderPix(t, config)) {
		t.Error("Expected a different seed to change the image")
	}
}

func TestTiledRaytracerRenderTwice(t *testing.T) {
	config := testConfig(12, 8)
	rt, err := NewTiledRaytracer(createMockScene(), config, NewNopLogger())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	first, _, err := rt.Render()
	if err != nil {
		t.Fatalf("Unexpected render error: %v", err)
	}
	second, _, err := rt.Render()
	if err != nil {
		t.Fatalf("Unexpected error on second render: %v", err)
	}
	if !bytes.Equal(first.Pix, second.Pix) {
		t.Error("Expected re-rendering to reproduce the image")
	}
}

func TestTiledRaytracerStatsAndParts(t *testing.T) {
	mockIntegrator := &MockIntegrator{returnColor: core.NewVec3(1, 0, 0)}
	config := testConfig(12, 9)
	config.TileCount = 9
	config.ThreadCount = 2

	rt, err := NewTiledRaytracer(createMockScene(), config, NewNopLogger())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	rt.SetIntegrator(mockIntegrator)

	var parts []PartResult
	rt.OnPart(func(p PartResult) {
		if state := rt.State(); state != StateMerging {
			t.Errorf("Expected parts to arrive while merging, state was %s", state)
		}
		parts = append(parts, p)
	})

	img, stats, err := rt.Render()
	if err != nil {
		t.Fatalf("Unexpected render error: %v", err)
	}

	if len(parts) != 9 {
		t.Fatalf("Expected 9 parts, got %d", len(parts))
	}
	for k, p := range parts {
		if p.Part != k+1 || p.TotalParts != 9 || p.Tile.ID != k {
			t.Errorf("Part %d out of order: %+v", k, p)
		}
		if p.Image.Bounds() != p.Tile.Bounds {
			t.Errorf("Part %d image bounds %v, expected tile bounds %v", k, p.Image.Bounds(), p.Tile.Bounds)
		}
	}

	expectedSamples := 12 * 9 * config.SamplesPerPixel
	if stats.TotalPixels != 108 {
		t.Errorf("Expected 108 pixels, got %d", stats.TotalPixels)
	}
	if stats.TotalSamples != expectedSamples {
		t.Errorf("Expected %d samples, got %d", expectedSamples, stats.TotalSamples)
	}
	if got := mockIntegrator.callCount.Load(); got != int64(expectedSamples) {
		t.Errorf("Expected %d integrator calls, got %d", expectedSamples, got)
	}
	if stats.Tiles != 9 || stats.Bands != 3 || stats.ThreadsPerTile != 2 {
		t.Errorf("Unexpected grid stats: %+v", stats)
	}
	// Every tile has three rows, so each gets two workers
	if stats.Workers != 18 {
		t.Errorf("Expected 18 workers, got %d", stats.Workers)
	}

	for y := 0; y < 9; y++ {
		for x := 0; x < 12; x++ {
			if got := img.RGBAAt(x, y); got.R != 255 || got.G != 0 || got.A != 255 {
				t.Fatalf("Pixel (%d,%d): expected red, got %v", x, y, got)
			}
		}
	}
	if rt.State() != StateDone {
		t.Errorf("Expected state done, got %s", rt.State())
	}
}

func TestTiledRaytracerThreadsClampedToRows(t *testing.T) {
	config := testConfig(4, 2)
	config.TileCount = 1
	config.ThreadCount = 8

	rt, err := NewTiledRaytracer(createMockScene(), config, NewNopLogger())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	_, stats, err := rt.Render()
	if err != nil {
		t.Fatalf("Unexpected render error: %v", err)
	}
	if stats.Workers != 2 {
		t.Errorf("Expected one worker per row, got %d", stats.Workers)
	}
	if stats.ThreadsPerTile != 8 {
		t.Errorf("Expected configured thread count 8, got %d", stats.ThreadsPerTile)
	}
}

func TestTiledRaytracerWorkerFailure(t *testing.T) {
	config := testConfig(8, 8)
	rt, err := NewTiledRaytracer(createMockScene(), config, NewNopLogger())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	rt.SetIntegrator(PanicIntegrator{})

	if rt.State() != StateSceneBuilt {
		t.Errorf("Expected state scene built, got %s", rt.State())
	}

	var parts int
	rt.OnPart(func(PartResult) { parts++ })

	img, _, err := rt.Render()
	if !errors.Is(err, ErrWorkerFailed) {
		t.Fatalf("Expected ErrWorkerFailed, got %v", err)
	}
	if img != nil {
		t.Error("Expected no image from a failed render")
	}
	if parts != 0 {
		t.Errorf("Expected no parts merged from the failing top band, got %d", parts)
	}
	if rt.State() != StateFailed {
		t.Errorf("Expected state failed, got %s", rt.State())
	}

	if _, _, err := rt.Render(); err == nil {
		t.Error("Expected a failed raytracer to refuse another render")
	}
}
