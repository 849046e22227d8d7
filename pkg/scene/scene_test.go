package scene

import (
	"math"
	"testing"

	"github.com/df07/go-tiled-pathtracer/pkg/core"
	"github.com/df07/go-tiled-pathtracer/pkg/geometry"
	"github.com/df07/go-tiled-pathtracer/pkg/material"
)

func TestDefaultScene(t *testing.T) {
	s := NewDefaultScene()

	if s.GetPrimitiveCount() != 4 {
		t.Fatalf("Expected 4 spheres, got %d", s.GetPrimitiveCount())
	}

	top, bottom := s.GetBackgroundColors()
	if top != core.NewVec3(0.5, 0.7, 1.0) || bottom != core.NewVec3(1, 1, 1) {
		t.Errorf("Unexpected background %v / %v", top, bottom)
	}

	if s.Camera.LensRadius() != 0 {
		t.Errorf("Expected a pinhole camera, got lens radius %f", s.Camera.LensRadius())
	}

	// Looking from the camera toward the look-at point hits the blue sphere
	ray := core.NewRay(s.CameraConfig.Center, s.CameraConfig.LookAt.Subtract(s.CameraConfig.Center))
	hit, ok := s.GetWorld().Hit(ray, 0.001, math.Inf(1))
	if !ok {
		t.Fatal("Expected the view axis to hit the center sphere")
	}
	lambertian, isLambertian := hit.Material.(*material.Lambertian)
	if !isLambertian || lambertian.Albedo != core.NewVec3(0.1, 0.2, 0.5) {
		t.Errorf("Expected the blue lambertian, got %#v", hit.Material)
	}
}

func TestDefaultSceneCameraOverride(t *testing.T) {
	s := NewDefaultScene(geometry.CameraConfig{VFov: 45, AspectRatio: 1})

	if s.CameraConfig.VFov != 45 || s.CameraConfig.AspectRatio != 1 {
		t.Errorf("Expected overrides to apply, got %+v", s.CameraConfig)
	}
	if s.CameraConfig.Center != core.NewVec3(-2, 2, 1) {
		t.Errorf("Expected default center to survive, got %v", s.CameraConfig.Center)
	}
}

func TestFinalScene(t *testing.T) {
	a := NewFinalScene(42)
	b := NewFinalScene(42)
	c := NewFinalScene(43)

	// Ground, up to 22x22 small spheres, three large spheres
	n := a.GetPrimitiveCount()
	if n < 4 || n > 1+22*22+3 {
		t.Fatalf("Unexpected sphere count %d", n)
	}
	if b.GetPrimitiveCount() != n {
		t.Errorf("Same seed gave %d and %d spheres", n, b.GetPrimitiveCount())
	}

	for i := range a.World.Objects {
		sa := a.World.Objects[i].(*geometry.Sphere)
		sb := b.World.Objects[i].(*geometry.Sphere)
		if sa.Center != sb.Center {
			t.Fatalf("Sphere %d differs between identical seeds: %v vs %v", i, sa.Center, sb.Center)
		}
	}

	same := c.GetPrimitiveCount() == n
	if same {
		for i := range a.World.Objects {
			if a.World.Objects[i].(*geometry.Sphere).Center != c.World.Objects[i].(*geometry.Sphere).Center {
				same = false
				break
			}
		}
	}
	if same {
		t.Error("Expected a different seed to change the layout")
	}

	clearing := core.NewVec3(4, 0.2, 0)
	var glass, metal, diffuse int
	for _, o := range a.World.Objects {
		sphere := o.(*geometry.Sphere)
		if sphere.Radius != 0.2 {
			continue
		}
		if sphere.Center.Subtract(clearing).Length() <= 0.9 {
			t.Errorf("Small sphere at %v intrudes on the clearing", sphere.Center)
		}
		switch m := sphere.Material.(type) {
		case *material.Dielectric:
			glass++
		case *material.Metal:
			metal++
			if m.Fuzzness > 0.5 {
				t.Errorf("Metal fuzz %f above 0.5", m.Fuzzness)
			}
		case *material.Lambertian:
			diffuse++
		}
	}
	if diffuse <= metal || diffuse <= glass {
		t.Errorf("Expected diffuse spheres to dominate: %d diffuse, %d metal, %d glass", diffuse, metal, glass)
	}

	if a.Camera.LensRadius() != 0.05 {
		t.Errorf("Expected lens radius 0.05, got %f", a.Camera.LensRadius())
	}
}

func TestNormalsScene(t *testing.T) {
	s := NewNormalsScene()
	if s.GetPrimitiveCount() != 2 {
		t.Errorf("Expected 2 spheres, got %d", s.GetPrimitiveCount())
	}
	if s.CameraConfig != geometry.DefaultCameraConfig() {
		t.Errorf("Expected the fixed default camera, got %+v", s.CameraConfig)
	}
}
