package scene

import (
	"strings"
	"testing"

	"github.com/df07/go-tiled-pathtracer/pkg/geometry"
	"github.com/df07/go-tiled-pathtracer/pkg/integrator"
)

func TestTitleCase(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"default", "Default"},
		{"final-cover", "Final Cover"},
		{"normal_shading", "Normal Shading"},
		{"UPPER-case", "Upper Case"},
		{"", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			result := titleCase(tc.input)
			if result != tc.expected {
				t.Errorf("titleCase(%q) = %q, want %q", tc.input, result, tc.expected)
			}
		})
	}
}

func TestListScenes(t *testing.T) {
	scenes := ListScenes()
	ids := make([]string, len(scenes))
	for i, s := range scenes {
		ids[i] = s.ID
		if s.Name == "" || s.Description == "" {
			t.Errorf("Scene %q is missing a name or description", s.ID)
		}
		if _, err := integrator.New(s.Shading, 1); err != nil {
			t.Errorf("Scene %q has unusable shading %q: %v", s.ID, s.Shading, err)
		}
	}

	if got := strings.Join(ids, ","); got != "default,final,normals" {
		t.Errorf("Expected sorted scene IDs default,final,normals, got %s", got)
	}

	info, ok := Lookup("final")
	if !ok || !info.Seeded || info.Name != "Final" {
		t.Errorf("Unexpected lookup result for final: %+v, %v", info, ok)
	}
	if _, ok := Lookup("cornell-box"); ok {
		t.Error("Expected lookup of an unknown scene to fail")
	}
}

func TestNewScene(t *testing.T) {
	for _, info := range ListScenes() {
		t.Run(info.ID, func(t *testing.T) {
			s, err := NewScene(info.ID, 1, geometry.CameraConfig{AspectRatio: 2.0})
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if s.GetCamera() == nil {
				t.Fatal("Expected a camera")
			}
			if s.GetPrimitiveCount() == 0 {
				t.Error("Expected objects in the scene")
			}
			if s.CameraConfig.AspectRatio != 2.0 {
				t.Errorf("Expected aspect override 2.0, got %f", s.CameraConfig.AspectRatio)
			}
		})
	}

	if _, err := NewScene("missing", 0); err == nil || !strings.Contains(err.Error(), "default") {
		t.Errorf("Expected unknown scene error listing available scenes, got %v", err)
	}
}
