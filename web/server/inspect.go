package server

import (
	"fmt"
	"math"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/df07/go-tiled-pathtracer/pkg/geometry"
	"github.com/df07/go-tiled-pathtracer/pkg/integrator"
	"github.com/df07/go-tiled-pathtracer/pkg/material"
	"github.com/df07/go-tiled-pathtracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType"`
	GeometryType string                 `json:"geometryType"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	FrontFace    bool                   `json:"frontFace"`
	Properties   map[string]interface{} `json:"properties"`
}

// extractMaterialInfo extracts detailed material information with type assertions
func extractMaterialInfo(mat material.Material) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch m := mat.(type) {
	case *material.Lambertian:
		properties["albedo"] = [3]float64{m.Albedo.X, m.Albedo.Y, m.Albedo.Z}
		properties["color"] = fmt.Sprintf("#%02x%02x%02x",
			int(m.Albedo.X*255), int(m.Albedo.Y*255), int(m.Albedo.Z*255))
		return "lambertian", properties

	case *material.Metal:
		properties["albedo"] = [3]float64{m.Albedo.X, m.Albedo.Y, m.Albedo.Z}
		properties["color"] = fmt.Sprintf("#%02x%02x%02x",
			int(m.Albedo.X*255), int(m.Albedo.Y*255), int(m.Albedo.Z*255))
		properties["fuzzness"] = m.Fuzzness
		return "metal", properties

	case *material.Dielectric:
		properties["refractiveIndex"] = m.RefractiveIndex
		properties["color"] = "#ffffff" // Clear glass
		return "dielectric", properties

	default:
		return "unknown", properties
	}
}

// InspectResult contains the first sphere hit by an inspection ray
type InspectResult struct {
	Hit       bool
	HitRecord *material.HitRecord
	Sphere    *geometry.Sphere
}

// inspectPixel casts the unjittered ray through an output pixel (row 0 at the top)
// and returns the first sphere it hits
func inspectPixel(sceneObj *scene.Scene, width, height, pixelX, pixelY int) InspectResult {
	s := float64(pixelX) / float64(max(width-1, 1))
	t := float64(height-1-pixelY) / float64(max(height-1, 1))

	// Lens sampling is skipped so the result does not depend on a random stream
	camera := geometry.NewCamera(pinhole(sceneObj.CameraConfig))
	ray := camera.GetRay(s, t, nil)

	var closest InspectResult
	closestSoFar := math.Inf(1)
	for _, object := range sceneObj.World.Objects {
		sphere, ok := object.(*geometry.Sphere)
		if !ok {
			continue
		}
		if hit, isHit := sphere.Hit(ray, integrator.ShadowAcneEpsilon, closestSoFar); isHit {
			closestSoFar = hit.T
			closest = InspectResult{Hit: true, HitRecord: hit, Sphere: sphere}
		}
	}

	return closest
}

// pinhole returns config with the aperture closed
func pinhole(config geometry.CameraConfig) geometry.CameraConfig {
	config.Aperture = 0
	return config
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(c echo.Context) error {
	req, err := parseRenderRequest(c.QueryParams())
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid scene parameters: " + err.Error()})
	}

	pixelX, err := parseIntParam(c.QueryParams(), "x", -1, 0, req.Width-1)
	if err != nil || pixelX < 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid x coordinate"})
	}
	pixelY, err := parseIntParam(c.QueryParams(), "y", -1, 0, req.Height-1)
	if err != nil || pixelY < 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid y coordinate"})
	}

	sceneObj, err := createScene(req)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	result := inspectPixel(sceneObj, req.Width, req.Height, pixelX, pixelY)
	if !result.Hit {
		return c.JSON(http.StatusOK, InspectResponse{Hit: false})
	}

	materialType, materialProps := extractMaterialInfo(result.HitRecord.Material)
	sphere := result.Sphere

	hit := result.HitRecord
	return c.JSON(http.StatusOK, InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		GeometryType: "sphere",
		Point:        [3]float64{hit.Point.X, hit.Point.Y, hit.Point.Z},
		Normal:       [3]float64{hit.Normal.X, hit.Normal.Y, hit.Normal.Z},
		Distance:     hit.T,
		FrontFace:    hit.FrontFace,
		Properties: map[string]interface{}{
			"material": materialProps,
			"geometry": map[string]interface{}{
				"center": [3]float64{sphere.Center.X, sphere.Center.Y, sphere.Center.Z},
				"radius": sphere.Radius,
			},
		},
	})
}
