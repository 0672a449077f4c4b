package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	ShapeID      int                    `json:"shapeId"`
	GeometryType string                 `json:"geometryType"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	Inside       bool                   `json:"inside"`
	InShadow     bool                   `json:"inShadow"`
	Color        [3]float64             `json:"color"`
	Properties   map[string]interface{} `json:"properties"`
}

// inspectPixel casts the camera ray through pixel (px, py) and describes
// the first shape it hits
func inspectPixel(s *scene.Scene, px, py int) (InspectResponse, error) {
	camera, err := renderer.NewCameraFromConfig(s.Camera)
	if err != nil {
		return InspectResponse{}, err
	}
	ray, err := camera.RayForPixel(px, py)
	if err != nil {
		return InspectResponse{}, err
	}

	xs, err := s.World.Intersect(ray)
	if err != nil {
		return InspectResponse{}, err
	}
	hit, ok := geometry.Hit(xs)
	if !ok {
		return InspectResponse{Hit: false}, nil
	}

	comps, err := integrator.PrepareComputations(s.World, hit, ray)
	if err != nil {
		return InspectResponse{}, err
	}
	inShadow, err := integrator.IsShadowed(s.World, comps.OverPoint)
	if err != nil {
		return InspectResponse{}, err
	}
	color, err := integrator.ShadeHit(s.World, comps)
	if err != nil {
		return InspectResponse{}, err
	}

	geometryType, geometryProps := extractGeometryInfo(comps.Object)
	return InspectResponse{
		Hit:          true,
		ShapeID:      int(comps.Shape),
		GeometryType: geometryType,
		Point:        toArray(comps.Point),
		Normal:       toArray(comps.Normal),
		Distance:     comps.T,
		Inside:       comps.Inside,
		InShadow:     inShadow,
		Color:        toArray(color),
		Properties: map[string]interface{}{
			"material": extractMaterialInfo(comps.Object.Material),
			"geometry": geometryProps,
		},
	}, nil
}

func extractMaterialInfo(m material.Material) map[string]interface{} {
	return map[string]interface{}{
		"color":     toArray(m.Color),
		"ambient":   m.Ambient,
		"diffuse":   m.Diffuse,
		"specular":  m.Specular,
		"shininess": m.Shininess,
	}
}

func extractGeometryInfo(shape *geometry.Shape) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch geom := shape.Geometry.(type) {
	case geometry.Sphere:
		properties["radius"] = geom.Radius
		return "sphere", properties
	case geometry.Cube:
		properties["halfExtent"] = geom.HalfExtent
		return "cube", properties
	default:
		return "unknown", properties
	}
}

func toArray(t core.Tuple) [3]float64 {
	return [3]float64{t.X, t.Y, t.Z}
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	req, err := parseRenderRequest(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}

	sceneObj, err := req.buildScene()
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid x coordinate")
		return
	}
	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid y coordinate")
		return
	}
	if pixelX < 0 || pixelX >= sceneObj.Camera.Width || pixelY < 0 || pixelY >= sceneObj.Camera.Height {
		writeJSONError(w, http.StatusBadRequest, "Pixel coordinates out of bounds")
		return
	}

	response, err := inspectPixel(sceneObj, pixelX, pixelY)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("Inspect error: %v", err))
		return
	}
	writeJSON(w, http.StatusOK, response)
}
