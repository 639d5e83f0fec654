package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType,omitempty"`
	GeometryType string                 `json:"geometryType,omitempty"`
	ObjectIndex  int                    `json:"objectIndex"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	Color        [3]float64             `json:"color"` // Traced color of the pixel
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

func toArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func hexColor(c core.Vec3) string {
	c = c.Clamp(0, 1)
	return fmt.Sprintf("#%02x%02x%02x", int(c.X*255), int(c.Y*255), int(c.Z*255))
}

// extractMaterialInfo extracts detailed material information with type assertions
func (s *Server) extractMaterialInfo(mat core.Material, point core.Vec3) (string, map[string]interface{}) {
	properties := make(map[string]interface{})
	properties["glossiness"] = mat.Glossiness()

	switch m := mat.(type) {
	case *material.Phong:
		surface := m.Color.Evaluate(point)
		properties["color"] = hexColor(surface)
		properties["ambient"] = m.Ambient
		properties["diffuse"] = m.Diffuse
		properties["specular"] = m.Specular
		properties["shininess"] = m.Shininess
		if checker, ok := m.Color.(*material.Checkerboard); ok {
			properties["checker"] = map[string]interface{}{
				"color1": hexColor(checker.Color1),
				"color2": hexColor(checker.Color2),
				"size":   checker.CheckSize,
			}
		}
		return "phong", properties

	default:
		properties["color"] = hexColor(mat.BaseColorAt(point))
		return "unknown", properties
	}
}

// extractGeometryInfo extracts detailed geometry information
func (s *Server) extractGeometryInfo(obj core.Object) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch geom := obj.(type) {
	case *geometry.Sphere:
		properties["center"] = toArray(geom.Center)
		properties["radius"] = geom.Radius
		return "sphere", properties

	case *geometry.Plane:
		properties["point"] = toArray(geom.Point)
		properties["normal"] = toArray(geom.Normal)
		return "plane", properties

	case *geometry.Triangle:
		properties["vertices"] = [3][3]float64{toArray(geom.V0), toArray(geom.V1), toArray(geom.V2)}
		return "triangle", properties

	default:
		return "unknown", properties
	}
}

// inspectPixel casts the primary ray of an image pixel. Image rows run top
// down while screen y runs up, so imageY is flipped before building the ray.
func inspectPixel(sceneObj *scene.Scene, imageX, imageY int) (InspectResponse, error) {
	ray, err := sceneObj.Camera.BuildRay(imageX, sceneObj.Height-imageY)
	if err != nil {
		return InspectResponse{}, err
	}

	response := InspectResponse{
		ObjectIndex: -1,
		Color: toArray(renderer.RenderRay(sceneObj.Objects, sceneObj.Lights, ray,
			sceneObj.Background, sceneObj.Level)),
	}

	hit, ok := renderer.NearestHit(ray, sceneObj.Objects)
	if !ok || hit.Distance <= renderer.Epsilon {
		return response, nil
	}

	point := ray.At(hit.Distance)
	response.Hit = true
	response.Point = toArray(point)
	response.Normal = toArray(hit.Object.NormalAt(point))
	response.Distance = hit.Distance
	for i, obj := range sceneObj.Objects {
		if obj == hit.Object {
			response.ObjectIndex = i
			break
		}
	}
	return response, nil
}

// handleInspect reports what the primary ray through an image pixel hits
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")

	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
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

	sceneObj, err := s.createScene(req)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	// The pixel grid is inclusive: [0, width] x [0, height]
	if pixelX < 0 || pixelX > req.Width || pixelY < 0 || pixelY > req.Height {
		writeJSONError(w, http.StatusBadRequest, "Pixel coordinates out of bounds")
		return
	}

	response, err := inspectPixel(sceneObj, pixelX, pixelY)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if response.Hit {
		hit := sceneObj.Objects[response.ObjectIndex]
		point := core.NewVec3(response.Point[0], response.Point[1], response.Point[2])
		materialType, materialProps := s.extractMaterialInfo(hit.GetMaterial(), point)
		geometryType, geometryProps := s.extractGeometryInfo(hit)
		response.MaterialType = materialType
		response.GeometryType = geometryType
		response.Properties = map[string]interface{}{
			"material": materialProps,
			"geometry": geometryProps,
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}
