package scene

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/matrix"
)

// ErrUnknownScene is returned by Lookup for names not in the registry
var ErrUnknownScene = errors.New("unknown scene")

// CameraConfig describes where a scene expects to be viewed from
type CameraConfig struct {
	Width       int        // Image width in pixels
	Height      int        // Image height in pixels
	FieldOfView float64    // Horizontal or vertical (whichever is longer) field of view in degrees
	From        core.Tuple // Eye position
	To          core.Tuple // Look-at target
	Up          core.Tuple // Approximate up direction
}

// Scene is a world together with its preferred camera
type Scene struct {
	Name        string
	Description string
	World       *World
	Camera      CameraConfig
}

// SceneInfo describes a built-in scene without building it
type SceneInfo struct {
	ID          string `json:"id"`
	Description string `json:"description"`
}

type preset struct {
	description string
	build       func() *Scene
}

const (
	defaultDescription = "Two concentric spheres lit from the upper left"
	spheresDescription = "Three spheres in a room made of flattened spheres"
	cubeDescription    = "A rotated cube beside a sphere on a flat floor"
)

var presets = map[string]preset{
	"default": {defaultDescription, NewDefaultScene},
	"spheres": {spheresDescription, NewSpheresScene},
	"cube":    {cubeDescription, NewCubeScene},
}

// Lookup builds the named built-in scene
func Lookup(name string) (*Scene, error) {
	p, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownScene, name, Names())
	}
	return p.build(), nil
}

// Names returns the built-in scene names in sorted order
func Names() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ListScenes describes every built-in scene, sorted by ID
func ListScenes() []SceneInfo {
	names := Names()
	infos := make([]SceneInfo, 0, len(names))
	for _, name := range names {
		infos = append(infos, SceneInfo{ID: name, Description: presets[name].description})
	}
	return infos
}

func defaultCamera() CameraConfig {
	return CameraConfig{
		Width:       160,
		Height:      120,
		FieldOfView: 90,
		From:        core.Point(0, 0, -5),
		To:          core.Point(0, 0, 0),
		Up:          core.Vector(0, 1, 0),
	}
}

// NewDefaultScene views DefaultWorld from (0, 0, -5)
func NewDefaultScene() *Scene {
	return &Scene{
		Name:        "default",
		Description: defaultDescription,
		World:       DefaultWorld(),
		Camera:      defaultCamera(),
	}
}

// NewSpheresScene builds a floor and two walls from flattened spheres with
// three colored spheres in front of them.
func NewSpheresScene() *Scene {
	w := NewWorld()
	w.AddLight(lights.NewPointLight(core.Point(-10, 10, -10), core.White))

	wallMaterial := func(s *geometry.Shape) *geometry.Shape {
		s.Material.Color = core.Color(1, 0.9, 0.9)
		s.Material.Specular = 0
		return s
	}
	flat := matrix.Scaling(10, 0.01, 10)

	w.AddShape(wallMaterial(mustSetTransform(geometry.NewSphere(), flat)))
	w.AddShape(wallMaterial(mustSetTransform(geometry.NewSphere(),
		matrix.Translation(0, 0, 5).
			Multiply(matrix.RotateY(-math.Pi/4)).
			Multiply(matrix.RotateX(math.Pi/2)).
			Multiply(flat))))
	w.AddShape(wallMaterial(mustSetTransform(geometry.NewSphere(),
		matrix.Translation(0, 0, 5).
			Multiply(matrix.RotateY(math.Pi/4)).
			Multiply(matrix.RotateX(math.Pi/2)).
			Multiply(flat))))

	middle := mustSetTransform(geometry.NewSphere(), matrix.Translation(-0.5, 1, 0.5))
	middle.Material.Color = core.Color(0.1, 1, 0.5)
	middle.Material.Diffuse = 0.7
	middle.Material.Specular = 0.3
	w.AddShape(middle)

	right := mustSetTransform(geometry.NewSphere(),
		matrix.TranslateScaleRotate(1.5, 0.5, -0.5, 0.5, 0.5, 0.5, 0, 0, 0))
	right.Material.Color = core.Color(0.5, 1, 0.1)
	right.Material.Diffuse = 0.7
	right.Material.Specular = 0.3
	w.AddShape(right)

	left := mustSetTransform(geometry.NewSphere(),
		matrix.TranslateScaleRotate(-1.5, 0.33, -0.75, 0.33, 0.33, 0.33, 0, 0, 0))
	left.Material.Color = core.Color(1, 0.8, 0.1)
	left.Material.Diffuse = 0.7
	left.Material.Specular = 0.3
	w.AddShape(left)

	return &Scene{
		Name:        "spheres",
		Description: spheresDescription,
		World:       w,
		Camera: CameraConfig{
			Width:       160,
			Height:      120,
			FieldOfView: 60,
			From:        core.Point(0, 1.5, -5),
			To:          core.Point(0, 1, 0),
			Up:          core.Vector(0, 1, 0),
		},
	}
}

// NewCubeScene places a cube rotated about y next to a sphere on a
// flattened cube floor.
func NewCubeScene() *Scene {
	w := NewWorld()
	w.AddLight(lights.NewPointLight(core.Point(-10, 10, -10), core.White))

	floor := mustSetTransform(geometry.NewCube(),
		matrix.TranslateScaleRotate(0, -0.01, 0, 6, 0.01, 6, 0, 0, 0))
	floor.Material.Color = core.Color(0.9, 0.9, 0.85)
	floor.Material.Specular = 0
	w.AddShape(floor)

	box := mustSetTransform(geometry.NewCube(),
		matrix.TranslateScaleRotate(-1, 0.75, 0.5, 0.75, 0.75, 0.75, 0, math.Pi/6, 0))
	box.Material.Color = core.Color(0.2, 0.4, 0.9)
	box.Material.Diffuse = 0.8
	box.Material.Specular = 0.4
	box.Material.Shininess = 50
	w.AddShape(box)

	ball := mustSetTransform(geometry.NewSphere(),
		matrix.TranslateScaleRotate(1.25, 0.75, -0.25, 0.75, 0.75, 0.75, 0, 0, 0))
	ball.Material.Color = core.Color(0.9, 0.3, 0.2)
	ball.Material.Diffuse = 0.7
	ball.Material.Specular = 0.3
	w.AddShape(ball)

	return &Scene{
		Name:        "cube",
		Description: cubeDescription,
		World:       w,
		Camera: CameraConfig{
			Width:       160,
			Height:      120,
			FieldOfView: 60,
			From:        core.Point(0, 2.5, -6),
			To:          core.Point(0, 0.6, 0),
			Up:          core.Vector(0, 1, 0),
		},
	}
}
