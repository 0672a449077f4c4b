package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

func TestCreateScene(t *testing.T) {
	tests := []struct {
		name        string
		sceneType   string
		width       int
		height      int
		fov         float64
		expectError bool
	}{
		// Built-in scenes
		{"default scene", "default", 0, 0, 0, false},
		{"spheres scene", "spheres", 0, 0, 0, false},
		{"cube scene", "cube", 0, 0, 0, false},
		{"size override", "default", 64, 48, 0, false},
		{"fov override", "cube", 0, 0, 45, false},

		// Invalid scenes
		{"unknown scene", "nonexistent", 0, 0, 0, true},
		{"empty scene name", "", 0, 0, 0, true},
		{"negative width", "default", -1, 0, 0, true},
		{"fov too wide", "default", 0, 0, 180, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := createScene(tt.sceneType, tt.width, tt.height, tt.fov)

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for scene type '%s', but got none", tt.sceneType)
				}
				if s != nil {
					t.Errorf("Expected nil scene for invalid scene type '%s', got %v", tt.sceneType, s.Name)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error for scene type '%s': %v", tt.sceneType, err)
			}
			if s.World == nil || len(s.World.Shapes()) == 0 {
				t.Errorf("Scene '%s' has no shapes", tt.sceneType)
			}
			if s.Camera.Width <= 0 || s.Camera.Height <= 0 {
				t.Errorf("Scene camera size should be positive, got %dx%d", s.Camera.Width, s.Camera.Height)
			}
			if tt.width > 0 && s.Camera.Width != tt.width {
				t.Errorf("Expected width %d, got %d", tt.width, s.Camera.Width)
			}
			if tt.height > 0 && s.Camera.Height != tt.height {
				t.Errorf("Expected height %d, got %d", tt.height, s.Camera.Height)
			}
			if tt.fov > 0 && s.Camera.FieldOfView != tt.fov {
				t.Errorf("Expected field of view %v, got %v", tt.fov, s.Camera.FieldOfView)
			}
		})
	}
}

func TestCreateScene_UnknownIsTyped(t *testing.T) {
	_, err := createScene("nonexistent", 0, 0, 0)
	if !errors.Is(err, scene.ErrUnknownScene) {
		t.Errorf("Expected ErrUnknownScene, got %v", err)
	}
}

func TestDefaultOutputPath(t *testing.T) {
	now := time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC)
	expected := filepath.Join("output", "cube", "render_20240305_140709.ppm")
	if got := defaultOutputPath("cube", now); got != expected {
		t.Errorf("Expected %q, got %q", expected, got)
	}
	if got := thumbnailPath(filepath.Join("out", "render.ppm")); got != filepath.Join("out", "render_thumb.png") {
		t.Errorf("Unexpected thumbnail path %q", got)
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name   string
		output string
	}{
		{"ppm output", filepath.Join(dir, "nested", "render.ppm")},
		{"png output", filepath.Join(dir, "render.png")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := options{
				sceneName:     "default",
				width:         16,
				height:        12,
				output:        tt.output,
				workers:       2,
				failurePolicy: "abort",
				thumbnail:     8,
			}
			if err := run(context.Background(), opts); err != nil {
				t.Fatalf("run failed: %v", err)
			}

			var (
				w, h int
				err  error
			)
			if filepath.Ext(tt.output) == ".ppm" {
				c, loadErr := loaders.LoadPPM(tt.output)
				err = loadErr
				if c != nil {
					w, h = c.Width(), c.Height()
				}
			} else {
				c, loadErr := loaders.LoadImage(tt.output)
				err = loadErr
				if c != nil {
					w, h = c.Width(), c.Height()
				}
			}
			if err != nil {
				t.Fatalf("Failed to load output: %v", err)
			}
			if w != 16 || h != 12 {
				t.Errorf("Expected 16x12 output, got %dx%d", w, h)
			}

			if _, err := os.Stat(thumbnailPath(tt.output)); err != nil {
				t.Errorf("Expected thumbnail next to output: %v", err)
			}
		})
	}
}

func TestRun_Errors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		opts options
	}{
		{"bad failure policy", options{sceneName: "default", failurePolicy: "retry", output: filepath.Join(dir, "a.ppm")}},
		{"unknown scene", options{sceneName: "nope", failurePolicy: "abort", output: filepath.Join(dir, "b.ppm")}},
		{"unsupported format", options{sceneName: "default", width: 4, height: 4, failurePolicy: "abort", output: filepath.Join(dir, "c.gif")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := run(context.Background(), tt.opts); err == nil {
				t.Errorf("Expected error, got none")
			}
		})
	}
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	opts := options{
		sceneName:     "default",
		width:         8,
		height:        8,
		output:        filepath.Join(t.TempDir(), "render.ppm"),
		failurePolicy: "abort",
	}
	err := run(ctx, opts)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if _, statErr := os.Stat(opts.output); !os.IsNotExist(statErr) {
		t.Errorf("Expected no output file after cancellation")
	}
}
