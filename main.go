package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang/glog"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
	"github.com/df07/go-whitted-raytracer/pkg/storage"
)

type options struct {
	sceneName     string
	width         int // 0 keeps the scene's size
	height        int
	fieldOfView   float64 // degrees, 0 keeps the scene's
	output        string
	workers       int
	failurePolicy string
	thumbnail     uint
	uploadKey     string
	envFile       string
}

func main() {
	var opts options
	flag.StringVar(&opts.sceneName, "scene", "default", "Scene to render: "+strings.Join(scene.Names(), ", "))
	flag.IntVar(&opts.width, "width", 0, "Image width in pixels (0 uses the scene's width)")
	flag.IntVar(&opts.height, "height", 0, "Image height in pixels (0 uses the scene's height)")
	flag.Float64Var(&opts.fieldOfView, "fov", 0, "Field of view in degrees (0 uses the scene's)")
	flag.StringVar(&opts.output, "output", "", "Output file ending in .ppm or .png (default output/<scene>/render_<timestamp>.ppm)")
	flag.IntVar(&opts.workers, "workers", 0, "Rows rendered concurrently (0 uses one per CPU)")
	flag.StringVar(&opts.failurePolicy, "failure-policy", "abort", "What to do when a pixel fails: abort or substitute")
	flag.UintVar(&opts.thumbnail, "thumbnail", 0, "Also write a PNG thumbnail no larger than NxN pixels")
	flag.StringVar(&opts.uploadKey, "upload-key", "", "Upload the rendered image to S3 under this key")
	flag.StringVar(&opts.envFile, "env-file", ".env", "File holding RAYTRACER_S3_* settings")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()
	defer glog.Flush()

	if *help {
		fmt.Println("Whitted Raytracer")
		fmt.Println("Usage: raytracer [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("Available scenes:")
		for _, info := range scene.ListScenes() {
			fmt.Printf("  %-8s - %s\n", info.ID, info.Description)
		}
		return
	}

	if err := renderer.RegisterViews(); err != nil {
		glog.Warningf("Could not register render metrics: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, opts); err != nil {
		glog.Errorf("%v", err)
		glog.Flush()
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options) error {
	policy, err := renderer.ParseFailurePolicy(opts.failurePolicy)
	if err != nil {
		return err
	}

	selectedScene, err := createScene(opts.sceneName, opts.width, opts.height, opts.fieldOfView)
	if err != nil {
		return err
	}
	glog.Infof("Using %s scene: %s", selectedScene.Name, selectedScene.Description)

	camera, err := renderer.NewCameraFromConfig(selectedScene.Camera)
	if err != nil {
		return fmt.Errorf("while creating camera: %w", err)
	}

	config := renderer.RenderConfig{Workers: opts.workers, FailurePolicy: policy}
	raytracer := renderer.NewRaytracer(camera, selectedScene.World, config, renderer.NewDefaultLogger())

	canvas, stats, err := raytracer.Render(ctx)
	if err != nil {
		return err
	}
	if stats.FailedPixels > 0 {
		glog.Warningf("%d of %d pixels were replaced with the background color", stats.FailedPixels, stats.TotalPixels)
	}

	filename := opts.output
	if filename == "" {
		filename = defaultOutputPath(selectedScene.Name, time.Now())
	}
	if err := saveCanvas(filename, canvas); err != nil {
		return err
	}
	glog.Infof("Render saved as %s", filename)

	if opts.thumbnail > 0 {
		thumbName := thumbnailPath(filename)
		if err := loaders.SaveThumbnail(thumbName, canvas, opts.thumbnail, opts.thumbnail); err != nil {
			return err
		}
		glog.Infof("Thumbnail saved as %s", thumbName)
	}

	if opts.uploadKey != "" {
		if err := upload(ctx, opts.envFile, opts.uploadKey, filename); err != nil {
			return err
		}
	}
	return nil
}

// createScene looks up a built-in scene and applies size and field of view
// overrides. Zero overrides keep the scene's own values.
func createScene(name string, width, height int, fieldOfView float64) (*scene.Scene, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("image size must not be negative, got %dx%d", width, height)
	}
	if fieldOfView < 0 || fieldOfView >= 180 {
		return nil, fmt.Errorf("field of view must be in (0, 180) degrees, got %g", fieldOfView)
	}

	s, err := scene.Lookup(name)
	if err != nil {
		return nil, err
	}
	if width > 0 {
		s.Camera.Width = width
	}
	if height > 0 {
		s.Camera.Height = height
	}
	if fieldOfView > 0 {
		s.Camera.FieldOfView = fieldOfView
	}
	return s, nil
}

func defaultOutputPath(sceneName string, now time.Time) string {
	timestamp := now.Format("20060102_150405")
	return filepath.Join("output", sceneName, fmt.Sprintf("render_%s.ppm", timestamp))
}

func thumbnailPath(filename string) string {
	return strings.TrimSuffix(filename, filepath.Ext(filename)) + "_thumb.png"
}

// saveCanvas picks the encoder from the file extension and creates the
// parent directory if needed
func saveCanvas(filename string, canvas *core.Canvas) error {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("while creating output directory: %w", err)
		}
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".ppm":
		return loaders.SavePPM(filename, canvas)
	case ".png":
		return loaders.SavePNG(filename, canvas)
	default:
		return fmt.Errorf("unsupported output format %q (want .ppm or .png)", filepath.Ext(filename))
	}
}

func upload(ctx context.Context, envFile, key, filename string) error {
	cfg, err := storage.LoadConfig(envFile)
	if err != nil {
		return err
	}
	uploader, err := storage.NewUploader(cfg)
	if err != nil {
		return err
	}
	uploader.SetLogger(renderer.NewDefaultLogger())

	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("while reading %s for upload: %w", filename, err)
	}
	return uploader.Upload(ctx, key, data, storage.ContentTypeFor(filename))
}
