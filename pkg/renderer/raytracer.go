package renderer

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// FailurePolicy decides what happens when a pixel cannot be shaded
type FailurePolicy int

const (
	// FailAbort stops the render and returns the pixel's error
	FailAbort FailurePolicy = iota
	// FailSubstitute writes the background color, counts the failure and
	// keeps going
	FailSubstitute
)

func (p FailurePolicy) String() string {
	switch p {
	case FailAbort:
		return "abort"
	case FailSubstitute:
		return "substitute"
	default:
		return fmt.Sprintf("FailurePolicy(%d)", int(p))
	}
}

// ParseFailurePolicy parses the names returned by FailurePolicy.String
func ParseFailurePolicy(s string) (FailurePolicy, error) {
	switch s {
	case "abort":
		return FailAbort, nil
	case "substitute":
		return FailSubstitute, nil
	default:
		return FailAbort, fmt.Errorf("unknown failure policy %q (want abort or substitute)", s)
	}
}

// RenderConfig contains rendering configuration
type RenderConfig struct {
	Workers       int           // Rows rendered concurrently; <= 0 means one per CPU, 1 renders in order
	FailurePolicy FailurePolicy // What to do with pixels that fail to shade
}

// DefaultRenderConfig returns sensible default values
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		Workers:       0,
		FailurePolicy: FailAbort,
	}
}

// Raytracer renders a world through a camera into a canvas
type Raytracer struct {
	camera     *Camera
	world      *scene.World
	integrator integrator.Integrator
	config     RenderConfig
	logger     core.Logger
}

// NewRaytracer creates a raytracer using the Phong integrator. The world
// must not be modified while a render is running.
func NewRaytracer(camera *Camera, world *scene.World, config RenderConfig, logger core.Logger) *Raytracer {
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &Raytracer{
		camera:     camera,
		world:      world,
		integrator: integrator.NewPhongIntegrator(),
		config:     config,
		logger:     logger,
	}
}

// SetIntegrator replaces the integrator used to color rays
func (rt *Raytracer) SetIntegrator(integ integrator.Integrator) {
	rt.integrator = integ
}

// Config returns the render configuration
func (rt *Raytracer) Config() RenderConfig {
	return rt.config
}

// Render shades every pixel. Rows are spread over the worker pool and
// cancellation is checked before each pixel. On error the partial canvas
// is discarded.
func (rt *Raytracer) Render(ctx context.Context) (*core.Canvas, RenderStats, error) {
	tracer := otel.Tracer("go-whitted-raytracer/renderer")
	var span trace.Span
	ctx, span = tracer.Start(ctx, "Raytracer.Render")
	defer span.End()

	width, height := rt.camera.HSize(), rt.camera.VSize()
	pool := NewWorkerPool(rt.config.Workers)

	span.SetAttributes(
		attribute.Int("width", width),
		attribute.Int("height", height),
		attribute.Int("workers", pool.NumWorkers()),
		attribute.String("failure_policy", rt.config.FailurePolicy.String()),
	)
	rt.logger.Printf("Rendering %dx%d with %d workers (failure policy %s)\n",
		width, height, pool.NumWorkers(), rt.config.FailurePolicy)

	if err := rt.world.Validate(); err != nil {
		err = fmt.Errorf("while validating world: %w", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, RenderStats{}, err
	}

	start := time.Now()
	canvas := core.NewCanvas(width, height)
	stats, err := pool.Run(ctx, height, func(ctx context.Context, y int) (RenderStats, error) {
		return rt.renderRow(ctx, canvas, y)
	})
	stats.Workers = pool.NumWorkers()
	stats.Duration = time.Since(start)
	recordRender(ctx, rt.config.FailurePolicy, stats, err)

	if err != nil {
		err = fmt.Errorf("while rendering %dx%d image: %w", width, height, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, stats, err
	}

	span.SetAttributes(attribute.Int("failed_pixels", stats.FailedPixels))
	rt.logger.Printf("Rendered %d pixels (%d failed) in %v\n",
		stats.TotalPixels, stats.FailedPixels, stats.Duration)

	return canvas, stats, nil
}

// renderRow writes row y of the canvas. Rows are disjoint so concurrent
// calls for different rows are safe.
func (rt *Raytracer) renderRow(ctx context.Context, canvas *core.Canvas, y int) (RenderStats, error) {
	var stats RenderStats
	for x := 0; x < canvas.Width(); x++ {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		color, err := rt.shadePixel(x, y)
		if err != nil {
			if rt.config.FailurePolicy != FailSubstitute {
				return stats, err
			}
			rt.logger.Printf("Substituting background for pixel (%d, %d): %v\n", x, y, err)
			color = core.Black
			stats.FailedPixels++
		}

		canvas.WritePixel(x, y, color)
		stats.TotalPixels++
	}
	stats.Rows = 1
	return stats, nil
}

func (rt *Raytracer) shadePixel(x, y int) (core.Tuple, error) {
	ray, err := rt.camera.RayForPixel(x, y)
	if err != nil {
		return core.Tuple{}, err
	}
	color, err := rt.integrator.RayColor(ray, rt.world)
	if err != nil {
		return core.Tuple{}, fmt.Errorf("while rendering pixel (%d, %d): %w", x, y, err)
	}
	return color, nil
}
