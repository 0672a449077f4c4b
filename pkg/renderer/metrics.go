package renderer

import (
	"context"
	"errors"
	"time"

	"go.opencensus.io/stats"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/tag"
)

var (
	pixelsRendered = stats.Int64("raytracer/pixels_rendered", "Pixels written to a canvas", stats.UnitDimensionless)
	pixelFailures  = stats.Int64("raytracer/pixel_failures", "Pixels whose color could not be computed", stats.UnitDimensionless)
	renderLatency  = stats.Float64("raytracer/render_latency", "Wall time of a full render", stats.UnitMilliseconds)

	policyKey  = tag.MustNewKey("failure_policy")
	outcomeKey = tag.MustNewKey("outcome")
)

// Values of the outcome tag
const (
	outcomeOK        = "ok"
	outcomeError     = "error"
	outcomeCancelled = "cancelled"
)

// Views are the opencensus views over the renderer's measures
var Views = []*view.View{
	{
		Name:        "raytracer/pixels_rendered",
		Description: "Total pixels written to canvases",
		TagKeys:     []tag.Key{policyKey, outcomeKey},
		Measure:     pixelsRendered,
		Aggregation: view.Sum(),
	},
	{
		Name:        "raytracer/pixel_failures",
		Description: "Total pixels that failed to shade",
		TagKeys:     []tag.Key{policyKey, outcomeKey},
		Measure:     pixelFailures,
		Aggregation: view.Sum(),
	},
	{
		Name:        "raytracer/render_latency",
		Description: "Distribution of render wall times",
		TagKeys:     []tag.Key{policyKey, outcomeKey},
		Measure:     renderLatency,
		Aggregation: view.Distribution(1, 5, 10, 50, 100, 500, 1000, 5000, 10000, 60000),
	},
}

// RegisterViews registers Views with opencensus. Exporting them is left to
// the binary.
func RegisterViews() error {
	return view.Register(Views...)
}

func renderOutcome(err error) string {
	switch {
	case err == nil:
		return outcomeOK
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return outcomeCancelled
	default:
		return outcomeError
	}
}

// recordRender records one render attempt. Failed renders are recorded
// with the partial stats gathered before the failure.
func recordRender(ctx context.Context, policy FailurePolicy, s RenderStats, err error) {
	stats.RecordWithOptions(
		ctx,
		stats.WithTags(
			tag.Insert(policyKey, policy.String()),
			tag.Insert(outcomeKey, renderOutcome(err)),
		),
		stats.WithMeasurements(
			pixelsRendered.M(int64(s.TotalPixels)),
			pixelFailures.M(int64(s.FailedPixels)),
			renderLatency.M(float64(s.Duration)/float64(time.Millisecond)),
		))
}
