package server

import (
	"net/http"
	"strconv"
	"time"

	"go.opencensus.io/stats"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/tag"
)

var (
	requestCount   = stats.Int64("raytracer/http/requests", "Requests handled", stats.UnitDimensionless)
	requestLatency = stats.Float64("raytracer/http/latency", "Time spent handling a request", stats.UnitMilliseconds)

	pathKey   = tag.MustNewKey("path")
	statusKey = tag.MustNewKey("status")
)

// Views are the opencensus views over the server's request measures
var Views = []*view.View{
	{
		Name:        "raytracer/http/requests",
		Description: "Counter of requests that have been handled",
		TagKeys:     []tag.Key{pathKey, statusKey},
		Measure:     requestCount,
		Aggregation: view.Count(),
	},
	{
		Name:        "raytracer/http/latency",
		Description: "Distribution of request latencies",
		TagKeys:     []tag.Key{pathKey},
		Measure:     requestLatency,
		Aggregation: view.Distribution(1, 5, 10, 50, 100, 500, 1000, 5000, 10000),
	},
}

// RegisterViews registers Views with opencensus
func RegisterViews() error {
	return view.Register(Views...)
}

// statusRecorder remembers the status code written by a handler
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// withMetrics records a count and latency for every request handled by inner
func withMetrics(inner http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		inner.ServeHTTP(rec, r)

		stats.RecordWithOptions(
			r.Context(),
			stats.WithTags(
				tag.Insert(pathKey, r.URL.Path),
				tag.Insert(statusKey, strconv.Itoa(rec.status)),
			),
			stats.WithMeasurements(
				requestCount.M(1),
				requestLatency.M(float64(time.Since(start))/float64(time.Millisecond)),
			))
	})
}
