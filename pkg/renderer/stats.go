package renderer

import "time"

// RenderStats contains statistics about a finished render
type RenderStats struct {
	TotalPixels  int           // Pixels written to the canvas, including substituted ones
	FailedPixels int           // Pixels whose color could not be computed
	Rows         int           // Rows completed
	Workers      int           // Rows rendered concurrently
	Duration     time.Duration // Wall time of the render
}

// Merge adds the counters of other into s. Workers and Duration are left
// alone since they describe the whole render.
func (s *RenderStats) Merge(other RenderStats) {
	s.TotalPixels += other.TotalPixels
	s.FailedPixels += other.FailedPixels
	s.Rows += other.Rows
}

// SuccessfulPixels returns the number of pixels that were shaded normally
func (s RenderStats) SuccessfulPixels() int {
	return s.TotalPixels - s.FailedPixels
}
