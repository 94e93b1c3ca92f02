package trackcore

import "github.com/kwvidtrack/trackcore/internal/histogram"

// AppearanceHistogram is a fixed-dimension normalized histogram of pixel
// intensities within a detection's bounding box. Mass of 0 marks
// "uninitialized": cost computation treats it as contributing nothing
// rather than penalizing the comparison.
type AppearanceHistogram struct {
	Bins []float64
	Mass float64
}

// DefaultHistogramBins is the default per-channel bin count, used as
// DefaultTrackerConfig's HistogramBins.
const DefaultHistogramBins = 16

// NewAppearanceHistogram normalizes counts and records their total mass.
func NewAppearanceHistogram(counts []float64) AppearanceHistogram {
	var mass float64
	for _, c := range counts {
		mass += c
	}
	bins := append([]float64(nil), counts...)
	histogram.Normalize(bins)
	return AppearanceHistogram{Bins: bins, Mass: mass}
}

// Similarity returns the Bhattacharyya similarity to other, in [0,1]. If
// either histogram has zero mass the comparison is undefined and the
// caller (CostModel) is responsible for treating that case separately.
func (h AppearanceHistogram) Similarity(other AppearanceHistogram) float64 {
	return histogram.Similarity(h.Bins, other.Bins)
}
