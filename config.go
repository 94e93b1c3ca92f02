package trackcore

import "time"

// BirthConfig configures N-of-M birth confirmation: a Provisional track is
// promoted to Active once it has accumulated N associations (its birth
// frame counts as one) within the M frames starting at its birth frame; if
// that window closes first, the track is discarded.
type BirthConfig struct {
	N int
	M int
}

// TrackerConfig holds every recognized tracker option. Use
// DefaultTrackerConfig and override fields, or build one directly and call
// Validate.
type TrackerConfig struct {
	MotionModel MotionModel

	ProcessNoise     [16]float64
	MeasurementNoise [4]float64

	GateSigmaSquared float64

	MultiFeature       bool
	Weights            CostWeights
	MinColorSimilarity float64
	MinAreaSimilarity  float64

	AreaWindow int
	AreaDecay  float64

	Birth               BirthConfig
	CoastLimit          int
	DivergenceTraceCap  float64
	AOI                 Polygon
	AssignerTimeout     time.Duration
	HistogramBins       int
}

// DefaultTrackerConfig returns a configuration that passes Validate: linear
// motion, kinematic-only cost, a generous gate, and no AOI.
func DefaultTrackerConfig() TrackerConfig {
	return TrackerConfig{
		MotionModel:      MotionLinear,
		ProcessNoise:     identity4x4(1.0),
		MeasurementNoise: [4]float64{1, 0, 0, 1},
		GateSigmaSquared: 9.0,
		MultiFeature:     false,
		Weights:          CostWeights{Kinematic: 1, Color: 0, Area: 0},
		MinColorSimilarity: 0,
		MinAreaSimilarity:  0,
		AreaWindow:         5,
		AreaDecay:          0.3,
		Birth:              BirthConfig{N: 3, M: 5},
		CoastLimit:         5,
		DivergenceTraceCap: 1e6,
		AssignerTimeout:    50 * time.Millisecond,
		HistogramBins:      DefaultHistogramBins,
	}
}

func identity4x4(v float64) [16]float64 {
	var m [16]float64
	m[0], m[5], m[10], m[15] = v, v, v, v
	return m
}

// Validate enforces every predicate the configuration block specifies.
// Called at load time; Step never performs configuration validation.
func (c TrackerConfig) Validate() error {
	if c.MotionModel != MotionLinear && c.MotionModel != MotionSpeedHeading {
		return &ConfigurationError{Field: "motion_model", Problem: "must be linear or speed_heading"}
	}
	if c.GateSigmaSquared <= 0 {
		return &ConfigurationError{Field: "gate_sigma_sqr", Problem: "must be > 0"}
	}
	if c.MultiFeature {
		sum := c.Weights.Kinematic + c.Weights.Color + c.Weights.Area
		if sum < 0.999 || sum > 1.001 {
			return &ConfigurationError{Field: "weights", Problem: "must sum to 1 when multi_feature is enabled"}
		}
	}
	if c.MinColorSimilarity < 0 || c.MinColorSimilarity > 1 {
		return &ConfigurationError{Field: "min_color_similarity", Problem: "must be in [0,1]"}
	}
	if c.MinAreaSimilarity < 0 || c.MinAreaSimilarity > 1 {
		return &ConfigurationError{Field: "min_area_similarity", Problem: "must be in [0,1]"}
	}
	if c.AreaWindow < 1 {
		return &ConfigurationError{Field: "area_window", Problem: "must be >= 1"}
	}
	if c.AreaDecay <= 0 || c.AreaDecay >= 1 {
		return &ConfigurationError{Field: "area_decay", Problem: "must be in (0,1)"}
	}
	if c.Birth.N < 1 || c.Birth.N > c.Birth.M {
		return &ConfigurationError{Field: "birth", Problem: "must satisfy 1 <= N <= M"}
	}
	if c.CoastLimit < 0 {
		return &ConfigurationError{Field: "coast_limit", Problem: "must be >= 0"}
	}
	if c.DivergenceTraceCap <= 0 {
		return &ConfigurationError{Field: "divergence_trace_cap", Problem: "must be > 0"}
	}
	if c.HistogramBins < 1 {
		return &ConfigurationError{Field: "histogram_bins", Problem: "must be >= 1"}
	}
	return nil
}

func (c TrackerConfig) filterConfig() FilterConfig {
	return FilterConfig{ProcessNoise: c.ProcessNoise}
}

func (c TrackerConfig) costModelConfig() CostModelConfig {
	return CostModelConfig{
		MeasurementNoise:   c.MeasurementNoise,
		GateSigmaSquared:   c.GateSigmaSquared,
		MultiFeature:       c.MultiFeature,
		Weights:            c.Weights,
		MinColorSimilarity: c.MinColorSimilarity,
		MinAreaSimilarity:  c.MinAreaSimilarity,
		AreaWindow:         c.AreaWindow,
		AreaDecay:          c.AreaDecay,
	}
}
