package trackcore

// MotionModel selects which MotionFilter variant a track uses. The choice
// is made once at track birth and never changes for the life of the track.
type MotionModel int

const (
	MotionLinear MotionModel = iota
	MotionSpeedHeading
)

func (m MotionModel) String() string {
	switch m {
	case MotionLinear:
		return "linear"
	case MotionSpeedHeading:
		return "speed_heading"
	default:
		return "unknown"
	}
}

// Filter is the per-track motion estimator. It has exactly two
// implementations (LinearFilter, SpeedHeadingFilter), chosen once at birth;
// callers never need a third, so this stays a narrow interface rather than
// a plugin hierarchy.
type Filter interface {
	// Predict returns the mean and covariance at dt seconds beyond the
	// current posterior without mutating internal state. dt must be >= 0;
	// dt == 0 returns the current posterior unchanged.
	Predict(dt float64) (mean Point2, cov [4]float64)

	// Update advances the filter to dt seconds beyond the current
	// posterior and then applies the measurement z with noise R. On
	// success the new posterior covariance has been re-symmetrized.
	Update(z Point2, R [4]float64, dt float64)

	// Coast commits a predict-only step: the posterior is advanced dt
	// seconds with no measurement, inflating the covariance. Used by
	// TrackUpdater for tracks that received no detection this frame.
	Coast(dt float64)

	// InitializeVelocity re-seeds the filter's velocity/speed component
	// from a least-squares fit over a track's birth-window observations,
	// used once when a Provisional track is promoted to Active.
	InitializeVelocity(points []Point2, times []float64)

	CurrentLocation() Point2
	CurrentVelocity() Point2
	CurrentLocationCovariance() [4]float64

	// Trace returns the trace of the full state covariance, used by
	// Lifecycle to detect filter divergence.
	Trace() float64

	// Variant identifies which StateAttributes filter bit this
	// implementation corresponds to.
	Variant() StateAttributes

	// Model identifies the MotionModel this implementation represents.
	Model() MotionModel
}

// FilterConfig carries the noise matrix a MotionFilter is constructed with.
// ProcessNoise is the 4x4 additive Q (row-major). Measurement noise has no
// place here: it is supplied fresh to Update on every call (by the cost
// model for gating, and by TrackUpdater for the actual filter update), so a
// filter never needs one cached at construction time.
type FilterConfig struct {
	ProcessNoise [16]float64
}

// NewFilter constructs the Filter variant named by model, seeded at the
// given initial location with zero velocity/speed.
func NewFilter(model MotionModel, cfg FilterConfig, initial Point2) Filter {
	switch model {
	case MotionSpeedHeading:
		return newSpeedHeadingFilter(cfg, initial)
	default:
		return newLinearFilter(cfg, initial)
	}
}
