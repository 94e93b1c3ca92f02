package trackcore

// TrackID uniquely identifies a track within the TrackRegistry that
// created it. IDs are monotonic within one registry and are never reused.
type TrackID uint64

// Status is a track's position in the birth/confirm/coast/terminate
// lifecycle.
type Status int

const (
	Provisional Status = iota
	Active
	Coasting
	Terminated
)

func (s Status) String() string {
	switch s {
	case Provisional:
		return "provisional"
	case Active:
		return "active"
	case Coasting:
		return "coasting"
	case Terminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// TerminationCause records why a Terminated track left the live set.
type TerminationCause int

const (
	// NotTerminated is the zero value for tracks that are still live.
	NotTerminated TerminationCause = iota
	TerminationCoast
	TerminationAOI
	TerminationDivergence
)

func (c TerminationCause) String() string {
	switch c {
	case NotTerminated:
		return ""
	case TerminationCoast:
		return "coast"
	case TerminationAOI:
		return "aoi"
	case TerminationDivergence:
		return "divergence"
	default:
		return "unknown"
	}
}

// TrackState is one observation appended to a track's history. Once
// appended it is never mutated.
type TrackState struct {
	Timestamp Timestamp
	Location  Point2
	Velocity  Point2

	HasImageLocation bool
	ImageLocation    Point2

	HasWorldLocation bool
	WorldLocation    Point3

	HasBoundingBox bool
	BoundingBox    Rect

	// LocationCovariance is the 2x2 position block of the posterior
	// covariance, row-major: [Pxx, Pxy, Pyx, Pyy].
	LocationCovariance [4]float64

	Attributes StateAttributes
}

// Track is the unit of identity the tracker maintains across frames. It is
// owned exclusively by the TrackRegistry; every other reference to it is
// either a TrackID or a scoped pointer borrowed for the duration of one
// Step call.
type Track struct {
	ID      TrackID
	History []TrackState

	filter Filter

	appearanceCache AppearanceHistogram
	areaHistory     []float64 // most recent observed areas, newest last
	areaEMA         float64
	hasAreaEMA      bool

	Status           Status
	TerminationCause TerminationCause

	MissedFrames   int
	ObservedFrames int

	// birth bookkeeping, consulted only while Status == Provisional.
	birthFrame        uint64
	birthWindowFrames int
	associations      int
}

// LastState returns the most recently appended TrackState. It panics if
// the track has no history, which can only happen between registry
// creation and the first appended state within one Step call -- a
// programming error, not caller input.
func (t *Track) LastState() TrackState {
	if len(t.History) == 0 {
		panic("trackcore: track has empty history")
	}
	return t.History[len(t.History)-1]
}

// LastTimestamp returns the timestamp of LastState.
func (t *Track) LastTimestamp() Timestamp {
	return t.LastState().Timestamp
}
