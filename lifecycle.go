package trackcore

// Lifecycle turns unassigned detections into new Provisional tracks and
// removes tracks that have outlived their evidence. Provisional tracks
// participate in the ordinary per-frame cost/assignment pipeline exactly
// like Active and Coasting tracks; Lifecycle only evaluates the
// promotion/termination state machine after each frame's assignments have
// already been applied.
type Lifecycle struct {
	cfg TrackerConfig
}

func NewLifecycle(cfg TrackerConfig) *Lifecycle {
	return &Lifecycle{cfg: cfg}
}

// Birth creates a new Provisional track for every still-unassigned
// detection, seeded at its image location.
func (l *Lifecycle) Birth(registry *TrackRegistry, unassigned []Detection, at Timestamp) []TrackID {
	created := make([]TrackID, 0, len(unassigned))
	for _, d := range unassigned {
		filter := NewFilter(l.cfg.MotionModel, l.cfg.filterConfig(), d.ImageLocation)
		attrs := filter.Variant().WithInterval(AttrIntervalInit)

		track := &Track{
			filter: filter,
			History: []TrackState{{
				Timestamp:        at,
				Location:         d.ImageLocation,
				HasImageLocation: true,
				ImageLocation:    d.ImageLocation,
				HasWorldLocation: true,
				WorldLocation:    d.WorldLocation,
				Attributes:       attrs,
			}},
			Status:            Provisional,
			ObservedFrames:    1,
			birthFrame:        at.Frame,
			birthWindowFrames: l.cfg.Birth.M,
			associations:      1,
		}
		if d.HasArea {
			track.areaHistory = append(track.areaHistory, d.Area)
			track.areaEMA = d.Area
			track.hasAreaEMA = true
		}
		if d.Histogram != nil {
			track.appearanceCache = *d.Histogram
		}

		id := registry.Create(track)
		created = append(created, id)
	}
	return created
}

// Evaluate applies the promotion and termination rules after the frame's
// assignments have been committed. matched identifies the tracks that
// received a detection this frame (as opposed to coasting). It returns the
// tracks terminated this frame, in ascending track-id order, matching the
// deterministic tie-break the spec requires for emission order.
func (l *Lifecycle) Evaluate(registry *TrackRegistry, matched map[TrackID]bool, at Timestamp) []*Track {
	var terminated []*Track

	for _, id := range registry.LiveIDs() {
		track := registry.Get(id)

		switch track.Status {
		case Provisional:
			if matched[id] {
				track.associations++
			}
			framesSinceBirth := at.Frame - track.birthFrame
			windowClosed := framesSinceBirth >= uint64(track.birthWindowFrames-1)
			if track.associations >= l.cfg.Birth.N {
				l.promote(track)
			} else if windowClosed {
				registry.Finalize(id) // discarded, not emitted
			}

		case Active, Coasting:
			if matched[id] {
				track.Status = Active
			} else if track.MissedFrames > 0 {
				track.Status = Coasting
			}

			if cause, terminate := l.terminationCause(track); terminate {
				track.Status = Terminated
				track.TerminationCause = cause
				t, _ := registry.Finalize(id)
				terminated = append(terminated, t)
			}
		}
	}

	return terminated
}

// promote transitions a Provisional track to Active, re-seeding its
// filter's velocity from a least-squares fit over the birth window per the
// velocity-initialization feature.
func (l *Lifecycle) promote(track *Track) {
	points := make([]Point2, len(track.History))
	times := make([]float64, len(track.History))
	for i, s := range track.History {
		points[i] = s.Location
		times[i] = s.Timestamp.Seconds
	}
	track.filter.InitializeVelocity(points, times)
	track.Status = Active
}

func (l *Lifecycle) terminationCause(track *Track) (TerminationCause, bool) {
	if track.MissedFrames > l.cfg.CoastLimit {
		return TerminationCoast, true
	}
	if len(l.cfg.AOI) >= 3 {
		loc := track.filter.CurrentLocation()
		if !l.cfg.AOI.Contains(loc) {
			return TerminationAOI, true
		}
	}
	if track.filter.Trace() > l.cfg.DivergenceTraceCap {
		return TerminationDivergence, true
	}
	return NotTerminated, false
}
