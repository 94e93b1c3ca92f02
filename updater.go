package trackcore

// TrackUpdater applies one frame's assignment: matched tracks advance their
// motion filter with the new measurement; unmatched tracks coast.
type TrackUpdater struct {
	cfg TrackerConfig
}

func NewTrackUpdater(cfg TrackerConfig) *TrackUpdater {
	return &TrackUpdater{cfg: cfg}
}

// ApplyMatch advances track's filter with detection d observed at time at,
// appends the resulting TrackState, and refreshes the area/appearance
// caches.
func (u *TrackUpdater) ApplyMatch(track *Track, d Detection, at Timestamp) {
	last := track.LastTimestamp()
	dt := last.Delta(at)

	track.filter.Update(d.ImageLocation, u.cfg.MeasurementNoise, dt)

	if d.HasArea {
		track.areaHistory = append(track.areaHistory, d.Area)
		if mean, ok := areaEMA(track.areaHistory, u.cfg.AreaWindow, u.cfg.AreaDecay); ok {
			track.areaEMA = mean
			track.hasAreaEMA = true
		}
	}
	if d.Histogram != nil {
		track.appearanceCache = *d.Histogram
	}

	attrs := track.filter.Variant()
	if u.cfg.MultiFeature {
		attrs = attrs.WithAssoc(AttrAssocMultiFeatures)
	} else {
		attrs = attrs.WithAssoc(AttrAssocKinematic)
	}
	attrs = attrs.WithInterval(AttrIntervalForward)

	loc := track.filter.CurrentLocation()
	vel := track.filter.CurrentVelocity()
	cov := track.filter.CurrentLocationCovariance()

	state := TrackState{
		Timestamp:          at,
		Location:           loc,
		Velocity:           vel,
		HasImageLocation:   true,
		ImageLocation:      d.ImageLocation,
		HasWorldLocation:   true,
		WorldLocation:      d.WorldLocation,
		HasBoundingBox:     true,
		BoundingBox:        d.BoundingBox,
		LocationCovariance: cov,
		Attributes:         attrs,
	}
	track.History = append(track.History, state)
	track.MissedFrames = 0
	track.ObservedFrames++
}

// Coast advances track's filter with no measurement and appends a
// predicted TrackState, incrementing its missed-frame counter.
func (u *TrackUpdater) Coast(track *Track, at Timestamp) {
	last := track.LastTimestamp()
	dt := last.Delta(at)

	track.filter.Coast(dt)

	attrs := track.filter.Variant().WithInterval(AttrIntervalForward)

	loc := track.filter.CurrentLocation()
	vel := track.filter.CurrentVelocity()
	cov := track.filter.CurrentLocationCovariance()

	state := TrackState{
		Timestamp:          at,
		Location:           loc,
		Velocity:           vel,
		LocationCovariance: cov,
		Attributes:         attrs,
	}
	track.History = append(track.History, state)
	track.MissedFrames++
}
