package trackcore

import "testing"

func TestLifecycle_BirthCreatesProvisionalTracks(t *testing.T) {
	cfg := zeroNoiseTrackerConfig()
	cfg.Birth = BirthConfig{N: 3, M: 5}
	l := NewLifecycle(cfg)
	r := NewTrackRegistry()

	ids := l.Birth(r, []Detection{{ImageLocation: Point2{X: 1, Y: 2}}}, ts(0, 0))

	if len(ids) != 1 {
		t.Fatalf("expected one track created, got %d", len(ids))
	}
	track := r.Get(ids[0])
	if track.Status != Provisional {
		t.Errorf("expected a freshly birthed track to be Provisional, got %v", track.Status)
	}
	if track.associations != 1 {
		t.Errorf("expected the birth frame itself to count as one association, got %d", track.associations)
	}
	if len(track.History) != 1 {
		t.Errorf("expected exactly one history state at birth, got %d", len(track.History))
	}
}

func TestLifecycle_PromotesAfterNAssociations(t *testing.T) {
	cfg := zeroNoiseTrackerConfig()
	cfg.Birth = BirthConfig{N: 2, M: 5}
	l := NewLifecycle(cfg)
	r := NewTrackRegistry()

	ids := l.Birth(r, []Detection{{ImageLocation: Point2{X: 0, Y: 0}}}, ts(0, 0))
	id := ids[0]

	terminated := l.Evaluate(r, map[TrackID]bool{id: true}, ts(1, 1))
	if len(terminated) != 0 {
		t.Fatalf("expected nothing terminated, got %d", len(terminated))
	}
	track := r.Get(id)
	if track.Status != Active {
		t.Errorf("expected promotion to Active once associations reach N, got %v", track.Status)
	}
}

func TestLifecycle_DiscardsUnconfirmedAtWindowClose(t *testing.T) {
	cfg := zeroNoiseTrackerConfig()
	cfg.Birth = BirthConfig{N: 5, M: 2}
	l := NewLifecycle(cfg)
	r := NewTrackRegistry()

	ids := l.Birth(r, []Detection{{ImageLocation: Point2{X: 0, Y: 0}}}, ts(0, 0))
	id := ids[0]

	// M=2: the window closes once framesSinceBirth >= M-1 == 1, i.e. on the
	// very next frame, well before N=5 associations can accumulate.
	l.Evaluate(r, map[TrackID]bool{}, ts(1, 1))

	if r.Get(id) != nil {
		t.Errorf("expected the unconfirmed track to be discarded once its birth window closes")
	}
}

func TestLifecycle_CoastLimitTerminates(t *testing.T) {
	cfg := zeroNoiseTrackerConfig()
	cfg.CoastLimit = 2
	l := NewLifecycle(cfg)
	r := NewTrackRegistry()
	track := newProvisionalTrack(cfg, ts(0, 0), Point2{X: 0, Y: 0})
	track.Status = Active
	id := r.Create(track)

	track.MissedFrames = 3 // > CoastLimit

	terminated := l.Evaluate(r, map[TrackID]bool{}, ts(1, 1))

	if len(terminated) != 1 {
		t.Fatalf("expected one termination, got %d", len(terminated))
	}
	if terminated[0].TerminationCause != TerminationCoast {
		t.Errorf("expected TerminationCoast, got %v", terminated[0].TerminationCause)
	}
	if r.Get(id) != nil {
		t.Errorf("expected the terminated track to leave the live set")
	}
}

func TestLifecycle_AOIExitTerminates(t *testing.T) {
	cfg := zeroNoiseTrackerConfig()
	cfg.AOI = Polygon{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	l := NewLifecycle(cfg)
	r := NewTrackRegistry()
	track := newProvisionalTrack(cfg, ts(0, 0), Point2{X: 1000, Y: 1000})
	track.Status = Active
	r.Create(track)

	terminated := l.Evaluate(r, map[TrackID]bool{}, ts(1, 1))

	if len(terminated) != 1 {
		t.Fatalf("expected one termination, got %d", len(terminated))
	}
	if terminated[0].TerminationCause != TerminationAOI {
		t.Errorf("expected TerminationAOI, got %v", terminated[0].TerminationCause)
	}
}

func TestLifecycle_DivergenceTerminates(t *testing.T) {
	cfg := zeroNoiseTrackerConfig()
	cfg.DivergenceTraceCap = 0.5 // below the fresh filter's own trace
	l := NewLifecycle(cfg)
	r := NewTrackRegistry()
	track := newProvisionalTrack(cfg, ts(0, 0), Point2{X: 0, Y: 0})
	track.Status = Active
	r.Create(track)

	terminated := l.Evaluate(r, map[TrackID]bool{}, ts(1, 1))

	if len(terminated) != 1 {
		t.Fatalf("expected one termination, got %d", len(terminated))
	}
	if terminated[0].TerminationCause != TerminationDivergence {
		t.Errorf("expected TerminationDivergence, got %v", terminated[0].TerminationCause)
	}
}

func TestLifecycle_ActiveTrackBecomesCoastingWhenUnmatched(t *testing.T) {
	cfg := zeroNoiseTrackerConfig()
	l := NewLifecycle(cfg)
	r := NewTrackRegistry()
	track := newProvisionalTrack(cfg, ts(0, 0), Point2{X: 0, Y: 0})
	track.Status = Active
	track.MissedFrames = 1 // TrackUpdater.Coast already ran for this frame
	r.Create(track)

	l.Evaluate(r, map[TrackID]bool{}, ts(1, 1))

	if track.Status != Coasting {
		t.Errorf("expected an unmatched track with a miss to become Coasting, got %v", track.Status)
	}
}
