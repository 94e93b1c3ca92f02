package trackcore

// StepResult is returned from one call to Tracker.Step: a snapshot of the
// tracks still live after the frame, plus whichever tracks terminated this
// frame (in ascending track-id order).
type StepResult struct {
	Timestamp    Timestamp
	LiveTracks   []*Track
	Terminated   []*Track
	UsedFallback bool
}

// Tracker is the per-sequence orchestrator wiring TrackRegistry,
// MotionFilter, CostModel, Assigner, TrackUpdater, and Lifecycle into one
// per-frame pipeline: predict, cost, assign, update, evaluate lifecycle.
// Step is synchronous; it spawns no goroutines and blocks the caller for
// exactly one frame's work.
type Tracker struct {
	cfg       TrackerConfig
	registry  *TrackRegistry
	costModel *CostModel
	assigner  *Assigner
	updater   *TrackUpdater
	lifecycle *Lifecycle

	haveLast bool
	last     Timestamp
}

// NewTracker constructs a Tracker from a validated configuration. Callers
// should call cfg.Validate() themselves before NewTracker; Step assumes the
// configuration is already sound.
func NewTracker(cfg TrackerConfig) *Tracker {
	return &Tracker{
		cfg:       cfg,
		registry:  NewTrackRegistry(),
		costModel: NewCostModel(cfg.costModelConfig()),
		assigner:  NewAssigner(cfg.AssignerTimeout),
		updater:   NewTrackUpdater(cfg),
		lifecycle: NewLifecycle(cfg),
	}
}

// Step processes one frame of detections at timestamp ts. planeToWorld is
// optional; when non-nil, each detection's WorldLocation is recomputed from
// its ImageLocation via the supplied homography before anything else runs,
// reflecting that frame's stabilization result rather than whatever the
// caller happened to populate.
//
// Step rejects a non-monotonic timestamp or a detection with a non-finite
// coordinate as a ContractViolation, leaving the registry untouched.
func (t *Tracker) Step(ts Timestamp, detections []Detection, planeToWorld *Homography) (StepResult, error) {
	if t.haveLast && !t.last.Monotonic(ts) {
		return StepResult{}, &ContractViolation{Reason: "timestamp is not strictly after the previous Step call"}
	}
	for i, d := range detections {
		if !d.Finite() {
			return StepResult{}, &ContractViolation{Reason: "detection has a non-finite coordinate"}
		}
		if planeToWorld != nil {
			detections[i].WorldLocation = point3From(planeToWorld.Apply(d.ImageLocation))
		}
	}

	tracks := t.registry.LiveTracks()
	costMatrix := buildCostMatrix(t.costModel, tracks, ts, detections)
	result := t.assigner.Solve(costMatrix)

	matched := make(map[TrackID]bool, len(result.Matches))
	for _, m := range result.Matches {
		track := tracks[m.Row]
		t.updater.ApplyMatch(track, detections[m.Col], ts)
		matched[track.ID] = true
	}
	for _, row := range result.UnmatchedRows {
		t.updater.Coast(tracks[row], ts)
	}

	unassigned := make([]Detection, len(result.UnmatchedCols))
	for i, col := range result.UnmatchedCols {
		unassigned[i] = detections[col]
	}
	t.lifecycle.Birth(t.registry, unassigned, ts)
	terminated := t.lifecycle.Evaluate(t.registry, matched, ts)

	t.haveLast = true
	t.last = ts

	return StepResult{
		Timestamp:    ts,
		LiveTracks:   t.registry.LiveTracks(),
		Terminated:   terminated,
		UsedFallback: result.UsedFallback,
	}, nil
}

func point3From(p Point2) Point3 {
	return Point3{X: p.X, Y: p.Y}
}
