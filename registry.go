package trackcore

import "sort"

// TrackRegistry owns every live track for one tracker instance and issues
// ids. Each registry carries its own monotonic id counter rather than a
// process-wide one, so multiple trackers in the same process never share
// mutable state.
type TrackRegistry struct {
	tracks map[TrackID]*Track
	nextID TrackID
}

func NewTrackRegistry() *TrackRegistry {
	return &TrackRegistry{tracks: make(map[TrackID]*Track)}
}

// Create assigns track a fresh id and adds it to the live set. The track's
// Status is kept as the caller set it (Lifecycle.Birth sets Provisional).
func (r *TrackRegistry) Create(track *Track) TrackID {
	r.nextID++
	id := r.nextID
	track.ID = id
	r.tracks[id] = track
	return id
}

// Get returns the live track with the given id, or nil if it isn't live.
func (r *TrackRegistry) Get(id TrackID) *Track {
	return r.tracks[id]
}

// Finalize removes a track from the live set and returns it for the caller
// to pass to a sink. The second return value is false if the id was not
// live (finalize is idempotent-fail).
func (r *TrackRegistry) Finalize(id TrackID) (*Track, bool) {
	t, ok := r.tracks[id]
	if !ok {
		return nil, false
	}
	delete(r.tracks, id)
	return t, true
}

// LiveIDs returns every live track id in ascending order, the stable
// ordering cost-matrix rows are built in.
func (r *TrackRegistry) LiveIDs() []TrackID {
	ids := make([]TrackID, 0, len(r.tracks))
	for id := range r.tracks {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// LiveTracks returns the live tracks in the same order as LiveIDs.
func (r *TrackRegistry) LiveTracks() []*Track {
	ids := r.LiveIDs()
	out := make([]*Track, len(ids))
	for i, id := range ids {
		out[i] = r.tracks[id]
	}
	return out
}

// Len reports how many tracks are currently live.
func (r *TrackRegistry) Len() int {
	return len(r.tracks)
}
