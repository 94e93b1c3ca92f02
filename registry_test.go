package trackcore

import "testing"

func TestTrackRegistry_CreateAssignsMonotonicIDs(t *testing.T) {
	r := NewTrackRegistry()
	id1 := r.Create(&Track{Status: Provisional})
	id2 := r.Create(&Track{Status: Provisional})
	if id2 <= id1 {
		t.Fatalf("expected monotonically increasing ids, got %d then %d", id1, id2)
	}
	if r.Len() != 2 {
		t.Errorf("expected 2 live tracks, got %d", r.Len())
	}
}

func TestTrackRegistry_FinalizeRemovesFromLiveSet(t *testing.T) {
	r := NewTrackRegistry()
	id := r.Create(&Track{Status: Provisional})

	track, ok := r.Finalize(id)
	if !ok {
		t.Fatal("expected finalize to succeed the first time")
	}
	if track.ID != id {
		t.Errorf("expected finalized track to carry its id")
	}
	if r.Get(id) != nil {
		t.Errorf("expected the track to be gone from the live set")
	}
}

func TestTrackRegistry_FinalizeIsIdempotentFail(t *testing.T) {
	r := NewTrackRegistry()
	id := r.Create(&Track{Status: Provisional})
	r.Finalize(id)

	_, ok := r.Finalize(id)
	if ok {
		t.Error("expected the second finalize of the same id to report not-live")
	}
}

func TestTrackRegistry_LiveIDsAreSortedAscending(t *testing.T) {
	r := NewTrackRegistry()
	var ids []TrackID
	for i := 0; i < 5; i++ {
		ids = append(ids, r.Create(&Track{Status: Provisional}))
	}
	r.Finalize(ids[2])

	live := r.LiveIDs()
	for i := 1; i < len(live); i++ {
		if live[i] <= live[i-1] {
			t.Fatalf("expected ascending order, got %v", live)
		}
	}
	for _, id := range live {
		if id == ids[2] {
			t.Errorf("finalized id %d must not appear in LiveIDs", id)
		}
	}
}

func TestTrackRegistry_PerRegistryIDCounters(t *testing.T) {
	r1 := NewTrackRegistry()
	r2 := NewTrackRegistry()

	id1 := r1.Create(&Track{Status: Provisional})
	id2 := r2.Create(&Track{Status: Provisional})
	if id1 != id2 {
		t.Errorf("expected two fresh registries to both start at the same first id, got %d vs %d", id1, id2)
	}
}
