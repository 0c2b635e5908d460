package game

import "testing"

func TestEvaluateUnlocks(t *testing.T) {
	st := testState()
	EvaluateUnlocks(st)
	if st.Unlocks != (Unlocks{}) {
		t.Fatalf("fresh state unlocked something: %+v", st.Unlocks)
	}

	st.Fans = 2_500
	st.Cash = 1_000
	st.Tier = 1
	st.Songs = songsN(AlbumMinSongs)
	st.PeakFans = 100_000
	EvaluateUnlocks(st)
	want := Unlocks{Boosts: true, Albums: true, Trend: true, Tours: true, Properties: true, Prestige: true}
	if st.Unlocks != want {
		t.Fatalf("unlocks = %+v, want %+v", st.Unlocks, want)
	}
}

func TestUnlocksAreLatches(t *testing.T) {
	st := testState()
	st.Fans = 100
	EvaluateUnlocks(st)
	if !st.Unlocks.Boosts {
		t.Fatal("boosts not unlocked at 100 fans")
	}

	// Dropping back below the threshold does not re-lock.
	st.Fans = 0
	EvaluateUnlocks(st)
	if !st.Unlocks.Boosts {
		t.Fatal("unlock regressed")
	}
}

func TestAdvancePhase(t *testing.T) {
	st := testState()
	AdvancePhase(st)
	if st.Phase != 0 {
		t.Fatalf("phase = %d, want 0", st.Phase)
	}

	st.PeakFans = 10_000
	AdvancePhase(st)
	if st.Phase != 2 {
		t.Fatalf("phase = %d, want 2", st.Phase)
	}

	// Monotonic even if peak somehow read lower.
	st.PeakFans = 0
	AdvancePhase(st)
	if st.Phase != 2 {
		t.Fatalf("phase regressed: %d", st.Phase)
	}
}
