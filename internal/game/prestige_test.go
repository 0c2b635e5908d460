package game

import (
	"errors"
	"fmt"
	"testing"
)

func TestPrestigeLocked(t *testing.T) {
	st := testState()
	if _, err := Prestige(st, 0); !errors.Is(err, ErrLocked) {
		t.Fatalf("got %v, want ErrLocked", err)
	}
}

func TestPrestigeRoundTrip(t *testing.T) {
	st := testState()
	st.Unlocks.Prestige = true
	st.Cash = 123_456
	st.Fans = 80_000
	st.PeakFans = 150_000
	st.Songs = []Song{{IncomeRate: 30}, {IncomeRate: 70}}
	st.Queue = []QueuedSong{{ID: "q"}}
	st.Boosts = []Boost{{ID: "b"}}
	st.Properties = []Property{{Type: "home_studio", Control: 2}}
	st.Tier = 3
	st.Phase = 4

	artist, err := Prestige(st, 9_000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The legacy rate is a fixed cut of song income only.
	if want := 100 * LegacyIncomeRatio; !almostEqual(artist.IncomeRate, want) {
		t.Fatalf("legacy rate = %v, want %v", artist.IncomeRate, want)
	}
	if artist.Name != "Era 1 Act" || artist.PeakFans != 150_000 || artist.SongCount != 2 {
		t.Fatalf("artist %+v", artist)
	}

	// Session resources reset.
	if st.Cash != StartingCash || st.Fans != 0 {
		t.Fatalf("cash=%v fans=%v after reset", st.Cash, st.Fans)
	}
	if len(st.Songs) != 0 || len(st.Queue) != 0 || len(st.Boosts) != 0 {
		t.Fatal("session slices not cleared")
	}
	if st.Resets != 1 {
		t.Fatalf("resets = %d, want 1", st.Resets)
	}

	// Cross-run progress persists.
	if st.Tier != 3 || st.Phase != 4 || st.PeakFans != 150_000 {
		t.Fatal("cross-run progress lost")
	}
	if !st.Unlocks.Prestige || len(st.Properties) != 1 {
		t.Fatal("unlocks or properties lost")
	}
	if !almostEqual(PrestigeMult(st), 1.25) {
		t.Fatalf("prestige mult = %v, want 1.25", PrestigeMult(st))
	}
}

func TestPrestigeEvictsOldestArtists(t *testing.T) {
	st := testState()
	st.Unlocks.Prestige = true

	for i := 0; i < MaxRetiredArtists+2; i++ {
		st.Songs = []Song{{IncomeRate: float64(i + 1)}}
		if _, err := Prestige(st, int64(i)); err != nil {
			t.Fatalf("prestige %d failed: %v", i, err)
		}
	}
	if len(st.RetiredArtists) != MaxRetiredArtists {
		t.Fatalf("roster = %d, want %d", len(st.RetiredArtists), MaxRetiredArtists)
	}
	// The two earliest eras are gone.
	if st.RetiredArtists[0].Name != "Era 3 Act" {
		t.Fatalf("oldest kept = %s, want Era 3 Act", st.RetiredArtists[0].Name)
	}
	if st.Resets != MaxRetiredArtists+2 {
		t.Fatalf("resets = %d", st.Resets)
	}
}

func TestPrestigeResetsAlbumMilestoneTracking(t *testing.T) {
	st := testState()
	st.Unlocks.Prestige = true
	st.Unlocks.Albums = true
	st.Songs = songsN(50)
	if CheckAutoRelease(st, 1_000) == nil {
		t.Fatal("expected release at 50 songs")
	}

	if _, err := Prestige(st, 2_000); err != nil {
		t.Fatalf("prestige failed: %v", err)
	}
	if st.LastAlbumSongCount != 0 {
		t.Fatalf("milestone tracker = %d after reset", st.LastAlbumSongCount)
	}

	// A rebuilt catalog smaller than the old era's must still release once
	// the cooldown has passed.
	st.Songs = songsN(20)
	now := int64(2_000 + 10*AlbumCooldownMS)
	a := CheckAutoRelease(st, now)
	if a == nil {
		t.Fatal("no release in new era")
	}
	if a.SongCount != 20 {
		t.Fatalf("release song count = %d, want 20", a.SongCount)
	}
}

func TestPrestigeResetsBoostCostScaling(t *testing.T) {
	st := testState()
	st.Unlocks.Prestige = true
	st.Unlocks.Boosts = true
	st.Cash = 10_000

	spec, ok := boostSpec("studio_session")
	if !ok {
		t.Fatal("missing boost spec")
	}
	for i := 0; i < 3; i++ {
		if _, err := ActivateBoost(st, 0, spec.Type); err != nil {
			t.Fatalf("activate %d failed: %v", i, err)
		}
	}
	if BoostCost(st, spec) <= spec.BaseCost {
		t.Fatal("cost did not scale with use")
	}

	if _, err := Prestige(st, 0); err != nil {
		t.Fatalf("prestige failed: %v", err)
	}
	if got := BoostCost(st, spec); got != spec.BaseCost {
		t.Fatalf("cost after reset = %v, want base %v", got, spec.BaseCost)
	}
}

func TestPrestigeNaming(t *testing.T) {
	st := testState()
	st.Unlocks.Prestige = true
	for i := 0; i < 3; i++ {
		artist, err := Prestige(st, 0)
		if err != nil {
			t.Fatalf("prestige failed: %v", err)
		}
		if want := fmt.Sprintf("Era %d Act", i+1); artist.Name != want {
			t.Fatalf("name = %q, want %q", artist.Name, want)
		}
	}
}
