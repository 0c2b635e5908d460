package game

import (
	"errors"
	"testing"
)

func songsN(n int) []Song {
	out := make([]Song, n)
	return out
}

func TestCheckAutoReleaseGates(t *testing.T) {
	st := testState()
	st.Songs = songsN(10)

	if a := CheckAutoRelease(st, 1_000); a != nil {
		t.Fatalf("released while locked: %+v", a)
	}

	st.Unlocks.Albums = true
	st.Songs = songsN(9)
	if a := CheckAutoRelease(st, 1_000); a != nil {
		t.Fatalf("released below minimum: %+v", a)
	}
}

func TestCheckAutoReleaseMilestones(t *testing.T) {
	st := testState()
	st.Unlocks.Albums = true
	st.Songs = songsN(10)
	st.Fans = 500 // one variant

	a := CheckAutoRelease(st, 1_000)
	if a == nil {
		t.Fatal("expected first release")
	}
	if a.SongCount != 10 || a.Variants != 1 {
		t.Fatalf("album %+v", a)
	}
	if want := 10 * AlbumPerSong + 500*AlbumPerFan; !almostEqual(a.Payout, want) {
		t.Fatalf("payout = %v, want %v", a.Payout, want)
	}
	if !almostEqual(st.Cash, StartingCash+a.Payout) {
		t.Fatalf("payout not credited: %v", st.Cash)
	}

	// Same milestone, cooldown long past: still no release.
	if a := CheckAutoRelease(st, 1_000+10*AlbumCooldownMS); a != nil {
		t.Fatalf("re-fired on same milestone: %+v", a)
	}

	// Next milestone but inside the cooldown: held back.
	st.Songs = songsN(20)
	if a := CheckAutoRelease(st, 1_000+AlbumCooldownMS-1); a != nil {
		t.Fatalf("fired inside cooldown: %+v", a)
	}
	if a := CheckAutoRelease(st, 1_000+AlbumCooldownMS); a == nil {
		t.Fatal("expected release after cooldown")
	}
}

func TestCheckAutoReleaseBigJumpFiresOnce(t *testing.T) {
	st := testState()
	st.Unlocks.Albums = true

	// Jumping from 0 to 47 songs crosses four milestones but yields one album.
	st.Songs = songsN(47)
	if a := CheckAutoRelease(st, 1_000); a == nil {
		t.Fatal("expected release")
	}
	if a := CheckAutoRelease(st, 1_000+AlbumCooldownMS); a != nil {
		t.Fatalf("double-fired: %+v", a)
	}
}

func TestAlbumPayoutCapsAndVariants(t *testing.T) {
	// Song contribution caps, fan contribution does not.
	if got, want := albumPayout(500, 0), float64(AlbumSongCap)*AlbumPerSong; !almostEqual(got, want) {
		t.Fatalf("capped payout = %v, want %v", got, want)
	}
	if variantCount(999) != 1 || variantCount(1_000) != 2 || variantCount(10_000) != 3 || variantCount(100_000) != 4 {
		t.Fatal("variant thresholds off")
	}
}

func TestReRelease(t *testing.T) {
	st := testState()

	if _, err := ReRelease(st, 0, "x"); !errors.Is(err, ErrLocked) {
		t.Fatalf("locked: got %v, want ErrLocked", err)
	}
	st.Unlocks.Albums = true
	if _, err := ReRelease(st, 0, "x"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing: got %v, want ErrNotFound", err)
	}

	st.Albums = []Album{{ID: "orig", SongCount: 20, Payout: 999, ReleasedAt: 1_000}}
	st.Fans = 2_000
	st.LastAlbumAt = 1_000
	st.LastAlbumSongCount = 20

	a, err := ReRelease(st, 5_000, "orig")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Half of a fresh release at today's fan count, not half the old payout.
	want := ReReleaseRatio * albumPayout(20, 2_000)
	if !almostEqual(a.Payout, want) {
		t.Fatalf("payout = %v, want %v", a.Payout, want)
	}
	if !a.ReRelease {
		t.Fatal("re-release not flagged")
	}
	if st.LastAlbumAt != 1_000 || st.LastAlbumSongCount != 20 {
		t.Fatal("re-release touched auto-release tracking")
	}
}
