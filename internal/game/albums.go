package game

import (
	"fmt"

	"github.com/google/uuid"
)

func variantCount(fans float64) int {
	switch {
	case fans >= 100_000:
		return 4
	case fans >= 10_000:
		return 3
	case fans >= 1_000:
		return 2
	default:
		return 1
	}
}

func albumPayout(songCount int, fans float64) float64 {
	capped := songCount
	if capped > AlbumSongCap {
		capped = AlbumSongCap
	}
	return (float64(capped)*AlbumPerSong + fans*AlbumPerFan) * float64(variantCount(fans))
}

// CheckAutoRelease fires at most one album per tick, when the feature is
// unlocked, the catalog is big enough, the cooldown has elapsed, and a song
// milestone boundary has been crossed since the last release. Milestone
// crossing compares against the last-seen song count rather than a counter
// so one large jump cannot double-fire.
func CheckAutoRelease(st *State, now int64) *Album {
	if !st.Unlocks.Albums {
		return nil
	}
	n := len(st.Songs)
	if n < AlbumMinSongs {
		return nil
	}
	if st.LastAlbumAt != 0 && now-st.LastAlbumAt < AlbumCooldownMS {
		return nil
	}
	if n/AlbumSongStep <= st.LastAlbumSongCount/AlbumSongStep {
		return nil
	}

	a := Album{
		ID:         uuid.NewString(),
		SongCount:  n,
		Payout:     albumPayout(n, st.Fans),
		Variants:   variantCount(st.Fans),
		ReleasedAt: now,
	}
	st.Albums = append(st.Albums, a)
	st.Cash += a.Payout
	st.LastAlbumAt = now
	st.LastAlbumSongCount = n
	return &st.Albums[len(st.Albums)-1]
}

// ReRelease pays half of what a fresh release with the original album's
// song count would yield right now, with the current fan base. No cooldown,
// and the auto-release tracking is left alone.
func ReRelease(st *State, now int64, albumID string) (*Album, error) {
	if !st.Unlocks.Albums {
		return nil, fmt.Errorf("%w: albums", ErrLocked)
	}
	var orig *Album
	for i := range st.Albums {
		if st.Albums[i].ID == albumID {
			orig = &st.Albums[i]
			break
		}
	}
	if orig == nil {
		return nil, fmt.Errorf("%w: album %q", ErrNotFound, albumID)
	}

	a := Album{
		ID:         uuid.NewString(),
		SongCount:  orig.SongCount,
		Payout:     ReReleaseRatio * albumPayout(orig.SongCount, st.Fans),
		Variants:   variantCount(st.Fans),
		ReleasedAt: now,
		ReRelease:  true,
	}
	st.Albums = append(st.Albums, a)
	st.Cash += a.Payout
	return &st.Albums[len(st.Albums)-1], nil
}
