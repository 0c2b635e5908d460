package game

import "fmt"

// Prestige retires the current act: a pure state transform with no partial
// failure mode once the unlock precondition passes. The retiring act
// becomes a RetiredArtist earning a fixed fraction of the catalog income at
// the moment of reset; session-scoped resources are cleared; everything
// cross-run (unlocks, properties, tier, albums, peak fans) persists.
func Prestige(st *State, now int64) (*RetiredArtist, error) {
	if !st.Unlocks.Prestige {
		return nil, fmt.Errorf("%w: prestige", ErrLocked)
	}

	artist := RetiredArtist{
		Name:       fmt.Sprintf("Era %d Act", st.Resets+1),
		PeakFans:   st.PeakFans,
		SongCount:  len(st.Songs),
		IncomeRate: CatalogIncome(st) * LegacyIncomeRatio,
		CreatedAt:  st.CreatedAt,
		RetiredAt:  now,
	}
	st.RetiredArtists = append(st.RetiredArtists, artist)
	if len(st.RetiredArtists) > MaxRetiredArtists {
		st.RetiredArtists = st.RetiredArtists[len(st.RetiredArtists)-MaxRetiredArtists:]
	}

	st.Resets++
	st.Cash = StartingCash
	st.Fans = 0
	st.Songs = []Song{}
	st.Queue = []QueuedSong{}
	st.Boosts = []Boost{}
	st.BoostUsage = map[string]int{}
	// The milestone tracker follows the catalog it tracks; the release
	// history and the time-based cooldown persist.
	st.LastAlbumSongCount = 0

	RecomputeControl(st)
	return &st.RetiredArtists[len(st.RetiredArtists)-1], nil
}
