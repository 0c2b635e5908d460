package game

import "fmt"

// ScoutTrend pays to discover the next trending genre, opening a fresh
// decay window. Deterministic: trends cycle through the genre list.
func ScoutTrend(st *State, now int64) (string, error) {
	if !st.Unlocks.Trend {
		return "", fmt.Errorf("%w: trend scouting", ErrLocked)
	}
	if st.Cash < TrendScoutCost {
		return "", fmt.Errorf("%w: need %.2f", ErrInsufficientFunds, TrendScoutCost)
	}
	st.Cash -= TrendScoutCost

	next := 0
	for i, g := range genres {
		if g == st.TrendGenre {
			next = (i + 1) % len(genres)
			break
		}
	}
	st.TrendGenre = genres[next]
	st.TrendSetAt = now
	return st.TrendGenre, nil
}
