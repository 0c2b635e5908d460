package game

// RecomputeControl rebuilds industry control from scratch on every call:
// five independent axes, no incremental accumulation, so repeated calls
// with unchanged state always agree. The stored value is unclamped;
// ControlPercent clamps for display and the victory check.
func RecomputeControl(st *State) float64 {
	total := 0.0
	for _, step := range fanScoreTable {
		if st.PeakFans >= step.Threshold {
			total += step.Points
		}
	}
	total += pointsPerTier * float64(st.Tier)
	total += pointsPerPhase * float64(st.Phase)
	total += pointsPerReset * float64(st.Resets)
	for _, p := range st.Properties {
		total += p.Control
	}
	st.Control = total
	return total
}

func ControlPercent(st *State) float64 {
	if st.Control > 100 {
		return 100
	}
	return st.Control
}

func HasWon(st *State) bool {
	return st.Control >= VictoryControl
}
