package game

// EvaluateUnlocks flips one-way latches whose thresholds are met. Nothing
// here ever sets a flag back to false; downstream systems read the flags to
// decide whether their own logic is live.
func EvaluateUnlocks(st *State) {
	u := &st.Unlocks
	if !u.Boosts && st.Fans >= 100 {
		u.Boosts = true
	}
	if !u.Albums && len(st.Songs) >= AlbumMinSongs {
		u.Albums = true
	}
	if !u.Trend && st.Tier >= 1 {
		u.Trend = true
	}
	if !u.Tours && st.Fans >= 2_500 {
		u.Tours = true
	}
	if !u.Properties && st.Cash >= 1_000 {
		u.Properties = true
	}
	if !u.Prestige && st.PeakFans >= 100_000 {
		u.Prestige = true
	}
}

// AdvancePhase moves the career phase forward when peak fans cross a
// threshold. Monotonic: the phase survives prestige because it is computed
// over peak fans, which never reset.
func AdvancePhase(st *State) {
	phase := 0
	for _, threshold := range phaseThresholds {
		if st.PeakFans >= threshold {
			phase++
		}
	}
	if phase > st.Phase {
		st.Phase = phase
	}
}
