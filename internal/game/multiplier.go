package game

// Multiplier composition. Three of these layers are folded into rates at
// bake time (tier, prestige, trend); only the boost stack is dynamic and
// applied per tick by the income and fan systems.

// TierMult is highest-purchased-wins: only the current tier and gear level
// matter, lower tiers do not stack.
func TierMult(st *State) float64 {
	spec := tierSpec(st.Tier)
	gear := st.GearLevel
	if gear > spec.MaxGear {
		gear = spec.MaxGear
	}
	return spec.Mult * (1 + spec.GearStep*float64(gear))
}

// PrestigeMult only ever grows: one fixed increment per reset performed.
func PrestigeMult(st *State) float64 {
	return 1 + PrestigeStep*float64(st.Resets)
}

// TrendMult decays linearly from TrendPeakMult to 1 over the trend window.
// Songs baked after the window closes get no bonus; songs baked inside it
// keep whatever they baked.
func TrendMult(st *State, genre string, now int64) float64 {
	if st.TrendSetAt == 0 || genre != st.TrendGenre {
		return 1
	}
	elapsed := now - st.TrendSetAt
	if elapsed < 0 || elapsed >= TrendWindowMS {
		return 1
	}
	frac := float64(elapsed) / float64(TrendWindowMS)
	return TrendPeakMult - (TrendPeakMult-1)*frac
}

// DynamicIncomeMult is the product over all active boosts; identity when
// none are active. Callers must prune expired boosts first.
func DynamicIncomeMult(st *State) float64 {
	mult := 1.0
	for _, b := range st.Boosts {
		mult *= b.IncomeMult
	}
	return mult
}

func DynamicFanMult(st *State) float64 {
	mult := 1.0
	for _, b := range st.Boosts {
		mult *= b.FanMult
	}
	return mult
}
