package game

import "time"

// IncomeRate sums every active income source at its baked rate. Tier,
// prestige and trend multipliers are already folded into those rates and
// are never reapplied here.
func IncomeRate(st *State) float64 {
	total := 0.0
	for _, s := range st.Songs {
		total += s.IncomeRate
	}
	for _, a := range st.RetiredArtists {
		total += a.IncomeRate
	}
	for _, p := range st.Properties {
		total += p.IncomeRate
	}
	for _, t := range st.Tours {
		if t.CompletedAt == 0 {
			total += t.IncomeRate
		}
	}
	return total
}

// CatalogIncome is the song-only share of the income rate; prestige uses it
// to size the retiring act's legacy rate.
func CatalogIncome(st *State) float64 {
	total := 0.0
	for _, s := range st.Songs {
		total += s.IncomeRate
	}
	return total
}

func FanRate(st *State) float64 {
	total := 0.0
	for _, s := range st.Songs {
		total += s.FanRate
	}
	return total
}

// ApplyIncome must stay exactly linear in dt: N sub-ticks summing to T must
// earn the same as one tick of T.
func ApplyIncome(st *State, dt time.Duration) {
	st.Cash += IncomeRate(st) * DynamicIncomeMult(st) * dt.Seconds()
}

func ApplyFanGrowth(st *State, dt time.Duration) {
	st.Fans += FanRate(st) * DynamicFanMult(st) * dt.Seconds()
	if st.Fans > st.PeakFans {
		st.PeakFans = st.Fans
	}
}

// ApplyCrossPromo drips fans from retired artists' peak audiences onto the
// current act. Not subject to the boost stack.
func ApplyCrossPromo(st *State, dt time.Duration) {
	total := 0.0
	for _, a := range st.RetiredArtists {
		total += a.PeakFans
	}
	if total == 0 {
		return
	}
	st.Fans += total * CrossPromoPerSecond * dt.Seconds()
	if st.Fans > st.PeakFans {
		st.PeakFans = st.Fans
	}
}
