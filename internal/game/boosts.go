package game

import (
	"fmt"
	"math"

	"github.com/google/uuid"
)

// BoostCost scales geometrically with how often the type has been used this
// run; no cooldown, repeat use is always allowed.
func BoostCost(st *State, spec BoostSpec) float64 {
	uses := st.BoostUsage[spec.Type]
	return math.Floor(spec.BaseCost * math.Pow(spec.CostScale, float64(uses)))
}

func ActivateBoost(st *State, now int64, typ string) (*Boost, error) {
	spec, ok := boostSpec(typ)
	if !ok {
		return nil, fmt.Errorf("%w: boost type %q", ErrNotFound, typ)
	}
	if !st.Unlocks.Boosts {
		return nil, fmt.Errorf("%w: boosts", ErrLocked)
	}
	cost := BoostCost(st, spec)
	if st.Cash < cost {
		return nil, fmt.Errorf("%w: need %.2f", ErrInsufficientFunds, cost)
	}
	st.Cash -= cost
	b := Boost{
		ID:          uuid.NewString(),
		Type:        spec.Type,
		ActivatedAt: now,
		DurationMS:  spec.DurationMS,
		IncomeMult:  spec.IncomeMult,
		FanMult:     spec.FanMult,
	}
	st.Boosts = append(st.Boosts, b)
	if st.BoostUsage == nil {
		st.BoostUsage = map[string]int{}
	}
	st.BoostUsage[spec.Type]++
	return &b, nil
}

// PruneBoosts drops every boost whose duration had elapsed by asOf. The
// engine passes the start of the current tick interval, so a boost earns
// for exactly its duration when ticks align with the boundary.
func PruneBoosts(st *State, asOf int64) {
	kept := st.Boosts[:0]
	for _, b := range st.Boosts {
		if asOf-b.ActivatedAt < b.DurationMS {
			kept = append(kept, b)
		}
	}
	st.Boosts = kept
}
