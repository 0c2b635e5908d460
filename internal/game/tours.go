package game

import (
	"fmt"

	"github.com/google/uuid"
)

func MaxConcurrentTours(tier int) int {
	switch {
	case tier >= 4:
		return 3
	case tier >= 2:
		return 2
	default:
		return 1
	}
}

func ActiveTours(st *State) int {
	n := 0
	for _, t := range st.Tours {
		if t.CompletedAt == 0 {
			n++
		}
	}
	return n
}

// StartTour bakes the tour's income rate from the state at start time; the
// rate is fixed for the tour's lifetime.
func StartTour(st *State, now int64) (*Tour, error) {
	if !st.Unlocks.Tours {
		return nil, fmt.Errorf("%w: tours", ErrLocked)
	}
	if ActiveTours(st) >= MaxConcurrentTours(st.Tier) {
		return nil, fmt.Errorf("%w: tour capacity reached", ErrPrecondition)
	}
	if st.Cash < TourCost {
		return nil, fmt.Errorf("%w: need %.2f", ErrInsufficientFunds, TourCost)
	}
	st.Cash -= TourCost

	rate := (TourBaseRate + st.Fans*TourPerFan + float64(len(st.Songs))*TourPerSong) * PrestigeMult(st)
	soldOut := st.Fans >= SelloutFans
	if soldOut {
		rate *= SelloutMult
	}
	t := Tour{
		ID:         uuid.NewString(),
		StartedAt:  now,
		IncomeRate: rate,
		SoldOut:    soldOut,
	}
	st.Tours = append(st.Tours, t)
	return &st.Tours[len(st.Tours)-1], nil
}

// ProcessTours marks tours completed once their fixed duration has elapsed.
// Completed tours stay in the list; the income sum filters on CompletedAt.
func ProcessTours(st *State, now int64) {
	for i := range st.Tours {
		t := &st.Tours[i]
		if t.CompletedAt == 0 && now-t.StartedAt >= TourDurationMS {
			t.CompletedAt = t.StartedAt + TourDurationMS
			st.ToursCompleted++
		}
	}
}
