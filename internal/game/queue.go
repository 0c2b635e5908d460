package game

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

func SongCost(st *State) float64 {
	if st.Tier >= FreeSongsTier {
		return 0
	}
	return tierSpec(st.Tier).SongCost
}

// WriteSongs deducts the cost and appends count zero-progress entries with
// the current tier's writing duration.
func WriteSongs(st *State, count int) error {
	if count < 1 {
		return fmt.Errorf("%w: count must be >= 1", ErrPrecondition)
	}
	cost := SongCost(st) * float64(count)
	if st.Cash < cost {
		return fmt.Errorf("%w: need %.2f", ErrInsufficientFunds, cost)
	}
	st.Cash -= cost
	duration := tierSpec(st.Tier).SongDurationMS
	for i := 0; i < count; i++ {
		st.Queue = append(st.Queue, QueuedSong{
			ID:         uuid.NewString(),
			DurationMS: duration,
		})
	}
	return nil
}

// AdvanceQueue adds dt to the head entry only. At most one song completes
// per tick; surplus progress carries into the next head entry so idle
// catch-up stays bounded per tick. Rates are baked at completion time from
// the multiplier state of that instant and never change afterwards.
func AdvanceQueue(st *State, now int64, dt time.Duration) {
	if len(st.Queue) == 0 {
		return
	}
	head := &st.Queue[0]
	head.ProgressMS += float64(dt) / float64(time.Millisecond)
	if head.ProgressMS < head.DurationMS {
		return
	}
	surplus := head.ProgressMS - head.DurationMS
	st.Queue = st.Queue[1:]
	if len(st.Queue) > 0 {
		st.Queue[0].ProgressMS += surplus
	}

	genre := genres[len(st.Songs)%len(genres)]
	mult := TierMult(st) * PrestigeMult(st) * TrendMult(st, genre, now)
	st.Songs = append(st.Songs, Song{
		ID:         uuid.NewString(),
		Genre:      genre,
		CreatedAt:  now,
		IncomeRate: SongBaseIncome * mult,
		FanRate:    SongBaseFans * mult,
	})
}
