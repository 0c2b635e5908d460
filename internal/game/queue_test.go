package game

import (
	"errors"
	"testing"
	"time"
)

func TestWriteSongsValidation(t *testing.T) {
	st := testState()
	if err := WriteSongs(st, 0); !errors.Is(err, ErrPrecondition) {
		t.Fatalf("count 0: got %v, want ErrPrecondition", err)
	}

	st.Cash = 5 // tier 0 song costs 10
	if err := WriteSongs(st, 1); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("broke: got %v, want ErrInsufficientFunds", err)
	}
	if st.Cash != 5 {
		t.Fatalf("failed write mutated cash: %v", st.Cash)
	}
}

func TestWriteSongsDeductsAndQueues(t *testing.T) {
	st := testState()
	st.Cash = 100
	if err := WriteSongs(st, 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.Cash != 70 {
		t.Fatalf("cash = %v, want 70", st.Cash)
	}
	if len(st.Queue) != 3 {
		t.Fatalf("queue = %d, want 3", len(st.Queue))
	}
	for _, q := range st.Queue {
		if q.ProgressMS != 0 || q.DurationMS != 30_000 {
			t.Fatalf("queued song %+v, want zero progress, 30s duration", q)
		}
	}
}

func TestWriteSongsFreeAtHighTier(t *testing.T) {
	st := testState()
	st.Tier = FreeSongsTier
	st.Cash = 0
	if err := WriteSongs(st, 5); err != nil {
		t.Fatalf("free tier write failed: %v", err)
	}
	if st.Cash != 0 {
		t.Fatalf("free write charged: %v", st.Cash)
	}
}

func TestAdvanceQueueOneCompletionPerTick(t *testing.T) {
	st := testState()
	st.Queue = []QueuedSong{
		{ID: "a", DurationMS: 1_000},
		{ID: "b", DurationMS: 1_000},
		{ID: "c", DurationMS: 1_000},
	}

	// A huge delta completes only the head; the surplus carries forward.
	AdvanceQueue(st, 10_000, 10*time.Second)
	if len(st.Songs) != 1 {
		t.Fatalf("songs = %d, want 1", len(st.Songs))
	}
	if len(st.Queue) != 2 {
		t.Fatalf("queue = %d, want 2", len(st.Queue))
	}
	if st.Queue[0].ProgressMS != 9_000 {
		t.Fatalf("carried progress = %v, want 9000", st.Queue[0].ProgressMS)
	}

	// Next tick drains the pre-loaded head immediately.
	AdvanceQueue(st, 10_100, 100*time.Millisecond)
	if len(st.Songs) != 2 {
		t.Fatalf("songs = %d, want 2", len(st.Songs))
	}
	if st.Queue[0].ProgressMS != 8_100 {
		t.Fatalf("carried progress = %v, want 8100", st.Queue[0].ProgressMS)
	}
}

func TestAdvanceQueueHeadOnly(t *testing.T) {
	st := testState()
	st.Queue = []QueuedSong{
		{ID: "a", DurationMS: 30_000},
		{ID: "b", DurationMS: 30_000},
	}
	AdvanceQueue(st, 100, 100*time.Millisecond)
	if st.Queue[0].ProgressMS != 100 {
		t.Fatalf("head progress = %v, want 100", st.Queue[0].ProgressMS)
	}
	if st.Queue[1].ProgressMS != 0 {
		t.Fatalf("tail progressed: %v", st.Queue[1].ProgressMS)
	}
}

func TestBakedRatesSurviveUpgrades(t *testing.T) {
	st := testState()
	st.Queue = []QueuedSong{{ID: "a", DurationMS: 100}}
	AdvanceQueue(st, 100, 100*time.Millisecond)
	if len(st.Songs) != 1 {
		t.Fatalf("songs = %d, want 1", len(st.Songs))
	}
	baked := st.Songs[0].IncomeRate
	if !almostEqual(baked, SongBaseIncome) {
		t.Fatalf("baked rate = %v, want %v", baked, SongBaseIncome)
	}

	// Jumping tiers must not touch already-baked songs.
	st.Tier = 3
	st.GearLevel = 2
	if st.Songs[0].IncomeRate != baked {
		t.Fatalf("baked rate changed after upgrade: %v", st.Songs[0].IncomeRate)
	}

	// But a song completed now bakes the new multiplier.
	st.Queue = []QueuedSong{{ID: "b", DurationMS: 100}}
	AdvanceQueue(st, 200, 100*time.Millisecond)
	want := SongBaseIncome * TierMult(st)
	if !almostEqual(st.Songs[1].IncomeRate, want) {
		t.Fatalf("new song rate = %v, want %v", st.Songs[1].IncomeRate, want)
	}
}

func TestQueueBakesTrendBonus(t *testing.T) {
	st := testState()
	st.TrendGenre = genres[0]
	st.TrendSetAt = 1_000
	st.Queue = []QueuedSong{{ID: "a", DurationMS: 100}}

	// First song bakes genre[0], which is trending at full strength.
	AdvanceQueue(st, 1_000, 100*time.Millisecond)
	want := SongBaseIncome * TrendPeakMult
	if !almostEqual(st.Songs[0].IncomeRate, want) {
		t.Fatalf("trending bake = %v, want %v", st.Songs[0].IncomeRate, want)
	}

	// Second song rotates to genre[1]: no bonus.
	st.Queue = []QueuedSong{{ID: "b", DurationMS: 100}}
	AdvanceQueue(st, 1_100, 100*time.Millisecond)
	if !almostEqual(st.Songs[1].IncomeRate, SongBaseIncome) {
		t.Fatalf("off-trend bake = %v, want %v", st.Songs[1].IncomeRate, SongBaseIncome)
	}
}
