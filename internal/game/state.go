// Package game is the simulation core: a plain serializable state aggregate
// and explicit mutation functions over it. Nothing in this package does I/O,
// starts goroutines, or reads clocks; callers pass `now` in unix milliseconds
// and elapsed time as a time.Duration.
package game

import (
	"errors"
	"time"
)

const SchemaVersion = 2

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrLocked            = errors.New("feature locked")
	ErrPrecondition      = errors.New("precondition not met")
	ErrNotFound          = errors.New("not found")
	ErrInvalidSnapshot   = errors.New("invalid snapshot")
)

type Song struct {
	ID         string  `json:"id"`
	Genre      string  `json:"genre"`
	CreatedAt  int64   `json:"created_at_ms"`
	IncomeRate float64 `json:"income_rate"`
	FanRate    float64 `json:"fan_rate"`
}

type QueuedSong struct {
	ID         string  `json:"id"`
	ProgressMS float64 `json:"progress_ms"`
	DurationMS float64 `json:"duration_ms"`
}

type RetiredArtist struct {
	Name       string  `json:"name"`
	PeakFans   float64 `json:"peak_fans"`
	SongCount  int     `json:"song_count"`
	IncomeRate float64 `json:"income_rate"`
	CreatedAt  int64   `json:"created_at_ms"`
	RetiredAt  int64   `json:"retired_at_ms"`
}

type Property struct {
	Type        string  `json:"type"`
	Name        string  `json:"name"`
	Cost        float64 `json:"cost"`
	IncomeRate  float64 `json:"income_rate"`
	Control     float64 `json:"control"`
	PurchasedAt int64   `json:"purchased_at_ms"`
}

type Boost struct {
	ID          string  `json:"id"`
	Type        string  `json:"type"`
	ActivatedAt int64   `json:"activated_at_ms"`
	DurationMS  int64   `json:"duration_ms"`
	IncomeMult  float64 `json:"income_mult"`
	FanMult     float64 `json:"fan_mult"`
}

type Album struct {
	ID         string  `json:"id"`
	SongCount  int     `json:"song_count"`
	Payout     float64 `json:"payout"`
	Variants   int     `json:"variants"`
	ReleasedAt int64   `json:"released_at_ms"`
	ReRelease  bool    `json:"re_release"`
}

// Tour income rate is fixed at start time. CompletedAt of zero means the
// tour is still running; completed tours stay in the list and are simply
// excluded from the income sum.
type Tour struct {
	ID          string  `json:"id"`
	StartedAt   int64   `json:"started_at_ms"`
	CompletedAt int64   `json:"completed_at_ms"`
	IncomeRate  float64 `json:"income_rate"`
	SoldOut     bool    `json:"sold_out"`
}

// Unlocks are one-way latches: fields transition false to true only.
type Unlocks struct {
	Boosts     bool `json:"boosts"`
	Albums     bool `json:"albums"`
	Trend      bool `json:"trend"`
	Tours      bool `json:"tours"`
	Properties bool `json:"properties"`
	Prestige   bool `json:"prestige"`
}

// State is the root aggregate. It is owned exclusively by the engine during
// a tick; external collaborators read deep clones or call mutation entry
// points. Everything here is plain data so the whole struct is the
// serialization unit.
type State struct {
	Version   int   `json:"version"`
	CreatedAt int64 `json:"created_at_ms"`
	LastTick  int64 `json:"last_tick_ms"`

	Cash     float64 `json:"cash"`
	Fans     float64 `json:"fans"`
	PeakFans float64 `json:"peak_fans"`

	Songs          []Song          `json:"songs"`
	Queue          []QueuedSong    `json:"queue"`
	RetiredArtists []RetiredArtist `json:"retired_artists"`
	Properties     []Property      `json:"properties"`
	Boosts         []Boost         `json:"boosts"`
	BoostUsage     map[string]int  `json:"boost_usage"`
	Albums         []Album         `json:"albums"`
	Tours          []Tour          `json:"tours"`
	ToursCompleted int             `json:"tours_completed"`

	Tier      int     `json:"tier"`
	GearLevel int     `json:"gear_level"`
	Unlocks   Unlocks `json:"unlocks"`
	Resets    int     `json:"resets"`
	Phase     int     `json:"phase"`
	Control   float64 `json:"control"`

	TrendGenre string `json:"trend_genre"`
	TrendSetAt int64  `json:"trend_set_at_ms"`

	// Album cooldown/milestone tracking lives in the state on purpose so a
	// loaded save does not forget it.
	LastAlbumAt        int64 `json:"last_album_at_ms"`
	LastAlbumSongCount int   `json:"last_album_song_count"`
}

func New(now time.Time) *State {
	ms := now.UnixMilli()
	return &State{
		Version:        SchemaVersion,
		CreatedAt:      ms,
		LastTick:       ms,
		Cash:           StartingCash,
		Songs:          []Song{},
		Queue:          []QueuedSong{},
		RetiredArtists: []RetiredArtist{},
		Properties:     []Property{},
		Boosts:         []Boost{},
		BoostUsage:     map[string]int{},
		Albums:         []Album{},
		Tours:          []Tour{},
	}
}

func (st *State) Clone() *State {
	out := *st
	out.Songs = append([]Song(nil), st.Songs...)
	out.Queue = append([]QueuedSong(nil), st.Queue...)
	out.RetiredArtists = append([]RetiredArtist(nil), st.RetiredArtists...)
	out.Properties = append([]Property(nil), st.Properties...)
	out.Boosts = append([]Boost(nil), st.Boosts...)
	out.Albums = append([]Album(nil), st.Albums...)
	out.Tours = append([]Tour(nil), st.Tours...)
	out.BoostUsage = make(map[string]int, len(st.BoostUsage))
	for k, v := range st.BoostUsage {
		out.BoostUsage[k] = v
	}
	return &out
}
