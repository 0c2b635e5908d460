package game

const (
	StartingCash = 50.0

	SongBaseIncome = 0.10
	SongBaseFans   = 0.02

	// Writing songs is permanently free from this tier on.
	FreeSongsTier = 4

	TrendPeakMult  = 3.0
	TrendWindowMS  = 120_000
	TrendScoutCost = 200.0

	PrestigeStep      = 0.25
	LegacyIncomeRatio = 0.10
	MaxRetiredArtists = 5

	// Retired artists keep funnelling a trickle of their old audience to
	// the current act, per peak fan per second.
	CrossPromoPerSecond = 0.0002

	AlbumMinSongs   = 10
	AlbumSongStep   = 10
	AlbumCooldownMS = 60_000
	AlbumSongCap    = 100
	AlbumPerSong    = 25.0
	AlbumPerFan     = 0.05
	ReReleaseRatio  = 0.5

	TourCost       = 500.0
	TourDurationMS = 120_000
	TourBaseRate   = 1.0
	TourPerFan     = 0.002
	TourPerSong    = 0.05
	SelloutFans    = 50_000.0
	SelloutMult    = 1.5

	VictoryControl = 100.0
)

var genres = []string{"pop", "hiphop", "indie", "electronic", "rnb", "rock"}

type TierSpec struct {
	Name           string
	Mult           float64
	GearStep       float64
	MaxGear        int
	GearCost       float64
	EntryCost      float64
	SongCost       float64
	SongDurationMS float64
}

var tierCatalog = []TierSpec{
	{Name: "Bedroom", Mult: 1, GearStep: 0.25, MaxGear: 3, GearCost: 100, EntryCost: 0, SongCost: 10, SongDurationMS: 30_000},
	{Name: "Garage", Mult: 2.5, GearStep: 0.25, MaxGear: 3, GearCost: 400, EntryCost: 1_000, SongCost: 25, SongDurationMS: 25_000},
	{Name: "Indie Studio", Mult: 6, GearStep: 0.25, MaxGear: 4, GearCost: 2_500, EntryCost: 10_000, SongCost: 60, SongDurationMS: 20_000},
	{Name: "Pro Studio", Mult: 15, GearStep: 0.30, MaxGear: 4, GearCost: 15_000, EntryCost: 75_000, SongCost: 150, SongDurationMS: 15_000},
	{Name: "Hit Factory", Mult: 40, GearStep: 0.30, MaxGear: 5, GearCost: 80_000, EntryCost: 400_000, SongCost: 0, SongDurationMS: 10_000},
	{Name: "Legendary Complex", Mult: 100, GearStep: 0.40, MaxGear: 5, GearCost: 500_000, EntryCost: 2_000_000, SongCost: 0, SongDurationMS: 6_000},
}

type BoostSpec struct {
	Type       string
	Name       string
	BaseCost   float64
	CostScale  float64
	DurationMS int64
	IncomeMult float64
	FanMult    float64
}

var boostCatalog = []BoostSpec{
	{Type: "studio_session", Name: "Late Night Session", BaseCost: 50, CostScale: 1.5, DurationMS: 30_000, IncomeMult: 2.0, FanMult: 1.0},
	{Type: "viral_push", Name: "Viral Push", BaseCost: 100, CostScale: 1.6, DurationMS: 20_000, IncomeMult: 1.0, FanMult: 3.0},
	{Type: "press_run", Name: "Press Run", BaseCost: 250, CostScale: 1.7, DurationMS: 45_000, IncomeMult: 1.5, FanMult: 1.5},
}

type PropertySpec struct {
	Type       string   `json:"type"`
	Name       string   `json:"name"`
	Cost       float64  `json:"cost"`
	IncomeRate float64  `json:"income_rate"`
	Control    float64  `json:"control"`
	Requires   []string `json:"requires,omitempty"`
}

// Requires lists form a DAG rooted at home_studio; validated at purchase
// time through CanPurchase.
var propertyCatalog = []PropertySpec{
	{Type: "home_studio", Name: "Home Studio", Cost: 1_000, IncomeRate: 1, Control: 2},
	{Type: "record_label", Name: "Record Label", Cost: 25_000, IncomeRate: 10, Control: 5, Requires: []string{"home_studio"}},
	{Type: "recording_complex", Name: "Recording Complex", Cost: 100_000, IncomeRate: 40, Control: 8, Requires: []string{"record_label"}},
	{Type: "radio_station", Name: "Radio Station", Cost: 500_000, IncomeRate: 150, Control: 12, Requires: []string{"record_label"}},
	{Type: "streaming_service", Name: "Streaming Service", Cost: 2_000_000, IncomeRate: 600, Control: 15, Requires: []string{"radio_station"}},
	{Type: "festival_grounds", Name: "Festival Grounds", Cost: 5_000_000, IncomeRate: 1_200, Control: 18, Requires: []string{"recording_complex"}},
}

// Peak-fan thresholds; phase is the count of thresholds crossed.
var phaseThresholds = []float64{1_000, 10_000, 100_000, 1_000_000, 10_000_000}

type scoreStep struct {
	Threshold float64
	Points    float64
}

// Cumulative: crossing a threshold adds its points on top of all lower ones.
var fanScoreTable = []scoreStep{
	{Threshold: 1_000, Points: 2},
	{Threshold: 10_000, Points: 4},
	{Threshold: 100_000, Points: 6},
	{Threshold: 1_000_000, Points: 8},
	{Threshold: 10_000_000, Points: 10},
}

const (
	pointsPerTier  = 3.0
	pointsPerPhase = 4.0
	pointsPerReset = 5.0
)

func BoostTypes() []BoostSpec {
	return append([]BoostSpec(nil), boostCatalog...)
}

func boostSpec(typ string) (BoostSpec, bool) {
	for _, b := range boostCatalog {
		if b.Type == typ {
			return b, true
		}
	}
	return BoostSpec{}, false
}

func propertySpec(typ string) (PropertySpec, bool) {
	for _, p := range propertyCatalog {
		if p.Type == typ {
			return p, true
		}
	}
	return PropertySpec{}, false
}

func tierSpec(tier int) TierSpec {
	if tier < 0 {
		tier = 0
	}
	if tier >= len(tierCatalog) {
		tier = len(tierCatalog) - 1
	}
	return tierCatalog[tier]
}
