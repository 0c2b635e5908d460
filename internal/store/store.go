// Package store persists the game state snapshot. The whole State is the
// serialization unit; every load path validates the payload structurally
// before trusting it and falls back to a backup copy when validation fails.
package store

import (
	"context"
	"encoding/json"
	"fmt"

	"headliner/internal/game"
)

type Store interface {
	// Save persists the snapshot, keeping the previous good copy as backup.
	Save(ctx context.Context, st *game.State) error
	// Load returns the most recent valid snapshot, or (nil, nil) when no
	// usable snapshot exists and the caller should start fresh.
	Load(ctx context.Context) (*game.State, error)
}

func Marshal(st *game.State) ([]byte, error) {
	return json.Marshal(st)
}

// requiredNumbers are the scalar fields a snapshot must carry with JSON
// number type before we trust it.
var requiredNumbers = []string{
	"version", "created_at_ms", "last_tick_ms",
	"cash", "fans", "peak_fans",
	"tier", "gear_level", "resets", "phase", "control",
}

var requiredArrays = []string{
	"songs", "queue", "retired_artists", "properties", "boosts", "albums", "tours",
}

// ValidateSnapshot checks the structural shape of a raw snapshot: required
// scalars present with primitive number type, collections that are present
// are arrays, and a sane schema version.
func ValidateSnapshot(raw []byte) error {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("%w: %v", game.ErrInvalidSnapshot, err)
	}
	for _, field := range requiredNumbers {
		v, ok := doc[field]
		if !ok {
			return fmt.Errorf("%w: missing field %q", game.ErrInvalidSnapshot, field)
		}
		var n float64
		if err := json.Unmarshal(v, &n); err != nil {
			return fmt.Errorf("%w: field %q is not a number", game.ErrInvalidSnapshot, field)
		}
	}
	for _, field := range requiredArrays {
		v, ok := doc[field]
		if !ok || string(v) == "null" {
			continue
		}
		var arr []json.RawMessage
		if err := json.Unmarshal(v, &arr); err != nil {
			return fmt.Errorf("%w: field %q is not an array", game.ErrInvalidSnapshot, field)
		}
	}
	var version struct {
		Version int `json:"version"`
	}
	if err := json.Unmarshal(raw, &version); err != nil || version.Version < 1 || version.Version > game.SchemaVersion {
		return fmt.Errorf("%w: unsupported schema version", game.ErrInvalidSnapshot)
	}
	return nil
}

// Decode validates and unmarshals a snapshot, normalising nil collections
// so the engine never sees a malformed aggregate.
func Decode(raw []byte) (*game.State, error) {
	if err := ValidateSnapshot(raw); err != nil {
		return nil, err
	}
	var st game.State
	if err := json.Unmarshal(raw, &st); err != nil {
		return nil, fmt.Errorf("%w: %v", game.ErrInvalidSnapshot, err)
	}
	if st.Songs == nil {
		st.Songs = []game.Song{}
	}
	if st.Queue == nil {
		st.Queue = []game.QueuedSong{}
	}
	if st.RetiredArtists == nil {
		st.RetiredArtists = []game.RetiredArtist{}
	}
	if st.Properties == nil {
		st.Properties = []game.Property{}
	}
	if st.Boosts == nil {
		st.Boosts = []game.Boost{}
	}
	if st.Albums == nil {
		st.Albums = []game.Album{}
	}
	if st.Tours == nil {
		st.Tours = []game.Tour{}
	}
	if st.BoostUsage == nil {
		st.BoostUsage = map[string]int{}
	}
	return &st, nil
}
