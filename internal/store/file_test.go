package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"headliner/internal/game"
)

func testStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(filepath.Join(t.TempDir(), "save.json"), nil)
}

func TestFileStoreRoundTrip(t *testing.T) {
	fs := testStore(t)
	ctx := context.Background()

	st := game.New(time.UnixMilli(42))
	st.Cash = 123.45
	st.Songs = []game.Song{{ID: "s1", Genre: "pop", IncomeRate: 0.3}}
	st.BoostUsage["viral_push"] = 2

	if err := fs.Save(ctx, st); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	got, err := fs.Load(ctx)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got == nil {
		t.Fatal("load returned nil for existing save")
	}
	if got.Cash != 123.45 || len(got.Songs) != 1 || got.BoostUsage["viral_push"] != 2 {
		t.Fatalf("round trip lost data: %+v", got)
	}
}

func TestFileStoreFreshStart(t *testing.T) {
	fs := testStore(t)
	st, err := fs.Load(context.Background())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if st != nil {
		t.Fatalf("expected nil state for missing save, got %+v", st)
	}
}

func TestFileStoreBackupFallback(t *testing.T) {
	fs := testStore(t)
	ctx := context.Background()

	first := game.New(time.UnixMilli(1))
	first.Cash = 111
	if err := fs.Save(ctx, first); err != nil {
		t.Fatalf("first save failed: %v", err)
	}
	second := game.New(time.UnixMilli(2))
	second.Cash = 222
	if err := fs.Save(ctx, second); err != nil {
		t.Fatalf("second save failed: %v", err)
	}

	// Corrupt the primary: the previous good copy must come back.
	if err := os.WriteFile(fs.Path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("corrupt primary: %v", err)
	}
	got, err := fs.Load(ctx)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got == nil || got.Cash != 111 {
		t.Fatalf("backup fallback got %+v, want cash 111", got)
	}
}

func TestFileStoreCorruptPrimaryKeepsBackup(t *testing.T) {
	fs := testStore(t)
	ctx := context.Background()

	good := game.New(time.UnixMilli(1))
	good.Cash = 111
	if err := fs.Save(ctx, good); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := fs.Save(ctx, good); err != nil {
		t.Fatalf("second save failed: %v", err)
	}

	// A corrupt primary must not be demoted over the good backup on the
	// next save.
	if err := os.WriteFile(fs.Path, []byte("garbage"), 0o600); err != nil {
		t.Fatalf("corrupt primary: %v", err)
	}
	next := game.New(time.UnixMilli(3))
	if err := fs.Save(ctx, next); err != nil {
		t.Fatalf("save over corrupt primary failed: %v", err)
	}
	raw, err := os.ReadFile(fs.Path + ".bak")
	if err != nil {
		t.Fatalf("read backup: %v", err)
	}
	if ValidateSnapshot(raw) != nil {
		t.Fatal("backup clobbered with invalid payload")
	}
}

func TestFileStoreBothUnusable(t *testing.T) {
	fs := testStore(t)
	ctx := context.Background()
	if err := os.MkdirAll(filepath.Dir(fs.Path), 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(fs.Path, []byte("junk"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(fs.Path+".bak", []byte(`{"version":99}`), 0o600); err != nil {
		t.Fatal(err)
	}
	st, err := fs.Load(ctx)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if st != nil {
		t.Fatalf("expected fresh start, got %+v", st)
	}
}

func TestValidateSnapshot(t *testing.T) {
	good, err := Marshal(game.New(time.UnixMilli(1)))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := ValidateSnapshot(good); err != nil {
		t.Fatalf("valid snapshot rejected: %v", err)
	}

	bad := [][]byte{
		[]byte(`not json`),
		[]byte(`{}`),
		[]byte(`{"version":"2"}`),
		[]byte(`{"version":2,"created_at_ms":1,"last_tick_ms":1,"cash":"lots","fans":0,"peak_fans":0,"tier":0,"gear_level":0,"resets":0,"phase":0,"control":0}`),
		[]byte(`{"version":2,"created_at_ms":1,"last_tick_ms":1,"cash":0,"fans":0,"peak_fans":0,"tier":0,"gear_level":0,"resets":0,"phase":0,"control":0,"songs":{}}`),
		[]byte(`{"version":99,"created_at_ms":1,"last_tick_ms":1,"cash":0,"fans":0,"peak_fans":0,"tier":0,"gear_level":0,"resets":0,"phase":0,"control":0}`),
	}
	for i, raw := range bad {
		if err := ValidateSnapshot(raw); !errors.Is(err, game.ErrInvalidSnapshot) {
			t.Fatalf("case %d: got %v, want ErrInvalidSnapshot", i, err)
		}
	}
}

func TestDecodeNormalizesCollections(t *testing.T) {
	raw := []byte(`{"version":2,"created_at_ms":1,"last_tick_ms":1,"cash":50,"fans":0,"peak_fans":0,"tier":0,"gear_level":0,"resets":0,"phase":0,"control":0}`)
	st, err := Decode(raw)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if st.Songs == nil || st.Queue == nil || st.Boosts == nil || st.BoostUsage == nil {
		t.Fatal("nil collections not normalized")
	}
}
