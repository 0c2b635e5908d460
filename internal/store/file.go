package store

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"headliner/internal/game"
)

// FileStore keeps the snapshot in a JSON file, with the previous good copy
// as <path>.bak. Writes are atomic: temp file then rename.
type FileStore struct {
	Path string
	log  *slog.Logger
}

func NewFileStore(path string, logger *slog.Logger) *FileStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileStore{Path: path, log: logger}
}

func (f *FileStore) backupPath() string { return f.Path + ".bak" }

func (f *FileStore) Save(_ context.Context, st *game.State) error {
	raw, err := Marshal(st)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	dir := filepath.Dir(f.Path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create save dir: %w", err)
	}
	// Demote the current primary to backup before replacing it, but only
	// if it still validates; a corrupt primary must not clobber a good
	// backup.
	if prev, err := os.ReadFile(f.Path); err == nil {
		if ValidateSnapshot(prev) == nil {
			if err := os.WriteFile(f.backupPath(), prev, 0o600); err != nil {
				return fmt.Errorf("write backup: %w", err)
			}
		}
	}
	tmp, err := os.CreateTemp(dir, ".headliner-save-*")
	if err != nil {
		return fmt.Errorf("create temp save: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close snapshot: %w", err)
	}
	if err := os.Rename(tmpName, f.Path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}

// Load prefers the primary, falls back to the backup when the primary is
// missing or fails validation, and returns (nil, nil) when neither is
// usable so the caller starts fresh.
func (f *FileStore) Load(_ context.Context) (*game.State, error) {
	if st, ok := f.tryLoad(f.Path); ok {
		return st, nil
	}
	if st, ok := f.tryLoad(f.backupPath()); ok {
		f.log.Warn("primary save unusable, restored from backup", "path", f.Path)
		return st, nil
	}
	return nil, nil
}

func (f *FileStore) tryLoad(path string) (*game.State, bool) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			f.log.Warn("read save failed", "path", path, "err", err)
		}
		return nil, false
	}
	st, err := Decode(raw)
	if err != nil {
		f.log.Warn("save failed validation", "path", path, "err", err)
		return nil, false
	}
	return st, true
}
