package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"headliner/internal/config"
	"headliner/internal/engine"
	"headliner/internal/game"
	"headliner/internal/store"
)

// Headless runner: ticks the engine against the save file, either
// continuously or for a fixed tick budget (HEADLINER_SIM_TICKS). Useful for
// idle catch-up after long offline periods and for balance probing.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadAPIFromEnv()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	fileStore := store.NewFileStore(cfg.SavePath, logger)
	st, err := fileStore.Load(ctx)
	if err != nil {
		logger.Error("load snapshot failed", "err", err)
		os.Exit(1)
	}
	if st == nil {
		st = game.New(time.Now())
		logger.Info("starting fresh game")
	}

	eng := engine.New(st, engine.SystemClock(), logger, engine.Config{
		TickEvery:    cfg.TickEvery,
		MaxTickDelta: cfg.MaxTickDelta,
		SaveEvery:    cfg.SaveEvery,
	})
	eng.OnSave(func(snap *game.State) {
		saveCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := fileStore.Save(saveCtx, snap); err != nil {
			logger.Error("save failed", "err", err)
		}
	})

	tickBudget := 0
	if v := strings.TrimSpace(os.Getenv("HEADLINER_SIM_TICKS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			tickBudget = n
		}
	}

	if tickBudget > 0 {
		eng.Start()
		deadline := time.After(time.Duration(tickBudget) * cfg.TickEvery)
		select {
		case <-ctx.Done():
		case <-deadline:
		}
		eng.Stop()
		snap := eng.Snapshot()
		logger.Info("sim run complete",
			"ticks", tickBudget,
			"cash", snap.Cash,
			"fans", snap.Fans,
			"songs", len(snap.Songs),
			"control", snap.Control)
		return
	}

	eng.Start()
	logger.Info("sim started", "tick_every", cfg.TickEvery.String(), "save_path", cfg.SavePath)
	<-ctx.Done()
	eng.Stop()
	logger.Info("sim shutdown")
}
