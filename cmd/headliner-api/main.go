package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"headliner/internal/api"
	"headliner/internal/config"
	"headliner/internal/engine"
	"headliner/internal/game"
	"headliner/internal/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadAPIFromEnv()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	var saveStore store.Store
	if cfg.DatabaseURL != "" {
		pool, err := store.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("db connect failed", "err", err)
			os.Exit(1)
		}
		defer pool.Close()
		pg, err := store.NewPGStore(ctx, pool, cfg.SaveSlot, logger)
		if err != nil {
			logger.Error("pg store init failed", "err", err)
			os.Exit(1)
		}
		saveStore = pg
	} else {
		saveStore = store.NewFileStore(cfg.SavePath, logger)
	}

	st, err := saveStore.Load(ctx)
	if err != nil {
		logger.Error("load snapshot failed", "err", err)
		os.Exit(1)
	}
	if st == nil {
		st = game.New(time.Now())
		logger.Info("starting fresh game")
	} else {
		logger.Info("loaded snapshot", "cash", st.Cash, "fans", st.Fans, "songs", len(st.Songs))
	}

	eng := engine.New(st, engine.SystemClock(), logger, engine.Config{
		TickEvery:    cfg.TickEvery,
		MaxTickDelta: cfg.MaxTickDelta,
		SaveEvery:    cfg.SaveEvery,
	})
	eng.OnSave(func(snap *game.State) {
		saveCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := saveStore.Save(saveCtx, snap); err != nil {
			logger.Error("save failed", "err", err)
		}
	})
	eng.Start()
	defer eng.Stop()

	server := api.New(cfg, logger, eng, saveStore)
	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	logger.Info("headliner api listening", "addr", cfg.Addr)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server failed", "err", err)
		os.Exit(1)
	}
}
