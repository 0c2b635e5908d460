package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	cl "headliner/internal/cli"
	"headliner/internal/config"
	"headliner/internal/engine"
	"headliner/internal/game"
	"headliner/internal/store"

	"github.com/spf13/cobra"
)

func main() {
	cfg := config.LoadCLIFromEnv()
	apiBase := cfg.APIBaseURL
	savePath := cfg.SavePath

	root := &cobra.Command{
		Use:          "hdl",
		Short:        "Headliner idle music-career game",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&apiBase, "api", apiBase, "headliner-api base URL")
	root.PersistentFlags().StringVar(&savePath, "save", savePath, "local save file path")

	root.AddCommand(
		newPlayCmd(&savePath),
		newSimCmd(&savePath),
		newDashCmd(&apiBase),
		newStateCmd(&apiBase),
		newWriteCmd(&apiBase),
		newBoostCmd(&apiBase),
		newBuyCmd(&apiBase),
		newUpgradeCmd(&apiBase),
		newTourCmd(&apiBase),
		newTrendCmd(&apiBase),
		newReReleaseCmd(&apiBase),
		newPrestigeCmd(&apiBase),
	)

	if err := root.Execute(); err != nil {
		printError("error: " + err.Error())
		os.Exit(1)
	}
}

func newClient(apiBase *string) *cl.Client {
	return cl.NewClient(*apiBase)
}

func loadLocal(savePath string, logger *slog.Logger) (*game.State, *store.FileStore, error) {
	fs := store.NewFileStore(savePath, logger)
	st, err := fs.Load(context.Background())
	if err != nil {
		return nil, nil, err
	}
	if st == nil {
		st = game.New(time.Now())
	}
	return st, fs, nil
}

func newPlayCmd(savePath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Play in the terminal against the local save",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
			st, fs, err := loadLocal(*savePath, logger)
			if err != nil {
				return err
			}
			eng := engine.New(st, engine.SystemClock(), logger, engine.DefaultConfig())
			eng.OnSave(func(snap *game.State) {
				saveCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := fs.Save(saveCtx, snap); err != nil {
					logger.Warn("save failed", "err", err)
				}
			})
			eng.Start()
			defer eng.Stop()
			return runTUI(eng)
		},
	}
}

func newSimCmd(savePath *string) *cobra.Command {
	var ticks int
	var tick time.Duration
	var persist bool
	cmd := &cobra.Command{
		Use:   "sim",
		Short: "Run a deterministic offline simulation",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
			st, fs, err := loadLocal(*savePath, logger)
			if err != nil {
				return err
			}
			before := st.Clone()

			clock := &stepClock{now: time.UnixMilli(st.LastTick)}
			eng := engine.New(st, clock, logger, engine.Config{
				TickEvery:    tick,
				MaxTickDelta: 5 * time.Second,
				SaveEvery:    time.Hour,
			})
			for i := 0; i < ticks; i++ {
				clock.Advance(tick)
				eng.Tick()
			}
			after := eng.Snapshot()

			renderSimSummary(before, after, ticks, tick)
			if persist {
				if err := fs.Save(context.Background(), after); err != nil {
					return err
				}
				printSuccess("Save updated.")
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&ticks, "ticks", 600, "number of ticks to simulate")
	cmd.Flags().DurationVar(&tick, "tick", 100*time.Millisecond, "simulated tick period")
	cmd.Flags().BoolVar(&persist, "persist", false, "write the result back to the save file")
	return cmd
}

// stepClock advances only when told to, so sim runs are reproducible.
type stepClock struct {
	now time.Time
}

func (c *stepClock) Now() time.Time          { return c.now }
func (c *stepClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newDashCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "dash",
		Short: "Show the dashboard of a running headliner-api",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			client := newClient(apiBase)
			stats, err := client.Stats(ctx)
			if err != nil {
				return err
			}
			boosts, err := client.Boosts(ctx)
			if err != nil {
				return err
			}
			props, err := client.Properties(ctx)
			if err != nil {
				return err
			}
			renderDash(stats, boosts, props)
			return nil
		},
	}
}

func newStateCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "state",
		Short: "Dump the raw state snapshot as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			out, err := newClient(apiBase).State(ctx)
			if err != nil {
				return err
			}
			return printJSON(out)
		},
	}
}

func newWriteCmd(apiBase *string) *cobra.Command {
	var count int
	cmd := &cobra.Command{
		Use:   "write",
		Short: "Queue songs for writing",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			out, err := newClient(apiBase).WriteSongs(ctx, count)
			if err != nil {
				return err
			}
			printSuccess(fmt.Sprintf("Queued %v song(s).", out["queued"]))
			return nil
		},
	}
	cmd.Flags().IntVar(&count, "count", 1, "number of songs to queue")
	return cmd
}

func newBoostCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "boost <type>",
		Short: "Activate a promo boost",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			out, err := newClient(apiBase).ActivateBoost(ctx, args[0])
			if err != nil {
				return err
			}
			printSuccess(fmt.Sprintf("Boost %v active.", out["type"]))
			return nil
		},
	}
}

func newBuyCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "buy <property>",
		Short: "Buy a property",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			out, err := newClient(apiBase).BuyProperty(ctx, args[0])
			if err != nil {
				return err
			}
			printSuccess(fmt.Sprintf("Bought %v.", out["name"]))
			return nil
		},
	}
}

func newUpgradeCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "upgrade",
		Short: "Buy the next studio upgrade",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			out, err := newClient(apiBase).BuyUpgrade(ctx)
			if err != nil {
				return err
			}
			printSuccess(fmt.Sprintf("Studio now tier %v gear %v.", out["tier"], out["gear_level"]))
			return nil
		},
	}
}

func newTourCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tour",
		Short: "Start a tour",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			out, err := newClient(apiBase).StartTour(ctx)
			if err != nil {
				return err
			}
			printSuccess(fmt.Sprintf("Tour started, rate %.2f/s.", out["income_rate"]))
			return nil
		},
	}
}

func newTrendCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "trend",
		Short: "Scout the next trending genre",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			out, err := newClient(apiBase).ScoutTrend(ctx)
			if err != nil {
				return err
			}
			printSuccess(fmt.Sprintf("Trending now: %v.", out["genre"]))
			return nil
		},
	}
}

func newReReleaseCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "rerelease <album-id>",
		Short: "Re-release a prior album",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			out, err := newClient(apiBase).ReRelease(ctx, args[0])
			if err != nil {
				return err
			}
			printSuccess(fmt.Sprintf("Re-release paid %.2f.", out["payout"]))
			return nil
		},
	}
}

func newPrestigeCmd(apiBase *string) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "prestige",
		Short: "Retire the current act for a permanent legacy bonus",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				printWarn("Prestige resets cash, songs and fans. Re-run with --yes to confirm.")
				return nil
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			out, err := newClient(apiBase).Prestige(ctx)
			if err != nil {
				return err
			}
			printSuccess(fmt.Sprintf("Retired %v earning %.2f/s forever.", out["name"], out["income_rate"]))
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "skip confirmation")
	return cmd
}
