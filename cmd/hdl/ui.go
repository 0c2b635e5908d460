package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"headliner/internal/game"

	"github.com/fatih/color"
)

var (
	accent  = color.New(color.FgCyan, color.Bold)
	success = color.New(color.FgGreen, color.Bold)
	warn    = color.New(color.FgYellow, color.Bold)
	danger  = color.New(color.FgRed, color.Bold)
	neutral = color.New(color.FgHiWhite)
)

type statsPayload struct {
	Cash       float64 `json:"cash"`
	Fans       float64 `json:"fans"`
	PeakFans   float64 `json:"peak_fans"`
	IncomeRate float64 `json:"income_rate"`
	FanRate    float64 `json:"fan_rate"`
	Songs      int     `json:"songs"`
	Queue      int     `json:"queued"`
	Tier       int     `json:"tier"`
	GearLevel  int     `json:"gear_level"`
	Phase      int     `json:"phase"`
	Resets     int     `json:"resets"`
	Control    float64 `json:"control_percent"`
	TrendGenre string  `json:"trend_genre"`
	Won        bool    `json:"won"`
}

type boostsPayload struct {
	Unlocked bool `json:"unlocked"`
	Types    []struct {
		Type       string  `json:"type"`
		Name       string  `json:"name"`
		Cost       float64 `json:"cost"`
		DurationMS int64   `json:"duration_ms"`
		IncomeMult float64 `json:"income_mult"`
		FanMult    float64 `json:"fan_mult"`
	} `json:"types"`
	Active []game.Boost `json:"active"`
}

type propertiesPayload struct {
	Unlocked  bool                `json:"unlocked"`
	Owned     []game.Property     `json:"owned"`
	Available []game.PropertySpec `json:"available"`
}

func printSuccess(msg string) {
	success.Println(msg)
}

func printWarn(msg string) {
	warn.Println(msg)
}

func printError(msg string) {
	danger.Println(msg)
}

func printInfo(msg string) {
	neutral.Println(msg)
}

func printJSON(raw map[string]any) error {
	out, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, string(out))
	return nil
}

func renderDash(statsRaw, boostsRaw, propsRaw map[string]any) {
	stats, err := decodeInto[statsPayload](statsRaw)
	if err != nil {
		printWarn("malformed stats payload: " + err.Error())
		return
	}

	accent.Printf("\n== HEADLINER (Era %d, Phase %d) ==\n", stats.Resets+1, stats.Phase)
	fmt.Printf("Cash:        $%s\n", formatMoney(stats.Cash))
	fmt.Printf("Fans:        %s (peak %s)\n", formatCount(stats.Fans), formatCount(stats.PeakFans))
	fmt.Printf("Income:      $%s/s\n", formatMoney(stats.IncomeRate))
	fmt.Printf("Fan growth:  %s/s\n", formatCount(stats.FanRate))
	fmt.Printf("Catalog:     %d songs, %d writing\n", stats.Songs, stats.Queue)
	fmt.Printf("Studio:      tier %d, gear %d\n", stats.Tier, stats.GearLevel)
	fmt.Printf("Control:     %s\n", colorizeControl(stats.Control))
	if stats.TrendGenre != "" {
		fmt.Printf("Trending:    %s\n", stats.TrendGenre)
	}
	if stats.Won {
		success.Println("\nYou run the industry.")
	}

	boosts, err := decodeInto[boostsPayload](boostsRaw)
	if err == nil && boosts.Unlocked {
		fmt.Println()
		accent.Println("Boosts")
		if len(boosts.Active) == 0 {
			printInfo("No active boosts.")
		} else {
			fmt.Printf("%-16s %10s %8s %8s\n", "TYPE", "ENDS IN", "INCOME", "FANS")
			now := time.Now().UnixMilli()
			for _, b := range boosts.Active {
				left := time.Duration(b.ActivatedAt+b.DurationMS-now) * time.Millisecond
				if left < 0 {
					left = 0
				}
				fmt.Printf("%-16s %10s %7.1fx %7.1fx\n", b.Type, left.Round(time.Second), b.IncomeMult, b.FanMult)
			}
		}
		fmt.Printf("%-16s %12s %10s %8s %8s\n", "AVAILABLE", "COST", "DURATION", "INCOME", "FANS")
		for _, t := range boosts.Types {
			fmt.Printf("%-16s %12s %10s %7.1fx %7.1fx\n",
				t.Type,
				"$"+formatMoney(t.Cost),
				(time.Duration(t.DurationMS) * time.Millisecond).String(),
				t.IncomeMult,
				t.FanMult,
			)
		}
	}

	props, err := decodeInto[propertiesPayload](propsRaw)
	if err == nil && props.Unlocked {
		fmt.Println()
		accent.Println("Properties")
		if len(props.Owned) == 0 {
			printInfo("No properties owned yet.")
		} else {
			fmt.Printf("%-20s %12s %10s\n", "OWNED", "INCOME/S", "CONTROL")
			for _, p := range props.Owned {
				fmt.Printf("%-20s %12s %9.0f%%\n", truncate(p.Name, 20), "$"+formatMoney(p.IncomeRate), p.Control)
			}
		}
		if len(props.Available) > 0 {
			fmt.Printf("%-20s %12s %12s %10s\n", "AVAILABLE", "COST", "INCOME/S", "CONTROL")
			for _, p := range props.Available {
				fmt.Printf("%-20s %12s %12s %9.0f%%\n",
					truncate(p.Name, 20),
					"$"+formatMoney(p.Cost),
					"$"+formatMoney(p.IncomeRate),
					p.Control,
				)
			}
		}
	}
	fmt.Println()
}

func renderSimSummary(before, after *game.State, ticks int, tick time.Duration) {
	elapsed := time.Duration(ticks) * tick
	accent.Printf("\n== SIMULATION (%d ticks, %s) ==\n", ticks, elapsed)
	fmt.Printf("Cash:     $%s -> $%s (%s)\n", formatMoney(before.Cash), formatMoney(after.Cash), signedMoney(after.Cash-before.Cash))
	fmt.Printf("Fans:     %s -> %s\n", formatCount(before.Fans), formatCount(after.Fans))
	fmt.Printf("Songs:    %d -> %d\n", len(before.Songs), len(after.Songs))
	fmt.Printf("Queue:    %d -> %d\n", len(before.Queue), len(after.Queue))
	fmt.Printf("Albums:   %d -> %d\n", len(before.Albums), len(after.Albums))
	fmt.Printf("Control:  %.1f%% -> %.1f%%\n", game.ControlPercent(before), game.ControlPercent(after))
	fmt.Println()
}

func decodeInto[T any](in any) (T, error) {
	var out T
	raw, err := json.Marshal(in)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, err
	}
	return out, nil
}

func colorizeControl(v float64) string {
	if v > 100 {
		v = 100
	}
	text := fmt.Sprintf("%.1f%%", v)
	switch {
	case v >= 100:
		return success.Sprint(text)
	case v >= 50:
		return warn.Sprint(text)
	default:
		return neutral.Sprint(text)
	}
}

func formatMoney(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	whole := int64(v)
	frac := int64((v - float64(whole)) * 100)
	return fmt.Sprintf("%s%s.%02d", sign, comma(whole), frac)
}

func signedMoney(v float64) string {
	if v >= 0 {
		return "+$" + formatMoney(v)
	}
	return "-$" + formatMoney(-v)
}

func formatCount(v float64) string {
	switch {
	case v >= 1_000_000:
		return fmt.Sprintf("%.2fM", v/1_000_000)
	case v >= 10_000:
		return fmt.Sprintf("%.1fK", v/1_000)
	default:
		return comma(int64(v))
	}
}

func comma(v int64) string {
	s := strconv.FormatInt(v, 10)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	pre := len(s) % 3
	if pre > 0 {
		b.WriteString(s[:pre])
		if len(s) > pre {
			b.WriteByte(',')
		}
	}
	for i := pre; i < len(s); i += 3 {
		b.WriteString(s[i : i+3])
		if i+3 < len(s) {
			b.WriteByte(',')
		}
	}
	return b.String()
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if n <= 0 || len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}
