package main

import (
	"fmt"
	"time"

	"headliner/internal/engine"
	"headliner/internal/game"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	goodStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	alertStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	helpKeys    = "[w]rite  [1/2/3] boost  [u]pgrade  [p]roperty  [t]our  [s]cout  [r]etire  [q]uit"
	boostHotkey = []string{"studio_session", "viral_push", "press_run"}
)

// tickMsg drives the redraw loop. The engine advances on its own goroutine;
// the TUI only snapshots.
type tickMsg time.Time

func redrawCmd() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

type playModel struct {
	eng    *engine.Engine
	st     *game.State
	queue  progress.Model
	status string
	width  int
}

func runTUI(eng *engine.Engine) error {
	m := playModel{
		eng:   eng,
		st:    eng.Snapshot(),
		queue: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
	}
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func (m playModel) Init() tea.Cmd {
	return redrawCmd()
}

func (m playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.st = m.eng.Snapshot()
		return m, redrawCmd()
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.queue.Width = min(msg.Width-8, 48)
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m playModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "w":
		m.status = report("song queued", m.eng.WriteSongs(1))
	case "1", "2", "3":
		typ := boostHotkey[int(msg.String()[0]-'1')]
		_, err := m.eng.ActivateBoost(typ)
		m.status = report(typ+" active", err)
	case "u":
		m.status = report("studio upgraded", m.eng.BuyUpgrade())
	case "p":
		avail := game.AvailableProperties(m.st)
		if len(avail) == 0 {
			m.status = alertStyle.Render("no properties available")
			break
		}
		p, err := m.eng.BuyProperty(avail[0].Type)
		m.status = report("bought "+p.Name, err)
	case "t":
		_, err := m.eng.StartTour()
		m.status = report("tour on the road", err)
	case "s":
		genre, err := m.eng.ScoutTrend()
		m.status = report("trending: "+genre, err)
	case "r":
		artist, err := m.eng.Prestige()
		m.status = report("retired "+artist.Name, err)
	}
	m.st = m.eng.Snapshot()
	return m, nil
}

func report(ok string, err error) string {
	if err != nil {
		return alertStyle.Render(err.Error())
	}
	return goodStyle.Render(ok)
}

func (m playModel) View() string {
	st := m.st
	if st == nil {
		return "loading..."
	}

	header := titleStyle.Render(fmt.Sprintf(" HEADLINER  era %d  phase %d ", st.Resets+1, st.Phase))

	stats := panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		row("Cash", "$"+formatMoney(st.Cash)),
		row("Fans", formatCount(st.Fans)+"  (peak "+formatCount(st.PeakFans)+")"),
		row("Income", fmt.Sprintf("$%s/s", formatMoney(game.IncomeRate(st)*game.DynamicIncomeMult(st)))),
		row("Growth", fmt.Sprintf("%s fans/s", formatCount(game.FanRate(st)*game.DynamicFanMult(st)))),
		row("Control", fmt.Sprintf("%.1f%%", game.ControlPercent(st))),
	))

	studio := panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		row("Tier", fmt.Sprintf("%d", st.Tier)),
		row("Gear", fmt.Sprintf("%d", st.GearLevel)),
		row("Songs", fmt.Sprintf("%d", len(st.Songs))),
		row("Albums", fmt.Sprintf("%d", len(st.Albums))),
		row("Tours", fmt.Sprintf("%d/%d", game.ActiveTours(st), game.MaxConcurrentTours(st.Tier))),
	))

	var queuePanel string
	if len(st.Queue) > 0 {
		head := st.Queue[0]
		frac := 0.0
		if head.DurationMS > 0 {
			frac = head.ProgressMS / head.DurationMS
		}
		queuePanel = panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
			labelStyle.Render(fmt.Sprintf("writing %d song(s)", len(st.Queue))),
			m.queue.ViewAs(frac),
		))
	} else {
		queuePanel = panelStyle.Render(mutedStyle.Render("queue empty - press w to write"))
	}

	var boostsLine string
	if n := len(st.Boosts); n > 0 {
		boostsLine = goodStyle.Render(fmt.Sprintf("%d boost(s) running", n))
	} else if st.Unlocks.Boosts {
		boostsLine = mutedStyle.Render("no boosts running")
	} else {
		boostsLine = mutedStyle.Render("boosts locked")
	}

	footer := m.status
	if game.HasWon(st) {
		footer = goodStyle.Render("YOU RUN THE INDUSTRY") + "  " + footer
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		lipgloss.JoinHorizontal(lipgloss.Top, stats, studio),
		queuePanel,
		boostsLine,
		footer,
		mutedStyle.Render(helpKeys),
	)
}

func row(label, value string) string {
	return labelStyle.Render(fmt.Sprintf("%-8s", label)) + valueStyle.Render(value)
}
