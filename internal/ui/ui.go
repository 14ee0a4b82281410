// Package ui provides the terminal dashboard using Bubble Tea.
package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"

	"github.com/litescript/ls-almanac/internal/almanac"
	"github.com/litescript/ls-almanac/internal/version"
)

// TickMsg triggers the periodic clock refresh.
type TickMsg time.Time

const tickInterval = 30 * time.Second

// Model is the root Bubble Tea model: one observation for a site and
// instant, with day navigation.
type Model struct {
	siteName string
	loc      almanac.Location
	deltaT   float64
	date     almanac.Date

	// follow tracks whether the displayed instant tracks the wall clock;
	// any manual navigation detaches it.
	follow bool

	obs    *almanac.Observation
	err    error
	width  int
	height int
}

// New creates the root model, starting at the current local time of
// the site.
func New(siteName string, loc almanac.Location, deltaT float64) Model {
	m := Model{
		siteName: siteName,
		loc:      loc,
		deltaT:   deltaT,
		follow:   true,
	}
	m.date = siteNow(loc)
	m.recompute()
	return m
}

// siteNow converts the wall clock to the site's civil date and time.
func siteNow(loc almanac.Location) almanac.Date {
	t := time.Now().UTC().Add(time.Duration(loc.Zone) * time.Hour)
	return almanac.Date{
		Year: t.Year(), Month: int(t.Month()), Day: t.Day(),
		Hour: t.Hour(), Minute: t.Minute(), Second: t.Second(),
	}
}

func (m *Model) recompute() {
	obs, err := almanac.Compute(m.date, m.loc, m.deltaT)
	if err != nil {
		log.Error().Err(err).Msg("computing observation")
		m.obs, m.err = nil, err
		return
	}
	m.obs, m.err = obs, nil
}

// shiftDay moves the displayed date by delta days, keeping the clock
// component.
func (m *Model) shiftDay(delta int) {
	t := time.Date(m.date.Year, time.Month(m.date.Month), m.date.Day,
		m.date.Hour, m.date.Minute, m.date.Second, 0, time.UTC).AddDate(0, 0, delta)
	m.date = almanac.Date{
		Year: t.Year(), Month: int(t.Month()), Day: t.Day(),
		Hour: t.Hour(), Minute: t.Minute(), Second: t.Second(),
	}
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// Init implements the Bubble Tea model interface.
func (m Model) Init() tea.Cmd {
	return tick()
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case TickMsg:
		if m.follow {
			m.date = siteNow(m.loc)
			m.recompute()
		}
		return m, tick()

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "left", "h":
			m.follow = false
			m.shiftDay(-1)
			m.recompute()
		case "right", "l":
			m.follow = false
			m.shiftDay(1)
			m.recompute()
		case "t":
			m.follow = true
			m.date = siteNow(m.loc)
			m.recompute()
		}
	}

	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	header := renderHeader(m.siteName, m.loc, m.obs)
	if m.err != nil {
		return header + "\n" + errorStyle.Render("Error: "+m.err.Error()) + "\n" + renderFooter()
	}
	if m.obs == nil {
		return header + "\ncomputing...\n"
	}

	panels := lipgloss.JoinHorizontal(lipgloss.Top,
		renderSunPanel(m.obs),
		" ",
		renderMoonPanel(m.obs),
	)
	return header + "\n" + panels + "\n" + renderFooter()
}

func renderFooter() string {
	return footerStyle.Render("←/→ day · t today · q quit · ls-almanac " + version.Version)
}
