package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-almanac/internal/almanac"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(0, 1)

	panelTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	twilightStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("60"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

func renderHeader(siteName string, loc almanac.Location, obs *almanac.Observation) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("☀ ls-almanac"))
	b.WriteString("  ")
	b.WriteString(valueStyle.Render(fmt.Sprintf("%s (%.4f°, %.4f°, UTC%+d)",
		siteName, loc.Latitude, loc.Longitude, loc.Zone)))
	if obs != nil {
		b.WriteString("\n")
		b.WriteString(labelStyle.Render(fmt.Sprintf("%s local   JD %.5f   GMST %s   LMST %s",
			obs.Time, obs.JulianDate, obs.GMST, obs.LMST)))
	}
	return b.String()
}

// eventStr formats an optional event time, with a dash row for days
// without the event.
func eventStr(ts *almanac.TimeSpan) string {
	if ts == nil {
		return "--:--:--"
	}
	return ts.String()
}

func row(label, value string) string {
	return labelStyle.Render(fmt.Sprintf("%-12s", label)) + valueStyle.Render(value)
}

func renderSunPanel(obs *almanac.Observation) string {
	s := obs.Sun
	lines := []string{
		panelTitleStyle.Render("Sun"),
		row("Sign", s.Sign),
		row("RA/Dec", fmt.Sprintf("%6.3fh / %+7.3f°", s.RA, s.Dec)),
		row("Az/Alt", fmt.Sprintf("%7.3f° / %+7.3f°", s.Azimuth, s.Altitude)),
		row("Distance", fmt.Sprintf("%.0f km", s.Distance)),
		row("Diameter", fmt.Sprintf("%.2f'", s.Diameter)),
		"",
		row("Rise", eventStr(s.Rise)),
		row("Transit", eventStr(s.Transit)),
		row("Set", eventStr(s.Set)),
		"",
		twilightStyle.Render("Twilight        dawn      dusk"),
		twilightStyle.Render(fmt.Sprintf("  civil         %s  %s", eventStr(s.CivilTwilightMorning), eventStr(s.CivilTwilightEvening))),
		twilightStyle.Render(fmt.Sprintf("  nautical      %s  %s", eventStr(s.NauticalTwilightMorning), eventStr(s.NauticalTwilightEvening))),
		twilightStyle.Render(fmt.Sprintf("  astronomical  %s  %s", eventStr(s.AstronomicalTwilightMorning), eventStr(s.AstronomicalTwilightEvening))),
	}
	return panelStyle.Render(strings.Join(lines, "\n"))
}

// phaseGlyphs indexes the eight phase glyphs by phase index.
var phaseGlyphs = [8]string{"🌑", "🌒", "🌓", "🌔", "🌕", "🌖", "🌗", "🌘"}

func renderMoonPanel(obs *almanac.Observation) string {
	m := obs.Moon
	lines := []string{
		panelTitleStyle.Render("Moon"),
		row("Sign", m.Sign),
		row("Phase", fmt.Sprintf("%s %s (%.1f%%)", phaseGlyphs[m.PhaseIndex%8], m.PhaseName, m.Phase*100)),
		row("Age", fmt.Sprintf("%.1f°", m.Age)),
		row("RA/Dec", fmt.Sprintf("%6.3fh / %+7.3f°", m.RA, m.Dec)),
		row("Az/Alt", fmt.Sprintf("%7.3f° / %+7.3f°", m.Azimuth, m.Altitude)),
		row("Distance", fmt.Sprintf("%.0f km", m.Distance)),
		row("Observer", fmt.Sprintf("%.0f km", m.DistanceObserver)),
		row("Diameter", fmt.Sprintf("%.2f'", m.Diameter)),
		"",
		row("Rise", eventStr(m.Rise)),
		row("Transit", eventStr(m.Transit)),
		row("Set", eventStr(m.Set)),
	}
	return panelStyle.Render(strings.Join(lines, "\n"))
}
