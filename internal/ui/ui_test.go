package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/litescript/ls-almanac/internal/almanac"
)

func fixedModel(t *testing.T) Model {
	t.Helper()
	m := Model{
		siteName: "Frankfurt",
		loc:      almanac.Location{Latitude: 50, Longitude: 8, Zone: 1},
		deltaT:   almanac.DefaultDeltaT,
		date:     almanac.Date{Year: 2000, Month: 1, Day: 1},
	}
	m.recompute()
	if m.err != nil {
		t.Fatalf("recompute error: %v", m.err)
	}
	return m
}

func TestViewRendersObservation(t *testing.T) {
	view := fixedModel(t).View()

	for _, want := range []string{
		"Frankfurt",
		"2000-01-01 00:00:00",
		"Sun",
		"Moon",
		"08:26:36", // sunrise
		"16:36:17", // sunset
		"03:03:30", // moonrise
		"Waning Crescent",
		"Capricorn",
		"Scorpio",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestViewRendersMissingEventAsDashes(t *testing.T) {
	m := Model{
		siteName: "Pole",
		loc:      almanac.Location{Latitude: 90, Longitude: 0, Zone: 0},
		deltaT:   almanac.DefaultDeltaT,
		date:     almanac.Date{Year: 2024, Month: 6, Day: 21},
	}
	m.recompute()
	if m.err != nil {
		t.Fatalf("recompute error: %v", m.err)
	}
	if view := m.View(); !strings.Contains(view, "--:--:--") {
		t.Error("polar day should render dashed rise/set")
	}
}

func TestUpdateDayNavigation(t *testing.T) {
	m := fixedModel(t)
	m.follow = true

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m2 := next.(Model)
	if m2.date.Day != 2 {
		t.Errorf("Day after right = %d, want 2", m2.date.Day)
	}
	if m2.follow {
		t.Error("navigation should detach from the wall clock")
	}

	prev, _ := m2.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m3 := prev.(Model)
	if m3.date.Day != 1 {
		t.Errorf("Day after left = %d, want 1", m3.date.Day)
	}

	// Month boundary.
	m3.date = almanac.Date{Year: 2000, Month: 3, Day: 1}
	m3.shiftDay(-1)
	if m3.date.Month != 2 || m3.date.Day != 29 {
		t.Errorf("2000-03-01 minus a day = %04d-%02d-%02d, want 2000-02-29",
			m3.date.Year, m3.date.Month, m3.date.Day)
	}
}

func TestUpdateQuit(t *testing.T) {
	m := fixedModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("q should produce a quit command")
	}
}
