// Package dashboard is a full-screen terminal view of the monitored player.
// The monitor loop runs on its own goroutine and forwards events into the
// Bubble Tea program with Program.Send.
package dashboard

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/stopwatch"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/glory-app/glory/internal/event"
	"github.com/glory-app/glory/internal/player"
	"github.com/glory-app/glory/internal/session"
)

// feedSize is how many recent events the feed keeps.
const feedSize = 8

// StatusMsg carries the monitor's state without an event, e.g. right after
// the first observation.
type StatusMsg struct {
	State  session.State
	Stats  player.Snapshot
	Health session.Health
}

// EventMsg is one published event plus the state at publish time.
type EventMsg struct {
	Name event.Name
	At   time.Time
	StatusMsg
}

type feedLine struct {
	at   time.Time
	name event.Name
	kda  string
}

// Model is the root Bubble Tea model.
type Model struct {
	player string
	keys   KeyMap
	width  int

	state  session.State
	stats  player.Snapshot
	health session.Health
	feed   []feedLine
	clock  stopwatch.Model
	pulses pulses
}

func New(playerName string) Model {
	return Model{
		player: playerName,
		keys:   DefaultKeyMap(),
		clock:  stopwatch.NewWithInterval(time.Second),
		pulses: newPulses(),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Clear):
			m.feed = nil
		}
		return m, nil

	case StatusMsg:
		wasIn := m.state == session.InGame
		m.apply(msg)
		if m.state == session.InGame && !wasIn {
			return m, m.clock.Start()
		}
		return m, nil

	case EventMsg:
		m.apply(msg.StatusMsg)
		m.push(feedLine{at: msg.At, name: msg.Name, kda: msg.Stats.KDA()})
		switch msg.Name {
		case event.GameJoin:
			return m, tea.Batch(m.clock.Reset(), m.clock.Start())
		case event.GameLeave:
			return m, m.clock.Stop()
		}
		return m, m.pulses.kick(msg.Name)

	case frameMsg:
		return m, m.pulses.step()
	}

	var cmd tea.Cmd
	m.clock, cmd = m.clock.Update(msg)
	return m, cmd
}

func (m *Model) apply(s StatusMsg) {
	m.state = s.State
	m.stats = s.Stats
	m.health = s.Health
}

func (m *Model) push(l feedLine) {
	m.feed = append(m.feed, l)
	if len(m.feed) > feedSize {
		m.feed = m.feed[len(m.feed)-feedSize:]
	}
}

func (m Model) View() string {
	width := m.width
	if width < 44 {
		width = 44
	}

	title := titleStyle.Render("glory") + "  " + dimStyle.Render(m.player)

	var state string
	if m.state == session.InGame {
		state = inGameStyle.Render("● in game") + "  " + dimStyle.Render(m.clock.View())
	} else {
		state = dimStyle.Render("○ waiting for a match")
	}

	score := lipgloss.JoinHorizontal(lipgloss.Top,
		stat("K", m.stats.Kills, colorKill, m.pulses.lit(slotKill)),
		stat("D", m.stats.Deaths, colorDeath, m.pulses.lit(slotDeath)),
		stat("A", m.stats.Assists, colorAssist, m.pulses.lit(slotAssist)),
		stat("CS", m.stats.CreepScore, colorCreep, m.pulses.lit(slotCreep)),
	)

	var feed strings.Builder
	if len(m.feed) == 0 {
		feed.WriteString(dimStyle.Render("no events yet"))
	}
	for i := len(m.feed) - 1; i >= 0; i-- {
		l := m.feed[i]
		fmt.Fprintf(&feed, "%s %s %s\n",
			dimStyle.Render(l.at.Format("15:04:05")),
			lipgloss.NewStyle().Foreground(eventColor(l.name)).Render(fmt.Sprintf("%-14s", l.name)),
			dimStyle.Render(l.kda))
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		title,
		state,
		"",
		score,
		"",
		strings.TrimRight(feed.String(), "\n"),
		"",
		m.healthLine(),
		dimStyle.Render("q quit · c clear feed"),
	)
	return frameStyle.Width(width - 2).Render(body)
}

func (m Model) healthLine() string {
	part := func(label string, s session.SourceStatus) string {
		if s.Failing {
			return warnStyle.Render(fmt.Sprintf("%s: failing (%d)", label, s.Failures))
		}
		return okStyle.Render(label + ": ok")
	}
	// A failing probe is normal outside a match.
	if m.state != session.InGame {
		return part("stats", m.health.Stats)
	}
	return part("probe", m.health.Probe) + "  " + part("stats", m.health.Stats)
}

func stat(label string, v int, color lipgloss.Color, lit bool) string {
	box := statStyle.BorderForeground(color)
	value := lipgloss.NewStyle().Bold(true).Foreground(color)
	if lit {
		box = box.BorderStyle(lipgloss.ThickBorder())
		value = value.Reverse(true)
	}
	return box.Render(
		lipgloss.JoinVertical(lipgloss.Center,
			value.Render(fmt.Sprint(v)),
			dimStyle.Render(label),
		))
}
