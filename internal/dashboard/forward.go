package dashboard

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/glory-app/glory/internal/event"
	"github.com/glory-app/glory/internal/player"
	"github.com/glory-app/glory/internal/session"
)

// StatusSource is what the forwarder reads when an event fires.
type StatusSource interface {
	State() session.State
	Health() session.Health
}

// Forwarder turns bus events into program messages.
type Forwarder struct {
	send    func(tea.Msg)
	monitor StatusSource
	stats   func() player.Snapshot
	now     func() time.Time
}

// NewForwarder sends to p. Program.Send blocks until the program reads the
// message, or returns immediately once the program has exited.
func NewForwarder(p *tea.Program, monitor StatusSource, stats func() player.Snapshot) *Forwarder {
	return &Forwarder{send: p.Send, monitor: monitor, stats: stats, now: time.Now}
}

// Subscribe registers the forwarder for every event.
func (f *Forwarder) Subscribe(bus *event.Bus) {
	for _, n := range event.Names() {
		bus.Subscribe(n, func() { f.send(f.eventMsg(n)) })
	}
}

// SendStatus pushes the current state without an event.
func (f *Forwarder) SendStatus() {
	f.send(f.status())
}

func (f *Forwarder) eventMsg(n event.Name) EventMsg {
	return EventMsg{Name: n, At: f.now(), StatusMsg: f.status()}
}

func (f *Forwarder) status() StatusMsg {
	return StatusMsg{
		State:  f.monitor.State(),
		Stats:  f.stats(),
		Health: f.monitor.Health(),
	}
}
