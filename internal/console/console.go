// Package console prints one styled status line per notable event.
package console

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/glory-app/glory/internal/event"
	"github.com/glory-app/glory/internal/player"
)

var (
	colorJoin   = lipgloss.Color("#22c55e")
	colorLeave  = lipgloss.Color("#9ca3af")
	colorKill   = lipgloss.Color("#f59e0b")
	colorDeath  = lipgloss.Color("#dc2626")
	colorAssist = lipgloss.Color("#3b82f6")
	colorDimmed = lipgloss.Color("#6b7280")
)

var lines = map[event.Name]struct {
	text  string
	color lipgloss.Color
}{
	event.GameJoin:  {"Player joined game", colorJoin},
	event.GameLeave: {"Player left the game", colorLeave},
	event.Kill:      {"Kill", colorKill},
	event.Death:     {"Death", colorDeath},
	event.Assist:    {"Assist", colorAssist},
}

// Printer writes status lines to w. stats supplies the counters shown next
// to stat events.
type Printer struct {
	w        io.Writer
	stats    func() player.Snapshot
	now      func() time.Time
	renderer *lipgloss.Renderer
}

func New(w io.Writer, stats func() player.Snapshot) *Printer {
	return &Printer{
		w:        w,
		stats:    stats,
		now:      time.Now,
		renderer: lipgloss.NewRenderer(w),
	}
}

// Subscribe registers the printer for every event it has a line for. Creep
// kills are too frequent to print.
func (p *Printer) Subscribe(bus *event.Bus) {
	for _, n := range event.Names() {
		if _, ok := lines[n]; ok {
			bus.Subscribe(n, p.Handler(n))
		}
	}
}

// Handler returns the handler printing the line for n.
func (p *Printer) Handler(n event.Name) event.Handler {
	return func() { p.Print(n) }
}

// Print writes the line for n.
func (p *Printer) Print(n event.Name) {
	l, ok := lines[n]
	if !ok {
		return
	}
	ts := p.renderer.NewStyle().Foreground(colorDimmed).Render(p.now().Format("15:04:05"))
	msg := p.renderer.NewStyle().Bold(true).Foreground(l.color).Render(l.text)

	switch n {
	case event.Kill, event.Death, event.Assist:
		s := p.stats()
		detail := p.renderer.NewStyle().Foreground(colorDimmed).Render(fmt.Sprintf("%s  cs %d", s.KDA(), s.CreepScore))
		fmt.Fprintf(p.w, "%s %s  %s\n", ts, msg, detail)
	default:
		fmt.Fprintf(p.w, "%s %s\n", ts, msg)
	}
}
