package dashboard

import (
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"

	"github.com/glory-app/glory/internal/event"
)

const (
	pulseFPS = 60
	// Below this a pulse is at rest.
	pulseRest = 0.01
	// Above this the stat box is drawn highlighted.
	pulseLit = 0.25
)

// Stat box order in the score row.
const (
	slotKill = iota
	slotDeath
	slotAssist
	slotCreep
	numSlots
)

func statSlot(n event.Name) (int, bool) {
	switch n {
	case event.Kill:
		return slotKill, true
	case event.Death:
		return slotDeath, true
	case event.Assist:
		return slotAssist, true
	case event.CreepKilled:
		return slotCreep, true
	}
	return 0, false
}

// frameMsg advances every running pulse by one spring step.
type frameMsg struct{}

func nextFrame() tea.Cmd {
	return tea.Tick(time.Second/pulseFPS, func(time.Time) tea.Msg { return frameMsg{} })
}

// pulse is a highlight kicked to 1 when a counter bumps. An underdamped
// spring pulls it back to 0, so the box blinks once or twice and settles.
type pulse struct {
	pos, vel float64
}

func (p pulse) moving() bool {
	return math.Abs(p.pos) > pulseRest || math.Abs(p.vel) > pulseRest
}

func (p pulse) lit() bool { return p.pos > pulseLit }

type pulses struct {
	spring  harmonica.Spring
	slots   [numSlots]pulse
	running bool
}

func newPulses() pulses {
	return pulses{spring: harmonica.NewSpring(harmonica.FPS(pulseFPS), 8.0, 0.25)}
}

// kick starts the pulse for n. The returned command is non-nil only when
// the frame loop was idle.
func (p *pulses) kick(n event.Name) tea.Cmd {
	i, ok := statSlot(n)
	if !ok {
		return nil
	}
	p.slots[i] = pulse{pos: 1}
	if p.running {
		return nil
	}
	p.running = true
	return nextFrame()
}

// step advances one frame and stops the loop once every pulse is at rest.
func (p *pulses) step() tea.Cmd {
	moving := false
	for i := range p.slots {
		s := &p.slots[i]
		if !s.moving() {
			*s = pulse{}
			continue
		}
		s.pos, s.vel = p.spring.Update(s.pos, s.vel, 0)
		moving = moving || s.moving()
	}
	if !moving {
		p.running = false
		return nil
	}
	return nextFrame()
}

func (p pulses) lit(slot int) bool { return p.slots[slot].lit() }
