// Package event implements the in-process notification bus the monitor
// publishes to. The set of event names is closed; subscribers register
// zero-argument handlers against a name at startup.
package event

// Name identifies one of the fixed notifications.
type Name int

const (
	GameJoin    Name = iota // player entered a live match
	GameLeave               // the live match is gone
	Kill                    // kill counter changed
	Death                   // death counter changed
	Assist                  // assist counter changed
	CreepKilled             // creep score changed

	numNames
)

var nameStrings = [numNames]string{
	GameJoin:    "onGameJoin",
	GameLeave:   "onGameLeave",
	Kill:        "onKill",
	Death:       "onDeath",
	Assist:      "onAssist",
	CreepKilled: "onCreepKilled",
}

func (n Name) String() string {
	if n.valid() {
		return nameStrings[n]
	}
	return "unknown"
}

func (n Name) valid() bool {
	return n >= 0 && n < numNames
}

// Names returns every event name in declaration order.
func Names() []Name {
	out := make([]Name, 0, numNames)
	for n := Name(0); n < numNames; n++ {
		out = append(out, n)
	}
	return out
}
