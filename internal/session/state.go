package session

import "encoding/json"

// State is the monitor's view of whether the player is inside a live match.
type State int

const (
	NotInGame State = iota
	InGame
)

var stateNames = map[State]string{
	NotInGame: "not_in_game",
	InGame:    "in_game",
}

func (s State) String() string {
	if n, ok := stateNames[s]; ok {
		return n
	}
	return "unknown"
}

func (s State) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}
