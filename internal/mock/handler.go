package mock

import (
	"encoding/json"
	"net/http"

	"github.com/glory-app/glory/internal/liveclient"
)

// minionsSpawnAt is in simulated seconds, one per playing step.
const minionsSpawnAt = 65

type liveEvent struct {
	EventID   int     `json:"EventID"`
	EventName string  `json:"EventName"`
	EventTime float64 `json:"EventTime"`
}

type eventData struct {
	Events []liveEvent `json:"Events"`
}

type playerScores struct {
	Assists    int     `json:"assists"`
	CreepScore int     `json:"creepScore"`
	Deaths     int     `json:"deaths"`
	Kills      int     `json:"kills"`
	WardScore  float64 `json:"wardScore"`
}

// Handler serves the two live-client routes backed by m. Every eventdata
// request advances the script one step, mirroring one probe per poll.
func Handler(m *Match) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(liveclient.EventDataPath, func(w http.ResponseWriter, r *http.Request) {
		_, _ = m.Active(r.Context())
		m.mu.Lock()
		phase, at := m.phase, m.time
		m.mu.Unlock()

		switch phase {
		case Loading:
			writeJSON(w, http.StatusOK, eventData{Events: []liveEvent{}})
		case Playing:
			events := []liveEvent{{EventID: 0, EventName: "GameStart", EventTime: 0.02}}
			if at >= minionsSpawnAt {
				events = append(events, liveEvent{EventID: 1, EventName: "MinionsSpawning", EventTime: minionsSpawnAt})
			}
			writeJSON(w, http.StatusOK, eventData{Events: events})
		default:
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"errorCode": "RPC_ERROR"})
		}
	})
	mux.HandleFunc(liveclient.PlayerScoresPath, func(w http.ResponseWriter, r *http.Request) {
		name := r.URL.Query().Get("summonerName")
		if name == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"errorCode": "INVALID_PARAMETER"})
			return
		}
		snap, err := m.Fetch(r.Context(), name)
		if err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"errorCode": "RPC_ERROR", "message": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, playerScores{
			Assists:    snap.Assists,
			CreepScore: snap.CreepScore,
			Deaths:     snap.Deaths,
			Kills:      snap.Kills,
		})
	})
	return mux
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
