package main

import (
	"encoding/json"
	"net/http"
	"sync"

	"golang.org/x/net/websocket"
)

// SpectatorSnapshot is the read-only world view broadcast to spectator
// clients — a flattened projection of World/TurnManager state, never the
// live pointers themselves.
type SpectatorSnapshot struct {
	SessionID string        `json:"session_id"`
	Week      int           `json:"week"`
	Phase     string        `json:"phase"`
	Version   int           `json:"version"`
	Plants    int           `json:"plants"`
	Weeds     int           `json:"weeds"`
	Score     float64       `json:"score"`
	Ended     bool          `json:"ended"`
	EndReason string        `json:"end_reason,omitempty"`
}

// Spectator broadcasts read-only snapshots of a GameSession to connected
// websocket clients, grounded directly in evosim's WebInterface
// (web_interface.go) — same connection-map-plus-broadcast-channel shape,
// narrowed to one-way, read-only traffic since this repo has no player
// command protocol to relay back.
type Spectator struct {
	session *GameSession

	mu      sync.RWMutex
	clients map[*websocket.Conn]bool

	broadcast chan SpectatorSnapshot
	lastVersion int
}

// NewSpectator wires a broadcaster over s. Nothing is sent until Handler is
// mounted, Run is started, and NotifyChanged is invoked (the session's
// notifyWorldChanged does this once the spectator is attached); main.go's
// serveSpectator mounts Handler and starts Run.
func NewSpectator(s *GameSession) *Spectator {
	return &Spectator{
		session:   s,
		clients:   make(map[*websocket.Conn]bool),
		broadcast: make(chan SpectatorSnapshot, 16),
	}
}

// Snapshot builds the current read-only view.
func (sp *Spectator) Snapshot() SpectatorSnapshot {
	s := sp.session
	return SpectatorSnapshot{
		SessionID: s.ID.String(),
		Week:      s.turn.Week(),
		Phase:     s.turn.Phase().String(),
		Version:   s.world.Version(),
		Plants:    len(s.world.LivingPlants()),
		Weeds:     len(s.world.Weeds()),
		Score:     s.score.Total(s.world),
		Ended:     s.ended,
		EndReason: s.endReason,
	}
}

// NotifyChanged pushes a fresh snapshot to the broadcast channel if the
// world's version counter moved since the last push — a session calls this
// right after notifyWorldChanged rather than on every action regardless of
// whether anything visible changed.
func (sp *Spectator) NotifyChanged() {
	v := sp.session.world.Version()
	if v == sp.lastVersion {
		return
	}
	sp.lastVersion = v
	select {
	case sp.broadcast <- sp.Snapshot():
	default: // drop if the channel is full
	}
}

// Run drains the broadcast channel and fans each snapshot out to every
// connected client, until stop is closed.
func (sp *Spectator) Run(stop <-chan struct{}) {
	for {
		select {
		case snap := <-sp.broadcast:
			sp.fanOut(snap)
		case <-stop:
			return
		}
	}
}

func (sp *Spectator) fanOut(snap SpectatorSnapshot) {
	sp.mu.RLock()
	defer sp.mu.RUnlock()
	for conn := range sp.clients {
		if err := websocket.JSON.Send(conn, snap); err != nil {
			go sp.drop(conn)
		}
	}
}

func (sp *Spectator) drop(conn *websocket.Conn) {
	sp.mu.Lock()
	delete(sp.clients, conn)
	sp.mu.Unlock()
	conn.Close()
}

// handleConn is the websocket.Handler entry point: register the client,
// push one snapshot immediately, then block until it disconnects (the
// protocol is read-only — nothing this repo reads back from the client).
func (sp *Spectator) handleConn(conn *websocket.Conn) {
	sp.mu.Lock()
	sp.clients[conn] = true
	sp.mu.Unlock()

	_ = websocket.JSON.Send(conn, sp.Snapshot())

	var discard string
	for {
		if err := websocket.Message.Receive(conn, &discard); err != nil {
			sp.drop(conn)
			return
		}
	}
}

// Handler returns the net/http handler to mount at e.g. "/spectate".
func (sp *Spectator) Handler() http.Handler {
	return websocket.Handler(sp.handleConn)
}

// StatusJSON is a plain HTTP fallback for clients that don't speak
// websocket.
func (sp *Spectator) StatusJSON(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(sp.Snapshot())
}
