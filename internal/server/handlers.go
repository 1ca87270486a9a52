package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/coder/websocket"
	"github.com/google/uuid"

	"monkeyclicker/internal/events"
	"monkeyclicker/internal/leaderboard"
	"monkeyclicker/internal/ledger"
	"monkeyclicker/internal/session"
	"monkeyclicker/internal/sound"
	"monkeyclicker/internal/storage"
	"monkeyclicker/internal/wshub"
)

type Server struct {
	Sessions         *session.Manager
	Ledger           *ledger.Ledger
	Bus              *events.Bus
	Hub              *wshub.Hub
	Sound            sound.Player
	DB               *storage.Postgres // nil if no database configured
	LeaderboardLimit int
}

// stateResponse is the read-only state the UI consumes.
type stateResponse struct {
	Email         string              `json:"email,omitempty"`
	UserClicks    int                 `json:"userClicks"`
	TotalClicks   int                 `json:"totalClicks"`
	RecentPlayers []leaderboard.Entry `json:"recentPlayers"`
}

func (s *Server) currentState() stateResponse {
	resp := stateResponse{
		TotalClicks:   s.Ledger.GetGlobalTotal(),
		RecentPlayers: leaderboard.DeriveRecent(s.Ledger.AllUsers(), s.LeaderboardLimit),
	}
	if id, ok := s.Sessions.Current(); ok {
		resp.Email = id
		resp.UserClicks = s.Ledger.GetUserClicks(id)
	}
	return resp
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[Handle] Encode response error: %v\n", err)
	}
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	fmt.Println("[Handle:Login] Request Received")

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	identity, clicks, err := s.Sessions.Login(r.FormValue("email"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	log.Printf("[Handle:Login] %s logged in with %d clicks\n", identity, clicks)
	writeJSON(w, http.StatusOK, s.currentState())
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	fmt.Println("[Handle:Logout] Request Received")

	s.Sessions.Logout()
	writeJSON(w, http.StatusOK, s.currentState())
}

func (s *Server) handleClick(w http.ResponseWriter, r *http.Request) {
	identity, ok := s.Sessions.Current()
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "not logged in"})
		return
	}

	userClicks, globalTotal := s.Ledger.RecordClick(identity)

	// Sound and push are independent of scoring: neither can fail the click.
	s.Sound.Play()
	s.Bus.Publish(events.ScoreChange{
		Identity:    identity,
		UserClicks:  userClicks,
		GlobalTotal: globalTotal,
	})

	writeJSON(w, http.StatusOK, map[string]int{
		"userClicks":  userClicks,
		"totalClicks": globalTotal,
	})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.currentState())
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		log.Printf("[Handle:WS] Accept error: %v\n", err)
		return
	}

	client := &wshub.Client{
		ID:   uuid.New().String(),
		Conn: conn,
		Send: make(chan []byte, 16),
	}
	s.Hub.Register(client)
	defer s.Hub.Unregister(client.ID)

	ctx := r.Context()
	go client.WritePump(ctx)

	// Hydrate the new client immediately.
	state := s.currentState()
	if data, err := json.Marshal(wshub.StateMessage{
		Type:          "state",
		Email:         state.Email,
		UserClicks:    state.UserClicks,
		TotalClicks:   state.TotalClicks,
		RecentPlayers: state.RecentPlayers,
	}); err == nil {
		select {
		case client.Send <- data:
		default:
		}
	}

	// Clients never send anything meaningful; read until close.
	for {
		if _, _, err := conn.Read(ctx); err != nil {
			return
		}
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	if s.DB != nil {
		if err := s.DB.Ping(); err != nil {
			status = "db_error"
			w.WriteHeader(http.StatusServiceUnavailable)
			fmt.Fprintf(w, `{"status":"%s","error":"%s"}`, status, err.Error())
			return
		}
	}
	fmt.Fprintf(w, `{"status":"%s"}`, status)
}
