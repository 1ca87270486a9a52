package server

import (
	"fmt"
	"log"
	"net/http"

	"monkeyclicker/internal/config"
	"monkeyclicker/internal/events"
	"monkeyclicker/internal/leaderboard"
	"monkeyclicker/internal/ledger"
	"monkeyclicker/internal/session"
	"monkeyclicker/internal/sound"
	"monkeyclicker/internal/storage"
	"monkeyclicker/internal/wshub"
)

func Run() error {
	cfg := config.Load()

	srv := &Server{
		Bus:              events.NewBus(),
		Hub:              wshub.NewHub(),
		Sound:            sound.Nop{},
		LeaderboardLimit: cfg.LeaderboardLimit,
	}

	// Postgres when configured, with the file store as the fallback so a
	// bad DATABASE_URL never takes scoring down.
	var kv storage.KV
	if cfg.DatabaseURL != "" {
		database, err := storage.Connect(cfg.DatabaseURL)
		if err != nil {
			log.Printf("[DB] Failed to connect: %v (falling back to file store)\n", err)
		} else if err := database.Migrate(); err != nil {
			log.Printf("[DB] Migration failed: %v (falling back to file store)\n", err)
			database.Close()
		} else {
			srv.DB = database
			kv = database
		}
	}
	if kv == nil {
		fileStore, err := storage.NewFile(cfg.DataFile)
		if err != nil {
			return fmt.Errorf("opening file store: %w", err)
		}
		kv = fileStore
		log.Printf("[Store] Using file store at %s\n", cfg.DataFile)
	}

	srv.Ledger = ledger.New(kv)
	srv.Sessions = session.New(kv, srv.Ledger)

	var scream *sound.Scream
	if cfg.SoundURL != "" {
		scream = sound.NewScream(cfg.SoundURL)
		srv.Sound = scream
	} else {
		log.Println("[Sound] SOUND_URL not set, running silent")
	}

	go srv.pushLoop(scream)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /login", srv.handleLogin)
	mux.HandleFunc("POST /logout", srv.handleLogout)
	mux.HandleFunc("POST /click", srv.handleClick)
	mux.HandleFunc("GET /state", srv.handleState)
	mux.HandleFunc("GET /ws", srv.handleWS)
	mux.HandleFunc("GET /health", srv.handleHealth)
	if scream != nil {
		mux.Handle("GET /sound", scream)
	}

	addr := "0.0.0.0:" + cfg.Port
	fmt.Printf("Server listening on http://localhost:%s\n", cfg.Port)
	return http.ListenAndServe(addr, mux)
}

// pushLoop fans score changes and scream triggers out to connected
// clients. The leaderboard is recomputed here, on the global-total
// change signal, not on every render.
func (s *Server) pushLoop(scream *sound.Scream) {
	var triggers <-chan struct{}
	if scream != nil {
		triggers = scream.Triggers()
	}

	for {
		select {
		case ev := <-s.Bus.ScoreChanges:
			s.Hub.Broadcast(wshub.StateMessage{
				Type:          "state",
				Email:         ev.Identity,
				UserClicks:    ev.UserClicks,
				TotalClicks:   ev.GlobalTotal,
				RecentPlayers: leaderboard.DeriveRecent(s.Ledger.AllUsers(), s.LeaderboardLimit),
			})
		case <-triggers:
			s.Hub.Broadcast(wshub.StateMessage{Type: "scream"})
		}
	}
}
