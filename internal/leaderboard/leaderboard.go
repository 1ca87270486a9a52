package leaderboard

import (
	"sort"

	"monkeyclicker/internal/ledger"
)

const DefaultLimit = 10

// Entry is one row of the recent-players view. Derived, never stored.
type Entry struct {
	Identity string `json:"email"`
	Clicks   int    `json:"clicks"`
}

// DeriveRecent builds the recent-players view from a normalized
// snapshot: entries with LastPlayed > 0 (so legacy-format records stay
// hidden until their owner clicks again), most recent first, capped at
// limit. Ties on LastPlayed break ascending by identity so the order
// is deterministic. Pure; callers recompute when the global total
// changes rather than on every render.
func DeriveRecent(snap ledger.Snapshot, limit int) []Entry {
	if limit <= 0 {
		limit = DefaultLimit
	}

	type ranked struct {
		identity   string
		clicks     int
		lastPlayed int64
	}
	players := make([]ranked, 0, len(snap))
	for id, rec := range snap {
		if rec.LastPlayed <= 0 {
			continue
		}
		players = append(players, ranked{id, rec.Clicks, rec.LastPlayed})
	}

	sort.Slice(players, func(i, j int) bool {
		if players[i].lastPlayed != players[j].lastPlayed {
			return players[i].lastPlayed > players[j].lastPlayed
		}
		return players[i].identity < players[j].identity
	})

	if len(players) > limit {
		players = players[:limit]
	}

	entries := make([]Entry, len(players))
	for i, p := range players {
		entries[i] = Entry{Identity: p.identity, Clicks: p.clicks}
	}
	return entries
}
