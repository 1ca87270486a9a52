package ledger

import (
	"encoding/json"
	"log"
	"strconv"
	"sync"
	"time"

	"monkeyclicker/internal/storage"
)

// Ledger owns the per-user click records and the global click total.
// The global total is its own source of truth, not derived from the
// snapshot.
//
// All mutation goes through RecordClick, which does its read-modify-
// write of the full snapshot under a single mutex, so rapid clicks
// within one process never increment from a stale count. Two processes
// sharing one store are not coordinated: the last full-snapshot write
// wins, same as two browser tabs in the original.
type Ledger struct {
	mu  sync.Mutex
	kv  storage.KV
	now func() time.Time
}

func New(kv storage.KV) *Ledger {
	return &Ledger{
		kv:  kv,
		now: time.Now,
	}
}

// AllUsers returns the normalized snapshot. Malformed stored data
// yields an empty snapshot, never an error.
func (l *Ledger) AllUsers() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loadSnapshot()
}

// GetUserClicks returns 0 for an identity with no record.
func (l *Ledger) GetUserClicks(identity string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loadSnapshot()[identity].Clicks
}

// GetGlobalTotal returns 0 when the counter is absent or unparsable.
func (l *Ledger) GetGlobalTotal() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loadTotal()
}

// RecordClick registers one click for identity: its record's count is
// incremented, its LastPlayed stamped with the current time (moving a
// legacy entry onto the current schema), and the global total bumped.
// Both new values are returned so the caller can update UI state
// without a re-read.
//
// Persistence is best-effort: write failures are logged and the
// freshly computed values still returned, so the click counts for the
// running session even if it was not durably saved.
func (l *Ledger) RecordClick(identity string) (userClicks, globalTotal int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if identity == "" {
		// Callers gate on a live session; stay safe regardless.
		return 0, l.loadTotal()
	}

	snap := l.loadSnapshot()
	rec := snap[identity]
	rec.Clicks++
	rec.LastPlayed = l.now().UnixMilli()
	snap[identity] = rec

	if b, err := json.Marshal(snap); err != nil {
		log.Printf("[Ledger] Marshal snapshot error: %v\n", err)
	} else if err := l.kv.Set(storage.KeyAllUsersData, string(b)); err != nil {
		log.Printf("[Ledger] Persist snapshot error: %v\n", err)
	}

	total := l.loadTotal() + 1
	if err := l.kv.Set(storage.KeyTotalClicks, strconv.Itoa(total)); err != nil {
		log.Printf("[Ledger] Persist total error: %v\n", err)
	}

	return rec.Clicks, total
}

// loadSnapshot reads and normalizes the stored ledger. Caller holds
// the lock.
func (l *Ledger) loadSnapshot() Snapshot {
	data, ok := l.kv.Get(storage.KeyAllUsersData)
	if !ok || data == "" {
		return Snapshot{}
	}
	var raw map[string]Entry
	if err := json.Unmarshal([]byte(data), &raw); err != nil {
		log.Printf("[Ledger] Corrupt ledger data, treating as empty: %v\n", err)
		return Snapshot{}
	}
	return Normalize(raw)
}

func (l *Ledger) loadTotal() int {
	data, ok := l.kv.Get(storage.KeyTotalClicks)
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(data)
	if err != nil {
		log.Printf("[Ledger] Unparsable total %q, treating as 0\n", data)
		return 0
	}
	return n
}
