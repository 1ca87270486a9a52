package ledger

import (
	"encoding/json"
	"fmt"
)

// UserRecord is the current-schema entry for one player. LastPlayed is
// epoch milliseconds; 0 means the player has never clicked since the
// schema change.
type UserRecord struct {
	Clicks     int   `json:"clicks"`
	LastPlayed int64 `json:"lastPlayed"`
}

// Snapshot maps normalized email identities to their records. Writing
// a Snapshot always produces structured entries; the legacy bare-count
// form only ever appears as pre-existing persisted data.
type Snapshot map[string]UserRecord

// Entry is one raw stored ledger value: either the legacy format (a
// bare click count) or the current structured record. Discrimination
// happens once, at the deserialization boundary.
type Entry struct {
	legacy  bool
	clicks  int
	current UserRecord
}

func LegacyEntry(clicks int) Entry {
	return Entry{legacy: true, clicks: clicks}
}

func CurrentEntry(rec UserRecord) Entry {
	return Entry{current: rec}
}

func (e *Entry) UnmarshalJSON(b []byte) error {
	var n int
	if err := json.Unmarshal(b, &n); err == nil {
		*e = LegacyEntry(n)
		return nil
	}
	var rec UserRecord
	if err := json.Unmarshal(b, &rec); err != nil {
		return fmt.Errorf("decoding ledger entry: %w", err)
	}
	*e = CurrentEntry(rec)
	return nil
}

// Record maps either variant onto the current schema. Legacy counts get
// LastPlayed 0, which keeps them out of the recent-players view until
// their next click.
func (e Entry) Record() UserRecord {
	if e.legacy {
		return UserRecord{Clicks: e.clicks}
	}
	return e.current
}

// Normalize converts a raw stored mapping into a current-schema
// Snapshot. It is total (no entry is dropped) and idempotent: an
// already-structured entry passes through unchanged.
func Normalize(raw map[string]Entry) Snapshot {
	snap := make(Snapshot, len(raw))
	for id, e := range raw {
		snap[id] = e.Record()
	}
	return snap
}
