package leaderboard

import (
	"fmt"
	"testing"

	"monkeyclicker/internal/ledger"
)

func TestDeriveRecent_FiltersLegacyEntries(t *testing.T) {
	snap := ledger.Snapshot{
		"legacy@example.com": {Clicks: 9999, LastPlayed: 0},
		"active@example.com": {Clicks: 1, LastPlayed: 100},
	}

	entries := DeriveRecent(snap, 10)

	if len(entries) != 1 {
		t.Fatalf("len(entries) = %d, want 1", len(entries))
	}
	if entries[0].Identity != "active@example.com" {
		t.Errorf("entry = %q, want %q", entries[0].Identity, "active@example.com")
	}
}

func TestDeriveRecent_OrdersByLastPlayed(t *testing.T) {
	snap := ledger.Snapshot{
		"a@example.com": {Clicks: 1, LastPlayed: 100},
		"b@example.com": {Clicks: 2, LastPlayed: 300},
		"c@example.com": {Clicks: 3, LastPlayed: 200},
	}

	entries := DeriveRecent(snap, 10)

	want := []string{"b@example.com", "c@example.com", "a@example.com"}
	if len(entries) != len(want) {
		t.Fatalf("len(entries) = %d, want %d", len(entries), len(want))
	}
	for i, w := range want {
		if entries[i].Identity != w {
			t.Errorf("entries[%d] = %q, want %q", i, entries[i].Identity, w)
		}
	}
}

func TestDeriveRecent_TieBreaksByIdentity(t *testing.T) {
	snap := ledger.Snapshot{
		"zed@example.com": {Clicks: 1, LastPlayed: 100},
		"ann@example.com": {Clicks: 2, LastPlayed: 100},
	}

	entries := DeriveRecent(snap, 10)

	if entries[0].Identity != "ann@example.com" || entries[1].Identity != "zed@example.com" {
		t.Errorf("tie order = [%q, %q], want ann before zed",
			entries[0].Identity, entries[1].Identity)
	}
}

func TestDeriveRecent_CapsAtLimit(t *testing.T) {
	snap := ledger.Snapshot{}
	for i := 0; i < 15; i++ {
		snap[fmt.Sprintf("p%02d@example.com", i)] = ledger.UserRecord{
			Clicks:     i,
			LastPlayed: int64(1000 + i),
		}
	}

	entries := DeriveRecent(snap, 10)

	if len(entries) != 10 {
		t.Fatalf("len(entries) = %d, want 10", len(entries))
	}
	// Most recent first: p14 down to p05.
	if entries[0].Identity != "p14@example.com" {
		t.Errorf("entries[0] = %q, want %q", entries[0].Identity, "p14@example.com")
	}
	if entries[9].Identity != "p05@example.com" {
		t.Errorf("entries[9] = %q, want %q", entries[9].Identity, "p05@example.com")
	}
}

func TestDeriveRecent_ProjectsClicks(t *testing.T) {
	snap := ledger.Snapshot{
		"a@example.com": {Clicks: 123, LastPlayed: 50},
	}

	entries := DeriveRecent(snap, 10)

	if entries[0].Clicks != 123 {
		t.Errorf("Clicks = %d, want 123", entries[0].Clicks)
	}
}

func TestDeriveRecent_EmptySnapshot(t *testing.T) {
	if entries := DeriveRecent(ledger.Snapshot{}, 10); len(entries) != 0 {
		t.Errorf("len(entries) = %d, want 0", len(entries))
	}
}

func TestDeriveRecent_ZeroLimitUsesDefault(t *testing.T) {
	snap := ledger.Snapshot{}
	for i := 0; i < 15; i++ {
		snap[fmt.Sprintf("p%02d@example.com", i)] = ledger.UserRecord{
			Clicks:     1,
			LastPlayed: int64(1 + i),
		}
	}

	if entries := DeriveRecent(snap, 0); len(entries) != DefaultLimit {
		t.Errorf("len(entries) = %d, want %d", len(entries), DefaultLimit)
	}
}
