package ipalloc

import (
	"net/netip"
	"testing"
	"time"

	"github.com/wgquickrs/agent/internal/pkg/model"
)

func TestReserve(t *testing.T) {
	prefix := netip.MustParsePrefix("192.168.10.0/30")
	now := time.Now()

	addr, peerID, res, ok := Reserve(prefix, map[string]model.Peer{}, map[string]model.Reservation{}, now)
	if !ok {
		t.Fatal("Reserve() on an empty subnet: want ok=true, got false")
	}
	if addr != "192.168.10.1" {
		t.Errorf("Reserve() address = %q, want 192.168.10.1", addr)
	}
	if peerID == "" {
		t.Error("Reserve() returned an empty peer id")
	}
	if res.PeerID != peerID {
		t.Errorf("reservation.PeerID = %q, want %q", res.PeerID, peerID)
	}
	if !mustParseTime(t, res.ValidUntil).After(now) {
		t.Error("reservation ValidUntil is not in the future")
	}
}

func TestReserveSkipsLiveReservations(t *testing.T) {
	prefix := netip.MustParsePrefix("192.168.10.0/30")
	now := time.Now()
	future := now.Add(time.Minute).UTC().Format(model.TimeFormat)

	reservations := map[string]model.Reservation{
		"192.168.10.1": {PeerID: "someone", ValidUntil: future},
	}
	addr, _, _, ok := Reserve(prefix, map[string]model.Peer{}, reservations, now)
	if !ok || addr != "192.168.10.2" {
		t.Errorf("Reserve() with .1 reserved = %q, %v, want 192.168.10.2, true", addr, ok)
	}
}

func TestPruneDropsExpired(t *testing.T) {
	now := time.Now()
	reservations := map[string]model.Reservation{
		"192.168.10.1": {PeerID: "a", ValidUntil: now.Add(-time.Minute).UTC().Format(model.TimeFormat)},
		"192.168.10.2": {PeerID: "b", ValidUntil: now.Add(time.Minute).UTC().Format(model.TimeFormat)},
	}
	pruned := Prune(reservations, now)
	if len(pruned) != 1 {
		t.Fatalf("Prune() left %d reservations, want 1", len(pruned))
	}
	if _, ok := pruned["192.168.10.2"]; !ok {
		t.Error("Prune() dropped the still-live reservation")
	}
}

func mustParseTime(t *testing.T, s string) time.Time {
	t.Helper()
	parsed, err := time.Parse(model.TimeFormat, s)
	if err != nil {
		t.Fatalf("time.Parse(%q) error = %v", s, err)
	}
	return parsed
}
