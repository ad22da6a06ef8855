package ipalloc

import (
	"net/netip"
	"time"

	"github.com/google/uuid"
	"k8s.io/klog/v2"

	"github.com/wgquickrs/agent/internal/pkg/model"
)

// ReservationWindow is how long a reserved address is held for a
// not-yet-created peer before it is treated as expired (spec §4.3).
const ReservationWindow = 5 * time.Minute

// Reserve allocates the lowest-free address in prefix and returns a new
// reservation for it, keyed by a freshly generated peer id. It does not
// mutate reservations; the caller commits the returned entry.
func Reserve(prefix netip.Prefix, peers map[string]model.Peer, reservations map[string]model.Reservation, now time.Time) (address string, peerID string, reservation model.Reservation, ok bool) {
	taken := TakenAddresses(peers, reservations, now)
	addr, found := NextFree(prefix, taken)
	if !found {
		return "", "", model.Reservation{}, false
	}

	peerID = uuid.NewString()
	reservation = model.Reservation{
		PeerID:     peerID,
		ValidUntil: now.Add(ReservationWindow).UTC().Format(model.TimeFormat),
	}
	return addr.String(), peerID, reservation, true
}

// Prune returns reservations with every expired entry removed, logging how
// many were dropped. The config store calls it when it patches the network
// document and when it reserves an address (spec §4.3).
func Prune(reservations map[string]model.Reservation, now time.Time) map[string]model.Reservation {
	pruned := make(map[string]model.Reservation, len(reservations))
	dropped := 0
	for addr, r := range reservations {
		validUntil, err := time.Parse(model.TimeFormat, r.ValidUntil)
		if err != nil || !validUntil.After(now) {
			dropped++
			continue
		}
		pruned[addr] = r
	}
	if dropped > 0 {
		klog.V(2).InfoS("pruned expired address reservations", "dropped", dropped, "remaining", len(pruned))
	}
	return pruned
}
