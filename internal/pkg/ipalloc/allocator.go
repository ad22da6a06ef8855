// Package ipalloc allocates IPv4 addresses within a network's subnet and
// tracks time-bounded reservations on addresses not yet backed by a peer
// (spec §4.3).
package ipalloc

import (
	"net/netip"
	"time"

	"k8s.io/klog/v2"

	"github.com/wgquickrs/agent/internal/pkg/model"
	"github.com/wgquickrs/agent/pkg/utils/ip"
)

// NextFree returns the lowest-numbered address in prefix that is neither the
// network nor the broadcast address and does not appear in taken. It
// returns ok=false if the subnet is exhausted. Deterministic and linear in
// the size of the subnet.
func NextFree(prefix netip.Prefix, taken map[netip.Addr]struct{}) (addr netip.Addr, ok bool) {
	network := ip.NetworkAddr(prefix)
	broadcast := ip.BroadcastAddr(prefix)

	for cur := network.Next(); cur.IsValid() && prefix.Contains(cur) && cur != broadcast; cur = cur.Next() {
		if _, isTaken := taken[cur]; isTaken {
			continue
		}
		return cur, true
	}
	klog.V(2).InfoS("no free address in subnet", "subnet", prefix, "taken", len(taken))
	return netip.Addr{}, false
}

// TakenAddresses returns the union of every peer's address and every live
// (non-expired) reservation's address, as NextFree expects it.
func TakenAddresses(peers map[string]model.Peer, reservations map[string]model.Reservation, now time.Time) map[netip.Addr]struct{} {
	taken := make(map[netip.Addr]struct{}, len(peers)+len(reservations))
	for _, p := range peers {
		if addr, err := netip.ParseAddr(p.Address); err == nil {
			taken[addr] = struct{}{}
		}
	}
	for addrStr, r := range reservations {
		validUntil, err := time.Parse(model.TimeFormat, r.ValidUntil)
		if err != nil || !validUntil.After(now) {
			continue
		}
		if addr, err := netip.ParseAddr(addrStr); err == nil {
			taken[addr] = struct{}{}
		}
	}
	return taken
}
