package validate

import (
	"net/netip"
	"time"

	"github.com/marmotedu/errors"

	"github.com/wgquickrs/agent/internal/pkg/code"
	"github.com/wgquickrs/agent/internal/pkg/model"
)

// Config validates every field rule plus cross-field invariants I1-I4, I6
// and I7 of a whole configuration (spec §3, §4.2); I5 is not checked here
// (see Network). now is injected so callers (and
// tests) control what "live reservation" means.
func Config(cfg model.Config, now time.Time) error {
	if err := Agent(cfg.Agent); err != nil {
		return err
	}
	return Network(cfg.Network, now)
}

// Agent validates the host-local operational settings.
func Agent(a model.Agent) error {
	if a.Address != "" {
		if _, err := IPv4Address(a.Address); err != nil {
			return err
		}
	}
	if a.Web.Https.Enabled {
		if err := TlsFile(a.Web.Https.TlsCert); err != nil {
			return err
		}
		if err := TlsFile(a.Web.Https.TlsKey); err != nil {
			return err
		}
	}
	if a.Vpn.Enabled {
		if err := ExecutablePath(a.Vpn.WgTool, true, code.ErrWgToolNotFound); err != nil {
			return err
		}
		if a.Vpn.WgUserspaceBinary != "" {
			if err := ExecutablePath(a.Vpn.WgUserspaceBinary, true, code.ErrWgUserspaceNotFound); err != nil {
				return err
			}
		}
	}
	if a.Firewall.Enabled {
		if err := GatewayIface(a.Firewall.GatewayIface); err != nil {
			return err
		}
		if err := ExecutablePath(a.Firewall.Utility, true, code.ErrFirewallUtilityNotFound); err != nil {
			return err
		}
	}
	return nil
}

// Network validates the declarative overlay: identity, every peer and
// connection, and invariants I1-I4 across them. I5 (agent address mirrors
// this_peer's endpoint host) is not checked here; the configuration store
// repairs it when it loads conf.yml.
func Network(n model.Network, now time.Time) error {
	if n.Identifier == "" {
		return errors.WithCode(code.ErrEmptyNetworkName, "network identifier must not be empty")
	}
	subnet, err := CIDR(n.Subnet)
	if err != nil {
		return err
	}

	if _, ok := n.Peers[n.ThisPeer]; !ok {
		return errors.WithCode(code.ErrInvalidUuid, "this_peer %q does not reference an existing peer", n.ThisPeer)
	}

	taken := make(map[netip.Addr]string, len(n.Peers))
	for id, p := range n.Peers {
		if err := Peer(p); err != nil {
			return err
		}
		addr, _ := IPv4Address(p.Address)
		if owner, dup := taken[addr]; dup {
			return errors.WithCode(code.ErrAddressIsTaken, "address %s is assigned to both %q and %q", addr, owner, id)
		}
		taken[addr] = id
	}

	reserved := liveReservations(n.Reservations, now)

	for id, p := range n.Peers {
		addr, _ := IPv4Address(p.Address)
		ctx := peerContext{peerID: id, subnet: subnet, takenBy: taken, reservedFor: reserved}
		if err := peerAgainstSiblings(ctx, addr); err != nil {
			return err
		}
	}

	for id, c := range n.Connections {
		if _, _, err := connectionPeers(id, n.Peers); err != nil {
			return err
		}
		if err := Connection(c); err != nil {
			return err
		}
	}

	return nil
}

// liveReservations returns the subset of reservations whose valid_until is
// still in the future, keyed by address, with the reservation's peer id as
// the map value.
func liveReservations(reservations map[string]model.Reservation, now time.Time) map[netip.Addr]string {
	live := make(map[netip.Addr]string, len(reservations))
	for addrStr, r := range reservations {
		validUntil, err := time.Parse(model.TimeFormat, r.ValidUntil)
		if err != nil || !validUntil.After(now) {
			continue
		}
		addr, err := netip.ParseAddr(addrStr)
		if err != nil {
			continue
		}
		live[addr] = r.PeerID
	}
	return live
}
