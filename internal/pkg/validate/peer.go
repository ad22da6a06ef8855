package validate

import (
	"net/netip"
	"strconv"

	"github.com/marmotedu/errors"

	"github.com/wgquickrs/agent/internal/pkg/code"
	"github.com/wgquickrs/agent/internal/pkg/model"
)

// peerContext carries the cross-field state a single peer must be checked
// against: its network's subnet, the addresses already taken by sibling
// peers, and the live (non-expired) reservations.
type peerContext struct {
	peerID       string
	subnet       netip.Prefix
	takenBy      map[netip.Addr]string // address -> owning peer id
	reservedFor  map[netip.Addr]string // address -> reservation's peer id
}

// Peer validates a single peer's fields, excluding the uniqueness and
// reservation checks that require the whole-network context (see
// peerAgainstSiblings).
func Peer(p model.Peer) error {
	if p.Name == "" {
		return errors.WithCode(code.ErrEmptyPeerName, "peer name must not be empty")
	}
	if _, err := IPv4Address(p.Address); err != nil {
		return err
	}
	if err := WireGuardKey(p.PrivateKey); err != nil {
		return err
	}
	if p.Endpoint.Enabled {
		if _, _, err := Endpoint(formatEndpoint(p.Endpoint.Address, p.Endpoint.Port)); err != nil {
			return err
		}
	}
	if p.Icon.Enabled && p.Icon.Value == "" {
		return errors.WithCode(code.ErrEmptyIcon, "icon must not be empty when enabled")
	}
	if p.Mtu.Enabled {
		if err := Mtu(p.Mtu.Value); err != nil {
			return err
		}
	}
	for _, list := range [][]model.Script{p.Scripts.PreUp, p.Scripts.PostUp, p.Scripts.PreDown, p.Scripts.PostDown} {
		for _, s := range list {
			if !s.Enabled {
				continue
			}
			if err := Script(s.Text); err != nil {
				return err
			}
		}
	}
	return nil
}

// peerAgainstSiblings checks the cross-field rules that need the rest of the
// network: address ∈ subnet, ≠ network/broadcast, not duplicated, not held
// by a live reservation for a different peer (I2, I3).
func peerAgainstSiblings(ctx peerContext, addr netip.Addr) error {
	if err := addrInSubnet(addr, ctx.subnet); err != nil {
		return err
	}
	if owner, ok := ctx.takenBy[addr]; ok && owner != ctx.peerID {
		return errors.WithCode(code.ErrAddressIsTaken, "address %s is already assigned to peer %s", addr, owner)
	}
	if reservedFor, ok := ctx.reservedFor[addr]; ok && reservedFor != ctx.peerID {
		return errors.WithCode(code.ErrAddressIsReserved, "address %s is held by a reservation", addr)
	}
	return nil
}

func formatEndpoint(address string, port uint16) string {
	return address + ":" + strconv.FormatUint(uint64(port), 10)
}
