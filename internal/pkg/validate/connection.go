package validate

import (
	"github.com/marmotedu/errors"

	"github.com/wgquickrs/agent/internal/pkg/code"
	"github.com/wgquickrs/agent/internal/pkg/model"
)

// Connection validates a single connection's fields. The two peers it links
// are validated separately (I4 — both exist and are distinct — is checked
// by the whole-network validator, which alone knows the peer set).
func Connection(c model.Connection) error {
	if err := WireGuardKey(c.PreSharedKey); err != nil {
		return err
	}
	for _, cidr := range c.AllowedIPsAToB {
		if err := AllowedIPsEntry(cidr); err != nil {
			return err
		}
	}
	for _, cidr := range c.AllowedIPsBToA {
		if err := AllowedIPsEntry(cidr); err != nil {
			return err
		}
	}
	if c.PersistentKeepalive.Enabled {
		if err := PersistentKeepalivePeriod(c.PersistentKeepalive.Period); err != nil {
			return err
		}
	}
	return nil
}

// connectionPeers decomposes id and checks I4: both ids exist in peers and
// are distinct.
func connectionPeers(id string, peers map[string]model.Peer) (a, b string, err error) {
	a, b, ok := model.SplitConnectionID(id)
	if !ok || a == b {
		return "", "", errors.WithCode(code.ErrInvalidConnectionID, "connection id %q does not decompose into two distinct peer ids", id)
	}
	if _, exists := peers[a]; !exists {
		return "", "", errors.WithCode(code.ErrInvalidConnectionID, "connection %q references unknown peer %q", id, a)
	}
	if _, exists := peers[b]; !exists {
		return "", "", errors.WithCode(code.ErrInvalidConnectionID, "connection %q references unknown peer %q", id, b)
	}
	return a, b, nil
}
