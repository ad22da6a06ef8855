// Package wgsynth renders a WireGuard-compatible .conf file from a peer's
// point of view within a network model (spec §4.4). Synthesize is a pure
// function: no I/O, no shelling out. Public keys are never stored — they
// are always derived from a peer's private key at render time.
package wgsynth

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/marmotedu/errors"

	"github.com/wgquickrs/agent/internal/pkg/code"
	"github.com/wgquickrs/agent/internal/pkg/crypto"
	"github.com/wgquickrs/agent/internal/pkg/model"
	"github.com/wgquickrs/agent/pkg/environment"
)

// Version is substituted into the generated header comment. It is set once
// at process start from build-time version information (see
// pkg/environment).
var Version = environment.Version

// Synthesize renders the .conf text for peerID within network. When
// stripped is true, every comment and any directive the raw wg tool does
// not accept (DNS, MTU, PreUp/PostUp/PreDown/PostDown) is omitted.
func Synthesize(network model.Network, peerID string, stripped bool) (string, error) {
	peer, ok := network.Peers[peerID]
	if !ok {
		return "", errors.WithCode(code.ErrPeerNotFound, "peer %q not found", peerID)
	}

	subnetBits, err := subnetBits(network.Subnet)
	if err != nil {
		return "", err
	}

	var b strings.Builder

	if !stripped {
		fmt.Fprintf(&b, "# auto-generated using wg-quickrs (%s)\n", Version)
		fmt.Fprintf(&b, "# wg-quickrs network identifier: %s\n\n", network.Identifier)
		fmt.Fprintf(&b, "# Peer: %s (%s)\n", peer.Name, peerID)
	}

	b.WriteString("[Interface]\n")
	fmt.Fprintf(&b, "PrivateKey = %s\n", peer.PrivateKey)
	fmt.Fprintf(&b, "Address = %s/%d\n", peer.Address, subnetBits)
	if peer.Endpoint.Enabled && peer.Endpoint.Port != 0 {
		fmt.Fprintf(&b, "ListenPort = %d\n", peer.Endpoint.Port)
	}
	if !stripped {
		if peer.Dns.Enabled && len(peer.Dns.Addresses) > 0 {
			fmt.Fprintf(&b, "DNS = %s\n", strings.Join(peer.Dns.Addresses, ","))
		}
		if peer.Mtu.Enabled {
			fmt.Fprintf(&b, "MTU = %d\n", peer.Mtu.Value)
		}
		writeScripts(&b, "PreUp", peer.Scripts.PreUp)
		writeScripts(&b, "PostUp", peer.Scripts.PostUp)
		writeScripts(&b, "PreDown", peer.Scripts.PreDown)
		writeScripts(&b, "PostDown", peer.Scripts.PostDown)
	}
	b.WriteString("\n")

	ids := connectionIDsFor(network, peerID)
	for _, id := range ids {
		conn := network.Connections[id]
		if !conn.Enabled {
			continue
		}
		other, err := otherPeer(id, peerID, network.Peers)
		if err != nil {
			return "", err
		}

		pub, err := crypto.DerivePublicKey(other.PrivateKey)
		if err != nil {
			return "", errors.WithCode(code.ErrKeyDecodeFailed, "failed to derive public key for peer %q: %s", other.Name, err.Error())
		}

		otherID, _ := otherPeerID(id, peerID)

		if !stripped {
			fmt.Fprintf(&b, "# Linked Peer: %s (%s)\n", other.Name, otherID)
		}
		b.WriteString("[Peer]\n")
		fmt.Fprintf(&b, "PublicKey = %s\n", pub)
		if conn.PreSharedKey != "" {
			fmt.Fprintf(&b, "PresharedKey = %s\n", conn.PreSharedKey)
		}

		allowed := allowedIPsFor(id, peerID, conn)
		fmt.Fprintf(&b, "AllowedIPs = %s\n", strings.Join(allowed, ","))

		if conn.PersistentKeepalive.Enabled {
			fmt.Fprintf(&b, "PersistentKeepalive = %d\n", conn.PersistentKeepalive.Period)
		}
		if other.Endpoint.Enabled && other.Endpoint.Address != "" {
			fmt.Fprintf(&b, "Endpoint = %s:%d\n", other.Endpoint.Address, other.Endpoint.Port)
		}
		b.WriteString("\n")
	}

	return b.String(), nil
}

func subnetBits(cidr string) (int, error) {
	idx := strings.LastIndex(cidr, "/")
	if idx < 0 {
		return 0, errors.WithCode(code.ErrSerializationFailed, "subnet %q has no prefix length", cidr)
	}
	bits, err := strconv.Atoi(cidr[idx+1:])
	if err != nil {
		return 0, errors.WithCode(code.ErrSerializationFailed, "subnet %q has an invalid prefix length", cidr)
	}
	return bits, nil
}

func writeScripts(b *strings.Builder, directive string, scripts []model.Script) {
	for _, s := range scripts {
		if !s.Enabled {
			continue
		}
		fmt.Fprintf(b, "%s = %s\n", directive, s.Text)
	}
}

// connectionIDsFor returns, in sorted order for deterministic output, every
// connection id touching peerID.
func connectionIDsFor(network model.Network, peerID string) []string {
	var ids []string
	for id := range network.Connections {
		a, b, ok := model.SplitConnectionID(id)
		if !ok {
			continue
		}
		if a == peerID || b == peerID {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

func otherPeerID(connID, peerID string) (string, bool) {
	a, b, ok := model.SplitConnectionID(connID)
	if !ok {
		return "", false
	}
	if a == peerID {
		return b, true
	}
	return a, true
}

func otherPeer(connID, peerID string, peers map[string]model.Peer) (other model.Peer, err error) {
	otherID, ok := otherPeerID(connID, peerID)
	if !ok {
		return model.Peer{}, errors.WithCode(code.ErrPeerNotFound, "connection %q is malformed", connID)
	}
	other, ok = peers[otherID]
	if !ok {
		return model.Peer{}, errors.WithCode(code.ErrPeerNotFound, "peer %q not found", otherID)
	}
	return other, nil
}

// allowedIPsFor picks the AllowedIPs direction relative to peerID: a→b is
// emitted from a's perspective (describing how to reach b), so peerID's
// rendering uses the column naming the *other* side.
func allowedIPsFor(connID, peerID string, conn model.Connection) []string {
	a, _, _ := model.SplitConnectionID(connID)
	if a == peerID {
		return conn.AllowedIPsAToB
	}
	return conn.AllowedIPsBToA
}
