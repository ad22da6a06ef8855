package validate

import (
	"testing"
	"time"

	"github.com/wgquickrs/agent/internal/pkg/crypto"
	"github.com/wgquickrs/agent/internal/pkg/model"
)

func validNetwork(t *testing.T) model.Network {
	t.Helper()
	keyA, err := crypto.GeneratePrivateKey()
	if err != nil {
		t.Fatalf("GeneratePrivateKey() error = %v", err)
	}
	keyB, err := crypto.GeneratePrivateKey()
	if err != nil {
		t.Fatalf("GeneratePrivateKey() error = %v", err)
	}
	psk, _ := crypto.GeneratePresharedKey()

	return model.Network{
		Identifier: "home",
		Subnet:     "192.168.10.0/24",
		ThisPeer:   "peer-a",
		Peers: map[string]model.Peer{
			"peer-a": {Name: "a", Address: "192.168.10.1", PrivateKey: keyA},
			"peer-b": {Name: "b", Address: "192.168.10.2", PrivateKey: keyB},
		},
		Connections: map[string]model.Connection{
			model.ConnectionID("peer-a", "peer-b"): {
				Enabled:        true,
				PreSharedKey:   psk,
				AllowedIPsAToB: []string{"192.168.10.2/32"},
				AllowedIPsBToA: []string{"192.168.10.1/32"},
			},
		},
		Reservations: map[string]model.Reservation{},
		UpdatedAt:    model.NowString(),
	}
}

func TestNetworkValid(t *testing.T) {
	n := validNetwork(t)
	if err := Network(n, time.Now()); err != nil {
		t.Errorf("Network() on a valid network: unexpected error: %v", err)
	}
}

func TestNetworkRejectsThisPeerMissing(t *testing.T) {
	n := validNetwork(t)
	n.ThisPeer = "does-not-exist"
	if err := Network(n, time.Now()); err == nil {
		t.Error("Network() with missing this_peer: want error, got nil")
	}
}

func TestNetworkRejectsDuplicateAddress(t *testing.T) {
	n := validNetwork(t)
	peerB := n.Peers["peer-b"]
	peerB.Address = "192.168.10.1"
	n.Peers["peer-b"] = peerB
	if err := Network(n, time.Now()); err == nil {
		t.Error("Network() with duplicate peer address: want error, got nil")
	}
}

func TestNetworkRejectsNetworkAddress(t *testing.T) {
	n := validNetwork(t)
	peerA := n.Peers["peer-a"]
	peerA.Address = "192.168.10.0"
	n.Peers["peer-a"] = peerA
	if err := Network(n, time.Now()); err == nil {
		t.Error("Network() with peer on the subnet's network address: want error, got nil")
	}
}

func TestNetworkRejectsBroadcastAddress(t *testing.T) {
	n := validNetwork(t)
	peerA := n.Peers["peer-a"]
	peerA.Address = "192.168.10.255"
	n.Peers["peer-a"] = peerA
	if err := Network(n, time.Now()); err == nil {
		t.Error("Network() with peer on the subnet's broadcast address: want error, got nil")
	}
}

func TestNetworkRejectsReservedAddressForDifferentPeer(t *testing.T) {
	n := validNetwork(t)
	future := time.Now().Add(time.Hour).UTC().Format(model.TimeFormat)
	n.Reservations["192.168.10.2"] = model.Reservation{PeerID: "someone-else", ValidUntil: future}
	if err := Network(n, time.Now()); err == nil {
		t.Error("Network() with address held by another peer's reservation: want error, got nil")
	}
}

func TestNetworkIgnoresExpiredReservation(t *testing.T) {
	n := validNetwork(t)
	past := time.Now().Add(-time.Hour).UTC().Format(model.TimeFormat)
	n.Reservations["192.168.10.2"] = model.Reservation{PeerID: "someone-else", ValidUntil: past}
	if err := Network(n, time.Now()); err != nil {
		t.Errorf("Network() with an expired reservation: unexpected error: %v", err)
	}
}

func TestNetworkRejectsDanglingConnection(t *testing.T) {
	n := validNetwork(t)
	n.Connections["peer-a*ghost"] = model.Connection{Enabled: true}
	if err := Network(n, time.Now()); err == nil {
		t.Error("Network() with a connection referencing a nonexistent peer: want error, got nil")
	}
}

func TestNetworkRejectsEmptyIdentifier(t *testing.T) {
	n := validNetwork(t)
	n.Identifier = ""
	if err := Network(n, time.Now()); err == nil {
		t.Error("Network() with empty identifier: want error, got nil")
	}
}
