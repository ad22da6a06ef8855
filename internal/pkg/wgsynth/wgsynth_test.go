package wgsynth

import (
	"strings"
	"testing"

	"github.com/wgquickrs/agent/internal/pkg/crypto"
	"github.com/wgquickrs/agent/internal/pkg/model"
)

func testNetwork(t *testing.T) model.Network {
	t.Helper()
	keyA, _ := crypto.GeneratePrivateKey()
	keyB, _ := crypto.GeneratePrivateKey()
	psk, _ := crypto.GeneratePresharedKey()

	return model.Network{
		Identifier: "home",
		Subnet:     "192.168.10.0/24",
		ThisPeer:   "peer-a",
		Peers: map[string]model.Peer{
			"peer-a": {
				Name: "a", Address: "192.168.10.1", PrivateKey: keyA,
				Endpoint: model.Endpoint{Enabled: true, Address: "203.0.113.5", Port: 51820},
			},
			"peer-b": {
				Name: "b", Address: "192.168.10.2", PrivateKey: keyB,
			},
		},
		Connections: map[string]model.Connection{
			model.ConnectionID("peer-a", "peer-b"): {
				Enabled:        true,
				PreSharedKey:   psk,
				// ConnectionID puts the greater id first, so side a is peer-b.
				AllowedIPsAToB: []string{"192.168.10.1/32"},
				AllowedIPsBToA: []string{"192.168.10.2/32"},
				PersistentKeepalive: model.PersistentKeepalive{
					Enabled: true, Period: 25,
				},
			},
		},
	}
}

func TestSynthesizeIncludesEnabledConnection(t *testing.T) {
	n := testNetwork(t)
	out, err := Synthesize(n, "peer-b", false)
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	if !strings.Contains(out, "[Interface]") {
		t.Error("output missing [Interface] section")
	}
	if !strings.Contains(out, "[Peer]") {
		t.Error("output missing [Peer] section")
	}
	if !strings.Contains(out, "AllowedIPs = 192.168.10.1/32") {
		t.Errorf("output missing expected AllowedIPs line:\n%s", out)
	}
	if !strings.Contains(out, "Endpoint = 203.0.113.5:51820") {
		t.Errorf("output missing expected Endpoint line (peer-b -> peer-a):\n%s", out)
	}
	if !strings.Contains(out, "PersistentKeepalive = 25") {
		t.Errorf("output missing expected PersistentKeepalive line:\n%s", out)
	}
}

func TestSynthesizeOmitsDisabledConnection(t *testing.T) {
	n := testNetwork(t)
	conn := n.Connections[model.ConnectionID("peer-a", "peer-b")]
	conn.Enabled = false
	n.Connections[model.ConnectionID("peer-a", "peer-b")] = conn

	out, err := Synthesize(n, "peer-a", false)
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	if strings.Contains(out, "[Peer]") {
		t.Errorf("output contains a [Peer] block for a disabled connection:\n%s", out)
	}
}

func TestSynthesizeUnknownPeer(t *testing.T) {
	n := testNetwork(t)
	if _, err := Synthesize(n, "ghost", false); err == nil {
		t.Error("Synthesize() with unknown peer id: want error, got nil")
	}
}

func TestSynthesizeStrippedOmitsComments(t *testing.T) {
	n := testNetwork(t)
	out, err := Synthesize(n, "peer-a", true)
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	if strings.Contains(out, "#") {
		t.Errorf("stripped output contains a comment line:\n%s", out)
	}
}

func TestSynthesizeDerivesPublicKeyNotStored(t *testing.T) {
	n := testNetwork(t)
	out, err := Synthesize(n, "peer-a", false)
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	wantPub, _ := crypto.DerivePublicKey(n.Peers["peer-b"].PrivateKey)
	if !strings.Contains(out, "PublicKey = "+wantPub) {
		t.Errorf("output does not contain the derived public key for peer-b:\n%s", out)
	}
}
