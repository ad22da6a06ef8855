package configstore

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/wgquickrs/agent/internal/pkg/crypto"
	"github.com/wgquickrs/agent/internal/pkg/model"
)

func writeFixture(t *testing.T, dir string) string {
	t.Helper()
	keyA, _ := crypto.GeneratePrivateKey()

	cfg := model.Config{
		Agent: model.Agent{Address: "203.0.113.5"},
		Network: model.Network{
			Identifier: "home",
			Subnet:     "192.168.10.0/24",
			ThisPeer:   "peer-a",
			Peers: map[string]model.Peer{
				"peer-a": {Name: "a", Address: "192.168.10.1", PrivateKey: keyA},
			},
			Connections:  map[string]model.Connection{},
			Reservations: map[string]model.Reservation{},
			UpdatedAt:    model.NowString(),
		},
	}
	out, err := yaml.Marshal(cfg)
	if err != nil {
		t.Fatalf("yaml.Marshal() error = %v", err)
	}
	path := filepath.Join(dir, "conf.yml")
	if err := os.WriteFile(path, out, 0o600); err != nil {
		t.Fatalf("os.WriteFile() error = %v", err)
	}
	return path
}

func TestStoreGetLoadsAndCaches(t *testing.T) {
	path := writeFixture(t, t.TempDir())
	store := New(path, nil)

	cfg, err := store.Get()
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if cfg.Network.Identifier != "home" {
		t.Errorf("Network.Identifier = %q, want %q", cfg.Network.Identifier, "home")
	}

	digest1, err := store.Digest()
	if err != nil {
		t.Fatalf("Digest() error = %v", err)
	}
	digest2, _ := store.Digest()
	if digest1 != digest2 {
		t.Error("Digest() changed between calls with no mutation in between")
	}
}

func TestStoreSetPersistsAndUpdatesDigest(t *testing.T) {
	path := writeFixture(t, t.TempDir())
	store := New(path, nil)

	cfg, _ := store.Get()
	before, _ := store.Digest()

	cfg.Network.Identifier = "renamed"
	after, err := store.Set(cfg)
	if err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if after == before {
		t.Error("Set() did not change the digest after a content change")
	}

	reloaded, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("os.ReadFile() error = %v", err)
	}
	var onDisk model.Config
	if err := yaml.Unmarshal(reloaded, &onDisk); err != nil {
		t.Fatalf("yaml.Unmarshal() error = %v", err)
	}
	if onDisk.Network.Identifier != "renamed" {
		t.Errorf("on-disk Network.Identifier = %q, want %q", onDisk.Network.Identifier, "renamed")
	}
}

func TestStoreCompareAndSetRejectsStaleDigest(t *testing.T) {
	path := writeFixture(t, t.TempDir())
	store := New(path, nil)

	cfg, _ := store.Get()
	if _, err := store.CompareAndSet(cfg, "not-the-real-digest"); err == nil {
		t.Error("CompareAndSet() with a stale digest: want error, got nil")
	}

	digest, _ := store.Digest()
	if _, err := store.CompareAndSet(cfg, digest); err != nil {
		t.Errorf("CompareAndSet() with the current digest: unexpected error: %v", err)
	}
}

func TestStorePatchNetworkRejectsInvalidDocument(t *testing.T) {
	path := writeFixture(t, t.TempDir())
	store := New(path, nil)

	before, _ := os.ReadFile(path)

	bad := []byte(`identifier: ""
subnet: "192.168.10.0/24"
this_peer: "peer-a"
peers: {}
`)
	if _, err := store.PatchNetwork(bad, ""); err == nil {
		t.Error("PatchNetwork() with an empty identifier: want error, got nil")
	}

	after, _ := os.ReadFile(path)
	if string(before) != string(after) {
		t.Error("PatchNetwork() wrote to disk despite a validation failure")
	}
}

func TestStorePatchNetworkAcceptsValidDocument(t *testing.T) {
	path := writeFixture(t, t.TempDir())
	store := New(path, nil)

	doc := []byte(`identifier: home
subnet: "192.168.10.0/24"
this_peer: peer-a
peers:
  peer-a:
    name: a
    address: 192.168.10.1
    private_key: ` + mustKey(t) + `
connections: {}
reservations: {}
`)
	digest, err := store.PatchNetwork(doc, "")
	if err != nil {
		t.Fatalf("PatchNetwork() error = %v", err)
	}
	if digest == "" {
		t.Error("PatchNetwork() returned an empty digest on success")
	}
}

func mustKey(t *testing.T) string {
	t.Helper()
	k, err := crypto.GeneratePrivateKey()
	if err != nil {
		t.Fatalf("GeneratePrivateKey() error = %v", err)
	}
	return k
}
