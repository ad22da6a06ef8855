package cli

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/wgquickrs/agent/internal/pkg/crypto"
	"github.com/wgquickrs/agent/internal/pkg/model"
	"github.com/wgquickrs/agent/pkg/config"
	"github.com/wgquickrs/agent/pkg/options"
)

func initTestConfig(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	keyA, err := crypto.GeneratePrivateKey()
	if err != nil {
		t.Fatalf("GeneratePrivateKey() error = %v", err)
	}
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
	confPath := filepath.Join(dir, "conf.yml")
	if err := os.WriteFile(confPath, out, 0o600); err != nil {
		t.Fatalf("os.WriteFile() error = %v", err)
	}

	configDir := options.NewConfigDirOptions()
	configDir.Dir = dir
	config.Init(&config.Config{ConfigDir: configDir, Log: options.NewLogOptions()})
}

func TestMutatePersistsValidatedChange(t *testing.T) {
	initTestConfig(t)

	err := mutate(func(cfg *model.Config) error {
		cfg.Agent.Vpn.Port = 51821
		return nil
	})
	if err != nil {
		t.Fatalf("mutate() error = %v", err)
	}

	cfg, err := openStore().Get()
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if cfg.Agent.Vpn.Port != 51821 {
		t.Errorf("Agent.Vpn.Port = %d, want 51821", cfg.Agent.Vpn.Port)
	}
}

func TestMutateRejectsInvalidChange(t *testing.T) {
	initTestConfig(t)

	err := mutate(func(cfg *model.Config) error {
		cfg.Network.Subnet = "not-a-cidr"
		return nil
	})
	if err == nil {
		t.Fatal("mutate() error = nil, want a validation error")
	}

	cfg, getErr := openStore().Get()
	if getErr != nil {
		t.Fatalf("Get() error = %v", getErr)
	}
	if cfg.Network.Subnet != "192.168.10.0/24" {
		t.Errorf("invalid mutation was persisted: Subnet = %q", cfg.Network.Subnet)
	}
}
