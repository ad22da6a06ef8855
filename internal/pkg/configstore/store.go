// Package configstore is the single source of truth for the agent's Config
// and its content digest (spec §4.1). Every HTTP handler and CLI command
// goes through a Store rather than touching conf.yml directly. Each Store
// keeps its own cache; Stores opened on the same path do not see each
// other's writes once loaded.
package configstore

import (
	"net/netip"
	"os"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
	"k8s.io/klog/v2"

	"github.com/wgquickrs/agent/internal/pkg/atomicfile"
	"github.com/wgquickrs/agent/internal/pkg/code"
	"github.com/wgquickrs/agent/internal/pkg/crypto"
	"github.com/wgquickrs/agent/internal/pkg/ipalloc"
	"github.com/wgquickrs/agent/internal/pkg/model"
	"github.com/wgquickrs/agent/internal/pkg/validate"
	"github.com/marmotedu/errors"
)

// TunnelStatus is the subset of the tunnel driver's surface the store needs
// to build a Summary. Defined here (rather than imported from
// internal/pkg/tunnel) so configstore does not depend on the driver
// package; cmd/app/agent wires a concrete *tunnel.Driver into it.
type TunnelStatus interface {
	Status() string
	Telemetry() map[string]PeerTelemetry
}

// PeerTelemetry is one peer's live transfer counters and last handshake.
type PeerTelemetry struct {
	RxBytes       int64  `json:"rx_bytes"`
	TxBytes       int64  `json:"tx_bytes"`
	LastHandshake string `json:"last_handshake,omitempty"`
}

// Summary is the read-mostly projection served by GET /api/network/summary.
type Summary struct {
	Digest    string                   `json:"digest"`
	Status    string                   `json:"status,omitempty"`
	Timestamp string                   `json:"timestamp"`
	Agent     *model.Agent             `json:"agent,omitempty"`
	Network   *model.Network           `json:"network,omitempty"`
	Telemetry map[string]PeerTelemetry `json:"telemetry,omitempty"`
}

// Store caches (Config, digest) behind a single mutex and owns conf.yml.
type Store struct {
	mu     sync.Mutex
	path   string
	cfg    model.Config
	digest string
	loaded bool
	driver TunnelStatus
}

// New returns a Store that will read/write path. Nothing is read from disk
// until the first Get call.
func New(path string, driver TunnelStatus) *Store {
	return &Store{path: path, driver: driver}
}

// Get returns a clone of the current configuration, loading it from disk on
// first use.
func (s *Store) Get() (model.Config, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(); err != nil {
		return model.Config{}, err
	}
	return s.cfg.Clone(), nil
}

// Digest returns the current content digest without cloning the config.
func (s *Store) Digest() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(); err != nil {
		return "", err
	}
	return s.digest, nil
}

// Summary builds the GET /api/network/summary projection. When onlyDigest
// is true, Agent/Network/Telemetry are left nil. Status and Telemetry are
// queried from the tunnel driver; Telemetry is only populated when status
// is "up".
func (s *Store) Summary(onlyDigest bool) (Summary, error) {
	s.mu.Lock()
	if err := s.ensureLoaded(); err != nil {
		s.mu.Unlock()
		return Summary{}, err
	}
	digest := s.digest
	cfg := s.cfg.Clone()
	s.mu.Unlock()

	out := Summary{Digest: digest, Timestamp: model.NowString()}
	if s.driver != nil {
		out.Status = s.driver.Status()
	}
	if onlyDigest {
		return out, nil
	}

	out.Agent = &cfg.Agent
	out.Network = &cfg.Network
	if out.Status == "up" && s.driver != nil {
		out.Telemetry = s.driver.Telemetry()
	}
	return out, nil
}

// Set assigns network.updated_at, serializes cfg, writes it atomically,
// and replaces the cache. Callers MUST have already validated cfg.
func (s *Store) Set(cfg model.Config) (digest string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setLocked(cfg)
}

// setLocked implements Set assuming s.mu is already held.
func (s *Store) setLocked(cfg model.Config) (string, error) {
	cfg.Network.UpdatedAt = model.NowString()

	out, err := yaml.Marshal(cfg)
	if err != nil {
		return "", errors.WithCode(code.ErrConfSerialization, "failed to serialize configuration: %s", err.Error())
	}

	if err := atomicfile.Write(s.path, out, 0o600); err != nil {
		return "", errors.WithCode(code.ErrConfWrite, "failed to write %s: %s", s.path, err.Error())
	}

	s.cfg = cfg
	s.digest = crypto.Digest(out)
	s.loaded = true
	return s.digest, nil
}

// CompareAndSet writes cfg only if the store's current digest still equals
// expectedDigest (an optimistic-concurrency precondition the client
// supplies from a prior read). An empty expectedDigest skips the check.
func (s *Store) CompareAndSet(cfg model.Config, expectedDigest string) (digest string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(); err != nil {
		return "", err
	}
	if expectedDigest != "" && expectedDigest != s.digest {
		return "", errors.WithCode(code.ErrConfStale, "configuration changed since digest %s was read", expectedDigest)
	}
	return s.setLocked(cfg)
}

// PatchNetwork deserializes raw as a complete Network document, validates
// the resulting Config in full, and on success persists it. On validation
// failure nothing is written and the validation error is returned verbatim
// so the caller can report a structured 400.
func (s *Store) PatchNetwork(raw []byte, expectedDigest string) (digest string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(); err != nil {
		return "", err
	}
	if expectedDigest != "" && expectedDigest != s.digest {
		return "", errors.WithCode(code.ErrConfStale, "configuration changed since digest %s was read", expectedDigest)
	}

	var network model.Network
	if err := yaml.Unmarshal(raw, &network); err != nil {
		return "", errors.WithCode(code.ErrConfParse, "failed to parse network document: %s", err.Error())
	}

	candidate := s.cfg
	candidate.Network = network
	candidate.Network.Reservations = ipalloc.Prune(candidate.Network.Reservations, time.Now())

	if err := validate.Config(candidate, time.Now()); err != nil {
		return "", err
	}

	return s.setLocked(candidate)
}

// ReserveAddress allocates the lowest free address in the network's subnet,
// commits a reservation for it under a freshly generated peer id, and
// persists the result (spec §4.3). An exhausted subnet is reported as an
// AddressIsTaken validation error (400) since it is operator-facing, not a
// programming error.
func (s *Store) ReserveAddress() (address string, peerID string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(); err != nil {
		return "", "", err
	}

	prefix, err := netip.ParsePrefix(s.cfg.Network.Subnet)
	if err != nil {
		return "", "", errors.WithCode(code.ErrNotCIDR, "network subnet %q is not a valid CIDR", s.cfg.Network.Subnet)
	}

	now := time.Now()
	reservations := ipalloc.Prune(s.cfg.Network.Reservations, now)

	addr, newPeerID, reservation, ok := ipalloc.Reserve(prefix, s.cfg.Network.Peers, reservations, now)
	if !ok {
		return "", "", errors.WithCode(code.ErrAddressIsTaken, "no free address remains in subnet %s", prefix.String())
	}

	candidate := s.cfg
	if reservations == nil {
		reservations = make(map[string]model.Reservation, 1)
	}
	reservations[addr] = reservation
	candidate.Network.Reservations = reservations

	if err := validate.Config(candidate, now); err != nil {
		return "", "", err
	}

	if _, err := s.setLocked(candidate); err != nil {
		return "", "", err
	}
	return addr, newPeerID, nil
}

// ensureLoaded reads and parses conf.yml on first use, repairing invariant
// I5 (agent.address vs this_peer's endpoint host) if it has drifted, and
// persisting the repair. s.mu MUST already be held.
func (s *Store) ensureLoaded() error {
	if s.loaded {
		return nil
	}

	raw, err := os.ReadFile(s.path)
	if err != nil {
		return errors.WithCode(code.ErrConfRead, "failed to read %s: %s", s.path, err.Error())
	}

	var cfg model.Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return errors.WithCode(code.ErrConfParse, "failed to parse %s: %s", s.path, err.Error())
	}

	if repaired := repairThisPeerEndpoint(&cfg); repaired {
		klog.Warningf("configstore: this_peer endpoint host did not match agent.address; repairing and persisting")
		if _, err := s.setLocked(cfg); err != nil {
			return err
		}
		return nil
	}

	s.cfg = cfg
	s.digest = crypto.Digest(raw)
	s.loaded = true
	return nil
}

// repairThisPeerEndpoint enforces invariant I5: agent.address must equal
// the host portion of peers[this_peer].endpoint.value when the endpoint is
// enabled. It returns true if it changed cfg.
func repairThisPeerEndpoint(cfg *model.Config) bool {
	peer, ok := cfg.Network.Peers[cfg.Network.ThisPeer]
	if !ok || !peer.Endpoint.Enabled {
		return false
	}
	if peer.Endpoint.Address == cfg.Agent.Address {
		return false
	}
	peer.Endpoint.Address = cfg.Agent.Address
	cfg.Network.Peers[cfg.Network.ThisPeer] = peer
	return true
}
