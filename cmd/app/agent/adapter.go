package agent

import (
	"context"
	"time"

	"github.com/wgquickrs/agent/internal/pkg/configstore"
	"github.com/wgquickrs/agent/internal/pkg/crypto"
	"github.com/wgquickrs/agent/internal/pkg/model"
	"github.com/wgquickrs/agent/internal/pkg/tunnel"
)

// telemetryAdapter satisfies configstore.TunnelStatus, translating the
// driver's public-key-keyed telemetry into the peer-id-keyed shape the
// network summary wants. It is kept separate from *tunnel.Driver so that
// package does not need to know about peer identities at all.
type telemetryAdapter struct {
	driver *tunnel.Driver
	store  *configstore.Store
}

func newTelemetryAdapter(driver *tunnel.Driver, store *configstore.Store) *telemetryAdapter {
	return &telemetryAdapter{driver: driver, store: store}
}

func (a *telemetryAdapter) Status() string {
	return a.driver.Status()
}

func (a *telemetryAdapter) Telemetry() map[string]configstore.PeerTelemetry {
	cfg, err := a.store.Get()
	if err != nil {
		return nil
	}

	byPublicKey := make(map[string]string, len(cfg.Network.Peers))
	for peerID, peer := range cfg.Network.Peers {
		pub, err := crypto.DerivePublicKey(peer.PrivateKey)
		if err != nil {
			continue
		}
		byPublicKey[pub] = peerID
	}

	raw := a.driver.Telemetry(context.Background())
	out := make(map[string]configstore.PeerTelemetry, len(raw))
	for _, t := range raw {
		peerID, ok := byPublicKey[t.PublicKey]
		if !ok {
			continue
		}
		entry := configstore.PeerTelemetry{RxBytes: t.RxBytes, TxBytes: t.TxBytes}
		if t.LastHandshake > 0 {
			entry.LastHandshake = time.Unix(t.LastHandshake, 0).UTC().Format(model.TimeFormat)
		}
		out[peerID] = entry
	}
	return out
}
