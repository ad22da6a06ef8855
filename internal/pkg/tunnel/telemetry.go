package tunnel

import (
	"context"
	"strconv"
	"strings"

	"k8s.io/klog/v2"

	"github.com/wgquickrs/agent/internal/pkg/shell"
)

// PeerTelemetry is one peer's live transfer counters and last handshake,
// keyed by public key in the raw dump (callers map public key -> peer id).
type PeerTelemetry struct {
	PublicKey     string
	RxBytes       int64
	TxBytes       int64
	LastHandshake int64 // unix seconds, 0 if never
}

// Telemetry parses `wg show <iface> dump` into a slice of per-peer
// counters. On any shell or parse failure it logs and returns nil: callers
// degrade to reporting no telemetry rather than failing the request (spec
// §4.5, §7 — ShellError is "soft" here).
func (d *Driver) Telemetry(ctx context.Context) []PeerTelemetry {
	out, err := shell.Run(ctx, "", d.wgTool, "show", d.iface, "dump")
	if err != nil {
		klog.V(1).InfoS("tunnel telemetry probe failed", "iface", d.iface, "error", err)
		return nil
	}
	return parseDump(out)
}

// parseDump parses the tab-separated output of `wg show <iface> dump`.
// The first line describes the interface itself; peer rows follow, one per
// line, in the order: public-key, preshared-key, endpoint, allowed-ips,
// latest-handshake, rx-bytes, tx-bytes, persistent-keepalive.
func parseDump(out string) []PeerTelemetry {
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) <= 1 {
		return nil
	}

	var peers []PeerTelemetry
	for _, line := range lines[1:] {
		fields := strings.Split(line, "\t")
		if len(fields) < 8 {
			continue
		}
		lastHandshake, _ := strconv.ParseInt(fields[4], 10, 64)
		rx, _ := strconv.ParseInt(fields[5], 10, 64)
		tx, _ := strconv.ParseInt(fields[6], 10, 64)
		peers = append(peers, PeerTelemetry{
			PublicKey:     fields[0],
			RxBytes:       rx,
			TxBytes:       tx,
			LastHandshake: lastHandshake,
		})
	}
	return peers
}
