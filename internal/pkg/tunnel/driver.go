// Package tunnel reconciles the local WireGuard interface with the
// configuration model: it renders the on-disk .conf file and drives
// wg-quick/wg through the shell runner, tracking an in-process status
// enum (spec §4.5).
package tunnel

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"k8s.io/klog/v2"

	"github.com/wgquickrs/agent/internal/pkg/atomicfile"
	"github.com/wgquickrs/agent/internal/pkg/model"
	"github.com/wgquickrs/agent/internal/pkg/shell"
	"github.com/wgquickrs/agent/internal/pkg/wgsynth"
)

// ProbeInterval is how often the background reconciler re-queries reality
// and corrects the cached status (spec §4.5).
const ProbeInterval = 10 * time.Second

// Driver owns the interface name, the generated .conf path, and the
// in-process status cell.
type Driver struct {
	iface   string
	confDir string
	wgTool  string
	mu      sync.Mutex
	cond    *sync.Cond
	status  Status
}

// New returns a Driver for the named interface. wgConfigFolder is where the
// generated .conf file is written; wgTool is the path to the wg binary
// ("wg" / "awg").
func New(iface, wgConfigFolder, wgTool string) *Driver {
	d := &Driver{iface: iface, confDir: wgConfigFolder, wgTool: wgTool, status: Unknown}
	d.cond = sync.NewCond(&d.mu)
	return d
}

// confPath returns the path of the generated .conf file for this interface.
func (d *Driver) confPath() string {
	return filepath.Join(d.confDir, d.iface+".conf")
}

// Materialize renders network from this_peer's point of view and writes it
// to <wireguard_config_folder>/<iface>.conf with mode 0600, where iface is
// the interface name the Driver was created with (cmd/app/agent passes the
// network identifier). It must be called before EnableTunnel (spec §4.5).
func (d *Driver) Materialize(network model.Network) error {
	text, err := wgsynth.Synthesize(network, network.ThisPeer, false)
	if err != nil {
		return err
	}
	return atomicfile.Write(d.confPath(), []byte(text), 0o600)
}

// Status returns the cached status without re-probing reality.
func (d *Driver) Status() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.status.String()
}

// Probe shells out to `wg show <iface>` and returns the observed status:
// Up on exit 0 with non-empty output, Down on a "no such device" failure,
// Unknown on any other error (logged). It does not update the cache; call
// Reconcile for that.
func (d *Driver) Probe(ctx context.Context) Status {
	out, err := shell.Run(ctx, "", d.wgTool, "show", d.iface)
	if err != nil {
		if isNoSuchDevice(err) {
			return Down
		}
		klog.V(1).InfoS("tunnel status probe failed", "iface", d.iface, "error", err)
		return Unknown
	}
	if out == "" {
		return Down
	}
	return Up
}

// Reconcile probes reality and updates the cached status if it diverged,
// logging the transition.
func (d *Driver) Reconcile(ctx context.Context) {
	observed := d.Probe(ctx)
	d.mu.Lock()
	defer d.mu.Unlock()
	if observed != d.status {
		klog.InfoS("tunnel status diverged from cache; reconciling", "iface", d.iface, "cached", d.status, "observed", observed)
		d.status = observed
		d.cond.Broadcast()
	}
}

// RunProbeLoop blocks, reconciling every ProbeInterval, until ctx is done.
func (d *Driver) RunProbeLoop(ctx context.Context) {
	ticker := time.NewTicker(ProbeInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.Reconcile(ctx)
		}
	}
}

// EnableTunnel brings the interface up via `wg-quick up <iface>` unless it
// is already Up. On success, callers waiting on WaitForStatus are woken.
func (d *Driver) EnableTunnel(ctx context.Context) error {
	d.mu.Lock()
	if d.status == Up {
		d.mu.Unlock()
		return nil
	}
	d.mu.Unlock()

	if _, err := shell.Run(ctx, "", "wg-quick", "up", d.iface); err != nil {
		return err
	}

	d.mu.Lock()
	d.status = Up
	d.cond.Broadcast()
	d.mu.Unlock()
	return nil
}

// DisableTunnel brings the interface down via `wg-quick down <iface>`
// unless it is already Down.
func (d *Driver) DisableTunnel(ctx context.Context) error {
	d.mu.Lock()
	if d.status == Down {
		d.mu.Unlock()
		return nil
	}
	d.mu.Unlock()

	if _, err := shell.Run(ctx, "", "wg-quick", "down", d.iface); err != nil {
		return err
	}

	d.mu.Lock()
	d.status = Down
	d.cond.Broadcast()
	d.mu.Unlock()
	return nil
}

// WaitForStatus blocks until the cached status differs from the status
// observed at call time, or ctx is done.
func (d *Driver) WaitForStatus(ctx context.Context) Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	start := d.status
	done := make(chan struct{})
	go func() {
		<-ctx.Done()
		d.mu.Lock()
		d.cond.Broadcast()
		d.mu.Unlock()
		close(done)
	}()
	for d.status == start && ctx.Err() == nil {
		d.cond.Wait()
	}
	return d.status
}

func isNoSuchDevice(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "no such device") || strings.Contains(msg, "does not exist")
}
