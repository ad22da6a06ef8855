// Package agent wires together the config store, tunnel driver, and HTTP
// server(s) into the running process, following the teacher's serve()/run()
// join pattern (cmd/app/api.go) generalized to the "join both, fail fast"
// combinator required by spec §5.
package agent

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"

	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"

	"github.com/wgquickrs/agent/cmd/app/router"
	"github.com/wgquickrs/agent/internal/pkg/configstore"
	"github.com/wgquickrs/agent/internal/pkg/crypto"
	"github.com/wgquickrs/agent/internal/pkg/model"
	"github.com/wgquickrs/agent/internal/pkg/tunnel"
	"github.com/wgquickrs/agent/pkg/options"
)

// Run loads conf.yml, materializes and (if enabled) brings up the tunnel,
// and serves the HTTP/HTTPS API until ctx is canceled or any of the joined
// tasks fails.
func Run(ctx context.Context, configDir *options.ConfigDirOptions) error {
	// A bootstrap store with no driver peeks at conf.yml to learn the
	// network identifier (the tunnel interface name) and wg tool, both
	// needed to construct the real driver below.
	bootstrap := configstore.New(configDir.ConfPath(), nil)
	cfg, err := bootstrap.Get()
	if err != nil {
		return err
	}

	driver := tunnel.New(cfg.Network.Identifier, configDir.WireguardConfigFolder, firstNonEmpty(cfg.Agent.Vpn.WgTool, "wg"))
	store := configstore.New(configDir.ConfPath(), newTelemetryAdapter(driver, bootstrap))

	issuer, err := crypto.NewTokenIssuer()
	if err != nil {
		return err
	}

	if cfg.Agent.Vpn.Enabled {
		if err := driver.Materialize(cfg.Network); err != nil {
			return err
		}
		if err := driver.EnableTunnel(ctx); err != nil {
			klog.Errorf("failed to bring up tunnel on startup: %v", err)
		}
	}

	engine := router.New(router.Dependencies{Store: store, Issuer: issuer, Driver: driver})

	g, gctx := errgroup.WithContext(ctx)

	if cfg.Agent.Vpn.Enabled {
		g.Go(func() error {
			driver.RunProbeLoop(gctx)
			return nil
		})
	}

	if cfg.Agent.Web.Http.Enabled {
		g.Go(func() error {
			return serveHTTP(gctx, cfg.Agent.Address, cfg.Agent.Web.Http, engine)
		})
	}
	if cfg.Agent.Web.Https.Enabled {
		g.Go(func() error {
			return serveHTTPS(gctx, cfg.Agent.Address, cfg.Agent.Web.Https, engine)
		})
	}

	return g.Wait()
}

func serveHTTP(ctx context.Context, address string, ep model.HttpEndpoint, handler http.Handler) error {
	addr := fmt.Sprintf("%s:%d", address, ep.Port)
	srv := &http.Server{Addr: addr, Handler: handler}
	return runServer(ctx, srv, func() error {
		klog.V(1).InfoS("listening and serving HTTP", "address", addr)
		return srv.ListenAndServe()
	})
}

func serveHTTPS(ctx context.Context, address string, ep model.HttpsEndpoint, handler http.Handler) error {
	addr := fmt.Sprintf("%s:%d", address, ep.Port)
	srv := &http.Server{Addr: addr, Handler: handler, TLSConfig: &tls.Config{MinVersion: tls.VersionTLS12}}
	return runServer(ctx, srv, func() error {
		klog.V(1).InfoS("listening and serving HTTPS", "address", addr)
		return srv.ListenAndServeTLS(ep.TlsCert, ep.TlsKey)
	})
}

func runServer(ctx context.Context, srv *http.Server, listen func() error) error {
	errCh := make(chan error, 1)
	go func() { errCh <- listen() }()

	select {
	case <-ctx.Done():
		return srv.Shutdown(context.Background())
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
