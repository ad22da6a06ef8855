package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/wgquickrs/agent/cmd/app/agent"
	"github.com/wgquickrs/agent/internal/pkg/code"
	"github.com/wgquickrs/agent/internal/pkg/configstore"
	"github.com/wgquickrs/agent/internal/pkg/crypto"
	"github.com/wgquickrs/agent/internal/pkg/model"
	"github.com/wgquickrs/agent/internal/pkg/validate"
	"github.com/marmotedu/errors"
	"github.com/wgquickrs/agent/pkg/config"
)

// newAgentCommand builds the `agent` subtree: run, init, get, and
// enable/disable/set/reset over the host-local operational settings (spec
// §4.7).
func newAgentCommand(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "agent",
		Short: "Manage this host's operational settings and run the agent",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "run",
			Short: "Run the agent: serve the HTTP API and reconcile the tunnel",
			RunE: func(cmd *cobra.Command, args []string) error {
				return agent.Run(ctx, config.Get().ConfigDir)
			},
		},
		newAgentInitCommand(),
		&cobra.Command{
			Use:   "get",
			Short: "Print the current agent settings",
			RunE: func(cmd *cobra.Command, args []string) error {
				store := openStore()
				cfg, err := store.Get()
				if err != nil {
					fail(err)
				}
				out, err := yaml.Marshal(cfg.Agent)
				if err != nil {
					fail(err)
				}
				fmt.Print(string(out))
				return nil
			},
		},
		newAgentSetCommand(),
		newAgentEnableCommand(),
		newAgentDisableCommand(),
		newAgentResetCommand(),
	)
	return cmd
}

func newAgentSetCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "set", Short: "Set a single agent field"}
	cmd.AddCommand(
		simpleSetter("address", "Set the agent's externally-reachable address", func(cfg *model.Config, v string) { cfg.Agent.Address = v }),
		simpleSetter("web-http-port", "Set the plain-HTTP listener port", func(cfg *model.Config, v string) { cfg.Agent.Web.Http.Port = mustPort(v) }),
		simpleSetter("web-https-port", "Set the HTTPS listener port", func(cfg *model.Config, v string) { cfg.Agent.Web.Https.Port = mustPort(v) }),
		simpleSetter("web-https-tls-cert", "Set the HTTPS certificate chain path", func(cfg *model.Config, v string) { cfg.Agent.Web.Https.TlsCert = v }),
		simpleSetter("web-https-tls-key", "Set the HTTPS private key path", func(cfg *model.Config, v string) { cfg.Agent.Web.Https.TlsKey = v }),
		simpleSetter("vpn-port", "Set the local WireGuard listen port", func(cfg *model.Config, v string) { cfg.Agent.Vpn.Port = mustPort(v) }),
		simpleSetter("vpn-wg-tool", "Set the wg-compatible CLI tool name", func(cfg *model.Config, v string) { cfg.Agent.Vpn.WgTool = v }),
		simpleSetter("vpn-wg-userspace-binary", "Set the userspace WireGuard implementation binary", func(cfg *model.Config, v string) { cfg.Agent.Vpn.WgUserspaceBinary = v }),
		simpleSetter("firewall-gateway-iface", "Set the firewall's gateway interface", func(cfg *model.Config, v string) { cfg.Agent.Firewall.GatewayIface = v }),
		simpleSetter("firewall-utility", "Set the firewall utility binary", func(cfg *model.Config, v string) { cfg.Agent.Firewall.Utility = v }),
	)
	return cmd
}

func newAgentEnableCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "enable", Short: "Enable an agent feature"}
	cmd.AddCommand(
		simpleToggle("web-http", func(cfg *model.Config) { cfg.Agent.Web.Http.Enabled = true }),
		simpleToggle("web-https", func(cfg *model.Config) { cfg.Agent.Web.Https.Enabled = true }),
		simpleToggle("vpn", func(cfg *model.Config) { cfg.Agent.Vpn.Enabled = true }),
		simpleToggle("firewall", func(cfg *model.Config) { cfg.Agent.Firewall.Enabled = true }),
	)
	return cmd
}

func newAgentDisableCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "disable", Short: "Disable an agent feature"}
	cmd.AddCommand(
		simpleToggle("web-http", func(cfg *model.Config) { cfg.Agent.Web.Http.Enabled = false }),
		simpleToggle("web-https", func(cfg *model.Config) { cfg.Agent.Web.Https.Enabled = false }),
		simpleToggle("vpn", func(cfg *model.Config) { cfg.Agent.Vpn.Enabled = false }),
		simpleToggle("firewall", func(cfg *model.Config) { cfg.Agent.Firewall.Enabled = false }),
		simpleToggle("password", func(cfg *model.Config) { cfg.Agent.Web.Password.Enabled = false }),
	)
	return cmd
}

func newAgentResetCommand() *cobra.Command {
	var passwordFlag string
	passwordCmd := &cobra.Command{
		Use:   "web-password",
		Short: "Set a new operator password (reads from stdin unless --password is given)",
		RunE: func(cmd *cobra.Command, args []string) error {
			password := passwordFlag
			if password == "" {
				fmt.Fprint(os.Stderr, "New password: ")
				reader := bufio.NewReader(os.Stdin)
				line, err := reader.ReadString('\n')
				if err != nil {
					return errors.WithCode(code.ErrUnknown, "failed to read password: %s", err.Error())
				}
				password = strings.TrimRight(line, "\r\n")
			} else {
				fmt.Fprintln(os.Stderr, "Warning: --password on the command line is visible in shell history and process listings")
			}

			hash, err := crypto.HashPassword(password)
			if err != nil {
				return err
			}
			if err := mutate(func(cfg *model.Config) error {
				cfg.Agent.Web.Password.Hash = hash
				cfg.Agent.Web.Password.Enabled = true
				return nil
			}); err != nil {
				fail(err)
			}
			return nil
		},
	}
	passwordCmd.Flags().StringVar(&passwordFlag, "password", "", "new password (insecure: prefer the stdin prompt)")

	cmd := &cobra.Command{Use: "reset", Short: "Reset an agent credential"}
	cmd.AddCommand(passwordCmd)
	return cmd
}

func newAgentInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Interactively create a new conf.yml",
		RunE: func(cmd *cobra.Command, args []string) error {
			configDir := config.Get().ConfigDir
			confPath := configDir.ConfPath()
			if _, err := os.Stat(confPath); err == nil {
				return errors.WithCode(code.ErrUnknown, "%s already exists; refusing to overwrite", confPath)
			}

			reader := bufio.NewReader(os.Stdin)
			prompt := func(label, def string) string {
				fmt.Fprintf(os.Stderr, "%s [%s]: ", label, def)
				line, _ := reader.ReadString('\n')
				line = strings.TrimSpace(line)
				if line == "" {
					return def
				}
				return line
			}

			cfg := model.DefaultConfig()
			cfg.Agent.Address = prompt("Agent address", "127.0.0.1")
			cfg.Network.Identifier = prompt("Network identifier", "wg-quickrs")
			cfg.Network.Subnet = prompt("Network subnet (CIDR)", "10.10.0.0/24")

			peerID := prompt("This peer's id", "this")
			peerName := prompt("This peer's name", "this")
			peerAddress := prompt("This peer's address", "10.10.0.1")

			priv, err := crypto.GeneratePrivateKey()
			if err != nil {
				return err
			}

			peer := model.DefaultPeer(cfg.Network.Defaults)
			peer.Name = peerName
			peer.Address = peerAddress
			peer.PrivateKey = priv
			peer.CreatedAt = model.NowString()
			peer.UpdatedAt = peer.CreatedAt

			cfg.Network.ThisPeer = peerID
			cfg.Network.Peers = map[string]model.Peer{peerID: peer}
			cfg.Network.UpdatedAt = model.NowString()

			if err := validate.Config(cfg, time.Now()); err != nil {
				return err
			}

			if err := os.MkdirAll(configDir.Dir, 0o700); err != nil {
				return errors.WithCode(code.ErrConfWrite, "failed to create %s: %s", configDir.Dir, err.Error())
			}

			store := configstore.New(confPath, nil)
			if _, err := store.Set(cfg); err != nil {
				return err
			}

			fmt.Fprintf(os.Stderr, "Wrote %s\n", confPath)
			return nil
		},
	}
}

func mustPort(v string) uint16 {
	n, err := strconv.ParseUint(v, 10, 16)
	if err != nil {
		fail(errors.WithCode(code.ErrNotPortNumber, "%q is not a valid port number", v))
	}
	return uint16(n)
}
