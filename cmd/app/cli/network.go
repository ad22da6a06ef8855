package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/wgquickrs/agent/internal/pkg/model"
)

// newNetworkCommand builds the `network` subtree: the overlay's identity and
// address space, plus peer/connection/defaults management (spec §4.7).
func newNetworkCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "network",
		Short: "Manage the declarative overlay network",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "get",
			Short: "Print the current network document",
			Run: func(cmd *cobra.Command, args []string) {
				cfg, err := openStore().Get()
				if err != nil {
					fail(err)
				}
				out, err := yaml.Marshal(cfg.Network)
				if err != nil {
					fail(err)
				}
				fmt.Print(string(out))
			},
		},
		newNetworkSetCommand(),
		newPeerCommand(),
		newConnectionCommand(),
		newDefaultsCommand(),
	)
	return cmd
}

func newNetworkSetCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "set", Short: "Set a single network field"}
	cmd.AddCommand(
		simpleSetter("identifier", "Set the network's identifier (also the tunnel interface name)", func(cfg *model.Config, v string) { cfg.Network.Identifier = v }),
		simpleSetter("subnet", "Set the network's address space (CIDR)", func(cfg *model.Config, v string) { cfg.Network.Subnet = v }),
		simpleSetter("this-peer", "Set which peer id represents this host", func(cfg *model.Config, v string) { cfg.Network.ThisPeer = v }),
	)
	return cmd
}

func newDefaultsCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "defaults", Short: "Manage field defaults applied to new peers/connections"}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "get",
			Short: "Print the current defaults",
			Run: func(cmd *cobra.Command, args []string) {
				cfg, err := openStore().Get()
				if err != nil {
					fail(err)
				}
				out, err := yaml.Marshal(cfg.Network.Defaults)
				if err != nil {
					fail(err)
				}
				fmt.Print(string(out))
			},
		},
		simpleSetter("peer-mtu", "Set the default peer MTU", func(cfg *model.Config, v string) {
			cfg.Network.Defaults.Peer.Mtu.Enabled = true
			cfg.Network.Defaults.Peer.Mtu.Value = mustPort(v)
		}),
		simpleSetter("persistent-keepalive-period", "Set the default persistent keepalive period, in seconds", func(cfg *model.Config, v string) {
			cfg.Network.Defaults.PersistentKeepalive.Enabled = true
			cfg.Network.Defaults.PersistentKeepalive.Period = mustPort(v)
		}),
	)
	return cmd
}
