package cli

import (
	"fmt"

	"github.com/marmotedu/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/wgquickrs/agent/internal/pkg/code"
	"github.com/wgquickrs/agent/internal/pkg/crypto"
	"github.com/wgquickrs/agent/internal/pkg/model"
)

// newPeerCommand builds the `network peer` subtree: add/remove/list/get/set
// over the network's peer roster (spec §4.7).
func newPeerCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "peer", Short: "Manage network peers"}
	cmd.AddCommand(
		newPeerAddCommand(),
		newPeerRemoveCommand(),
		newPeerListCommand(),
		newPeerGetCommand(),
		newPeerSetCommand(),
	)
	return cmd
}

func newPeerAddCommand() *cobra.Command {
	var name, address string
	cmd := &cobra.Command{
		Use:   "add <peer_id>",
		Short: "Add a new peer with a freshly generated private key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			peerID := args[0]
			priv, err := crypto.GeneratePrivateKey()
			if err != nil {
				return err
			}
			return mutate(func(cfg *model.Config) error {
				if _, exists := cfg.Network.Peers[peerID]; exists {
					return errors.WithCode(code.ErrValidation, "peer %q already exists", peerID)
				}
				peer := model.DefaultPeer(cfg.Network.Defaults)
				peer.Name = name
				peer.Address = address
				peer.PrivateKey = priv
				peer.CreatedAt = model.NowString()
				peer.UpdatedAt = peer.CreatedAt
				if cfg.Network.Peers == nil {
					cfg.Network.Peers = map[string]model.Peer{}
				}
				cfg.Network.Peers[peerID] = peer
				cfg.Network.UpdatedAt = model.NowString()
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "peer's display name")
	cmd.Flags().StringVar(&address, "address", "", "peer's overlay address")
	return cmd
}

func newPeerRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <peer_id>",
		Short: "Remove a peer and every connection that references it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			peerID := args[0]
			return mutate(func(cfg *model.Config) error {
				if _, exists := cfg.Network.Peers[peerID]; !exists {
					return errors.WithCode(code.ErrPeerNotFound, "peer %q not found", peerID)
				}
				if cfg.Network.ThisPeer == peerID {
					return errors.WithCode(code.ErrValidation, "peer %q is this_peer and cannot be removed", peerID)
				}
				delete(cfg.Network.Peers, peerID)
				for connID := range cfg.Network.Connections {
					a, b, ok := model.SplitConnectionID(connID)
					if ok && (a == peerID || b == peerID) {
						delete(cfg.Network.Connections, connID)
					}
				}
				cfg.Network.UpdatedAt = model.NowString()
				return nil
			})
		},
	}
}

func newPeerListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every peer id",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := openStore().Get()
			if err != nil {
				fail(err)
			}
			for id := range cfg.Network.Peers {
				fmt.Println(id)
			}
		},
	}
}

func newPeerGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <peer_id>",
		Short: "Print a single peer",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := openStore().Get()
			if err != nil {
				fail(err)
			}
			peer, ok := cfg.Network.Peers[args[0]]
			if !ok {
				fail(errors.WithCode(code.ErrPeerNotFound, "peer %q not found", args[0]))
			}
			out, err := yaml.Marshal(peer)
			if err != nil {
				fail(err)
			}
			fmt.Print(string(out))
		},
	}
}

// peerMutate loads the named peer, applies fn, writes it back, and persists.
func peerMutate(peerID string, fn func(peer *model.Peer) error) error {
	return mutate(func(cfg *model.Config) error {
		peer, ok := cfg.Network.Peers[peerID]
		if !ok {
			return errors.WithCode(code.ErrPeerNotFound, "peer %q not found", peerID)
		}
		if err := fn(&peer); err != nil {
			return err
		}
		peer.UpdatedAt = model.NowString()
		cfg.Network.Peers[peerID] = peer
		cfg.Network.UpdatedAt = model.NowString()
		return nil
	})
}

func peerSetter(use, short string, set func(peer *model.Peer, value string)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <peer_id> <value>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			if err := peerMutate(args[0], func(peer *model.Peer) error {
				set(peer, args[1])
				return nil
			}); err != nil {
				fail(err)
			}
		},
	}
}

func newPeerSetCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "set", Short: "Set a single field on a peer"}
	cmd.AddCommand(
		peerSetter("name", "Set the peer's display name", func(p *model.Peer, v string) { p.Name = v }),
		peerSetter("address", "Set the peer's overlay address", func(p *model.Peer, v string) { p.Address = v }),
		peerSetter("kind", "Set the peer's kind label", func(p *model.Peer, v string) { p.Kind = v }),
		peerSetter("icon", "Set the peer's icon value", func(p *model.Peer, v string) { p.Icon = model.Icon{Enabled: true, Value: v} }),
		peerSetter("endpoint-address", "Set the peer's endpoint address", func(p *model.Peer, v string) {
			p.Endpoint.Enabled = true
			p.Endpoint.Address = v
		}),
		peerSetter("endpoint-port", "Set the peer's endpoint port", func(p *model.Peer, v string) {
			p.Endpoint.Enabled = true
			p.Endpoint.Port = mustPort(v)
		}),
		peerSetter("mtu", "Set the peer's MTU override", func(p *model.Peer, v string) {
			p.Mtu = model.Mtu{Enabled: true, Value: mustPort(v)}
		}),
		&cobra.Command{
			Use:   "private-key <peer_id>",
			Short: "Regenerate the peer's private key",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				priv, err := crypto.GeneratePrivateKey()
				if err != nil {
					return err
				}
				return peerMutate(args[0], func(peer *model.Peer) error {
					peer.PrivateKey = priv
					return nil
				})
			},
		},
	)
	return cmd
}
