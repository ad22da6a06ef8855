package cli

import (
	"fmt"
	"strings"

	"github.com/marmotedu/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/wgquickrs/agent/internal/pkg/code"
	"github.com/wgquickrs/agent/internal/pkg/crypto"
	"github.com/wgquickrs/agent/internal/pkg/model"
)

// newConnectionCommand builds the `network connection` subtree: the
// undirected links between two peers (spec §3, §4.7).
func newConnectionCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "connection", Short: "Manage connections between peers"}
	cmd.AddCommand(
		newConnectionAddCommand(),
		newConnectionRemoveCommand(),
		newConnectionListCommand(),
		newConnectionGetCommand(),
		newConnectionEnableCommand(),
		newConnectionDisableCommand(),
		newConnectionSetCommand(),
	)
	return cmd
}

func newConnectionAddCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add <peer_a> <peer_b>",
		Short: "Create the connection between two existing peers",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			psk, err := crypto.GeneratePresharedKey()
			if err != nil {
				return err
			}
			return mutate(func(cfg *model.Config) error {
				a, b := args[0], args[1]
				if a == b {
					return errors.WithCode(code.ErrInvalidConnectionID, "a connection must reference two distinct peers")
				}
				if _, ok := cfg.Network.Peers[a]; !ok {
					return errors.WithCode(code.ErrPeerNotFound, "peer %q not found", a)
				}
				if _, ok := cfg.Network.Peers[b]; !ok {
					return errors.WithCode(code.ErrPeerNotFound, "peer %q not found", b)
				}
				id := model.ConnectionID(a, b)
				if _, exists := cfg.Network.Connections[id]; exists {
					return errors.WithCode(code.ErrValidation, "connection between %q and %q already exists", a, b)
				}
				if cfg.Network.Connections == nil {
					cfg.Network.Connections = map[string]model.Connection{}
				}
				conn := model.DefaultConnection(cfg.Network.Defaults)
				conn.PreSharedKey = psk
				cfg.Network.Connections[id] = conn
				cfg.Network.UpdatedAt = model.NowString()
				return nil
			})
		},
	}
}

func newConnectionRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <peer_a> <peer_b>",
		Short: "Remove the connection between two peers",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return mutate(func(cfg *model.Config) error {
				id := model.ConnectionID(args[0], args[1])
				if _, exists := cfg.Network.Connections[id]; !exists {
					return errors.WithCode(code.ErrInvalidConnectionID, "no connection between %q and %q", args[0], args[1])
				}
				delete(cfg.Network.Connections, id)
				cfg.Network.UpdatedAt = model.NowString()
				return nil
			})
		},
	}
}

func newConnectionListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every connection id",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := openStore().Get()
			if err != nil {
				fail(err)
			}
			for id := range cfg.Network.Connections {
				fmt.Println(id)
			}
		},
	}
}

func newConnectionGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <peer_a> <peer_b>",
		Short: "Print a single connection",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := openStore().Get()
			if err != nil {
				fail(err)
			}
			id := model.ConnectionID(args[0], args[1])
			conn, ok := cfg.Network.Connections[id]
			if !ok {
				fail(errors.WithCode(code.ErrInvalidConnectionID, "no connection between %q and %q", args[0], args[1]))
			}
			out, err := yaml.Marshal(conn)
			if err != nil {
				fail(err)
			}
			fmt.Print(string(out))
		},
	}
}

// connectionMutate loads the connection between peers a and b, applies fn,
// writes it back, and persists.
func connectionMutate(a, b string, fn func(conn *model.Connection) error) error {
	return mutate(func(cfg *model.Config) error {
		id := model.ConnectionID(a, b)
		conn, ok := cfg.Network.Connections[id]
		if !ok {
			return errors.WithCode(code.ErrInvalidConnectionID, "no connection between %q and %q", a, b)
		}
		if err := fn(&conn); err != nil {
			return err
		}
		cfg.Network.Connections[id] = conn
		cfg.Network.UpdatedAt = model.NowString()
		return nil
	})
}

func newConnectionEnableCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "enable <peer_a> <peer_b>",
		Short: "Enable a connection",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return connectionMutate(args[0], args[1], func(conn *model.Connection) error {
				conn.Enabled = true
				return nil
			})
		},
	}
}

func newConnectionDisableCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "disable <peer_a> <peer_b>",
		Short: "Disable a connection",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return connectionMutate(args[0], args[1], func(conn *model.Connection) error {
				conn.Enabled = false
				return nil
			})
		},
	}
}

func connectionSetter(use, short string, set func(conn *model.Connection, value string)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <peer_a> <peer_b> <value>",
		Short: short,
		Args:  cobra.ExactArgs(3),
		Run: func(cmd *cobra.Command, args []string) {
			if err := connectionMutate(args[0], args[1], func(conn *model.Connection) error {
				set(conn, args[2])
				return nil
			}); err != nil {
				fail(err)
			}
		},
	}
}

func newConnectionSetCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "set", Short: "Set a single field on a connection"}
	cmd.AddCommand(
		connectionSetter("pre-shared-key", "Set the connection's pre-shared key", func(c *model.Connection, v string) { c.PreSharedKey = v }),
		connectionSetter("persistent-keepalive-period", "Set the connection's keepalive period, in seconds", func(c *model.Connection, v string) {
			c.PersistentKeepalive = model.PersistentKeepalive{Enabled: true, Period: mustPort(v)}
		}),
		connectionSetter("allowed-ips-a-to-b", "Set the comma-separated AllowedIPs for the connection's lexicographically-greater peer", func(c *model.Connection, v string) {
			c.AllowedIPsAToB = splitCSV(v)
		}),
		connectionSetter("allowed-ips-b-to-a", "Set the comma-separated AllowedIPs for the connection's lexicographically-lesser peer", func(c *model.Connection, v string) {
			c.AllowedIPsBToA = splitCSV(v)
		}),
	)
	return cmd
}

func splitCSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}
