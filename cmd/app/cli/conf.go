package cli

import (
	"os"

	"github.com/marmotedu/errors"
	"github.com/spf13/cobra"

	"github.com/wgquickrs/agent/internal/pkg/code"
	"github.com/wgquickrs/agent/internal/pkg/wgsynth"
)

// newConfigCommand builds the `config` subtree: rendering a peer's wg-quick
// config file from the current network document (spec §4.7, §6).
func newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Render wg-quick configuration files"}
	cmd.AddCommand(newConfigConfCommand())
	return cmd
}

func newConfigConfCommand() *cobra.Command {
	var stripped bool
	var out string
	confCmd := &cobra.Command{
		Use:   "conf <peer_id>",
		Short: "Render the wg-quick .conf for a peer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			peerID := args[0]
			cfg, err := openStore().Get()
			if err != nil {
				return err
			}
			if _, ok := cfg.Network.Peers[peerID]; !ok {
				return errors.WithCode(code.ErrPeerNotFound, "peer %q not found", peerID)
			}
			rendered, err := wgsynth.Synthesize(cfg.Network, peerID, stripped)
			if err != nil {
				return err
			}
			if out == "" {
				_, err = os.Stdout.WriteString(rendered)
				return err
			}
			return os.WriteFile(out, []byte(rendered), 0o600)
		},
	}
	confCmd.Flags().BoolVar(&stripped, "stripped", false, "omit comments and the DNS, MTU, and script lines the raw wg tool rejects")
	confCmd.Flags().StringVar(&out, "out", "", "write to this file instead of stdout")
	return confCmd
}
