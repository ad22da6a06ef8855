package cli

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"
	"k8s.io/component-base/logs"
	"k8s.io/klog/v2"

	cliopts "github.com/wgquickrs/agent/cmd/app/options"
	"github.com/wgquickrs/agent/pkg/config"
)

const basename = "wg-quickrs"

// NewRootCommand builds the full subcommand tree of spec §4.7: `agent`
// (run/init/enable/disable/set/reset/get), `network` (peer/connection/
// defaults management), and `config conf` (the synthesizer invocation).
func NewRootCommand(ctx context.Context) *cobra.Command {
	opts := cliopts.NewOptions()

	root := &cobra.Command{
		Use:   basename,
		Short: "wg-quickrs is a control-plane agent for a WireGuard overlay network",
		Long:  "wg-quickrs owns one host's declarative overlay-network configuration and reconciles it with the local WireGuard tunnel and a generated wg-quick config file.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := viper.BindPFlags(cmd.Root().PersistentFlags()); err != nil {
				return err
			}
			if err := viper.Unmarshal(opts); err != nil {
				return err
			}
			if errs := opts.Validate(); len(errs) != 0 {
				return errs[0]
			}

			logs.InitLogs()
			if opts.Log.LogFile != "" {
				klog.SetOutput(&lumberjack.Logger{
					Filename:   opts.Log.LogFile,
					MaxSize:    opts.Log.MaxSize,
					MaxBackups: opts.Log.MaxBackups,
					MaxAge:     opts.Log.MaxAge,
					Compress:   opts.Log.Compress,
				})
			}

			config.Init(&config.Config{ConfigDir: opts.ConfigDir, Log: opts.Log})
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logs.FlushLogs()
		},
	}

	opts.AddFlags(root.PersistentFlags())

	root.AddCommand(
		newAgentCommand(ctx),
		newNetworkCommand(),
		newConfigCommand(),
	)
	return root
}
