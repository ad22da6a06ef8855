// Package cli implements the declarative subcommand tree of spec §4.7: each
// subcommand loads conf.yml, applies one change, validates the whole
// resulting document, and persists it — or fails with the validation error
// and a nonzero exit, mirroring the teacher's load/validate/persist style
// (internal/controller's per-request request/validate/respond shape,
// generalized to a CLI invocation instead of an HTTP request).
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/marmotedu/errors"
	"github.com/spf13/cobra"

	"github.com/wgquickrs/agent/internal/pkg/configstore"
	"github.com/wgquickrs/agent/internal/pkg/model"
	"github.com/wgquickrs/agent/internal/pkg/validate"
	"github.com/wgquickrs/agent/pkg/config"
)

// openStore opens the agent's conf.yml with no tunnel driver attached: the
// CLI never needs live status/telemetry, only the persisted document.
func openStore() *configstore.Store {
	return configstore.New(config.Get().ConfigDir.ConfPath(), nil)
}

// mutate loads the current config, applies fn, validates the result in
// full, and persists it only if validation passes.
func mutate(fn func(cfg *model.Config) error) error {
	store := openStore()
	cfg, err := store.Get()
	if err != nil {
		return err
	}
	if err := fn(&cfg); err != nil {
		return err
	}
	if err := validate.Config(cfg, time.Now()); err != nil {
		return err
	}
	_, err = store.Set(cfg)
	return err
}

// fail prints err in the CLI's "stderr + exit 1" convention (spec §7) and
// terminates the process.
func fail(err error) {
	coder := errors.ParseCoder(err)
	fmt.Fprintln(os.Stderr, "Error:", coder.String())
	os.Exit(1)
}

// simpleSetter builds a one-argument leaf command that applies set to the
// loaded config and persists it.
func simpleSetter(use, short string, set func(cfg *model.Config, value string)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <value>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if err := mutate(func(cfg *model.Config) error {
				set(cfg, args[0])
				return nil
			}); err != nil {
				fail(err)
			}
		},
	}
}

// simpleToggle builds a zero-argument leaf command that applies apply to the
// loaded config and persists it.
func simpleToggle(use string, apply func(cfg *model.Config)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			if err := mutate(func(cfg *model.Config) error {
				apply(cfg)
				return nil
			}); err != nil {
				fail(err)
			}
		},
	}
}
