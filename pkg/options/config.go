package options

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	basename       = "wg-quickrs"
	configFlagName = "bootstrap-config"
)

var cfgFile string

func init() {
	pflag.StringVarP(&cfgFile, configFlagName, "c", cfgFile, "Read bootstrap options (config-dir, log, ...) from specified `FILE`, "+
		"support JSON, TOML, YAML, HCL, or Java properties formats.")
}

// AddConfigFlag adds the bootstrap-config flag to the specified FlagSet and
// wires viper to load it once cobra parses flags. This is distinct from the
// agent's own conf.yml (internal/pkg/configstore): it only seeds the
// process-bootstrap options (where conf.yml lives, log rotation, ...).
func AddConfigFlag(fs *pflag.FlagSet) {
	fs.AddFlag(pflag.Lookup(configFlagName))

	viper.AutomaticEnv()
	viper.SetEnvPrefix(strings.ToUpper(basename))
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	cobra.OnInitialize(func() {
		if cfgFile != "" {
			b, err := os.ReadFile(cfgFile)
			if err != nil {
				_, _ = fmt.Fprintf(os.Stderr, "Error: failed to read bootstrap config file(%s): %v\n", cfgFile, err)
				os.Exit(1)
			}

			expanded := os.ExpandEnv(string(b))
			ext := strings.TrimPrefix(filepath.Ext(cfgFile), ".")
			if ext != "" {
				viper.SetConfigType(ext)
			}
			if err := viper.ReadConfig(strings.NewReader(expanded)); err != nil {
				_, _ = fmt.Fprintf(os.Stderr, "Error: failed to read bootstrap config file(%s): %v\n", cfgFile, err)
				os.Exit(1)
			}
			return
		}

		viper.AddConfigPath(".")
		viper.AddConfigPath(filepath.Join("/etc", basename))
		viper.SetConfigName(basename)

		// No bootstrap config file is required: all bootstrap options have
		// usable defaults, unlike the per-network conf.yml.
		if err := viper.ReadInConfig(); err != nil {
			if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
				_, _ = fmt.Fprintf(os.Stderr, "Error: failed to read bootstrap config file: %v\n", err)
				os.Exit(1)
			}
		}
	})
}
