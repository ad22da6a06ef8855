package options

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
)

// defaultConfigDir resolves "~/.wg-quickrs" without pulling in a homedir
// library: os.UserHomeDir is the one-line stdlib answer and no example
// package does anything more elaborate for this.
func defaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".wg-quickrs"
	}
	return filepath.Join(home, ".wg-quickrs")
}

// ConfigDirOptions locates the agent's persisted state: conf.yml and the
// folder into which synthesized WireGuard .conf files are written (spec §6).
type ConfigDirOptions struct {
	Dir                   string `json:"config-dir" mapstructure:"config-dir"`
	WireguardConfigFolder string `json:"wireguard-config-folder" mapstructure:"wireguard-config-folder"`
}

func NewConfigDirOptions() *ConfigDirOptions {
	return &ConfigDirOptions{
		Dir:                   defaultConfigDir(),
		WireguardConfigFolder: "/etc/wireguard",
	}
}

func (o *ConfigDirOptions) Validate() []error {
	var errs []error
	if strings.TrimSpace(o.Dir) == "" {
		errs = append(errs, fmt.Errorf("config-dir is required"))
	}
	if strings.TrimSpace(o.WireguardConfigFolder) == "" {
		errs = append(errs, fmt.Errorf("wireguard-config-folder is required"))
	}
	return errs
}

func (o *ConfigDirOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.Dir, "config-dir", o.Dir, "Directory holding conf.yml, the agent's persisted state")
	fs.StringVar(&o.WireguardConfigFolder, "wireguard-config-folder", o.WireguardConfigFolder, "Directory into which the synthesized WireGuard .conf file is written")
}

// ConfPath returns the path to the agent's conf.yml.
func (o *ConfigDirOptions) ConfPath() string {
	return filepath.Join(o.Dir, "conf.yml")
}
