package options

import (
	"encoding/json"

	"github.com/spf13/pflag"
	"k8s.io/component-base/cli/flag"
	"k8s.io/component-base/logs"

	"github.com/wgquickrs/agent/pkg/options"
)

// Options are the process-bootstrap options every subcommand shares: where
// conf.yml and the generated WireGuard config live, and how logs are
// rotated. Per-network settings (web listeners, peers, connections, ...)
// live in conf.yml itself and are reached through internal/pkg/configstore,
// not here.
type Options struct {
	ConfigDir *options.ConfigDirOptions
	Log       *options.LogOptions
}

func NewOptions() *Options {
	return &Options{
		ConfigDir: options.NewConfigDirOptions(),
		Log:       options.NewLogOptions(),
	}
}

// AddFlags adds the flags to the specified FlagSet and returns the grouped flag sets.
func (o *Options) AddFlags(fs *pflag.FlagSet) *flag.NamedFlagSets {
	nfs := &flag.NamedFlagSets{}

	configFS := nfs.FlagSet("Config")
	options.AddConfigFlag(configFS)

	configDirFS := nfs.FlagSet("State")
	o.ConfigDir.AddFlags(configDirFS)

	logsFlagSet := nfs.FlagSet("Logs")
	logs.AddFlags(logsFlagSet)
	o.Log.AddFlags(logsFlagSet)

	for _, name := range nfs.Order {
		fs.AddFlagSet(nfs.FlagSets[name])
	}
	return nfs
}

func (o *Options) Validate() []error {
	var errs []error
	errs = append(errs, o.ConfigDir.Validate()...)
	errs = append(errs, o.Log.Validate()...)
	return errs
}

func (o *Options) String() string {
	data, _ := json.Marshal(o)
	return string(data)
}
