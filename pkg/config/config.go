package config

import (
	"sync"

	"github.com/wgquickrs/agent/pkg/options"
)

// Config is the running bootstrap configuration of the agent process: where
// its state lives and how it logs. It is created from cmd/app/options.Options
// and stored globally via Init/Get so deeply-nested CLI subcommands and
// controllers can reach it without threading it through every call.
//
// This is distinct from internal/pkg/model.Config, the declarative network
// state persisted to conf.yml.
type Config struct {
	ConfigDir *options.ConfigDirOptions
	Log       *options.LogOptions
}

var (
	mu  sync.RWMutex
	cfg *Config
)

// Init sets the global config. Called once by the CLI's PersistentPreRunE
// after flags are parsed; tests may call it again to point at a fresh
// fixture.
func Init(c *Config) {
	mu.Lock()
	defer mu.Unlock()
	cfg = c
}

// Get returns the global config. It panics if Init() was never called.
func Get() *Config {
	mu.RLock()
	defer mu.RUnlock()
	if cfg == nil {
		panic("config is not initialized: call config.Init() before use")
	}
	return cfg
}
