package model

import "gopkg.in/yaml.v3"

// Clone returns a deep copy of c. The config store hands clones to readers
// so that no caller can mutate the cached value in place (spec §4.1).
func (c Config) Clone() Config {
	bytes, err := yaml.Marshal(c)
	if err != nil {
		// Config is always built from previously-validated/parsed data, so a
		// marshal failure here means a programming error, not bad input.
		panic("model: failed to clone config: " + err.Error())
	}
	var out Config
	if err := yaml.Unmarshal(bytes, &out); err != nil {
		panic("model: failed to clone config: " + err.Error())
	}
	return out
}
