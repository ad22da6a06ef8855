package tunnel

// Status is the tunnel's observed state (spec §4.5).
type Status int

const (
	// Unknown is the initial state and the state any unexpected shell
	// failure degrades to.
	Unknown Status = iota
	Down
	Up
)

// String returns the lowercase wire form used in conf.yml and the HTTP API
// (spec §6).
func (s Status) String() string {
	switch s {
	case Down:
		return "down"
	case Up:
		return "up"
	default:
		return "unknown"
	}
}

// MarshalYAML implements yaml.Marshaler.
func (s Status) MarshalYAML() (interface{}, error) {
	return s.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *Status) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw string
	if err := unmarshal(&raw); err != nil {
		return err
	}
	switch raw {
	case "down":
		*s = Down
	case "up":
		*s = Up
	default:
		*s = Unknown
	}
	return nil
}
