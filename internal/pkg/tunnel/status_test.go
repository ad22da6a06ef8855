package tunnel

import "testing"

func TestStatusString(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{Unknown, "unknown"},
		{Down, "down"},
		{Up, "up"},
		{Status(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("Status(%d).String() = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestStatusYAMLRoundTrip(t *testing.T) {
	for _, s := range []Status{Unknown, Down, Up} {
		raw, err := s.MarshalYAML()
		if err != nil {
			t.Fatalf("MarshalYAML() error = %v", err)
		}
		str, ok := raw.(string)
		if !ok {
			t.Fatalf("MarshalYAML() returned %T, want string", raw)
		}

		var got Status
		if err := got.UnmarshalYAML(func(v interface{}) error {
			*(v.(*string)) = str
			return nil
		}); err != nil {
			t.Fatalf("UnmarshalYAML() error = %v", err)
		}
		if got != s {
			t.Errorf("round trip of %v produced %v", s, got)
		}
	}
}
