package validate

import "testing"

func TestIPv4Address(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantErr bool
	}{
		{"valid", "192.168.10.1", false},
		{"ipv6", "::1", true},
		{"garbage", "not-an-ip", true},
		{"empty", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := IPv4Address(tt.in)
			if (err != nil) != tt.wantErr {
				t.Errorf("IPv4Address(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
		})
	}
}

func TestPort(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantErr bool
	}{
		{"valid low", "1", false},
		{"valid high", "65535", false},
		{"zero", "0", true},
		{"too high", "65536", true},
		{"not a number", "abc", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Port(tt.in)
			if (err != nil) != tt.wantErr {
				t.Errorf("Port(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
		})
	}
}

func TestCIDR(t *testing.T) {
	if _, err := CIDR("10.0.0.0/24"); err != nil {
		t.Errorf("CIDR() unexpected error: %v", err)
	}
	if _, err := CIDR("not-a-cidr"); err == nil {
		t.Error("CIDR() with garbage input: want error, got nil")
	}
}

func TestHostname(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"simple", "example", true},
		{"dotted", "host.example.com", true},
		{"empty", "", false},
		{"leading dash", "-bad.com", false},
		{"underscore", "bad_host", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Hostname(tt.in); got != tt.want {
				t.Errorf("Hostname(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestEndpoint(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantErr bool
	}{
		{"ipv4 endpoint", "203.0.113.5:51820", false},
		{"hostname endpoint", "vpn.example.com:51820", false},
		{"missing port", "203.0.113.5", true},
		{"bad port", "203.0.113.5:notaport", true},
		{"bad host", "not a host!!:51820", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Endpoint(tt.in)
			if (err != nil) != tt.wantErr {
				t.Errorf("Endpoint(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
		})
	}
}

func TestScript(t *testing.T) {
	if err := Script("iptables -A FORWARD -j ACCEPT;"); err != nil {
		t.Errorf("Script() unexpected error: %v", err)
	}
	if err := Script("iptables -A FORWARD -j ACCEPT"); err == nil {
		t.Error("Script() without trailing ';': want error, got nil")
	}
	if err := Script("   "); err == nil {
		t.Error("Script() with blank text: want error, got nil")
	}
}

func TestMtu(t *testing.T) {
	if err := Mtu(1420); err != nil {
		t.Errorf("Mtu(1420) unexpected error: %v", err)
	}
	if err := Mtu(0); err == nil {
		t.Error("Mtu(0): want error, got nil")
	}
	if err := Mtu(10001); err == nil {
		t.Error("Mtu(10001): want error, got nil")
	}
}

func TestAllowedIPsEntry(t *testing.T) {
	if err := AllowedIPsEntry("10.0.0.0/24"); err != nil {
		t.Errorf("AllowedIPsEntry() unexpected error: %v", err)
	}
	if err := AllowedIPsEntry("not-a-cidr"); err == nil {
		t.Error("AllowedIPsEntry() with garbage: want error, got nil")
	}
}
