package model

// DefaultConfig returns a fresh Config with plain HTTP on port 80, the VPN
// on port 51820, and a 25s default persistent keepalive enabled; HTTPS,
// password auth, the firewall, and default DNS/MTU are disabled. The fields
// `agent init` asks the operator to fill in are left at their zero value. It is never valid on its own: the caller still needs to set
// at least the network identifier, subnet, and this-peer.
func DefaultConfig() Config {
	return Config{
		Agent: Agent{
			Web: AgentWeb{
				Http: HttpEndpoint{Enabled: true, Port: 80},
				Https: HttpsEndpoint{
					HttpEndpoint: HttpEndpoint{Enabled: false, Port: 443},
				},
				Password: PasswordAuth{Enabled: false},
			},
			Vpn: AgentVpn{
				Enabled:           true,
				Port:              51820,
				WgTool:            "wg",
				WgUserspaceBinary: "wireguard-go",
			},
			Firewall: Firewall{Enabled: false, Utility: "iptables"},
		},
		Network: Network{
			Peers:        map[string]Peer{},
			Connections:  map[string]Connection{},
			Reservations: map[string]Reservation{},
			Defaults: Defaults{
				Peer: PeerDefaults{
					Dns: Dns{Enabled: false},
					Mtu: Mtu{Enabled: false, Value: 1420},
				},
				PersistentKeepalive: PersistentKeepalive{Enabled: true, Period: 25},
			},
			UpdatedAt: NowString(),
		},
	}
}

// DefaultPeer returns a Peer seeded from the network's Defaults template.
// Callers still need to set Name, Address, and PrivateKey.
func DefaultPeer(d Defaults) Peer {
	now := NowString()
	return Peer{
		CreatedAt: now,
		UpdatedAt: now,
		Endpoint:  d.Peer.Endpoint,
		Icon:      d.Peer.Icon,
		Dns:       d.Peer.Dns,
		Mtu:       d.Peer.Mtu,
		Scripts:   d.Peer.Scripts,
	}
}

// DefaultConnection returns a Connection seeded from the network's Defaults
// template. Callers still need to set PreSharedKey and AllowedIPs.
func DefaultConnection(d Defaults) Connection {
	return Connection{
		Enabled:             true,
		PersistentKeepalive: d.PersistentKeepalive,
	}
}
