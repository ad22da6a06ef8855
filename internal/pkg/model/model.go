// Package model defines the agent's canonical configuration entities
// (spec §3): the typed shape persisted to conf.yml and exchanged over the
// HTTP API, independent of how it is stored or validated.
package model

import "time"

// TimeFormat is the single on-disk/over-the-wire timestamp form: RFC 3339 to
// seconds with a literal "Z" suffix. It is the only form produced on write,
// and stored timestamps are parsed with this exact layout on read: other
// RFC 3339 variants (fractional seconds, numeric offsets) do not parse.
const TimeFormat = "2006-01-02T15:04:05Z"

// NowString returns the current instant formatted per TimeFormat.
func NowString() string {
	return time.Now().UTC().Format(TimeFormat)
}

// Config is the root of the agent's persisted state.
type Config struct {
	Agent   Agent   `yaml:"agent"`
	Network Network `yaml:"network"`
}

// Agent holds the host-local operational settings: where the web UI/API
// listens, whether the VPN interface is managed, and firewall wiring.
type Agent struct {
	Address  string      `yaml:"address" mapstructure:"address"`
	Web      AgentWeb    `yaml:"web"`
	Vpn      AgentVpn    `yaml:"vpn"`
	Firewall Firewall    `yaml:"firewall"`
}

// AgentWeb configures the HTTP(S) control surface.
type AgentWeb struct {
	Address  string         `yaml:"address" mapstructure:"address"`
	Http     HttpEndpoint   `yaml:"http"`
	Https    HttpsEndpoint  `yaml:"https"`
	Password PasswordAuth   `yaml:"password"`
}

// HttpEndpoint is a plain-HTTP listener toggle.
type HttpEndpoint struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Port    uint16 `yaml:"port" mapstructure:"port"`
}

// HttpsEndpoint is an HTTP endpoint plus TLS material.
type HttpsEndpoint struct {
	HttpEndpoint `yaml:",inline"`
	TlsCert      string `yaml:"tls_cert" mapstructure:"tls-cert"`
	TlsKey       string `yaml:"tls_key" mapstructure:"tls-key"`
}

// PasswordAuth gates the API behind a single shared operator password.
type PasswordAuth struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Hash    string `yaml:"hash" mapstructure:"hash"`
}

// AgentVpn names the local WireGuard interface and the tools used to drive it.
type AgentVpn struct {
	Enabled           bool   `yaml:"enabled" mapstructure:"enabled"`
	Port              uint16 `yaml:"port" mapstructure:"port"`
	WgTool            string `yaml:"wg_tool" mapstructure:"wg-tool"`
	WgUserspaceBinary string `yaml:"wg_userspace_binary" mapstructure:"wg-userspace-binary"`
}

// Firewall describes the gateway interface PreUp/PostUp scripts are expected
// to manipulate, and the utility used to do so.
type Firewall struct {
	Enabled      bool   `yaml:"enabled" mapstructure:"enabled"`
	GatewayIface string `yaml:"gateway_iface" mapstructure:"gateway-iface"`
	Utility      string `yaml:"utility" mapstructure:"utility"`
}

// Network is the declarative overlay: its identity, address space, and every
// peer/connection/reservation within it.
type Network struct {
	Identifier   string                  `yaml:"identifier"`
	Subnet       string                  `yaml:"subnet"`
	ThisPeer     string                  `yaml:"this_peer"`
	Peers        map[string]Peer         `yaml:"peers"`
	Connections  map[string]Connection   `yaml:"connections"`
	Defaults     Defaults                `yaml:"defaults"`
	Reservations map[string]Reservation  `yaml:"reservations"`
	UpdatedAt    string                  `yaml:"updated_at"`
}

// Peer is one host participating in the overlay.
type Peer struct {
	Name       string   `yaml:"name"`
	Address    string   `yaml:"address"`
	PrivateKey string   `yaml:"private_key"`
	Kind       string   `yaml:"kind"`
	CreatedAt  string   `yaml:"created_at"`
	UpdatedAt  string   `yaml:"updated_at"`
	Endpoint   Endpoint `yaml:"endpoint"`
	Icon       Icon     `yaml:"icon"`
	Dns        Dns      `yaml:"dns"`
	Mtu        Mtu      `yaml:"mtu"`
	Scripts    Scripts  `yaml:"scripts"`
}

// Icon is an operator-chosen label/identifier shown in the UI.
type Icon struct {
	Enabled bool   `yaml:"enabled"`
	Value   string `yaml:"value"`
}

// Endpoint is a peer's externally reachable address, if it has one.
type Endpoint struct {
	Enabled bool   `yaml:"enabled"`
	Address string `yaml:"address"` // empty, dotted IPv4, or hostname
	Port    uint16 `yaml:"port"`
}

// Dns is a peer's interface-level DNS servers.
type Dns struct {
	Enabled   bool     `yaml:"enabled"`
	Addresses []string `yaml:"addresses"`
}

// Mtu is a peer's interface MTU override.
type Mtu struct {
	Enabled bool   `yaml:"enabled"`
	Value   uint16 `yaml:"value"`
}

// Script is a single PreUp/PostUp/PreDown/PostDown line.
type Script struct {
	Enabled bool   `yaml:"enabled"`
	Text    string `yaml:"text"`
}

// Scripts holds a peer's ordered up/down hooks.
type Scripts struct {
	PreUp    []Script `yaml:"pre_up"`
	PostUp   []Script `yaml:"post_up"`
	PreDown  []Script `yaml:"pre_down"`
	PostDown []Script `yaml:"post_down"`
}

// Connection is an undirected, optionally-enabled link between two peers.
type Connection struct {
	Enabled            bool                 `yaml:"enabled"`
	PreSharedKey       string               `yaml:"pre_shared_key"`
	AllowedIPsAToB     []string             `yaml:"allowed_ips_a_to_b"`
	AllowedIPsBToA     []string             `yaml:"allowed_ips_b_to_a"`
	PersistentKeepalive PersistentKeepalive `yaml:"persistent_keepalive"`
}

// PersistentKeepalive is an optional keepalive period, in seconds.
type PersistentKeepalive struct {
	Enabled bool   `yaml:"enabled"`
	Period  uint16 `yaml:"period"`
}

// Reservation is a time-bounded hold on an address for a not-yet-created peer.
type Reservation struct {
	PeerID     string `yaml:"peer_id"`
	ValidUntil string `yaml:"valid_until"`
}

// Defaults are the field templates applied when an operator does not supply
// a value explicitly, for both new peers and new connections.
type Defaults struct {
	Peer                PeerDefaults `yaml:"peer"`
	PersistentKeepalive PersistentKeepalive `yaml:"persistent_keepalive"`
}

// PeerDefaults mirrors the subset of Peer fields that can be templated.
type PeerDefaults struct {
	Endpoint Endpoint `yaml:"endpoint"`
	Icon     Icon     `yaml:"icon"`
	Dns      Dns      `yaml:"dns"`
	Mtu      Mtu      `yaml:"mtu"`
	Scripts  Scripts  `yaml:"scripts"`
}
