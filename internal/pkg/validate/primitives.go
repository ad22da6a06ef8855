// Package validate implements the agent's field and cross-field admissibility
// rules (spec §4.2). Validators take raw input (plus whatever context they
// need to cross-check) and report failure as a *errors.withCode built from
// internal/pkg/code, never a bare error; Hostname alone returns a plain
// bool. None of them writes anything, but ExecutablePath and TlsFile stat
// the filesystem and GatewayIface lists the host's interfaces.
package validate

import (
	"net/netip"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/marmotedu/errors"

	"github.com/wgquickrs/agent/internal/pkg/code"
	"github.com/wgquickrs/agent/internal/pkg/crypto"
	"github.com/wgquickrs/agent/pkg/utils/ip"
	"github.com/wgquickrs/agent/pkg/utils/network"
)

// IPv4Address parses s as a dotted-decimal IPv4 address.
func IPv4Address(s string) (netip.Addr, error) {
	addr, err := netip.ParseAddr(s)
	if err != nil || !addr.Is4() {
		return netip.Addr{}, errors.WithCode(code.ErrNotIPv4Address, "%q is not an IPv4 address", s)
	}
	return addr, nil
}

// Port parses s as a TCP/UDP port number in 1..=65535.
func Port(s string) (uint16, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil || n < 1 || n > 65535 {
		return 0, errors.WithCode(code.ErrNotPortNumber, "%q is not a valid port number", s)
	}
	return uint16(n), nil
}

// CIDR parses s as an IPv4 CIDR prefix.
func CIDR(s string) (netip.Prefix, error) {
	p, err := netip.ParsePrefix(s)
	if err != nil || !p.Addr().Is4() {
		return netip.Prefix{}, errors.WithCode(code.ErrNotCIDR, "%q is not a valid IPv4 CIDR", s)
	}
	return p.Masked(), nil
}

// UUID parses s as a UUID (any version — PeerId is always v4, but a stored
// value that happens to be a different RFC 4122 version is still "a uuid").
func UUID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.UUID{}, errors.WithCode(code.ErrInvalidUuid, "%q is not a valid UUID", s)
	}
	return id, nil
}

var hostnameLabel = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?$`)

// Hostname reports whether s is a syntactically valid RFC 1123 hostname.
func Hostname(s string) bool {
	if s == "" || len(s) > 253 {
		return false
	}
	for _, label := range strings.Split(s, ".") {
		if !hostnameLabel.MatchString(label) {
			return false
		}
	}
	return true
}

// Endpoint splits s on its last ':' into a host and port, validating both.
// The host is accepted as an IPv4 address or an RFC 1123 hostname.
func Endpoint(s string) (host string, port uint16, err error) {
	idx := strings.LastIndex(s, ":")
	if idx < 0 {
		return "", 0, errors.WithCode(code.ErrInvalidEndpoint, "endpoint %q has no port", s)
	}
	host, portStr := s[:idx], s[idx+1:]

	port, portErr := Port(portStr)
	if portErr != nil {
		return "", 0, errors.WithCode(code.ErrInvalidEndpointPort, "endpoint %q has an invalid port", s)
	}

	if _, addrErr := IPv4Address(host); addrErr == nil {
		return host, port, nil
	}
	if Hostname(host) {
		return host, port, nil
	}
	return "", 0, errors.WithCode(code.ErrInvalidEndpoint, "endpoint %q is neither an IPv4 address nor a hostname", s)
}

// WireGuardKey reports whether s base64-decodes to exactly 32 bytes.
func WireGuardKey(s string) error {
	if !crypto.IsWellFormedKey(s) {
		return errors.WithCode(code.ErrNotWireGuardKey, "%q is not a valid WireGuard key", s)
	}
	return nil
}

// Script validates a single PreUp/PostUp/PreDown/PostDown line: non-empty
// once trimmed, and must end with ';' (invariant I7).
func Script(text string) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || !strings.HasSuffix(trimmed, ";") {
		return errors.WithCode(code.ErrScriptMissingSemicolon, "script line must be non-empty and end with ';'")
	}
	return nil
}

// Mtu validates an interface MTU value (spec §3: value ≤ 10000).
func Mtu(value uint16) error {
	if value == 0 || value > 10000 {
		return errors.WithCode(code.ErrInvalidMtu, "MTU %d is out of range", value)
	}
	return nil
}

// PersistentKeepalivePeriod validates a keepalive period in seconds.
func PersistentKeepalivePeriod(period uint16) error {
	if period == 0 {
		return errors.WithCode(code.ErrInvalidPersistentKeepalive, "persistent keepalive period must be greater than 0")
	}
	return nil
}

// AllowedIPsEntry validates a single AllowedIPs CIDR string.
func AllowedIPsEntry(s string) error {
	if _, err := CIDR(s); err != nil {
		return errors.WithCode(code.ErrInvalidAllowedIPs, "%q is not a valid AllowedIPs entry", s)
	}
	return nil
}

// GatewayIface reports whether name matches one of the host's non-loopback
// IPv4-carrying interfaces.
func GatewayIface(name string) error {
	if !network.HasInterface(name) {
		ifaces, _ := network.NonLoopbackIPv4Interfaces()
		return errors.WithCode(code.ErrInterfaceNotFound, "interface %q not found (available: %s)", name, strings.Join(ifaces, ", "))
	}
	return nil
}

// ExecutablePath validates that path exists, is a regular file, and (per
// spec §4.2, for wg-tool/wg-userspace paths) is executable.
func ExecutablePath(path string, requireExec bool, notFoundCode int) error {
	info, err := os.Stat(path)
	if err != nil {
		return errors.WithCode(notFoundCode, "%q not found", path)
	}
	if !info.Mode().IsRegular() {
		return errors.WithCode(code.ErrTlsFileNotAFile, "%q is not a regular file", path)
	}
	if requireExec && info.Mode()&0o111 == 0 {
		return errors.WithCode(notFoundCode, "%q is not executable", path)
	}
	return nil
}

// TlsFile validates that path exists and is a regular file (certificate or
// key material referenced by HttpsEndpoint).
func TlsFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return errors.WithCode(code.ErrTlsFileNotFound, "%q not found", path)
	}
	if !info.Mode().IsRegular() {
		return errors.WithCode(code.ErrTlsFileNotAFile, "%q is not a regular file", path)
	}
	return nil
}

// addrInSubnet reports whether addr lies within prefix and is neither its
// network nor its broadcast address.
func addrInSubnet(addr netip.Addr, prefix netip.Prefix) error {
	if !prefix.Contains(addr) {
		return errors.WithCode(code.ErrAddressNotInSubnet, "address %s is not in subnet %s", addr, prefix)
	}
	if addr == ip.NetworkAddr(prefix) {
		return errors.WithCode(code.ErrAddressIsSubnetNetwork, "address %s is the subnet's network address", addr)
	}
	if addr == ip.BroadcastAddr(prefix) {
		return errors.WithCode(code.ErrAddressIsSubnetBroadcast, "address %s is the subnet's broadcast address", addr)
	}
	return nil
}
