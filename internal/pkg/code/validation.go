package code

// Validation: one code per kind of the spec's validation error taxonomy
// (spec §4.2). All surface as 400 with the offending field's message.
const (
	// ErrNotIPv4Address - 400: value does not parse as an IPv4 address.
	ErrNotIPv4Address int = iota + 110001

	// ErrNotPortNumber - 400: value does not parse as a u16 port number.
	ErrNotPortNumber

	// ErrTlsFileNotFound - 400: a required TLS cert/key path does not exist.
	ErrTlsFileNotFound

	// ErrTlsFileNotAFile - 400: a required TLS cert/key path is not a regular file.
	ErrTlsFileNotAFile

	// ErrInterfaceNotFound - 400: named network interface does not exist on this host.
	ErrInterfaceNotFound

	// ErrFirewallUtilityNotFound - 400: firewall utility path does not exist or is not executable.
	ErrFirewallUtilityNotFound

	// ErrWgToolNotFound - 400: wg tool path does not exist or is not executable.
	ErrWgToolNotFound

	// ErrWgUserspaceNotFound - 400: wg userspace binary path does not exist or is not executable.
	ErrWgUserspaceNotFound

	// ErrNotCIDR - 400: value does not parse as an IPv4 CIDR.
	ErrNotCIDR

	// ErrInvalidUuid - 400: value does not parse as a UUID.
	ErrInvalidUuid

	// ErrEmptyNetworkName - 400: network identifier is empty.
	ErrEmptyNetworkName

	// ErrEmptyPeerName - 400: peer name is empty.
	ErrEmptyPeerName

	// ErrAddressNotInSubnet - 400: peer address is not contained in the network subnet.
	ErrAddressNotInSubnet

	// ErrAddressIsSubnetNetwork - 400: peer address equals the subnet's network address.
	ErrAddressIsSubnetNetwork

	// ErrAddressIsSubnetBroadcast - 400: peer address equals the subnet's broadcast address.
	ErrAddressIsSubnetBroadcast

	// ErrAddressIsTaken - 400: peer address is already assigned to another peer.
	ErrAddressIsTaken

	// ErrAddressIsReserved - 400: peer address is held by a live reservation for another peer.
	ErrAddressIsReserved

	// ErrInvalidEndpoint - 400: endpoint string does not parse as host:port.
	ErrInvalidEndpoint

	// ErrInvalidEndpointPort - 400: endpoint port does not parse as a u16.
	ErrInvalidEndpointPort

	// ErrEmptyIcon - 400: icon value is empty while enabled.
	ErrEmptyIcon

	// ErrInvalidMtu - 400: MTU value is zero or exceeds the maximum.
	ErrInvalidMtu

	// ErrScriptMissingSemicolon - 400: a script line does not end with ';'.
	ErrScriptMissingSemicolon

	// ErrNotWireGuardKey - 400: value is not a 32-byte base64-encoded key.
	ErrNotWireGuardKey

	// ErrInvalidPersistentKeepalive - 400: persistent keepalive period is invalid.
	ErrInvalidPersistentKeepalive

	// ErrInvalidAllowedIPs - 400: one or more AllowedIPs entries do not parse as CIDRs.
	ErrInvalidAllowedIPs

	// ErrInvalidConnectionID - 400: a connection id does not decompose into two
	// distinct peer ids that both exist (invariant I4).
	ErrInvalidConnectionID
)
