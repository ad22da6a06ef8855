package code

func init() {
	register(ErrSuccess, 200, "OK")
	register(ErrUnknown, 500, "internal server error")
	register(ErrBind, 400, "error occurred while binding the request body to the struct")
	register(ErrTokenInvalid, 401, "invalid token")
	register(ErrTokenExpired, 401, "invalid token")
	register(ErrMissingHeader, 401, "the Authorization header was empty")
	register(ErrInvalidAuthHeader, 401, "invalid authorization header format")
	register(ErrPasswordIncorrect, 401, "password was incorrect")
	register(ErrPasswordAuthDisabled, 204, "password auth is disabled")
	register(ErrValidation, 400, "validation failed")

	register(ErrNotIPv4Address, 400, "value is not an IPv4 address")
	register(ErrNotPortNumber, 400, "value is not a valid port number")
	register(ErrTlsFileNotFound, 400, "TLS file not found")
	register(ErrTlsFileNotAFile, 400, "TLS path is not a regular file")
	register(ErrInterfaceNotFound, 400, "network interface not found")
	register(ErrFirewallUtilityNotFound, 400, "firewall utility not found")
	register(ErrWgToolNotFound, 400, "wg tool not found")
	register(ErrWgUserspaceNotFound, 400, "wg userspace binary not found")
	register(ErrNotCIDR, 400, "value is not a valid CIDR")
	register(ErrInvalidUuid, 400, "value is not a valid UUID")
	register(ErrEmptyNetworkName, 400, "network identifier must not be empty")
	register(ErrEmptyPeerName, 400, "peer name must not be empty")
	register(ErrAddressNotInSubnet, 400, "address is not within the network subnet")
	register(ErrAddressIsSubnetNetwork, 400, "address is the subnet's network address")
	register(ErrAddressIsSubnetBroadcast, 400, "address is the subnet's broadcast address")
	register(ErrAddressIsTaken, 400, "address is already assigned to another peer")
	register(ErrAddressIsReserved, 400, "address is held by a reservation")
	register(ErrInvalidEndpoint, 400, "endpoint is not a valid host:port")
	register(ErrInvalidEndpointPort, 400, "endpoint port is invalid")
	register(ErrEmptyIcon, 400, "icon must not be empty when enabled")
	register(ErrInvalidMtu, 400, "MTU value is invalid")
	register(ErrScriptMissingSemicolon, 400, "script line must end with ';'")
	register(ErrNotWireGuardKey, 400, "value is not a valid WireGuard key")
	register(ErrInvalidPersistentKeepalive, 400, "persistent keepalive value is invalid")
	register(ErrInvalidAllowedIPs, 400, "AllowedIPs entry is not a valid CIDR")
	register(ErrInvalidConnectionID, 400, "connection id does not reference two distinct existing peers")

	register(ErrConfRead, 500, "failed to read configuration file")
	register(ErrConfParse, 500, "failed to parse configuration file")
	register(ErrConfWrite, 500, "failed to write configuration file")
	register(ErrConfSerialization, 500, "failed to serialize configuration")
	register(ErrConfDigestEncoding, 500, "failed to encode configuration digest")
	register(ErrConfMutexLockFailed, 500, "failed to acquire configuration lock")
	register(ErrConfMutexSetFailed, 500, "failed to commit configuration")
	register(ErrConfStale, 409, "configuration has changed since the supplied digest")
	register(ErrConfNotInitialized, 500, "configuration store is not initialized")

	register(ErrShellEmpty, 500, "shell command was empty")
	register(ErrShellIo, 500, "failed to run external command")
	register(ErrShellFailed, 500, "external command failed")

	register(ErrPeerNotFound, 500, "peer not found while rendering configuration")
	register(ErrKeyDecodeFailed, 500, "failed to decode WireGuard key")
	register(ErrSerializationFailed, 500, "failed to render WireGuard configuration")
}
