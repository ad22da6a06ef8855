package code

// WireGuardLibError: synthesizer / key-handling failures (spec §7, stratum 4).
const (
	// ErrPeerNotFound - 500: synthesize was asked to render a peer_id absent from the network.
	ErrPeerNotFound int = iota + 140001

	// ErrKeyDecodeFailed - 500: a stored WireGuard key failed to base64-decode to 32 bytes.
	ErrKeyDecodeFailed

	// ErrSerializationFailed - 500: the rendered .conf text could not be produced.
	ErrSerializationFailed
)
