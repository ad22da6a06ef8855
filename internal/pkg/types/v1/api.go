// Package v1 holds the JSON request/response bodies of the HTTP API (spec §4.6).
package v1

// TokenRequest is the body of POST /api/token.
type TokenRequest struct {
	ClientID string `json:"client_id" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse is the successful body of POST /api/token.
type TokenResponse struct {
	Token string `json:"token"`
}

// ConfigDigestResponse is returned by GET /api/network/summary?only_digest=true.
type ConfigDigestResponse struct {
	Digest string `json:"digest"`
}

// PatchNetworkResponse is returned by a successful PATCH /api/network/config.
type PatchNetworkResponse struct {
	Digest string `json:"digest"`
}

// ReserveAddressResponse is returned by POST /api/network/reserve/address.
type ReserveAddressResponse struct {
	Address string `json:"address"`
	PeerID  string `json:"peer_id"`
}

// WireGuardStatusRequest is the body of POST /api/wireguard/status.
type WireGuardStatusRequest struct {
	Status string `json:"status" binding:"required"` // "up" or "down"
}

// WireGuardStatusResponse echoes the driver's status after the transition.
type WireGuardStatusResponse struct {
	Status string `json:"status"`
}
