// Package crypto provides the agent's key, password, digest, and token
// primitives. All of it is pure Go: no shelling out to wg for anything
// that a library can already do (spec §9).
package crypto

import (
	"crypto/rand"
	"encoding/base64"

	"golang.org/x/crypto/curve25519"

	"github.com/wgquickrs/agent/internal/pkg/code"
	"github.com/marmotedu/errors"
)

// GeneratePrivateKey returns a new base64-encoded WireGuard private key,
// clamped per Curve25519's requirements.
func GeneratePrivateKey() (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", errors.WithCode(code.ErrKeyDecodeFailed, "failed to generate random key material: %s", err.Error())
	}
	raw[0] &= 248
	raw[31] &= 127
	raw[31] |= 64
	return base64.StdEncoding.EncodeToString(raw), nil
}

// DerivePublicKey computes the Curve25519 public key for a base64-encoded
// WireGuard private key.
func DerivePublicKey(privateKey string) (string, error) {
	raw, err := decodeKey(privateKey)
	if err != nil {
		return "", err
	}
	var priv, pub [32]byte
	copy(priv[:], raw)
	curve25519.ScalarBaseMult(&pub, &priv)
	return base64.StdEncoding.EncodeToString(pub[:]), nil
}

// GenerateKeyPair returns a fresh private/public key pair.
func GenerateKeyPair() (privateKey, publicKey string, err error) {
	privateKey, err = GeneratePrivateKey()
	if err != nil {
		return "", "", err
	}
	publicKey, err = DerivePublicKey(privateKey)
	if err != nil {
		return "", "", err
	}
	return privateKey, publicKey, nil
}

// GeneratePresharedKey returns a random base64-encoded 32-byte value
// suitable for use as a WireGuard PresharedKey.
func GeneratePresharedKey() (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", errors.WithCode(code.ErrKeyDecodeFailed, "failed to generate preshared key: %s", err.Error())
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// IsWellFormedKey reports whether s decodes as a 32-byte base64 WireGuard key.
func IsWellFormedKey(s string) bool {
	_, err := decodeKey(s)
	return err == nil
}

func decodeKey(s string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, errors.WithCode(code.ErrKeyDecodeFailed, "key is not valid base64: %s", err.Error())
	}
	if len(raw) != 32 {
		return nil, errors.WithCode(code.ErrKeyDecodeFailed, "key must decode to 32 bytes, got %d", len(raw))
	}
	return raw, nil
}
