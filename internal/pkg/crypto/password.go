package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"

	"github.com/wgquickrs/agent/internal/pkg/code"
	"github.com/marmotedu/errors"
)

// Argon2id tuning. These are the library's own recommended interactive
// parameters; nothing in this domain needs them to be configurable.
const (
	argon2Time    = 1
	argon2Memory  = 64 * 1024
	argon2Threads = 4
	argon2KeyLen  = 32
	saltLength    = 16
)

// HashPassword returns a PHC-formatted argon2id hash for password:
// $argon2id$v=19$m=65536,t=1,p=4$<salt>$<hash>
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", errors.WithCode(code.ErrUnknown, "failed to generate password salt: %s", err.Error())
	}
	hash := argon2.IDKey([]byte(password), salt, argon2Time, argon2Memory, argon2Threads, argon2KeyLen)
	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, argon2Memory, argon2Time, argon2Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash))
	return encoded, nil
}

// VerifyPassword reports whether password matches the PHC-formatted hash
// previously produced by HashPassword.
func VerifyPassword(password, encoded string) (bool, error) {
	var version, memory, time, threads int
	var saltB64, hashB64 string

	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return false, errors.WithCode(code.ErrUnknown, "malformed password hash")
	}
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return false, errors.WithCode(code.ErrUnknown, "malformed password hash version")
	}
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return false, errors.WithCode(code.ErrUnknown, "malformed password hash params")
	}
	saltB64, hashB64 = parts[4], parts[5]

	salt, err := base64.RawStdEncoding.DecodeString(saltB64)
	if err != nil {
		return false, errors.WithCode(code.ErrUnknown, "malformed password hash salt")
	}
	want, err := base64.RawStdEncoding.DecodeString(hashB64)
	if err != nil {
		return false, errors.WithCode(code.ErrUnknown, "malformed password hash digest")
	}

	got := argon2.IDKey([]byte(password), salt, uint32(time), uint32(memory), uint8(threads), uint32(len(want)))
	return subtle.ConstantTimeCompare(got, want) == 1, nil
}
