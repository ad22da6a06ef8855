package crypto

import (
	"crypto/rand"
	stderrors "errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/wgquickrs/agent/internal/pkg/code"
	"github.com/marmotedu/errors"
)

// TokenExpiration is how long an issued token remains valid.
const TokenExpiration = 24 * time.Hour

// claims is the single registered claim this agent issues: there is one
// operator identity (the shared password), so no subject/role is needed.
type claims struct {
	jwt.RegisteredClaims
}

// TokenIssuer signs and parses session tokens with a secret that only
// lives for the process's lifetime. Restarting the agent invalidates every
// outstanding token (spec §4.6): there is deliberately no persisted secret.
type TokenIssuer struct {
	secret []byte
}

// NewTokenIssuer generates a fresh random signing secret.
func NewTokenIssuer() (*TokenIssuer, error) {
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return nil, errors.WithCode(code.ErrUnknown, "failed to generate token signing secret: %s", err.Error())
	}
	return &TokenIssuer{secret: secret}, nil
}

// Issue returns a signed HS256 token good for TokenExpiration.
func (t *TokenIssuer) Issue() (string, error) {
	now := time.Now()
	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenExpiration)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", errors.WithCode(code.ErrUnknown, "failed to sign token: %s", err.Error())
	}
	return signed, nil
}

// Validate reports whether tokenString is a well-formed, unexpired token
// signed by this issuer's current secret.
func (t *TokenIssuer) Validate(tokenString string) error {
	token, err := jwt.ParseWithClaims(tokenString, &claims{}, func(tok *jwt.Token) (interface{}, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if stderrors.Is(err, jwt.ErrTokenExpired) {
			return errors.WithCode(code.ErrTokenExpired, "token expired")
		}
		return errors.WithCode(code.ErrTokenInvalid, "invalid token: %s", err.Error())
	}
	if !token.Valid {
		return errors.WithCode(code.ErrTokenInvalid, "invalid token")
	}
	return nil
}
