// Package auth issues bearer tokens against the agent's single shared
// operator password (spec §4.6).
package auth

import (
	"github.com/wgquickrs/agent/internal/pkg/configstore"
	"github.com/wgquickrs/agent/internal/pkg/crypto"
)

// Controller handles POST /api/token.
type Controller struct {
	store  *configstore.Store
	issuer *crypto.TokenIssuer
}

// NewController builds an auth controller.
func NewController(store *configstore.Store, issuer *crypto.TokenIssuer) *Controller {
	return &Controller{store: store, issuer: issuer}
}
