// Package network exposes the declarative network document over HTTP:
// summary reads, full-document patches, and address reservation (spec §4.6).
package network

import (
	"github.com/wgquickrs/agent/internal/pkg/configstore"
)

// Controller handles /api/network/* routes.
type Controller struct {
	store *configstore.Store
}

// NewController builds a network controller.
func NewController(store *configstore.Store) *Controller {
	return &Controller{store: store}
}
