// Package version serves build metadata (spec §4.6).
package version

import (
	"github.com/gin-gonic/gin"

	"github.com/wgquickrs/agent/pkg/core"
	"github.com/wgquickrs/agent/pkg/environment"
)

// Controller handles GET /api/version.
type Controller struct{}

// NewController builds a version controller.
func NewController() *Controller {
	return &Controller{}
}

// Version writes the running binary's version and build metadata.
func (ctl *Controller) Version(c *gin.Context) {
	core.WriteResponse(c, nil, environment.Get())
}
