// Package wireguard drives tunnel state transitions over HTTP (spec §4.5, §4.6).
package wireguard

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/marmotedu/errors"

	"github.com/wgquickrs/agent/internal/pkg/code"
	v1 "github.com/wgquickrs/agent/internal/pkg/types/v1"
	"github.com/wgquickrs/agent/pkg/core"
)

// TunnelDriver is the *tunnel.Driver surface this controller drives.
type TunnelDriver interface {
	Status() string
	EnableTunnel(ctx context.Context) error
	DisableTunnel(ctx context.Context) error
}

// Controller handles POST /api/wireguard/status.
type Controller struct {
	driver TunnelDriver
}

// NewController builds a wireguard status controller.
func NewController(driver TunnelDriver) *Controller {
	return &Controller{driver: driver}
}

// Status handles POST /api/wireguard/status: transitions the tunnel driver
// up or down and echoes its resulting status.
func (ctl *Controller) Status(c *gin.Context) {
	var req v1.WireGuardStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		core.WriteResponse(c, errors.WithCode(code.ErrBind, "%s", err.Error()), nil)
		return
	}

	ctx := c.Request.Context()
	var err error
	switch strings.ToLower(req.Status) {
	case "up":
		err = ctl.driver.EnableTunnel(ctx)
	case "down":
		err = ctl.driver.DisableTunnel(ctx)
	default:
		core.WriteResponse(c, errors.WithCode(code.ErrValidation, "status must be \"up\" or \"down\""), nil)
		return
	}
	if err != nil {
		core.WriteResponse(c, err, nil)
		return
	}

	core.WriteResponse(c, nil, v1.WireGuardStatusResponse{Status: ctl.driver.Status()})
}
