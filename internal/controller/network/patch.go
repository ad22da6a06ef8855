package network

import (
	"github.com/gin-gonic/gin"
	"github.com/marmotedu/errors"

	"github.com/wgquickrs/agent/internal/pkg/code"
	v1 "github.com/wgquickrs/agent/internal/pkg/types/v1"
	"github.com/wgquickrs/agent/pkg/core"
)

// PatchConfig handles PATCH /api/network/config: the body is a complete
// Network document that replaces the current one after full validation. An
// optional If-Match header carries the precondition digest from a prior
// read (compare-and-set); a mismatch yields 409 (spec §5).
func (ctl *Controller) PatchConfig(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		core.WriteResponse(c, errors.WithCode(code.ErrBind, "failed to read request body: %s", err.Error()), nil)
		return
	}

	expectedDigest := c.GetHeader("If-Match")
	digest, err := ctl.store.PatchNetwork(raw, expectedDigest)
	if err != nil {
		core.WriteResponse(c, err, nil)
		return
	}

	core.WriteResponse(c, nil, v1.PatchNetworkResponse{Digest: digest})
}
