package network

import (
	"github.com/gin-gonic/gin"

	v1 "github.com/wgquickrs/agent/internal/pkg/types/v1"
	"github.com/wgquickrs/agent/pkg/core"
)

// Summary handles GET /api/network/summary?only_digest=bool.
func (ctl *Controller) Summary(c *gin.Context) {
	onlyDigest := c.Query("only_digest") == "true"

	summary, err := ctl.store.Summary(onlyDigest)
	if err != nil {
		core.WriteResponse(c, err, nil)
		return
	}

	if onlyDigest {
		core.WriteResponse(c, nil, v1.ConfigDigestResponse{Digest: summary.Digest})
		return
	}
	core.WriteResponse(c, nil, summary)
}
