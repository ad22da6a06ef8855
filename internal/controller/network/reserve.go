package network

import (
	"github.com/gin-gonic/gin"

	v1 "github.com/wgquickrs/agent/internal/pkg/types/v1"
	"github.com/wgquickrs/agent/pkg/core"
)

// ReserveAddress handles POST /api/network/reserve/address (spec §4.3).
func (ctl *Controller) ReserveAddress(c *gin.Context) {
	address, peerID, err := ctl.store.ReserveAddress()
	if err != nil {
		core.WriteResponse(c, err, nil)
		return
	}

	core.WriteResponse(c, nil, v1.ReserveAddressResponse{Address: address, PeerID: peerID})
}
