package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/marmotedu/errors"
	"k8s.io/klog/v2"

	"github.com/wgquickrs/agent/internal/pkg/code"
	"github.com/wgquickrs/agent/internal/pkg/crypto"
	v1 "github.com/wgquickrs/agent/internal/pkg/types/v1"
	"github.com/wgquickrs/agent/pkg/core"
)

// Token handles POST /api/token: verify the shared operator password and, on
// success, issue a bearer token signed with this process's ephemeral secret.
func (ctl *Controller) Token(c *gin.Context) {
	var req v1.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		core.WriteResponse(c, errors.WithCode(code.ErrBind, "%s", err.Error()), nil)
		return
	}

	cfg, err := ctl.store.Get()
	if err != nil {
		core.WriteResponse(c, err, nil)
		return
	}

	if !cfg.Agent.Web.Password.Enabled {
		c.Status(http.StatusNoContent)
		return
	}

	ok, err := crypto.VerifyPassword(req.Password, cfg.Agent.Web.Password.Hash)
	if err != nil {
		klog.Errorf("failed to verify operator password: %v", err)
		core.WriteResponse(c, errors.WithCode(code.ErrUnknown, "failed to verify password"), nil)
		return
	}
	if !ok {
		core.WriteResponse(c, errors.WithCode(code.ErrPasswordIncorrect, "%s", code.Message(code.ErrPasswordIncorrect)), nil)
		return
	}

	token, err := ctl.issuer.Issue()
	if err != nil {
		core.WriteResponse(c, err, nil)
		return
	}

	core.WriteResponse(c, nil, v1.TokenResponse{Token: token})
}
