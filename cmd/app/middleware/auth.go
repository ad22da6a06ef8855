package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/marmotedu/errors"
	"k8s.io/klog/v2"

	"github.com/wgquickrs/agent/internal/pkg/code"
	"github.com/wgquickrs/agent/internal/pkg/crypto"
	"github.com/wgquickrs/agent/pkg/core"
)

// JWTAuth gates every request behind a bearer token signed by issuer, unless
// passwordAuthEnabled reports false, in which case every request passes
// through unauthenticated (spec §4.6).
func JWTAuth(issuer *crypto.TokenIssuer, passwordAuthEnabled func() bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !passwordAuthEnabled() {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			klog.V(1).Infof("missing authorization header")
			core.WriteResponse(c, errors.WithCode(code.ErrMissingHeader, "%s", code.Message(code.ErrMissingHeader)), nil)
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			klog.V(1).Infof("invalid authorization header format")
			core.WriteResponse(c, errors.WithCode(code.ErrInvalidAuthHeader, "%s", code.Message(code.ErrInvalidAuthHeader)), nil)
			c.Abort()
			return
		}

		if err := issuer.Validate(parts[1]); err != nil {
			klog.V(1).Infof("invalid token: %v", err)
			core.WriteResponse(c, err, nil)
			c.Abort()
			return
		}

		c.Next()
	}
}
