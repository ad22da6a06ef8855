// Package core holds the HTTP response envelope shared by every controller
// (spec §4.6: all JSON, all non-2xx carry `{ error: string }`).
package core

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/marmotedu/errors"
	"k8s.io/klog/v2"
)

// ErrResponse is the body of every non-2xx response.
type ErrResponse struct {
	Error string `json:"error"`
}

// WriteResponse writes err (if non-nil) as a typed, coded error response, or
// data as a 200 JSON body otherwise. ValidationError-coded errors log at
// V(1) (normal operator feedback); every other stratum logs at error level
// (spec §7).
func WriteResponse(c *gin.Context, err error, data interface{}) {
	if err != nil {
		coder := errors.ParseCoder(err)
		if coder.HTTPStatus() == http.StatusBadRequest {
			klog.V(1).Infof("%v", err)
		} else {
			klog.Errorf("%+v", err)
		}
		c.JSON(coder.HTTPStatus(), ErrResponse{Error: coder.String()})
		return
	}

	if data == nil {
		c.Status(http.StatusOK)
		return
	}
	c.JSON(http.StatusOK, data)
}
