// Package webassets embeds the operator UI's built static files and serves
// them from the agent's own binary (spec §6): no separate web server, no
// runtime dependency on the source tree.
package webassets

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed all:dist
var distFS embed.FS

// FS returns the embedded dist/ tree rooted at dist itself, not at the
// repository root go:embed sees.
func FS() (http.FileSystem, error) {
	sub, err := fs.Sub(distFS, "dist")
	if err != nil {
		return nil, err
	}
	return http.FS(sub), nil
}

// Register serves index.html at "/", the whole embedded tree under
// "/assets/", and index.html for every other unmatched path. Embedded files
// are not served at their own paths directly under "/".
func Register(router *gin.Engine) error {
	assets, err := FS()
	if err != nil {
		return err
	}

	router.StaticFS("/assets", assets)
	router.GET("/", func(c *gin.Context) {
		c.FileFromFS("index.html", assets)
	})
	router.NoRoute(func(c *gin.Context) {
		c.FileFromFS("index.html", assets)
	})
	return nil
}
