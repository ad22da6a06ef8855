package router

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	ginprometheus "github.com/zsais/go-gin-prometheus"

	"github.com/wgquickrs/agent/cmd/app/middleware"
	"github.com/wgquickrs/agent/pkg/environment"
)

func SetupMiddlewares(router *gin.Engine) {

	// install cors middleware
	router.Use(middleware.Cors())

	// compression applies to every response (spec §4.6)
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	// install pprof handler and metrics handler only in development mode
	if environment.IsDev() {
		// install pprof handler
		pprof.Register(router)

		// install metrics handler
		prometheus := ginprometheus.NewPrometheus("gin")
		prometheus.Use(router)
	}
}
