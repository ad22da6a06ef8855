package router

import (
	"github.com/gin-gonic/gin"

	authctl "github.com/wgquickrs/agent/internal/controller/auth"
	networkctl "github.com/wgquickrs/agent/internal/controller/network"
	versionctl "github.com/wgquickrs/agent/internal/controller/version"
	wireguardctl "github.com/wgquickrs/agent/internal/controller/wireguard"

	"github.com/wgquickrs/agent/cmd/app/middleware"
	"github.com/wgquickrs/agent/internal/pkg/configstore"
	"github.com/wgquickrs/agent/internal/pkg/crypto"
	"github.com/wgquickrs/agent/internal/pkg/webassets"
	"github.com/wgquickrs/agent/pkg/environment"
	"k8s.io/klog/v2"
)

// Dependencies are the runtime collaborators routes are wired against. They
// are only known once CLI flags are parsed and the config directory is
// resolved, so (unlike the teacher's package-level sqlite store) the router
// is built by an explicit constructor rather than a side-effecting init().
type Dependencies struct {
	Store  *configstore.Store
	Issuer *crypto.TokenIssuer
	Driver wireguardctl.TunnelDriver
}

// New builds the gin engine and registers every route (spec §4.6).
func New(deps Dependencies) *gin.Engine {
	if !environment.IsDev() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.Default()
	SetupMiddlewares(engine)
	_ = engine.SetTrustedProxies(nil)

	engine.GET("/livez", func(c *gin.Context) { c.String(200, "livez") })
	engine.GET("/readyz", func(c *gin.Context) { c.String(200, "readyz") })

	auth := authctl.NewController(deps.Store, deps.Issuer)
	engine.POST("/api/token", auth.Token)

	passwordAuthEnabled := func() bool {
		cfg, err := deps.Store.Get()
		if err != nil {
			return true // fail closed: an unreadable config must not open the API
		}
		return cfg.Agent.Web.Password.Enabled
	}

	api := engine.Group("/api")
	api.Use(middleware.JWTAuth(deps.Issuer, passwordAuthEnabled))

	version := versionctl.NewController()
	api.GET("/version", version.Version)

	net := networkctl.NewController(deps.Store)
	api.GET("/network/summary", net.Summary)
	api.PATCH("/network/config", net.PatchConfig)
	api.POST("/network/reserve/address", net.ReserveAddress)

	wg := wireguardctl.NewController(deps.Driver)
	api.POST("/wireguard/status", wg.Status)

	if err := webassets.Register(engine); err != nil {
		klog.Errorf("failed to register embedded web assets: %v", err)
	}

	return engine
}
