package server

import (
	"github.com/gin-gonic/gin"

	"darzi-backend/internal/ats"
	"darzi-backend/internal/extract"
	"darzi-backend/internal/generator"
	"darzi-backend/internal/hybrid"
	"darzi-backend/internal/shared/config"
	"darzi-backend/internal/shared/metrics"
	"darzi-backend/internal/shared/server/middleware"
	"darzi-backend/internal/status"
)

// RouterDeps carries the handlers the router wires up.
type RouterDeps struct {
	Config          config.Config
	StatusHandler   *status.Handler
	ParseHandler    *hybrid.Handler
	ATSHandler      *ats.Handler
	GenerateHandler *generator.Handler
	ExtractHandler  *extract.Handler
}

// NewRouter constructs the gin engine with middleware and routes
// registered. Route paths are part of the public contract, so everything
// hangs off the root group except the /api/extract pair.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	r.GET("/metrics", metrics.Handler())

	root := r.Group("")
	deps.StatusHandler.RegisterRoutes(root)
	deps.ParseHandler.RegisterRoutes(root)
	deps.ATSHandler.RegisterRoutes(root)
	deps.GenerateHandler.RegisterRoutes(root)
	deps.ExtractHandler.RegisterRoutes(root)

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":7860"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
