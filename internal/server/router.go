package server

import (
	"github.com/gin-gonic/gin"

	"github.com/FACorreiaa/tiktok-to-trip/internal/pkg/config"
	"github.com/FACorreiaa/tiktok-to-trip/pkg/middleware"
)

// SetupRouter returns a gin engine with the shared middleware stack.
// serviceName labels the request spans.
func SetupRouter(cfg *config.Config, serviceName string) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.OTELGinMiddleware(serviceName))
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigins))
	r.Use(middleware.SecurityMiddleware())

	return r
}
