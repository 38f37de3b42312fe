// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"getdriven/internal/auth"
	"getdriven/internal/http/handlers"
	"getdriven/internal/http/middleware"
	"getdriven/internal/modules/export"
	"getdriven/internal/modules/ride"
	"getdriven/internal/modules/settings"
	"getdriven/internal/modules/stats"
	"getdriven/internal/modules/user"
)

type RouterDeps struct {
	Users    *user.Service
	Rides    *ride.Service
	Settings *settings.Service
	Stats    *stats.Service
	Export   *export.Service
	Verifier auth.Verifier
	Log      *zap.Logger
	Origins  []string
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Recovery(deps.Log))
	r.Use(middleware.Logging(deps.Log))
	r.Use(middleware.CORS(deps.Origins))

	api := r.Group("/api")

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authHandler := handlers.NewAuthHandler(deps.Users)
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	authed := api.Group("")
	authed.Use(middleware.Auth(deps.Verifier))

	authed.GET("/auth/me", authHandler.Me)

	rideHandler := handlers.NewRideHandler(deps.Rides)
	authed.POST("/rides", rideHandler.Create)
	authed.GET("/rides", rideHandler.List)
	authed.GET("/rides/:id", rideHandler.Get)
	authed.PUT("/rides/:id", rideHandler.Update)
	authed.DELETE("/rides/:id", rideHandler.Delete)

	exportHandler := handlers.NewExportHandler(deps.Export)
	authed.GET("/export/rides", exportHandler.Rides)

	settingsHandler := handlers.NewSettingsHandler(deps.Settings)
	authed.GET("/settings", settingsHandler.Get)
	authed.PUT("/settings", settingsHandler.Update)

	statsHandler := handlers.NewStatsHandler(deps.Stats)
	authed.GET("/stats", statsHandler.Report)

	return r
}
