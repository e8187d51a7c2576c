// Package server assembles the HTTP surface from the inventory services.
package server

import (
	"net/http"

	"equiptrack/internal/inventory"
	"equiptrack/internal/metrics"
	"equiptrack/internal/middleware"
	"equiptrack/internal/modules/admin"
	"equiptrack/internal/modules/auth"
	"equiptrack/internal/modules/catalog"
	"equiptrack/internal/modules/events"
	"equiptrack/internal/modules/report"
	"equiptrack/internal/modules/requests"
	jwtsvc "equiptrack/internal/pkg/jwt"
	"equiptrack/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Deps struct {
	Store       repository.DataStore
	Inventory   *inventory.Repository
	JWT         *jwtsvc.Service
	Hub         *events.Hub
	StockPolicy requests.StockPolicy
	CORSOrigins []string
	Log         *zap.Logger
}

// NewRouter wires every module onto a fresh gin engine under /api/v1.
func NewRouter(d Deps) *gin.Engine {
	lg := d.Log
	if lg == nil {
		lg = zap.NewNop()
	}

	authHandler := auth.NewHandler(auth.NewService(d.Inventory, d.Store, d.JWT, lg))
	catalogHandler := catalog.NewHandler(catalog.NewService(d.Inventory, d.Store, d.Hub, lg))
	requestsHandler := requests.NewHandler(requests.NewService(d.Inventory, d.Store, d.Hub, d.StockPolicy, lg))
	reportHandler := report.NewHandler(report.NewService(d.Inventory, lg))
	adminHandler := admin.NewHandler(admin.NewService(d.Inventory, lg))
	eventsHandler := events.NewHandler(d.Hub, d.JWT, lg)

	r := gin.New()
	r.Use(middleware.ErrorLogger(lg), middleware.RequestLogger(lg), middleware.CORS(d.CORSOrigins))

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/metrics", metrics.Handler())

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterPublicRoutes(v1)
		eventsHandler.RegisterRoutes(v1)

		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(d.JWT))
		{
			authHandler.RegisterProtectedRoutes(protected)
			catalogHandler.RegisterRoutes(protected)
			requestsHandler.RegisterRoutes(protected)
			reportHandler.RegisterRoutes(protected)
			adminHandler.RegisterRoutes(protected)
		}
	}
	return r
}
