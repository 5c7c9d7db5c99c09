// Package server exposes the TipJar API over HTTP. The wire shapes of the
// core types (ParsedReport, Partner, PartnerPayout, DistributeResult) are the
// models' JSON encodings, unchanged.
package server

import (
	"github.com/gin-gonic/gin"

	"github.com/itswalshy/sbux.tipjar/internal/auth"
	"github.com/itswalshy/sbux.tipjar/internal/middleware"
	"github.com/itswalshy/sbux.tipjar/internal/service"
)

// NewRouter builds the gin engine with all routes and middleware.
// Extraction and distribution are stateless and open; saved reports are
// scoped to the authenticated user.
func NewRouter(reports *service.ReportService, authn auth.Authenticator, jwtManager *auth.JWTManager, staticDir string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logging())
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS())

	reportH := NewReportHandler(reports)
	authH := NewAuthHandler(authn, jwtManager)

	api := r.Group("/api/v1")
	{
		api.POST("/extract", reportH.Extract)
		api.POST("/reports/upload", reportH.Upload)
		api.POST("/distribute", reportH.Distribute)

		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authH.Register)
			authGroup.POST("/login", authH.Login)
		}

		saved := api.Group("/reports", middleware.RequireAuth(jwtManager))
		{
			saved.POST("", reportH.Create)
			saved.GET("", reportH.List)
			saved.GET("/:id", reportH.Get)
			saved.PUT("/:id", reportH.Update)
			saved.DELETE("/:id", reportH.Delete)
		}
	}

	r.GET("/metrics", middleware.MetricsHandler())

	if staticDir != "" {
		r.Static("/app", staticDir)
	}

	return r
}
