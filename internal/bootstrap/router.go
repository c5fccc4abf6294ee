package bootstrap

import (
	"path/filepath"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	httpapi "github.com/is24/projects-manager/internal/api/http"
	"github.com/is24/projects-manager/internal/api/http/middleware"
	"github.com/is24/projects-manager/internal/api/http/routes"
	"github.com/is24/projects-manager/internal/metrics"
	"github.com/is24/projects-manager/internal/projects/service"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	Logger      *zap.Logger
	Metrics     *metrics.Metrics
	Projects    *service.ProjectService

	Storage string
	Pinger  httpapi.Pinger

	CORSOrigins    []string
	RateLimitRPS   float64
	RateLimitBurst int
	StaticDir      string
	DocsServerURL  string
}

func BuildRouter(dep RouterDeps) (*gin.Engine, error) {
	logger := dep.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID(logger))
	r.Use(cors.New(corsConfig(dep.CORSOrigins)))
	r.Use(dep.Metrics.Middleware())

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.Storage, dep.Pinger)
	healthHandler.RegisterRoutes(r)

	if dep.Metrics != nil {
		r.GET("/metrics", dep.Metrics.Handler())
	}

	if err := routes.RegisterAPI(r, routes.APIDeps{
		Projects:      dep.Projects,
		Logger:        logger,
		WriteLimit:    middleware.RateLimit(dep.RateLimitRPS, dep.RateLimitBurst),
		DocsServerURL: dep.DocsServerURL,
	}); err != nil {
		return nil, err
	}

	if dep.StaticDir != "" {
		r.Static("/assets", filepath.Join(dep.StaticDir, "assets"))
		r.StaticFile("/", filepath.Join(dep.StaticDir, "index.html"))
		r.StaticFile("/favicon.ico", filepath.Join(dep.StaticDir, "favicon.ico"))
	}

	return r, nil
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", middleware.HeaderRequestID},
		ExposeHeaders: []string{middleware.HeaderRequestID},
	}

	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
