package api

import (
	"log"
	stdhttp "net/http"
	"time"

	"taxiapi/internal/auth"
	"taxiapi/internal/config"
	h "taxiapi/internal/http/handlers"
	"taxiapi/internal/http/middleware"
	"taxiapi/internal/query"
	"taxiapi/internal/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires the full endpoint surface. /health and /metrics are open;
// everything else goes through the credential check first.
func NewRouter(env config.Env, a *auth.Authenticator, engine *query.Engine, snap *store.Snapshot) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.Metrics(), corsMiddleware(env))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"code":   "not_found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := h.API{Env: env, Engine: engine, Snap: snap}

	r.GET("/health", api.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authed := r.Group("/", middleware.Auth(a))
	authed.GET("/trips", api.ListTrips)
	authed.GET("/drivers", api.ListDrivers)

	return r
}

func corsMiddleware(env config.Env) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods: []string{"GET", "OPTIONS"},
		AllowHeaders: []string{
			"Origin", "Accept", "Content-Type",
			middleware.HeaderAPIKey, middleware.HeaderGroupName,
		},
		MaxAge: 12 * time.Hour,
	}
	if len(env.CORSAllowedOrigins) > 0 {
		cfg.AllowOrigins = env.CORSAllowedOrigins
	} else {
		cfg.AllowAllOrigins = true
	}
	return cors.New(cfg)
}
