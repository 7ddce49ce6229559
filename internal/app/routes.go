package app

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/limmud-app/core/internal/middleware"
	"github.com/limmud-app/core/internal/modules/catalog"
	"github.com/limmud-app/core/internal/modules/crontask"
	"github.com/limmud-app/core/internal/modules/generate"
	"github.com/limmud-app/core/internal/modules/recommend"
	"github.com/limmud-app/core/internal/modules/study"
	"github.com/limmud-app/core/internal/modules/webhookparser"
	pkgredis "github.com/limmud-app/core/internal/pkg/redis"
	"github.com/limmud-app/core/internal/pkg/response"
)

const apiPrefix = "/api/v1"

func (a *App) registerRoutes(rc *pkgredis.Client) {
	r := a.router
	authMW := middleware.Auth()

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	appInfo := gin.H{
		"name":     "limmud-core",
		"version":  "1.0.0",
		"homepage": "https://github.com/limmud-app/core",
		"issues":   "https://github.com/limmud-app/core/issues",
	}

	// Rate limiting and idempotence run on every route (requires Redis).
	r.Use(middleware.RateLimit(rc.Raw()))
	r.Use(middleware.Idempotence(rc.Raw()))

	api := r.Group(apiPrefix)
	api.Use(middleware.OptionalAuth())
	api.Use(middleware.HTTPCache(rc.Raw(), middleware.HTTPCacheOptions{
		TTL:     15 * time.Second,
		Disable: !a.cfg.IsProduction(),
		SkipPaths: []string{
			apiPrefix + "/users/",
			apiPrefix + "/uptime",
		},
	}))

	api.GET("", func(c *gin.Context) { c.PureJSON(http.StatusOK, appInfo) })
	api.GET("/info", func(c *gin.Context) { c.PureJSON(http.StatusOK, appInfo) })
	api.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"data": "pong"}) })
	api.GET("/uptime", func(c *gin.Context) {
		uptimeMs := time.Since(processStart).Milliseconds()
		c.JSON(http.StatusOK, gin.H{
			"timestamp": uptimeMs,
			"humanize":  humanizeDuration(time.Duration(uptimeMs) * time.Millisecond),
		})
	})

	a.catalogSvc = catalog.NewService(a.db, a.logger)
	studySvc := study.NewService(a.db)

	engineOpts := []recommend.Option{}
	if a.cfg.AI.SelectProvider() != nil {
		engineOpts = append(engineOpts, recommend.WithGenerator(generate.NewService(a.cfg.AI, a.logger)))
	}
	engine := recommend.NewEngine(a.logger, engineOpts...)

	catalog.NewHandler(a.catalogSvc).RegisterRoutes(api, authMW)
	study.NewHandler(studySvc).RegisterRoutes(api)
	recommend.NewHandler(engine, a.catalogSvc, studySvc, rc, a.logger).RegisterRoutes(api)
	webhookparser.NewHandler().RegisterRoutes(api)
	crontask.NewHandler(a.sched).RegisterRoutes(api, authMW)
}
