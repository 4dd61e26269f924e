// Package router builds the gin engine and its route table.
package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	adminhandler "pokecard_backend/internal/feature/admin/transport/handler"
	authhandler "pokecard_backend/internal/feature/auth/transport/handler"
	cataloghandler "pokecard_backend/internal/feature/catalog/transport/handler"
	collectionhandler "pokecard_backend/internal/feature/collection/transport/handler"
	"pokecard_backend/internal/platform/http/handler"
	"pokecard_backend/internal/platform/http/middleware"
	jwtmw "pokecard_backend/internal/platform/jwt"
	"pokecard_backend/internal/platform/metrics"
)

// Handlers groups everything the route table dispatches to.
type Handlers struct {
	Auth       *authhandler.AuthHandler
	Admin      *adminhandler.AdminHandler
	Catalog    *cataloghandler.CatalogHandler
	Collection *collectionhandler.CollectionHandler
	Tokens     jwtmw.TokenValidator
	Metrics    *metrics.Metrics
	// Ready is checked by /readyz. Nil means always ready.
	Ready map[string]handler.Pinger
}

// Options toggles optional routes.
type Options struct {
	// AllowedOrigins restricts CORS. Empty allows every origin.
	AllowedOrigins []string
	// AssetsDir is served under /assets when set.
	AssetsDir string
	// SelfPromote mounts POST /auth/self-promote.
	SelfPromote bool
}

// NewRouter wires the middleware chain and every route.
func NewRouter(h Handlers, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID())
	if h.Metrics != nil {
		r.Use(h.Metrics.Middleware())
	}
	r.Use(corsMiddleware(opts.AllowedOrigins))

	// 導通確認用
	r.GET("/healthz", handler.Health)
	r.HEAD("/healthz", handler.Health)
	r.GET("/readyz", handler.Ready(h.Ready))
	if h.Metrics != nil {
		r.GET("/metrics", gin.WrapH(h.Metrics.Handler()))
	}
	if opts.AssetsDir != "" {
		r.Static("/assets", opts.AssetsDir)
	}

	authRequired := jwtmw.AuthRequired(h.Tokens)

	auth := r.Group("/auth")
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", h.Auth.Login)

	// 認証必須のルート
	protected := auth.Group("", authRequired)
	{
		protected.GET("/my-pokemons", h.Collection.List)
		protected.POST("/add-pokemons", h.Collection.Add)
		protected.GET("/check-admin", h.Admin.CheckAdmin)
		protected.POST("/promote/:userId", h.Admin.Promote)
		if opts.SelfPromote {
			protected.POST("/self-promote", h.Admin.SelfPromote)
		}
	}

	pokemons := r.Group("/api/pokemons")
	pokemons.GET("", h.Catalog.List)
	pokemons.GET("/:id", h.Catalog.Get)

	// カタログの変更は管理者のみ
	admin := pokemons.Group("", authRequired, h.Admin.RequireAdmin())
	{
		admin.POST("", h.Catalog.Create)
		admin.PUT("/:id", h.Catalog.Update)
		admin.DELETE("/:id", h.Catalog.Delete)
	}

	return r
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders: []string{"X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}
