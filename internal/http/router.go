package http

import (
	"log/slog"

	"github.com/Krtikgoswami/project001/internal/auth"
	"github.com/Krtikgoswami/project001/internal/config"
	"github.com/Krtikgoswami/project001/internal/domain/user"
	"github.com/Krtikgoswami/project001/internal/http/handlers"
	"github.com/Krtikgoswami/project001/internal/http/middlewares"
	"github.com/Krtikgoswami/project001/internal/observability"
	"github.com/Krtikgoswami/project001/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

const maxBodyBytes = 1 << 20 // JSON auth payloads are tiny

// NewRouter wires the whole HTTP surface. store may be the postgres repo or
// the in-memory one; denylist and ping may be nil.
func NewRouter(log *slog.Logger, cfg config.Config, store service.UserStore, denylist *auth.Denylist, ping func() error) *gin.Engine {
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// middleware

	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger(log))
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(cfg.CORSOrigins))

	if cfg.OTLPEndpoint != "" {
		r.Use(otelgin.Middleware("datadash-api"))
	}

	reg := prometheus.NewRegistry()
	prom := observability.NewProm(reg)
	r.Use(prom.GinHandleMiddleware())

	// health + metrics

	hh := handlers.NewHealthHandler(ping)
	r.GET("/healthz", hh.Healthz)
	r.GET("/readyz", hh.Readyz)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// wire the auth core

	tokens := auth.NewManager(cfg.JWTSecret, cfg.TokenTTL())
	svc := service.NewAuthService(store, tokens, cfg.AdminEmails)

	// a nil *Denylist must stay a nil interface
	var revoked middlewares.RevocationChecker
	var revoker handlers.TokenRevoker

	if denylist != nil {
		revoked = denylist
		revoker = denylist
	}

	am := middlewares.NewAuthMiddleware(tokens, revoked)

	authHandler := handlers.NewAuthHandler(svc, revoker, prom)
	usersHandler := handlers.NewUsersHandler(svc)

	api := r.Group("/api", middlewares.RequireJSON(), middlewares.MaxBodyBytes(maxBodyBytes))

	api.POST("/auth/signup", authHandler.SignUp)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/logout", am.RequireAuth(), authHandler.Logout)

	api.GET("/protected", am.RequireAuth(), handlers.Protected)

	admin := api.Group("/admin", am.RequireAuth(), am.RequireRole(user.RoleAdmin))
	admin.GET("", handlers.AdminHome)
	admin.GET("/users", usersHandler.ListUsers)

	return r
}
