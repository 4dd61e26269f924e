package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	redisv9 "github.com/redis/go-redis/v9"

	"pokecard_backend/internal/app/config"
	"pokecard_backend/internal/app/di"
	"pokecard_backend/internal/app/router"
	adminhandler "pokecard_backend/internal/feature/admin/transport/handler"
	adminusecase "pokecard_backend/internal/feature/admin/usecase"
	authadapters "pokecard_backend/internal/feature/auth/adapters"
	authentity "pokecard_backend/internal/feature/auth/domain/entity"
	authhandler "pokecard_backend/internal/feature/auth/transport/handler"
	authusecase "pokecard_backend/internal/feature/auth/usecase"
	catalogadapters "pokecard_backend/internal/feature/catalog/adapters"
	cataloghandler "pokecard_backend/internal/feature/catalog/transport/handler"
	catalogusecase "pokecard_backend/internal/feature/catalog/usecase"
	collectionadapters "pokecard_backend/internal/feature/collection/adapters"
	collectionhandler "pokecard_backend/internal/feature/collection/transport/handler"
	collectionusecase "pokecard_backend/internal/feature/collection/usecase"
	infradb "pokecard_backend/internal/platform/db"
	"pokecard_backend/internal/platform/http/handler"
	jwtmw "pokecard_backend/internal/platform/jwt"
	"pokecard_backend/internal/platform/metrics"
	infraredis "pokecard_backend/internal/platform/redis"
)

const shutdownTimeout = 10 * time.Second

func main() {
	config.LoadDotEnv(".env")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	slog.Info("configuration loaded",
		"environment", cfg.Environment,
		"self_promote", cfg.Features.SelfPromote,
		"admin_signup", cfg.Features.AdminSignup,
		"collector_catalog_write", cfg.Features.CollectorCatalogWrite)

	// db
	db, err := infradb.Open(cfg.DB,
		&authentity.User{},
		&catalogadapters.SpeciesModel{},
		&collectionadapters.CardModel{},
		&collectionadapters.LegacyEntryModel{},
	)
	if err != nil {
		log.Fatal(err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal(err)
	}
	ready := map[string]handler.Pinger{"database": handler.PingerFunc(sqlDB.PingContext)}

	// Redis
	var rdb *redisv9.Client
	if cfg.Redis.Enabled() {
		if rdb, err = infraredis.NewRedisClient(context.Background(), cfg.Redis); err != nil {
			slog.Warn("Redis unavailable. Running without cache.", "error", err)
			rdb = nil
		} else {
			defer func() {
				if err := rdb.Close(); err != nil {
					slog.Error("failed to close Redis client", "error", err)
				}
			}()
			ready["redis"] = handler.PingerFunc(func(ctx context.Context) error { return rdb.Ping(ctx).Err() })
		}
	}

	issuer, err := jwtmw.NewIssuer(cfg.JWTSecret, cfg.JWTExpiry)
	if err != nil {
		log.Fatal(err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	// Repository
	userRepo := authadapters.NewUserRepository(db)
	speciesRepo := di.NewSpeciesRepository(rdb, db, cfg.CatalogCacheTTL)
	cardRepo := collectionadapters.NewCardRepository(db)

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo, issuer, authusecase.Options{
		AllowAdminSignup:  cfg.Features.AdminSignup,
		MinPasswordLength: cfg.PasswordMinLength,
	})
	adminUC := adminusecase.NewAdminUsecase(userRepo)
	catalogUC := catalogusecase.NewCatalogUsecase(speciesRepo)
	collectionUC := collectionusecase.NewCollectionUsecase(userRepo, speciesRepo, cardRepo, collectionusecase.Options{
		CollectorCatalogWrite: cfg.Features.CollectorCatalogWrite,
		Recorder:              m,
	})

	// ルータ生成
	r := router.NewRouter(router.Handlers{
		Auth:       authhandler.NewAuthHandler(authUC),
		Admin:      adminhandler.NewAdminHandler(adminUC),
		Catalog:    cataloghandler.NewCatalogHandler(catalogUC),
		Collection: collectionhandler.NewCollectionHandler(collectionUC),
		Tokens:     issuer,
		Metrics:    m,
		Ready:      ready,
	}, router.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AssetsDir:      cfg.AssetsDir,
		SelfPromote:    cfg.Features.SelfPromote,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
	slog.Info("server stopped")
}
