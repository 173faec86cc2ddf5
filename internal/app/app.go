// Package app assembles the catalog server: configuration, logging,
// storage, services, transport, and lifecycle.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver for database/sql
	"github.com/pressly/goose/v3"
	"golang.org/x/sync/errgroup"

	"github.com/aiusecase/catalog-backend/internal/adapter/blob"
	"github.com/aiusecase/catalog-backend/internal/adapter/postgres"
	usecaserepo "github.com/aiusecase/catalog-backend/internal/adapter/postgres/usecase"
	"github.com/aiusecase/catalog-backend/internal/auth"
	"github.com/aiusecase/catalog-backend/internal/catalog"
	"github.com/aiusecase/catalog-backend/internal/config"
	"github.com/aiusecase/catalog-backend/internal/editor"
	"github.com/aiusecase/catalog-backend/internal/report"
	"github.com/aiusecase/catalog-backend/internal/transport/middleware"
	"github.com/aiusecase/catalog-backend/internal/transport/rest"
	"github.com/aiusecase/catalog-backend/migrations"
)

// Run is the application entry point. It loads configuration, wires every
// component, and serves HTTP until the context is canceled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	if cfg.Database.Migrate {
		if err := migrateUp(ctx, cfg.Database.DSN); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
		logger.Info("migrations applied")
	}

	blobStore, err := blob.NewS3(ctx, cfg.Blob)
	if err != nil {
		return fmt.Errorf("init blob store: %w", err)
	}

	repo := usecaserepo.New(pool)

	catalogSvc := catalog.NewService(logger, repo, cfg.Catalog.SummaryLimit, cfg.Catalog.DefaultSort)
	editorSvc := editor.NewService(logger, repo, blobStore)
	generator := report.NewGenerator(logger, blobStore, cfg.Report.MaxRecords, cfg.Report.ImageTimeout)

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer)

	limiter := middleware.NewRateLimiter(time.Minute)
	defer limiter.Stop()

	router := rest.NewRouter(rest.Handlers{
		Catalog: rest.NewCatalogHandler(catalogSvc, logger),
		Admin:   rest.NewAdminHandler(editorSvc, logger),
		Report:  rest.NewReportHandler(generator, catalogSvc, logger),
		Health:  rest.NewHealthHandler(repo, BuildVersion()),
	}, limiter.Limit(cfg.Report.RatePerMinute))

	handler := middleware.Chain(
		middleware.RequestID,
		middleware.Recovery(logger),
		middleware.CORS(cfg.CORS),
		middleware.Auth(jwtManager),
		middleware.Logger(logger),
	)(router)

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	})

	return g.Wait()
}

// migrateUp applies pending goose migrations from the embedded set.
func migrateUp(ctx context.Context, dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("sql.Open: %w", err)
	}
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return fmt.Errorf("goose new provider: %w", err)
	}

	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}
