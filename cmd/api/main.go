package main

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/gorillabooks/gorillabooks/internal/config"
	"github.com/gorillabooks/gorillabooks/internal/handler"
	"github.com/gorillabooks/gorillabooks/internal/logging"
	"github.com/gorillabooks/gorillabooks/internal/middleware"
	"github.com/gorillabooks/gorillabooks/internal/repository"
	"github.com/gorillabooks/gorillabooks/internal/service"
)

//go:embed openapi.yaml
var openAPISpec []byte

func main() {
	// Local development convenience; production sets real env vars.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logging.Init("gorillabooks-api", cfg.LogLevel, cfg.AppEnv)

	ctx, cancel := context.WithTimeout(context.Background(), 45*time.Second)
	db, err := repository.Open(ctx, cfg.DatabaseURL, repository.PoolSettings{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.DBConnMaxLifetimeS) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.DBConnMaxIdleTimeS) * time.Second,
	})
	cancel()
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := repository.RunMigrations(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	users := repository.NewUserRepository(db)
	transactions := repository.NewTransactionRepository(db)
	idempotency := repository.NewIdempotencyRepository(db)

	if n, err := idempotency.PurgeExpired(context.Background()); err != nil {
		slog.Warn("failed to purge expired idempotency records", "error", err)
	} else if n > 0 {
		slog.Info("purged expired idempotency records", "count", n)
	}

	txService := service.NewTransactionService(transactions)

	jwtExpiry := time.Duration(cfg.JWTExpiryH) * time.Hour
	authHandler := handler.NewAuthHandler(users, cfg.JWTSecret, jwtExpiry, cfg.BCryptCost)
	txHandler := handler.NewTransactionHandler(txService)
	reportHandler := handler.NewReportHandler(txService)
	accountsHandler := handler.NewAccountsHandler()
	healthHandler := handler.NewHealthHandler(db)

	authed := middleware.Auth(cfg.JWTSecret)
	idem := middleware.Idempotency(idempotency)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /health/live", healthHandler.Liveness)
	mux.HandleFunc("GET /health/ready", healthHandler.Readiness)
	mux.HandleFunc("GET /docs", handler.ServeDocs())
	mux.HandleFunc("GET /docs/openapi.yaml", handler.ServeSpec(openAPISpec))

	mux.HandleFunc("POST /api/v1/auth/signup", authHandler.Signup)
	mux.HandleFunc("POST /api/v1/auth/login", authHandler.Login)
	mux.Handle("GET /api/v1/auth/me", authed(http.HandlerFunc(authHandler.Me)))

	mux.Handle("GET /api/v1/accounts", authed(http.HandlerFunc(accountsHandler.List)))

	mux.Handle("POST /api/v1/transactions", authed(idem(http.HandlerFunc(txHandler.Create))))
	mux.Handle("GET /api/v1/transactions", authed(http.HandlerFunc(txHandler.List)))
	mux.Handle("GET /api/v1/transactions/flat", authed(http.HandlerFunc(txHandler.Flat)))
	mux.Handle("GET /api/v1/transactions/{id}", authed(http.HandlerFunc(txHandler.Get)))
	mux.Handle("DELETE /api/v1/transactions/{id}", authed(http.HandlerFunc(txHandler.Delete)))

	mux.Handle("GET /api/v1/reports/dashboard", authed(http.HandlerFunc(reportHandler.Dashboard)))
	mux.Handle("GET /api/v1/reports/trial-balance", authed(http.HandlerFunc(reportHandler.TrialBalance)))
	mux.Handle("GET /api/v1/reports/balance-sheet", authed(http.HandlerFunc(reportHandler.BalanceSheet)))
	mux.Handle("GET /api/v1/reports/income-statement", authed(http.HandlerFunc(reportHandler.IncomeStatement)))

	root := middleware.Tracing(middleware.Logging(middleware.Recovery(mux)))

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           root,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("server started", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
