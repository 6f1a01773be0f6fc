// Package server assembles the HTTP surface: handlers, middleware
// chain and routing.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"budgetplanner/internal/auth"
	"budgetplanner/internal/config"
	"budgetplanner/internal/server/handlers"
	"budgetplanner/internal/server/middleware"
	"budgetplanner/internal/storage/sqlite"
)

// Login attempts allowed per IP per window.
const (
	loginRateLimit  = 10
	loginRateWindow = 5 * time.Minute
)

// Server is the assembled HTTP server plus the background pieces that
// need explicit shutdown.
type Server struct {
	httpServer   *http.Server
	loginLimiter *middleware.RateLimiter
}

// New wires storage, services, handlers and middleware into a
// listening-ready server.
func New(logger *slog.Logger, cfg *config.Config, store *sqlite.Storage) (*Server, error) {
	render, err := handlers.NewRenderer(logger)
	if err != nil {
		return nil, err
	}

	tokens := auth.NewTokenService(cfg, store, store)
	resolver := auth.NewSessionResolver(tokens, store)

	authHandler := handlers.NewAuthHandler(logger, cfg, store, tokens, render)
	budgetHandler := handlers.NewBudgetHandler(logger, store, store, render)
	variableHandler := handlers.NewVariableHandler(logger, store, render)
	bucketHandler := handlers.NewBucketHandler(logger, store, render)
	chartsHandler := handlers.NewChartsHandler(logger, store, render)
	exportHandler := handlers.NewExportHandler(logger, store, store, store, render)
	healthHandler := handlers.NewHealthHandler(logger, store.DB())

	loginLimiter := middleware.NewRateLimiter(loginRateLimit, loginRateWindow, logger)
	session := middleware.SessionMiddleware(logger, cfg, resolver)

	mux := http.NewServeMux()

	// Public surface.
	mux.HandleFunc("GET /login", authHandler.LoginPage)
	mux.Handle("POST /login", loginLimiter.Middleware(http.HandlerFunc(authHandler.Login)))
	mux.HandleFunc("GET /logout", authHandler.Logout)
	mux.HandleFunc("GET /healthz", healthHandler.Health)

	// Everything below requires a session.
	protected := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, session(h))
	}

	protected("GET /{$}", budgetHandler.Home)

	protected("GET /budget", budgetHandler.Page)
	protected("POST /budget", budgetHandler.Save)
	protected("GET /budget/edit/{id}", budgetHandler.EditPage)
	protected("POST /budget/update/{id}", budgetHandler.Update)
	protected("POST /budget/delete/{id}", budgetHandler.Delete)

	protected("GET /variable-budget", variableHandler.Page)
	protected("POST /variable-budget", variableHandler.Add)
	protected("POST /variable-budget/update/{id}", variableHandler.Update)
	protected("POST /variable-budget/delete/{id}", variableHandler.Delete)
	protected("POST /variable-budget/finalize", variableHandler.Finalize)

	protected("GET /bucket-list", bucketHandler.Page)
	protected("GET /bucket-list/add", bucketHandler.AddPage)
	protected("POST /bucket-list", bucketHandler.Add)
	protected("GET /bucket-list/edit/{id}", bucketHandler.EditPage)
	protected("POST /bucket-list/update/{id}", bucketHandler.Update)
	protected("POST /bucket-list/complete/{id}", bucketHandler.Complete)
	protected("POST /bucket-list/delete/{id}", bucketHandler.Delete)

	protected("GET /yearly-charts", chartsHandler.YearlyPage)
	protected("GET /monthly-analysis", chartsHandler.MonthlyPage)
	protected("GET /savings-dashboard", chartsHandler.SavingsPage)
	protected("GET /api/chart-data", chartsHandler.ChartData)
	protected("GET /api/yearly-chart-data/{year}", chartsHandler.YearlyChartData)
	protected("GET /api/monthly-analysis-data/{year}/{month}", chartsHandler.MonthlyAnalysisData)

	protected("GET /export/budget", exportHandler.Page)
	protected("GET /download/budget", exportHandler.DownloadBudget)
	protected("GET /download/variable-expenses", exportHandler.DownloadVariableExpenses)
	protected("GET /download/bucket-list", exportHandler.DownloadBucketList)

	chain := middleware.RecoveryMiddleware(logger)(middleware.LoggingMiddleware(logger)(mux))

	httpServer := &http.Server{
		Addr:           cfg.Addr,
		Handler:        chain,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 16,
	}

	return &Server{
		httpServer:   httpServer,
		loginLimiter: loginLimiter,
	}, nil
}

// ListenAndServe starts serving and blocks until the listener fails
// or Shutdown is called.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Handler exposes the full middleware chain, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Shutdown drains in-flight requests and stops background work.
func (s *Server) Shutdown(ctx context.Context) error {
	s.loginLimiter.Stop()
	return s.httpServer.Shutdown(ctx)
}
