package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/tabshare/tabshare/docs"
	"github.com/tabshare/tabshare/internal/activity"
	"github.com/tabshare/tabshare/internal/config"
	"github.com/tabshare/tabshare/internal/database"
	"github.com/tabshare/tabshare/internal/expense"
	expensesplit "github.com/tabshare/tabshare/internal/expense/split"
	"github.com/tabshare/tabshare/internal/group"
	"github.com/tabshare/tabshare/internal/ledger"
	"github.com/tabshare/tabshare/internal/payment"
	"github.com/tabshare/tabshare/internal/user"
	"github.com/tabshare/tabshare/pkg/logging"
	mw "github.com/tabshare/tabshare/pkg/middleware"
)

// @title           TabShare API
// @version         1.0
// @description     Shared expense tracking with balance computation and settlement suggestions.
// @BasePath        /api/v1
func main() {
	logging.Setup()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	// Load configuration
	cfg := config.Load()

	// Initialize database connection
	db, err := database.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	slog.Info("connected to database")

	// Split Strategy Factory (Factory Pattern)
	splitFactory := expensesplit.NewSplitStrategyFactory()

	// User feature
	userRepo := user.NewRepository(db)
	userService := user.NewService(userRepo)
	userHandler := user.NewHandler(userService)

	// Activity feature (recorded into by groups, expenses and payments)
	activityRepo := activity.NewRepository(db)
	activityService := activity.NewService(activityRepo)
	activityHandler := activity.NewHandler(activityService)

	// Group feature
	groupRepo := group.NewRepository(db)
	groupService := group.NewService(groupRepo, activityService)
	groupHandler := group.NewHandler(groupService)

	// Expense feature (with split factory injected)
	expenseRepo := expense.NewRepository(db)
	expenseService := expense.NewService(expenseRepo, splitFactory, activityService)
	expenseHandler := expense.NewHandler(expenseService)

	// Payment feature
	paymentRepo := payment.NewRepository(db)
	paymentService := payment.NewService(paymentRepo, activityService)
	paymentHandler := payment.NewHandler(paymentService)

	// Ledger feature (reads the other features' data, writes nothing)
	ledgerService := ledger.NewService(groupRepo, expenseRepo, paymentRepo, userRepo)
	ledgerHandler := ledger.NewHandler(ledgerService)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(mw.RequestLogger)
	r.Use(mw.Metrics)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler())

	// API routes, authenticated. Without a JWT secret the server runs in
	// test mode and trusts the X-Test-User-ID header.
	r.Route("/api/v1", func(r chi.Router) {
		if cfg.JWTSecret != "" {
			r.Use(mw.AuthMiddleware(cfg.JWTSecret))
		} else {
			slog.Warn("JWT_SECRET not set, using test user middleware")
			r.Use(mw.TestUserMiddleware)
		}

		// Mount feature routers
		r.Mount("/users", userHandler.Routes())
		r.Mount("/groups", groupHandler.Routes())
		r.Mount("/expenses", expenseHandler.Routes())
		r.Mount("/payments", paymentHandler.Routes())
		r.Mount("/activity", activityHandler.Routes())
		r.Mount("/balances", ledgerHandler.Routes())
	})

	// Start server
	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	slog.Info("server starting", "port", port)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
