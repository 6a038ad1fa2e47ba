package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/brecholab/brecho-backend/internal/database"
	"github.com/brecholab/brecho-backend/internal/logger"
	"github.com/brecholab/brecho-backend/internal/modules/auth"
	"github.com/brecholab/brecho-backend/internal/modules/automation"
	"github.com/brecholab/brecho-backend/internal/modules/consignor"
	"github.com/brecholab/brecho-backend/internal/modules/item"
	"github.com/brecholab/brecho-backend/internal/modules/payout"
	"github.com/brecholab/brecho-backend/internal/modules/report"
	"github.com/brecholab/brecho-backend/internal/modules/sale"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
)

func main() {
	log := logger.Get()

	if err := godotenv.Load(); err != nil {
		log.Warn("no .env file found, relying on environment")
	}

	dbPath := os.Getenv("DATABASE_PATH")
	if dbPath == "" {
		dbPath = "brecho.db"
	}
	db, err := database.Open(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()
	log.WithField("path", dbPath).Info("database ready")

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)

	// ── Auth ────────────────────────────────────────────────
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}
	authRepo := auth.NewSQLiteRepository(db)
	authService := auth.NewService(authRepo, jwtSecret)
	authHandler := auth.NewHandler(authService)
	authHandler.RegisterRoutes(router)

	// ── Engine modules ──────────────────────────────────────
	consignorService := consignor.NewService(consignor.NewSQLiteRepository(db))
	itemService := item.NewService(item.NewSQLiteRepository(db))
	saleService := sale.NewService(sale.NewSQLiteRepository(db))
	automationService := automation.NewService(automation.NewSQLiteRepository(db))
	payoutService := payout.NewService(payout.NewSQLiteRepository(db))
	reportService := report.NewService(report.NewSQLiteRepository(db))

	router.Group(func(r chi.Router) {
		// single-operator local deployments can switch auth off
		if os.Getenv("AUTH_DISABLED") != "true" {
			r.Use(authHandler.Middleware)
		}
		consignor.NewHandler(consignorService).RegisterRoutes(r)
		item.NewHandler(itemService).RegisterRoutes(r)
		sale.NewHandler(saleService).RegisterRoutes(r)
		automation.NewHandler(automationService).RegisterRoutes(r)
		payout.NewHandler(payoutService).RegisterRoutes(r)
		report.NewHandler(reportService).RegisterRoutes(r)
	})

	// ── Start Server ────────────────────────────────────────
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}
	log.WithField("port", port).Info("brecho API server starting")
	if err := http.ListenAndServe(fmt.Sprintf(":%s", port), router); err != nil {
		log.Fatal(err)
	}
}
