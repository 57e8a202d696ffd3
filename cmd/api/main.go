package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"database/sql"

	"github.com/futurahomes/backoffice/internal/config"
	"github.com/futurahomes/backoffice/internal/handler"
	"github.com/futurahomes/backoffice/internal/integrations/ratefeed"
	"github.com/futurahomes/backoffice/internal/jobs"
	"github.com/futurahomes/backoffice/internal/middleware"
	"github.com/futurahomes/backoffice/internal/models"
	"github.com/futurahomes/backoffice/internal/ratelimit"
	"github.com/futurahomes/backoffice/internal/repository"
	"github.com/futurahomes/backoffice/internal/service"
	"github.com/futurahomes/backoffice/internal/utils/email"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	_ = godotenv.Load()
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	// Initialize layers
	repo := repository.NewRepository(db)
	mailer := email.NewSender(cfg, logger)
	limiter := ratelimit.NewLimiter(5, time.Hour)
	feed := ratefeed.NewClient(cfg, logger)
	svc := service.NewService(repo, logger, cfg, mailer, limiter, feed)
	h := handler.NewHandler(svc, logger)

	// Overdue sweeper
	sweeper := jobs.NewSweeper(repo, mailer, feed, logger)
	cronRunner, err := sweeper.Start(cfg.SweepSpec)
	if err != nil {
		logger.Fatalf("Failed to schedule overdue sweeper: %v", err)
	}
	defer cronRunner.Stop()

	// Setup router
	r := mux.NewRouter()
	// Public routes
	r.HandleFunc("/register", h.Register).Methods("POST")
	r.HandleFunc("/login", h.Login).Methods("POST")
	r.HandleFunc("/inquiries", h.CreateInquiry).Methods("POST")
	// Penalty reference rate endpoint
	r.HandleFunc("/penalty-rate", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]float64{"penalty_rate": feed.EffectiveRate()})
	}).Methods("GET")

	// Protected routes
	authRouter := r.PathPrefix("/").Subrouter()
	authRouter.Use(middleware.AuthMiddleware(cfg))
	authRouter.HandleFunc("/profile", h.Profile).Methods("GET")
	authRouter.HandleFunc("/profile", h.UpdateProfile).Methods("PUT")
	authRouter.HandleFunc("/notifications", h.ListNotifications).Methods("GET")
	authRouter.HandleFunc("/notifications/{id}/read", h.MarkNotificationRead).Methods("PUT")
	authRouter.HandleFunc("/reservations", h.CreateReservation).Methods("POST")
	authRouter.HandleFunc("/contracts", h.ListContracts).Methods("GET")
	authRouter.HandleFunc("/contracts/create", h.CreateContract).Methods("POST")
	authRouter.HandleFunc("/contracts/payment/walk-in", h.WalkInPayment).Methods("POST")
	authRouter.HandleFunc("/contracts/payment/walk-in", h.WalkInPaymentDetails).Methods("GET")
	authRouter.HandleFunc("/contracts/{id}", h.GetContract).Methods("GET")
	authRouter.HandleFunc("/contracts/{id}/validate-plan-change", h.ValidatePlanChange).Methods("POST")
	authRouter.HandleFunc("/contracts/{id}/change-plan", h.ChangePlan).Methods("POST")
	authRouter.HandleFunc("/inquiries", h.ListInquiries).Methods("GET")

	// Admin routes
	adminRouter := authRouter.PathPrefix("/").Subrouter()
	adminRouter.Use(middleware.RequireRole(models.RoleAdmin))
	adminRouter.HandleFunc("/reservations/{id}/approve", h.ApproveReservation).Methods("POST")
	adminRouter.HandleFunc("/inquiries/{id}/status", h.UpdateInquiryStatus).Methods("PUT")

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}
