package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/devconsult/backend/internal/config"
	"github.com/devconsult/backend/internal/database"
	"github.com/devconsult/backend/internal/gate"
	"github.com/devconsult/backend/internal/handler"
	"github.com/devconsult/backend/internal/logging"
	"github.com/devconsult/backend/internal/metrics"
	"github.com/devconsult/backend/internal/notify"
	"github.com/devconsult/backend/internal/repository"
	"github.com/devconsult/backend/internal/service"
	"github.com/devconsult/backend/internal/storage"
	"github.com/devconsult/backend/pkg/auth"
	"github.com/devconsult/backend/pkg/resend"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Setup("INFO", "json")
		logging.Fatal("invalid configuration", "error", err)
	}
	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	if cfg.AutoMigrate {
		if err := database.Migrate(cfg.DatabaseURL); err != nil {
			logging.Fatal("migration failed", "error", err)
		}
	}

	pool, err := database.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logging.Fatal("failed to connect to database", "error", err)
	}
	defer pool.Close()

	contactRepo := repository.NewPgContactSubmissionRepository(pool)
	careerRepo := repository.NewPgCareerSubmissionRepository(pool)
	adminRepo := repository.NewPgAdminRepository(pool)

	store := storage.NewLocalStorage(cfg.StorageDir, cfg.CVBucket, cfg.AttachmentBucket)
	uploader := service.NewUploader(store, map[string]storage.KeyFunc{
		cfg.CVBucket:         storage.TimestampedNameKey,
		cfg.AttachmentBucket: storage.RandomKey,
	})

	// In-process notifications back the function endpoints; submissions use
	// the remote functions instead when NOTIFY_FUNCTIONS_URL is set.
	notifier := notify.NewService(resend.NewClient(cfg.ResendAPIKey), notify.Config{
		To:           cfg.NotifyTo,
		FromContact:  cfg.NotifyFromContact,
		FromCareer:   cfg.NotifyFromCareer,
		DashboardURL: cfg.DashboardURL,
	})
	var dispatcher notify.Dispatcher = notifier
	if cfg.FunctionsURL != "" {
		dispatcher = notify.NewFunctionClient(cfg.FunctionsURL, cfg.FunctionToken)
		slog.Info("notifications via functions", "url", cfg.FunctionsURL)
	} else if cfg.ResendAPIKey == "" {
		slog.Warn("RESEND_API_KEY not set; notifications will fail and be logged")
	}

	contactService := service.NewContactService(contactRepo, uploader, dispatcher, cfg.AttachmentBucket)
	careerService := service.NewCareerService(careerRepo, uploader, dispatcher, cfg.CVBucket)
	adminService := service.NewAdminService(adminRepo, cfg.BootstrapSecretHash)
	viewer := service.NewViewer(contactRepo, careerRepo, store, cfg.CVBucket, cfg.AttachmentBucket)

	tokens := auth.NewTokens(cfg.JWTSecret, cfg.JWTIssuer)
	adminGate := gate.New(tokens, adminService)

	h := handler.New(pool, cfg.FrontendURL)
	contactHandler := handler.NewContactHandler(contactService, cfg.MaxUploadBytes)
	careerHandler := handler.NewCareerHandler(careerService, cfg.MaxUploadBytes)
	notificationHandler := handler.NewNotificationHandler(notifier)
	adminHandler := handler.NewAdminHandler(adminService, viewer, tokens)
	dashboardHandler := handler.NewDashboardHandler(adminGate, adminHandler, handler.DashboardConfig{
		CookieName:       cfg.CookieName,
		LoginURL:         cfg.LoginURL,
		CVBucket:         cfg.CVBucket,
		AttachmentBucket: cfg.AttachmentBucket,
		BootstrapEnabled: cfg.BootstrapSecretHash != "",
	})
	fileHandler := handler.NewFileHandler(tokens, viewer)

	requireAuth := auth.RequireAuth(tokens, cfg.CookieName)
	adminOnly := handler.AdminOnly(adminGate, cfg.CookieName)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", h.Health)
	mux.Handle("GET /metrics", metrics.Handler())

	// Public forms
	mux.HandleFunc("POST /api/contact", contactHandler.Submit)
	mux.HandleFunc("POST /api/careers", careerHandler.Submit)

	// Notification functions
	mux.Handle("POST /functions/v1/send-contact-notification", adminOnly(http.HandlerFunc(notificationHandler.SendContact)))
	mux.HandleFunc("POST /functions/v1/send-career-notification", notificationHandler.SendCareer)

	// Admin API
	mux.Handle("GET /api/admin/me", requireAuth(http.HandlerFunc(adminHandler.Me)))
	mux.Handle("POST /api/admin/bootstrap", requireAuth(http.HandlerFunc(adminHandler.Bootstrap)))
	mux.Handle("GET /api/admin/submissions", adminOnly(http.HandlerFunc(adminHandler.Submissions)))
	mux.Handle("GET /api/admin/files/{bucket}/url", adminOnly(http.HandlerFunc(adminHandler.FileURL)))
	mux.HandleFunc("GET /api/files/{token}", fileHandler.Download)

	// Dashboard pages
	mux.HandleFunc("GET /admin", dashboardHandler.Show)
	mux.HandleFunc("POST /admin/bootstrap", dashboardHandler.Bootstrap)
	mux.HandleFunc("GET /admin/files/{bucket}", dashboardHandler.File)

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           metrics.Middleware(handler.RequestLogger(handler.SecurityHeaders(h.CORS(mux)))),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("server error", "error", err)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}
