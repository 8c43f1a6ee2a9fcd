package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iudanet/urugendo/internal/server/email"
	"github.com/iudanet/urugendo/internal/server/geocode"
	"github.com/iudanet/urugendo/internal/server/handlers"
	"github.com/iudanet/urugendo/internal/server/middleware"
	"github.com/iudanet/urugendo/internal/server/storage/sqlite"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	addr := flag.String("addr", ":8080", "HTTP listen address")
	dbPath := flag.String("db", "urugendo.db", "Path to SQLite database")
	baseURL := flag.String("base-url", "http://localhost:8080", "Public base URL for links in emails")
	uploadDir := flag.String("upload-dir", "uploads", "Directory for uploaded images")
	geocodeEndpoint := flag.String("geocode-endpoint", "https://maps.googleapis.com/maps/api/geocode/json", "Geocoding provider endpoint")
	smtpAddr := flag.String("smtp-addr", "", "SMTP server host:port; empty logs emails instead of sending")
	smtpFrom := flag.String("smtp-from", "no-reply@urugendo.local", "From address for transactional emails")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	if err := run(logger, config{
		addr:            *addr,
		dbPath:          *dbPath,
		baseURL:         *baseURL,
		uploadDir:       *uploadDir,
		geocodeEndpoint: *geocodeEndpoint,
		smtpAddr:        *smtpAddr,
		smtpFrom:        *smtpFrom,
	}); err != nil {
		logger.Error("server exited with error", slog.Any("error", err))
		os.Exit(1)
	}
}

type config struct {
	addr            string
	dbPath          string
	baseURL         string
	uploadDir       string
	geocodeEndpoint string
	smtpAddr        string
	smtpFrom        string
}

func run(logger *slog.Logger, cfg config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Секреты берем из окружения, не из флагов
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return errors.New("JWT_SECRET environment variable is required")
	}

	jwtConfig := handlers.JWTConfig{
		Secret:          []byte(jwtSecret),
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 30 * 24 * time.Hour,
		VerificationTTL: 24 * time.Hour,
	}

	store, err := sqlite.New(ctx, cfg.dbPath)
	if err != nil {
		return fmt.Errorf("failed to init storage: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close storage", slog.Any("error", err))
		}
	}()

	var emailSender email.Sender = email.NewLogSender(logger)
	if cfg.smtpAddr != "" {
		emailSender = email.NewSMTPSender(email.SMTPConfig{
			Addr:     cfg.smtpAddr,
			From:     cfg.smtpFrom,
			Username: os.Getenv("SMTP_USERNAME"),
			Password: os.Getenv("SMTP_PASSWORD"),
		})
	}

	geocoder := geocode.New(geocode.Config{
		Endpoint: cfg.geocodeEndpoint,
		Key:      os.Getenv("GEOCODE_API_KEY"),
	})

	authHandler := handlers.NewAuthHandler(logger, store, store, emailSender, jwtConfig, cfg.baseURL)
	usersHandler := handlers.NewUsersHandler(logger, store)
	experiencesHandler := handlers.NewExperiencesHandler(logger, store, store)
	bookingsHandler := handlers.NewBookingsHandler(logger, store, store, store)
	profilesHandler := handlers.NewProfilesHandler(logger, store, store, store)
	reviewsHandler := handlers.NewReviewsHandler(logger, store, store, store)
	locationsHandler := handlers.NewLocationsHandler(logger, store, geocoder)
	picturesHandler := handlers.NewPicturesHandler(logger, store, cfg.uploadDir, "/media")
	healthHandler := handlers.NewHealthHandler(logger, Version)

	// protect оборачивает handler проверкой JWT
	auth := middleware.AuthMiddleware(logger, jwtConfig)
	protect := func(h http.HandlerFunc) http.Handler {
		return auth(h)
	}

	mux := http.NewServeMux()

	// Auth
	mux.HandleFunc("POST /users/auth/create/", authHandler.Register)
	mux.HandleFunc("POST /users/auth/login/", authHandler.Login)
	mux.HandleFunc("POST /users/auth/token/refresh/", authHandler.Refresh)
	mux.HandleFunc("GET /users/auth/verify-email/{uid}/{token}/", authHandler.VerifyEmail)
	mux.HandleFunc("POST /users/auth/resend-verification-email/", authHandler.ResendVerification)
	mux.Handle("POST /users/auth/logout/", protect(authHandler.Logout))

	// Users
	mux.Handle("GET /users/me/", protect(authHandler.Me))
	mux.Handle("GET /users/all/", protect(usersHandler.List))
	mux.Handle("GET /users/{id}/", protect(usersHandler.Get))
	mux.Handle("PUT /users/{id}/", protect(usersHandler.Update))
	mux.Handle("PATCH /users/{id}/", protect(usersHandler.Patch))
	mux.Handle("DELETE /users/{id}/", protect(usersHandler.Delete))

	// Experiences и слоты; каталог открыт без авторизации
	mux.HandleFunc("GET /experiences/", experiencesHandler.List)
	mux.Handle("POST /experiences/", protect(experiencesHandler.Create))
	mux.HandleFunc("GET /experiences/{id}/", experiencesHandler.Get)
	mux.Handle("PUT /experiences/{id}/", protect(experiencesHandler.Update))
	mux.Handle("PATCH /experiences/{id}/", protect(experiencesHandler.Patch))
	mux.Handle("DELETE /experiences/{id}/", protect(experiencesHandler.Delete))
	mux.HandleFunc("GET /experiences/{id}/slots/", experiencesHandler.ListSlots)
	mux.Handle("POST /experiences/{id}/slots/", protect(experiencesHandler.CreateSlot))
	mux.HandleFunc("GET /experiences/{id}/slots/{slotID}/", experiencesHandler.GetSlot)
	mux.Handle("PUT /experiences/{id}/slots/{slotID}/", protect(experiencesHandler.UpdateSlot))
	mux.Handle("DELETE /experiences/{id}/slots/{slotID}/", protect(experiencesHandler.DeleteSlot))

	// Bookings
	mux.Handle("POST /bookings/", protect(bookingsHandler.Create))
	mux.Handle("GET /bookings/", protect(bookingsHandler.List))
	mux.Handle("GET /bookings/upcoming/", protect(bookingsHandler.Upcoming))
	mux.Handle("GET /bookings/past/", protect(bookingsHandler.Past))
	mux.Handle("GET /bookings/slot/{slotID}/", protect(bookingsHandler.BySlot))
	mux.Handle("GET /bookings/{id}/", protect(bookingsHandler.Get))
	mux.Handle("PATCH /bookings/{id}/", protect(bookingsHandler.Patch))
	mux.Handle("DELETE /bookings/{id}/", protect(bookingsHandler.Delete))

	// Profiles
	mux.Handle("POST /profiles/", protect(profilesHandler.Create))
	mux.Handle("GET /profiles/", protect(profilesHandler.List))
	mux.Handle("GET /profiles/{userID}/", protect(profilesHandler.Get))
	mux.Handle("PATCH /profiles/{userID}/", protect(profilesHandler.Patch))
	mux.Handle("DELETE /profiles/{userID}/", protect(profilesHandler.Delete))

	// Reviews; чтение открыто
	mux.Handle("POST /reviews/", protect(reviewsHandler.Create))
	mux.HandleFunc("GET /reviews/", reviewsHandler.List)
	mux.HandleFunc("GET /reviews/experience/{id}/", reviewsHandler.ByExperience)
	mux.Handle("PUT /reviews/{id}/", protect(reviewsHandler.Update))
	mux.Handle("DELETE /reviews/{id}/", protect(reviewsHandler.Delete))

	// Locations и справочники
	mux.Handle("POST /locations/geocode/", protect(locationsHandler.Geocode))
	mux.Handle("POST /locations/save/", protect(locationsHandler.Save))
	mux.HandleFunc("GET /choices/{kind}/", locationsHandler.Choices)

	// Загрузка и раздача изображений
	mux.Handle("POST /pictures/upload/profile/", protect(picturesHandler.UploadProfile))
	mux.Handle("POST /pictures/upload/experience/", protect(picturesHandler.UploadExperience))
	mux.Handle("GET /media/", http.StripPrefix("/media/", http.FileServer(http.Dir(cfg.uploadDir))))

	mux.HandleFunc("GET /health/", healthHandler.Health)

	// Цепочка middleware: recovery снаружи, чтобы ловить паники
	// в том числе из logging и rate limiter
	handler := middleware.RecoveryMiddleware(logger)(
		middleware.LoggingWithSkip(logger, []string{"/health/"})(
			middleware.RateLimitMiddleware(300, time.Minute, logger)(mux)))

	server := &http.Server{
		Addr:              cfg.addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting",
			slog.String("addr", cfg.addr),
			slog.String("version", Version))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}

	return nil
}

func printVersion() {
	fmt.Printf("Urugendo Server\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
