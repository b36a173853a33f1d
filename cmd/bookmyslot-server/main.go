package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/subodh53/BookMySlot/internal/config"
	"github.com/subodh53/BookMySlot/internal/notify"
	"github.com/subodh53/BookMySlot/internal/service/auth"
	"github.com/subodh53/BookMySlot/internal/service/availability"
	"github.com/subodh53/BookMySlot/internal/service/bookings"
	"github.com/subodh53/BookMySlot/internal/service/eventtypes"
	"github.com/subodh53/BookMySlot/internal/store/postgres"
	httpTransport "github.com/subodh53/BookMySlot/internal/transport/http"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})).With(
		slog.String("service", "bookmyslot-server"),
	)
	slog.SetDefault(log)

	cfg, err := config.Load()
	if err != nil {
		log.Error("config load failed", slog.Any("err", err))
		os.Exit(1)
	}

	log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLogLevel(cfg.LogLevel)})).With(
		slog.String("service", "bookmyslot-server"),
	)
	slog.SetDefault(log)

	addr := fmt.Sprintf("%s:%d", cfg.HTTPHost, cfg.HTTPPort)
	log.Info("starting", slog.String("http_addr", addr), slog.String("log_level", cfg.LogLevel))

	log.Info("connecting to database", databaseLogArgs(cfg.DatabaseURL)...)
	db, err := postgres.Open(cfg.DatabaseURL, postgres.PoolConfig{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
		ConnMaxIdleTime: cfg.DBConnMaxIdleTime,
	})
	if err != nil {
		args := append([]any{slog.Any("err", err)}, databaseLogArgs(cfg.DatabaseURL)...)
		log.Error("database connection failed", args...)
		os.Exit(1)
	}
	defer func() {
		if err := postgres.Close(db); err != nil {
			log.Warn("database close failed", slog.Any("err", err))
		}
	}()

	users := postgres.NewUserRepo(db)
	eventTypes := postgres.NewEventTypeRepo(db)
	rules := postgres.NewAvailabilityRepo(db)
	bookingRepo := postgres.NewBookingRepo(db)

	var notifier bookings.Notifier
	if cfg.EmailEnabled() {
		notifier = notify.New(notify.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPFrom), log)
		log.Info("booking emails enabled", slog.String("smtp_host", cfg.SMTPHost))
	} else {
		log.Info("booking emails disabled (no SMTP host configured)")
	}

	authSvc := auth.NewService(users, []byte(cfg.JWTSecret), cfg.TokenTTL)
	eventTypeSvc := eventtypes.NewService(eventTypes)
	availabilitySvc := availability.NewService(users, eventTypes, rules, bookingRepo)
	bookingSvc := bookings.NewService(users, eventTypes, bookingRepo, notifier)

	server := httpTransport.NewServer(httpTransport.Deps{
		Auth:         authSvc,
		EventTypes:   eventTypeSvc,
		Availability: availabilitySvc,
		Bookings:     bookingSvc,
		JWTSecret:    []byte(cfg.JWTSecret),
		Logger:       log,
	})

	httpServer := &http.Server{
		Addr:    addr,
		Handler: server.Router(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()

	log.Info("http server started", slog.String("http_addr", addr))

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Warn("http graceful shutdown failed; forcing close", slog.Any("err", err))
			_ = httpServer.Close()
		} else {
			log.Info("http server stopped")
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server stopped with error", slog.Any("err", err))
			os.Exit(1)
		}
	}
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func databaseLogArgs(databaseURL string) []any {
	u, err := url.Parse(databaseURL)
	if err != nil {
		return []any{slog.String("db_url", "invalid")}
	}
	name := strings.TrimPrefix(u.Path, "/")
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "default"
	}
	if host == "" {
		host = "unknown"
	}
	if name == "" {
		name = "unknown"
	}
	return []any{
		slog.String("db_host", host),
		slog.String("db_port", port),
		slog.String("db_name", name),
	}
}
