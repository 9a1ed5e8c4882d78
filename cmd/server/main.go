package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"secretsanta/config"
	_ "secretsanta/docs"
	"secretsanta/internal/adapters/auth"
	"secretsanta/internal/adapters/email"
	"secretsanta/internal/adapters/random"
	deliveryhttp "secretsanta/internal/delivery/http"
	"secretsanta/internal/delivery/http/controllers"
	"secretsanta/internal/repository/postgres"
	"secretsanta/internal/santa"
	"secretsanta/internal/services"
)

// @title Secret Santa API
// @version 1.0
// @description Organizer API for Secret Santa groups: participants, the draw and assignment notifications.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "err", err)
		os.Exit(1)
	}
	logger := config.NewLogger(cfg, os.Stdout)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		return err
	}
	defer db.Close()

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		return err
	}
	if err := postgres.CreateSchema(ctx, db); err != nil {
		return err
	}
	logger.Info("database schema ready")

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Mail.Provider,
		FromAddress: cfg.Mail.FromAddress,
		FromName:    cfg.Mail.FromName,
		SES: email.SESConfig{
			Region:             cfg.Mail.AWSRegion,
			AccessKeyID:        cfg.Mail.AWSAccessKeyID,
			SecretAccessKey:    cfg.Mail.AWSSecretAccessKey,
			InsecureSkipVerify: cfg.Mail.SESInsecureSkipVerify,
		},
	}, logger)
	if err != nil {
		return err
	}
	renderer, err := email.NewTemplateRenderer()
	if err != nil {
		return err
	}

	src := random.NewCrypto()
	if cfg.RandomSeed != 0 {
		logger.Warn("using seeded random source; draws are reproducible", "seed", cfg.RandomSeed)
		src = random.NewSeeded(cfg.RandomSeed)
	}

	groupRepo := postgres.NewGroupRepository(db)
	participantRepo := postgres.NewParticipantRepository(db)
	assignmentRepo := postgres.NewAssignmentRepository(db)

	emailService := services.NewEmailService(mailer, renderer, logger)
	groupService := services.NewGroupService(groupRepo, participantRepo, assignmentRepo, cfg.RequestTimeout)
	participantService := services.NewParticipantService(groupRepo, participantRepo, cfg.RequestTimeout)
	assignmentService := services.NewAssignmentService(
		groupRepo, participantRepo, assignmentRepo, emailService,
		santa.New(src),
		services.AssignmentServiceConfig{
			AppBaseURL:    cfg.AppBaseURL,
			DefaultLocale: cfg.DefaultLocale,
			// Draws send one email per participant.
			Timeout: 6 * cfg.RequestTimeout,
		},
		logger,
	)

	mux := deliveryhttp.NewRouter(deliveryhttp.Controllers{
		Group:       controllers.NewGroupController(logger, groupService),
		Participant: controllers.NewParticipantController(logger, participantService),
		Assignment:  controllers.NewAssignmentController(logger, assignmentService, cfg.DefaultLocale),
		Health:      controllers.NewHealthController(logger, db),
	}, auth.NewJWTVerifier(cfg.JWTSecret), logger)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           deliveryhttp.NewHandler(mux, cfg.AllowedOrigins, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "port", cfg.Port, "env", cfg.Environment)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelShutdown()
	return server.Shutdown(shutdownCtx)
}
