package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/shagunapp/shagun-api/internal/config"
	"github.com/shagunapp/shagun-api/internal/handler"
	"github.com/shagunapp/shagun-api/internal/middleware"
	"github.com/shagunapp/shagun-api/internal/repository"
	"github.com/shagunapp/shagun-api/internal/server"
	"github.com/shagunapp/shagun-api/internal/usecase"
	"github.com/shagunapp/shagun-api/shared/auth"
	"github.com/shagunapp/shagun-api/shared/mailer"
	"github.com/shagunapp/shagun-api/shared/provider"
	"github.com/shagunapp/shagun-api/shared/validator"
)

func main() {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := mongo.Connect(options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := client.Disconnect(disconnectCtx); err != nil {
			logger.Error().Err(err).Msg("failed to disconnect from mongodb")
		}
	}()

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		logger.Fatal().Err(err).Msg("failed to ping mongodb")
	}

	db := client.Database(cfg.Mongo.Database)

	userRepo := repository.NewUserMongoRepository(ctx, &logger, db)
	weddingRepo := repository.NewWeddingMongoRepository(db)
	guestRepo := repository.NewGuestMongoRepository(db)
	expenseRepo := repository.NewExpenseMongoRepository(db)
	shagunRepo := repository.NewShagunMongoRepository(db)

	// A misconfigured SMTP environment keeps the API up; signup reports
	// the missing configuration instead of sending mail.
	var sender mailer.Sender
	if m, err := mailer.NewMailer(); err != nil {
		logger.Warn().Err(err).Msg("smtp not configured, otp mail disabled")
	} else {
		sender = m
	}

	outbox := mailer.NewOutbox(sender, &logger)
	outbox.Start(ctx)
	defer outbox.Close(10 * time.Second)

	v, err := validator.New()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize validator")
	}

	jwtAuth := auth.NewJWTAuthenticator(cfg.Token.Issuer, cfg.Token.Issuer)

	if cfg.Social.GoogleClientID == "" {
		logger.Warn().Msg("google token verification disabled, trusting client assertions")
	}
	if !cfg.Social.FacebookVerify {
		logger.Warn().Msg("facebook token verification disabled, trusting client assertions")
	}
	if cfg.Social.AppleClientID == "" {
		logger.Warn().Msg("apple token verification disabled, trusting client assertions")
	}

	providers := []provider.SocialProvider{
		provider.NewGoogleProvider(cfg.Social.GoogleClientID),
		provider.NewFacebookProvider(cfg.Social.FacebookVerify),
		provider.NewAppleProvider(cfg.Social.AppleClientID),
	}

	authUsecase := usecase.NewAuthUsecase(
		userRepo, weddingRepo, guestRepo, expenseRepo, shagunRepo,
		jwtAuth, outbox, providers, cfg.Token, &logger,
	)
	passwordResetUsecase := usecase.NewPasswordResetUsecase(userRepo, outbox, &logger)
	weddingUsecase := usecase.NewWeddingUsecase(weddingRepo, guestRepo, expenseRepo)
	guestUsecase := usecase.NewGuestUsecase(guestRepo, weddingRepo)
	expenseUsecase := usecase.NewExpenseUsecase(expenseRepo, weddingRepo)
	shagunUsecase := usecase.NewShagunUsecase(shagunRepo, weddingRepo)

	authn := middleware.NewAuthenticator(jwtAuth, cfg.Token.Secret, userRepo, &logger)

	srv := server.New(cfg.Server, &logger, authn, server.Handlers{
		Auth:    handler.NewAuthHandler(authUsecase, passwordResetUsecase, v, &logger),
		Wedding: handler.NewWeddingHandler(weddingUsecase, v, &logger),
		Guest:   handler.NewGuestHandler(guestUsecase, v, &logger),
		Expense: handler.NewExpenseHandler(expenseUsecase, v, &logger),
		Shagun:  handler.NewShagunHandler(shagunUsecase, v, &logger),
	})

	if err := srv.Run(ctx); err != nil {
		logger.Fatal().Err(err).Msg("http server failed")
	}

	logger.Info().Msg("server stopped")
}
