package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"

	"mentconnect/auth"
	"mentconnect/contract"
	"mentconnect/events"
	apihttp "mentconnect/infrastructure/http"
	"mentconnect/internal"
	"mentconnect/moderation"
	"mentconnect/observability"
	"mentconnect/repositories"
	"mentconnect/runtime"
	"mentconnect/runtime/workers"
	"mentconnect/search"
	"mentconnect/services"
	"mentconnect/sink"
	"mentconnect/storage"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run initializes all components and manages the server lifecycle. Errors
// propagate back here so every defer (database close, AMQP teardown) runs
// before the process exits.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Database (BadgerDB)
	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).
		WithLoggingLevel(badger.INFO))
	if err != nil {
		return fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	// 3. Moderation & Search
	maskingChar, err := internal.CharacterRune(config.CharReplacement)
	if err != nil {
		return err
	}
	words, err := moderation.LoadWords()
	if err != nil {
		return fmt.Errorf("loading censored words failed: %w", err)
	}
	log.Info("Loaded censored words", "languages", words.Languages, "count", len(words.Words))
	moderator, err := moderation.NewModerator(words.Words, maskingChar)
	if err != nil {
		return fmt.Errorf("building moderator failed: %w", err)
	}

	index, err := search.Open(config.BlugeFilepath)
	if err != nil {
		return fmt.Errorf("opening mentor index failed: %w", err)
	}
	defer func() {
		_ = index.Close()
	}()

	// 4. Repositories
	conversationRepository := repositories.NewConversationRepository(db)
	messageRepository := repositories.NewMessageRepository(db, log, config.LimitMessages)
	profileRepository := repositories.NewProfileRepository(db)
	goalRepository := repositories.NewGoalRepository(db)
	availabilityRepository := repositories.NewAvailabilityRepository(db)
	reviewRepository := repositories.NewReviewRepository(db)
	auditRepository := repositories.NewAuditRepository(db)

	// 5. Supervision & Event Dispatch
	sup := workers.NewSupervisor(log)
	registry := runtime.NewRegistry()
	dispatcher := runtime.NewDispatcher(log, sup, registry, config.BufferSize, config.SinkTimeout)

	permanent := []contract.EventSink{sink.NewAuditSink(auditRepository, log)}
	if config.AmqpURL != "" {
		publisher, err := events.Connect(config.AmqpURL, config.AmqpExchange, log)
		if err != nil {
			return fmt.Errorf("AMQP connection failed: %w", err)
		}
		defer publisher.Close()
		permanent = append(permanent, publisher)
	}
	dispatcher.Add(permanent...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = dispatcher.Start(ctx); err != nil {
		return fmt.Errorf("dispatcher failed to start: %w", err)
	}

	// 6. Services
	monitor := observability.NewMonitor()
	conversationService := services.NewConversationService(log,
		conversationRepository, messageRepository,
		registry, dispatcher, &moderator, monitor, config.MaxContentLength)
	profileService := services.NewProfileService(log, profileRepository, index)
	goalService := services.NewGoalService(goalRepository)
	availabilityService := services.NewAvailabilityService(availabilityRepository)
	reviewService := services.NewReviewService(reviewRepository)
	analyticsService := services.NewAnalyticsService(messageRepository, goalRepository, reviewRepository)

	// The search index is ephemeral when BLUGE_FILEPATH is unset, so mentor
	// documents are rebuilt from storage on every boot.
	if err = profileService.ReindexMentors(); err != nil {
		return fmt.Errorf("mentor reindex failed: %w", err)
	}

	attachments, err := storage.NewAttachmentStore(config.AttachmentDir)
	if err != nil {
		return fmt.Errorf("attachment store setup failed: %w", err)
	}

	tokens := auth.NewTokenManager(config.AuthSecret, config.AuthTokenDuration)
	limiter := internal.NewRateLimiter(config.RateLimitWindow, config.RateLimitMax)

	// 7. HTTP Server
	server := apihttp.NewServer(log, conversationService, profileService,
		goalService, availabilityService, reviewService, analyticsService,
		attachments, tokens, limiter, monitor, config.ConnectionBufferSize)

	address := fmt.Sprintf("%s:%d", config.Host, config.Port)
	httpServer := &http.Server{
		Addr:    address,
		Handler: server.Router(),
	}

	errChan := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "address", address, "at", time.Now().UTC())
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// 8. Wait for Stop or Error
	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
	case err := <-errChan:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = httpServer.Shutdown(shutdownCtx)
	dispatcher.Stop()
	log.Info("Program stopped cleanly")

	return nil
}
