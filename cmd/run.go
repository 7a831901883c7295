package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"tourney/api"
	"tourney/config"
	"tourney/database"
	"tourney/events"
	"tourney/infrastructure"
	"tourney/repository"
	"tourney/service"

	log "github.com/sirupsen/logrus"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	// Load configuration
	cfg := config.Get()
	if err := cfg.ConfigureLogging(); err != nil {
		return err
	}

	log.Info("Starting tourney ledger...")

	// Initialize database connection
	log.Info("Connecting to database...")
	db, err := database.NewConnection(ctx, database.ConstructDatabaseURL(cfg.DatabaseURL, cfg.DatabaseName))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()
	log.Info("Database connection established successfully")

	// Initialize event bus
	eventBus := events.NewBus()
	events.RegisterAuditLogger(eventBus)

	// Forward committed events to NATS when configured
	if cfg.NATSURL != "" {
		natsClient, err := connectNATS(ctx, cfg.NATSURL)
		if err != nil {
			return err
		}
		defer natsClient.Close()

		infrastructure.NewNATSEventForwarder(natsClient, infrastructure.NewEventSubjectMapper()).Register(eventBus)
		log.Info("Event forwarding to NATS enabled")
	}

	// Initialize unit of work factory
	uowFactory := repository.NewUnitOfWorkFactory(db, eventBus)

	// Initialize services
	playerService := service.NewPlayerService(uowFactory)
	wagerService := service.NewWagerService(uowFactory)
	tournamentService := service.NewTournamentService(uowFactory, cfg.ResultsLimit)
	settlementService := service.NewSettlementService(uowFactory, service.NewRandomWinnerPicker(cfg.RandomSeed))

	handler := api.NewHandler(playerService, wagerService, tournamentService, settlementService)
	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      handler.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.WithFields(log.Fields{
			"addr":        cfg.HTTPAddr,
			"environment": cfg.Environment,
		}).Info("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	// Wait for context cancellation or a server failure
	select {
	case <-ctx.Done():
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("HTTP server failed: %w", err)
		}
	}

	log.Info("Shutting down...")

	// Give in-flight requests time to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("HTTP server did not shut down cleanly")
	}

	log.Info("Shutdown completed")
	return nil
}

func connectNATS(ctx context.Context, url string) (*infrastructure.NATSClient, error) {
	client := infrastructure.NewNATSClient(url)
	if err := client.Connect(ctx); err != nil {
		return nil, err
	}

	if err := client.EnsureStream(infrastructure.StreamName, infrastructure.NewEventSubjectMapper().StreamSubjects()); err != nil {
		client.Close()
		return nil, err
	}
	return client, nil
}
