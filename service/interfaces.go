package service

import (
	"context"

	"tourney/events"
	"tourney/models"

	"github.com/shopspring/decimal"
)

// PlayerRepository defines the interface for player data access
type PlayerRepository interface {
	// GetByID retrieves a player by id, returning nil when absent
	GetByID(ctx context.Context, id string) (*models.Player, error)

	// GetByIDs retrieves the players that exist among ids, in no particular order
	GetByIDs(ctx context.Context, ids []string) ([]*models.Player, error)

	// GetAll returns all players
	GetAll(ctx context.Context) ([]*models.Player, error)

	// Create inserts a new player, returning ErrDuplicateKey if the id is taken
	Create(ctx context.Context, id string, points decimal.Decimal) (*models.Player, error)

	// UpdatePoints persists player.Points if player.Version is still current.
	// Returns ErrVersionConflict otherwise and bumps player.Version on success.
	UpdatePoints(ctx context.Context, player *models.Player) error

	// TouchVersion bumps player.Version without changing points, with the same guard as UpdatePoints
	TouchVersion(ctx context.Context, player *models.Player) error
}

// TournamentRepository defines the interface for tournament data access
type TournamentRepository interface {
	// GetByID retrieves a tournament by id, returning nil when absent
	GetByID(ctx context.Context, id string) (*models.Tournament, error)

	// GetAll returns every tournament, newest first
	GetAll(ctx context.Context) ([]*models.Tournament, error)

	// GetLatestFinished returns up to limit finished tournaments, most recently closed first
	GetLatestFinished(ctx context.Context, limit int) ([]*models.Tournament, error)

	// Create inserts an opened tournament, returning ErrDuplicateKey if the id is taken
	Create(ctx context.Context, id string, deposit decimal.Decimal) (*models.Tournament, error)

	// TransitionStatus moves a tournament from one status to another only if it is
	// currently in the from status. Returns nil when no tournament matched.
	TransitionStatus(ctx context.Context, id string, from, to models.TournamentStatus) (*models.Tournament, error)
}

// WagerRepository defines the interface for wager data access
type WagerRepository interface {
	// Create inserts a wager with its backers, returning ErrDuplicateKey if the
	// player already has a wager in the tournament
	Create(ctx context.Context, wager *models.Wager) error

	// GetByTournament returns the wagers of a tournament in join order
	GetByTournament(ctx context.Context, tournamentID string) ([]*models.Wager, error)

	// GetByTournaments returns wagers grouped by tournament id
	GetByTournaments(ctx context.Context, tournamentIDs []string) (map[string][]*models.Wager, error)

	// GetOpenByParticipant returns wagers in opened tournaments where the player bets or backs
	GetOpenByParticipant(ctx context.Context, playerID string) ([]*models.Wager, error)

	// MarkWinner flags a wager as the winning entry
	MarkWinner(ctx context.Context, wagerID int64) error
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event)
}

// UnitOfWork defines the interface for transactional repository operations
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction and flushes pending events
	Commit() error

	// Rollback rolls back the transaction and discards pending events
	Rollback() error

	// Repository getters
	PlayerRepository() PlayerRepository
	TournamentRepository() TournamentRepository
	WagerRepository() WagerRepository
	EventBus() EventPublisher
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	// Create creates a new UnitOfWork instance
	Create() UnitOfWork
}

// PlayerService defines the interface for player account operations
type PlayerService interface {
	// Create registers a new player with a starting amount of points
	Create(ctx context.Context, playerID string, points decimal.Decimal) (*models.Player, error)

	// Fund adds points to a player, creating the player if needed
	Fund(ctx context.Context, playerID string, points decimal.Decimal) (*models.Player, error)

	// Take removes points from a player, limited by their available points
	Take(ctx context.Context, playerID string, points decimal.Decimal) (*models.Player, error)

	// Balance returns the player's available points
	Balance(ctx context.Context, playerID string) (*models.PlayerBalance, error)

	// List returns all players
	List(ctx context.Context) ([]*models.Player, error)
}

// WagerService defines the interface for joining tournaments
type WagerService interface {
	// Join enters a player into a tournament, optionally financed by backers
	Join(ctx context.Context, tournamentID, playerID string, backerIDs []string) (*models.Wager, error)
}

// TournamentService defines the interface for tournament lifecycle and results
type TournamentService interface {
	// Announce opens a new tournament with a fixed deposit
	Announce(ctx context.Context, tournamentID string, deposit decimal.Decimal) (*models.Tournament, error)

	// Cancel moves an opened tournament to canceled
	Cancel(ctx context.Context, tournamentID string) (*models.Tournament, error)

	// GetAll returns every tournament with its participants
	GetAll(ctx context.Context) ([]*models.TournamentResult, error)

	// GetResults returns one tournament with its participants
	GetResults(ctx context.Context, tournamentID string) (*models.TournamentResult, error)

	// GetLatestFinished returns the most recently finished tournaments with participants
	GetLatestFinished(ctx context.Context) ([]*models.TournamentResult, error)
}

// SettlementService defines the interface for closing tournaments
type SettlementService interface {
	// Close picks a winner, redistributes points, and finishes the tournament
	Close(ctx context.Context, tournamentID string) (*models.SettlementResult, error)
}
