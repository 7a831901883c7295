package service

import (
	"context"
	"errors"
	"fmt"

	"tourney/events"
	"tourney/models"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// playerService implements the PlayerService interface
type playerService struct {
	uowFactory UnitOfWorkFactory
}

// NewPlayerService creates a new player service
func NewPlayerService(uowFactory UnitOfWorkFactory) PlayerService {
	return &playerService{
		uowFactory: uowFactory,
	}
}

// Create registers a new player with a starting amount of points
func (s *playerService) Create(ctx context.Context, playerID string, points decimal.Decimal) (*models.Player, error) {
	if !hasID(playerID) || !isWholeAmount(points, false) {
		return nil, NewValidationError(MsgInvalidInput)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	player, err := createPlayer(ctx, uow, playerID, points)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"playerId": player.ID,
		"points":   player.Points.String(),
	}).Info("Player created")

	return player, nil
}

// Fund adds points to a player, creating the player if needed
func (s *playerService) Fund(ctx context.Context, playerID string, points decimal.Decimal) (*models.Player, error) {
	if !hasID(playerID) || !isWholeAmount(points, true) {
		return nil, NewValidationError(MsgInvalidInput)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	player, err := uow.PlayerRepository().GetByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	if player == nil {
		player, err = createPlayer(ctx, uow, playerID, points)
		if err != nil {
			return nil, err
		}
	} else {
		if err := adjustPoints(ctx, uow, player, points, models.TransferReasonFund, ""); err != nil {
			return nil, err
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return player, nil
}

// Take removes points from a player, limited by their available points
func (s *playerService) Take(ctx context.Context, playerID string, points decimal.Decimal) (*models.Player, error) {
	if !hasID(playerID) || !isWholeAmount(points, true) {
		return nil, NewValidationError(MsgInvalidInput)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	player, err := uow.PlayerRepository().GetByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	if player == nil {
		return nil, NewNotFoundError(MsgNoSuchPlayer)
	}

	// Points booked into open wagers cannot be withdrawn
	available, _, err := availablePointsFor(ctx, uow, player)
	if err != nil {
		return nil, err
	}
	if available.LessThan(points) {
		return nil, NewInsufficientFundsError(fmt.Sprintf(MsgNotEnoughToTake, player.ID, available.String()))
	}

	if err := adjustPoints(ctx, uow, player, points.Neg(), models.TransferReasonTake, ""); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return player, nil
}

// Balance returns the player's available points
func (s *playerService) Balance(ctx context.Context, playerID string) (*models.PlayerBalance, error) {
	if !hasID(playerID) {
		return nil, NewValidationError(MsgInvalidInput)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	player, err := uow.PlayerRepository().GetByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	if player == nil {
		return nil, NewNotFoundError(MsgNoPlayerWithID)
	}

	available, _, err := availablePointsFor(ctx, uow, player)
	if err != nil {
		return nil, err
	}

	return &models.PlayerBalance{PlayerID: player.ID, Points: available}, nil
}

// List returns all players
func (s *playerService) List(ctx context.Context) ([]*models.Player, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	players, err := uow.PlayerRepository().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get players: %w", err)
	}

	return players, nil
}

// createPlayer inserts a player and queues the creation events
func createPlayer(ctx context.Context, uow UnitOfWork, playerID string, points decimal.Decimal) (*models.Player, error) {
	existing, err := uow.PlayerRepository().GetByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing player: %w", err)
	}
	if existing != nil {
		return nil, NewConflictError(MsgPlayerExists)
	}

	player, err := uow.PlayerRepository().Create(ctx, playerID, points)
	if err != nil {
		if errors.Is(err, ErrDuplicateKey) {
			return nil, NewConflictError(MsgPlayerExists)
		}
		return nil, fmt.Errorf("failed to create player: %w", err)
	}

	uow.EventBus().Publish(events.PlayerCreatedEvent{
		PlayerID:      player.ID,
		InitialPoints: player.Points,
	})
	uow.EventBus().Publish(events.BalanceChangeEvent{
		PlayerID:     player.ID,
		OldPoints:    decimal.Zero,
		NewPoints:    player.Points,
		ChangeAmount: player.Points,
		Reason:       models.TransferReasonInitial,
	})

	return player, nil
}

// adjustPoints applies delta to a loaded player under its version guard and
// queues a balance change event. This is the single entry point for point changes.
func adjustPoints(ctx context.Context, uow UnitOfWork, player *models.Player, delta decimal.Decimal, reason models.TransferReason, tournamentID string) error {
	oldPoints := player.Points
	player.Points = oldPoints.Add(delta)

	if err := uow.PlayerRepository().UpdatePoints(ctx, player); err != nil {
		player.Points = oldPoints
		if errors.Is(err, ErrVersionConflict) {
			return NewConflictError(MsgConcurrentUpdate)
		}
		return fmt.Errorf("failed to update player points: %w", err)
	}

	uow.EventBus().Publish(events.BalanceChangeEvent{
		PlayerID:     player.ID,
		TournamentID: tournamentID,
		OldPoints:    oldPoints,
		NewPoints:    player.Points,
		ChangeAmount: delta,
		Reason:       reason,
	})

	return nil
}
