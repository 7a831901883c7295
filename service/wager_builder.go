package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"tourney/events"
	"tourney/models"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

const (
	// MaxOpenWagersPerPlayer is how many opened tournaments a player may be entered in at once
	MaxOpenWagersPerPlayer = 2

	// ShareScale is the number of decimal places kept for a backer's share. When the
	// shortfall does not divide evenly, the shares sum to within one unit in the last
	// place per backer of the shortfall.
	ShareScale = 16
)

// wagerService implements the WagerService interface
type wagerService struct {
	uowFactory UnitOfWorkFactory
}

// NewWagerService creates a new wager service
func NewWagerService(uowFactory UnitOfWorkFactory) WagerService {
	return &wagerService{
		uowFactory: uowFactory,
	}
}

// Join enters a player into a tournament. When the player cannot cover the deposit,
// the shortfall is split evenly between the backers and the player stakes everything
// they have available.
func (s *wagerService) Join(ctx context.Context, tournamentID, playerID string, backerIDs []string) (*models.Wager, error) {
	if !hasID(tournamentID) || !hasID(playerID) {
		return nil, NewValidationError(MsgInvalidInput)
	}
	if err := validateBackerIDs(playerID, backerIDs); err != nil {
		return nil, err
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	tournament, err := uow.TournamentRepository().GetByID(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get tournament: %w", err)
	}
	if tournament == nil {
		return nil, NewNotFoundError(MsgTournamentNotFound)
	}
	if !tournament.IsOpen() {
		return nil, NewConflictError(MsgTournamentNotOpened).WithCode(http.StatusBadRequest)
	}

	player, err := uow.PlayerRepository().GetByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	if player == nil {
		return nil, NewNotFoundError(MsgPlayerNotFound)
	}

	pointsLeft, openWagers, err := availablePointsFor(ctx, uow, player)
	if err != nil {
		return nil, err
	}
	if err := checkRegistration(playerID, tournamentID, openWagers); err != nil {
		return nil, err
	}

	wager := &models.Wager{
		TournamentID: tournament.ID,
		PlayerID:     player.ID,
		OwnedSum:     []models.BackerStake{},
	}

	switch {
	case pointsLeft.GreaterThanOrEqual(tournament.Deposit):
		wager.BetSum = tournament.Deposit

	case len(backerIDs) > 0:
		stakes, err := s.apportionShortfall(ctx, uow, tournament.Deposit.Sub(pointsLeft), backerIDs)
		if err != nil {
			return nil, err
		}
		wager.BetSum = pointsLeft
		wager.OwnedSum = stakes

	default:
		return nil, NewInsufficientFundsError(MsgNotEnoughToEnter)
	}

	// Serializes concurrent joins by the same player so the open wager cap holds
	if err := uow.PlayerRepository().TouchVersion(ctx, player); err != nil {
		if errors.Is(err, ErrVersionConflict) {
			return nil, NewConflictError(MsgConcurrentUpdate)
		}
		return nil, fmt.Errorf("failed to lock player: %w", err)
	}

	if err := uow.WagerRepository().Create(ctx, wager); err != nil {
		if errors.Is(err, ErrDuplicateKey) {
			return nil, NewConflictError(MsgAlreadyRegistered).WithCode(http.StatusBadRequest)
		}
		return nil, fmt.Errorf("failed to create wager: %w", err)
	}

	uow.EventBus().Publish(events.WagerPlacedEvent{
		TournamentID: wager.TournamentID,
		PlayerID:     wager.PlayerID,
		BetSum:       wager.BetSum,
		BackerIDs:    backerIDs,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"tournamentId": wager.TournamentID,
		"playerId":     wager.PlayerID,
		"betSum":       wager.BetSum.String(),
		"backers":      len(wager.OwnedSum),
	}).Info("Player joined tournament")

	return wager, nil
}

// apportionShortfall splits the shortfall evenly between backers. Every backer must
// exist and have enough available points for their share.
func (s *wagerService) apportionShortfall(ctx context.Context, uow UnitOfWork, shortfall decimal.Decimal, backerIDs []string) ([]models.BackerStake, error) {
	backers, err := uow.PlayerRepository().GetByIDs(ctx, backerIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get backers: %w", err)
	}
	if len(backers) != len(backerIDs) {
		return nil, NewNotFoundError(MsgBackersNotFound)
	}

	byID := make(map[string]*models.Player, len(backers))
	for _, backer := range backers {
		byID[backer.ID] = backer
	}

	share := shortfall.DivRound(decimal.NewFromInt(int64(len(backerIDs))), ShareScale)

	stakes := make([]models.BackerStake, 0, len(backerIDs))
	for _, backerID := range backerIDs {
		backer, ok := byID[backerID]
		if !ok {
			return nil, NewNotFoundError(MsgBackersNotFound)
		}

		available, _, err := availablePointsFor(ctx, uow, backer)
		if err != nil {
			return nil, err
		}
		if available.LessThan(share) {
			log.WithFields(log.Fields{
				"backerId":  backer.ID,
				"available": available.String(),
				"share":     share.String(),
			}).Debug("Backer cannot cover share")
			return nil, NewInsufficientFundsError(MsgBackerLowBalance)
		}

		stakes = append(stakes, models.BackerStake{PlayerID: backer.ID, Sum: share})
	}

	return stakes, nil
}

// checkRegistration enforces one wager per tournament and the open wager cap
func checkRegistration(playerID, tournamentID string, openWagers []*models.Wager) error {
	ownWagers := 0
	for _, wager := range openWagers {
		if wager.PlayerID != playerID {
			continue
		}
		if wager.TournamentID == tournamentID {
			return NewConflictError(MsgAlreadyRegistered).WithCode(http.StatusBadRequest)
		}
		ownWagers++
	}

	if ownWagers >= MaxOpenWagersPerPlayer {
		return NewConflictError(MsgTwoTournamentLimit).WithCode(http.StatusBadRequest)
	}
	return nil
}

func validateBackerIDs(playerID string, backerIDs []string) error {
	seen := make(map[string]struct{}, len(backerIDs))
	for _, backerID := range backerIDs {
		if !hasID(backerID) {
			return NewValidationError(MsgInvalidInput)
		}
		if backerID == playerID {
			return NewValidationError(MsgInvalidBackers)
		}
		if _, dup := seen[backerID]; dup {
			return NewValidationError(MsgInvalidBackers)
		}
		seen[backerID] = struct{}{}
	}
	return nil
}
