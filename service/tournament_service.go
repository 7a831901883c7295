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

// DefaultResultsLimit is how many finished tournaments GetLatestFinished returns by default
const DefaultResultsLimit = 10

// tournamentService implements the TournamentService interface
type tournamentService struct {
	uowFactory   UnitOfWorkFactory
	resultsLimit int
}

// NewTournamentService creates a new tournament service
func NewTournamentService(uowFactory UnitOfWorkFactory, resultsLimit int) TournamentService {
	if resultsLimit <= 0 {
		resultsLimit = DefaultResultsLimit
	}
	return &tournamentService{
		uowFactory:   uowFactory,
		resultsLimit: resultsLimit,
	}
}

// Announce opens a new tournament with a fixed deposit
func (s *tournamentService) Announce(ctx context.Context, tournamentID string, deposit decimal.Decimal) (*models.Tournament, error) {
	if !hasID(tournamentID) || !isWholeAmount(deposit, true) {
		return nil, NewValidationError(MsgInvalidInput)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	tournament, err := uow.TournamentRepository().Create(ctx, tournamentID, deposit)
	if err != nil {
		if errors.Is(err, ErrDuplicateKey) {
			return nil, NewConflictError(MsgTournamentExists)
		}
		return nil, fmt.Errorf("failed to create tournament: %w", err)
	}

	uow.EventBus().Publish(events.TournamentAnnouncedEvent{
		TournamentID: tournament.ID,
		Deposit:      tournament.Deposit,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"tournamentId": tournament.ID,
		"deposit":      tournament.Deposit.String(),
	}).Info("Tournament announced")

	return tournament, nil
}

// Cancel moves an opened tournament to canceled. Wagers stay in place but no
// longer book any points.
func (s *tournamentService) Cancel(ctx context.Context, tournamentID string) (*models.Tournament, error) {
	if !hasID(tournamentID) {
		return nil, NewValidationError(MsgMissingTournamentID)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	canceled, err := uow.TournamentRepository().TransitionStatus(ctx, tournamentID, models.TournamentStatusOpened, models.TournamentStatusCanceled)
	if err != nil {
		return nil, fmt.Errorf("failed to cancel tournament: %w", err)
	}
	if canceled == nil {
		return nil, NewNotFoundError(MsgNoOpenedTournament).WithCode(http.StatusBadRequest)
	}

	uow.EventBus().Publish(events.TournamentCanceledEvent{TournamentID: canceled.ID})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithField("tournamentId", canceled.ID).Info("Tournament canceled")

	return canceled, nil
}

// GetAll returns every tournament with its participants
func (s *tournamentService) GetAll(ctx context.Context) ([]*models.TournamentResult, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	tournaments, err := uow.TournamentRepository().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get tournaments: %w", err)
	}

	return attachParticipants(ctx, uow, tournaments)
}

// GetResults returns one tournament with its participants
func (s *tournamentService) GetResults(ctx context.Context, tournamentID string) (*models.TournamentResult, error) {
	if !hasID(tournamentID) {
		return nil, NewValidationError(MsgMissingTournamentID)
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
		return nil, NewNotFoundError(MsgTournamentResultsNotFound)
	}

	wagers, err := uow.WagerRepository().GetByTournament(ctx, tournament.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get wagers: %w", err)
	}

	return &models.TournamentResult{Tournament: tournament, Participants: wagers}, nil
}

// GetLatestFinished returns the most recently finished tournaments with participants
func (s *tournamentService) GetLatestFinished(ctx context.Context) ([]*models.TournamentResult, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	tournaments, err := uow.TournamentRepository().GetLatestFinished(ctx, s.resultsLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to get finished tournaments: %w", err)
	}

	return attachParticipants(ctx, uow, tournaments)
}

// attachParticipants loads the wagers for a page of tournaments in one query
func attachParticipants(ctx context.Context, uow UnitOfWork, tournaments []*models.Tournament) ([]*models.TournamentResult, error) {
	results := make([]*models.TournamentResult, 0, len(tournaments))
	if len(tournaments) == 0 {
		return results, nil
	}

	ids := make([]string, len(tournaments))
	for i, tournament := range tournaments {
		ids[i] = tournament.ID
	}

	wagersByTournament, err := uow.WagerRepository().GetByTournaments(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get wagers: %w", err)
	}

	for _, tournament := range tournaments {
		participants := wagersByTournament[tournament.ID]
		if participants == nil {
			participants = []*models.Wager{}
		}
		results = append(results, &models.TournamentResult{
			Tournament:   tournament,
			Participants: participants,
		})
	}

	return results, nil
}
