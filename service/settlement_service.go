package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"tourney/events"
	"tourney/models"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// MinParticipants is the smallest field a tournament can be settled with
const MinParticipants = 2

// settlementService implements the SettlementService interface
type settlementService struct {
	uowFactory UnitOfWorkFactory
	picker     WinnerPicker
}

// NewSettlementService creates a new settlement service
func NewSettlementService(uowFactory UnitOfWorkFactory, picker WinnerPicker) SettlementService {
	return &settlementService{
		uowFactory: uowFactory,
		picker:     picker,
	}
}

// Close settles an opened tournament inside a single transaction. If any
// participant or backer no longer exists nothing is applied and the tournament
// stays opened.
func (s *settlementService) Close(ctx context.Context, tournamentID string) (*models.SettlementResult, error) {
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
	if tournament == nil || !tournament.IsOpen() {
		return nil, NewNotFoundError(MsgNoOpenedTournament)
	}

	wagers, err := uow.WagerRepository().GetByTournament(ctx, tournament.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get wagers: %w", err)
	}
	if len(wagers) < MinParticipants {
		return nil, NewValidationError(MsgNotEnoughPlayers).WithCode(http.StatusBadRequest)
	}

	winner := wagers[s.picker.Pick(len(wagers))]
	if err := uow.WagerRepository().MarkWinner(ctx, winner.ID); err != nil {
		return nil, fmt.Errorf("failed to mark winner: %w", err)
	}
	winner.IsWinner = true

	transfers := PlanTransfers(wagers, winner)
	if err := applyTransfers(ctx, uow, tournament.ID, transfers); err != nil {
		return nil, err
	}

	finished, err := uow.TournamentRepository().TransitionStatus(ctx, tournament.ID, models.TournamentStatusOpened, models.TournamentStatusFinished)
	if err != nil {
		return nil, fmt.Errorf("failed to finish tournament: %w", err)
	}
	if finished == nil {
		return nil, NewConflictError(MsgNoOpenedTournament).WithCode(http.StatusBadRequest)
	}

	uow.EventBus().Publish(events.TournamentFinishedEvent{
		TournamentID:   finished.ID,
		WinnerPlayerID: winner.PlayerID,
		Participants:   len(wagers),
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"tournamentId": finished.ID,
		"winner":       winner.PlayerID,
		"participants": len(wagers),
		"transfers":    len(transfers),
	}).Info("Tournament settled")

	return &models.SettlementResult{
		Tournament: finished,
		Winner:     winner,
		Transfers:  transfers,
	}, nil
}

// PlanTransfers computes every point movement for a settled tournament.
//
// Losers give up their bet and each of their backers gives up the first backer's
// sum. The winner receives their bet times the number of other participants. When
// the winner was backed, each backer receives the first backer's sum times that
// factor and the winner is credited their bet times the factor twice, once with
// the backers and once as the prize.
func PlanTransfers(wagers []*models.Wager, winner *models.Wager) []models.PointTransfer {
	multiplier := decimal.NewFromInt(int64(len(wagers) - 1))
	transfers := make([]models.PointTransfer, 0, len(wagers))

	for _, wager := range wagers {
		rate := wager.BackerRate()

		if wager.ID == winner.ID {
			prize := models.PointTransfer{
				PlayerID: wager.PlayerID,
				Delta:    wager.BetSum.Mul(multiplier),
				Reason:   models.TransferReasonWin,
			}
			// A backed winner takes a share alongside the backers and then the prize itself
			if wager.HasBackers() {
				transfers = append(transfers, prize)
				for _, stake := range wager.OwnedSum {
					transfers = append(transfers, models.PointTransfer{
						PlayerID: stake.PlayerID,
						Delta:    rate.Mul(multiplier),
						Reason:   models.TransferReasonBackerWin,
					})
				}
			}
			transfers = append(transfers, prize)
			continue
		}

		transfers = append(transfers, models.PointTransfer{
			PlayerID: wager.PlayerID,
			Delta:    wager.BetSum.Neg(),
			Reason:   models.TransferReasonLoss,
		})
		for _, stake := range wager.OwnedSum {
			transfers = append(transfers, models.PointTransfer{
				PlayerID: stake.PlayerID,
				Delta:    rate.Neg(),
				Reason:   models.TransferReasonBackerLoss,
			})
		}
	}

	return transfers
}

// applyTransfers performs a read-modify-write per transfer. Missing players are
// collected and the remaining transfers still run; the caller's transaction is
// rolled back when any were missing.
func applyTransfers(ctx context.Context, uow UnitOfWork, tournamentID string, transfers []models.PointTransfer) error {
	var missing []string
	seenMissing := make(map[string]struct{})

	for _, transfer := range transfers {
		player, err := uow.PlayerRepository().GetByID(ctx, transfer.PlayerID)
		if err != nil {
			return fmt.Errorf("failed to get player %s: %w", transfer.PlayerID, err)
		}
		if player == nil {
			if _, seen := seenMissing[transfer.PlayerID]; !seen {
				seenMissing[transfer.PlayerID] = struct{}{}
				missing = append(missing, transfer.PlayerID)
			}
			continue
		}

		if err := adjustPoints(ctx, uow, player, transfer.Delta, transfer.Reason, tournamentID); err != nil {
			return err
		}
	}

	if len(missing) > 0 {
		log.WithFields(log.Fields{
			"tournamentId": tournamentID,
			"missing":      strings.Join(missing, ","),
		}).Warn("Settlement aborted, players not found")
		return NewNotFoundError(MsgPlayersMissingPrize)
	}

	return nil
}
