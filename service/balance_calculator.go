package service

import (
	"context"
	"fmt"
	"net/http"

	"tourney/models"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// BookedPoints sums what the player has committed to the given wagers,
// both as bettor and as backer.
func BookedPoints(playerID string, wagers []*models.Wager) decimal.Decimal {
	booked := decimal.Zero
	for _, wager := range wagers {
		booked = booked.Add(wager.BookedFor(playerID))
	}
	return booked
}

// AvailablePoints computes a player's spendable points from raw points and open wagers.
// A negative result means the stored points no longer cover the bookings and is
// reported as an internal fault.
func AvailablePoints(player *models.Player, openWagers []*models.Wager) (decimal.Decimal, error) {
	available := player.Points.Sub(BookedPoints(player.ID, openWagers))
	if available.IsNegative() {
		log.WithFields(log.Fields{
			"playerId":  player.ID,
			"points":    player.Points.String(),
			"available": available.String(),
		}).Error("Player has negative available points")
		return decimal.Zero, NewInsufficientFundsError(MsgNegativeBalance).WithCode(http.StatusInternalServerError)
	}
	return available, nil
}

// availablePointsFor loads the player's open wagers and computes available points
func availablePointsFor(ctx context.Context, uow UnitOfWork, player *models.Player) (decimal.Decimal, []*models.Wager, error) {
	openWagers, err := uow.WagerRepository().GetOpenByParticipant(ctx, player.ID)
	if err != nil {
		return decimal.Zero, nil, fmt.Errorf("failed to get open wagers: %w", err)
	}

	available, err := AvailablePoints(player, openWagers)
	if err != nil {
		return decimal.Zero, nil, err
	}
	return available, openWagers, nil
}
