package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BackerStake is the amount one backer fronts for another player's entry
type BackerStake struct {
	PlayerID string          `db:"player_id"`
	Sum      decimal.Decimal `db:"amount"`
}

// Wager represents a player's entry into a tournament
type Wager struct {
	ID           int64           `db:"id"`
	TournamentID string          `db:"tournament_id"`
	PlayerID     string          `db:"player_id"`
	BetSum       decimal.Decimal `db:"bet_sum"`
	IsWinner     bool            `db:"is_winner"`
	OwnedSum     []BackerStake   `db:"-"` // Ordered, loaded from wager_backers
	CreatedAt    time.Time       `db:"created_at"`
}

// HasBackers checks if anyone fronted part of the deposit
func (w *Wager) HasBackers() bool {
	return len(w.OwnedSum) > 0
}

// BackerRate returns the first backer's sum, which settlement applies
// uniformly to every backer of the wager.
func (w *Wager) BackerRate() decimal.Decimal {
	if len(w.OwnedSum) == 0 {
		return decimal.Zero
	}
	return w.OwnedSum[0].Sum
}

// BookedFor returns the points this wager holds for the given player,
// either as the bettor or as one of the backers.
func (w *Wager) BookedFor(playerID string) decimal.Decimal {
	booked := decimal.Zero
	if w.PlayerID == playerID {
		booked = booked.Add(w.BetSum)
	}
	for _, stake := range w.OwnedSum {
		if stake.PlayerID == playerID {
			booked = booked.Add(stake.Sum)
		}
	}
	return booked
}

// IsParticipant checks if the player bets or backs in this wager
func (w *Wager) IsParticipant(playerID string) bool {
	if w.PlayerID == playerID {
		return true
	}
	for _, stake := range w.OwnedSum {
		if stake.PlayerID == playerID {
			return true
		}
	}
	return false
}
