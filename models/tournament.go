package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TournamentStatus represents the lifecycle state of a tournament
type TournamentStatus string

const (
	TournamentStatusOpened   TournamentStatus = "opened"
	TournamentStatusFinished TournamentStatus = "finished"
	TournamentStatusCanceled TournamentStatus = "canceled"
)

// IsTerminal reports whether no further transitions are allowed
func (s TournamentStatus) IsTerminal() bool {
	return s == TournamentStatusFinished || s == TournamentStatusCanceled
}

// CanTransitionTo checks whether the status may move to next.
// Opened is the only state with outgoing transitions.
func (s TournamentStatus) CanTransitionTo(next TournamentStatus) bool {
	if s != TournamentStatusOpened {
		return false
	}
	return next == TournamentStatusFinished || next == TournamentStatusCanceled
}

// Tournament represents a single wagering round with a fixed entry deposit
type Tournament struct {
	ID        string           `db:"id"`
	Deposit   decimal.Decimal  `db:"deposit"`
	Status    TournamentStatus `db:"status"`
	CreatedAt time.Time        `db:"created_at"`
	UpdatedAt time.Time        `db:"updated_at"`
	ClosedAt  *time.Time       `db:"closed_at"`
}

// IsOpen checks if the tournament still accepts wagers and can be closed or canceled
func (t *Tournament) IsOpen() bool {
	return t.Status == TournamentStatusOpened
}

// TournamentResult is a tournament together with every wager placed in it
type TournamentResult struct {
	Tournament   *Tournament
	Participants []*Wager
}

// TransferReason describes why a player's points changed
type TransferReason string

const (
	TransferReasonInitial    TransferReason = "initial"
	TransferReasonFund       TransferReason = "fund"
	TransferReasonTake       TransferReason = "take"
	TransferReasonLoss       TransferReason = "loss"
	TransferReasonBackerLoss TransferReason = "backer_loss"
	TransferReasonWin        TransferReason = "win"
	TransferReasonBackerWin  TransferReason = "backer_win"
)

// PointTransfer is a single signed adjustment applied to a player's points
type PointTransfer struct {
	PlayerID string
	Delta    decimal.Decimal
	Reason   TransferReason
}

// SettlementResult represents the outcome of closing a tournament
type SettlementResult struct {
	Tournament *Tournament
	Winner     *Wager
	Transfers  []PointTransfer
}
