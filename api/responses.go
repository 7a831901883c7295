package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"tourney/models"
	"tourney/service"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

func init() {
	// Points are whole numbers on the wire, not quoted strings
	decimal.MarshalJSONWithoutQuotes = true
}

// PlayerPointsResponse is returned when a player is created or points are taken
type PlayerPointsResponse struct {
	PlayerID string          `json:"playerId"`
	Points   decimal.Decimal `json:"points"`
}

// BalanceResponse reports a player's spendable points
type BalanceResponse struct {
	PlayerID string          `json:"playerId"`
	Balance  decimal.Decimal `json:"balance"`
}

// TakeResponse is the updated player after points were taken
type TakeResponse struct {
	ID     string          `json:"id"`
	Points decimal.Decimal `json:"points"`
}

// BackerStakeResponse is one backer's share of a wager
type BackerStakeResponse struct {
	PlayerID string          `json:"playerId"`
	Sum      decimal.Decimal `json:"sum"`
}

// WagerResponse describes a single tournament entry
type WagerResponse struct {
	TournamentID string                `json:"tournamentId"`
	PlayerID     string                `json:"playerId"`
	BetSum       decimal.Decimal       `json:"betSum"`
	IsWinner     bool                  `json:"isWinner"`
	OwnedSum     []BackerStakeResponse `json:"ownedSum"`
}

// TournamentResponse describes a tournament record
type TournamentResponse struct {
	TournamentID string          `json:"tournamentId"`
	Deposit      decimal.Decimal `json:"deposit"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"createdAt"`
	ClosedAt     *time.Time      `json:"closedAt,omitempty"`
}

// ParticipantResponse is a wager as shown in tournament results
type ParticipantResponse struct {
	PlayerID string                `json:"playerId"`
	BetSum   decimal.Decimal       `json:"betSum"`
	OwnedSum []BackerStakeResponse `json:"ownedSum"`
	IsWinner bool                  `json:"isWinner"`
}

// ResultResponse is a tournament together with its participants
type ResultResponse struct {
	TournamentID string                `json:"tournamentId"`
	Deposit      decimal.Decimal       `json:"deposit"`
	Participants []ParticipantResponse `json:"participants"`
}

// CloseResponse is returned when a tournament is settled
type CloseResponse struct {
	FinishedTournament TournamentResponse `json:"finishedTournament"`
	Winner             WagerResponse      `json:"winner"`
}

func newBackerStakes(stakes []models.BackerStake) []BackerStakeResponse {
	out := make([]BackerStakeResponse, 0, len(stakes))
	for _, s := range stakes {
		out = append(out, BackerStakeResponse{PlayerID: s.PlayerID, Sum: s.Sum})
	}
	return out
}

func newWagerResponse(w *models.Wager) WagerResponse {
	return WagerResponse{
		TournamentID: w.TournamentID,
		PlayerID:     w.PlayerID,
		BetSum:       w.BetSum,
		IsWinner:     w.IsWinner,
		OwnedSum:     newBackerStakes(w.OwnedSum),
	}
}

func newTournamentResponse(t *models.Tournament) TournamentResponse {
	return TournamentResponse{
		TournamentID: t.ID,
		Deposit:      t.Deposit,
		Status:       string(t.Status),
		CreatedAt:    t.CreatedAt,
		ClosedAt:     t.ClosedAt,
	}
}

func newResultResponse(r *models.TournamentResult) ResultResponse {
	participants := make([]ParticipantResponse, 0, len(r.Participants))
	for _, w := range r.Participants {
		participants = append(participants, ParticipantResponse{
			PlayerID: w.PlayerID,
			BetSum:   w.BetSum,
			OwnedSum: newBackerStakes(w.OwnedSum),
			IsWinner: w.IsWinner,
		})
	}
	return ResultResponse{
		TournamentID: r.Tournament.ID,
		Deposit:      r.Tournament.Deposit,
		Participants: participants,
	}
}

func newResultResponses(results []*models.TournamentResult) []ResultResponse {
	out := make([]ResultResponse, 0, len(results))
	for _, r := range results {
		out = append(out, newResultResponse(r))
	}
	return out
}

func respondJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.WithError(err).Error("Failed to encode response body")
	}
}

// respondWithError writes the bare error message with the status carried by the error.
// Anything that is not a domain error is logged and hidden behind a generic message.
func respondWithError(w http.ResponseWriter, r *http.Request, err error) {
	var domainErr *service.Error
	if errors.As(err, &domainErr) {
		respondJSON(w, domainErr.Code, domainErr.Message)
		return
	}

	log.WithFields(log.Fields{
		"method": r.Method,
		"path":   r.URL.Path,
		"error":  err,
	}).Error("Unhandled error while serving request")
	respondJSON(w, http.StatusInternalServerError, service.MsgInternal)
}
