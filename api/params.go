package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"tourney/service"

	"github.com/shopspring/decimal"
)

// parsePoints reads a decimal query parameter, reporting absent or malformed values as invalid input
func parsePoints(r *http.Request, name string) (decimal.Decimal, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return decimal.Zero, service.NewValidationError(service.MsgInvalidInput)
	}
	points, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, service.NewValidationError(service.MsgInvalidInput)
	}
	return points, nil
}

// backerIDs accepts both repeated backerId and backerId[] parameters
func backerIDs(r *http.Request) []string {
	query := r.URL.Query()
	ids := append([]string{}, query["backerId"]...)
	ids = append(ids, query["backerId[]"]...)
	return ids
}

type closeRequest struct {
	TournamentID string `json:"tournamentId"`
}

// closeTournamentID reads tournamentId from a JSON or form encoded body
func closeTournamentID(r *http.Request) (string, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var req closeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return "", service.NewValidationError(service.MsgMissingTournamentID)
		}
		return req.TournamentID, nil
	}

	if err := r.ParseForm(); err != nil {
		return "", service.NewValidationError(service.MsgMissingTournamentID)
	}
	return r.PostForm.Get("tournamentId"), nil
}
