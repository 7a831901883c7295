package api

import (
	"net/http"
)

func (h *Handler) newPlayer(w http.ResponseWriter, r *http.Request) {
	points, err := parsePoints(r, "points")
	if err != nil {
		respondWithError(w, r, err)
		return
	}

	player, err := h.players.Create(r.Context(), r.URL.Query().Get("id"), points)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, PlayerPointsResponse{PlayerID: player.ID, Points: player.Points})
}

func (h *Handler) take(w http.ResponseWriter, r *http.Request) {
	points, err := parsePoints(r, "points")
	if err != nil {
		respondWithError(w, r, err)
		return
	}

	player, err := h.players.Take(r.Context(), r.URL.Query().Get("playerId"), points)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, TakeResponse{ID: player.ID, Points: player.Points})
}

func (h *Handler) fund(w http.ResponseWriter, r *http.Request) {
	points, err := parsePoints(r, "points")
	if err != nil {
		respondWithError(w, r, err)
		return
	}

	player, err := h.players.Fund(r.Context(), r.URL.Query().Get("playerId"), points)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, BalanceResponse{PlayerID: player.ID, Balance: player.Points})
}

func (h *Handler) balance(w http.ResponseWriter, r *http.Request) {
	balance, err := h.players.Balance(r.Context(), r.URL.Query().Get("playerId"))
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, BalanceResponse{PlayerID: balance.PlayerID, Balance: balance.Points})
}

func (h *Handler) joinTournament(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	wager, err := h.wagers.Join(r.Context(), query.Get("tournamentId"), query.Get("playerId"), backerIDs(r))
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, newWagerResponse(wager))
}

func (h *Handler) listPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := h.players.List(r.Context())
	if err != nil {
		respondWithError(w, r, err)
		return
	}

	out := make([]PlayerPointsResponse, 0, len(players))
	for _, p := range players {
		out = append(out, PlayerPointsResponse{PlayerID: p.ID, Points: p.Points})
	}
	respondJSON(w, http.StatusOK, out)
}
