package api

import (
	"net/http"
)

func (h *Handler) announceTournament(w http.ResponseWriter, r *http.Request) {
	deposit, err := parsePoints(r, "deposit")
	if err != nil {
		respondWithError(w, r, err)
		return
	}

	tournament, err := h.tournaments.Announce(r.Context(), r.URL.Query().Get("tournamentId"), deposit)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, newTournamentResponse(tournament))
}

func (h *Handler) getTournamentDetails(w http.ResponseWriter, r *http.Request) {
	result, err := h.tournaments.GetResults(r.Context(), r.URL.Query().Get("tournamentId"))
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, newResultResponse(result))
}

func (h *Handler) getClosedTournaments(w http.ResponseWriter, r *http.Request) {
	results, err := h.tournaments.GetLatestFinished(r.Context())
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, newResultResponses(results))
}

func (h *Handler) listTournaments(w http.ResponseWriter, r *http.Request) {
	results, err := h.tournaments.GetAll(r.Context())
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, newResultResponses(results))
}

func (h *Handler) resultTournament(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := closeTournamentID(r)
	if err != nil {
		respondWithError(w, r, err)
		return
	}

	result, err := h.settlement.Close(r.Context(), tournamentID)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, CloseResponse{
		FinishedTournament: newTournamentResponse(result.Tournament),
		Winner:             newWagerResponse(result.Winner),
	})
}

func (h *Handler) cancelTournament(w http.ResponseWriter, r *http.Request) {
	tournament, err := h.tournaments.Cancel(r.Context(), r.URL.Query().Get("tournamentId"))
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, newTournamentResponse(tournament))
}
