package api

import (
	"net/http"

	"tourney/service"

	"github.com/gorilla/mux"
)

// Handler serves the ledger's HTTP surface
type Handler struct {
	players     service.PlayerService
	wagers      service.WagerService
	tournaments service.TournamentService
	settlement  service.SettlementService
}

// NewHandler creates a new HTTP handler over the ledger services
func NewHandler(
	players service.PlayerService,
	wagers service.WagerService,
	tournaments service.TournamentService,
	settlement service.SettlementService,
) *Handler {
	return &Handler{
		players:     players,
		wagers:      wagers,
		tournaments: tournaments,
		settlement:  settlement,
	}
}

// Router builds the route table
func (h *Handler) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(recoverPanics, accessLog)

	r.HandleFunc("/health", h.health).Methods(http.MethodGet)

	// Tournaments
	r.HandleFunc("/announceTournament", h.announceTournament).Methods(http.MethodGet)
	r.HandleFunc("/getTournamentDetails", h.getTournamentDetails).Methods(http.MethodGet)
	r.HandleFunc("/getClosedTournaments", h.getClosedTournaments).Methods(http.MethodGet)
	r.HandleFunc("/resultTournament", h.resultTournament).Methods(http.MethodPost)
	r.HandleFunc("/cancelTournament", h.cancelTournament).Methods(http.MethodGet)
	r.HandleFunc("/tournaments", h.listTournaments).Methods(http.MethodGet)

	// Players
	r.HandleFunc("/new", h.newPlayer).Methods(http.MethodGet)
	r.HandleFunc("/take", h.take).Methods(http.MethodGet)
	r.HandleFunc("/fund", h.fund).Methods(http.MethodGet)
	r.HandleFunc("/balance", h.balance).Methods(http.MethodGet)
	r.HandleFunc("/joinTournament", h.joinTournament).Methods(http.MethodGet)
	r.HandleFunc("/players", h.listPlayers).Methods(http.MethodGet)

	return r
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
