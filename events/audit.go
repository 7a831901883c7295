package events

import (
	"context"

	log "github.com/sirupsen/logrus"
)

// RegisterAuditLogger logs every committed event at info level.
// The log is the only record of past changes; balances themselves keep current state only.
func RegisterAuditLogger(bus *Bus) {
	bus.SubscribeAll(func(ctx context.Context, event Event) {
		fields := log.Fields{"eventType": event.Type()}

		switch e := event.(type) {
		case PlayerCreatedEvent:
			fields["playerId"] = e.PlayerID
			fields["initialPoints"] = e.InitialPoints.String()
		case BalanceChangeEvent:
			fields["playerId"] = e.PlayerID
			fields["oldPoints"] = e.OldPoints.String()
			fields["newPoints"] = e.NewPoints.String()
			fields["reason"] = e.Reason
			if e.TournamentID != "" {
				fields["tournamentId"] = e.TournamentID
			}
		case TournamentAnnouncedEvent:
			fields["tournamentId"] = e.TournamentID
			fields["deposit"] = e.Deposit.String()
		case WagerPlacedEvent:
			fields["tournamentId"] = e.TournamentID
			fields["playerId"] = e.PlayerID
			fields["betSum"] = e.BetSum.String()
			fields["backers"] = len(e.BackerIDs)
		case TournamentFinishedEvent:
			fields["tournamentId"] = e.TournamentID
			fields["winner"] = e.WinnerPlayerID
			fields["participants"] = e.Participants
		case TournamentCanceledEvent:
			fields["tournamentId"] = e.TournamentID
		}

		log.WithFields(fields).Info("Ledger event committed")
	})
}
