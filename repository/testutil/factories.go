package testutil

import (
	"context"
	"testing"

	"tourney/database"
	"tourney/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// InsertPlayer seeds a player row directly
func InsertPlayer(t *testing.T, db *database.DB, id string, points int64) {
	t.Helper()
	_, err := db.Exec(context.Background(),
		`INSERT INTO players (id, points) VALUES ($1, $2)`, id, decimal.NewFromInt(points))
	require.NoError(t, err)
}

// InsertTournament seeds a tournament row directly
func InsertTournament(t *testing.T, db *database.DB, id string, deposit int64, status models.TournamentStatus) {
	t.Helper()
	_, err := db.Exec(context.Background(),
		`INSERT INTO tournaments (id, deposit, status) VALUES ($1, $2, $3)`,
		id, decimal.NewFromInt(deposit), string(status))
	require.NoError(t, err)
}

// InsertWager seeds a wager and its backers, returning the wager id
func InsertWager(t *testing.T, db *database.DB, tournamentID, playerID string, betSum int64, backers ...models.BackerStake) int64 {
	t.Helper()
	ctx := context.Background()

	var id int64
	err := db.QueryRow(ctx,
		`INSERT INTO wagers (tournament_id, player_id, bet_sum) VALUES ($1, $2, $3) RETURNING id`,
		tournamentID, playerID, decimal.NewFromInt(betSum)).Scan(&id)
	require.NoError(t, err)

	for position, backer := range backers {
		_, err := db.Exec(ctx,
			`INSERT INTO wager_backers (wager_id, position, player_id, amount) VALUES ($1, $2, $3, $4)`,
			id, position, backer.PlayerID, backer.Sum)
		require.NoError(t, err)
	}

	return id
}

// Stake builds a backer stake for seeding
func Stake(playerID string, sum int64) models.BackerStake {
	return models.BackerStake{PlayerID: playerID, Sum: decimal.NewFromInt(sum)}
}

// PlayerPoints reads a player's raw points
func PlayerPoints(t *testing.T, db *database.DB, id string) decimal.Decimal {
	t.Helper()
	var points decimal.Decimal
	err := db.QueryRow(context.Background(), `SELECT points FROM players WHERE id = $1`, id).Scan(&points)
	require.NoError(t, err)
	return points
}
