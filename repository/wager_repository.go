package repository

import (
	"context"
	"fmt"

	"tourney/database"
	"tourney/models"

	"github.com/jackc/pgx/v5"
)

const wagerColumns = `w.id, w.tournament_id, w.player_id, w.bet_sum, w.is_winner, w.created_at`

// WagerRepository implements the WagerRepository interface
type WagerRepository struct {
	q queryable
}

// NewWagerRepository creates a new wager repository
func NewWagerRepository(db *database.DB) *WagerRepository {
	return &WagerRepository{q: db.Pool}
}

// newWagerRepositoryWithTx creates a new wager repository with a transaction
func newWagerRepositoryWithTx(tx queryable) *WagerRepository {
	return &WagerRepository{q: tx}
}

// Create inserts a wager and its ordered backer stakes
func (r *WagerRepository) Create(ctx context.Context, wager *models.Wager) error {
	query := `
		INSERT INTO wagers (tournament_id, player_id, bet_sum, is_winner)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query, wager.TournamentID, wager.PlayerID, wager.BetSum, wager.IsWinner).
		Scan(&wager.ID, &wager.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create wager for player %s in tournament %s: %w",
			wager.PlayerID, wager.TournamentID, translateError(err))
	}

	if len(wager.OwnedSum) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for position, stake := range wager.OwnedSum {
		batch.Queue(`
			INSERT INTO wager_backers (wager_id, position, player_id, amount)
			VALUES ($1, $2, $3, $4)
		`, wager.ID, position, stake.PlayerID, stake.Sum)
	}

	results := r.q.SendBatch(ctx, batch)
	defer results.Close()

	for range wager.OwnedSum {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to create wager backer: %w", err)
		}
	}

	return nil
}

// GetByTournament returns the wagers of a tournament in join order
func (r *WagerRepository) GetByTournament(ctx context.Context, tournamentID string) ([]*models.Wager, error) {
	query := `SELECT ` + wagerColumns + ` FROM wagers w WHERE w.tournament_id = $1 ORDER BY w.id`

	rows, err := r.q.Query(ctx, query, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get wagers for tournament %s: %w", tournamentID, err)
	}

	wagers, err := collectWagers(rows)
	if err != nil {
		return nil, err
	}
	if err := r.loadBackers(ctx, wagers); err != nil {
		return nil, err
	}

	return wagers, nil
}

// GetByTournaments returns wagers grouped by tournament id
func (r *WagerRepository) GetByTournaments(ctx context.Context, tournamentIDs []string) (map[string][]*models.Wager, error) {
	grouped := make(map[string][]*models.Wager, len(tournamentIDs))
	if len(tournamentIDs) == 0 {
		return grouped, nil
	}

	query := `SELECT ` + wagerColumns + ` FROM wagers w WHERE w.tournament_id = ANY($1) ORDER BY w.id`

	rows, err := r.q.Query(ctx, query, tournamentIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get wagers for tournaments: %w", err)
	}

	wagers, err := collectWagers(rows)
	if err != nil {
		return nil, err
	}
	if err := r.loadBackers(ctx, wagers); err != nil {
		return nil, err
	}

	for _, wager := range wagers {
		grouped[wager.TournamentID] = append(grouped[wager.TournamentID], wager)
	}

	return grouped, nil
}

// GetOpenByParticipant returns wagers in opened tournaments where the player bets or backs
func (r *WagerRepository) GetOpenByParticipant(ctx context.Context, playerID string) ([]*models.Wager, error) {
	query := `
		SELECT ` + wagerColumns + `
		FROM wagers w
		JOIN tournaments t ON t.id = w.tournament_id
		WHERE t.status = $2
		  AND (
			w.player_id = $1
			OR EXISTS (
				SELECT 1 FROM wager_backers b
				WHERE b.wager_id = w.id AND b.player_id = $1
			)
		  )
		ORDER BY w.id
	`

	rows, err := r.q.Query(ctx, query, playerID, string(models.TournamentStatusOpened))
	if err != nil {
		return nil, fmt.Errorf("failed to get open wagers for player %s: %w", playerID, err)
	}

	wagers, err := collectWagers(rows)
	if err != nil {
		return nil, err
	}
	if err := r.loadBackers(ctx, wagers); err != nil {
		return nil, err
	}

	return wagers, nil
}

// MarkWinner flags a wager as the winning entry
func (r *WagerRepository) MarkWinner(ctx context.Context, wagerID int64) error {
	result, err := r.q.Exec(ctx, `UPDATE wagers SET is_winner = TRUE WHERE id = $1`, wagerID)
	if err != nil {
		return fmt.Errorf("failed to mark wager %d as winner: %w", wagerID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("wager %d not found", wagerID)
	}

	return nil
}

// loadBackers fills OwnedSum for every wager with a single query
func (r *WagerRepository) loadBackers(ctx context.Context, wagers []*models.Wager) error {
	if len(wagers) == 0 {
		return nil
	}

	byID := make(map[int64]*models.Wager, len(wagers))
	ids := make([]int64, 0, len(wagers))
	for _, wager := range wagers {
		wager.OwnedSum = []models.BackerStake{}
		byID[wager.ID] = wager
		ids = append(ids, wager.ID)
	}

	query := `
		SELECT wager_id, player_id, amount
		FROM wager_backers
		WHERE wager_id = ANY($1)
		ORDER BY wager_id, position
	`

	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("failed to get wager backers: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var wagerID int64
		var stake models.BackerStake
		if err := rows.Scan(&wagerID, &stake.PlayerID, &stake.Sum); err != nil {
			return fmt.Errorf("failed to scan wager backer: %w", err)
		}
		if wager, ok := byID[wagerID]; ok {
			wager.OwnedSum = append(wager.OwnedSum, stake)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate wager backers: %w", err)
	}

	return nil
}

func collectWagers(rows pgx.Rows) ([]*models.Wager, error) {
	defer rows.Close()

	wagers := make([]*models.Wager, 0)
	for rows.Next() {
		var wager models.Wager
		err := rows.Scan(
			&wager.ID,
			&wager.TournamentID,
			&wager.PlayerID,
			&wager.BetSum,
			&wager.IsWinner,
			&wager.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan wager: %w", err)
		}
		wagers = append(wagers, &wager)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate wagers: %w", err)
	}

	return wagers, nil
}
