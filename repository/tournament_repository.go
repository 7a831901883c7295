package repository

import (
	"context"
	"errors"
	"fmt"

	"tourney/database"
	"tourney/models"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const tournamentColumns = `id, deposit, status, created_at, updated_at, closed_at`

// TournamentRepository implements the TournamentRepository interface
type TournamentRepository struct {
	q queryable
}

// NewTournamentRepository creates a new tournament repository
func NewTournamentRepository(db *database.DB) *TournamentRepository {
	return &TournamentRepository{q: db.Pool}
}

// newTournamentRepositoryWithTx creates a new tournament repository with a transaction
func newTournamentRepositoryWithTx(tx queryable) *TournamentRepository {
	return &TournamentRepository{q: tx}
}

// GetByID retrieves a tournament by id
func (r *TournamentRepository) GetByID(ctx context.Context, id string) (*models.Tournament, error) {
	query := `SELECT ` + tournamentColumns + ` FROM tournaments WHERE id = $1`

	tournament, err := scanTournament(r.q.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tournament %s: %w", id, err)
	}

	return tournament, nil
}

// GetAll returns every tournament, newest first
func (r *TournamentRepository) GetAll(ctx context.Context) ([]*models.Tournament, error) {
	query := `SELECT ` + tournamentColumns + ` FROM tournaments ORDER BY created_at DESC, id`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get tournaments: %w", err)
	}
	return collectTournaments(rows)
}

// GetLatestFinished returns up to limit finished tournaments, most recently closed first
func (r *TournamentRepository) GetLatestFinished(ctx context.Context, limit int) ([]*models.Tournament, error) {
	query := `
		SELECT ` + tournamentColumns + `
		FROM tournaments
		WHERE status = $1
		ORDER BY closed_at DESC, id
		LIMIT $2
	`

	rows, err := r.q.Query(ctx, query, string(models.TournamentStatusFinished), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get finished tournaments: %w", err)
	}
	return collectTournaments(rows)
}

// Create inserts an opened tournament
func (r *TournamentRepository) Create(ctx context.Context, id string, deposit decimal.Decimal) (*models.Tournament, error) {
	query := `
		INSERT INTO tournaments (id, deposit, status)
		VALUES ($1, $2, $3)
		RETURNING ` + tournamentColumns

	tournament, err := scanTournament(r.q.QueryRow(ctx, query, id, deposit, string(models.TournamentStatusOpened)))
	if err != nil {
		return nil, fmt.Errorf("failed to create tournament %s: %w", id, translateError(err))
	}

	return tournament, nil
}

// TransitionStatus is a compare-and-swap on the status column. Only one of two
// concurrent callers can observe the from status, the other gets nil.
func (r *TournamentRepository) TransitionStatus(ctx context.Context, id string, from, to models.TournamentStatus) (*models.Tournament, error) {
	if !from.CanTransitionTo(to) {
		return nil, fmt.Errorf("invalid tournament transition from %s to %s", from, to)
	}

	query := `
		UPDATE tournaments
		SET status = $3, updated_at = NOW(), closed_at = NOW()
		WHERE id = $1 AND status = $2
		RETURNING ` + tournamentColumns

	tournament, err := scanTournament(r.q.QueryRow(ctx, query, id, string(from), string(to)))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to transition tournament %s to %s: %w", id, to, err)
	}

	return tournament, nil
}

func scanTournament(row pgx.Row) (*models.Tournament, error) {
	var tournament models.Tournament
	var status string
	err := row.Scan(
		&tournament.ID,
		&tournament.Deposit,
		&status,
		&tournament.CreatedAt,
		&tournament.UpdatedAt,
		&tournament.ClosedAt,
	)
	if err != nil {
		return nil, err
	}
	tournament.Status = models.TournamentStatus(status)
	return &tournament, nil
}

func collectTournaments(rows pgx.Rows) ([]*models.Tournament, error) {
	defer rows.Close()

	tournaments := make([]*models.Tournament, 0)
	for rows.Next() {
		tournament, err := scanTournament(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tournament: %w", err)
		}
		tournaments = append(tournaments, tournament)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tournaments: %w", err)
	}

	return tournaments, nil
}
