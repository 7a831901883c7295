package repository

import (
	"context"
	"errors"
	"fmt"

	"tourney/database"
	"tourney/models"
	"tourney/service"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const playerColumns = `id, points, version, created_at, updated_at`

// PlayerRepository implements the PlayerRepository interface
type PlayerRepository struct {
	q queryable
}

// NewPlayerRepository creates a new player repository
func NewPlayerRepository(db *database.DB) *PlayerRepository {
	return &PlayerRepository{q: db.Pool}
}

// newPlayerRepositoryWithTx creates a new player repository with a transaction
func newPlayerRepositoryWithTx(tx queryable) *PlayerRepository {
	return &PlayerRepository{q: tx}
}

// GetByID retrieves a player by id
func (r *PlayerRepository) GetByID(ctx context.Context, id string) (*models.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE id = $1`

	player, err := scanPlayer(r.q.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get player %s: %w", id, err)
	}

	return player, nil
}

// GetByIDs retrieves the players that exist among ids
func (r *PlayerRepository) GetByIDs(ctx context.Context, ids []string) ([]*models.Player, error) {
	if len(ids) == 0 {
		return []*models.Player{}, nil
	}

	query := `SELECT ` + playerColumns + ` FROM players WHERE id = ANY($1) ORDER BY id`

	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get players by ids: %w", err)
	}
	return collectPlayers(rows)
}

// GetAll returns all players
func (r *PlayerRepository) GetAll(ctx context.Context) ([]*models.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players ORDER BY created_at, id`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get players: %w", err)
	}
	return collectPlayers(rows)
}

// Create inserts a new player
func (r *PlayerRepository) Create(ctx context.Context, id string, points decimal.Decimal) (*models.Player, error) {
	query := `
		INSERT INTO players (id, points)
		VALUES ($1, $2)
		RETURNING ` + playerColumns

	player, err := scanPlayer(r.q.QueryRow(ctx, query, id, points))
	if err != nil {
		return nil, fmt.Errorf("failed to create player %s: %w", id, translateError(err))
	}

	return player, nil
}

// UpdatePoints persists player.Points guarded by player.Version
func (r *PlayerRepository) UpdatePoints(ctx context.Context, player *models.Player) error {
	query := `
		UPDATE players
		SET points = $1, version = version + 1, updated_at = NOW()
		WHERE id = $2 AND version = $3
		RETURNING version, updated_at
	`

	err := r.q.QueryRow(ctx, query, player.Points, player.ID, player.Version).Scan(&player.Version, &player.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("player %s at version %d: %w", player.ID, player.Version, service.ErrVersionConflict)
	}
	if err != nil {
		return fmt.Errorf("failed to update points for player %s: %w", player.ID, err)
	}

	return nil
}

// TouchVersion bumps player.Version without changing points
func (r *PlayerRepository) TouchVersion(ctx context.Context, player *models.Player) error {
	query := `
		UPDATE players
		SET version = version + 1, updated_at = NOW()
		WHERE id = $1 AND version = $2
		RETURNING version, updated_at
	`

	err := r.q.QueryRow(ctx, query, player.ID, player.Version).Scan(&player.Version, &player.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("player %s at version %d: %w", player.ID, player.Version, service.ErrVersionConflict)
	}
	if err != nil {
		return fmt.Errorf("failed to bump version for player %s: %w", player.ID, err)
	}

	return nil
}

func scanPlayer(row pgx.Row) (*models.Player, error) {
	var player models.Player
	err := row.Scan(
		&player.ID,
		&player.Points,
		&player.Version,
		&player.CreatedAt,
		&player.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &player, nil
}

func collectPlayers(rows pgx.Rows) ([]*models.Player, error) {
	defer rows.Close()

	players := make([]*models.Player, 0)
	for rows.Next() {
		player, err := scanPlayer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan player: %w", err)
		}
		players = append(players, player)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate players: %w", err)
	}

	return players, nil
}
