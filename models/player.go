package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Player represents a participant holding points
type Player struct {
	ID        string          `db:"id"`
	Points    decimal.Decimal `db:"points"`
	Version   int64           `db:"version"` // Bumped on every write, used as an optimistic lock
	CreatedAt time.Time       `db:"created_at"`
	UpdatedAt time.Time       `db:"updated_at"`
}

// PlayerBalance pairs a player with their currently spendable points
type PlayerBalance struct {
	PlayerID string
	Points   decimal.Decimal
}
