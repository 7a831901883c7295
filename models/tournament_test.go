package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTournamentStatus_Transitions(t *testing.T) {
	tests := []struct {
		from     TournamentStatus
		to       TournamentStatus
		expected bool
	}{
		{TournamentStatusOpened, TournamentStatusFinished, true},
		{TournamentStatusOpened, TournamentStatusCanceled, true},
		{TournamentStatusOpened, TournamentStatusOpened, false},
		{TournamentStatusFinished, TournamentStatusCanceled, false},
		{TournamentStatusFinished, TournamentStatusOpened, false},
		{TournamentStatusCanceled, TournamentStatusFinished, false},
		{TournamentStatusCanceled, TournamentStatusOpened, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestTournamentStatus_IsTerminal(t *testing.T) {
	assert.False(t, TournamentStatusOpened.IsTerminal())
	assert.True(t, TournamentStatusFinished.IsTerminal())
	assert.True(t, TournamentStatusCanceled.IsTerminal())

	tournament := &Tournament{Status: TournamentStatusOpened}
	assert.True(t, tournament.IsOpen())
	tournament.Status = TournamentStatusCanceled
	assert.False(t, tournament.IsOpen())
}

func TestWager_BookedFor(t *testing.T) {
	wager := &Wager{
		PlayerID: "bob",
		BetSum:   decimal.NewFromInt(600),
		OwnedSum: []BackerStake{
			{PlayerID: "carol", Sum: decimal.NewFromInt(200)},
			{PlayerID: "dave", Sum: decimal.NewFromInt(250)},
		},
	}

	assert.True(t, wager.BookedFor("bob").Equal(decimal.NewFromInt(600)))
	assert.True(t, wager.BookedFor("carol").Equal(decimal.NewFromInt(200)))
	assert.True(t, wager.BookedFor("erin").IsZero())
	assert.True(t, wager.BackerRate().Equal(decimal.NewFromInt(200)))
	assert.True(t, wager.HasBackers())
	assert.True(t, wager.IsParticipant("dave"))
	assert.False(t, wager.IsParticipant("erin"))

	solo := &Wager{PlayerID: "alice", BetSum: decimal.NewFromInt(10)}
	assert.False(t, solo.HasBackers())
	assert.True(t, solo.BackerRate().IsZero())
}
