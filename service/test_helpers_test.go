package service

import (
	"context"
	"testing"

	"tourney/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// testMocks bundles the mocks every service test needs
type testMocks struct {
	factory     *MockUnitOfWorkFactory
	uow         *MockUnitOfWork
	players     *MockPlayerRepository
	tournaments *MockTournamentRepository
	wagers      *MockWagerRepository
	events      *MockEventPublisher
}

func newTestMocks() *testMocks {
	m := &testMocks{
		factory:     new(MockUnitOfWorkFactory),
		uow:         new(MockUnitOfWork),
		players:     new(MockPlayerRepository),
		tournaments: new(MockTournamentRepository),
		wagers:      new(MockWagerRepository),
		events:      new(MockEventPublisher),
	}
	m.uow.SetRepositories(m.players, m.tournaments, m.wagers, m.events)
	m.factory.On("Create").Return(m.uow)
	return m
}

// expectTransaction sets up Begin and the deferred Rollback, plus Commit when the call should succeed
func (m *testMocks) expectTransaction(ctx context.Context, commit bool) {
	m.uow.On("Begin", ctx).Return(nil)
	m.uow.On("Rollback").Return(nil)
	if commit {
		m.uow.On("Commit").Return(nil)
	}
}

func (m *testMocks) allowEvents() {
	m.events.On("Publish", mock.Anything).Return()
}

func (m *testMocks) assertExpectations(t *testing.T) {
	t.Helper()
	m.factory.AssertExpectations(t)
	m.uow.AssertExpectations(t)
	m.players.AssertExpectations(t)
	m.tournaments.AssertExpectations(t)
	m.wagers.AssertExpectations(t)
	m.events.AssertExpectations(t)
}

// fixedPicker always returns the same index
type fixedPicker int

func (p fixedPicker) Pick(n int) int {
	return int(p)
}

func pts(n int64) decimal.Decimal {
	return decimal.NewFromInt(n)
}

func newPlayer(id string, points int64) *models.Player {
	return &models.Player{ID: id, Points: pts(points), Version: 1}
}

func openTournament(id string, deposit int64) *models.Tournament {
	return &models.Tournament{ID: id, Deposit: pts(deposit), Status: models.TournamentStatusOpened}
}

func newWager(id int64, tournamentID, playerID string, betSum int64, backers ...models.BackerStake) *models.Wager {
	if backers == nil {
		backers = []models.BackerStake{}
	}
	return &models.Wager{
		ID:           id,
		TournamentID: tournamentID,
		PlayerID:     playerID,
		BetSum:       pts(betSum),
		OwnedSum:     backers,
	}
}

func stake(playerID string, sum int64) models.BackerStake {
	return models.BackerStake{PlayerID: playerID, Sum: pts(sum)}
}

// assertDomainError checks kind, HTTP code, and message of a service error
func assertDomainError(t *testing.T, err error, kind ErrorKind, code int, message string) {
	t.Helper()
	require.Error(t, err)
	domainErr, ok := AsError(err)
	require.True(t, ok, "expected domain error, got %v", err)
	assert.Equal(t, kind, domainErr.Kind)
	assert.Equal(t, code, domainErr.Code)
	assert.Equal(t, message, domainErr.Message)
}

func assertPoints(t *testing.T, expected int64, actual decimal.Decimal) {
	t.Helper()
	assert.True(t, actual.Equal(pts(expected)), "expected %d points, got %s", expected, actual.String())
}
