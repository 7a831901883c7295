package service

import (
	"context"
	"net/http"
	"testing"

	"tourney/events"
	"tourney/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPlayerService_Create(t *testing.T) {
	ctx := context.Background()
	m := newTestMocks()
	m.expectTransaction(ctx, true)

	created := newPlayer("alice", 500)
	m.players.On("GetByID", ctx, "alice").Return(nil, nil)
	m.players.On("Create", ctx, "alice", depositMatcher(500)).Return(created, nil)
	m.events.On("Publish", mock.AnythingOfType("events.PlayerCreatedEvent")).Return()
	m.events.On("Publish", mock.MatchedBy(func(e events.BalanceChangeEvent) bool {
		return e.PlayerID == "alice" && e.Reason == models.TransferReasonInitial && e.NewPoints.Equal(pts(500))
	})).Return()

	player, err := NewPlayerService(m.factory).Create(ctx, "alice", pts(500))

	require.NoError(t, err)
	assert.Equal(t, created, player)
	m.assertExpectations(t)
}

func TestPlayerService_Create_ZeroPointsAllowed(t *testing.T) {
	ctx := context.Background()
	m := newTestMocks()
	m.expectTransaction(ctx, true)
	m.allowEvents()

	m.players.On("GetByID", ctx, "alice").Return(nil, nil)
	m.players.On("Create", ctx, "alice", depositMatcher(0)).Return(newPlayer("alice", 0), nil)

	_, err := NewPlayerService(m.factory).Create(ctx, "alice", pts(0))

	require.NoError(t, err)
	m.assertExpectations(t)
}

func TestPlayerService_Create_Duplicate(t *testing.T) {
	ctx := context.Background()

	t.Run("existing player", func(t *testing.T) {
		m := newTestMocks()
		m.expectTransaction(ctx, false)
		m.players.On("GetByID", ctx, "alice").Return(newPlayer("alice", 1), nil)

		_, err := NewPlayerService(m.factory).Create(ctx, "alice", pts(10))

		assertDomainError(t, err, ErrorKindConflict, http.StatusConflict, MsgPlayerExists)
		m.assertExpectations(t)
	})

	t.Run("unique violation", func(t *testing.T) {
		m := newTestMocks()
		m.expectTransaction(ctx, false)
		m.players.On("GetByID", ctx, "alice").Return(nil, nil)
		m.players.On("Create", ctx, "alice", depositMatcher(10)).Return(nil, ErrDuplicateKey)

		_, err := NewPlayerService(m.factory).Create(ctx, "alice", pts(10))

		assertDomainError(t, err, ErrorKindConflict, http.StatusConflict, MsgPlayerExists)
		m.assertExpectations(t)
	})
}

func TestPlayerService_Create_InvalidInput(t *testing.T) {
	m := newTestMocks()
	service := NewPlayerService(m.factory)

	_, err := service.Create(context.Background(), "", pts(10))
	assertDomainError(t, err, ErrorKindValidation, http.StatusUnprocessableEntity, MsgInvalidInput)

	_, err = service.Create(context.Background(), "alice", pts(-1))
	assertDomainError(t, err, ErrorKindValidation, http.StatusUnprocessableEntity, MsgInvalidInput)

	m.factory.AssertNotCalled(t, "Create")
}

func TestPlayerService_Fund_CreatesMissingPlayer(t *testing.T) {
	ctx := context.Background()
	m := newTestMocks()
	m.expectTransaction(ctx, true)
	m.allowEvents()

	m.players.On("GetByID", ctx, "alice").Return(nil, nil)
	m.players.On("Create", ctx, "alice", depositMatcher(300)).Return(newPlayer("alice", 300), nil)

	player, err := NewPlayerService(m.factory).Fund(ctx, "alice", pts(300))

	require.NoError(t, err)
	assertPoints(t, 300, player.Points)
	m.assertExpectations(t)
}

func TestPlayerService_FundThenTakeRoundTrip(t *testing.T) {
	ctx := context.Background()
	m := newTestMocks()
	m.uow.On("Begin", ctx).Return(nil)
	m.uow.On("Commit").Return(nil)
	m.uow.On("Rollback").Return(nil)
	m.allowEvents()

	alice := newPlayer("alice", 1000)
	m.players.On("GetByID", ctx, "alice").Return(alice, nil)
	m.players.On("UpdatePoints", ctx, alice).Return(nil)
	m.wagers.On("GetOpenByParticipant", ctx, "alice").Return([]*models.Wager{}, nil)

	service := NewPlayerService(m.factory)

	funded, err := service.Fund(ctx, "alice", pts(250))
	require.NoError(t, err)
	assertPoints(t, 1250, funded.Points)

	taken, err := service.Take(ctx, "alice", pts(250))
	require.NoError(t, err)
	assertPoints(t, 1000, taken.Points)

	m.players.AssertNumberOfCalls(t, "UpdatePoints", 2)
	m.assertExpectations(t)
}

func TestPlayerService_Take_LimitedByAvailablePoints(t *testing.T) {
	ctx := context.Background()
	m := newTestMocks()
	m.expectTransaction(ctx, false)

	m.players.On("GetByID", ctx, "alice").Return(newPlayer("alice", 1000), nil)
	m.wagers.On("GetOpenByParticipant", ctx, "alice").Return([]*models.Wager{
		newWager(1, "t1", "alice", 700),
	}, nil)

	_, err := NewPlayerService(m.factory).Take(ctx, "alice", pts(500))

	assertDomainError(t, err, ErrorKindInsufficientFunds, http.StatusBadRequest,
		"Not enough points to take. Player with ID alice has only 300")
	m.players.AssertNotCalled(t, "UpdatePoints", mock.Anything, mock.Anything)
	m.assertExpectations(t)
}

func TestPlayerService_Take_NotFound(t *testing.T) {
	ctx := context.Background()
	m := newTestMocks()
	m.expectTransaction(ctx, false)
	m.players.On("GetByID", ctx, "ghost").Return(nil, nil)

	_, err := NewPlayerService(m.factory).Take(ctx, "ghost", pts(1))

	assertDomainError(t, err, ErrorKindNotFound, http.StatusNotFound, MsgNoSuchPlayer)
	m.assertExpectations(t)
}

func TestPlayerService_Take_InvalidAmount(t *testing.T) {
	m := newTestMocks()

	_, err := NewPlayerService(m.factory).Take(context.Background(), "alice", pts(0))

	assertDomainError(t, err, ErrorKindValidation, http.StatusUnprocessableEntity, MsgInvalidInput)
}

func TestPlayerService_Balance(t *testing.T) {
	ctx := context.Background()

	t.Run("subtracts booked points", func(t *testing.T) {
		m := newTestMocks()
		m.expectTransaction(ctx, false)
		m.players.On("GetByID", ctx, "carol").Return(newPlayer("carol", 500), nil)
		m.wagers.On("GetOpenByParticipant", ctx, "carol").Return([]*models.Wager{
			newWager(2, "t1", "bob", 600, stake("carol", 200), stake("dave", 200)),
		}, nil)

		balance, err := NewPlayerService(m.factory).Balance(ctx, "carol")

		require.NoError(t, err)
		assert.Equal(t, "carol", balance.PlayerID)
		assertPoints(t, 300, balance.Points)
		m.assertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		m := newTestMocks()
		m.expectTransaction(ctx, false)
		m.players.On("GetByID", ctx, "ghost").Return(nil, nil)

		_, err := NewPlayerService(m.factory).Balance(ctx, "ghost")

		assertDomainError(t, err, ErrorKindNotFound, http.StatusNotFound, MsgNoPlayerWithID)
	})

	t.Run("missing id", func(t *testing.T) {
		m := newTestMocks()

		_, err := NewPlayerService(m.factory).Balance(ctx, "")

		assertDomainError(t, err, ErrorKindValidation, http.StatusUnprocessableEntity, MsgInvalidInput)
	})
}

func TestPlayerService_List(t *testing.T) {
	ctx := context.Background()
	m := newTestMocks()
	m.expectTransaction(ctx, false)

	players := []*models.Player{newPlayer("alice", 1), newPlayer("bob", 2)}
	m.players.On("GetAll", ctx).Return(players, nil)

	result, err := NewPlayerService(m.factory).List(ctx)

	require.NoError(t, err)
	assert.Equal(t, players, result)
	m.assertExpectations(t)
}
