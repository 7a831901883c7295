package service

import (
	"context"
	"net/http"
	"testing"

	"tourney/events"
	"tourney/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func depositMatcher(expected int64) interface{} {
	return mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(pts(expected)) })
}

func TestTournamentService_Announce(t *testing.T) {
	ctx := context.Background()
	m := newTestMocks()
	m.expectTransaction(ctx, true)

	created := openTournament("t1", 1000)
	m.tournaments.On("Create", ctx, "t1", depositMatcher(1000)).Return(created, nil)
	m.events.On("Publish", events.TournamentAnnouncedEvent{TournamentID: "t1", Deposit: created.Deposit}).Return()

	tournament, err := NewTournamentService(m.factory, 0).Announce(ctx, "t1", pts(1000))

	require.NoError(t, err)
	assert.Equal(t, created, tournament)
	m.assertExpectations(t)
}

func TestTournamentService_Announce_Duplicate(t *testing.T) {
	ctx := context.Background()
	m := newTestMocks()
	m.expectTransaction(ctx, false)

	m.tournaments.On("Create", ctx, "t1", depositMatcher(1000)).Return(nil, ErrDuplicateKey)

	_, err := NewTournamentService(m.factory, 0).Announce(ctx, "t1", pts(1000))

	assertDomainError(t, err, ErrorKindConflict, http.StatusConflict, MsgTournamentExists)
	m.uow.AssertNotCalled(t, "Commit")
	m.assertExpectations(t)
}

func TestTournamentService_Announce_InvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		deposit decimal.Decimal
	}{
		{"missing id", "", pts(100)},
		{"zero deposit", "t1", pts(0)},
		{"negative deposit", "t1", pts(-5)},
		{"fractional deposit", "t1", decimal.RequireFromString("10.5")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMocks()

			_, err := NewTournamentService(m.factory, 0).Announce(context.Background(), tt.id, tt.deposit)

			assertDomainError(t, err, ErrorKindValidation, http.StatusUnprocessableEntity, MsgInvalidInput)
			m.factory.AssertNotCalled(t, "Create")
		})
	}
}

func TestTournamentService_Cancel(t *testing.T) {
	ctx := context.Background()
	m := newTestMocks()
	m.expectTransaction(ctx, true)

	canceled := openTournament("t1", 100)
	canceled.Status = models.TournamentStatusCanceled
	m.tournaments.On("TransitionStatus", ctx, "t1", models.TournamentStatusOpened, models.TournamentStatusCanceled).Return(canceled, nil)
	m.events.On("Publish", events.TournamentCanceledEvent{TournamentID: "t1"}).Return()

	tournament, err := NewTournamentService(m.factory, 0).Cancel(ctx, "t1")

	require.NoError(t, err)
	assert.Equal(t, models.TournamentStatusCanceled, tournament.Status)
	m.assertExpectations(t)
}

func TestTournamentService_Cancel_NotOpened(t *testing.T) {
	ctx := context.Background()
	m := newTestMocks()
	m.expectTransaction(ctx, false)

	m.tournaments.On("TransitionStatus", ctx, "t1", models.TournamentStatusOpened, models.TournamentStatusCanceled).Return(nil, nil)

	_, err := NewTournamentService(m.factory, 0).Cancel(ctx, "t1")

	assertDomainError(t, err, ErrorKindNotFound, http.StatusBadRequest, MsgNoOpenedTournament)
	m.uow.AssertNotCalled(t, "Commit")
	m.assertExpectations(t)
}

func TestTournamentService_GetResults(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		m := newTestMocks()
		m.expectTransaction(ctx, false)

		tournament := openTournament("t1", 100)
		wagers := []*models.Wager{newWager(1, "t1", "alice", 100), newWager(2, "t1", "bob", 40, stake("carol", 60))}
		m.tournaments.On("GetByID", ctx, "t1").Return(tournament, nil)
		m.wagers.On("GetByTournament", ctx, "t1").Return(wagers, nil)

		result, err := NewTournamentService(m.factory, 0).GetResults(ctx, "t1")

		require.NoError(t, err)
		assert.Equal(t, tournament, result.Tournament)
		assert.Equal(t, wagers, result.Participants)
		m.assertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		m := newTestMocks()
		m.expectTransaction(ctx, false)
		m.tournaments.On("GetByID", ctx, "t9").Return(nil, nil)

		_, err := NewTournamentService(m.factory, 0).GetResults(ctx, "t9")

		assertDomainError(t, err, ErrorKindNotFound, http.StatusNotFound, MsgTournamentResultsNotFound)
	})

	t.Run("missing id", func(t *testing.T) {
		m := newTestMocks()

		_, err := NewTournamentService(m.factory, 0).GetResults(ctx, "")

		assertDomainError(t, err, ErrorKindValidation, http.StatusUnprocessableEntity, MsgMissingTournamentID)
	})
}

func TestTournamentService_GetLatestFinished(t *testing.T) {
	ctx := context.Background()
	m := newTestMocks()
	m.expectTransaction(ctx, false)

	first := finishedCopy(openTournament("t2", 100))
	second := finishedCopy(openTournament("t1", 50))
	m.tournaments.On("GetLatestFinished", ctx, DefaultResultsLimit).Return([]*models.Tournament{first, second}, nil)
	m.wagers.On("GetByTournaments", ctx, []string{"t2", "t1"}).Return(map[string][]*models.Wager{
		"t2": {newWager(1, "t2", "alice", 100), newWager(2, "t2", "bob", 100)},
	}, nil)

	results, err := NewTournamentService(m.factory, 0).GetLatestFinished(ctx)

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "t2", results[0].Tournament.ID)
	assert.Len(t, results[0].Participants, 2)
	assert.Equal(t, "t1", results[1].Tournament.ID)
	assert.NotNil(t, results[1].Participants)
	assert.Empty(t, results[1].Participants)
	m.assertExpectations(t)
}

func TestTournamentService_GetAll_Empty(t *testing.T) {
	ctx := context.Background()
	m := newTestMocks()
	m.expectTransaction(ctx, false)

	m.tournaments.On("GetAll", ctx).Return([]*models.Tournament{}, nil)

	results, err := NewTournamentService(m.factory, 3).GetAll(ctx)

	require.NoError(t, err)
	assert.Empty(t, results)
	m.wagers.AssertNotCalled(t, "GetByTournaments", mock.Anything, mock.Anything)
	m.assertExpectations(t)
}

func TestTournamentService_CustomResultsLimit(t *testing.T) {
	ctx := context.Background()
	m := newTestMocks()
	m.expectTransaction(ctx, false)

	m.tournaments.On("GetLatestFinished", ctx, 3).Return([]*models.Tournament{}, nil)

	_, err := NewTournamentService(m.factory, 3).GetLatestFinished(ctx)

	require.NoError(t, err)
	m.assertExpectations(t)
}
