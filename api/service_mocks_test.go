package api

import (
	"context"

	"tourney/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type mockPlayerService struct {
	mock.Mock
}

func (m *mockPlayerService) Create(ctx context.Context, playerID string, points decimal.Decimal) (*models.Player, error) {
	args := m.Called(ctx, playerID, points)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Player), args.Error(1)
}

func (m *mockPlayerService) Fund(ctx context.Context, playerID string, points decimal.Decimal) (*models.Player, error) {
	args := m.Called(ctx, playerID, points)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Player), args.Error(1)
}

func (m *mockPlayerService) Take(ctx context.Context, playerID string, points decimal.Decimal) (*models.Player, error) {
	args := m.Called(ctx, playerID, points)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Player), args.Error(1)
}

func (m *mockPlayerService) Balance(ctx context.Context, playerID string) (*models.PlayerBalance, error) {
	args := m.Called(ctx, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PlayerBalance), args.Error(1)
}

func (m *mockPlayerService) List(ctx context.Context) ([]*models.Player, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Player), args.Error(1)
}

type mockWagerService struct {
	mock.Mock
}

func (m *mockWagerService) Join(ctx context.Context, tournamentID, playerID string, backerIDs []string) (*models.Wager, error) {
	args := m.Called(ctx, tournamentID, playerID, backerIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Wager), args.Error(1)
}

type mockTournamentService struct {
	mock.Mock
}

func (m *mockTournamentService) Announce(ctx context.Context, tournamentID string, deposit decimal.Decimal) (*models.Tournament, error) {
	args := m.Called(ctx, tournamentID, deposit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tournament), args.Error(1)
}

func (m *mockTournamentService) Cancel(ctx context.Context, tournamentID string) (*models.Tournament, error) {
	args := m.Called(ctx, tournamentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tournament), args.Error(1)
}

func (m *mockTournamentService) GetAll(ctx context.Context) ([]*models.TournamentResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.TournamentResult), args.Error(1)
}

func (m *mockTournamentService) GetResults(ctx context.Context, tournamentID string) (*models.TournamentResult, error) {
	args := m.Called(ctx, tournamentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TournamentResult), args.Error(1)
}

func (m *mockTournamentService) GetLatestFinished(ctx context.Context) ([]*models.TournamentResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.TournamentResult), args.Error(1)
}

type mockSettlementService struct {
	mock.Mock
}

func (m *mockSettlementService) Close(ctx context.Context, tournamentID string) (*models.SettlementResult, error) {
	args := m.Called(ctx, tournamentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SettlementResult), args.Error(1)
}
