package service

import (
	"context"

	"ladder/events"
	"ladder/models"

	"github.com/stretchr/testify/mock"
)

// MockRankingRepository is a mock implementation of RankingRepository
type MockRankingRepository struct {
	mock.Mock
}

func (m *MockRankingRepository) GetByIdentity(ctx context.Context, identity string) (*models.PlayerRanking, error) {
	args := m.Called(ctx, identity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PlayerRanking), args.Error(1)
}

func (m *MockRankingRepository) GetForUpdate(ctx context.Context, identities ...string) ([]*models.PlayerRanking, error) {
	args := m.Called(ctx, identities)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.PlayerRanking), args.Error(1)
}

func (m *MockRankingRepository) ListOrderedByRank(ctx context.Context) ([]*models.PlayerRanking, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.PlayerRanking), args.Error(1)
}

func (m *MockRankingRepository) ListIdentities(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockRankingRepository) Create(ctx context.Context, identity, displayName string) (*models.PlayerRanking, error) {
	args := m.Called(ctx, identity, displayName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PlayerRanking), args.Error(1)
}

func (m *MockRankingRepository) UpdateDisplayName(ctx context.Context, identity, displayName string) error {
	args := m.Called(ctx, identity, displayName)
	return args.Error(0)
}

func (m *MockRankingRepository) Put(ctx context.Context, rankings ...*models.PlayerRanking) error {
	args := m.Called(ctx, rankings)
	return args.Error(0)
}

// MockHistoryRepository is a mock implementation of HistoryRepository
type MockHistoryRepository struct {
	mock.Mock
}

func (m *MockHistoryRepository) Append(ctx context.Context, entry *models.MatchHistoryEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockHistoryRepository) ListChronological(ctx context.Context) ([]*models.MatchHistoryEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.MatchHistoryEntry), args.Error(1)
}

func (m *MockHistoryRepository) ListRecent(ctx context.Context, limit int) ([]*models.MatchHistoryEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.MatchHistoryEntry), args.Error(1)
}

// MockEventPublisher is a mock implementation of EventPublisher for testing
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event events.Event) {
	m.Called(event)
}

// MockUnitOfWork is a mock implementation of UnitOfWork. Repositories are
// wired with SetRepositories rather than through expectations.
type MockUnitOfWork struct {
	mock.Mock
	rankingRepo RankingRepository
	historyRepo HistoryRepository
	eventBus    EventPublisher
}

// SetRepositories wires the repositories returned by the getters
func (m *MockUnitOfWork) SetRepositories(rankingRepo RankingRepository, historyRepo HistoryRepository, eventBus EventPublisher) {
	m.rankingRepo = rankingRepo
	m.historyRepo = historyRepo
	m.eventBus = eventBus
}

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) RankingRepository() RankingRepository {
	return m.rankingRepo
}

func (m *MockUnitOfWork) HistoryRepository() HistoryRepository {
	return m.historyRepo
}

func (m *MockUnitOfWork) EventBus() EventPublisher {
	return m.eventBus
}

// MockUnitOfWorkFactory is a mock implementation of UnitOfWorkFactory
type MockUnitOfWorkFactory struct {
	mock.Mock
}

func (m *MockUnitOfWorkFactory) Create() UnitOfWork {
	args := m.Called()
	return args.Get(0).(UnitOfWork)
}
