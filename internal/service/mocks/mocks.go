package mocks

import (
	"context"
	"time"

	"questledger/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockQuestRepository struct {
	mock.Mock
}

func (m *MockQuestRepository) CreateQuest(ctx context.Context, quest *model.Quest) (int64, error) {
	args := m.Called(ctx, quest)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockQuestRepository) GetQuest(ctx context.Context, questID int64) (*model.Quest, error) {
	args := m.Called(ctx, questID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Quest), args.Error(1)
}

func (m *MockQuestRepository) ListQuests(ctx context.Context) ([]*model.Quest, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Quest), args.Error(1)
}

func (m *MockQuestRepository) SetQuestActive(ctx context.Context, questID int64, active bool) error {
	args := m.Called(ctx, questID, active)
	return args.Error(0)
}

func (m *MockQuestRepository) CompleteQuest(ctx context.Context, userAddress string, questID int64, completedAt time.Time) error {
	args := m.Called(ctx, userAddress, questID, completedAt)
	return args.Error(0)
}

func (m *MockQuestRepository) GetCompletedQuestIDs(ctx context.Context, userAddress string) ([]int64, error) {
	args := m.Called(ctx, userAddress)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockQuestRepository) GetCompletionCount(ctx context.Context, userAddress string) (int, error) {
	args := m.Called(ctx, userAddress)
	return args.Int(0), args.Error(1)
}

type MockDailyClaimRepository struct {
	mock.Mock
}

func (m *MockDailyClaimRepository) GetDailyClaim(ctx context.Context, userAddress string) (*model.DailyClaim, error) {
	args := m.Called(ctx, userAddress)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DailyClaim), args.Error(1)
}

func (m *MockDailyClaimRepository) SetDailyClaimed(ctx context.Context, userAddress string, claimedAt time.Time, cooldown time.Duration) error {
	args := m.Called(ctx, userAddress, claimedAt, cooldown)
	return args.Error(0)
}
