package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"questledger/internal/model"
	"questledger/internal/repository"
	"questledger/internal/service/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newQuest(endDate time.Time, active bool) *model.Quest {
	return &model.Quest{
		ID:           1,
		Title:        "Swap on testnet",
		Description:  "Perform one token swap",
		Reward:       50,
		Requirements: []string{"connect wallet", "execute swap"},
		IsActive:     active,
		CreatedAt:    time.Now().UTC().Add(-time.Hour),
		EndDate:      endDate,
	}
}

func TestQuestService_CreateQuest(t *testing.T) {
	tests := []struct {
		name          string
		caller        string
		quest         *model.Quest
		mockSetup     func(repo *mocks.MockQuestRepository)
		expectedID    int64
		expectedError error
	}{
		{
			name:   "Caller is not the owner",
			caller: backendAddr,
			quest: &model.Quest{
				Title:        "q",
				Requirements: []string{"r"},
				EndDate:      time.Now().UTC().Add(24 * time.Hour),
			},
			expectedError: ErrUnauthorized,
		},
		{
			name:   "End date in the past",
			caller: ownerAddr,
			quest: &model.Quest{
				Title:        "q",
				Requirements: []string{"r"},
				EndDate:      time.Now().UTC().Add(-time.Minute),
			},
			expectedError: ErrInvalidSchedule,
		},
		{
			name:   "Empty requirements",
			caller: ownerAddr,
			quest: &model.Quest{
				Title:   "q",
				EndDate: time.Now().UTC().Add(24 * time.Hour),
			},
			expectedError: ErrInvalidQuest,
		},
		{
			name:   "Negative reward",
			caller: ownerAddr,
			quest: &model.Quest{
				Title:        "q",
				Reward:       -1,
				Requirements: []string{"r"},
				EndDate:      time.Now().UTC().Add(24 * time.Hour),
			},
			expectedError: ErrInvalidQuest,
		},
		{
			name:   "Successful creation",
			caller: ownerAddr,
			quest: &model.Quest{
				Title:        "Swap on testnet",
				Reward:       50,
				Requirements: []string{"connect wallet", "execute swap"},
				EndDate:      time.Now().UTC().Add(24 * time.Hour),
			},
			mockSetup: func(repo *mocks.MockQuestRepository) {
				repo.On("CreateQuest", mock.Anything, mock.MatchedBy(func(q *model.Quest) bool {
					return q.IsActive && !q.CreatedAt.IsZero() && q.EndDate.After(q.CreatedAt)
				})).Return(int64(1), nil)
			},
			expectedID: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mocks.MockQuestRepository{}
			events := &capturePublisher{}
			s := NewQuestService(repo, newFakeRoles(), events)

			if tt.mockSetup != nil {
				tt.mockSetup(repo)
			}

			id, err := s.CreateQuest(context.Background(), tt.caller, tt.quest)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				repo.AssertNotCalled(t, "CreateQuest", mock.Anything, mock.Anything)
				assert.Empty(t, events.byType(model.EventQuestCreated))
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.expectedID, id)

			created := events.byType(model.EventQuestCreated)
			assert.Len(t, created, 1)
			data := created[0].Data.(model.QuestCreatedData)
			assert.Equal(t, tt.expectedID, data.QuestID)
			assert.Equal(t, tt.quest.Reward, data.Reward)

			repo.AssertExpectations(t)
		})
	}
}

func TestQuestService_CreateQuest_SequentialIDs(t *testing.T) {
	repo := &mocks.MockQuestRepository{}
	events := &capturePublisher{}
	s := NewQuestService(repo, newFakeRoles(), events)

	for i := int64(1); i <= 5; i++ {
		repo.On("CreateQuest", mock.Anything, mock.Anything).Return(i, nil).Once()
	}

	var ids []int64
	for i := 0; i < 5; i++ {
		id, err := s.CreateQuest(context.Background(), ownerAddr, &model.Quest{
			Title:        "q",
			Requirements: []string{"r"},
			EndDate:      time.Now().UTC().Add(24 * time.Hour),
		})
		assert.NoError(t, err)
		ids = append(ids, id)
	}

	for i := 1; i < len(ids); i++ {
		assert.Equal(t, ids[i-1]+1, ids[i])
	}

	repo.AssertExpectations(t)
}

func TestQuestService_CompleteQuestForUser(t *testing.T) {
	futureEnd := time.Now().UTC().Add(24 * time.Hour)
	pastEnd := time.Now().UTC().Add(-time.Minute)

	tests := []struct {
		name           string
		caller         string
		userAddress    string
		mockSetup      func(repo *mocks.MockQuestRepository)
		expectedReward int64
		expectedError  error
	}{
		{
			name:          "Caller holds neither role",
			caller:        strangerAddr,
			userAddress:   userAddr,
			expectedError: ErrUnauthorized,
		},
		{
			name:        "Quest does not exist",
			caller:      backendAddr,
			userAddress: userAddr,
			mockSetup: func(repo *mocks.MockQuestRepository) {
				repo.On("GetQuest", mock.Anything, int64(1)).
					Return(nil, repository.ErrNotFound)
			},
			expectedError: ErrNotFound,
		},
		{
			name:        "Quest deactivated",
			caller:      backendAddr,
			userAddress: userAddr,
			mockSetup: func(repo *mocks.MockQuestRepository) {
				repo.On("GetQuest", mock.Anything, int64(1)).
					Return(newQuest(futureEnd, false), nil)
			},
			expectedError: ErrQuestUnavailable,
		},
		{
			name:        "Quest expired but still active",
			caller:      backendAddr,
			userAddress: userAddr,
			mockSetup: func(repo *mocks.MockQuestRepository) {
				repo.On("GetQuest", mock.Anything, int64(1)).
					Return(newQuest(pastEnd, true), nil)
			},
			expectedError: ErrQuestUnavailable,
		},
		{
			name:        "Malformed user address",
			caller:      backendAddr,
			userAddress: "not-an-address",
			mockSetup: func(repo *mocks.MockQuestRepository) {
				repo.On("GetQuest", mock.Anything, int64(1)).
					Return(newQuest(futureEnd, true), nil)
			},
			expectedError: ErrInvalidUser,
		},
		{
			name:        "Zero user address",
			caller:      backendAddr,
			userAddress: "0x0000000000000000000000000000000000000000",
			mockSetup: func(repo *mocks.MockQuestRepository) {
				repo.On("GetQuest", mock.Anything, int64(1)).
					Return(newQuest(futureEnd, true), nil)
			},
			expectedError: ErrInvalidUser,
		},
		{
			name:        "Already completed",
			caller:      backendAddr,
			userAddress: userAddr,
			mockSetup: func(repo *mocks.MockQuestRepository) {
				repo.On("GetQuest", mock.Anything, int64(1)).
					Return(newQuest(futureEnd, true), nil)
				repo.On("CompleteQuest", mock.Anything, userAddr, int64(1), mock.Anything).
					Return(repository.ErrAlreadyCompleted)
			},
			expectedError: ErrAlreadyCompleted,
		},
		{
			name:        "Successful completion by backend authority",
			caller:      backendAddr,
			userAddress: userAddr,
			mockSetup: func(repo *mocks.MockQuestRepository) {
				repo.On("GetQuest", mock.Anything, int64(1)).
					Return(newQuest(futureEnd, true), nil)
				repo.On("CompleteQuest", mock.Anything, userAddr, int64(1),
					mock.MatchedBy(func(at time.Time) bool {
						return time.Since(at) < 2*time.Second
					})).Return(nil)
			},
			expectedReward: 50,
		},
		{
			name:        "Successful completion by owner",
			caller:      ownerAddr,
			userAddress: userAddr,
			mockSetup: func(repo *mocks.MockQuestRepository) {
				repo.On("GetQuest", mock.Anything, int64(1)).
					Return(newQuest(futureEnd, true), nil)
				repo.On("CompleteQuest", mock.Anything, userAddr, int64(1), mock.Anything).
					Return(nil)
			},
			expectedReward: 50,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mocks.MockQuestRepository{}
			events := &capturePublisher{}
			s := NewQuestService(repo, newFakeRoles(), events)

			if tt.mockSetup != nil {
				tt.mockSetup(repo)
			}

			reward, err := s.CompleteQuestForUser(context.Background(), tt.caller, tt.userAddress, 1)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Empty(t, events.byType(model.EventQuestCompleted))
				if !errors.Is(tt.expectedError, ErrAlreadyCompleted) {
					repo.AssertNotCalled(t, "CompleteQuest", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
				}
				repo.AssertExpectations(t)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.expectedReward, reward)

			completed := events.byType(model.EventQuestCompleted)
			assert.Len(t, completed, 1)
			data := completed[0].Data.(model.QuestCompletedData)
			assert.Equal(t, userAddr, data.UserAddress)
			assert.Equal(t, int64(1), data.QuestID)

			repo.AssertExpectations(t)
		})
	}
}

func TestQuestService_CompletionLifecycle(t *testing.T) {
	repo := &mocks.MockQuestRepository{}
	events := &capturePublisher{}
	s := NewQuestService(repo, newFakeRoles(), events)

	activeQuest := newQuest(time.Now().UTC().Add(24*time.Hour), true)

	repo.On("GetQuest", mock.Anything, int64(1)).Return(activeQuest, nil).Twice()
	repo.On("CompleteQuest", mock.Anything, userAddr, int64(1), mock.Anything).
		Return(nil).Once()
	repo.On("CompleteQuest", mock.Anything, userAddr, int64(1), mock.Anything).
		Return(repository.ErrAlreadyCompleted).Once()

	reward, err := s.CompleteQuestForUser(context.Background(), backendAddr, userAddr, 1)
	assert.NoError(t, err)
	assert.Equal(t, int64(50), reward)

	_, err = s.CompleteQuestForUser(context.Background(), backendAddr, userAddr, 1)
	assert.ErrorIs(t, err, ErrAlreadyCompleted)

	// After the end date passes the quest is unavailable for everyone,
	// even though it is still marked active.
	expiredQuest := newQuest(time.Now().UTC().Add(-time.Second), true)
	repo.On("GetQuest", mock.Anything, int64(1)).Return(expiredQuest, nil).Once()

	_, err = s.CompleteQuestForUser(context.Background(), backendAddr, otherAddr, 1)
	assert.ErrorIs(t, err, ErrQuestUnavailable)

	assert.Len(t, events.byType(model.EventQuestCompleted), 1)
	repo.AssertExpectations(t)
}

func TestQuestService_EndDateBoundary(t *testing.T) {
	fixed := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Completion at the exact end date is still allowed", func(t *testing.T) {
		repo := &mocks.MockQuestRepository{}
		s := NewQuestService(repo, newFakeRoles(), &capturePublisher{})
		s.now = func() time.Time { return fixed }

		repo.On("GetQuest", mock.Anything, int64(1)).
			Return(newQuest(fixed, true), nil)
		repo.On("CompleteQuest", mock.Anything, userAddr, int64(1), fixed).
			Return(nil)

		reward, err := s.CompleteQuestForUser(context.Background(), backendAddr, userAddr, 1)
		assert.NoError(t, err)
		assert.Equal(t, int64(50), reward)
		repo.AssertExpectations(t)
	})

	t.Run("Completion one second past the end date is unavailable", func(t *testing.T) {
		repo := &mocks.MockQuestRepository{}
		s := NewQuestService(repo, newFakeRoles(), &capturePublisher{})
		s.now = func() time.Time { return fixed.Add(time.Second) }

		repo.On("GetQuest", mock.Anything, int64(1)).
			Return(newQuest(fixed, true), nil)

		_, err := s.CompleteQuestForUser(context.Background(), backendAddr, userAddr, 1)
		assert.ErrorIs(t, err, ErrQuestUnavailable)
		repo.AssertNotCalled(t, "CompleteQuest", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Quest ending right now cannot be created", func(t *testing.T) {
		repo := &mocks.MockQuestRepository{}
		s := NewQuestService(repo, newFakeRoles(), &capturePublisher{})
		s.now = func() time.Time { return fixed }

		_, err := s.CreateQuest(context.Background(), ownerAddr, newQuest(fixed, false))
		assert.ErrorIs(t, err, ErrInvalidSchedule)
		repo.AssertNotCalled(t, "CreateQuest", mock.Anything, mock.Anything)
	})
}

func TestQuestService_SetQuestActive(t *testing.T) {
	repo := &mocks.MockQuestRepository{}
	s := NewQuestService(repo, newFakeRoles(), &capturePublisher{})

	err := s.SetQuestActive(context.Background(), backendAddr, 1, false)
	assert.ErrorIs(t, err, ErrUnauthorized)

	repo.On("SetQuestActive", mock.Anything, int64(7), false).Return(repository.ErrNotFound).Once()
	err = s.SetQuestActive(context.Background(), ownerAddr, 7, false)
	assert.ErrorIs(t, err, ErrNotFound)

	repo.On("SetQuestActive", mock.Anything, int64(1), false).Return(nil).Once()
	err = s.SetQuestActive(context.Background(), ownerAddr, 1, false)
	assert.NoError(t, err)

	repo.AssertExpectations(t)
}

func TestQuestService_GetQuest(t *testing.T) {
	repo := &mocks.MockQuestRepository{}
	s := NewQuestService(repo, newFakeRoles(), &capturePublisher{})

	repo.On("GetQuest", mock.Anything, int64(42)).Return(nil, repository.ErrNotFound).Once()
	_, err := s.GetQuest(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)

	quest := newQuest(time.Now().UTC().Add(time.Hour), true)
	repo.On("GetQuest", mock.Anything, int64(1)).Return(quest, nil).Once()
	got, err := s.GetQuest(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, quest, got)

	repo.AssertExpectations(t)
}
