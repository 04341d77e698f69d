package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"questledger/internal/model"
	"questledger/internal/repository"
)

type QuestService struct {
	repo   QuestRepository
	roles  RoleVerifier
	events EventPublisher
	now    func() time.Time
}

func NewQuestService(repo QuestRepository, roles RoleVerifier, events EventPublisher) *QuestService {
	return &QuestService{
		repo:   repo,
		roles:  roles,
		events: events,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *QuestService) CreateQuest(ctx context.Context, caller string, quest *model.Quest) (int64, error) {
	if !s.roles.HasRole(caller, RoleOwner) {
		return 0, ErrUnauthorized
	}

	now := s.now()
	if !quest.EndDate.After(now) {
		return 0, ErrInvalidSchedule
	}
	if len(quest.Requirements) == 0 || quest.Reward < 0 || quest.EstimatedTimeMinutes < 0 {
		return 0, ErrInvalidQuest
	}

	quest.IsActive = true
	quest.CreatedAt = now

	id, err := s.repo.CreateQuest(ctx, quest)
	if err != nil {
		return 0, fmt.Errorf("failed to create quest: %w", err)
	}

	s.events.Publish(model.NewEvent(model.EventQuestCreated, model.QuestCreatedData{
		QuestID: id,
		Title:   quest.Title,
		Reward:  quest.Reward,
		EndDate: quest.EndDate,
	}))

	return id, nil
}

// CompleteQuestForUser flips the one-way completed flag for (user, quest) and
// returns the quest reward in smallest units. Reward distribution itself is
// the caller's responsibility, sequenced strictly after success.
func (s *QuestService) CompleteQuestForUser(ctx context.Context, caller string, userAddress string, questID int64) (int64, error) {
	if !s.roles.HasRole(caller, RoleOwner) && !s.roles.HasRole(caller, RoleBackend) {
		return 0, ErrUnauthorized
	}

	quest, err := s.repo.GetQuest(ctx, questID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("failed to get quest: %w", err)
	}

	now := s.now()
	if !quest.IsActive || now.After(quest.EndDate) {
		return 0, ErrQuestUnavailable
	}

	if !ValidUserAddress(userAddress) {
		return 0, ErrInvalidUser
	}
	userAddress = NormalizeAddress(userAddress)

	err = s.repo.CompleteQuest(ctx, userAddress, questID, now)
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyCompleted) {
			return 0, ErrAlreadyCompleted
		}
		return 0, fmt.Errorf("failed to complete quest: %w", err)
	}

	s.events.Publish(model.NewEvent(model.EventQuestCompleted, model.QuestCompletedData{
		UserAddress: userAddress,
		QuestID:     questID,
	}))

	return quest.Reward, nil
}

func (s *QuestService) SetQuestActive(ctx context.Context, caller string, questID int64, active bool) error {
	if !s.roles.HasRole(caller, RoleOwner) {
		return ErrUnauthorized
	}

	err := s.repo.SetQuestActive(ctx, questID, active)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to update quest: %w", err)
	}

	return nil
}

func (s *QuestService) GetQuest(ctx context.Context, questID int64) (*model.Quest, error) {
	quest, err := s.repo.GetQuest(ctx, questID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get quest: %w", err)
	}

	return quest, nil
}

func (s *QuestService) GetAllQuests(ctx context.Context) ([]*model.Quest, error) {
	quests, err := s.repo.ListQuests(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list quests: %w", err)
	}

	return quests, nil
}
