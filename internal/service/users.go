package service

import (
	"context"
	"fmt"
	"time"

	"questledger/internal/model"
)

type UserService struct {
	quests   QuestRepository
	claims   DailyClaimRepository
	cooldown time.Duration
	now      func() time.Time
}

func NewUserService(quests QuestRepository, claims DailyClaimRepository, cooldown time.Duration) *UserService {
	if cooldown < MinCooldown {
		cooldown = MinCooldown
	}

	return &UserService{
		quests:   quests,
		claims:   claims,
		cooldown: cooldown,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// GetUserDetails is a pure read. Unknown users get the all-default zero
// state, never an error.
func (s *UserService) GetUserDetails(ctx context.Context, userAddress string) (*model.UserDetails, error) {
	completedIDs, err := s.quests.GetCompletedQuestIDs(ctx, userAddress)
	if err != nil {
		return nil, fmt.Errorf("failed to get completed quests: %w", err)
	}

	totalCompleted, err := s.quests.GetCompletionCount(ctx, userAddress)
	if err != nil {
		return nil, fmt.Errorf("failed to get completion count: %w", err)
	}

	claim, err := s.claims.GetDailyClaim(ctx, userAddress)
	if err != nil {
		return nil, fmt.Errorf("failed to get daily claim: %w", err)
	}

	details := &model.UserDetails{
		Address:              userAddress,
		CompletedQuestIDs:    completedIDs,
		TotalQuestsCompleted: totalCompleted,
		LastClaimTime:        claim.LastClaimTime,
	}

	if claim.LastClaimTime == nil {
		details.CanClaimDaily = true
		return details, nil
	}

	elapsed := s.now().Sub(*claim.LastClaimTime)
	if elapsed >= s.cooldown {
		details.CanClaimDaily = true
	} else {
		details.TimeUntilNextClaim = s.cooldown - elapsed
	}

	return details, nil
}
