package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"questledger/internal/model"
	"questledger/internal/repository"
)

type DailyClaimService struct {
	repo        DailyClaimRepository
	roles       RoleVerifier
	events      EventPublisher
	cooldown    time.Duration
	dailyAmount int64
	now         func() time.Time
}

func NewDailyClaimService(repo DailyClaimRepository, roles RoleVerifier, events EventPublisher, cooldown time.Duration, dailyAmount int64) *DailyClaimService {
	if cooldown < MinCooldown {
		cooldown = MinCooldown
	}

	return &DailyClaimService{
		repo:        repo,
		roles:       roles,
		events:      events,
		cooldown:    cooldown,
		dailyAmount: dailyAmount,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// SetDailyClaimed records a daily claim for the user and returns the amount
// to mint. A record with no prior claim time always passes the cooldown
// check.
func (s *DailyClaimService) SetDailyClaimed(ctx context.Context, caller string, userAddress string) (int64, error) {
	if !s.roles.HasRole(caller, RoleOwner) && !s.roles.HasRole(caller, RoleBackend) {
		return 0, ErrUnauthorized
	}

	if !ValidUserAddress(userAddress) {
		return 0, ErrInvalidUser
	}
	userAddress = NormalizeAddress(userAddress)

	claim, err := s.repo.GetDailyClaim(ctx, userAddress)
	if err != nil {
		return 0, fmt.Errorf("failed to get daily claim: %w", err)
	}

	now := s.now()
	if claim.LastClaimTime != nil && now.Sub(*claim.LastClaimTime) < s.cooldown {
		return 0, ErrCooldownActive
	}

	err = s.repo.SetDailyClaimed(ctx, userAddress, now, s.cooldown)
	if err != nil {
		if errors.Is(err, repository.ErrCooldownActive) {
			return 0, ErrCooldownActive
		}
		return 0, fmt.Errorf("failed to set daily claim: %w", err)
	}

	s.events.Publish(model.NewEvent(model.EventDailyClaimed, model.DailyClaimedData{
		UserAddress: userAddress,
		Amount:      s.dailyAmount,
	}))

	return s.dailyAmount, nil
}

func (s *DailyClaimService) DailyAmount() int64 {
	return s.dailyAmount
}
