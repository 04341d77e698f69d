package service

import (
	"context"
	"errors"
	"time"

	"questledger/internal/model"

	"github.com/ethereum/go-ethereum/common"
)

var (
	ErrUnauthorized     = errors.New("caller does not hold the required role")
	ErrNotFound         = errors.New("quest not found")
	ErrQuestUnavailable = errors.New("quest is inactive or past its end date")
	ErrInvalidUser      = errors.New("invalid user address")
	ErrInvalidQuest     = errors.New("quest requirements must not be empty")
	ErrInvalidSchedule  = errors.New("quest end date must be in the future")
	ErrAlreadyCompleted = errors.New("quest already completed for this user")
	ErrCooldownActive   = errors.New("claim cooldown has not elapsed")
)

const (
	RoleOwner   = "owner"
	RoleBackend = "backend"
)

// MinCooldown is the lower bound for the daily claim cooldown.
const MinCooldown = time.Hour

type Service struct {
	*QuestService
	*DailyClaimService
	*UserService
	*AdminService
}

func NewService(qs *QuestService, dcs *DailyClaimService, us *UserService, as *AdminService) *Service {
	return &Service{
		QuestService:      qs,
		DailyClaimService: dcs,
		UserService:       us,
		AdminService:      as,
	}
}

// RoleVerifier answers whether a caller holds a role. The ledger trusts its
// verdict and does not re-derive it.
type RoleVerifier interface {
	HasRole(caller string, role string) bool
}

// OwnerRegistry extends RoleVerifier with ownership transfer. The backend
// authority is fixed at construction and has no setter.
type OwnerRegistry interface {
	RoleVerifier
	SetOwner(address string) error
}

type EventPublisher interface {
	Publish(event model.Event)
}

type QuestServiceI interface {
	CreateQuest(ctx context.Context, caller string, quest *model.Quest) (int64, error)
	CompleteQuestForUser(ctx context.Context, caller string, userAddress string, questID int64) (int64, error)
	SetQuestActive(ctx context.Context, caller string, questID int64, active bool) error
	GetQuest(ctx context.Context, questID int64) (*model.Quest, error)
	GetAllQuests(ctx context.Context) ([]*model.Quest, error)
}

type QuestRepository interface {
	CreateQuest(ctx context.Context, quest *model.Quest) (int64, error)
	GetQuest(ctx context.Context, questID int64) (*model.Quest, error)
	ListQuests(ctx context.Context) ([]*model.Quest, error)
	SetQuestActive(ctx context.Context, questID int64, active bool) error
	CompleteQuest(ctx context.Context, userAddress string, questID int64, completedAt time.Time) error
	GetCompletedQuestIDs(ctx context.Context, userAddress string) ([]int64, error)
	GetCompletionCount(ctx context.Context, userAddress string) (int, error)
}

type DailyClaimServiceI interface {
	SetDailyClaimed(ctx context.Context, caller string, userAddress string) (int64, error)
	DailyAmount() int64
}

type DailyClaimRepository interface {
	GetDailyClaim(ctx context.Context, userAddress string) (*model.DailyClaim, error)
	SetDailyClaimed(ctx context.Context, userAddress string, claimedAt time.Time, cooldown time.Duration) error
}

type UserServiceI interface {
	GetUserDetails(ctx context.Context, userAddress string) (*model.UserDetails, error)
}

type AdminServiceI interface {
	TransferOwnership(caller string, newOwner string) error
}

// ValidUserAddress reports whether addr is a well-formed, non-zero hex
// address.
func ValidUserAddress(addr string) bool {
	if !common.IsHexAddress(addr) {
		return false
	}
	return common.HexToAddress(addr) != (common.Address{})
}

// NormalizeAddress returns the checksummed form so stored records never
// split on hex casing.
func NormalizeAddress(addr string) string {
	return common.HexToAddress(addr).Hex()
}
