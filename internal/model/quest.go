package model

import "time"

type Quest struct {
	ID                   int64
	Title                string
	Description          string
	Reward               int64
	Requirements         []string
	EstimatedTimeMinutes int
	IsActive             bool
	CreatedAt            time.Time
	EndDate              time.Time
}

type UserQuestProgress struct {
	UserAddress string
	QuestID     int64
	Completed   bool
	CompletedAt *time.Time
}

type UserDetails struct {
	Address              string
	CompletedQuestIDs    []int64
	TotalQuestsCompleted int
	LastClaimTime        *time.Time
	CanClaimDaily        bool
	TimeUntilNextClaim   time.Duration
}
