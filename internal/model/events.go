package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventQuestCreated   = "quest_created"
	EventQuestCompleted = "quest_completed"
	EventDailyClaimed   = "daily_claimed"
)

type Event struct {
	ID   uuid.UUID   `json:"id"`
	Type string      `json:"type"`
	At   time.Time   `json:"at"`
	Data interface{} `json:"data,omitempty"`
}

type QuestCreatedData struct {
	QuestID int64     `json:"quest_id"`
	Title   string    `json:"title"`
	Reward  int64     `json:"reward"`
	EndDate time.Time `json:"end_date"`
}

type QuestCompletedData struct {
	UserAddress string `json:"user_address"`
	QuestID     int64  `json:"quest_id"`
}

type DailyClaimedData struct {
	UserAddress string `json:"user_address"`
	Amount      int64  `json:"amount"`
}

func NewEvent(eventType string, data interface{}) Event {
	return Event{
		ID:   uuid.New(),
		Type: eventType,
		At:   time.Now().UTC(),
		Data: data,
	}
}
