package model

import "time"

type DailyClaim struct {
	UserAddress   string
	LastClaimTime *time.Time
	Claimed       bool
}
