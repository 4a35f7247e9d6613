package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Hunt struct {
	bun.BaseModel `bun:"table:hunt"`
	HuntID        string     `bun:"hunt_id,pk" json:"hunt_id"`
	Lat           float64    `bun:"lat" json:"lat"`
	Lng           float64    `bun:"lng" json:"lng"`
	RadiusMeters  int        `bun:"radius_meters" json:"radius_meters"`
	RewardToken   string     `bun:"reward_token" json:"reward_token"`
	RewardAmount  float64    `bun:"reward_amount" json:"reward_amount"`
	MaxClaims     int        `bun:"max_claims" json:"max_claims"`
	CampaignName  string     `bun:"campaign_name" json:"campaign_name"`
	Description   string     `bun:"description" json:"description,omitempty"`
	SponsorWallet string     `bun:"sponsor_wallet" json:"sponsor_wallet"`
	ClaimedCount  int        `bun:"claimed_count,default:0" json:"claimed_count"`
	CreatedAt     time.Time  `bun:"created_at,default:current_timestamp" json:"created_at"`
	StartTime     *time.Time `bun:"start_time" json:"start_time,omitempty"`
	EndTime       *time.Time `bun:"end_time" json:"end_time,omitempty"`
}

// Active reports whether the hunt still has unclaimed capacity.
func (h *Hunt) Active() bool {
	return h.ClaimedCount < h.MaxClaims
}
