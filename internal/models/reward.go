package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Reward is a single claimable unit of a hunt's pool, pinned to a point
// sampled inside the hunt's disc. Claimed only ever flips false -> true.
type Reward struct {
	bun.BaseModel `bun:"table:reward"`
	RewardID      string    `bun:"reward_id,pk" json:"reward_id"`
	HuntID        string    `bun:"hunt_id" json:"hunt_id"`
	Lat           float64   `bun:"lat" json:"lat"`
	Lng           float64   `bun:"lng" json:"lng"`
	Amount        float64   `bun:"amount" json:"amount"`
	Claimed       bool      `bun:"claimed,default:false" json:"claimed"`
	CreatedAt     time.Time `bun:"created_at,default:current_timestamp" json:"created_at"`
}
