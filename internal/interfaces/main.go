package interfaces

import (
	"context"
	"errors"

	"github.com/go-redis/redis_rate/v10"

	"github.com/aniketlavasare/token-hunt/internal/models"
)

type Limiter interface {
	Allow(ctx context.Context, key string, limit redis_rate.Limit) error
}

// Store contract errors. Backends return these so callers can map them to
// API results without knowing the storage technology.
var (
	ErrHuntNotFound         = errors.New("hunt not found")
	ErrRewardNotFound       = errors.New("reward not found")
	ErrRewardAlreadyClaimed = errors.New("reward already claimed")
)

type HuntStore interface {
	ListHunts(ctx context.Context) ([]*models.Hunt, error)
	GetHunt(ctx context.Context, huntID string) (*models.Hunt, error)
	CreateHunt(ctx context.Context, hunt *models.Hunt) error
	// IncrementClaimedCount bumps claimed_count by one after a successful claim.
	IncrementClaimedCount(ctx context.Context, huntID string) error
	// DeleteAllHunts removes every hunt and cascades to their rewards,
	// returning how many of each were removed.
	DeleteAllHunts(ctx context.Context) (deletedHunts int, deletedRewards int, err error)
}

type RewardStore interface {
	ListRewards(ctx context.Context) ([]*models.Reward, error)
	GetReward(ctx context.Context, rewardID string) (*models.Reward, error)
	// InsertRewardsBatch persists the batch in one operation. Rows whose
	// reward_id already exists are skipped, not overwritten.
	InsertRewardsBatch(ctx context.Context, rewards []*models.Reward) error
	// SetRewardClaimed conditionally flips claimed false -> true. It must be
	// atomic per reward_id: of N concurrent callers exactly one succeeds and
	// the rest get ErrRewardAlreadyClaimed.
	SetRewardClaimed(ctx context.Context, rewardID string) (*models.Reward, error)
	DeleteAllRewards(ctx context.Context) error
}
