package datastore

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"

	"github.com/aniketlavasare/token-hunt/internal/interfaces"
	"github.com/aniketlavasare/token-hunt/internal/models"
)

// Store is the postgres-backed hunt/reward store. It adapts the package
// funcs to the interfaces the services consume so a different backend can
// be swapped in without touching spawn or claim logic.
type Store struct {
	db *bun.DB
}

var _ interfaces.HuntStore = (*Store)(nil)
var _ interfaces.RewardStore = (*Store)(nil)

func NewStore(db *bun.DB) *Store {
	return &Store{db}
}

func (s *Store) ListHunts(ctx context.Context) ([]*models.Hunt, error) {
	hunts, err := ListHunts(ctx, s.db)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return hunts, err
}

func (s *Store) GetHunt(ctx context.Context, huntID string) (*models.Hunt, error) {
	hunt, err := GetHunt(ctx, s.db, huntID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, interfaces.ErrHuntNotFound
	}
	return hunt, err
}

func (s *Store) CreateHunt(ctx context.Context, hunt *models.Hunt) error {
	return InsertHunt(ctx, s.db, hunt)
}

func (s *Store) IncrementClaimedCount(ctx context.Context, huntID string) error {
	return IncrementClaimedCount(ctx, s.db, huntID)
}

func (s *Store) DeleteAllHunts(ctx context.Context) (int, int, error) {
	return DeleteAllHunts(ctx, s.db)
}

func (s *Store) ListRewards(ctx context.Context) ([]*models.Reward, error) {
	rewards, err := ListRewards(ctx, s.db)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return rewards, err
}

func (s *Store) GetReward(ctx context.Context, rewardID string) (*models.Reward, error) {
	reward, err := GetReward(ctx, s.db, rewardID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, interfaces.ErrRewardNotFound
	}
	return reward, err
}

func (s *Store) InsertRewardsBatch(ctx context.Context, rewards []*models.Reward) error {
	return InsertRewardsBatch(ctx, s.db, rewards)
}

func (s *Store) SetRewardClaimed(ctx context.Context, rewardID string) (*models.Reward, error) {
	reward, n, err := SetRewardClaimed(ctx, s.db, rewardID)
	if err != nil {
		return nil, err
	}

	if n == 0 {
		// Nothing matched: the reward is gone or someone else won the race.
		_, err := GetReward(ctx, s.db, rewardID)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, interfaces.ErrRewardNotFound
		}
		if err != nil {
			return nil, err
		}
		return nil, interfaces.ErrRewardAlreadyClaimed
	}

	return reward, nil
}

func (s *Store) DeleteAllRewards(ctx context.Context) error {
	return DeleteAllRewards(ctx, s.db)
}
