package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/hiendaovinh/toolkit/pkg/errorx"

	"github.com/aniketlavasare/token-hunt/internal/interfaces"
	"github.com/aniketlavasare/token-hunt/internal/models"
	"github.com/aniketlavasare/token-hunt/internal/pkg/geo"
)

func validateHuntForSpawn(hunt *models.Hunt) error {
	if hunt.HuntID == "" {
		return errorx.Wrap(errors.New("hunt id is required"), errorx.Validation)
	}
	if hunt.RadiusMeters <= 0 {
		return errorx.Wrap(fmt.Errorf("hunt %s: radius must be positive", hunt.HuntID), errorx.Validation)
	}
	if hunt.RewardAmount <= 0 {
		return errorx.Wrap(fmt.Errorf("hunt %s: reward amount must be positive", hunt.HuntID), errorx.Validation)
	}
	if hunt.MaxClaims <= 0 {
		return errorx.Wrap(fmt.Errorf("hunt %s: max claims must be positive", hunt.HuntID), errorx.Validation)
	}
	return nil
}

// SpawnRewardsForHunt partitions a hunt's pool into located reward units.
// Unit count is max_claims clamped to MAX_CLAIMS_CAP; each unit gets an
// equal share of the pool and a point sampled uniformly over the hunt disc.
// The stored max_claims is left alone when clamping, so declared capacity
// and spawned-unit count may diverge.
func SpawnRewardsForHunt(rnd *rand.Rand, hunt *models.Hunt, now time.Time) ([]*models.Reward, error) {
	if err := validateHuntForSpawn(hunt); err != nil {
		return nil, err
	}

	unitCount := hunt.MaxClaims
	if unitCount > MAX_CLAIMS_CAP {
		unitCount = MAX_CLAIMS_CAP
	}

	perUnit := hunt.RewardAmount / float64(unitCount)

	rewards := make([]*models.Reward, 0, unitCount)
	for i := 0; i < unitCount; i++ {
		point := geo.SamplePointInDisc(rnd, hunt.Lat, hunt.Lng, float64(hunt.RadiusMeters))
		rewards = append(rewards, &models.Reward{
			RewardID:  uuid.NewString(),
			HuntID:    hunt.HuntID,
			Lat:       point.Lat,
			Lng:       point.Lng,
			Amount:    perUnit,
			Claimed:   false,
			CreatedAt: now,
		})
	}

	return rewards, nil
}

// spawnMissingRewards is the idempotency core of spawning: the presence of
// any reward row for a hunt means "already spawned", so only absent hunts
// get a batch. Returns how many units were written.
func spawnMissingRewards(ctx context.Context, hunts []*models.Hunt, rewardStore interfaces.RewardStore, rnd *rand.Rand, now time.Time) (int, error) {
	existing, err := rewardStore.ListRewards(ctx)
	if err != nil {
		return 0, errorx.Wrap(err, errorx.Service)
	}

	spawned := map[string]bool{}
	for _, r := range existing {
		spawned[r.HuntID] = true
	}

	var batch []*models.Reward
	for _, hunt := range hunts {
		if spawned[hunt.HuntID] {
			continue
		}

		rewards, err := SpawnRewardsForHunt(rnd, hunt, now)
		if err != nil {
			return 0, err
		}
		batch = append(batch, rewards...)
	}

	if len(batch) == 0 {
		return 0, nil
	}

	if err := rewardStore.InsertRewardsBatch(ctx, batch); err != nil {
		return 0, errorx.Wrap(err, errorx.Service)
	}

	return len(batch), nil
}
