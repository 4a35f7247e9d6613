package services

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/go-redis/redis_rate/v10"
	"github.com/go-redsync/redsync/v4"
	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/limiter"
	"github.com/samber/do"

	"github.com/aniketlavasare/token-hunt/internal/interfaces"
	"github.com/aniketlavasare/token-hunt/internal/models"
	"github.com/aniketlavasare/token-hunt/internal/pkg/caching"
	"github.com/aniketlavasare/token-hunt/internal/pkg/geo"
)

type ServiceReward struct {
	container     *do.Injector
	rs            *redsync.Redsync
	huntStore     interfaces.HuntStore
	rewardStore   interfaces.RewardStore
	cache         caching.Cache
	readonlyCache caching.ReadOnlyCache
	limiter       interfaces.Limiter

	serviceConfig *ServiceConfig
}

func NewServiceReward(container *do.Injector) (*ServiceReward, error) {
	rs, err := do.Invoke[*redsync.Redsync](container)
	if err != nil {
		return nil, err
	}

	huntStore, err := do.Invoke[interfaces.HuntStore](container)
	if err != nil {
		return nil, err
	}

	rewardStore, err := do.Invoke[interfaces.RewardStore](container)
	if err != nil {
		return nil, err
	}

	cache, err := do.Invoke[caching.Cache](container)
	if err != nil {
		return nil, err
	}

	readonlyCache, err := do.Invoke[caching.ReadOnlyCache](container)
	if err != nil {
		return nil, err
	}

	rateLimiter, err := do.Invoke[interfaces.Limiter](container)
	if err != nil {
		return nil, err
	}

	serviceConfig, err := do.Invoke[*ServiceConfig](container)
	if err != nil {
		return nil, err
	}

	return &ServiceReward{container, rs, huntStore, rewardStore, cache, readonlyCache, rateLimiter, serviceConfig}, nil
}

// EnsureRewardsSpawned spawns units for every hunt without any, leaving
// hunts that already have rows untouched. Safe to call on every page load.
// The mutex narrows the window in which two instances observe the same
// unspawned hunt; the per-id skip in the batch insert keeps a lost race
// from duplicating rows.
func (service *ServiceReward) EnsureRewardsSpawned(ctx context.Context) (int, error) {
	mutex := service.rs.NewMutex(LockKeyRewardSpawn())
	if err := mutex.Lock(); err != nil {
		return 0, errorx.Wrap(ErrRewardSpawnLock, errorx.Invalid)
	}
	// nolint:errcheck
	defer mutex.Unlock()

	hunts, err := service.huntStore.ListHunts(ctx)
	if err != nil {
		return 0, errorx.Wrap(err, errorx.Service)
	}

	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	spawned, err := spawnMissingRewards(ctx, hunts, service.rewardStore, rnd, time.Now().UTC())
	if err != nil {
		return 0, err
	}

	if spawned > 0 {
		// nolint:errcheck
		service.cache.Delete(ctx, DBKeyRewards())
	}

	return spawned, nil
}

func (service *ServiceReward) ListRewards(ctx context.Context) ([]*models.Reward, error) {
	callback := func() ([]*models.Reward, error) {
		return service.rewardStore.ListRewards(ctx)
	}

	return caching.UseCacheWithRO(ctx, service.readonlyCache, service.cache, DBKeyRewards(), CACHE_TTL_5_SECONDS, callback)
}

// ClaimReward transitions one reward from unclaimed to claimed for a
// claimant standing within the pickup range. The flip itself is a
// conditional store update, so concurrent claimants on the same reward
// resolve to exactly one winner.
func (service *ServiceReward) ClaimReward(ctx context.Context, subject string, rewardID string, lat, lng float64) (*models.Reward, error) {
	err := service.limiter.Allow(ctx, LimitKeyClaim(subject), redis_rate.PerMinute(service.claimRateLimit(ctx)))
	if err != nil {
		if err.Error() == limiter.ErrRateLimited.Error() {
			return nil, errorx.Wrap(err, errorx.RateLimiting)
		}
		return nil, err
	}

	claimableDistance, _ := service.serviceConfig.GetIntConfig(ctx, CONFIG_CLAIMABLE_DISTANCE_METERS, DEFAULT_CLAIMABLE_DISTANCE_METERS)

	reward, err := claimSpawnedReward(ctx, service.huntStore, service.rewardStore, rewardID, geo.Point{Lat: lat, Lng: lng}, float64(claimableDistance))
	if err != nil {
		return nil, err
	}

	// nolint:errcheck
	service.cache.Delete(ctx, DBKeyRewards())
	// nolint:errcheck
	service.cache.Delete(ctx, DBKeyHunts())

	return reward, nil
}

func (service *ServiceReward) ClearAllRewards(ctx context.Context) error {
	if err := service.rewardStore.DeleteAllRewards(ctx); err != nil {
		return errorx.Wrap(err, errorx.Service)
	}

	// nolint:errcheck
	service.cache.Delete(ctx, DBKeyRewards())
	return nil
}

func (service *ServiceReward) claimRateLimit(ctx context.Context) int {
	limit, _ := service.serviceConfig.GetIntConfig(ctx, CONFIG_CLAIM_RATE_LIMIT_PER_MINUTE, DEFAULT_CLAIM_RATE_LIMIT_PER_MINUTE)
	return limit
}

// claimSpawnedReward checks the claim preconditions in order (exists,
// unclaimed, in range, hunt has capacity) and then performs the conditional
// flip plus the owning hunt's claimed-count bump.
func claimSpawnedReward(ctx context.Context, huntStore interfaces.HuntStore, rewardStore interfaces.RewardStore, rewardID string, claimant geo.Point, claimableDistanceMeters float64) (*models.Reward, error) {
	reward, err := rewardStore.GetReward(ctx, rewardID)
	if errors.Is(err, interfaces.ErrRewardNotFound) {
		return nil, errorx.Wrap(err, errorx.NotExist)
	}
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	if reward.Claimed {
		return nil, errorx.Wrap(interfaces.ErrRewardAlreadyClaimed, errorx.Invalid)
	}

	if !geo.WithinRange(claimant, geo.Point{Lat: reward.Lat, Lng: reward.Lng}, claimableDistanceMeters) {
		return nil, errorx.Wrap(ErrRewardOutOfRange, errorx.Invalid)
	}

	// Units spawned above the hunt's declared capacity stay unclaimable
	// once the hunt fills up. An orphaned reward has no capacity to check.
	hunt, err := huntStore.GetHunt(ctx, reward.HuntID)
	if err != nil && !errors.Is(err, interfaces.ErrHuntNotFound) {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	if hunt != nil && !hunt.Active() {
		return nil, errorx.Wrap(ErrHuntFullyClaimed, errorx.Invalid)
	}

	claimed, err := rewardStore.SetRewardClaimed(ctx, rewardID)
	if errors.Is(err, interfaces.ErrRewardNotFound) {
		return nil, errorx.Wrap(err, errorx.NotExist)
	}
	if errors.Is(err, interfaces.ErrRewardAlreadyClaimed) {
		return nil, errorx.Wrap(err, errorx.Invalid)
	}
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	if err := huntStore.IncrementClaimedCount(ctx, claimed.HuntID); err != nil && !errors.Is(err, interfaces.ErrHuntNotFound) {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	return claimed, nil
}
