package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/samber/do"

	"github.com/aniketlavasare/token-hunt/internal/interfaces"
	"github.com/aniketlavasare/token-hunt/internal/models"
	"github.com/aniketlavasare/token-hunt/internal/pkg/caching"
)

type ServiceHunt struct {
	container     *do.Injector
	huntStore     interfaces.HuntStore
	cache         caching.Cache
	readonlyCache caching.ReadOnlyCache
}

func NewServiceHunt(container *do.Injector) (*ServiceHunt, error) {
	huntStore, err := do.Invoke[interfaces.HuntStore](container)
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

	return &ServiceHunt{container, huntStore, cache, readonlyCache}, nil
}

func (service *ServiceHunt) CreateHunt(ctx context.Context, hunt *models.Hunt) (*models.Hunt, error) {
	if hunt.HuntID == "" {
		hunt.HuntID = uuid.NewString()
	}
	if hunt.RewardToken == "" {
		hunt.RewardToken = DEFAULT_REWARD_TOKEN
	}
	if hunt.CreatedAt.IsZero() {
		hunt.CreatedAt = time.Now().UTC()
	}
	hunt.ClaimedCount = 0

	if err := validateHunt(hunt); err != nil {
		return nil, err
	}

	if err := service.huntStore.CreateHunt(ctx, hunt); err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	// nolint:errcheck
	service.cache.Delete(ctx, DBKeyHunts())

	return hunt, nil
}

func (service *ServiceHunt) ListHunts(ctx context.Context) ([]*models.Hunt, error) {
	callback := func() ([]*models.Hunt, error) {
		return service.huntStore.ListHunts(ctx)
	}

	return caching.UseCacheWithRO(ctx, service.readonlyCache, service.cache, DBKeyHunts(), CACHE_TTL_15_SECONDS, callback)
}

func (service *ServiceHunt) GetHunt(ctx context.Context, huntID string) (*models.Hunt, error) {
	hunt, err := service.huntStore.GetHunt(ctx, huntID)
	if errors.Is(err, interfaces.ErrHuntNotFound) {
		return nil, errorx.Wrap(err, errorx.NotExist)
	}
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	return hunt, nil
}

// ClearAllHunts removes every hunt and, by cascade, every spawned reward.
func (service *ServiceHunt) ClearAllHunts(ctx context.Context) (int, int, error) {
	deletedHunts, deletedRewards, err := service.huntStore.DeleteAllHunts(ctx)
	if err != nil {
		return 0, 0, errorx.Wrap(err, errorx.Service)
	}

	// nolint:errcheck
	service.cache.Delete(ctx, DBKeyHunts())
	// nolint:errcheck
	service.cache.Delete(ctx, DBKeyRewards())

	return deletedHunts, deletedRewards, nil
}

func validateHunt(hunt *models.Hunt) error {
	if hunt.CampaignName == "" {
		return errorx.Wrap(errors.New("campaign name is required"), errorx.Validation)
	}
	if hunt.SponsorWallet == "" {
		return errorx.Wrap(errors.New("sponsor wallet is required"), errorx.Validation)
	}
	if hunt.Lat < -90 || hunt.Lat > 90 || hunt.Lng < -180 || hunt.Lng > 180 {
		return errorx.Wrap(errors.New("hunt center is not a valid coordinate"), errorx.Validation)
	}
	return validateHuntForSpawn(hunt)
}
