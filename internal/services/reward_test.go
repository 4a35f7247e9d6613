package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aniketlavasare/token-hunt/internal/datastore/memstore"
	"github.com/aniketlavasare/token-hunt/internal/interfaces"
	"github.com/aniketlavasare/token-hunt/internal/models"
	"github.com/aniketlavasare/token-hunt/internal/pkg/geo"
)

func seedClaimableReward(t *testing.T, store *memstore.Store) (*models.Hunt, *models.Reward) {
	t.Helper()
	ctx := context.Background()

	hunt := testHunt("hunt-claim", 2, 10)
	require.NoError(t, store.CreateHunt(ctx, hunt))

	reward := &models.Reward{
		RewardID:  "reward-1",
		HuntID:    hunt.HuntID,
		Lat:       hunt.Lat,
		Lng:       hunt.Lng,
		Amount:    5,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, store.InsertRewardsBatch(ctx, []*models.Reward{reward}))
	return hunt, reward
}

func TestClaimSpawnedReward(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	hunt, reward := seedClaimableReward(t, store)

	claimant := geo.Point{Lat: reward.Lat, Lng: reward.Lng}
	claimed, err := claimSpawnedReward(ctx, store, store, reward.RewardID, claimant, DEFAULT_CLAIMABLE_DISTANCE_METERS)
	require.NoError(t, err)
	require.True(t, claimed.Claimed)
	require.Equal(t, reward.Amount, claimed.Amount)

	stored, err := store.GetReward(ctx, reward.RewardID)
	require.NoError(t, err)
	require.True(t, stored.Claimed)

	updatedHunt, err := store.GetHunt(ctx, hunt.HuntID)
	require.NoError(t, err)
	require.Equal(t, 1, updatedHunt.ClaimedCount)

	// the transition is one-way
	_, err = claimSpawnedReward(ctx, store, store, reward.RewardID, claimant, DEFAULT_CLAIMABLE_DISTANCE_METERS)
	require.ErrorContains(t, err, interfaces.ErrRewardAlreadyClaimed.Error())
}

func TestClaimSpawnedRewardNotFound(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()

	_, err := claimSpawnedReward(ctx, store, store, "no-such-reward", geo.Point{}, DEFAULT_CLAIMABLE_DISTANCE_METERS)
	require.ErrorContains(t, err, interfaces.ErrRewardNotFound.Error())
}

func TestClaimSpawnedRewardOutOfRange(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	hunt, reward := seedClaimableReward(t, store)

	// roughly 111 m north of the reward, past the default pickup range
	claimant := geo.Point{Lat: reward.Lat + 0.001, Lng: reward.Lng}
	_, err := claimSpawnedReward(ctx, store, store, reward.RewardID, claimant, DEFAULT_CLAIMABLE_DISTANCE_METERS)
	require.ErrorContains(t, err, ErrRewardOutOfRange.Error())

	stored, err := store.GetReward(ctx, reward.RewardID)
	require.NoError(t, err)
	require.False(t, stored.Claimed)

	updatedHunt, err := store.GetHunt(ctx, hunt.HuntID)
	require.NoError(t, err)
	require.Zero(t, updatedHunt.ClaimedCount)
}

func TestClaimSpawnedRewardConcurrent(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	hunt, reward := seedClaimableReward(t, store)
	claimant := geo.Point{Lat: reward.Lat, Lng: reward.Lng}

	const claimants = 16
	results := make(chan error, claimants)
	var wg sync.WaitGroup
	for i := 0; i < claimants; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := claimSpawnedReward(ctx, store, store, reward.RewardID, claimant, DEFAULT_CLAIMABLE_DISTANCE_METERS)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	wins := 0
	for err := range results {
		if err == nil {
			wins++
			continue
		}
		require.ErrorContains(t, err, interfaces.ErrRewardAlreadyClaimed.Error())
	}
	require.Equal(t, 1, wins, "exactly one claimant may win")

	updatedHunt, err := store.GetHunt(ctx, hunt.HuntID)
	require.NoError(t, err)
	require.Equal(t, 1, updatedHunt.ClaimedCount)
}

func TestClaimSpawnedRewardHuntFull(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()

	hunt := testHunt("hunt-full", 1, 10)
	hunt.ClaimedCount = 1
	require.NoError(t, store.CreateHunt(ctx, hunt))

	reward := &models.Reward{
		RewardID:  "leftover",
		HuntID:    hunt.HuntID,
		Lat:       hunt.Lat,
		Lng:       hunt.Lng,
		Amount:    10,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, store.InsertRewardsBatch(ctx, []*models.Reward{reward}))

	claimant := geo.Point{Lat: reward.Lat, Lng: reward.Lng}
	_, err := claimSpawnedReward(ctx, store, store, reward.RewardID, claimant, DEFAULT_CLAIMABLE_DISTANCE_METERS)
	require.ErrorContains(t, err, ErrHuntFullyClaimed.Error())

	stored, err := store.GetReward(ctx, reward.RewardID)
	require.NoError(t, err)
	require.False(t, stored.Claimed)
}

func TestClaimSpawnedRewardHuntGone(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()

	// a reward whose parent hunt no longer exists still claims cleanly
	reward := &models.Reward{
		RewardID:  "orphan",
		HuntID:    "gone",
		Lat:       10,
		Lng:       20,
		Amount:    1,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, store.InsertRewardsBatch(ctx, []*models.Reward{reward}))

	claimed, err := claimSpawnedReward(ctx, store, store, reward.RewardID, geo.Point{Lat: 10, Lng: 20}, DEFAULT_CLAIMABLE_DISTANCE_METERS)
	require.NoError(t, err)
	require.True(t, claimed.Claimed)
}

func TestDeleteAllHuntsCascades(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	_, _ = seedClaimableReward(t, store)

	hunts, rewards, err := store.DeleteAllHunts(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, hunts)
	require.Equal(t, 1, rewards)

	left, err := store.ListRewards(ctx)
	require.NoError(t, err)
	require.Empty(t, left)

	_, err = store.GetHunt(ctx, "hunt-claim")
	require.True(t, errors.Is(err, interfaces.ErrHuntNotFound))
}
