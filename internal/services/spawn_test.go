package services

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aniketlavasare/token-hunt/internal/datastore/memstore"
	"github.com/aniketlavasare/token-hunt/internal/models"
	"github.com/aniketlavasare/token-hunt/internal/pkg/geo"
)

func testHunt(id string, maxClaims int, amount float64) *models.Hunt {
	return &models.Hunt{
		HuntID:        id,
		Lat:           52.5200,
		Lng:           13.4050,
		RadiusMeters:  300,
		RewardToken:   "WLD",
		RewardAmount:  amount,
		MaxClaims:     maxClaims,
		CampaignName:  "test campaign",
		SponsorWallet: "0xsponsor",
		CreatedAt:     time.Now().UTC(),
	}
}

func TestSpawnRewardsForHunt(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	hunt := testHunt("hunt-1", 20, 10)
	now := time.Now().UTC()

	rewards, err := SpawnRewardsForHunt(rnd, hunt, now)
	require.NoError(t, err)
	require.Len(t, rewards, 20)

	center := geo.Point{Lat: hunt.Lat, Lng: hunt.Lng}
	seen := map[string]bool{}
	total := 0.0
	for _, r := range rewards {
		require.Equal(t, "hunt-1", r.HuntID)
		require.False(t, r.Claimed)
		require.Equal(t, now, r.CreatedAt)
		require.InDelta(t, 0.5, r.Amount, 1e-9)
		require.False(t, seen[r.RewardID], "reward ids must be unique")
		seen[r.RewardID] = true

		d := geo.Distance(center, geo.Point{Lat: r.Lat, Lng: r.Lng})
		require.LessOrEqual(t, d, float64(hunt.RadiusMeters)*1.001)

		total += r.Amount
	}

	require.InDelta(t, hunt.RewardAmount, total, 1e-6)
}

func TestSpawnRewardsForHuntClampsToCap(t *testing.T) {
	rnd := rand.New(rand.NewSource(2))
	hunt := testHunt("hunt-big", 1000, 100)

	rewards, err := SpawnRewardsForHunt(rnd, hunt, time.Now().UTC())
	require.NoError(t, err)
	require.Len(t, rewards, MAX_CLAIMS_CAP)

	for _, r := range rewards {
		require.InDelta(t, 2.0, r.Amount, 1e-9)
	}

	// the declared capacity is untouched by clamping
	require.Equal(t, 1000, hunt.MaxClaims)
}

func TestSpawnRewardsForHuntValidation(t *testing.T) {
	rnd := rand.New(rand.NewSource(3))
	now := time.Now().UTC()

	_, err := SpawnRewardsForHunt(rnd, testHunt("h", 0, 10), now)
	require.ErrorContains(t, err, "max claims must be positive")

	_, err = SpawnRewardsForHunt(rnd, testHunt("h", 10, 0), now)
	require.ErrorContains(t, err, "reward amount must be positive")

	badRadius := testHunt("h", 10, 10)
	badRadius.RadiusMeters = 0
	_, err = SpawnRewardsForHunt(rnd, badRadius, now)
	require.ErrorContains(t, err, "radius must be positive")
}

func TestSpawnMissingRewardsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	rnd := rand.New(rand.NewSource(4))
	now := time.Now().UTC()

	hunts := []*models.Hunt{testHunt("hunt-a", 5, 10), testHunt("hunt-b", 1000, 100)}

	spawned, err := spawnMissingRewards(ctx, hunts, store, rnd, now)
	require.NoError(t, err)
	require.Equal(t, 5+MAX_CLAIMS_CAP, spawned)

	// second run sees both hunts already present and writes nothing
	spawned, err = spawnMissingRewards(ctx, hunts, store, rnd, now)
	require.NoError(t, err)
	require.Zero(t, spawned)

	rewards, err := store.ListRewards(ctx)
	require.NoError(t, err)
	require.Len(t, rewards, 5+MAX_CLAIMS_CAP)
}

func TestSpawnMissingRewardsOnlyAbsentHunts(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	rnd := rand.New(rand.NewSource(5))
	now := time.Now().UTC()

	first := []*models.Hunt{testHunt("hunt-a", 3, 9)}
	_, err := spawnMissingRewards(ctx, first, store, rnd, now)
	require.NoError(t, err)

	both := append(first, testHunt("hunt-b", 4, 8))
	spawned, err := spawnMissingRewards(ctx, both, store, rnd, now)
	require.NoError(t, err)
	require.Equal(t, 4, spawned)

	rewards, err := store.ListRewards(ctx)
	require.NoError(t, err)

	perHunt := map[string]int{}
	for _, r := range rewards {
		perHunt[r.HuntID]++
	}
	require.Equal(t, map[string]int{"hunt-a": 3, "hunt-b": 4}, perHunt)
}
