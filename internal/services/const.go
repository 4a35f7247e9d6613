package services

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrRewardSpawnLock = errors.New("reward spawn locked")
var ErrRewardOutOfRange = errors.New("reward out of claimable range")
var ErrHuntFullyClaimed = errors.New("hunt has reached max claims")

const (
	CONFIG_SERVER_MODE                 = "SERVER_MODE"
	CONFIG_CLAIMABLE_DISTANCE_METERS   = "CLAIMABLE_DISTANCE_METERS"
	CONFIG_CLAIM_RATE_LIMIT_PER_MINUTE = "CLAIM_RATE_LIMIT_PER_MINUTE"
	CONFIG_HUNT_LIST_CACHE_SECONDS     = "HUNT_LIST_CACHE_SECONDS"

	SERVER_MODE_DEVELOPMENT = "development"
	SERVER_MODE_PRODUCTION  = "production"

	// MAX_CLAIMS_CAP bounds how many reward units one hunt may spawn no
	// matter what max_claims the sponsor declared.
	MAX_CLAIMS_CAP = 50

	// DEFAULT_CLAIMABLE_DISTANCE_METERS is the per-reward pickup range. It
	// is deliberately much tighter than any hunt radius: the participant has
	// to walk to the sampled point, not just enter the hunt disc.
	DEFAULT_CLAIMABLE_DISTANCE_METERS = 10

	DEFAULT_CLAIM_RATE_LIMIT_PER_MINUTE = 30

	DEFAULT_REWARD_TOKEN = "WLD"

	CACHE_TTL_5_SECONDS  = 5 * time.Second
	CACHE_TTL_15_SECONDS = 15 * time.Second
	CACHE_TTL_1_MIN      = 1 * time.Minute
	CACHE_TTL_5_MINS     = 5 * time.Minute

	WORLDCOIN_API_BASE_URL = "https://developer.worldcoin.org"
)

func LockKeyRewardSpawn() string {
	return "lock:reward-spawn"
}

// db
func DBKeyHunts() string {
	return "hunts:all"
}

func DBKeyRewards() string {
	return "rewards:all"
}

func DBKeyConfig(key string) string {
	return fmt.Sprintf("config:%s", strings.ToLower(key))
}

func LimitKeyClaim(subject string) string {
	return fmt.Sprintf("limit:claim:%s", subject)
}
