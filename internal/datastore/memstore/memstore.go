// Package memstore is an in-memory hunt/reward store with the same
// conditional-claim semantics as the postgres backend. It backs service
// tests and local development without a database.
package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/aniketlavasare/token-hunt/internal/interfaces"
	"github.com/aniketlavasare/token-hunt/internal/models"
)

type Store struct {
	mu      sync.Mutex
	hunts   map[string]*models.Hunt
	rewards map[string]*models.Reward
}

var _ interfaces.HuntStore = (*Store)(nil)
var _ interfaces.RewardStore = (*Store)(nil)

func New() *Store {
	return &Store{
		hunts:   map[string]*models.Hunt{},
		rewards: map[string]*models.Reward{},
	}
}

func (s *Store) ListHunts(ctx context.Context) ([]*models.Hunt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	hunts := make([]*models.Hunt, 0, len(s.hunts))
	for _, h := range s.hunts {
		copied := *h
		hunts = append(hunts, &copied)
	}
	sort.Slice(hunts, func(i, j int) bool { return hunts[i].CreatedAt.Before(hunts[j].CreatedAt) })
	return hunts, nil
}

func (s *Store) GetHunt(ctx context.Context, huntID string) (*models.Hunt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok := s.hunts[huntID]
	if !ok {
		return nil, interfaces.ErrHuntNotFound
	}
	copied := *h
	return &copied, nil
}

func (s *Store) CreateHunt(ctx context.Context, hunt *models.Hunt) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *hunt
	s.hunts[hunt.HuntID] = &copied
	return nil
}

func (s *Store) IncrementClaimedCount(ctx context.Context, huntID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok := s.hunts[huntID]
	if !ok {
		return interfaces.ErrHuntNotFound
	}
	h.ClaimedCount++
	return nil
}

func (s *Store) DeleteAllHunts(ctx context.Context) (int, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	deletedHunts := len(s.hunts)
	deletedRewards := len(s.rewards)
	s.hunts = map[string]*models.Hunt{}
	s.rewards = map[string]*models.Reward{}
	return deletedHunts, deletedRewards, nil
}

func (s *Store) ListRewards(ctx context.Context) ([]*models.Reward, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rewards := make([]*models.Reward, 0, len(s.rewards))
	for _, r := range s.rewards {
		copied := *r
		rewards = append(rewards, &copied)
	}
	sort.Slice(rewards, func(i, j int) bool { return rewards[i].RewardID < rewards[j].RewardID })
	return rewards, nil
}

func (s *Store) GetReward(ctx context.Context, rewardID string) (*models.Reward, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.rewards[rewardID]
	if !ok {
		return nil, interfaces.ErrRewardNotFound
	}
	copied := *r
	return &copied, nil
}

func (s *Store) InsertRewardsBatch(ctx context.Context, rewards []*models.Reward) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range rewards {
		if _, exists := s.rewards[r.RewardID]; exists {
			continue
		}
		copied := *r
		s.rewards[r.RewardID] = &copied
	}
	return nil
}

func (s *Store) SetRewardClaimed(ctx context.Context, rewardID string) (*models.Reward, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.rewards[rewardID]
	if !ok {
		return nil, interfaces.ErrRewardNotFound
	}
	if r.Claimed {
		return nil, interfaces.ErrRewardAlreadyClaimed
	}

	r.Claimed = true
	copied := *r
	return &copied, nil
}

func (s *Store) DeleteAllRewards(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rewards = map[string]*models.Reward{}
	return nil
}
