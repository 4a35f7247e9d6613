package datastore

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/aniketlavasare/token-hunt/internal/models"
)

func CreateTableReward(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.Reward)(nil)).IfNotExists().
		ForeignKey(`("hunt_id") REFERENCES hunt ("hunt_id") ON DELETE CASCADE`).
		Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.Reward)(nil)).Index("index_reward_hunt_id").IfNotExists().Column("hunt_id").Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.Reward)(nil)).Index("index_reward_claimed").IfNotExists().Column("claimed").Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

func ListRewards(ctx context.Context, db *bun.DB) ([]*models.Reward, error) {
	var rewards []*models.Reward
	err := db.NewSelect().Model(&rewards).Order("created_at ASC").Scan(ctx)
	if err != nil {
		return nil, err
	}

	return rewards, nil
}

func GetReward(ctx context.Context, db *bun.DB, rewardID string) (*models.Reward, error) {
	var reward models.Reward
	err := db.NewSelect().Model(&reward).Where("reward_id = ?", rewardID).Scan(ctx)
	if err != nil {
		return nil, err
	}

	return &reward, nil
}

// InsertRewardsBatch writes a spawn batch in a single statement. Duplicate
// reward ids are skipped so replaying a batch cannot double-spawn.
func InsertRewardsBatch(ctx context.Context, db *bun.DB, rewards []*models.Reward) error {
	if len(rewards) == 0 {
		return nil
	}

	_, err := db.NewInsert().Model(&rewards).
		On("CONFLICT (reward_id) DO NOTHING").
		Exec(ctx)
	return err
}

// SetRewardClaimed flips claimed in a single conditional update so two
// concurrent claimants can never both win the same reward. The affected-row
// count tells the winner apart from the losers.
func SetRewardClaimed(ctx context.Context, db *bun.DB, rewardID string) (*models.Reward, int64, error) {
	reward := new(models.Reward)
	res, err := db.NewUpdate().Model(reward).
		Set("claimed = ?", true).
		Where("reward_id = ?", rewardID).
		Where("claimed = ?", false).
		Returning("*").
		Exec(ctx)
	if err != nil {
		return nil, 0, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return nil, 0, err
	}

	return reward, n, nil
}

func DeleteAllRewards(ctx context.Context, db *bun.DB) error {
	_, err := db.NewDelete().Model((*models.Reward)(nil)).Where("1 = 1").Exec(ctx)
	return err
}
