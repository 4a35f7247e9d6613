package datastore

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/aniketlavasare/token-hunt/internal/models"
)

func CreateTableHunt(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.Hunt)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.Hunt)(nil)).Index("index_hunt_sponsor_wallet").IfNotExists().Column("sponsor_wallet").Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

func ListHunts(ctx context.Context, db *bun.DB) ([]*models.Hunt, error) {
	var hunts []*models.Hunt
	err := db.NewSelect().Model(&hunts).Order("created_at ASC").Scan(ctx)
	if err != nil {
		return nil, err
	}

	return hunts, nil
}

func GetHunt(ctx context.Context, db *bun.DB, huntID string) (*models.Hunt, error) {
	var hunt models.Hunt
	err := db.NewSelect().Model(&hunt).Where("hunt_id = ?", huntID).Scan(ctx)
	if err != nil {
		return nil, err
	}

	return &hunt, nil
}

func InsertHunt(ctx context.Context, db *bun.DB, hunt *models.Hunt) error {
	_, err := db.NewInsert().Model(hunt).Exec(ctx)
	return err
}

func IncrementClaimedCount(ctx context.Context, db *bun.DB, huntID string) error {
	_, err := db.NewUpdate().Model((*models.Hunt)(nil)).
		Set("claimed_count = claimed_count + 1").
		Where("hunt_id = ?", huntID).
		Exec(ctx)
	return err
}

func DeleteAllHunts(ctx context.Context, db *bun.DB) (int, int, error) {
	// The FK already cascades; rewards are deleted explicitly so both counts
	// can be reported.
	resRewards, err := db.NewDelete().Model((*models.Reward)(nil)).Where("1 = 1").Exec(ctx)
	if err != nil {
		return 0, 0, err
	}

	resHunts, err := db.NewDelete().Model((*models.Hunt)(nil)).Where("1 = 1").Exec(ctx)
	if err != nil {
		return 0, 0, err
	}

	deletedRewards, _ := resRewards.RowsAffected()
	deletedHunts, _ := resHunts.RowsAffected()
	return int(deletedHunts), int(deletedRewards), nil
}
