package sequence

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	model "task-tracker.com/task-tracker/internal/models"
)

// DBSequence keeps the counter in a row of the sequences table. The
// increment runs as a single UPDATE inside a transaction, which the database
// serializes per row.
type DBSequence struct {
	db   *gorm.DB
	name string
	seed SeedFunc
}

func NewDBSequence(db *gorm.DB, name string, seed SeedFunc) *DBSequence {
	return &DBSequence{
		db:   db,
		name: name,
		seed: seed,
	}
}

func (s *DBSequence) Next(ctx context.Context) (int64, error) {
	first, missing, err := s.pendingSeed(ctx)
	if err != nil {
		return 0, err
	}

	var next int64
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.createRow(tx, first, missing); err != nil {
			return err
		}

		res := tx.Model(&model.Sequence{}).
			Where("name = ?", s.name).
			Update("value", gorm.Expr("value + 1"))
		if res.Error != nil {
			return res.Error
		}

		var seq model.Sequence
		if err := tx.First(&seq, "name = ?", s.name).Error; err != nil {
			return err
		}
		next = seq.Value
		return nil
	})
	if err != nil {
		return 0, err
	}
	return next, nil
}

// AdvanceTo moves the counter forward so that Next returns at least floor.
// A counter already past floor is left alone.
func (s *DBSequence) AdvanceTo(ctx context.Context, floor int64) error {
	first, missing, err := s.pendingSeed(ctx)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.createRow(tx, first, missing); err != nil {
			return err
		}
		return tx.Model(&model.Sequence{}).
			Where("name = ? AND value < ?", s.name, floor-1).
			Update("value", floor-1).Error
	})
}

// pendingSeed reports whether the counter row is missing and, if so, the
// first value it should hand out.
func (s *DBSequence) pendingSeed(ctx context.Context) (int64, bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.Sequence{}).Where("name = ?", s.name).Count(&count).Error; err != nil {
		return 0, false, err
	}
	if count > 0 {
		return 0, false, nil
	}
	first, err := s.seed(ctx)
	if err != nil {
		return 0, false, err
	}
	return first, true, nil
}

func (s *DBSequence) createRow(tx *gorm.DB, first int64, missing bool) error {
	if !missing {
		return nil
	}
	row := &model.Sequence{Name: s.name, Value: first - 1}
	return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(row).Error
}
