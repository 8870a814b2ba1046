package repository

import (
	"github.com/ashwinsr/placement-portal/internal/model"
	"gorm.io/gorm"
)

type TestRepository interface {
	Create(tx *gorm.DB, test *model.Test) error
	FindByID(id uint) (*model.Test, error)
	FindByIDs(ids []uint) ([]model.Test, error)
	FindAll() ([]model.Test, error)
	FindVisibleByIDs(ids []uint) ([]model.Test, error)
}

type testRepository struct {
	db *gorm.DB
}

func NewTestRepository(db *gorm.DB) TestRepository {
	return &testRepository{db: db}
}

// Create inserts within the caller's transaction when tx is non-nil so test
// creation and assignment fan-out commit or roll back together.
func (r *testRepository) Create(tx *gorm.DB, test *model.Test) error {
	if tx == nil {
		tx = r.db
	}
	return tx.Create(test).Error
}

func (r *testRepository) FindByID(id uint) (*model.Test, error) {
	var test model.Test
	if err := r.db.First(&test, id).Error; err != nil {
		return nil, err
	}
	return &test, nil
}

func (r *testRepository) FindByIDs(ids []uint) ([]model.Test, error) {
	var tests []model.Test
	if len(ids) == 0 {
		return tests, nil
	}
	err := r.db.Where("id IN ?", ids).Find(&tests).Error
	return tests, err
}

func (r *testRepository) FindAll() ([]model.Test, error) {
	var tests []model.Test
	err := r.db.Order("created_at DESC").Find(&tests).Error
	return tests, err
}

// FindVisibleByIDs restricts to tests a student may still see and start.
func (r *testRepository) FindVisibleByIDs(ids []uint) ([]model.Test, error) {
	var tests []model.Test
	if len(ids) == 0 {
		return tests, nil
	}
	err := r.db.
		Where("id IN ?", ids).
		Where("status IN ?", []string{model.TestStatusActive, model.TestStatusPublished}).
		Order("created_at DESC").
		Find(&tests).Error
	return tests, err
}
