package repository

import (
	"github.com/ashwinsr/placement-portal/internal/model"
	"gorm.io/gorm"
)

type ResultRepository interface {
	Create(result *model.Result) error
	FindByTestAndStudent(testID uint, username string) (*model.Result, error)
	FindAllByStudent(username string) ([]model.Result, error)
	FindAllByTest(testID uint) ([]model.Result, error)
	FindAll() ([]model.Result, error)
}

type resultRepository struct {
	db *gorm.DB
}

func NewResultRepository(db *gorm.DB) ResultRepository {
	return &resultRepository{db: db}
}

// Create is the commit point of a submission. The (username, test_id) unique
// index makes a concurrent duplicate surface as gorm.ErrDuplicatedKey.
func (r *resultRepository) Create(result *model.Result) error {
	return r.db.Create(result).Error
}

func (r *resultRepository) FindByTestAndStudent(testID uint, username string) (*model.Result, error) {
	var result model.Result
	err := r.db.
		Where("test_id = ? AND username = ?", testID, username).
		First(&result).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *resultRepository) FindAllByStudent(username string) ([]model.Result, error) {
	var results []model.Result
	err := r.db.
		Where("username = ?", username).
		Order("submitted_at DESC").
		Find(&results).Error
	return results, err
}

func (r *resultRepository) FindAllByTest(testID uint) ([]model.Result, error) {
	var results []model.Result
	err := r.db.Where("test_id = ?", testID).Find(&results).Error
	return results, err
}

func (r *resultRepository) FindAll() ([]model.Result, error) {
	var results []model.Result
	err := r.db.Order("submitted_at DESC").Find(&results).Error
	return results, err
}
