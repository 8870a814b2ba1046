package repository

import (
	"time"

	"github.com/ashwinsr/placement-portal/internal/model"
	"gorm.io/gorm"
)

type AssignmentRepository interface {
	BulkCreate(tx *gorm.DB, assignments []model.Assignment) error
	FindByTestAndStudent(testID uint, username string) (*model.Assignment, error)
	FindByStudentWithStatus(username, status string) ([]model.Assignment, error)
	FindAttemptedByStudent(username string) ([]model.Assignment, error)
	FindAllByTest(testID uint) ([]model.Assignment, error)
	MarkInProgress(id uint, startedAt time.Time) (bool, error)
	MarkSubmitted(testID uint, username string, submittedAt time.Time) error
}

type assignmentRepository struct {
	db *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) AssignmentRepository {
	return &assignmentRepository{db: db}
}

func (r *assignmentRepository) BulkCreate(tx *gorm.DB, assignments []model.Assignment) error {
	if tx == nil {
		tx = r.db
	}
	return tx.Create(&assignments).Error
}

func (r *assignmentRepository) FindByTestAndStudent(testID uint, username string) (*model.Assignment, error) {
	var assignment model.Assignment
	err := r.db.
		Where("test_id = ? AND student_username = ?", testID, username).
		First(&assignment).Error
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *assignmentRepository) FindByStudentWithStatus(username, status string) ([]model.Assignment, error) {
	var assignments []model.Assignment
	err := r.db.
		Where("student_username = ? AND status = ?", username, status).
		Find(&assignments).Error
	return assignments, err
}

// FindAttemptedByStudent returns assignments whose status has moved past
// not_started, the raw material for synthetic "incomplete" history entries.
func (r *assignmentRepository) FindAttemptedByStudent(username string) ([]model.Assignment, error) {
	var assignments []model.Assignment
	err := r.db.
		Where("student_username = ? AND status <> ?", username, model.AssignmentStatusNotStarted).
		Order("updated_at DESC").
		Find(&assignments).Error
	return assignments, err
}

func (r *assignmentRepository) FindAllByTest(testID uint) ([]model.Assignment, error) {
	var assignments []model.Assignment
	err := r.db.Where("test_id = ?", testID).Find(&assignments).Error
	return assignments, err
}

// MarkInProgress flips not_started to in_progress with a conditional update.
// The WHERE clause on status serializes two concurrent starts: the loser
// matches zero rows and reports false, which the caller treats as a resume.
func (r *assignmentRepository) MarkInProgress(id uint, startedAt time.Time) (bool, error) {
	res := r.db.Model(&model.Assignment{}).
		Where("id = ? AND status = ?", id, model.AssignmentStatusNotStarted).
		Updates(map[string]interface{}{
			"status":     model.AssignmentStatusInProgress,
			"started_at": startedAt,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *assignmentRepository) MarkSubmitted(testID uint, username string, submittedAt time.Time) error {
	return r.db.Model(&model.Assignment{}).
		Where("test_id = ? AND student_username = ?", testID, username).
		Updates(map[string]interface{}{
			"status":       model.AssignmentStatusSubmitted,
			"submitted_at": submittedAt,
		}).Error
}
