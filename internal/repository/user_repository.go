package repository

import (
	"github.com/ashwinsr/placement-portal/internal/model"
	"gorm.io/gorm"
)

type UserRepository interface {
	FindActiveStudents() ([]model.User, error)
	FindStudentByUsername(username string) (*model.User, error)
	FindByUsernames(usernames []string) ([]model.User, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) FindActiveStudents() ([]model.User, error) {
	var students []model.User
	err := r.db.
		Where("type = ? AND is_active = ?", model.UserTypeStudent, true).
		Order("username ASC").
		Find(&students).Error
	return students, err
}

func (r *userRepository) FindStudentByUsername(username string) (*model.User, error) {
	var student model.User
	err := r.db.
		Where("username = ? AND type = ?", username, model.UserTypeStudent).
		First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *userRepository) FindByUsernames(usernames []string) ([]model.User, error) {
	var users []model.User
	if len(usernames) == 0 {
		return users, nil
	}
	err := r.db.Where("username IN ?", usernames).Find(&users).Error
	return users, err
}
