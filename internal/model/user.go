package model

import (
	"time"
)

const (
	UserTypeStudent = "student"
	UserTypeStaff   = "staff"
)

// User covers both students and staff. The student cohort attributes are
// flattened into columns so the audience resolver can filter on them.
type User struct {
	ID             uint       `gorm:"primarykey" json:"id"`
	Username       string     `json:"username" gorm:"not null;uniqueIndex"`
	Password       string     `json:"-" gorm:"not null"`
	Type           string     `json:"type" gorm:"not null;index"` // student | staff
	Name           string     `json:"name,omitempty"`
	Email          string     `json:"email,omitempty"`
	RegisterNumber string     `json:"register_number,omitempty"`
	Department     string     `json:"department,omitempty" gorm:"index"`
	Year           string     `json:"year,omitempty"`
	Section        string     `json:"section,omitempty"`
	Gender         string     `json:"gender,omitempty"`
	IsActive       bool       `json:"is_active" gorm:"default:true;index"`
	LastLoginAt    *time.Time `json:"last_login_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
