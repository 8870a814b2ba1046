package model

import (
	"time"
)

const (
	AssignmentStatusNotStarted = "not_started"
	AssignmentStatusInProgress = "in_progress"
	AssignmentStatusSubmitted  = "submitted"
)

// Assignment entitles one student to attempt one test. The composite unique
// index is the storage-level safety net against duplicate attempt rows.
type Assignment struct {
	ID              uint       `gorm:"primarykey" json:"id"`
	TestID          uint       `json:"test_id" gorm:"not null;uniqueIndex:idx_assignments_test_student;index"`
	StudentUsername string     `json:"student_username" gorm:"not null;uniqueIndex:idx_assignments_test_student;index"`
	Status          string     `json:"status" gorm:"not null;default:'not_started';index"` // not_started | in_progress | submitted
	AssignedAt      time.Time  `json:"assigned_at" gorm:"autoCreateTime"`
	StartedAt       *time.Time `json:"started_at,omitempty"`
	SubmittedAt     *time.Time `json:"submitted_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}
