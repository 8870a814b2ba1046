package model

import (
	"time"

	"gorm.io/datatypes"
)

const (
	TestStatusDraft     = "draft"
	TestStatusActive    = "active"
	TestStatusPublished = "published"
	TestStatusArchived  = "archived"
)

type Test struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	Name            string         `json:"name" gorm:"not null;index"`
	Company         string         `json:"company" gorm:"not null;index"`
	DurationMinutes int            `json:"duration" gorm:"not null"`
	Description     string         `json:"description,omitempty" gorm:"type:text"`
	Questions       datatypes.JSON `json:"questions" gorm:"not null"` // array of {question, options[], answer}
	CreatedBy       string         `json:"created_by,omitempty" gorm:"index"`
	Status          string         `json:"status" gorm:"default:'active';index"` // draft | active | published | archived
	ScheduledDate   *time.Time     `json:"date,omitempty"`
	TotalMarks      int            `json:"total_marks"` // always derived from question count at creation
	PassingPercent  int            `json:"passing_percentage" gorm:"default:50"`
	TargetAudience  datatypes.JSON `json:"target_audience,omitempty"` // {departments, years, sections, genders}
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// QuestionList decodes the JSON question column into typed questions.
func (t *Test) QuestionList() ([]Question, error) {
	return DecodeQuestions(t.Questions)
}

// Audience decodes the targeting filter; a null column means "no filter".
func (t *Test) Audience() (TargetAudience, error) {
	return DecodeTargetAudience(t.TargetAudience)
}
