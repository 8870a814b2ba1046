package model

import (
	"time"

	"gorm.io/datatypes"
)

const (
	ResultStatusPassed = "passed"
	ResultStatusFailed = "failed"
)

// Result is the immutable record of a finished attempt. Its existence is the
// authoritative "already submitted" signal; the composite unique index is
// what actually enforces "no retakes".
type Result struct {
	ID               uint           `gorm:"primarykey" json:"id"`
	Username         string         `json:"username" gorm:"not null;uniqueIndex:idx_results_user_test;index"`
	TestID           uint           `json:"test_id" gorm:"not null;uniqueIndex:idx_results_user_test;index"`
	TestName         string         `json:"test_name"` // snapshot at submission time
	Company          string         `json:"company"`   // snapshot at submission time
	Score            float64        `json:"score" gorm:"not null;index"`
	CorrectCount     int            `json:"correct_count"`
	TotalQuestions   int            `json:"total_questions"`
	Status           string         `json:"status" gorm:"index"` // passed | failed
	Answers          datatypes.JSON `json:"answers,omitempty"`   // {questionIndex: chosenLabel}
	QuestionTimes    datatypes.JSON `json:"question_times,omitempty"`
	Questions        datatypes.JSON `json:"questions,omitempty"` // full question snapshot for review
	TimeTakenSeconds int            `json:"time_taken"`
	SubmittedAt      time.Time      `json:"date" gorm:"autoCreateTime;index"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}
