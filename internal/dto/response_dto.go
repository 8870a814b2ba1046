package dto

import "time"

type ErrorResponse struct {
	Message string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

// QuestionViewDTO is a question as shown to a student taking a test.
// The correct-answer label is deliberately absent.
type QuestionViewDTO struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

// TestSummaryDTO lists a test without its questions.
type TestSummaryDTO struct {
	ID             uint       `json:"id"`
	Name           string     `json:"name"`
	Company        string     `json:"company"`
	Duration       int        `json:"duration"`
	Description    string     `json:"description,omitempty"`
	Status         string     `json:"status"`
	TotalMarks     int        `json:"total_marks"`
	PassingPercent int        `json:"passing_percentage"`
	Date           *time.Time `json:"date,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// TestDetailDTO is the full test a student fetches after an authorized start.
type TestDetailDTO struct {
	TestSummaryDTO
	Questions []QuestionViewDTO `json:"questions"`
}

// StudentDTO is the staff view of a registered student. Field names mirror
// model.User so copier can map them directly; the password never crosses.
type StudentDTO struct {
	ID             uint   `json:"id"`
	Username       string `json:"username"`
	Name           string `json:"name,omitempty"`
	Email          string `json:"email,omitempty"`
	RegisterNumber string `json:"register_number,omitempty"`
	Department     string `json:"department,omitempty"`
	Year           string `json:"year,omitempty"`
	Section        string `json:"section,omitempty"`
	Gender         string `json:"gender,omitempty"`
	IsActive       bool   `json:"is_active"`
}

type StartAttemptResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// CreateTestResponse reports the publish outcome. AudienceFallback is true
// when the targeting filter matched nobody and assignment fell back to the
// whole student population.
type CreateTestResponse struct {
	Success          bool           `json:"success"`
	Test             TestSummaryDTO `json:"test"`
	AssignedCount    int            `json:"assigned_count"`
	AudienceFallback bool           `json:"audience_fallback,omitempty"`
}

// ResultDTO mirrors a persisted Result, including the question snapshot so
// historical review survives later test edits or deletion.
type ResultDTO struct {
	ID             uint              `json:"id"`
	Username       string            `json:"username"`
	TestID         uint              `json:"test_id"`
	TestName       string            `json:"test_name"`
	Company        string            `json:"company"`
	Score          float64           `json:"score"`
	CorrectCount   int               `json:"correct_count"`
	TotalQuestions int               `json:"total_questions"`
	Status         string            `json:"status"`
	Answers        map[string]string `json:"answers,omitempty"`
	TimeTaken      int               `json:"time_taken"`
	Date           time.Time         `json:"date"`
}

// HistoryEntryDTO is one row of a student's attempt history. Synthetic
// entries for abandoned in-progress assignments carry IsIncomplete=true and
// an "incomplete_<assignmentID>" identifier.
type HistoryEntryDTO struct {
	ID           string    `json:"id"`
	TestID       uint      `json:"test_id"`
	TestName     string    `json:"test_name"`
	Company      string    `json:"company"`
	Score        float64   `json:"score"`
	Status       string    `json:"status"`
	Date         time.Time `json:"date"`
	IsIncomplete bool      `json:"is_incomplete,omitempty"`
}

// ParticipationEntryDTO is one student row in the staff participation report.
// Score is nil for students who never attended.
type ParticipationEntryDTO struct {
	Username         string   `json:"username"`
	RegisterNumber   string   `json:"register_number"`
	Name             string   `json:"name"`
	Attended         bool     `json:"attended"`
	Score            *float64 `json:"score"`
	Status           string   `json:"status"`
	AssignmentStatus string   `json:"assignment_status"`
	Section          string   `json:"section"`
	Department       string   `json:"department"`
}
