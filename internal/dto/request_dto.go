package dto

// QuestionCreateDTO is one multiple-choice question inside a TestCreateDTO.
type QuestionCreateDTO struct {
	Question string   `json:"question" binding:"required"`
	Options  []string `json:"options" binding:"required,min=2"`
	Answer   string   `json:"answer" binding:"required"` // correct option label, e.g. "A"
}

// TargetAudienceDTO carries the four independent criteria lists. Empty lists
// (or an absent object) mean no restriction on that dimension.
type TargetAudienceDTO struct {
	Departments []string `json:"departments"`
	Years       []string `json:"years"`
	Sections    []string `json:"sections"`
	Genders     []string `json:"genders"`
}

// TestCreateDTO is the staff payload for creating and publishing a test.
type TestCreateDTO struct {
	Name            string              `json:"name" binding:"required"`
	Company         string              `json:"company" binding:"required"`
	Duration        int                 `json:"duration" binding:"required,gt=0"` // minutes
	Description     string              `json:"description"`
	Questions       []QuestionCreateDTO `json:"questions" binding:"required,min=1,dive"`
	CreatedBy       string              `json:"created_by"`
	Status          string              `json:"status" binding:"omitempty,oneof=draft active published archived"`
	Date            string              `json:"date"` // scheduled date, YYYY-MM-DD
	PassingPercent  int                 `json:"passing_percentage" binding:"omitempty,gte=0,lte=100"`
	TargetAudience  *TargetAudienceDTO  `json:"target_audience"`
}

// StartAttemptRequest asks the state machine to authorize an attempt.
type StartAttemptRequest struct {
	TestID   uint   `json:"test_id" binding:"required"`
	Username string `json:"username" binding:"required"`
}

// SubmitAttemptRequest carries the student's full answer sheet.
// Answers maps question index to the chosen option label. QuestionTimes is
// the client-reported per-question time spend, stored opaque for review.
type SubmitAttemptRequest struct {
	TestID        uint              `json:"test_id" binding:"required"`
	Username      string            `json:"username" binding:"required"`
	Answers       map[string]string `json:"answers" binding:"required"`
	QuestionTimes map[string]int64  `json:"question_times"`
	TimeTaken     int               `json:"time_taken" binding:"gte=0"` // seconds, client-reported
}
