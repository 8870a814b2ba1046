package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/ashwinsr/placement-portal/internal/dto"
	"github.com/ashwinsr/placement-portal/internal/model"
	"github.com/ashwinsr/placement-portal/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AttemptService is the attempt state machine. The logical state of a
// (test, student) pair is derived from two sources: the assignment status
// (resumability affordance) and the existence of a Result row (authoritative
// finality). The Result always wins.
type AttemptService interface {
	StartAttempt(testID uint, username, ipAddress string) (*dto.StartAttemptResponse, error)
	SubmitAttempt(req dto.SubmitAttemptRequest, ipAddress string) (*dto.ResultDTO, error)
	AvailableTests(username string) ([]dto.TestSummaryDTO, error)
	StudentHistory(username string) ([]dto.HistoryEntryDTO, error)
	TestForAttempt(testID uint) (*dto.TestDetailDTO, error)
}

type attemptService struct {
	testRepo       repository.TestRepository
	assignmentRepo repository.AssignmentRepository
	resultRepo     repository.ResultRepository
	scoring        ScoringService
	activityLog    ActivityLogService
}

func NewAttemptService(
	testRepo repository.TestRepository,
	assignmentRepo repository.AssignmentRepository,
	resultRepo repository.ResultRepository,
	scoring ScoringService,
	activityLog ActivityLogService,
) AttemptService {
	return &attemptService{
		testRepo:       testRepo,
		assignmentRepo: assignmentRepo,
		resultRepo:     resultRepo,
		scoring:        scoring,
		activityLog:    activityLog,
	}
}

// StartAttempt authorizes an attempt or rejects it with a specific reason.
// Guard order matters: the Result check comes first because a Result row is
// the stronger signal than whatever the assignment status says.
func (s *attemptService) StartAttempt(testID uint, username, ipAddress string) (*dto.StartAttemptResponse, error) {
	exists, err := s.resultExists(testID, username)
	if err != nil {
		log.Error().Err(err).Uint("testID", testID).Str("username", username).Msg("StartAttempt: failed to check result existence")
		return nil, fmt.Errorf("error checking submission state: %w", err)
	}
	if exists {
		return nil, ErrAlreadySubmitted
	}

	assignment, err := s.assignmentRepo.FindByTestAndStudent(testID, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotAssigned
		}
		log.Error().Err(err).Uint("testID", testID).Str("username", username).Msg("StartAttempt: failed to load assignment")
		return nil, fmt.Errorf("error loading assignment: %w", err)
	}

	switch assignment.Status {
	case model.AssignmentStatusSubmitted:
		// Anomalous: submitted status without a Result row. Still terminal.
		return nil, ErrAlreadySubmitted

	case model.AssignmentStatusInProgress:
		// Resume after a refresh or dropped connection; no timestamps change.
		log.Info().Uint("testID", testID).Str("username", username).Msg("StartAttempt: resuming in-progress attempt")
		return &dto.StartAttemptResponse{Success: true, Message: "Resuming in-progress assessment."}, nil
	}

	flipped, err := s.assignmentRepo.MarkInProgress(assignment.ID, time.Now())
	if err != nil {
		log.Error().Err(err).Uint("assignmentID", assignment.ID).Msg("StartAttempt: failed to mark assignment in progress")
		return nil, fmt.Errorf("error starting attempt: %w", err)
	}
	if !flipped {
		// Lost a race with a concurrent start for the same pair; the other
		// call did the flip, so this one degrades to an idempotent resume.
		log.Info().Uint("testID", testID).Str("username", username).Msg("StartAttempt: concurrent start detected, treating as resume")
		return &dto.StartAttemptResponse{Success: true, Message: "Resuming in-progress assessment."}, nil
	}

	s.activityLog.Log("start_test", username, model.UserTypeStudent,
		map[string]interface{}{"testId": testID}, ipAddress)

	return &dto.StartAttemptResponse{Success: true, Message: "Attempt authorized and locked."}, nil
}

// SubmitAttempt scores the answer sheet and records the Result. The Result
// insert is the commit point; the assignment status flip afterwards is a
// best-effort denormalized cache update whose failure is logged, not returned.
func (s *attemptService) SubmitAttempt(req dto.SubmitAttemptRequest, ipAddress string) (*dto.ResultDTO, error) {
	test, err := s.testRepo.FindByID(req.TestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTestNotFound
		}
		log.Error().Err(err).Uint("testID", req.TestID).Msg("SubmitAttempt: failed to load test")
		return nil, fmt.Errorf("error loading test: %w", err)
	}

	questions, err := test.QuestionList()
	if err != nil {
		log.Error().Err(err).Uint("testID", test.ID).Msg("SubmitAttempt: corrupt question column")
		return nil, fmt.Errorf("error decoding test questions: %w", err)
	}
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}

	// Defensive re-check; the unique index on results is the real guard.
	exists, err := s.resultExists(req.TestID, req.Username)
	if err != nil {
		log.Error().Err(err).Uint("testID", req.TestID).Str("username", req.Username).Msg("SubmitAttempt: failed to check result existence")
		return nil, fmt.Errorf("error checking submission state: %w", err)
	}
	if exists {
		return nil, ErrAlreadySubmitted
	}

	summary, err := s.scoring.Score(questions, req.Answers, test.PassingPercent)
	if err != nil {
		return nil, err
	}

	result := &model.Result{
		Username:         req.Username,
		TestID:           test.ID,
		TestName:         test.Name,
		Company:          test.Company,
		Score:            summary.Score,
		CorrectCount:     summary.CorrectCount,
		TotalQuestions:   summary.TotalQuestions,
		Status:           summary.Verdict,
		Questions:        test.Questions, // snapshot as of submission time
		TimeTakenSeconds: req.TimeTaken,
		SubmittedAt:      time.Now(),
	}
	if result.Answers, err = encodeJSONColumn(req.Answers); err != nil {
		return nil, err
	}
	if len(req.QuestionTimes) > 0 {
		if result.QuestionTimes, err = encodeJSONColumn(req.QuestionTimes); err != nil {
			return nil, err
		}
	}

	if err := s.resultRepo.Create(result); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// A concurrent submit won; this pair is already terminal.
			return nil, ErrAlreadySubmitted
		}
		log.Error().Err(err).Uint("testID", test.ID).Str("username", req.Username).Msg("SubmitAttempt: failed to create result")
		return nil, fmt.Errorf("error recording result: %w", err)
	}

	if err := s.assignmentRepo.MarkSubmitted(test.ID, req.Username, time.Now()); err != nil {
		// Result existence wins; log the inconsistency for reconciliation.
		log.Error().Err(err).Uint("testID", test.ID).Str("username", req.Username).
			Msg("SubmitAttempt: result recorded but assignment status update failed")
	}

	s.activityLog.Log("submit_test", req.Username, model.UserTypeStudent, map[string]interface{}{
		"testId":   test.ID,
		"testName": test.Name,
		"score":    summary.Score,
	}, ipAddress)

	return resultToDTO(result), nil
}

// AvailableTests lists tests the student may still start: assignment present
// and not_started, no Result yet, and the test itself active or published.
func (s *attemptService) AvailableTests(username string) ([]dto.TestSummaryDTO, error) {
	summaries := []dto.TestSummaryDTO{}
	if username == "" {
		return summaries, nil
	}

	assignments, err := s.assignmentRepo.FindByStudentWithStatus(username, model.AssignmentStatusNotStarted)
	if err != nil {
		log.Error().Err(err).Str("username", username).Msg("AvailableTests: failed to load assignments")
		return nil, fmt.Errorf("error loading assignments: %w", err)
	}
	if len(assignments) == 0 {
		return summaries, nil
	}

	results, err := s.resultRepo.FindAllByStudent(username)
	if err != nil {
		log.Error().Err(err).Str("username", username).Msg("AvailableTests: failed to load results")
		return nil, fmt.Errorf("error loading results: %w", err)
	}
	completed := make(map[uint]bool, len(results))
	for _, r := range results {
		completed[r.TestID] = true
	}

	var testIDs []uint
	for _, a := range assignments {
		if !completed[a.TestID] {
			testIDs = append(testIDs, a.TestID)
		}
	}
	if len(testIDs) == 0 {
		return summaries, nil
	}

	tests, err := s.testRepo.FindVisibleByIDs(testIDs)
	if err != nil {
		log.Error().Err(err).Str("username", username).Msg("AvailableTests: failed to load tests")
		return nil, fmt.Errorf("error loading tests: %w", err)
	}
	for _, t := range tests {
		summaries = append(summaries, toTestSummary(&t))
	}
	return summaries, nil
}

// StudentHistory merges real Results with synthetic placeholders for
// assignments that moved past not_started but never produced a Result.
func (s *attemptService) StudentHistory(username string) ([]dto.HistoryEntryDTO, error) {
	results, err := s.resultRepo.FindAllByStudent(username)
	if err != nil {
		log.Error().Err(err).Str("username", username).Msg("StudentHistory: failed to load results")
		return nil, fmt.Errorf("error loading results: %w", err)
	}

	attempted, err := s.assignmentRepo.FindAttemptedByStudent(username)
	if err != nil {
		log.Error().Err(err).Str("username", username).Msg("StudentHistory: failed to load assignments")
		return nil, fmt.Errorf("error loading assignments: %w", err)
	}

	resulted := make(map[uint]bool, len(results))
	entries := make([]dto.HistoryEntryDTO, 0, len(results)+len(attempted))
	for _, r := range results {
		resulted[r.TestID] = true
		entries = append(entries, dto.HistoryEntryDTO{
			ID:       fmt.Sprintf("%d", r.ID),
			TestID:   r.TestID,
			TestName: r.TestName,
			Company:  r.Company,
			Score:    r.Score,
			Status:   r.Status,
			Date:     r.SubmittedAt,
		})
	}

	var incomplete []model.Assignment
	var incompleteIDs []uint
	for _, a := range attempted {
		if !resulted[a.TestID] {
			incomplete = append(incomplete, a)
			incompleteIDs = append(incompleteIDs, a.TestID)
		}
	}

	if len(incomplete) > 0 {
		tests, err := s.testRepo.FindByIDs(incompleteIDs)
		if err != nil {
			log.Error().Err(err).Str("username", username).Msg("StudentHistory: failed to load tests for incomplete entries")
			return nil, fmt.Errorf("error loading tests: %w", err)
		}
		testsByID := make(map[uint]model.Test, len(tests))
		for _, t := range tests {
			testsByID[t.ID] = t
		}

		for _, a := range incomplete {
			name, company := "Unknown Assessment", "N/A"
			if t, ok := testsByID[a.TestID]; ok {
				name, company = t.Name, t.Company
			}
			status := model.AssignmentStatusSubmitted
			if a.Status == model.AssignmentStatusInProgress {
				status = "incomplete"
			}
			entries = append(entries, dto.HistoryEntryDTO{
				ID:           fmt.Sprintf("incomplete_%d", a.ID),
				TestID:       a.TestID,
				TestName:     name,
				Company:      company,
				Score:        0,
				Status:       status,
				Date:         a.UpdatedAt,
				IsIncomplete: true,
			})
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.After(entries[j].Date)
	})
	return entries, nil
}

// TestForAttempt returns the full test for the question UI, with the
// correct-answer labels stripped. Scoring is server-side only.
func (s *attemptService) TestForAttempt(testID uint) (*dto.TestDetailDTO, error) {
	test, err := s.testRepo.FindByID(testID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTestNotFound
		}
		log.Error().Err(err).Uint("testID", testID).Msg("TestForAttempt: failed to load test")
		return nil, fmt.Errorf("error loading test: %w", err)
	}

	questions, err := test.QuestionList()
	if err != nil {
		log.Error().Err(err).Uint("testID", testID).Msg("TestForAttempt: corrupt question column")
		return nil, fmt.Errorf("error decoding test questions: %w", err)
	}

	detail := &dto.TestDetailDTO{TestSummaryDTO: toTestSummary(test)}
	detail.Questions = make([]dto.QuestionViewDTO, len(questions))
	for i, q := range questions {
		detail.Questions[i] = dto.QuestionViewDTO{Question: q.Question, Options: q.Options}
	}
	return detail, nil
}

func (s *attemptService) resultExists(testID uint, username string) (bool, error) {
	if _, err := s.resultRepo.FindByTestAndStudent(testID, username); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func toTestSummary(test *model.Test) dto.TestSummaryDTO {
	return dto.TestSummaryDTO{
		ID:             test.ID,
		Name:           test.Name,
		Company:        test.Company,
		Duration:       test.DurationMinutes,
		Description:    test.Description,
		Status:         test.Status,
		TotalMarks:     test.TotalMarks,
		PassingPercent: test.PassingPercent,
		Date:           test.ScheduledDate,
		CreatedAt:      test.CreatedAt,
	}
}

func resultToDTO(result *model.Result) *dto.ResultDTO {
	answers, err := model.DecodeAnswerMap(result.Answers)
	if err != nil {
		log.Warn().Err(err).Uint("resultID", result.ID).Msg("Result has malformed answer map")
	}
	return &dto.ResultDTO{
		ID:             result.ID,
		Username:       result.Username,
		TestID:         result.TestID,
		TestName:       result.TestName,
		Company:        result.Company,
		Score:          result.Score,
		CorrectCount:   result.CorrectCount,
		TotalQuestions: result.TotalQuestions,
		Status:         result.Status,
		Answers:        answers,
		TimeTaken:      result.TimeTakenSeconds,
		Date:           result.SubmittedAt,
	}
}

func encodeJSONColumn(v interface{}) (datatypes.JSON, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding json column: %w", err)
	}
	return datatypes.JSON(raw), nil
}
