package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ashwinsr/placement-portal/internal/dto"
	"github.com/ashwinsr/placement-portal/internal/model"
	"github.com/ashwinsr/placement-portal/internal/realtime"
	"github.com/ashwinsr/placement-portal/internal/repository"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// StaffTestService owns the staff-facing lifecycle: publish (create test +
// resolve audience + fan out assignments), cascade deletes, and reporting.
type StaffTestService interface {
	CreateTest(req dto.TestCreateDTO, ipAddress string) (*dto.CreateTestResponse, error)
	ListTests() ([]dto.TestSummaryDTO, error)
	DeleteTest(testID uint, ipAddress string) error
	Participation(testID uint) ([]dto.ParticipationEntryDTO, error)
	ListStudents() ([]dto.StudentDTO, error)
	DeleteStudent(username, ipAddress string) error
}

type staffTestService struct {
	testRepo       repository.TestRepository
	assignmentRepo repository.AssignmentRepository
	resultRepo     repository.ResultRepository
	userRepo       repository.UserRepository
	resolver       AudienceResolverService
	activityLog    ActivityLogService
	hub            *realtime.Hub
	db             *gorm.DB
}

func NewStaffTestService(
	testRepo repository.TestRepository,
	assignmentRepo repository.AssignmentRepository,
	resultRepo repository.ResultRepository,
	userRepo repository.UserRepository,
	resolver AudienceResolverService,
	activityLog ActivityLogService,
	hub *realtime.Hub,
	db *gorm.DB,
) StaffTestService {
	return &staffTestService{
		testRepo:       testRepo,
		assignmentRepo: assignmentRepo,
		resultRepo:     resultRepo,
		userRepo:       userRepo,
		resolver:       resolver,
		activityLog:    activityLog,
		hub:            hub,
		db:             db,
	}
}

// CreateTest validates the payload, resolves the audience and creates the
// test plus its assignment fan-out in one transaction, so a publish that
// cannot assign anybody leaves no partial test behind.
func (s *staffTestService) CreateTest(req dto.TestCreateDTO, ipAddress string) (*dto.CreateTestResponse, error) {
	questions := make([]model.Question, len(req.Questions))
	for i, q := range req.Questions {
		if err := validateAnswerLabel(q.Answer, len(q.Options)); err != nil {
			return nil, fmt.Errorf("question %d: %w", i+1, err)
		}
		questions[i] = model.Question{Question: q.Question, Options: q.Options, Answer: q.Answer}
	}

	students, err := s.userRepo.FindActiveStudents()
	if err != nil {
		log.Error().Err(err).Msg("CreateTest: failed to load student population")
		return nil, fmt.Errorf("error loading students: %w", err)
	}
	if len(students) == 0 {
		return nil, ErrNoStudents
	}

	filter := model.TargetAudience{}
	if req.TargetAudience != nil {
		filter = model.TargetAudience{
			Departments: req.TargetAudience.Departments,
			Years:       req.TargetAudience.Years,
			Sections:    req.TargetAudience.Sections,
			Genders:     req.TargetAudience.Genders,
		}
	}
	targeted, fellBack := s.resolver.Resolve(students, filter)

	test := model.Test{
		Name:            req.Name,
		Company:         req.Company,
		DurationMinutes: req.Duration,
		Description:     req.Description,
		CreatedBy:       req.CreatedBy,
		Status:          req.Status,
		TotalMarks:      len(questions), // always derived, never client-supplied
		PassingPercent:  req.PassingPercent,
	}
	if test.Status == "" {
		test.Status = model.TestStatusActive
	}
	if test.PassingPercent == 0 {
		test.PassingPercent = 50
	}
	if test.Questions, err = model.EncodeQuestions(questions); err != nil {
		return nil, err
	}
	if test.TargetAudience, err = model.EncodeTargetAudience(filter); err != nil {
		return nil, err
	}
	if req.Date != "" {
		scheduled, parseErr := time.Parse("2006-01-02", req.Date)
		if parseErr != nil {
			return nil, fmt.Errorf("invalid scheduled date %q: %w", req.Date, parseErr)
		}
		test.ScheduledDate = &scheduled
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.testRepo.Create(tx, &test); err != nil {
			return fmt.Errorf("creating test: %w", err)
		}
		assignments := make([]model.Assignment, len(targeted))
		for i, student := range targeted {
			assignments[i] = model.Assignment{
				TestID:          test.ID,
				StudentUsername: student.Username,
				Status:          model.AssignmentStatusNotStarted,
			}
		}
		if err := s.assignmentRepo.BulkCreate(tx, assignments); err != nil {
			return fmt.Errorf("creating assignments: %w", err)
		}
		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("name", req.Name).Msg("CreateTest: publish transaction failed")
		return nil, err
	}

	s.activityLog.Log("publish_test", req.CreatedBy, model.UserTypeStaff, map[string]interface{}{
		"testId":        test.ID,
		"testName":      test.Name,
		"company":       test.Company,
		"questionCount": len(questions),
		"assignedCount": len(targeted),
	}, ipAddress)

	s.hub.Publish(realtime.Event{
		Type:          realtime.EventTestPublished,
		TestName:      test.Name,
		Company:       test.Company,
		AssignedCount: len(targeted),
	})

	return &dto.CreateTestResponse{
		Success:          true,
		Test:             toTestSummary(&test),
		AssignedCount:    len(targeted),
		AudienceFallback: fellBack,
	}, nil
}

func (s *staffTestService) ListTests() ([]dto.TestSummaryDTO, error) {
	tests, err := s.testRepo.FindAll()
	if err != nil {
		log.Error().Err(err).Msg("ListTests: failed to load tests")
		return nil, fmt.Errorf("error fetching tests: %w", err)
	}
	summaries := make([]dto.TestSummaryDTO, len(tests))
	for i := range tests {
		summaries[i] = toTestSummary(&tests[i])
	}
	return summaries, nil
}

// DeleteTest hard-deletes the test and cascades to its assignments and
// results in one transaction.
func (s *staffTestService) DeleteTest(testID uint, ipAddress string) error {
	test, err := s.testRepo.FindByID(testID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTestNotFound
		}
		return fmt.Errorf("error loading test: %w", err)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("test_id = ?", testID).Delete(&model.Assignment{}).Error; err != nil {
			return fmt.Errorf("deleting assignments: %w", err)
		}
		if err := tx.Where("test_id = ?", testID).Delete(&model.Result{}).Error; err != nil {
			return fmt.Errorf("deleting results: %w", err)
		}
		if err := tx.Delete(&model.Test{}, testID).Error; err != nil {
			return fmt.Errorf("deleting test: %w", err)
		}
		return nil
	})
	if err != nil {
		log.Error().Err(err).Uint("testID", testID).Msg("DeleteTest: cascade delete failed")
		return err
	}

	s.activityLog.Log("delete_test", "staff", model.UserTypeStaff, map[string]interface{}{
		"testId":   testID,
		"testName": test.Name,
	}, ipAddress)
	return nil
}

// Participation reports the union of assigned and resulted students for a
// test. Read-only; used only by staff dashboards.
func (s *staffTestService) Participation(testID uint) ([]dto.ParticipationEntryDTO, error) {
	if _, err := s.testRepo.FindByID(testID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTestNotFound
		}
		return nil, fmt.Errorf("error loading test: %w", err)
	}

	assignments, err := s.assignmentRepo.FindAllByTest(testID)
	if err != nil {
		log.Error().Err(err).Uint("testID", testID).Msg("Participation: failed to load assignments")
		return nil, fmt.Errorf("error loading assignments: %w", err)
	}
	results, err := s.resultRepo.FindAllByTest(testID)
	if err != nil {
		log.Error().Err(err).Uint("testID", testID).Msg("Participation: failed to load results")
		return nil, fmt.Errorf("error loading results: %w", err)
	}

	assignmentsByUser := make(map[string]model.Assignment, len(assignments))
	for _, a := range assignments {
		assignmentsByUser[a.StudentUsername] = a
	}
	resultsByUser := make(map[string]model.Result, len(results))
	for _, r := range results {
		resultsByUser[r.Username] = r
	}

	var usernames []string
	seen := make(map[string]bool)
	for _, a := range assignments {
		if !seen[a.StudentUsername] {
			seen[a.StudentUsername] = true
			usernames = append(usernames, a.StudentUsername)
		}
	}
	for _, r := range results {
		if !seen[r.Username] {
			seen[r.Username] = true
			usernames = append(usernames, r.Username)
		}
	}

	users, err := s.userRepo.FindByUsernames(usernames)
	if err != nil {
		log.Error().Err(err).Uint("testID", testID).Msg("Participation: failed to load users")
		return nil, fmt.Errorf("error loading users: %w", err)
	}

	report := make([]dto.ParticipationEntryDTO, 0, len(users))
	for _, u := range users {
		entry := dto.ParticipationEntryDTO{
			Username:         u.Username,
			RegisterNumber:   u.RegisterNumber,
			Name:             u.Name,
			Status:           "NOT STARTED",
			AssignmentStatus: "not_assigned",
			Section:          u.Section,
			Department:       u.Department,
		}
		if entry.RegisterNumber == "" {
			entry.RegisterNumber = u.Username
		}
		if entry.Name == "" {
			entry.Name = u.Username
		}
		if entry.Section == "" {
			entry.Section = "N/A"
		}
		if entry.Department == "" {
			entry.Department = "N/A"
		}

		assignment, assigned := assignmentsByUser[u.Username]
		if assigned {
			entry.AssignmentStatus = assignment.Status
		}

		if result, ok := resultsByUser[u.Username]; ok {
			entry.Attended = true
			score := result.Score
			entry.Score = &score
			entry.Status = strings.ToUpper(result.Status)
		} else if assigned && assignment.Status != model.AssignmentStatusNotStarted {
			entry.Attended = true
			zero := 0.0
			entry.Score = &zero
			if assignment.Status == model.AssignmentStatusInProgress {
				entry.Status = "IN PROGRESS"
			} else {
				entry.Status = "SUBMITTED"
			}
		}
		report = append(report, entry)
	}
	return report, nil
}

func (s *staffTestService) ListStudents() ([]dto.StudentDTO, error) {
	students, err := s.userRepo.FindActiveStudents()
	if err != nil {
		log.Error().Err(err).Msg("ListStudents: failed to load students")
		return nil, fmt.Errorf("error fetching students: %w", err)
	}
	views := make([]dto.StudentDTO, 0, len(students))
	if err := copier.Copy(&views, &students); err != nil {
		return nil, fmt.Errorf("error mapping students: %w", err)
	}
	return views, nil
}

// DeleteStudent removes the student and cascades to their assignments and
// results in one transaction.
func (s *staffTestService) DeleteStudent(username, ipAddress string) error {
	if _, err := s.userRepo.FindStudentByUsername(username); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("student %q not found", username)
		}
		return fmt.Errorf("error loading student: %w", err)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("student_username = ?", username).Delete(&model.Assignment{}).Error; err != nil {
			return fmt.Errorf("deleting assignments: %w", err)
		}
		if err := tx.Where("username = ?", username).Delete(&model.Result{}).Error; err != nil {
			return fmt.Errorf("deleting results: %w", err)
		}
		if err := tx.Where("username = ? AND type = ?", username, model.UserTypeStudent).
			Delete(&model.User{}).Error; err != nil {
			return fmt.Errorf("deleting student: %w", err)
		}
		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("username", username).Msg("DeleteStudent: cascade delete failed")
		return err
	}

	s.activityLog.Log("delete_student", "staff", model.UserTypeStaff, map[string]interface{}{
		"deletedUsername": username,
	}, ipAddress)
	return nil
}

// validateAnswerLabel checks the correct-answer label addresses one of the
// question's options ("A" is options[0], and so on).
func validateAnswerLabel(label string, optionCount int) error {
	if len(label) != 1 || label[0] < 'A' || label[0] > 'Z' {
		return fmt.Errorf("answer label %q must be a single letter A-Z", label)
	}
	if idx := int(label[0] - 'A'); idx >= optionCount {
		return fmt.Errorf("answer label %q has no matching option (only %d options)", label, optionCount)
	}
	return nil
}
