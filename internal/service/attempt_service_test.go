package service

import (
	"errors"
	"testing"
	"time"

	"github.com/ashwinsr/placement-portal/internal/dto"
	"github.com/ashwinsr/placement-portal/internal/model"
	"gorm.io/gorm"
)

type attemptFixture struct {
	testRepo       *fakeTestRepo
	assignmentRepo *fakeAssignmentRepo
	resultRepo     *fakeResultRepo
	activityLog    *fakeActivityLog
	service        AttemptService
}

func newAttemptFixture(t *testing.T) *attemptFixture {
	t.Helper()
	f := &attemptFixture{
		testRepo:       newFakeTestRepo(),
		assignmentRepo: newFakeAssignmentRepo(),
		resultRepo:     newFakeResultRepo(),
		activityLog:    &fakeActivityLog{},
	}
	f.service = NewAttemptService(f.testRepo, f.assignmentRepo, f.resultRepo, NewScoringService(), f.activityLog)
	return f
}

func (f *attemptFixture) seedTest(t *testing.T, status string, passingPercent int) *model.Test {
	t.Helper()
	questions, err := model.EncodeQuestions(fourQuestions())
	if err != nil {
		t.Fatalf("encoding questions: %v", err)
	}
	test := &model.Test{
		Name:            "Aptitude Round 1",
		Company:         "Acme Corp",
		DurationMinutes: 30,
		Questions:       questions,
		Status:          status,
		TotalMarks:      4,
		PassingPercent:  passingPercent,
	}
	if err := f.testRepo.Create(nil, test); err != nil {
		t.Fatalf("seeding test: %v", err)
	}
	return test
}

func TestStartAttempt_NotAssigned(t *testing.T) {
	f := newAttemptFixture(t)
	f.seedTest(t, model.TestStatusActive, 50)

	_, err := f.service.StartAttempt(1, "ghost", "127.0.0.1")
	if !errors.Is(err, ErrNotAssigned) {
		t.Fatalf("StartAttempt error = %v, want ErrNotAssigned", err)
	}
}

func TestStartAttempt_FreshStartLocksAssignment(t *testing.T) {
	f := newAttemptFixture(t)
	test := f.seedTest(t, model.TestStatusActive, 50)
	f.assignmentRepo.add(model.Assignment{
		TestID:          test.ID,
		StudentUsername: "alice",
		Status:          model.AssignmentStatusNotStarted,
	})

	resp, err := f.service.StartAttempt(test.ID, "alice", "127.0.0.1")
	if err != nil {
		t.Fatalf("StartAttempt returned error: %v", err)
	}
	if !resp.Success {
		t.Error("response not marked successful")
	}

	assignment, err := f.assignmentRepo.FindByTestAndStudent(test.ID, "alice")
	if err != nil {
		t.Fatalf("loading assignment: %v", err)
	}
	if assignment.Status != model.AssignmentStatusInProgress {
		t.Errorf("assignment status = %q, want in_progress", assignment.Status)
	}
	if assignment.StartedAt == nil {
		t.Error("StartedAt not recorded")
	}
	if len(f.activityLog.entries) != 1 || f.activityLog.entries[0].action != "start_test" {
		t.Errorf("activity log = %v, want one start_test entry", f.activityLog.entries)
	}
}

func TestStartAttempt_ResumeKeepsOriginalStart(t *testing.T) {
	f := newAttemptFixture(t)
	test := f.seedTest(t, model.TestStatusActive, 50)
	f.assignmentRepo.add(model.Assignment{
		TestID:          test.ID,
		StudentUsername: "alice",
		Status:          model.AssignmentStatusNotStarted,
	})

	if _, err := f.service.StartAttempt(test.ID, "alice", "127.0.0.1"); err != nil {
		t.Fatalf("first start: %v", err)
	}
	first, _ := f.assignmentRepo.FindByTestAndStudent(test.ID, "alice")

	resp, err := f.service.StartAttempt(test.ID, "alice", "127.0.0.1")
	if err != nil {
		t.Fatalf("resume returned error: %v", err)
	}
	if !resp.Success {
		t.Error("resume response not marked successful")
	}

	second, _ := f.assignmentRepo.FindByTestAndStudent(test.ID, "alice")
	if !second.StartedAt.Equal(*first.StartedAt) {
		t.Errorf("resume changed StartedAt: %v -> %v", first.StartedAt, second.StartedAt)
	}
	if f.assignmentRepo.markInProgressCalls != 1 {
		t.Errorf("MarkInProgress called %d times, want 1", f.assignmentRepo.markInProgressCalls)
	}
}

func TestStartAttempt_ResultWinsOverAssignmentStatus(t *testing.T) {
	f := newAttemptFixture(t)
	test := f.seedTest(t, model.TestStatusActive, 50)
	// Assignment still says not_started, but a Result row already exists:
	// the stale assignment must not reopen the attempt.
	f.assignmentRepo.add(model.Assignment{
		TestID:          test.ID,
		StudentUsername: "alice",
		Status:          model.AssignmentStatusNotStarted,
	})
	if err := f.resultRepo.Create(&model.Result{
		TestID:   test.ID,
		Username: "alice",
		Status:   model.ResultStatusPassed,
	}); err != nil {
		t.Fatalf("seeding result: %v", err)
	}

	_, err := f.service.StartAttempt(test.ID, "alice", "127.0.0.1")
	if !errors.Is(err, ErrAlreadySubmitted) {
		t.Fatalf("StartAttempt error = %v, want ErrAlreadySubmitted", err)
	}
}

func TestStartAttempt_SubmittedAssignmentWithoutResult(t *testing.T) {
	f := newAttemptFixture(t)
	test := f.seedTest(t, model.TestStatusActive, 50)
	f.assignmentRepo.add(model.Assignment{
		TestID:          test.ID,
		StudentUsername: "alice",
		Status:          model.AssignmentStatusSubmitted,
	})

	_, err := f.service.StartAttempt(test.ID, "alice", "127.0.0.1")
	if !errors.Is(err, ErrAlreadySubmitted) {
		t.Fatalf("StartAttempt error = %v, want ErrAlreadySubmitted", err)
	}
}

func TestSubmitAttempt_RecordsScoredResult(t *testing.T) {
	f := newAttemptFixture(t)
	test := f.seedTest(t, model.TestStatusActive, 70)
	f.assignmentRepo.add(model.Assignment{
		TestID:          test.ID,
		StudentUsername: "alice",
		Status:          model.AssignmentStatusInProgress,
	})

	result, err := f.service.SubmitAttempt(dto.SubmitAttemptRequest{
		TestID:    test.ID,
		Username:  "alice",
		Answers:   map[string]string{"0": "A", "1": "B", "2": "X", "3": "D"},
		TimeTaken: 540,
	}, "127.0.0.1")
	if err != nil {
		t.Fatalf("SubmitAttempt returned error: %v", err)
	}
	if result.Score != 75 || result.CorrectCount != 3 || result.TotalQuestions != 4 {
		t.Errorf("scored %v (%d/%d), want 75 (3/4)", result.Score, result.CorrectCount, result.TotalQuestions)
	}
	if result.Status != model.ResultStatusPassed {
		t.Errorf("verdict = %q, want passed", result.Status)
	}
	if result.TestName != "Aptitude Round 1" || result.Company != "Acme Corp" {
		t.Errorf("snapshot = %q/%q, want test name and company copied", result.TestName, result.Company)
	}

	assignment, _ := f.assignmentRepo.FindByTestAndStudent(test.ID, "alice")
	if assignment.Status != model.AssignmentStatusSubmitted {
		t.Errorf("assignment status = %q, want submitted", assignment.Status)
	}
	if len(f.activityLog.entries) != 1 || f.activityLog.entries[0].action != "submit_test" {
		t.Errorf("activity log = %v, want one submit_test entry", f.activityLog.entries)
	}
}

func TestSubmitAttempt_TestNotFound(t *testing.T) {
	f := newAttemptFixture(t)
	_, err := f.service.SubmitAttempt(dto.SubmitAttemptRequest{
		TestID:   42,
		Username: "alice",
		Answers:  map[string]string{"0": "A"},
	}, "127.0.0.1")
	if !errors.Is(err, ErrTestNotFound) {
		t.Fatalf("SubmitAttempt error = %v, want ErrTestNotFound", err)
	}
}

func TestSubmitAttempt_SecondSubmitRejected(t *testing.T) {
	f := newAttemptFixture(t)
	test := f.seedTest(t, model.TestStatusActive, 50)
	f.assignmentRepo.add(model.Assignment{
		TestID:          test.ID,
		StudentUsername: "alice",
		Status:          model.AssignmentStatusInProgress,
	})

	req := dto.SubmitAttemptRequest{
		TestID:   test.ID,
		Username: "alice",
		Answers:  map[string]string{"0": "A"},
	}
	if _, err := f.service.SubmitAttempt(req, "127.0.0.1"); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if _, err := f.service.SubmitAttempt(req, "127.0.0.1"); !errors.Is(err, ErrAlreadySubmitted) {
		t.Fatalf("second submit error = %v, want ErrAlreadySubmitted", err)
	}
}

func TestSubmitAttempt_ConcurrentDuplicateMapsToAlreadySubmitted(t *testing.T) {
	f := newAttemptFixture(t)
	test := f.seedTest(t, model.TestStatusActive, 50)
	f.assignmentRepo.add(model.Assignment{
		TestID:          test.ID,
		StudentUsername: "alice",
		Status:          model.AssignmentStatusInProgress,
	})
	// Simulates losing the insert race after the existence pre-check passed.
	f.resultRepo.createErr = gorm.ErrDuplicatedKey

	_, err := f.service.SubmitAttempt(dto.SubmitAttemptRequest{
		TestID:   test.ID,
		Username: "alice",
		Answers:  map[string]string{"0": "A"},
	}, "127.0.0.1")
	if !errors.Is(err, ErrAlreadySubmitted) {
		t.Fatalf("SubmitAttempt error = %v, want ErrAlreadySubmitted", err)
	}
}

func TestSubmitAttempt_AssignmentFlipFailureIsNotFatal(t *testing.T) {
	f := newAttemptFixture(t)
	test := f.seedTest(t, model.TestStatusActive, 50)
	f.assignmentRepo.add(model.Assignment{
		TestID:          test.ID,
		StudentUsername: "alice",
		Status:          model.AssignmentStatusInProgress,
	})
	f.assignmentRepo.markSubmittedErr = errors.New("connection reset")

	result, err := f.service.SubmitAttempt(dto.SubmitAttemptRequest{
		TestID:   test.ID,
		Username: "alice",
		Answers:  map[string]string{"0": "A"},
	}, "127.0.0.1")
	if err != nil {
		t.Fatalf("SubmitAttempt returned error: %v", err)
	}
	if result == nil || result.ID == 0 {
		t.Fatal("result not recorded despite assignment flip failure")
	}
	// The Result row is what locks the attempt out afterwards.
	if _, err := f.service.StartAttempt(test.ID, "alice", "127.0.0.1"); !errors.Is(err, ErrAlreadySubmitted) {
		t.Fatalf("re-entry after flip failure error = %v, want ErrAlreadySubmitted", err)
	}
}

func TestAvailableTests_EmptyUsername(t *testing.T) {
	f := newAttemptFixture(t)
	tests, err := f.service.AvailableTests("")
	if err != nil {
		t.Fatalf("AvailableTests returned error: %v", err)
	}
	if tests == nil || len(tests) != 0 {
		t.Fatalf("AvailableTests(\"\") = %v, want empty non-nil slice", tests)
	}
}

func TestAvailableTests_FiltersCompletedAndHidden(t *testing.T) {
	f := newAttemptFixture(t)
	open := f.seedTest(t, model.TestStatusActive, 50)
	done := f.seedTest(t, model.TestStatusActive, 50)
	draft := f.seedTest(t, model.TestStatusDraft, 50)

	for _, testID := range []uint{open.ID, done.ID, draft.ID} {
		f.assignmentRepo.add(model.Assignment{
			TestID:          testID,
			StudentUsername: "alice",
			Status:          model.AssignmentStatusNotStarted,
		})
	}
	// "done" has a Result even though its assignment never flipped.
	if err := f.resultRepo.Create(&model.Result{TestID: done.ID, Username: "alice"}); err != nil {
		t.Fatalf("seeding result: %v", err)
	}

	available, err := f.service.AvailableTests("alice")
	if err != nil {
		t.Fatalf("AvailableTests returned error: %v", err)
	}
	if len(available) != 1 || available[0].ID != open.ID {
		t.Fatalf("AvailableTests = %v, want only test %d", available, open.ID)
	}
}

func TestStudentHistory_MergesIncompleteAttempts(t *testing.T) {
	f := newAttemptFixture(t)
	finished := f.seedTest(t, model.TestStatusActive, 50)
	abandoned := f.seedTest(t, model.TestStatusActive, 50)

	now := time.Now()
	earlier := now.Add(-time.Hour)
	if err := f.resultRepo.Create(&model.Result{
		TestID:      finished.ID,
		Username:    "alice",
		TestName:    finished.Name,
		Company:     finished.Company,
		Score:       80,
		Status:      model.ResultStatusPassed,
		SubmittedAt: earlier,
	}); err != nil {
		t.Fatalf("seeding result: %v", err)
	}
	f.assignmentRepo.add(model.Assignment{
		TestID:          abandoned.ID,
		StudentUsername: "alice",
		Status:          model.AssignmentStatusInProgress,
		UpdatedAt:       now,
	})
	// An in_progress assignment whose test was deleted afterwards.
	f.assignmentRepo.add(model.Assignment{
		TestID:          999,
		StudentUsername: "alice",
		Status:          model.AssignmentStatusInProgress,
		UpdatedAt:       now.Add(-2 * time.Hour),
	})

	history, err := f.service.StudentHistory("alice")
	if err != nil {
		t.Fatalf("StudentHistory returned error: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("history has %d entries, want 3", len(history))
	}

	// Newest first: abandoned attempt, then the real result, then the orphan.
	if !history[0].IsIncomplete || history[0].Status != "incomplete" {
		t.Errorf("history[0] = %+v, want incomplete synthetic entry", history[0])
	}
	if history[0].ID[:11] != "incomplete_" {
		t.Errorf("synthetic entry ID = %q, want incomplete_ prefix", history[0].ID)
	}
	if history[1].IsIncomplete || history[1].Score != 80 {
		t.Errorf("history[1] = %+v, want the recorded result", history[1])
	}
	if history[2].TestName != "Unknown Assessment" || history[2].Company != "N/A" {
		t.Errorf("history[2] = %+v, want placeholder for deleted test", history[2])
	}
}

func TestTestForAttempt_StripsAnswers(t *testing.T) {
	f := newAttemptFixture(t)
	test := f.seedTest(t, model.TestStatusActive, 50)

	detail, err := f.service.TestForAttempt(test.ID)
	if err != nil {
		t.Fatalf("TestForAttempt returned error: %v", err)
	}
	if len(detail.Questions) != 4 {
		t.Fatalf("detail has %d questions, want 4", len(detail.Questions))
	}
	for i, q := range detail.Questions {
		if q.Question == "" || len(q.Options) != 4 {
			t.Errorf("question %d incomplete: %+v", i, q)
		}
	}
}

func TestTestForAttempt_NotFound(t *testing.T) {
	f := newAttemptFixture(t)
	if _, err := f.service.TestForAttempt(7); !errors.Is(err, ErrTestNotFound) {
		t.Fatalf("TestForAttempt error = %v, want ErrTestNotFound", err)
	}
}
