package service

import (
	"fmt"
	"time"

	"github.com/ashwinsr/placement-portal/internal/model"
	"gorm.io/gorm"
)

// In-memory fakes for the repository interfaces. They reproduce the two
// storage behaviors the services depend on: gorm.ErrRecordNotFound on a miss
// and gorm.ErrDuplicatedKey when a unique index would be violated.

type fakeTestRepo struct {
	tests  map[uint]model.Test
	nextID uint
}

func newFakeTestRepo() *fakeTestRepo {
	return &fakeTestRepo{tests: map[uint]model.Test{}, nextID: 1}
}

func (f *fakeTestRepo) Create(_ *gorm.DB, test *model.Test) error {
	test.ID = f.nextID
	f.nextID++
	f.tests[test.ID] = *test
	return nil
}

func (f *fakeTestRepo) FindByID(id uint) (*model.Test, error) {
	test, ok := f.tests[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &test, nil
}

func (f *fakeTestRepo) FindByIDs(ids []uint) ([]model.Test, error) {
	var tests []model.Test
	for _, id := range ids {
		if test, ok := f.tests[id]; ok {
			tests = append(tests, test)
		}
	}
	return tests, nil
}

func (f *fakeTestRepo) FindAll() ([]model.Test, error) {
	var tests []model.Test
	for _, test := range f.tests {
		tests = append(tests, test)
	}
	return tests, nil
}

func (f *fakeTestRepo) FindVisibleByIDs(ids []uint) ([]model.Test, error) {
	var tests []model.Test
	for _, id := range ids {
		test, ok := f.tests[id]
		if !ok {
			continue
		}
		if test.Status == model.TestStatusActive || test.Status == model.TestStatusPublished {
			tests = append(tests, test)
		}
	}
	return tests, nil
}

type fakeAssignmentRepo struct {
	assignments         map[string]*model.Assignment // key: testID|username
	nextID              uint
	markInProgressCalls int
	markSubmittedErr    error
}

func newFakeAssignmentRepo() *fakeAssignmentRepo {
	return &fakeAssignmentRepo{assignments: map[string]*model.Assignment{}, nextID: 1}
}

func assignmentKey(testID uint, username string) string {
	return fmt.Sprintf("%d|%s", testID, username)
}

func (f *fakeAssignmentRepo) add(a model.Assignment) *model.Assignment {
	a.ID = f.nextID
	f.nextID++
	stored := a
	f.assignments[assignmentKey(a.TestID, a.StudentUsername)] = &stored
	return &stored
}

func (f *fakeAssignmentRepo) BulkCreate(_ *gorm.DB, assignments []model.Assignment) error {
	for _, a := range assignments {
		key := assignmentKey(a.TestID, a.StudentUsername)
		if _, exists := f.assignments[key]; exists {
			return gorm.ErrDuplicatedKey
		}
		f.add(a)
	}
	return nil
}

func (f *fakeAssignmentRepo) FindByTestAndStudent(testID uint, username string) (*model.Assignment, error) {
	a, ok := f.assignments[assignmentKey(testID, username)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *a
	return &copied, nil
}

func (f *fakeAssignmentRepo) FindByStudentWithStatus(username, status string) ([]model.Assignment, error) {
	var out []model.Assignment
	for _, a := range f.assignments {
		if a.StudentUsername == username && a.Status == status {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAssignmentRepo) FindAttemptedByStudent(username string) ([]model.Assignment, error) {
	var out []model.Assignment
	for _, a := range f.assignments {
		if a.StudentUsername == username && a.Status != model.AssignmentStatusNotStarted {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAssignmentRepo) FindAllByTest(testID uint) ([]model.Assignment, error) {
	var out []model.Assignment
	for _, a := range f.assignments {
		if a.TestID == testID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAssignmentRepo) MarkInProgress(id uint, startedAt time.Time) (bool, error) {
	f.markInProgressCalls++
	for _, a := range f.assignments {
		if a.ID == id && a.Status == model.AssignmentStatusNotStarted {
			a.Status = model.AssignmentStatusInProgress
			t := startedAt
			a.StartedAt = &t
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAssignmentRepo) MarkSubmitted(testID uint, username string, submittedAt time.Time) error {
	if f.markSubmittedErr != nil {
		return f.markSubmittedErr
	}
	if a, ok := f.assignments[assignmentKey(testID, username)]; ok {
		a.Status = model.AssignmentStatusSubmitted
		t := submittedAt
		a.SubmittedAt = &t
	}
	return nil
}

type fakeResultRepo struct {
	results   map[string]*model.Result // key: testID|username
	nextID    uint
	createErr error
}

func newFakeResultRepo() *fakeResultRepo {
	return &fakeResultRepo{results: map[string]*model.Result{}, nextID: 1}
}

func (f *fakeResultRepo) Create(result *model.Result) error {
	if f.createErr != nil {
		return f.createErr
	}
	key := assignmentKey(result.TestID, result.Username)
	if _, exists := f.results[key]; exists {
		return gorm.ErrDuplicatedKey
	}
	result.ID = f.nextID
	f.nextID++
	stored := *result
	f.results[key] = &stored
	return nil
}

func (f *fakeResultRepo) FindByTestAndStudent(testID uint, username string) (*model.Result, error) {
	r, ok := f.results[assignmentKey(testID, username)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *r
	return &copied, nil
}

func (f *fakeResultRepo) FindAllByStudent(username string) ([]model.Result, error) {
	var out []model.Result
	for _, r := range f.results {
		if r.Username == username {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeResultRepo) FindAllByTest(testID uint) ([]model.Result, error) {
	var out []model.Result
	for _, r := range f.results {
		if r.TestID == testID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeResultRepo) FindAll() ([]model.Result, error) {
	var out []model.Result
	for _, r := range f.results {
		out = append(out, *r)
	}
	return out, nil
}

type fakeUserRepo struct {
	users []model.User
}

func (f *fakeUserRepo) FindActiveStudents() ([]model.User, error) {
	var out []model.User
	for _, u := range f.users {
		if u.Type == model.UserTypeStudent && u.IsActive {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) FindStudentByUsername(username string) (*model.User, error) {
	for _, u := range f.users {
		if u.Username == username && u.Type == model.UserTypeStudent {
			copied := u
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindByUsernames(usernames []string) ([]model.User, error) {
	wanted := make(map[string]bool, len(usernames))
	for _, name := range usernames {
		wanted[name] = true
	}
	var out []model.User
	for _, u := range f.users {
		if wanted[u.Username] {
			out = append(out, u)
		}
	}
	return out, nil
}

type loggedAction struct {
	action   string
	username string
}

// fakeActivityLog records calls so tests can assert the audit side effects.
type fakeActivityLog struct {
	entries []loggedAction
}

func (f *fakeActivityLog) Log(action, username, _ string, _ map[string]interface{}, _ string) {
	f.entries = append(f.entries, loggedAction{action: action, username: username})
}

func (f *fakeActivityLog) RecentLogs(int, string, string) ([]model.ActivityLog, error) {
	return nil, nil
}
