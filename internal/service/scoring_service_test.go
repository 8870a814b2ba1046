package service

import (
	"errors"
	"strconv"
	"testing"

	"github.com/ashwinsr/placement-portal/internal/model"
)

func fourQuestions() []model.Question {
	return []model.Question{
		{Question: "Q1", Options: []string{"A1", "A2", "A3", "A4"}, Answer: "A"},
		{Question: "Q2", Options: []string{"B1", "B2", "B3", "B4"}, Answer: "B"},
		{Question: "Q3", Options: []string{"C1", "C2", "C3", "C4"}, Answer: "C"},
		{Question: "Q4", Options: []string{"D1", "D2", "D3", "D4"}, Answer: "D"},
	}
}

func TestScore_GradingAndVerdict(t *testing.T) {
	tests := []struct {
		name           string
		questions      []model.Question
		answers        map[string]string
		passingPercent int
		wantCorrect    int
		wantScore      float64
		wantVerdict    string
	}{
		{
			name:           "three of four correct passes at 70",
			questions:      fourQuestions(),
			answers:        map[string]string{"0": "A", "1": "B", "2": "X", "3": "D"},
			passingPercent: 70,
			wantCorrect:    3,
			wantScore:      75,
			wantVerdict:    model.ResultStatusPassed,
		},
		{
			name:           "three of four correct fails at 80",
			questions:      fourQuestions(),
			answers:        map[string]string{"0": "A", "1": "B", "2": "X", "3": "D"},
			passingPercent: 80,
			wantCorrect:    3,
			wantScore:      75,
			wantVerdict:    model.ResultStatusFailed,
		},
		{
			name:           "score exactly at threshold passes",
			questions:      fourQuestions(),
			answers:        map[string]string{"0": "A", "1": "B"},
			passingPercent: 50,
			wantCorrect:    2,
			wantScore:      50,
			wantVerdict:    model.ResultStatusPassed,
		},
		{
			name:           "unanswered questions count as incorrect",
			questions:      fourQuestions(),
			answers:        map[string]string{"0": "A"},
			passingPercent: 50,
			wantCorrect:    1,
			wantScore:      25,
			wantVerdict:    model.ResultStatusFailed,
		},
		{
			name:           "empty answer sheet scores zero",
			questions:      fourQuestions(),
			answers:        map[string]string{},
			passingPercent: 50,
			wantCorrect:    0,
			wantScore:      0,
			wantVerdict:    model.ResultStatusFailed,
		},
		{
			name:           "label match is case sensitive",
			questions:      fourQuestions(),
			answers:        map[string]string{"0": "a", "1": "B"},
			passingPercent: 50,
			wantCorrect:    1,
			wantScore:      25,
			wantVerdict:    model.ResultStatusFailed,
		},
		{
			name:           "unparseable answer keys are dropped",
			questions:      fourQuestions(),
			answers:        map[string]string{"zero": "A", "-1": "A", "1": "B"},
			passingPercent: 50,
			wantCorrect:    1,
			wantScore:      25,
			wantVerdict:    model.ResultStatusFailed,
		},
		{
			name:           "out of range answer keys are ignored",
			questions:      fourQuestions(),
			answers:        map[string]string{"0": "A", "9": "A"},
			passingPercent: 50,
			wantCorrect:    1,
			wantScore:      25,
			wantVerdict:    model.ResultStatusFailed,
		},
	}

	scoring := NewScoringService()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			summary, err := scoring.Score(tc.questions, tc.answers, tc.passingPercent)
			if err != nil {
				t.Fatalf("Score returned error: %v", err)
			}
			if summary.CorrectCount != tc.wantCorrect {
				t.Errorf("CorrectCount = %d, want %d", summary.CorrectCount, tc.wantCorrect)
			}
			if summary.TotalQuestions != len(tc.questions) {
				t.Errorf("TotalQuestions = %d, want %d", summary.TotalQuestions, len(tc.questions))
			}
			if summary.Score != tc.wantScore {
				t.Errorf("Score = %v, want %v", summary.Score, tc.wantScore)
			}
			if summary.Verdict != tc.wantVerdict {
				t.Errorf("Verdict = %q, want %q", summary.Verdict, tc.wantVerdict)
			}
		})
	}
}

func TestScore_RoundsHalfUp(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		correct   int
		wantScore float64
	}{
		{name: "one third rounds down", total: 3, correct: 1, wantScore: 33},
		{name: "two thirds rounds up", total: 3, correct: 2, wantScore: 67},
		{name: "exact half rounds up", total: 8, correct: 1, wantScore: 13}, // 12.5
		{name: "five eighths rounds up", total: 8, correct: 5, wantScore: 63},
		{name: "all correct", total: 8, correct: 8, wantScore: 100},
	}

	scoring := NewScoringService()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			questions := make([]model.Question, tc.total)
			answers := map[string]string{}
			for i := range questions {
				questions[i] = model.Question{Question: "Q", Options: []string{"x", "y"}, Answer: "A"}
				if i < tc.correct {
					answers[strconv.Itoa(i)] = "A"
				}
			}
			summary, err := scoring.Score(questions, answers, 50)
			if err != nil {
				t.Fatalf("Score returned error: %v", err)
			}
			if summary.Score != tc.wantScore {
				t.Errorf("Score = %v, want %v", summary.Score, tc.wantScore)
			}
		})
	}
}

func TestScore_NoQuestionsIsAnError(t *testing.T) {
	scoring := NewScoringService()
	if _, err := scoring.Score(nil, map[string]string{"0": "A"}, 50); !errors.Is(err, ErrNoQuestions) {
		t.Fatalf("Score(empty questions) error = %v, want ErrNoQuestions", err)
	}
}
