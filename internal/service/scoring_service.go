package service

import (
	"math"
	"strconv"

	"github.com/ashwinsr/placement-portal/internal/model"
)

// ScoreSummary is the outcome of grading one answer sheet.
type ScoreSummary struct {
	CorrectCount   int
	TotalQuestions int
	Score          float64 // percentage 0-100, rounded half-up
	Verdict        string  // passed | failed
}

// ScoringService grades an answer sheet against a question list. It is a pure
// computation: inputs are explicit, there is no I/O and no session state, so
// the student submission path and any staff re-grading tool score identically.
type ScoringService interface {
	Score(questions []model.Question, answers map[string]string, passingPercent int) (ScoreSummary, error)
}

type scoringService struct{}

func NewScoringService() ScoringService {
	return &scoringService{}
}

func (s *scoringService) Score(questions []model.Question, answers map[string]string, passingPercent int) (ScoreSummary, error) {
	if len(questions) == 0 {
		return ScoreSummary{}, ErrNoQuestions
	}

	normalized := normalizeAnswerKeys(answers)

	correct := 0
	for i, q := range questions {
		chosen, answered := normalized[i]
		if !answered {
			continue // unanswered counts as incorrect
		}
		if chosen == q.Answer { // exact, case-sensitive label match
			correct++
		}
	}

	score := math.Round(float64(correct) / float64(len(questions)) * 100)
	verdict := model.ResultStatusFailed
	if score >= float64(passingPercent) {
		verdict = model.ResultStatusPassed
	}

	return ScoreSummary{
		CorrectCount:   correct,
		TotalQuestions: len(questions),
		Score:          score,
		Verdict:        verdict,
	}, nil
}

// normalizeAnswerKeys maps string question indices ("0", "1", ...) to ints so
// string and numeric index keys are treated interchangeably. Keys that do not
// parse as an index are dropped, which grades them as unanswered.
func normalizeAnswerKeys(answers map[string]string) map[int]string {
	normalized := make(map[int]string, len(answers))
	for key, label := range answers {
		idx, err := strconv.Atoi(key)
		if err != nil || idx < 0 {
			continue
		}
		normalized[idx] = label
	}
	return normalized
}
