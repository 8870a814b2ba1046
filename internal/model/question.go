package model

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"
)

// Question is one multiple-choice item embedded in a Test's JSON column.
// Answer holds the correct option label ("A".."D").
type Question struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
}

// TargetAudience is the staff-authored targeting filter. An empty list means
// "no restriction" on that dimension; all four empty means everyone.
type TargetAudience struct {
	Departments []string `json:"departments"`
	Years       []string `json:"years"`
	Sections    []string `json:"sections"`
	Genders     []string `json:"genders"`
}

// IsEmpty reports whether no criterion is set on any dimension.
func (a TargetAudience) IsEmpty() bool {
	return len(a.Departments) == 0 && len(a.Years) == 0 &&
		len(a.Sections) == 0 && len(a.Genders) == 0
}

func DecodeQuestions(raw datatypes.JSON) ([]Question, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var questions []Question
	if err := json.Unmarshal(raw, &questions); err != nil {
		return nil, fmt.Errorf("malformed question list: %w", err)
	}
	return questions, nil
}

func EncodeQuestions(questions []Question) (datatypes.JSON, error) {
	raw, err := json.Marshal(questions)
	if err != nil {
		return nil, fmt.Errorf("encoding question list: %w", err)
	}
	return datatypes.JSON(raw), nil
}

func DecodeTargetAudience(raw datatypes.JSON) (TargetAudience, error) {
	var audience TargetAudience
	if len(raw) == 0 {
		return audience, nil
	}
	if err := json.Unmarshal(raw, &audience); err != nil {
		return audience, fmt.Errorf("malformed target audience: %w", err)
	}
	return audience, nil
}

func EncodeTargetAudience(audience TargetAudience) (datatypes.JSON, error) {
	raw, err := json.Marshal(audience)
	if err != nil {
		return nil, fmt.Errorf("encoding target audience: %w", err)
	}
	return datatypes.JSON(raw), nil
}

// DecodeAnswerMap decodes a submitted answer map (question index -> chosen
// option label). JSON object keys are always strings; numeric-looking keys
// are kept as-is and matched by the scoring engine.
func DecodeAnswerMap(raw datatypes.JSON) (map[string]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var answers map[string]string
	if err := json.Unmarshal(raw, &answers); err != nil {
		return nil, fmt.Errorf("malformed answer map: %w", err)
	}
	return answers, nil
}
