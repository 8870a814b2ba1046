package service

import (
	"strings"

	"github.com/ashwinsr/placement-portal/internal/model"
	"github.com/rs/zerolog/log"
)

// AudienceResolverService computes which students receive a newly published
// test. A student matches when, for every non-empty criterion list, their
// attribute is a member of that list; empty lists restrict nothing.
type AudienceResolverService interface {
	Resolve(students []model.User, filter model.TargetAudience) (matched []model.User, fellBack bool)
}

type audienceResolverService struct{}

func NewAudienceResolverService() AudienceResolverService {
	return &audienceResolverService{}
}

// Resolve never returns an empty set for a non-empty population: when the
// filter conjunction matches nobody, it falls back to the whole population
// and reports fellBack=true so the caller can surface it in the API response.
func (s *audienceResolverService) Resolve(students []model.User, filter model.TargetAudience) ([]model.User, bool) {
	if len(students) == 0 {
		return nil, false
	}

	if filter.IsEmpty() {
		// No filter at all means the entire student population, by policy.
		return students, false
	}

	var matched []model.User
	for _, student := range students {
		if matchesAudience(student, filter) {
			matched = append(matched, student)
		}
	}

	if len(matched) == 0 {
		log.Warn().
			Strs("departments", filter.Departments).
			Strs("years", filter.Years).
			Strs("sections", filter.Sections).
			Strs("genders", filter.Genders).
			Int("population", len(students)).
			Msg("Audience filter matched no students; falling back to entire population")
		return students, true
	}

	return matched, false
}

func matchesAudience(student model.User, filter model.TargetAudience) bool {
	return containsOrEmpty(filter.Departments, student.Department) &&
		matchesYear(filter.Years, student.Year) &&
		containsOrEmpty(filter.Sections, student.Section) &&
		containsOrEmpty(filter.Genders, student.Gender)
}

func containsOrEmpty(criteria []string, value string) bool {
	if len(criteria) == 0 {
		return true
	}
	for _, c := range criteria {
		if c == value {
			return true
		}
	}
	return false
}

// matchesYear additionally tolerates numeric-vs-string year values, so a
// filter of "3" matches records holding "3" or "03".
func matchesYear(criteria []string, year string) bool {
	if len(criteria) == 0 {
		return true
	}
	trimmed := strings.TrimLeft(year, "0")
	if trimmed == "" {
		trimmed = "0"
	}
	for _, c := range criteria {
		if c == year {
			return true
		}
		cTrimmed := strings.TrimLeft(c, "0")
		if cTrimmed == "" {
			cTrimmed = "0"
		}
		if cTrimmed == trimmed {
			return true
		}
	}
	return false
}
