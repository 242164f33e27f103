// Package scoring turns the answers of a completed attempt into a career
// profile: a Holland-code personality classification plus per-area
// competency scores. Everything here is a pure function of its inputs.
package scoring

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/lshigami/Compass/internal/model"
)

// Result is the derived part of a career profile.
type Result struct {
	HollandCode       string
	PersonalityLabel  string
	DimensionTally    map[model.Dimension]int
	CompetencyScores  map[string]float64
	CareerSuggestions []string
	DevelopmentAreas  []string
	AnalysisNote      string
	Confidence        float64
	AnsweredCount     int
	GeneratedAt       time.Time
}

// Compute scores a set of answers against the question catalog. Answers
// whose question is missing from the catalog are skipped.
func Compute(questions []model.Question, answers []model.Answer, at time.Time) Result {
	catalog := make(map[uint]*model.Question, len(questions))
	for i := range questions {
		catalog[questions[i].ID] = &questions[i]
	}

	tally := make(map[model.Dimension]int, len(model.Dimensions))
	for _, d := range model.Dimensions {
		tally[d] = 0
	}
	competencies := make(map[string]float64)
	scored := 0

	for _, a := range answers {
		q, ok := catalog[a.QuestionID]
		if !ok {
			continue
		}
		scored++
		value := a.Value.Data()

		if q.Dimension != nil {
			if vote, ok := value.DimensionVote(); ok {
				if d := model.Dimension(vote); d.Valid() {
					tally[d]++
				}
			}
		}
		if q.CompetencyArea != nil && *q.CompetencyArea != "" {
			if score, ok := value.NumericScore(); ok {
				competencies[*q.CompetencyArea] += score
			}
		}
	}

	code := DominantCode(tally)
	return Result{
		HollandCode:       code,
		PersonalityLabel:  PersonalityLabel(code),
		DimensionTally:    tally,
		CompetencyScores:  competencies,
		CareerSuggestions: CareerSuggestions(code),
		DevelopmentAreas:  DevelopmentAreas(competencies),
		AnalysisNote:      analysisNote(code, competencies, scored, at),
		Confidence:        Confidence,
		AnsweredCount:     scored,
		GeneratedAt:       at,
	}
}

// DominantCode returns up to three dimension letters ordered by descending
// vote count. Ties keep the canonical RIASEC order and dimensions without
// votes are left out, so an empty tally yields "".
func DominantCode(tally map[model.Dimension]int) string {
	ranked := make([]model.Dimension, len(model.Dimensions))
	copy(ranked, model.Dimensions)
	sort.SliceStable(ranked, func(i, j int) bool {
		return tally[ranked[i]] > tally[ranked[j]]
	})

	var b strings.Builder
	for _, d := range ranked {
		if b.Len() == maxDominantLetters || tally[d] == 0 {
			break
		}
		b.WriteString(string(d))
	}
	return b.String()
}

// DevelopmentAreas returns the three weakest competency areas, weakest
// first. Equal scores are ordered by area name.
func DevelopmentAreas(scores map[string]float64) []string {
	if len(scores) == 0 {
		return append([]string(nil), fallbackDevelopmentAreas...)
	}
	areas := make([]string, 0, len(scores))
	for area := range scores {
		areas = append(areas, area)
	}
	sort.Slice(areas, func(i, j int) bool {
		if scores[areas[i]] != scores[areas[j]] {
			return scores[areas[i]] < scores[areas[j]]
		}
		return areas[i] < areas[j]
	})
	if len(areas) > maxDevelopmentAreas {
		areas = areas[:maxDevelopmentAreas]
	}
	return areas
}

func analysisNote(code string, competencies map[string]float64, answered int, at time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Profile generated on %s from %d answers.", at.UTC().Format(time.RFC3339), answered)
	if code == "" {
		b.WriteString(" No dominant interest pattern was detected.")
	} else {
		fmt.Fprintf(&b, " Dominant Holland code %s (%s).", code, PersonalityLabel(code))
	}
	if len(competencies) > 0 {
		fmt.Fprintf(&b, " Competency data covers %d areas.", len(competencies))
	}
	return b.String()
}
