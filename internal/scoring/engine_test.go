package scoring

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/lshigami/Compass/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

var fixedTime = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func dimensionQuestion(id uint, d model.Dimension) model.Question {
	return model.Question{ID: id, Type: model.QuestionTypeSingleChoice, Category: model.CategoryInterests, Dimension: &d, OrderIndex: int(id)}
}

func competencyQuestion(id uint, area string) model.Question {
	return model.Question{ID: id, Type: model.QuestionTypeSlider, Category: model.CategoryCompetencies, CompetencyArea: &area, OrderIndex: int(id)}
}

func answer(t *testing.T, questionID uint, qt model.QuestionType, raw string) model.Answer {
	t.Helper()
	v, err := model.DecodeAnswerValue(qt, json.RawMessage(raw))
	require.NoError(t, err)
	return model.Answer{QuestionID: questionID, Value: datatypes.NewJSONType(v)}
}

func TestCompute_DominantCodeFromVotes(t *testing.T) {
	questions := []model.Question{
		dimensionQuestion(1, model.DimensionRealistic),
		dimensionQuestion(2, model.DimensionInvestigative),
		dimensionQuestion(3, model.DimensionRealistic),
	}
	answers := []model.Answer{
		answer(t, 1, model.QuestionTypeSingleChoice, `"R"`),
		answer(t, 2, model.QuestionTypeSingleChoice, `"I"`),
		answer(t, 3, model.QuestionTypeSingleChoice, `"R"`),
	}

	r := Compute(questions, answers, fixedTime)

	assert.Equal(t, "RI", r.HollandCode)
	assert.Equal(t, 2, r.DimensionTally[model.DimensionRealistic])
	assert.Equal(t, 1, r.DimensionTally[model.DimensionInvestigative])
	assert.Equal(t, "The Practical Builder", r.PersonalityLabel)

	want := append(append([]string{}, careerSuggestions[model.DimensionRealistic]...), careerSuggestions[model.DimensionInvestigative]...)[:5]
	assert.Equal(t, want, r.CareerSuggestions)
	assert.Equal(t, Confidence, r.Confidence)
	assert.Equal(t, fixedTime, r.GeneratedAt)
	assert.Contains(t, r.AnalysisNote, "2026-03-14T09:30:00Z")
}

func TestCompute_IgnoresInvalidVotesAndMissingQuestions(t *testing.T) {
	questions := []model.Question{
		dimensionQuestion(1, model.DimensionArtistic),
		dimensionQuestion(2, model.DimensionSocial),
	}
	answers := []model.Answer{
		answer(t, 1, model.QuestionTypeSingleChoice, `"A"`),
		answer(t, 2, model.QuestionTypeSingleChoice, `"X"`),
		answer(t, 99, model.QuestionTypeSingleChoice, `"S"`),
	}

	r := Compute(questions, answers, fixedTime)

	assert.Equal(t, "A", r.HollandCode)
	assert.Equal(t, 0, r.DimensionTally[model.DimensionSocial])
	assert.Equal(t, 2, r.AnsweredCount)
}

func TestCompute_SliderDoesNotVote(t *testing.T) {
	d := model.DimensionEnterprising
	questions := []model.Question{{ID: 1, Type: model.QuestionTypeSlider, Dimension: &d}}
	answers := []model.Answer{answer(t, 1, model.QuestionTypeSlider, `9`)}

	r := Compute(questions, answers, fixedTime)

	assert.Equal(t, "", r.HollandCode)
	assert.Equal(t, FallbackPersonalityLabel, r.PersonalityLabel)
	assert.Equal(t, fallbackSuggestions, r.CareerSuggestions)
}

func TestCompute_RankingVotesWithTopEntry(t *testing.T) {
	d := model.DimensionConventional
	questions := []model.Question{{ID: 1, Type: model.QuestionTypeRanking, Dimension: &d}}
	answers := []model.Answer{answer(t, 1, model.QuestionTypeRanking, `["C","S","E"]`)}

	r := Compute(questions, answers, fixedTime)

	assert.Equal(t, "C", r.HollandCode)
}

func TestCompute_CompetencyAggregation(t *testing.T) {
	questions := []model.Question{
		competencyQuestion(1, "communication"),
		competencyQuestion(2, "communication"),
		competencyQuestion(3, "leadership"),
		competencyQuestion(4, "analysis"),
		competencyQuestion(5, "creativity"),
		{ID: 6, Type: model.QuestionTypeSingleChoice, CompetencyArea: strPtr("teamwork")},
		{ID: 7, Type: model.QuestionTypeShortText, CompetencyArea: strPtr("writing")},
	}
	answers := []model.Answer{
		answer(t, 1, model.QuestionTypeSlider, `4`),
		answer(t, 2, model.QuestionTypeSlider, `5`),
		answer(t, 3, model.QuestionTypeSlider, `2`),
		answer(t, 4, model.QuestionTypeSlider, `7`),
		answer(t, 5, model.QuestionTypeSlider, `3`),
		answer(t, 6, model.QuestionTypeSingleChoice, `6`),
		answer(t, 7, model.QuestionTypeShortText, `"I write a lot"`),
	}

	r := Compute(questions, answers, fixedTime)

	assert.Equal(t, map[string]float64{
		"communication": 9,
		"leadership":    2,
		"analysis":      7,
		"creativity":    3,
		"teamwork":      6,
	}, r.CompetencyScores)
	assert.Equal(t, []string{"leadership", "creativity", "teamwork"}, r.DevelopmentAreas)
}

func TestCompute_IsDeterministic(t *testing.T) {
	questions := []model.Question{
		dimensionQuestion(1, model.DimensionSocial),
		dimensionQuestion(2, model.DimensionEnterprising),
		competencyQuestion(3, "b"),
		competencyQuestion(4, "a"),
		competencyQuestion(5, "c"),
		competencyQuestion(6, "d"),
	}
	answers := []model.Answer{
		answer(t, 1, model.QuestionTypeSingleChoice, `"S"`),
		answer(t, 2, model.QuestionTypeSingleChoice, `"E"`),
		answer(t, 3, model.QuestionTypeSlider, `1`),
		answer(t, 4, model.QuestionTypeSlider, `1`),
		answer(t, 5, model.QuestionTypeSlider, `1`),
		answer(t, 6, model.QuestionTypeSlider, `1`),
	}

	first := Compute(questions, answers, fixedTime)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, Compute(questions, answers, fixedTime))
	}
	assert.Equal(t, "SE", first.HollandCode)
	assert.Equal(t, []string{"a", "b", "c"}, first.DevelopmentAreas)
}

func TestDominantCode(t *testing.T) {
	tests := []struct {
		name  string
		tally map[model.Dimension]int
		want  string
	}{
		{"empty", map[model.Dimension]int{}, ""},
		{"single", map[model.Dimension]int{"C": 1}, "C"},
		{"top three", map[model.Dimension]int{"R": 1, "I": 5, "A": 2, "S": 4, "E": 3}, "ISE"},
		{"ties keep RIASEC order", map[model.Dimension]int{"C": 2, "A": 2, "R": 2, "E": 2}, "RAE"},
		{"unknown codes ignored", map[model.Dimension]int{"X": 9, "S": 1}, "S"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := DominantCode(tc.tally)
			assert.Equal(t, tc.want, got)
			assert.LessOrEqual(t, len(got), 3)
			for _, letter := range got {
				assert.True(t, model.Dimension(letter).Valid(), "letter %q", letter)
			}
		})
	}
}

func TestDevelopmentAreas_Fallback(t *testing.T) {
	assert.Equal(t, []string{"Communication", "Problem Solving", "Time Management"}, DevelopmentAreas(nil))
	assert.Equal(t, []string{"Communication", "Problem Solving", "Time Management"}, DevelopmentAreas(map[string]float64{}))
}

func TestDevelopmentAreas_FewerThanThree(t *testing.T) {
	assert.Equal(t, []string{"b", "a"}, DevelopmentAreas(map[string]float64{"a": 3, "b": 1}))
}

func TestPersonalityLabel(t *testing.T) {
	assert.Equal(t, "The Analytical Thinker", PersonalityLabel("IAS"))
	assert.Equal(t, FallbackPersonalityLabel, PersonalityLabel(""))
	assert.Equal(t, FallbackPersonalityLabel, PersonalityLabel("Z"))
}

func TestCareerSuggestions_NoDedupeAcrossCodes(t *testing.T) {
	got := CareerSuggestions("SE")
	assert.Len(t, got, 5)
	assert.Equal(t, careerSuggestions[model.DimensionSocial], got[:4])
	assert.Equal(t, careerSuggestions[model.DimensionEnterprising][0], got[4])
}

func TestCareerSuggestions_FallbackIsCopy(t *testing.T) {
	got := CareerSuggestions("")
	got[0] = "mutated"
	assert.NotEqual(t, "mutated", fallbackSuggestions[0])
}

func TestCheckTables(t *testing.T) {
	require.NoError(t, checkTables())
}

func strPtr(s string) *string { return &s }
