package scoring

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lshigami/Compass/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func sampleResult() Result {
	return Result{
		HollandCode:       "IAS",
		PersonalityLabel:  "The Analytical Thinker",
		CompetencyScores:  map[string]float64{"analysis": 8},
		CareerSuggestions: []string{"Data Scientist"},
		DevelopmentAreas:  []string{"analysis"},
		AnalysisNote:      "note",
		Confidence:        Confidence,
		GeneratedAt:       fixedTime,
	}
}

func TestMerge_CreatesProfile(t *testing.T) {
	userID := uuid.New()

	p, changed := Merge(nil, userID, 7, sampleResult(), fixedTime)

	require.True(t, changed)
	assert.Equal(t, userID, p.UserID)
	assert.Equal(t, uint(7), p.AttemptID)
	assert.Equal(t, "IAS", p.HollandCode)
	assert.Equal(t, map[string]float64{"analysis": 8}, p.CompetencyScores.Data())
	assert.Equal(t, []string{"Data Scientist"}, []string(p.CareerSuggestions))
}

func TestMerge_PreservesEditableSections(t *testing.T) {
	userID := uuid.New()
	existing := &model.CareerProfile{
		ID:                     3,
		UserID:                 userID,
		AttemptID:              1,
		HollandCode:            "RCE",
		PersonalityLabel:       "The Practical Builder",
		AnalysisNote:           "old",
		PersonalInfo:           datatypes.NewJSONType(model.PersonalInfo{Bio: "Ten years in logistics", Location: "Lyon"}),
		WorkHistory:            datatypes.NewJSONSlice([]model.WorkEntry{{Company: "Acme", Role: "Planner"}}),
		Goals:                  datatypes.NewJSONType(model.Goals{ShortTerm: "Learn SQL"}),
		WorkValues:             datatypes.NewJSONSlice([]string{"autonomy"}),
		EnvironmentPreferences: datatypes.NewJSONSlice([]string{"remote"}),
	}

	p, changed := Merge(existing, uuid.New(), 2, sampleResult(), fixedTime.Add(time.Hour))

	require.True(t, changed)
	assert.Equal(t, uint(3), p.ID)
	assert.Equal(t, userID, p.UserID)
	assert.Equal(t, uint(2), p.AttemptID)
	assert.Equal(t, "IAS", p.HollandCode)
	assert.Equal(t, "note", p.AnalysisNote)
	assert.Equal(t, existing.PersonalInfo.Data(), p.PersonalInfo.Data())
	assert.Equal(t, existing.WorkHistory, p.WorkHistory)
	assert.Equal(t, existing.Goals.Data(), p.Goals.Data())
	assert.Equal(t, existing.WorkValues, p.WorkValues)
	assert.Equal(t, existing.EnvironmentPreferences, p.EnvironmentPreferences)
	assert.Equal(t, "RCE", existing.HollandCode, "existing profile must not be mutated")
}

func TestMerge_SameAttemptIsNoop(t *testing.T) {
	existing := &model.CareerProfile{AttemptID: 4, HollandCode: "SEC"}

	p, changed := Merge(existing, uuid.New(), 4, sampleResult(), fixedTime)

	assert.False(t, changed)
	assert.Same(t, existing, p)
	assert.Equal(t, "SEC", p.HollandCode)
}
