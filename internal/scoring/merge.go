package scoring

import (
	"time"

	"github.com/google/uuid"
	"github.com/lshigami/Compass/internal/model"
	"gorm.io/datatypes"
)

// Merge applies a scoring result computed from attemptID to a user's
// profile. A nil existing profile yields a fresh one. When the profile was
// already derived from attemptID it is returned unchanged and the second
// return value is false. Only derived fields are replaced; personal info,
// work history, goals, work values and environment preferences are kept.
func Merge(existing *model.CareerProfile, userID uuid.UUID, attemptID uint, r Result, now time.Time) (*model.CareerProfile, bool) {
	if existing != nil && existing.AttemptID == attemptID {
		return existing, false
	}

	var merged model.CareerProfile
	if existing != nil {
		merged = *existing
	} else {
		merged.UserID = userID
	}

	scores := make(map[string]float64, len(r.CompetencyScores))
	for area, v := range r.CompetencyScores {
		scores[area] = v
	}

	merged.AttemptID = attemptID
	merged.HollandCode = r.HollandCode
	merged.PersonalityLabel = r.PersonalityLabel
	merged.CompetencyScores = datatypes.NewJSONType(scores)
	merged.CareerSuggestions = datatypes.NewJSONSlice(append([]string(nil), r.CareerSuggestions...))
	merged.DevelopmentAreas = datatypes.NewJSONSlice(append([]string(nil), r.DevelopmentAreas...))
	merged.AnalysisNote = r.AnalysisNote
	merged.Confidence = r.Confidence
	merged.GeneratedAt = r.GeneratedAt
	merged.UpdatedAt = now
	return &merged, true
}
