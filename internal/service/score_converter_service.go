package service

import (
	"fmt"
	"math"
)

const MaxScaledCompetencyScore float64 = 100.0

// ScoreConverterService turns raw competency sums into percentages of what
// the catalog allows.
type ScoreConverterService interface {
	ConvertToScaledScore(rawScore, maxRaw float64) (float64, error)
	// ScaleCompetencies scales every area that has a positive maximum.
	// Areas without one are left out.
	ScaleCompetencies(scores, maxima map[string]float64) map[string]float64
}

type scoreConverterServiceImpl struct{}

func NewScoreConverterService() ScoreConverterService {
	return &scoreConverterServiceImpl{}
}

func (s *scoreConverterServiceImpl) ConvertToScaledScore(rawScore, maxRaw float64) (float64, error) {
	if maxRaw <= 0 {
		return 0, fmt.Errorf("maximum raw score %.2f must be positive", maxRaw)
	}
	if rawScore < 0 {
		return 0, fmt.Errorf("raw score %.2f is out of valid range (0-%.2f)", rawScore, maxRaw)
	}
	scaled := rawScore / maxRaw * MaxScaledCompetencyScore
	// Answers to since-deactivated questions can push a sum past the
	// current catalog maximum.
	if scaled > MaxScaledCompetencyScore {
		scaled = MaxScaledCompetencyScore
	}
	return math.Round(scaled*10) / 10, nil
}

func (s *scoreConverterServiceImpl) ScaleCompetencies(scores, maxima map[string]float64) map[string]float64 {
	scaled := make(map[string]float64, len(scores))
	for area, raw := range scores {
		v, err := s.ConvertToScaledScore(raw, maxima[area])
		if err != nil {
			continue
		}
		scaled[area] = v
	}
	return scaled
}
