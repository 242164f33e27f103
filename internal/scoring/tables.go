package scoring

import (
	"fmt"

	"github.com/lshigami/Compass/internal/model"
)

const (
	// Confidence is attached to every computed profile.
	Confidence = 0.85

	maxDominantLetters  = 3
	maxSuggestions      = 5
	maxDevelopmentAreas = 3

	FallbackPersonalityLabel = "Versatile Explorer"
)

var personalityLabels = map[model.Dimension]string{
	model.DimensionRealistic:     "The Practical Builder",
	model.DimensionInvestigative: "The Analytical Thinker",
	model.DimensionArtistic:      "The Creative Innovator",
	model.DimensionSocial:        "The Supportive Helper",
	model.DimensionEnterprising:  "The Persuasive Leader",
	model.DimensionConventional:  "The Organized Planner",
}

var careerSuggestions = map[model.Dimension][]string{
	model.DimensionRealistic: {
		"Mechanical Engineer",
		"Electrician",
		"Civil Engineering Technician",
		"Landscape Architect",
	},
	model.DimensionInvestigative: {
		"Data Scientist",
		"Research Analyst",
		"Software Engineer",
		"Pharmacist",
	},
	model.DimensionArtistic: {
		"UX Designer",
		"Graphic Designer",
		"Copywriter",
		"Architect",
	},
	model.DimensionSocial: {
		"Teacher",
		"Career Counselor",
		"Nurse",
		"HR Specialist",
	},
	model.DimensionEnterprising: {
		"Product Manager",
		"Sales Manager",
		"Entrepreneur",
		"Marketing Manager",
	},
	model.DimensionConventional: {
		"Accountant",
		"Financial Analyst",
		"Project Coordinator",
		"Logistics Planner",
	},
}

var fallbackSuggestions = []string{
	"Career Counselor consultation",
	"Job shadowing in different fields",
	"Generalist internship programme",
}

var fallbackDevelopmentAreas = []string{
	"Communication",
	"Problem Solving",
	"Time Management",
}

func init() {
	if err := checkTables(); err != nil {
		panic(err)
	}
}

// checkTables verifies that every dimension has a label and suggestions and
// that no table carries an unknown code.
func checkTables() error {
	for _, d := range model.Dimensions {
		if personalityLabels[d] == "" {
			return fmt.Errorf("scoring: no personality label for dimension %s", d)
		}
		if len(careerSuggestions[d]) == 0 {
			return fmt.Errorf("scoring: no career suggestions for dimension %s", d)
		}
	}
	if len(personalityLabels) != len(model.Dimensions) || len(careerSuggestions) != len(model.Dimensions) {
		return fmt.Errorf("scoring: lookup tables contain unknown dimensions")
	}
	return nil
}

// PersonalityLabel maps the first letter of a dominant code to its label.
func PersonalityLabel(code string) string {
	if code == "" {
		return FallbackPersonalityLabel
	}
	if label, ok := personalityLabels[model.Dimension(code[:1])]; ok {
		return label
	}
	return FallbackPersonalityLabel
}

// CareerSuggestions concatenates the suggestions of every letter in code,
// keeping duplicates, and truncates to five entries.
func CareerSuggestions(code string) []string {
	if code == "" {
		return append([]string(nil), fallbackSuggestions...)
	}
	out := make([]string, 0, maxSuggestions)
	for _, letter := range code {
		out = append(out, careerSuggestions[model.Dimension(letter)]...)
	}
	if len(out) > maxSuggestions {
		out = out[:maxSuggestions]
	}
	if len(out) == 0 {
		return append([]string(nil), fallbackSuggestions...)
	}
	return out
}
