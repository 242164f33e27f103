package model

import (
	"time"

	"gorm.io/datatypes"
)

type QuestionType string

const (
	QuestionTypeSingleChoice   QuestionType = "single_choice"
	QuestionTypeMultipleChoice QuestionType = "multiple_choice"
	QuestionTypeSlider         QuestionType = "slider"
	QuestionTypeRanking        QuestionType = "ranking"
	QuestionTypeShortText      QuestionType = "short_text"
)

func (t QuestionType) Valid() bool {
	switch t {
	case QuestionTypeSingleChoice, QuestionTypeMultipleChoice, QuestionTypeSlider, QuestionTypeRanking, QuestionTypeShortText:
		return true
	}
	return false
}

type Category string

const (
	CategoryInterests    Category = "interests"
	CategoryCompetencies Category = "competencies"
	CategoryValues       Category = "values"
	CategoryEnvironment  Category = "environment"
	CategoryAspirations  Category = "aspirations"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryInterests, CategoryCompetencies, CategoryValues, CategoryEnvironment, CategoryAspirations:
		return true
	}
	return false
}

// Dimension is one of the six Holland (RIASEC) personality dimensions.
type Dimension string

const (
	DimensionRealistic     Dimension = "R"
	DimensionInvestigative Dimension = "I"
	DimensionArtistic      Dimension = "A"
	DimensionSocial        Dimension = "S"
	DimensionEnterprising  Dimension = "E"
	DimensionConventional  Dimension = "C"
)

// Dimensions lists the six codes in canonical RIASEC order.
var Dimensions = []Dimension{
	DimensionRealistic,
	DimensionInvestigative,
	DimensionArtistic,
	DimensionSocial,
	DimensionEnterprising,
	DimensionConventional,
}

func (d Dimension) Valid() bool {
	for _, code := range Dimensions {
		if d == code {
			return true
		}
	}
	return false
}

// ChoiceOption is one selectable option of a choice question. Value is what
// gets recorded as the answer; for interest items it is a dimension code.
type ChoiceOption struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

// SliderOptions bounds a slider question.
type SliderOptions struct {
	Min      float64 `json:"min" yaml:"min"`
	Max      float64 `json:"max" yaml:"max"`
	Step     float64 `json:"step,omitempty" yaml:"step"`
	MinLabel string  `json:"min_label,omitempty" yaml:"min_label"`
	MaxLabel string  `json:"max_label,omitempty" yaml:"max_label"`
}

// QuestionOptions is the type-specific option payload of a question.
type QuestionOptions struct {
	Choices []ChoiceOption `json:"choices,omitempty" yaml:"choices"`
	Slider  *SliderOptions `json:"slider,omitempty" yaml:"slider"`
	Ranking []string       `json:"ranking,omitempty" yaml:"ranking"`
}

// Question is a catalog item. Questions are retired through Active only,
// never deleted, so answers keep resolving.
type Question struct {
	ID             uint                                `gorm:"primarykey" json:"id"`
	Text           string                              `json:"text" gorm:"type:text;not null"`
	Type           QuestionType                        `json:"type" gorm:"size:32;not null"`
	Category       Category                            `json:"category" gorm:"size:32;not null;index"`
	Subcategory    *string                             `json:"subcategory,omitempty" gorm:"size:100"`
	Dimension      *Dimension                          `json:"dimension,omitempty" gorm:"size:1"`
	CompetencyArea *string                             `json:"competency_area,omitempty" gorm:"size:100"`
	Options        datatypes.JSONType[QuestionOptions] `json:"options"`
	OrderIndex     int                                 `json:"order_index" gorm:"not null;uniqueIndex"`
	Active         bool                                `json:"active" gorm:"not null;default:true;index"`
	CreatedAt      time.Time                           `json:"created_at"`
	UpdatedAt      time.Time                           `json:"updated_at"`
}

// SliderMax returns the upper bound of a slider question, if it has one.
func (q *Question) SliderMax() (float64, bool) {
	if q.Type != QuestionTypeSlider {
		return 0, false
	}
	opts := q.Options.Data()
	if opts.Slider == nil {
		return 0, false
	}
	return opts.Slider.Max, true
}
