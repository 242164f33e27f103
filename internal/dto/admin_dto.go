package dto

import "github.com/lshigami/Compass/internal/model"

// QuestionInput is one catalog entry, shared by the admin import endpoint and
// the YAML seed file.
type QuestionInput struct {
	Text           string                `json:"text" yaml:"text" binding:"required" validate:"required"`
	Type           model.QuestionType    `json:"type" yaml:"type" binding:"required,oneof=single_choice multiple_choice slider ranking short_text" validate:"required,oneof=single_choice multiple_choice slider ranking short_text"`
	Category       model.Category        `json:"category" yaml:"category" binding:"required,oneof=interests competencies values environment aspirations" validate:"required,oneof=interests competencies values environment aspirations"`
	Subcategory    *string               `json:"subcategory" yaml:"subcategory"`
	Dimension      *model.Dimension      `json:"dimension" yaml:"dimension" binding:"omitempty,oneof=R I A S E C" validate:"omitempty,oneof=R I A S E C"`
	CompetencyArea *string               `json:"competency_area" yaml:"competency_area"`
	Options        model.QuestionOptions `json:"options" yaml:"options"`
	OrderIndex     int                   `json:"order_index" yaml:"order_index" binding:"min=0" validate:"min=0"`
}

type ImportQuestionsRequest struct {
	Questions []QuestionInput `json:"questions" binding:"required,min=1,dive"`
}

type ImportQuestionsResponse struct {
	Imported int `json:"imported"`
}
