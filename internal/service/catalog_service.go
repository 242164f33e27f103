package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/jinzhu/copier"
	"github.com/lshigami/Compass/internal/catalog"
	"github.com/lshigami/Compass/internal/dto"
	"github.com/lshigami/Compass/internal/model"
	"github.com/lshigami/Compass/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
)

type CatalogService interface {
	ListQuestions(ctx context.Context, activeOnly bool) ([]dto.QuestionResponse, error)
	// ImportQuestions upserts the questions by order index. Imported
	// questions are always active.
	ImportQuestions(ctx context.Context, inputs []dto.QuestionInput) (int, error)
	Deactivate(ctx context.Context, questionID uint) error
	// Seed loads a catalog file. Existing questions get their content
	// refreshed but keep their active flag.
	Seed(ctx context.Context, path string) (int, error)
}

type catalogService struct {
	questionRepo repository.QuestionRepository
}

func NewCatalogService(questionRepo repository.QuestionRepository) CatalogService {
	return &catalogService{questionRepo: questionRepo}
}

func (s *catalogService) ListQuestions(ctx context.Context, activeOnly bool) ([]dto.QuestionResponse, error) {
	questions, err := s.questionRepo.FindAll(ctx, activeOnly)
	if err != nil {
		return nil, storageError("list questions", err)
	}
	resp := make([]dto.QuestionResponse, 0, len(questions))
	for i := range questions {
		resp = append(resp, toQuestionResponse(&questions[i]))
	}
	return resp, nil
}

func (s *catalogService) ImportQuestions(ctx context.Context, inputs []dto.QuestionInput) (int, error) {
	return s.upsert(ctx, inputs, true)
}

func (s *catalogService) upsert(ctx context.Context, inputs []dto.QuestionInput, reactivate bool) (int, error) {
	if len(inputs) == 0 {
		return 0, fmt.Errorf("%w: no questions to import", ErrValidation)
	}
	questions := make([]model.Question, 0, len(inputs))
	seen := make(map[int]struct{}, len(inputs))
	for i, in := range inputs {
		if _, dup := seen[in.OrderIndex]; dup {
			return 0, fmt.Errorf("%w: question %d: duplicate order_index %d", ErrValidation, i, in.OrderIndex)
		}
		seen[in.OrderIndex] = struct{}{}
		q, err := buildQuestion(in)
		if err != nil {
			return 0, fmt.Errorf("question %d: %w", i, err)
		}
		questions = append(questions, q)
	}
	if err := s.questionRepo.UpsertByOrderIndex(ctx, questions, reactivate); err != nil {
		return 0, storageError("import questions", err)
	}
	log.Info().Int("count", len(questions)).Bool("reactivate", reactivate).Msg("Question catalog imported")
	return len(questions), nil
}

func (s *catalogService) Deactivate(ctx context.Context, questionID uint) error {
	found, err := s.questionRepo.Deactivate(ctx, questionID)
	if err != nil {
		return storageError("deactivate question", err)
	}
	if !found {
		return fmt.Errorf("%w: question %d", ErrNotFound, questionID)
	}
	log.Info().Uint("questionID", questionID).Msg("Question deactivated")
	return nil
}

func (s *catalogService) Seed(ctx context.Context, path string) (int, error) {
	inputs, err := catalog.LoadFile(path)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return s.upsert(ctx, inputs, false)
}

// buildQuestion checks that the options fit the question type.
func buildQuestion(in dto.QuestionInput) (model.Question, error) {
	if strings.TrimSpace(in.Text) == "" {
		return model.Question{}, fmt.Errorf("%w: text is required", ErrValidation)
	}
	if !in.Type.Valid() {
		return model.Question{}, fmt.Errorf("%w: unknown question type %q", ErrValidation, in.Type)
	}
	if !in.Category.Valid() {
		return model.Question{}, fmt.Errorf("%w: unknown category %q", ErrValidation, in.Category)
	}
	if in.Dimension != nil && !in.Dimension.Valid() {
		return model.Question{}, fmt.Errorf("%w: unknown dimension %q", ErrValidation, *in.Dimension)
	}
	if in.OrderIndex < 0 {
		return model.Question{}, fmt.Errorf("%w: order_index must not be negative", ErrValidation)
	}

	opts := in.Options
	switch in.Type {
	case model.QuestionTypeSingleChoice, model.QuestionTypeMultipleChoice:
		if len(opts.Choices) == 0 {
			return model.Question{}, fmt.Errorf("%w: %s needs choices", ErrValidation, in.Type)
		}
	case model.QuestionTypeSlider:
		if opts.Slider == nil || opts.Slider.Max <= opts.Slider.Min {
			return model.Question{}, fmt.Errorf("%w: slider needs max greater than min", ErrValidation)
		}
	case model.QuestionTypeRanking:
		if len(opts.Ranking) < 2 {
			return model.Question{}, fmt.Errorf("%w: ranking needs at least two items", ErrValidation)
		}
	}

	return model.Question{
		Text:           strings.TrimSpace(in.Text),
		Type:           in.Type,
		Category:       in.Category,
		Subcategory:    in.Subcategory,
		Dimension:      in.Dimension,
		CompetencyArea: in.CompetencyArea,
		Options:        datatypes.NewJSONType(opts),
		OrderIndex:     in.OrderIndex,
		Active:         true,
	}, nil
}

func toQuestionResponse(q *model.Question) dto.QuestionResponse {
	var resp dto.QuestionResponse
	if err := copier.Copy(&resp, q); err != nil {
		log.Warn().Err(err).Uint("questionID", q.ID).Msg("Failed to map question")
	}
	resp.Options = q.Options.Data()
	return resp
}
