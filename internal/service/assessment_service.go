package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/lshigami/Compass/internal/dto"
	"github.com/lshigami/Compass/internal/model"
	"github.com/lshigami/Compass/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AssessmentService runs a user's test attempts: starting or resuming an
// attempt, recording answers and reading them back.
type AssessmentService interface {
	StartAttempt(ctx context.Context, userID uuid.UUID) (*dto.StartAttemptResponse, error)
	RecordAnswer(ctx context.Context, userID uuid.UUID, attemptID, questionID uint, value json.RawMessage, declared model.QuestionType) (*dto.RecordAnswerResponse, error)
	GetAnswers(ctx context.Context, userID uuid.UUID, attemptID uint) (dto.AnswersResponse, error)
	ListMyAttempts(ctx context.Context, userID uuid.UUID) ([]dto.AttemptSummary, error)
}

type assessmentService struct {
	questionRepo    repository.QuestionRepository
	testAttemptRepo repository.TestAttemptRepository
	answerRepo      repository.AnswerRepository
	profiles        ProfileService
	db              *gorm.DB // Used for transactions within service methods
	now             func() time.Time
}

func NewAssessmentService(
	questionRepo repository.QuestionRepository,
	testAttemptRepo repository.TestAttemptRepository,
	answerRepo repository.AnswerRepository,
	profiles ProfileService,
	db *gorm.DB,
) AssessmentService {
	return &assessmentService{
		questionRepo:    questionRepo,
		testAttemptRepo: testAttemptRepo,
		answerRepo:      answerRepo,
		profiles:        profiles,
		db:              db,
		now:             time.Now,
	}
}

func (s *assessmentService) StartAttempt(ctx context.Context, userID uuid.UUID) (*dto.StartAttemptResponse, error) {
	if userID == uuid.Nil {
		return nil, ErrAuthenticationRequired
	}

	open, err := s.testAttemptRepo.FindOpenByUser(ctx, userID)
	if err == nil {
		log.Info().Str("userID", userID.String()).Uint("attemptID", open.ID).Msg("StartAttempt: resuming open attempt")
		return startedResponse(open, true), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, storageError("load open attempt", err)
	}

	questionIDs, err := s.questionRepo.FindActiveIDs(ctx)
	if err != nil {
		return nil, storageError("load active questions", err)
	}
	if len(questionIDs) == 0 {
		return nil, fmt.Errorf("%w: the question catalog has no active questions", ErrValidation)
	}

	attempt := &model.TestAttempt{
		UserID:         userID,
		TotalQuestions: len(questionIDs),
		QuestionIDs:    questionIDs,
		Status:         model.AttemptStatusStarted,
	}
	if err := s.testAttemptRepo.Create(ctx, attempt); err != nil {
		// A concurrent start may have won the one-open-attempt index.
		if open, findErr := s.testAttemptRepo.FindOpenByUser(ctx, userID); findErr == nil {
			return startedResponse(open, true), nil
		}
		return nil, storageError("create attempt", err)
	}

	log.Info().Str("userID", userID.String()).Uint("attemptID", attempt.ID).Int("total", attempt.TotalQuestions).Msg("StartAttempt: new attempt created")
	return startedResponse(attempt, false), nil
}

func startedResponse(attempt *model.TestAttempt, resumed bool) *dto.StartAttemptResponse {
	return &dto.StartAttemptResponse{
		AttemptID:   attempt.ID,
		Resumed:     resumed,
		Progress:    attempt.AnsweredCount,
		QuestionIDs: append([]uint{}, attempt.QuestionIDs...),
	}
}

func (s *assessmentService) RecordAnswer(
	ctx context.Context,
	userID uuid.UUID,
	attemptID, questionID uint,
	value json.RawMessage,
	declared model.QuestionType,
) (*dto.RecordAnswerResponse, error) {
	if userID == uuid.Nil {
		return nil, ErrAuthenticationRequired
	}

	var resp dto.RecordAnswerResponse
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		attempts := s.testAttemptRepo.WithTx(tx)
		// The row lock serializes answers to the same attempt so the recount
		// below sees every committed answer.
		attempt, err := attempts.LockByIDForUser(ctx, attemptID, userID)
		if err != nil {
			return lookupError(fmt.Sprintf("attempt %d", attemptID), err)
		}
		if attempt.IsTerminal() {
			return fmt.Errorf("%w: attempt %d is already completed", ErrInvalidState, attemptID)
		}

		question, err := s.questionRepo.WithTx(tx).FindByID(ctx, questionID)
		if err != nil {
			return lookupError(fmt.Sprintf("question %d", questionID), err)
		}
		// Membership follows the set frozen at start, not the current active flag.
		if !attempt.Includes(question.ID) {
			if !question.Active {
				return fmt.Errorf("%w: question %d is not active", ErrValidation, questionID)
			}
			return fmt.Errorf("%w: question %d is not part of attempt %d", ErrValidation, questionID, attemptID)
		}
		if !declared.Valid() {
			return fmt.Errorf("%w: unknown question type %q", ErrValidation, declared)
		}
		if declared != question.Type {
			return fmt.Errorf("%w: question %d expects %s, got %s", ErrValidation, questionID, question.Type, declared)
		}
		decoded, err := model.DecodeAnswerValue(declared, value)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrValidation, err)
		}

		answers := s.answerRepo.WithTx(tx)
		if err := answers.Upsert(ctx, &model.Answer{
			TestAttemptID: attempt.ID,
			QuestionID:    question.ID,
			Value:         datatypes.NewJSONType(decoded),
		}); err != nil {
			return storageError("save answer", err)
		}
		answered, err := answers.CountByAttempt(ctx, attempt.ID)
		if err != nil {
			return storageError("count answers", err)
		}

		resp.Completed = attempt.Advance(int(answered), s.now())
		resp.Progress = attempt.AnsweredCount
		if err := attempts.Update(ctx, attempt); err != nil {
			return storageError("update attempt", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if resp.Completed {
		log.Info().Str("userID", userID.String()).Uint("attemptID", attemptID).Msg("RecordAnswer: attempt completed")
		if _, syncErr := s.profiles.SyncProfile(ctx, userID); syncErr != nil {
			log.Warn().Err(syncErr).Uint("attemptID", attemptID).Msg("RecordAnswer: profile sync after completion failed")
		}
	}
	return &resp, nil
}

func (s *assessmentService) GetAnswers(ctx context.Context, userID uuid.UUID, attemptID uint) (dto.AnswersResponse, error) {
	if userID == uuid.Nil {
		return nil, ErrAuthenticationRequired
	}
	if _, err := s.testAttemptRepo.FindByIDForUser(ctx, attemptID, userID); err != nil {
		return nil, lookupError(fmt.Sprintf("attempt %d", attemptID), err)
	}
	answers, err := s.answerRepo.FindByAttempt(ctx, attemptID)
	if err != nil {
		return nil, storageError("load answers", err)
	}
	resp := make(dto.AnswersResponse, len(answers))
	for _, a := range answers {
		resp[a.QuestionID] = a.Value.Data()
	}
	return resp, nil
}

func (s *assessmentService) ListMyAttempts(ctx context.Context, userID uuid.UUID) ([]dto.AttemptSummary, error) {
	if userID == uuid.Nil {
		return nil, ErrAuthenticationRequired
	}
	attempts, err := s.testAttemptRepo.FindAllByUser(ctx, userID)
	if err != nil {
		return nil, storageError("list attempts", err)
	}
	resp := make([]dto.AttemptSummary, 0, len(attempts))
	if err := copier.Copy(&resp, &attempts); err != nil {
		return nil, fmt.Errorf("map attempts: %w", err)
	}
	return resp, nil
}
