package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lshigami/Compass/internal/dto"
	"github.com/lshigami/Compass/internal/model"
	"github.com/lshigami/Compass/internal/repository"
	"github.com/lshigami/Compass/internal/scoring"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ProfileService interface {
	// ComputeProfile scores a completed attempt without persisting anything.
	ComputeProfile(ctx context.Context, attemptID uint) (*scoring.Result, error)
	PreviewResult(ctx context.Context, userID uuid.UUID, attemptID uint) (*dto.ResultResponse, error)
	// SyncProfile brings the stored profile up to date with the user's most
	// recently completed attempt.
	SyncProfile(ctx context.Context, userID uuid.UUID) (*model.CareerProfile, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*dto.ProfileResponse, error)
	UpdateEditable(ctx context.Context, userID uuid.UUID, req dto.UpdateProfileRequest) (*dto.ProfileResponse, error)
}

type profileService struct {
	questionRepo    repository.QuestionRepository
	testAttemptRepo repository.TestAttemptRepository
	answerRepo      repository.AnswerRepository
	profileRepo     repository.CareerProfileRepository
	narrative       NarrativeService
	scoreConverter  ScoreConverterService
	now             func() time.Time
}

func NewProfileService(
	questionRepo repository.QuestionRepository,
	testAttemptRepo repository.TestAttemptRepository,
	answerRepo repository.AnswerRepository,
	profileRepo repository.CareerProfileRepository,
	narrative NarrativeService,
	scoreConverter ScoreConverterService,
) ProfileService {
	return &profileService{
		questionRepo:    questionRepo,
		testAttemptRepo: testAttemptRepo,
		answerRepo:      answerRepo,
		profileRepo:     profileRepo,
		narrative:       narrative,
		scoreConverter:  scoreConverter,
		now:             time.Now,
	}
}

func (s *profileService) ComputeProfile(ctx context.Context, attemptID uint) (*scoring.Result, error) {
	attempt, err := s.testAttemptRepo.FindByID(ctx, attemptID)
	if err != nil {
		return nil, lookupError(fmt.Sprintf("attempt %d", attemptID), err)
	}
	if err := requireCompleted(attempt); err != nil {
		return nil, err
	}
	return s.compute(ctx, attemptID)
}

func requireCompleted(attempt *model.TestAttempt) error {
	if !attempt.IsTerminal() {
		return fmt.Errorf("%w: attempt %d is not completed (%d of %d answered)",
			ErrInvalidState, attempt.ID, attempt.AnsweredCount, attempt.TotalQuestions)
	}
	return nil
}

func (s *profileService) compute(ctx context.Context, attemptID uint) (*scoring.Result, error) {
	answers, err := s.answerRepo.FindByAttempt(ctx, attemptID)
	if err != nil {
		return nil, storageError("load answers", err)
	}
	ids := make([]uint, 0, len(answers))
	for _, a := range answers {
		ids = append(ids, a.QuestionID)
	}
	questions, err := s.questionRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, storageError("load questions", err)
	}
	result := scoring.Compute(questions, answers, s.now())
	return &result, nil
}

func (s *profileService) PreviewResult(ctx context.Context, userID uuid.UUID, attemptID uint) (*dto.ResultResponse, error) {
	if userID == uuid.Nil {
		return nil, ErrAuthenticationRequired
	}
	attempt, err := s.testAttemptRepo.FindByIDForUser(ctx, attemptID, userID)
	if err != nil {
		return nil, lookupError(fmt.Sprintf("attempt %d", attemptID), err)
	}
	if err := requireCompleted(attempt); err != nil {
		return nil, err
	}
	result, err := s.compute(ctx, attemptID)
	if err != nil {
		return nil, err
	}
	tally := make(map[string]int, len(result.DimensionTally))
	for d, n := range result.DimensionTally {
		tally[string(d)] = n
	}
	return &dto.ResultResponse{
		AttemptID:         attemptID,
		HollandCode:       result.HollandCode,
		PersonalityLabel:  result.PersonalityLabel,
		DimensionTally:    tally,
		CompetencyScores:  result.CompetencyScores,
		CareerSuggestions: result.CareerSuggestions,
		DevelopmentAreas:  result.DevelopmentAreas,
		AnalysisNote:      result.AnalysisNote,
		Confidence:        result.Confidence,
		AnsweredCount:     result.AnsweredCount,
		GeneratedAt:       result.GeneratedAt,
	}, nil
}

func (s *profileService) SyncProfile(ctx context.Context, userID uuid.UUID) (*model.CareerProfile, error) {
	if userID == uuid.Nil {
		return nil, ErrAuthenticationRequired
	}

	existing, err := s.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, storageError("load profile", err)
		}
		existing = nil
	}

	latest, err := s.testAttemptRepo.FindLatestCompletedByUser(ctx, userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, storageError("load latest attempt", err)
		}
		if existing == nil {
			return nil, fmt.Errorf("%w: no completed attempt and no profile", ErrNotFound)
		}
		return existing, nil
	}
	if existing != nil && existing.AttemptID == latest.ID {
		return existing, nil
	}

	result, err := s.compute(ctx, latest.ID)
	if err != nil {
		return nil, err
	}
	s.describe(ctx, result)

	merged, changed := scoring.Merge(existing, userID, latest.ID, *result, s.now())
	if !changed {
		return merged, nil
	}
	if err := s.profileRepo.Save(ctx, merged); err != nil {
		// Another request may have created the profile first.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if current, findErr := s.profileRepo.FindByUserID(ctx, userID); findErr == nil {
				return current, nil
			}
		}
		return nil, storageError("save profile", err)
	}
	log.Info().Str("userID", userID.String()).Uint("attemptID", latest.ID).Str("code", merged.HollandCode).Msg("Career profile updated")
	return merged, nil
}

// describe appends the AI narrative to the engine's note when available.
func (s *profileService) describe(ctx context.Context, result *scoring.Result) {
	if s.narrative == nil {
		return
	}
	text, err := s.narrative.Describe(ctx, *result)
	if err != nil {
		log.Warn().Err(err).Msg("Narrative generation failed, keeping engine note")
		return
	}
	if text = strings.TrimSpace(text); text != "" {
		result.AnalysisNote = result.AnalysisNote + "\n\n" + text
	}
}

func (s *profileService) GetProfile(ctx context.Context, userID uuid.UUID) (*dto.ProfileResponse, error) {
	profile, err := s.SyncProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, profile), nil
}

func (s *profileService) UpdateEditable(ctx context.Context, userID uuid.UUID, req dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	profile, err := s.SyncProfile(ctx, userID)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
		profile = &model.CareerProfile{UserID: userID}
	}

	if req.PersonalInfo != nil {
		profile.PersonalInfo = datatypes.NewJSONType(*req.PersonalInfo)
	}
	if req.WorkHistory != nil {
		entries := make([]model.WorkEntry, 0, len(*req.WorkHistory))
		for _, e := range *req.WorkHistory {
			entries = append(entries, model.WorkEntry(e))
		}
		profile.WorkHistory = datatypes.NewJSONSlice(entries)
	}
	if req.Goals != nil {
		profile.Goals = datatypes.NewJSONType(*req.Goals)
	}
	if req.WorkValues != nil {
		profile.WorkValues = datatypes.NewJSONSlice(append([]string(nil), *req.WorkValues...))
	}
	if req.EnvironmentPreferences != nil {
		profile.EnvironmentPreferences = datatypes.NewJSONSlice(append([]string(nil), *req.EnvironmentPreferences...))
	}

	if err := s.profileRepo.Save(ctx, profile); err != nil {
		return nil, storageError("save profile", err)
	}
	return s.toResponse(ctx, profile), nil
}

// competencyMaxima sums the slider maxima of active questions per area.
func (s *profileService) competencyMaxima(ctx context.Context) map[string]float64 {
	maxima := make(map[string]float64)
	questions, err := s.questionRepo.FindAll(ctx, true)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to load catalog for competency maxima")
		return maxima
	}
	for i := range questions {
		q := &questions[i]
		if q.CompetencyArea == nil || *q.CompetencyArea == "" {
			continue
		}
		if upper, ok := q.SliderMax(); ok {
			maxima[*q.CompetencyArea] += upper
		}
	}
	return maxima
}

func (s *profileService) toResponse(ctx context.Context, p *model.CareerProfile) *dto.ProfileResponse {
	scores := p.CompetencyScores.Data()
	if scores == nil {
		scores = map[string]float64{}
	}
	return &dto.ProfileResponse{
		UserID:                 p.UserID,
		AttemptID:              p.AttemptID,
		HollandCode:            p.HollandCode,
		PersonalityLabel:       p.PersonalityLabel,
		CompetencyScores:       scores,
		CompetencyPercent:      s.scoreConverter.ScaleCompetencies(scores, s.competencyMaxima(ctx)),
		CareerSuggestions:      nonNil(p.CareerSuggestions),
		DevelopmentAreas:       nonNil(p.DevelopmentAreas),
		AnalysisNote:           p.AnalysisNote,
		Confidence:             p.Confidence,
		GeneratedAt:            p.GeneratedAt,
		PersonalInfo:           p.PersonalInfo.Data(),
		WorkHistory:            nonNil(p.WorkHistory),
		Goals:                  p.Goals.Data(),
		WorkValues:             nonNil(p.WorkValues),
		EnvironmentPreferences: nonNil(p.EnvironmentPreferences),
		UpdatedAt:              p.UpdatedAt,
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
