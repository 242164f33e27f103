package service

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/lshigami/Compass/internal/dto"
	"github.com/lshigami/Compass/internal/model"
	"github.com/lshigami/Compass/internal/repository"
	"github.com/lshigami/Compass/internal/scoring"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// One connection keeps the in-memory database alive and shared.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Question{},
		&model.TestAttempt{},
		&model.Answer{},
		&model.CareerProfile{},
	))
	return db
}

type stubNarrative struct {
	text  string
	err   error
	calls int
}

func (s *stubNarrative) Describe(_ context.Context, _ scoring.Result) (string, error) {
	s.calls++
	return s.text, s.err
}

type fixture struct {
	db         *gorm.DB
	catalog    CatalogService
	assessment AssessmentService
	profiles   ProfileService
	narrative  *stubNarrative
	attempts   repository.TestAttemptRepository
	now        time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := setupDB(t)
	questionRepo := repository.NewQuestionRepository(db)
	attemptRepo := repository.NewTestAttemptRepository(db)
	answerRepo := repository.NewAnswerRepository(db)
	profileRepo := repository.NewCareerProfileRepository(db)

	narrative := &stubNarrative{}
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	profiles := NewProfileService(questionRepo, attemptRepo, answerRepo, profileRepo, narrative, NewScoreConverterService()).(*profileService)
	profiles.now = func() time.Time { return now }
	assessment := NewAssessmentService(questionRepo, attemptRepo, answerRepo, profiles, db).(*assessmentService)
	assessment.now = func() time.Time { return now }

	return &fixture{
		db:         db,
		catalog:    NewCatalogService(questionRepo),
		assessment: assessment,
		profiles:   profiles,
		narrative:  narrative,
		attempts:   attemptRepo,
		now:        now,
	}
}

func strPtr(s string) *string { return &s }

func dimPtr(d model.Dimension) *model.Dimension { return &d }

func riasecChoices() model.QuestionOptions {
	opts := model.QuestionOptions{}
	for _, d := range model.Dimensions {
		opts.Choices = append(opts.Choices, model.ChoiceOption{Value: string(d), Label: string(d)})
	}
	return opts
}

func sliderOptions(upper float64) model.QuestionOptions {
	return model.QuestionOptions{Slider: &model.SliderOptions{Min: 1, Max: upper, Step: 1}}
}

// seedCatalog imports five questions: three interest votes (R, I, A tagged)
// and two competency sliders.
func (f *fixture) seedCatalog(t *testing.T) []dto.QuestionResponse {
	t.Helper()
	_, err := f.catalog.ImportQuestions(context.Background(), []dto.QuestionInput{
		{Text: "Pick an activity", Type: model.QuestionTypeSingleChoice, Category: model.CategoryInterests, Dimension: dimPtr(model.DimensionRealistic), Options: riasecChoices(), OrderIndex: 1},
		{Text: "Pick a subject", Type: model.QuestionTypeSingleChoice, Category: model.CategoryInterests, Dimension: dimPtr(model.DimensionInvestigative), Options: riasecChoices(), OrderIndex: 2},
		{Text: "Pick a hobby", Type: model.QuestionTypeSingleChoice, Category: model.CategoryInterests, Dimension: dimPtr(model.DimensionArtistic), Options: riasecChoices(), OrderIndex: 3},
		{Text: "Presenting", Type: model.QuestionTypeSlider, Category: model.CategoryCompetencies, CompetencyArea: strPtr("Communication"), Options: sliderOptions(5), OrderIndex: 4},
		{Text: "Planning", Type: model.QuestionTypeSlider, Category: model.CategoryCompetencies, CompetencyArea: strPtr("Time Management"), Options: sliderOptions(5), OrderIndex: 5},
	})
	require.NoError(t, err)
	questions, err := f.catalog.ListQuestions(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, questions, 5)
	return questions
}

func (f *fixture) createUser(t *testing.T, email string) uuid.UUID {
	t.Helper()
	user := &model.User{FullName: "Test User", Email: email, PasswordHash: "x", Role: model.RoleUser}
	require.NoError(t, f.db.Create(user).Error)
	return user.ID
}

// completeAttempt answers every seeded question: R, R, I for the interest
// items and the given slider values.
func (f *fixture) completeAttempt(t *testing.T, userID uuid.UUID, questions []dto.QuestionResponse, communication, planning string) uint {
	t.Helper()
	ctx := context.Background()
	started, err := f.assessment.StartAttempt(ctx, userID)
	require.NoError(t, err)

	values := []string{`"R"`, `"R"`, `"I"`, communication, planning}
	var last *dto.RecordAnswerResponse
	for i, q := range questions {
		last, err = f.assessment.RecordAnswer(ctx, userID, started.AttemptID, q.ID, []byte(values[i]), q.Type)
		require.NoError(t, err)
	}
	require.True(t, last.Completed)
	return started.AttemptID
}
