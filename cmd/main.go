package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lshigami/Compass/config"
	"github.com/lshigami/Compass/database"
	_ "github.com/lshigami/Compass/docs" // Swagger docs
	"github.com/lshigami/Compass/internal/auth"
	adminctrl "github.com/lshigami/Compass/internal/controller/admin"
	userctrl "github.com/lshigami/Compass/internal/controller/user"
	"github.com/lshigami/Compass/internal/logger"
	"github.com/lshigami/Compass/internal/model"
	"github.com/lshigami/Compass/internal/repository"
	"github.com/lshigami/Compass/internal/service"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title Career Compass API
// @version 1.0
// @description Career assessment backend: question catalog, test attempts, Holland-code scoring, career profiles and CV export.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()

	app := fx.New(
		// Core Application Components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewGinEngine,
			NewTokenIssuer,
		),

		// Repositories Layer
		fx.Provide(
			repository.NewUserRepository,
			repository.NewQuestionRepository,
			repository.NewTestAttemptRepository,
			repository.NewAnswerRepository,
			repository.NewCareerProfileRepository,
		),

		// Services Layer
		fx.Provide(
			service.NewAuthService,
			service.NewCatalogService,
			service.NewAssessmentService,
			service.NewProfileService,
			service.NewGeminiNarrativeService,
			service.NewScoreConverterService,
			service.NewCVExportService,
		),

		// API Controllers Layer
		fx.Provide(
			userctrl.NewAuthController,
			userctrl.NewAssessmentController,
			userctrl.NewProfileController,
			adminctrl.NewCatalogController,
		),

		// Invoke order matters: schema first, then seed, then serve.
		fx.Invoke(AutoMigrateDB),
		fx.Invoke(SeedCatalog),
		fx.Invoke(RegisterRoutesAndStartServer),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
	stopCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := app.Stop(stopCtx); err != nil {
		log.Error().Err(err).Msg("Failed to stop application cleanly")
	}
}

func NewTokenIssuer(cfg *config.Config) *auth.TokenIssuer {
	return auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
}

func NewGinEngine(cfg *config.Config) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// URL: http://localhost:PORT/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	issuer *auth.TokenIssuer,
	authCtrl *userctrl.AuthController,
	assessmentCtrl *userctrl.AssessmentController,
	profileCtrl *userctrl.ProfileController,
	catalogCtrl *adminctrl.CatalogController,
) {
	api := router.Group("/api/v1")
	{
		authGroup := api.Group("/auth")
		authGroup.POST("/register", authCtrl.Register)
		authGroup.POST("/login", authCtrl.Login)
	}

	userAPIGroup := api.Group("", auth.RequireAuth(issuer))
	{
		userAPIGroup.GET("/questions", assessmentCtrl.ListQuestions)

		userAPIGroup.POST("/attempts", assessmentCtrl.StartAttempt)
		userAPIGroup.GET("/attempts", assessmentCtrl.ListMyAttempts)
		userAPIGroup.GET("/attempts/:attempt_id/answers", assessmentCtrl.GetAnswers)
		userAPIGroup.PUT("/attempts/:attempt_id/answers/:question_id", assessmentCtrl.RecordAnswer)
		userAPIGroup.GET("/attempts/:attempt_id/result", assessmentCtrl.GetResult)

		userAPIGroup.GET("/profile", profileCtrl.GetProfile)
		userAPIGroup.PUT("/profile", profileCtrl.UpdateProfile)
		userAPIGroup.GET("/profile/cv", profileCtrl.ExportCV)
	}

	adminAPIGroup := api.Group("/admin", auth.RequireAuth(issuer), auth.RequireAdmin())
	{
		adminAPIGroup.POST("/questions", catalogCtrl.ImportQuestions)
		adminAPIGroup.PATCH("/questions/:question_id/deactivate", catalogCtrl.DeactivateQuestion)
	}

	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Career Compass API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			return server.Shutdown(ctx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.User{},
		&model.Question{},
		&model.TestAttempt{},
		&model.Answer{},
		&model.CareerProfile{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}

// SeedCatalog upserts the catalog seed file when one is configured.
func SeedCatalog(lc fx.Lifecycle, cfg *config.Config, catalog service.CatalogService) {
	if cfg.CatalogSeedFile == "" {
		log.Info().Msg("CATALOG_SEED_FILE is not set, skipping catalog seeding")
		return
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			n, err := catalog.Seed(ctx, cfg.CatalogSeedFile)
			if err != nil {
				return err
			}
			log.Info().Int("questions", n).Str("file", cfg.CatalogSeedFile).Msg("Question catalog seeded")
			return nil
		},
	})
}
