package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Compass/internal/controller"
	"github.com/lshigami/Compass/internal/dto"
	"github.com/lshigami/Compass/internal/service"
	"github.com/rs/zerolog/log"
)

type AssessmentController struct {
	catalogService    service.CatalogService
	assessmentService service.AssessmentService
	profileService    service.ProfileService
}

func NewAssessmentController(cs service.CatalogService, as service.AssessmentService, ps service.ProfileService) *AssessmentController {
	return &AssessmentController{
		catalogService:    cs,
		assessmentService: as,
		profileService:    ps,
	}
}

type listQuestionsQuery struct {
	ActiveOnly *bool `form:"active_only"`
}

// ListQuestions godoc
// @Summary List catalog questions
// @Description Questions ordered by order_index. Only active questions unless active_only=false.
// @Tags Assessment
// @Produce json
// @Security BearerAuth
// @Param active_only query bool false "Only active questions (default true)"
// @Success 200 {array} dto.QuestionResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid query"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /questions [get]
func (c *AssessmentController) ListQuestions(ctx *gin.Context) {
	var query listQuestionsQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		controller.BindError(ctx, err)
		return
	}
	activeOnly := query.ActiveOnly == nil || *query.ActiveOnly
	questions, err := c.catalogService.ListQuestions(ctx.Request.Context(), activeOnly)
	if err != nil {
		controller.RespondError(ctx, "Failed to retrieve questions", err)
		return
	}
	ctx.JSON(http.StatusOK, questions)
}

// StartAttempt godoc
// @Summary Start or resume a test attempt
// @Description Returns the open attempt when one exists, otherwise creates one sized to the active catalog.
// @Tags Assessment
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.StartAttemptResponse "Resumed"
// @Success 201 {object} dto.StartAttemptResponse "Created"
// @Failure 400 {object} dto.ErrorResponse "Catalog is empty"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Router /attempts [post]
func (c *AssessmentController) StartAttempt(ctx *gin.Context) {
	userID, ok := controller.CurrentUser(ctx)
	if !ok {
		return
	}
	resp, err := c.assessmentService.StartAttempt(ctx.Request.Context(), userID)
	if err != nil {
		controller.RespondError(ctx, "Failed to start attempt", err)
		return
	}
	status := http.StatusCreated
	if resp.Resumed {
		status = http.StatusOK
	}
	ctx.JSON(status, resp)
}

// ListMyAttempts godoc
// @Summary List the caller's attempts
// @Tags Assessment
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.AttemptSummary
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Router /attempts [get]
func (c *AssessmentController) ListMyAttempts(ctx *gin.Context) {
	userID, ok := controller.CurrentUser(ctx)
	if !ok {
		return
	}
	attempts, err := c.assessmentService.ListMyAttempts(ctx.Request.Context(), userID)
	if err != nil {
		controller.RespondError(ctx, "Failed to retrieve attempts", err)
		return
	}
	ctx.JSON(http.StatusOK, attempts)
}

// RecordAnswer godoc
// @Summary Record or overwrite an answer
// @Description The value's JSON shape depends on type: string or number for single_choice, string list for multiple_choice and ranking, number for slider, string for short_text.
// @Tags Assessment
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param attempt_id path int true "Attempt ID"
// @Param question_id path int true "Question ID"
// @Param body body dto.RecordAnswerRequest true "Answer"
// @Success 200 {object} dto.RecordAnswerResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid answer"
// @Failure 404 {object} dto.ErrorResponse "Attempt or question not found"
// @Failure 409 {object} dto.ErrorResponse "Attempt already completed"
// @Router /attempts/{attempt_id}/answers/{question_id} [put]
func (c *AssessmentController) RecordAnswer(ctx *gin.Context) {
	userID, ok := controller.CurrentUser(ctx)
	if !ok {
		return
	}
	attemptID, ok := controller.UintParam(ctx, "attempt_id")
	if !ok {
		return
	}
	questionID, ok := controller.UintParam(ctx, "question_id")
	if !ok {
		return
	}
	var req dto.RecordAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BindError(ctx, err)
		return
	}

	resp, err := c.assessmentService.RecordAnswer(ctx.Request.Context(), userID, attemptID, questionID, req.Value, req.Type)
	if err != nil {
		controller.RespondError(ctx, "Failed to record answer", err)
		return
	}
	if resp.Completed {
		log.Info().Uint("attemptID", attemptID).Msg("Attempt completed via RecordAnswer")
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetAnswers godoc
// @Summary Answers recorded for an attempt
// @Description Map of question ID to the stored answer value.
// @Tags Assessment
// @Produce json
// @Security BearerAuth
// @Param attempt_id path int true "Attempt ID"
// @Success 200 {object} map[string]object
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Router /attempts/{attempt_id}/answers [get]
func (c *AssessmentController) GetAnswers(ctx *gin.Context) {
	userID, ok := controller.CurrentUser(ctx)
	if !ok {
		return
	}
	attemptID, ok := controller.UintParam(ctx, "attempt_id")
	if !ok {
		return
	}
	answers, err := c.assessmentService.GetAnswers(ctx.Request.Context(), userID, attemptID)
	if err != nil {
		controller.RespondError(ctx, "Failed to retrieve answers", err)
		return
	}
	ctx.JSON(http.StatusOK, answers)
}

// GetResult godoc
// @Summary Score a completed attempt
// @Description Scores a completed attempt without touching the stored profile.
// @Tags Assessment
// @Produce json
// @Security BearerAuth
// @Param attempt_id path int true "Attempt ID"
// @Success 200 {object} dto.ResultResponse
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Failure 409 {object} dto.ErrorResponse "Attempt not completed"
// @Router /attempts/{attempt_id}/result [get]
func (c *AssessmentController) GetResult(ctx *gin.Context) {
	userID, ok := controller.CurrentUser(ctx)
	if !ok {
		return
	}
	attemptID, ok := controller.UintParam(ctx, "attempt_id")
	if !ok {
		return
	}
	result, err := c.profileService.PreviewResult(ctx.Request.Context(), userID, attemptID)
	if err != nil {
		controller.RespondError(ctx, "Failed to compute result", err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}
