package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Compass/internal/controller"
	"github.com/lshigami/Compass/internal/dto"
	"github.com/lshigami/Compass/internal/service"
)

type CatalogController struct {
	catalogService service.CatalogService
}

func NewCatalogController(cs service.CatalogService) *CatalogController {
	return &CatalogController{catalogService: cs}
}

// ImportQuestions godoc
// @Summary (Admin) Import catalog questions
// @Description Inserts questions or updates those already at the same order_index. Imported questions are active.
// @Tags Admin - Catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.ImportQuestionsRequest true "Questions"
// @Success 201 {object} dto.ImportQuestionsResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid questions"
// @Failure 403 {object} dto.ErrorResponse "Admin access required"
// @Router /admin/questions [post]
func (c *CatalogController) ImportQuestions(ctx *gin.Context) {
	var req dto.ImportQuestionsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BindError(ctx, err)
		return
	}
	imported, err := c.catalogService.ImportQuestions(ctx.Request.Context(), req.Questions)
	if err != nil {
		controller.RespondError(ctx, "Failed to import questions", err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.ImportQuestionsResponse{Imported: imported})
}

// DeactivateQuestion godoc
// @Summary (Admin) Deactivate a question
// @Description Questions are never deleted; deactivated ones leave the active catalog.
// @Tags Admin - Catalog
// @Security BearerAuth
// @Param question_id path int true "Question ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Router /admin/questions/{question_id}/deactivate [patch]
func (c *CatalogController) DeactivateQuestion(ctx *gin.Context) {
	questionID, ok := controller.UintParam(ctx, "question_id")
	if !ok {
		return
	}
	if err := c.catalogService.Deactivate(ctx.Request.Context(), questionID); err != nil {
		controller.RespondError(ctx, "Failed to deactivate question", err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
