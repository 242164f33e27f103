package user

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Compass/internal/controller"
	"github.com/lshigami/Compass/internal/dto"
	"github.com/lshigami/Compass/internal/service"
)

type ProfileController struct {
	profileService service.ProfileService
	authService    service.AuthService
	cvService      service.CVExportService
}

func NewProfileController(ps service.ProfileService, as service.AuthService, cv service.CVExportService) *ProfileController {
	return &ProfileController{profileService: ps, authService: as, cvService: cv}
}

// GetProfile godoc
// @Summary The caller's career profile
// @Description Re-scores from the latest completed attempt when the stored profile is older.
// @Tags Profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ProfileResponse
// @Failure 404 {object} dto.ErrorResponse "No completed attempt yet"
// @Router /profile [get]
func (c *ProfileController) GetProfile(ctx *gin.Context) {
	userID, ok := controller.CurrentUser(ctx)
	if !ok {
		return
	}
	profile, err := c.profileService.GetProfile(ctx.Request.Context(), userID)
	if err != nil {
		controller.RespondError(ctx, "Failed to retrieve profile", err)
		return
	}
	ctx.JSON(http.StatusOK, profile)
}

// UpdateProfile godoc
// @Summary Update the editable profile sections
// @Description Sections left out of the body are unchanged. Scoring never overwrites these sections.
// @Tags Profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.UpdateProfileRequest true "Editable sections"
// @Success 200 {object} dto.ProfileResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Router /profile [put]
func (c *ProfileController) UpdateProfile(ctx *gin.Context) {
	userID, ok := controller.CurrentUser(ctx)
	if !ok {
		return
	}
	var req dto.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BindError(ctx, err)
		return
	}
	profile, err := c.profileService.UpdateEditable(ctx.Request.Context(), userID, req)
	if err != nil {
		controller.RespondError(ctx, "Failed to update profile", err)
		return
	}
	ctx.JSON(http.StatusOK, profile)
}

// ExportCV godoc
// @Summary Download the profile as a PDF CV
// @Tags Profile
// @Produce application/pdf
// @Security BearerAuth
// @Success 200 {file} binary
// @Failure 404 {object} dto.ErrorResponse "No profile yet"
// @Router /profile/cv [get]
func (c *ProfileController) ExportCV(ctx *gin.Context) {
	userID, ok := controller.CurrentUser(ctx)
	if !ok {
		return
	}
	reqCtx := ctx.Request.Context()
	user, err := c.authService.GetUser(reqCtx, userID)
	if err != nil {
		controller.RespondError(ctx, "Failed to load user", err)
		return
	}
	profile, err := c.profileService.GetProfile(reqCtx, userID)
	if err != nil {
		controller.RespondError(ctx, "Failed to retrieve profile", err)
		return
	}
	pdf, err := c.cvService.Render(user, profile)
	if err != nil {
		controller.RespondError(ctx, "Failed to render CV", err)
		return
	}
	ctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="cv-%s.pdf"`, userID))
	ctx.Data(http.StatusOK, "application/pdf", pdf)
}
