package admin

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hmtri1011/surveyhub/internal/controller"
	"github.com/hmtri1011/surveyhub/internal/dto"
	"github.com/hmtri1011/surveyhub/internal/middleware"
	"github.com/hmtri1011/surveyhub/internal/repository"
	"github.com/hmtri1011/surveyhub/internal/service"
	"github.com/rs/zerolog/log"
)

type AdminController struct {
	moderationService service.ModerationService
	questionService   service.QuestionService
	submissionService service.SubmissionService
	statsService      service.StatsService
}

func NewAdminController(
	moderationService service.ModerationService,
	questionService service.QuestionService,
	submissionService service.SubmissionService,
	statsService service.StatsService,
) *AdminController {
	return &AdminController{
		moderationService: moderationService,
		questionService:   questionService,
		submissionService: submissionService,
		statsService:      statsService,
	}
}

// UpdateQuestionStatus godoc
// @Summary (Admin) Approve or cancel a pending question
// @Description Moves a question out of pending. Re-requesting the current terminal status is a no-op; any other transition from a terminal state is rejected.
// @Tags Admin - Moderation
// @Accept json
// @Produce json
// @Param id path int true "Question ID"
// @Param status body dto.UpdateStatusRequest true "Target status"
// @Success 200 {object} dto.QuestionResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Status already terminal"
// @Failure 422 {object} dto.ErrorResponse
// @Router /admin/questions/{id}/status [post]
func (c *AdminController) UpdateQuestionStatus(ctx *gin.Context) {
	questionID, ok := controller.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	question, err := c.moderationService.UpdateStatus(ctx.Request.Context(), questionID, req)
	if err != nil {
		log.Warn().Err(err).Uint("questionID", questionID).Msg("Admin UpdateQuestionStatus: service error")
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, question)
}

// DeleteQuestion godoc
// @Summary (Admin) Delete any question
// @Tags Admin - Moderation
// @Produce json
// @Param id path int true "Question ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/questions/{id} [delete]
func (c *AdminController) DeleteQuestion(ctx *gin.Context) {
	principal, _ := middleware.PrincipalFrom(ctx)
	questionID, ok := controller.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.questionService.DeleteQuestion(ctx.Request.Context(), principal.ID, principal.Role, questionID); err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Question deleted successfully"})
}

// DeleteAnswer godoc
// @Summary (Admin) Delete any submitted answer
// @Tags Admin - Moderation
// @Produce json
// @Param id path int true "Answer ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/answers/{id} [delete]
func (c *AdminController) DeleteAnswer(ctx *gin.Context) {
	principal, _ := middleware.PrincipalFrom(ctx)
	answerID, ok := controller.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.submissionService.DeleteAnswer(ctx.Request.Context(), principal.ID, principal.Role, answerID); err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Answer deleted successfully"})
}

// ListQuestions godoc
// @Summary (Admin) List questions across all owners
// @Tags Admin - Moderation
// @Produce json
// @Param owner_id query int false "Filter by owner"
// @Param status query string false "Filter by status"
// @Param search query string false "Full-text filter on question text"
// @Param page query int false "Page number"
// @Param per_page query int false "Page size"
// @Success 200 {object} dto.QuestionListResponse
// @Router /admin/questions [get]
func (c *AdminController) ListQuestions(ctx *gin.Context) {
	page, perPage := controller.Pagination(ctx)

	filter := repository.QuestionFilter{
		Status:  ctx.Query("status"),
		Search:  ctx.Query("search"),
		Page:    page,
		PerPage: perPage,
	}
	if ownerIDStr := ctx.Query("owner_id"); ownerIDStr != "" {
		value, err := strconv.ParseUint(ownerIDStr, 10, 32)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid owner_id format"})
			return
		}
		ownerID := uint(value)
		filter.OwnerID = &ownerID
	}

	questions, err := c.questionService.ListQuestions(filter)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, questions)
}

// Statistics godoc
// @Summary (Admin) Dashboard totals
// @Tags Admin - Statistics
// @Produce json
// @Success 200 {object} dto.StatisticsResponse
// @Router /admin/statistics [get]
func (c *AdminController) Statistics(ctx *gin.Context) {
	stats, err := c.statsService.Dashboard()
	if err != nil {
		log.Error().Err(err).Msg("Admin Statistics: service error")
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, stats)
}

// MonthlyStatistics godoc
// @Summary (Admin) Per-month submitted answer counts
// @Tags Admin - Statistics
// @Produce json
// @Param year query int false "Year (defaults to current)"
// @Success 200 {array} dto.MonthlyAnswerStat
// @Router /admin/statistics/monthly [get]
func (c *AdminController) MonthlyStatistics(ctx *gin.Context) {
	year := time.Now().Year()
	if yearStr := ctx.Query("year"); yearStr != "" {
		value, err := strconv.Atoi(yearStr)
		if err != nil || value < 1 {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid year format"})
			return
		}
		year = value
	}

	stats, err := c.statsService.MonthlyAnswers(year)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, stats)
}
