package owner

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hmtri1011/surveyhub/internal/controller"
	"github.com/hmtri1011/surveyhub/internal/dto"
	"github.com/hmtri1011/surveyhub/internal/middleware"
	"github.com/hmtri1011/surveyhub/internal/repository"
	"github.com/hmtri1011/surveyhub/internal/service"
	"github.com/rs/zerolog/log"
)

type OwnerController struct {
	questionService   service.QuestionService
	submissionService service.SubmissionService
}

func NewOwnerController(questionService service.QuestionService, submissionService service.SubmissionService) *OwnerController {
	return &OwnerController{questionService: questionService, submissionService: submissionService}
}

// CreateQuestion godoc
// @Summary (Owner) Publish a new question
// @Description Creates a question in pending status. Selection types need 1-5 options; short_answer takes none. Admins and users are notified.
// @Tags Owner - Questions
// @Accept json
// @Produce json
// @Param question body dto.CreateQuestionRequest true "Question payload"
// @Success 201 {object} dto.QuestionResponse
// @Failure 422 {object} dto.ErrorResponse "Validation failed"
// @Router /owner/questions [post]
func (c *OwnerController) CreateQuestion(ctx *gin.Context) {
	principal, _ := middleware.PrincipalFrom(ctx)

	var req dto.CreateQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Owner CreateQuestion: failed to bind JSON")
		ctx.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	question, err := c.questionService.CreateQuestion(ctx.Request.Context(), principal.ID, req)
	if err != nil {
		log.Error().Err(err).Uint("ownerID", principal.ID).Msg("Owner CreateQuestion: service error")
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, question)
}

// UpdateQuestion godoc
// @Summary (Owner) Update a pending question
// @Description Structural edits (text, type, options) are rejected once the question leaves pending.
// @Tags Owner - Questions
// @Accept json
// @Produce json
// @Param id path int true "Question ID"
// @Param question body dto.UpdateQuestionRequest true "Updated payload"
// @Success 200 {object} dto.QuestionResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Question no longer pending"
// @Failure 422 {object} dto.ErrorResponse
// @Router /owner/questions/{id} [put]
func (c *OwnerController) UpdateQuestion(ctx *gin.Context) {
	principal, _ := middleware.PrincipalFrom(ctx)
	questionID, ok := controller.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	question, err := c.questionService.UpdateQuestion(ctx.Request.Context(), principal.ID, questionID, req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, question)
}

// DeleteQuestion godoc
// @Summary (Owner) Delete a question
// @Description Cascade-deletes the question's options and all submitted answers.
// @Tags Owner - Questions
// @Produce json
// @Param id path int true "Question ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /owner/questions/{id} [delete]
func (c *OwnerController) DeleteQuestion(ctx *gin.Context) {
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

// AddOption godoc
// @Summary (Owner) Add an answer option
// @Description A question holds at most five options; the cap is checked transactionally.
// @Tags Owner - Questions
// @Accept json
// @Produce json
// @Param id path int true "Question ID"
// @Param option body dto.AddOptionRequest true "Option payload"
// @Success 201 {object} dto.OptionResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Question no longer pending"
// @Failure 422 {object} dto.ErrorResponse "Cap reached or wrong answer type"
// @Router /owner/questions/{id}/options [post]
func (c *OwnerController) AddOption(ctx *gin.Context) {
	principal, _ := middleware.PrincipalFrom(ctx)
	questionID, ok := controller.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.AddOptionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	option, err := c.questionService.AddOption(ctx.Request.Context(), principal.ID, questionID, req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, option)
}

// DeleteOption godoc
// @Summary (Owner) Remove an answer option
// @Tags Owner - Questions
// @Produce json
// @Param id path int true "Option ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /owner/options/{id} [delete]
func (c *OwnerController) DeleteOption(ctx *gin.Context) {
	principal, _ := middleware.PrincipalFrom(ctx)
	optionID, ok := controller.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.questionService.DeleteOption(ctx.Request.Context(), principal.ID, optionID); err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Option deleted successfully"})
}

// ListQuestions godoc
// @Summary (Owner) List own questions
// @Tags Owner - Questions
// @Produce json
// @Param status query string false "Filter by status (pending, approved, cancelled)"
// @Param search query string false "Full-text filter on question text"
// @Param page query int false "Page number"
// @Param per_page query int false "Page size"
// @Success 200 {object} dto.QuestionListResponse
// @Router /owner/questions [get]
func (c *OwnerController) ListQuestions(ctx *gin.Context) {
	principal, _ := middleware.PrincipalFrom(ctx)
	page, perPage := controller.Pagination(ctx)

	ownerID := principal.ID
	filter := repository.QuestionFilter{
		OwnerID: &ownerID,
		Status:  ctx.Query("status"),
		Search:  ctx.Query("search"),
		Page:    page,
		PerPage: perPage,
	}

	questions, err := c.questionService.ListQuestions(filter)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, questions)
}

// ListSubmittedAnswers godoc
// @Summary (Owner) View answers users submitted to own questions
// @Tags Owner - Answers
// @Produce json
// @Success 200 {array} dto.QuestionWithAnswersResponse
// @Router /owner/answers [get]
func (c *OwnerController) ListSubmittedAnswers(ctx *gin.Context) {
	principal, _ := middleware.PrincipalFrom(ctx)

	answers, err := c.questionService.ListSubmittedAnswers(principal.ID)
	if err != nil {
		log.Error().Err(err).Uint("ownerID", principal.ID).Msg("Owner ListSubmittedAnswers: service error")
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, answers)
}

// DeleteAnswer godoc
// @Summary (Owner) Delete a submitted answer to one of their questions
// @Tags Owner - Answers
// @Produce json
// @Param id path int true "Answer ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /owner/answers/{id} [delete]
func (c *OwnerController) DeleteAnswer(ctx *gin.Context) {
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
