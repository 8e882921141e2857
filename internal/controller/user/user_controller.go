package user

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hmtri1011/surveyhub/internal/controller"
	"github.com/hmtri1011/surveyhub/internal/dto"
	"github.com/hmtri1011/surveyhub/internal/errs"
	"github.com/hmtri1011/surveyhub/internal/middleware"
	"github.com/hmtri1011/surveyhub/internal/model"
	"github.com/hmtri1011/surveyhub/internal/repository"
	"github.com/hmtri1011/surveyhub/internal/service"
	"github.com/rs/zerolog/log"
)

type UserController struct {
	submissionService service.SubmissionService
	questionService   service.QuestionService
}

func NewUserController(submissionService service.SubmissionService, questionService service.QuestionService) *UserController {
	return &UserController{submissionService: submissionService, questionService: questionService}
}

// SubmitAnswers godoc
// @Summary (User) Submit answers for one or more questions
// @Description Validates the whole batch first; all rows commit in a single transaction or none do. A checkbox answer with N selections produces N rows. The question owner is notified after commit.
// @Tags User - Answers
// @Accept json
// @Produce json
// @Param submission body dto.SubmitAnswersRequest true "Answers batch"
// @Success 201 {object} dto.SubmissionResponse
// @Failure 400 {object} dto.ErrorResponse "Question not approved"
// @Failure 404 {object} dto.ErrorResponse "Unknown question"
// @Failure 422 {object} dto.ErrorResponse "Payload does not match the question's answer type"
// @Router /answers [post]
func (c *UserController) SubmitAnswers(ctx *gin.Context) {
	principal, _ := middleware.PrincipalFrom(ctx)

	var req dto.SubmitAnswersRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("User SubmitAnswers: failed to bind JSON")
		ctx.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	submission, err := c.submissionService.Submit(ctx.Request.Context(), principal.ID, req)
	if err != nil {
		// Submitting to a non-approved question is a client error on this
		// route, not a 409.
		if errs.IsStateConflict(err) {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
			return
		}
		log.Error().Err(err).Uint("userID", principal.ID).Msg("User SubmitAnswers: service error")
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, submission)
}

// ListMyAnswers godoc
// @Summary (User) List the caller's submitted answers
// @Tags User - Answers
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Page size"
// @Success 200 {array} dto.UserAnswerResponse
// @Router /answers [get]
func (c *UserController) ListMyAnswers(ctx *gin.Context) {
	principal, _ := middleware.PrincipalFrom(ctx)
	page, perPage := controller.Pagination(ctx)

	answers, total, err := c.submissionService.ListUserAnswers(principal.ID, page, perPage)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.Header("X-Total-Count", strconv.FormatInt(total, 10))
	ctx.JSON(http.StatusOK, answers)
}

// ListOpenQuestions godoc
// @Summary (User) List approved questions open for responses
// @Tags User - Questions
// @Produce json
// @Param search query string false "Full-text filter on question text"
// @Param page query int false "Page number"
// @Param per_page query int false "Page size"
// @Success 200 {object} dto.QuestionListResponse
// @Router /questions [get]
func (c *UserController) ListOpenQuestions(ctx *gin.Context) {
	page, perPage := controller.Pagination(ctx)

	questions, err := c.questionService.ListQuestions(repository.QuestionFilter{
		Status:  model.StatusApproved,
		Search:  ctx.Query("search"),
		Page:    page,
		PerPage: perPage,
	})
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, questions)
}
