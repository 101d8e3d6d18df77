package handler

import (
	"net/http"

	"github.com/examhub/examhub/config"
	"github.com/examhub/examhub/internal/constants"
	"github.com/examhub/examhub/internal/dto"
	apperrors "github.com/examhub/examhub/internal/errors"
	"github.com/examhub/examhub/internal/service"
	"github.com/examhub/examhub/internal/validation"
	ctxutil "github.com/examhub/examhub/pkg/context"
	"github.com/examhub/examhub/pkg/logger"
	"github.com/gin-gonic/gin"
)

type QuestionHandler struct {
	questionService service.QuestionService
	cfg             *config.Config
}

func NewQuestionHandler(questionService service.QuestionService, cfg *config.Config) *QuestionHandler {
	return &QuestionHandler{
		questionService: questionService,
		cfg:             cfg,
	}
}

// CreateQuestion adds a question to the bank. Admin only.
func (h *QuestionHandler) CreateQuestion(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "CreateQuestion")

	var req dto.CreateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.WarnWithContext(ctx, "Invalid question create request").
			Err(err).
			Log()
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(validation.BindingErrorMessage(err), nil))
		return
	}

	question, err := h.questionService.CreateQuestion(ctx, &req)
	if err != nil {
		logger.WarnWithContext(ctx, "Question creation failed").
			Err(err).
			Log()
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	logger.InfoWithContext(ctx, "Question created").
		Uint("question_id", question.ID).
		Log()

	c.JSON(http.StatusCreated, constants.BuildDataResponse(dto.ToQuestionResponse(question)))
}

// GetQuestion returns one question by id. Admin only.
func (h *QuestionHandler) GetQuestion(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "GetQuestion")

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	question, err := h.questionService.GetQuestion(ctx, id)
	if err != nil {
		logger.WarnWithContext(ctx, "Question lookup failed").
			Uint("question_id", id).
			Err(err).
			Log()
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	c.JSON(http.StatusOK, constants.BuildDataResponse(dto.ToQuestionResponse(question)))
}

// ListQuestions returns the whole bank, paginated. Admin only.
func (h *QuestionHandler) ListQuestions(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "ListQuestions")

	params := constants.ParsePaginationParams(c, h.cfg.Pagination.Limit, h.cfg.Pagination.Offset)

	questions, total, err := h.questionService.ListQuestions(ctx, params.Limit, params.Offset)
	if err != nil {
		logger.ErrorWithContext(ctx, "Question listing failed").
			Err(err).
			Log()
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	c.JSON(http.StatusOK, constants.BuildListResponse(dto.ToQuestionResponses(questions), total, params.Limit, params.Offset))
}

// ListQuestionsForPaper returns the questions of one exam paper, selected by
// the taxonomy ids supplied as query parameters. Authenticated users.
func (h *QuestionHandler) ListQuestionsForPaper(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "ListQuestionsForPaper")

	var filter dto.QuestionFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		logger.WarnWithContext(ctx, "Invalid paper filter").
			Err(err).
			Log()
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(validation.BindingErrorMessage(err), nil))
		return
	}

	params := constants.ParsePaginationParams(c, h.cfg.Pagination.Limit, h.cfg.Pagination.Offset)

	questions, total, err := h.questionService.ListQuestionsForPaper(ctx, &filter, params.Limit, params.Offset)
	if err != nil {
		logger.ErrorWithContext(ctx, "Paper question listing failed").
			Err(err).
			Log()
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	c.JSON(http.StatusOK, constants.BuildListResponse(dto.ToQuestionResponses(questions), total, params.Limit, params.Offset))
}

// UpdateQuestion modifies a question. Admin only.
func (h *QuestionHandler) UpdateQuestion(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "UpdateQuestion")

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.WarnWithContext(ctx, "Invalid question update request").
			Err(err).
			Log()
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(validation.BindingErrorMessage(err), nil))
		return
	}

	question, err := h.questionService.UpdateQuestion(ctx, id, &req)
	if err != nil {
		logger.WarnWithContext(ctx, "Question update failed").
			Uint("question_id", id).
			Err(err).
			Log()
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	logger.InfoWithContext(ctx, "Question updated").
		Uint("question_id", id).
		Log()

	c.JSON(http.StatusOK, constants.BuildDataResponse(dto.ToQuestionResponse(question)))
}

// DeleteQuestion removes a question from the bank. Admin only.
func (h *QuestionHandler) DeleteQuestion(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "DeleteQuestion")

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	status, err := h.questionService.DeleteQuestion(ctx, id)
	if err != nil {
		logger.WarnWithContext(ctx, "Question delete failed").
			Uint("question_id", id).
			Err(err).
			Log()
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	logger.InfoWithContext(ctx, "Question deleted").
		Uint("question_id", id).
		Log()

	c.JSON(http.StatusOK, constants.BuildStatusResponse(status))
}
