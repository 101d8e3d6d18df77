package handler

import (
	"net/http"

	"github.com/examhub/examhub/config"
	"github.com/examhub/examhub/internal/constants"
	"github.com/examhub/examhub/internal/dto"
	apperrors "github.com/examhub/examhub/internal/errors"
	"github.com/examhub/examhub/internal/middleware"
	"github.com/examhub/examhub/internal/service"
	"github.com/examhub/examhub/internal/validation"
	ctxutil "github.com/examhub/examhub/pkg/context"
	"github.com/examhub/examhub/pkg/logger"
	"github.com/gin-gonic/gin"
)

// RecordHandler exposes the attempt records of the authenticated user. Every
// operation is scoped to the caller, a user never sees another user's records.
type RecordHandler struct {
	recordService service.RecordService
	cfg           *config.Config
}

func NewRecordHandler(recordService service.RecordService, cfg *config.Config) *RecordHandler {
	return &RecordHandler{
		recordService: recordService,
		cfg:           cfg,
	}
}

// CreateRecord opens a new attempt record
func (h *RecordHandler) CreateRecord(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "CreateRecord")

	user := middleware.AuthUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse(apperrors.ErrUnauthorized.Message, nil))
		return
	}

	var req dto.CreateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.WarnWithContext(ctx, "Invalid record create request").
			Err(err).
			Log()
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(validation.BindingErrorMessage(err), nil))
		return
	}

	record, err := h.recordService.CreateRecord(ctx, user.ID, &req)
	if err != nil {
		logger.WarnWithContext(ctx, "Record creation failed").
			Uint("user_id", user.ID).
			Err(err).
			Log()
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	logger.InfoWithContext(ctx, "Record created").
		Uint("user_id", user.ID).
		Uint("record_id", record.ID).
		Log()

	c.JSON(http.StatusCreated, constants.BuildDataResponse(dto.ToRecordResponse(record)))
}

// ListRecords returns the attempt records of the authenticated user
func (h *RecordHandler) ListRecords(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "ListRecords")

	user := middleware.AuthUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse(apperrors.ErrUnauthorized.Message, nil))
		return
	}

	params := constants.ParsePaginationParams(c, h.cfg.Pagination.Limit, h.cfg.Pagination.Offset)

	records, total, err := h.recordService.ListRecords(ctx, user.ID, params.Limit, params.Offset)
	if err != nil {
		logger.ErrorWithContext(ctx, "Record listing failed").
			Uint("user_id", user.ID).
			Err(err).
			Log()
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	c.JSON(http.StatusOK, constants.BuildListResponse(dto.ToRecordResponses(records), total, params.Limit, params.Offset))
}

// GetRecord returns one attempt record owned by the authenticated user
func (h *RecordHandler) GetRecord(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "GetRecord")

	user := middleware.AuthUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse(apperrors.ErrUnauthorized.Message, nil))
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	record, err := h.recordService.GetRecord(ctx, id, user.ID)
	if err != nil {
		logger.WarnWithContext(ctx, "Record lookup failed").
			Uint("user_id", user.ID).
			Uint("record_id", id).
			Err(err).
			Log()
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	c.JSON(http.StatusOK, constants.BuildDataResponse(dto.ToRecordResponse(record)))
}

// UpdateRecord closes out an attempt record with its completion time and score
func (h *RecordHandler) UpdateRecord(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "UpdateRecord")

	user := middleware.AuthUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse(apperrors.ErrUnauthorized.Message, nil))
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.WarnWithContext(ctx, "Invalid record update request").
			Err(err).
			Log()
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(validation.BindingErrorMessage(err), nil))
		return
	}

	record, err := h.recordService.UpdateRecord(ctx, id, user.ID, &req)
	if err != nil {
		logger.WarnWithContext(ctx, "Record update failed").
			Uint("user_id", user.ID).
			Uint("record_id", id).
			Err(err).
			Log()
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	logger.InfoWithContext(ctx, "Record updated").
		Uint("user_id", user.ID).
		Uint("record_id", id).
		Log()

	c.JSON(http.StatusOK, constants.BuildDataResponse(dto.ToRecordResponse(record)))
}
