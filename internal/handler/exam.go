package handler

import (
	"net/http"

	"github.com/examhub/examhub/config"
	"github.com/examhub/examhub/internal/constants"
	"github.com/examhub/examhub/internal/dto"
	apperrors "github.com/examhub/examhub/internal/errors"
	"github.com/examhub/examhub/internal/model"
	"github.com/examhub/examhub/internal/service"
	"github.com/examhub/examhub/internal/validation"
	ctxutil "github.com/examhub/examhub/pkg/context"
	"github.com/examhub/examhub/pkg/logger"
	"github.com/gin-gonic/gin"
)

// TaxonomyHandler serves one exam classification entity. The same handler
// shape backs exam names, types, paper types, years and subjects.
type TaxonomyHandler[T model.Taxonomy, PT model.TaxonomyPtr[T]] struct {
	svc    *service.TaxonomyService[T, PT]
	cfg    *config.Config
	entity string
}

func NewTaxonomyHandler[T model.Taxonomy, PT model.TaxonomyPtr[T]](svc *service.TaxonomyService[T, PT], cfg *config.Config, entity string) *TaxonomyHandler[T, PT] {
	return &TaxonomyHandler[T, PT]{
		svc:    svc,
		cfg:    cfg,
		entity: entity,
	}
}

// Create adds a new classification entry. Admin only.
func (h *TaxonomyHandler[T, PT]) Create(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "CreateTaxonomy")

	var req dto.CreateTaxonomyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.WarnWithContext(ctx, "Invalid create request").
			String("entity", h.entity).
			Err(err).
			Log()
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(validation.BindingErrorMessage(err), nil))
		return
	}

	entry, err := h.svc.Create(ctx, &req)
	if err != nil {
		logger.WarnWithContext(ctx, "Create failed").
			String("entity", h.entity).
			Err(err).
			Log()
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	logger.InfoWithContext(ctx, "Entry created").
		String("entity", h.entity).
		Uint("id", entry.ID).
		Log()

	c.JSON(http.StatusCreated, constants.BuildDataResponse(entry))
}

// Get returns one classification entry. Admin only.
func (h *TaxonomyHandler[T, PT]) Get(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "GetTaxonomy")

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	entry, err := h.svc.Get(ctx, id)
	if err != nil {
		logger.WarnWithContext(ctx, "Lookup failed").
			String("entity", h.entity).
			Uint("id", id).
			Err(err).
			Log()
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	c.JSON(http.StatusOK, constants.BuildDataResponse(entry))
}

// List returns all entries of this classification, paginated. Public.
func (h *TaxonomyHandler[T, PT]) List(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "ListTaxonomy")

	params := constants.ParsePaginationParams(c, h.cfg.Pagination.Limit, h.cfg.Pagination.Offset)

	entries, total, err := h.svc.List(ctx, params.Limit, params.Offset)
	if err != nil {
		logger.ErrorWithContext(ctx, "Listing failed").
			String("entity", h.entity).
			Err(err).
			Log()
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	c.JSON(http.StatusOK, constants.BuildListResponse(entries, total, params.Limit, params.Offset))
}

// Update modifies an existing entry. Admin only.
func (h *TaxonomyHandler[T, PT]) Update(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "UpdateTaxonomy")

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateTaxonomyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.WarnWithContext(ctx, "Invalid update request").
			String("entity", h.entity).
			Err(err).
			Log()
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(validation.BindingErrorMessage(err), nil))
		return
	}

	entry, err := h.svc.Update(ctx, id, &req)
	if err != nil {
		logger.WarnWithContext(ctx, "Update failed").
			String("entity", h.entity).
			Uint("id", id).
			Err(err).
			Log()
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	logger.InfoWithContext(ctx, "Entry updated").
		String("entity", h.entity).
		Uint("id", id).
		Log()

	c.JSON(http.StatusOK, constants.BuildDataResponse(entry))
}

// Delete removes an entry. Admin only.
func (h *TaxonomyHandler[T, PT]) Delete(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "DeleteTaxonomy")

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	status, err := h.svc.Delete(ctx, id)
	if err != nil {
		logger.WarnWithContext(ctx, "Delete failed").
			String("entity", h.entity).
			Uint("id", id).
			Err(err).
			Log()
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	logger.InfoWithContext(ctx, "Entry deleted").
		String("entity", h.entity).
		Uint("id", id).
		Log()

	c.JSON(http.StatusOK, constants.BuildStatusResponse(status))
}
