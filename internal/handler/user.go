package handler

import (
	"net/http"
	"strconv"

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

type UserHandler struct {
	userService service.UserService
	cfg         *config.Config
}

func NewUserHandler(userService service.UserService, cfg *config.Config) *UserHandler {
	return &UserHandler{
		userService: userService,
		cfg:         cfg,
	}
}

// Me returns the profile of the authenticated user
func (h *UserHandler) Me(c *gin.Context) {
	user := middleware.AuthUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse(apperrors.ErrUnauthorized.Message, nil))
		return
	}

	c.JSON(http.StatusOK, constants.BuildDataResponse(dto.ToUserResponse(user)))
}

// UpdateProfile changes the name fields of the authenticated user
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "UpdateProfile")

	user := middleware.AuthUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse(apperrors.ErrUnauthorized.Message, nil))
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.WarnWithContext(ctx, "Invalid profile update request").
			Err(err).
			Log()
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(validation.BindingErrorMessage(err), nil))
		return
	}

	updated, err := h.userService.UpdateProfile(ctx, user.ID, &req)
	if err != nil {
		logger.WarnWithContext(ctx, "Profile update failed").
			Uint("user_id", user.ID).
			Err(err).
			Log()
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	logger.InfoWithContext(ctx, "Profile updated").
		Uint("user_id", user.ID).
		Log()

	c.JSON(http.StatusOK, constants.BuildDataResponse(dto.ToUserResponse(updated)))
}

// ListUsers returns a paginated user listing with optional search. Admin only.
func (h *UserHandler) ListUsers(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "ListUsers")

	params := constants.ParsePaginationParams(c, h.cfg.Pagination.Limit, h.cfg.Pagination.Offset)
	search := c.Query("search")

	users, total, err := h.userService.ListUsers(ctx, params.Limit, params.Offset, search)
	if err != nil {
		logger.ErrorWithContext(ctx, "User listing failed").
			Err(err).
			Log()
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	c.JSON(http.StatusOK, constants.BuildListResponse(dto.ToUserResponses(users), total, params.Limit, params.Offset))
}

// GetUser returns one user by id. Admin only.
func (h *UserHandler) GetUser(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "GetUser")

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	user, err := h.userService.GetUser(ctx, id)
	if err != nil {
		logger.WarnWithContext(ctx, "User lookup failed").
			Uint("user_id", id).
			Err(err).
			Log()
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	c.JSON(http.StatusOK, constants.BuildDataResponse(dto.ToUserResponse(user)))
}

// UpdateUser changes the name fields of any user. Admin only.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "UpdateUser")

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.WarnWithContext(ctx, "Invalid user update request").
			Err(err).
			Log()
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(validation.BindingErrorMessage(err), nil))
		return
	}

	updated, err := h.userService.UpdateProfile(ctx, id, &req)
	if err != nil {
		logger.WarnWithContext(ctx, "User update failed").
			Uint("user_id", id).
			Err(err).
			Log()
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	logger.InfoWithContext(ctx, "User updated").
		Uint("user_id", id).
		Log()

	c.JSON(http.StatusOK, constants.BuildDataResponse(dto.ToUserResponse(updated)))
}

// DeleteUser soft deletes a user account. Admin only.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "DeleteUser")

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	status, err := h.userService.DeleteUser(ctx, id)
	if err != nil {
		logger.WarnWithContext(ctx, "User delete failed").
			Uint("user_id", id).
			Err(err).
			Log()
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	logger.InfoWithContext(ctx, "User deleted").
		Uint("user_id", id).
		Log()

	c.JSON(http.StatusOK, constants.BuildStatusResponse(status))
}

// parseIDParam reads the :id path segment as an unsigned integer, writing a
// 400 response itself when the value is not numeric.
func parseIDParam(c *gin.Context) (uint, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("id must be a positive integer", nil))
		return 0, false
	}
	return uint(id), true
}
