package handler

import (
	"io"
	"net/http"

	"github.com/examhub/examhub/internal/constants"
	"github.com/examhub/examhub/internal/dto"
	apperrors "github.com/examhub/examhub/internal/errors"
	"github.com/examhub/examhub/internal/middleware"
	"github.com/examhub/examhub/internal/service"
	"github.com/examhub/examhub/internal/validation"
	ctxutil "github.com/examhub/examhub/pkg/context"
	"github.com/examhub/examhub/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// maxAvatarSize caps avatar uploads at 5 MB.
const maxAvatarSize = 5 << 20

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register creates a new account and mails out the activation code
func (h *AuthHandler) Register(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "Register")

	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.WarnWithContext(ctx, "Invalid register request").
			Err(err).
			Log()
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(validation.BindingErrorMessage(err), nil))
		return
	}

	if err := validation.ValidatePasswordForRegister(req.Password, req.ConfirmPassword); err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	logger.InfoWithContext(ctx, "User registration attempt").
		String("email", req.Email).
		Log()

	user, err := h.authService.Register(ctx, &req)
	if err != nil {
		logger.WarnWithContext(ctx, "Registration failed").
			String("email", req.Email).
			Err(err).
			Log()
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	logger.InfoWithContext(ctx, "User registered successfully").
		String("email", req.Email).
		Uint("user_id", user.ID).
		Log()

	c.JSON(http.StatusCreated, constants.BuildDataResponse(dto.ToUserResponse(user)))
}

// Login authenticates a user and issues a bearer token
func (h *AuthHandler) Login(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "Login")

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.WarnWithContext(ctx, "Invalid login request").
			Err(err).
			Log()
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(validation.BindingErrorMessage(err), nil))
		return
	}

	logger.InfoWithContext(ctx, "User login attempt").
		String("email", req.Email).
		Log()

	user, token, err := h.authService.Login(ctx, &req)
	if err != nil {
		logger.WarnWithContext(ctx, "Login failed").
			String("email", req.Email).
			Err(err).
			Log()
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	logger.InfoWithContext(ctx, "User logged in successfully").
		String("email", req.Email).
		Uint("user_id", user.ID).
		Log()

	c.JSON(http.StatusOK, constants.BuildTokenResponse(dto.ToUserResponse(user), token))
}

// Activate verifies the activation code mailed at registration
func (h *AuthHandler) Activate(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "Activate")

	var req dto.ActivateRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		logger.WarnWithContext(ctx, "Invalid activation request").
			Err(err).
			Log()
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(validation.BindingErrorMessage(err), nil))
		return
	}

	user, err := h.authService.Activate(ctx, req.ActivationCode)
	if err != nil {
		logger.WarnWithContext(ctx, "Account activation failed").
			Err(err).
			Log()
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	logger.InfoWithContext(ctx, "Account activated").
		Uint("user_id", user.ID).
		Log()

	c.JSON(http.StatusOK, constants.BuildDataResponse(dto.ToUserResponse(user)))
}

// Forget starts the password reset flow for the given email
func (h *AuthHandler) Forget(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "Forget")

	var req dto.ForgetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.WarnWithContext(ctx, "Invalid forget password request").
			Err(err).
			Log()
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(validation.BindingErrorMessage(err), nil))
		return
	}

	logger.InfoWithContext(ctx, "Password reset requested").
		String("email", req.Email).
		Log()

	status, err := h.authService.Forget(ctx, req.Email)
	if err != nil {
		logger.WarnWithContext(ctx, "Password reset request failed").
			String("email", req.Email).
			Err(err).
			Log()
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	c.JSON(http.StatusOK, constants.BuildStatusResponse(status))
}

// ActivateResetPassword redeems the reset code and issues a token so the
// user can set a new password
func (h *AuthHandler) ActivateResetPassword(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "ActivateResetPassword")

	resetCode := c.Param("reset_password_code")
	if _, err := uuid.Parse(resetCode); err != nil {
		logger.WarnWithContext(ctx, "Malformed reset code").
			Err(err).
			Log()
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("reset_password_code must be a valid UUID", nil))
		return
	}

	user, token, err := h.authService.ActivateResetPassword(ctx, resetCode)
	if err != nil {
		logger.WarnWithContext(ctx, "Reset code activation failed").
			Err(err).
			Log()
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	logger.InfoWithContext(ctx, "Reset code redeemed").
		Uint("user_id", user.ID).
		Log()

	c.JSON(http.StatusOK, constants.BuildTokenResponse(dto.ToUserResponse(user), token))
}

// ResetPassword replaces the password of the authenticated user after a
// completed reset flow
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "ResetPassword")

	user := middleware.AuthUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse(apperrors.ErrUnauthorized.Message, nil))
		return
	}

	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.WarnWithContext(ctx, "Invalid reset password request").
			Err(err).
			Log()
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(validation.BindingErrorMessage(err), nil))
		return
	}

	if err := validation.ValidatePasswordForReset(req.NewPassword, req.ConfirmPassword); err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	status, err := h.authService.ResetPassword(ctx, user.ID, req.NewPassword)
	if err != nil {
		logger.WarnWithContext(ctx, "Password reset failed").
			Uint("user_id", user.ID).
			Err(err).
			Log()
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	logger.InfoWithContext(ctx, "Password reset completed").
		Uint("user_id", user.ID).
		Log()

	c.JSON(http.StatusOK, constants.BuildStatusResponse(status))
}

// ChangePassword replaces the password of the authenticated user after
// verifying the old one
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "ChangePassword")

	user := middleware.AuthUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse(apperrors.ErrUnauthorized.Message, nil))
		return
	}

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.WarnWithContext(ctx, "Invalid change password request").
			Err(err).
			Log()
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(validation.BindingErrorMessage(err), nil))
		return
	}

	if err := validation.ValidatePasswordForChange(req.NewPassword, req.ConfirmNewPassword); err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	status, err := h.authService.ChangePassword(ctx, user.ID, req.OldPassword, req.NewPassword)
	if err != nil {
		logger.WarnWithContext(ctx, "Password change failed").
			Uint("user_id", user.ID).
			Err(err).
			Log()
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	logger.InfoWithContext(ctx, "Password changed").
		Uint("user_id", user.ID).
		Log()

	c.JSON(http.StatusOK, constants.BuildStatusResponse(status))
}

// UploadAvatar stores a new profile image for the authenticated user
func (h *AuthHandler) UploadAvatar(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "UploadAvatar")

	user := middleware.AuthUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse(apperrors.ErrUnauthorized.Message, nil))
		return
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		logger.WarnWithContext(ctx, "Missing avatar file").
			Err(err).
			Log()
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("avatar file is required", nil))
		return
	}

	if fileHeader.Size > maxAvatarSize {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("avatar file exceeds the 5MB limit", nil))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to open uploaded avatar").
			Err(err).
			Log()
		c.JSON(http.StatusUnprocessableEntity, constants.BuildErrorResponse(apperrors.ErrUploadFailed.Message, nil))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxAvatarSize))
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to read uploaded avatar").
			Err(err).
			Log()
		c.JSON(http.StatusUnprocessableEntity, constants.BuildErrorResponse(apperrors.ErrUploadFailed.Message, nil))
		return
	}

	updated, err := h.authService.UploadAvatar(ctx, user.ID, fileHeader.Filename, data)
	if err != nil {
		logger.WarnWithContext(ctx, "Avatar upload failed").
			Uint("user_id", user.ID).
			Err(err).
			Log()
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	logger.InfoWithContext(ctx, "Avatar uploaded").
		Uint("user_id", user.ID).
		Log()

	c.JSON(http.StatusOK, constants.BuildDataResponse(dto.ToUserResponse(updated)))
}
