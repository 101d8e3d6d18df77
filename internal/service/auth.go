package service

import (
	"context"
	"errors"
	"time"

	"github.com/examhub/examhub/internal/constants"
	"github.com/examhub/examhub/internal/dto"
	domainerrors "github.com/examhub/examhub/internal/errors"
	"github.com/examhub/examhub/internal/model"
	ctxutil "github.com/examhub/examhub/pkg/context"
	"github.com/examhub/examhub/pkg/logger"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthUserStore is the slice of the user repository the auth flows need.
type AuthUserStore interface {
	GetByID(ctx context.Context, id uint) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByPhone(ctx context.Context, phone string) (*model.User, error)
	GetByActivationCode(ctx context.Context, code string) (*model.User, error)
	GetByResetCode(ctx context.Context, code string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
	UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error
	UpdatePassword(ctx context.Context, id uint, hashedPassword string) error
}

// Mailer delivers lifecycle emails. Implementations must be safe for
// concurrent use; the auth service fires them from goroutines.
type Mailer interface {
	Send(emailType string, user *model.User) error
}

// Uploader stores an image and returns its public URL.
type Uploader interface {
	UploadBytes(ctx context.Context, folder, filename string, data []byte) (string, error)
}

type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*model.User, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*model.User, string, error)
	Activate(ctx context.Context, activationCode string) (*model.User, error)
	Forget(ctx context.Context, email string) (string, error)
	ActivateResetPassword(ctx context.Context, resetCode string) (*model.User, string, error)
	ResetPassword(ctx context.Context, userID uint, newPassword string) (string, error)
	ChangePassword(ctx context.Context, userID uint, oldPassword, newPassword string) (string, error)
	UploadAvatar(ctx context.Context, userID uint, filename string, data []byte) (*model.User, error)
}

type authService struct {
	users        AuthUserStore
	jwt          *JWTService
	mailer       Mailer
	uploader     Uploader
	resetCodeTTL time.Duration
}

func NewAuthService(users AuthUserStore, jwt *JWTService, mailer Mailer, uploader Uploader, resetCodeTTL time.Duration) AuthService {
	return &authService{
		users:        users,
		jwt:          jwt,
		mailer:       mailer,
		uploader:     uploader,
		resetCodeTTL: resetCodeTTL,
	}
}

// Register creates a new account with a fresh activation code and sends the
// welcome email. Duplicate checks run first so the caller gets the precise
// conflict message; the unique indexes on email and phone remain the backstop
// for races.
func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*model.User, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Register")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	logger.InfoWithContext(ctx, "Starting user registration").
		String("email", req.Email).
		Log()

	existing, err := s.users.GetByEmail(ctx, req.Email)
	if err == nil && existing != nil {
		if !existing.IsActivated {
			logger.WarnWithContext(ctx, "Registration rejected, unverified account exists").
				String("email", req.Email).
				Log()
			return nil, domainerrors.ErrEmailExistsUnverified
		}
		logger.WarnWithContext(ctx, "Registration rejected, account exists").
			String("email", req.Email).
			Log()
		return nil, domainerrors.ErrEmailExists
	}

	if _, err := s.users.GetByPhone(ctx, req.Phone); err == nil {
		logger.WarnWithContext(ctx, "Registration rejected, phone already taken").
			String("phone", req.Phone).
			Log()
		return nil, domainerrors.ErrPhoneExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to hash password").
			Err(err).
			Log()
		return nil, domainerrors.WrapError(domainerrors.ErrInternal, err)
	}

	activationCode := uuid.NewString()
	user := &model.User{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Phone:          req.Phone,
		Password:       string(hashedPassword),
		ActivationCode: &activationCode,
		Role:           constants.RoleUser,
	}

	if err := s.users.Create(ctx, user); err != nil {
		// The unique indexes on email and phone backstop the pre-checks
		// against concurrent registrations. The translated error drops
		// the constraint name, so re-run the lookups to report the
		// column that collided.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			logger.WarnWithContext(ctx, "Registration rejected, unique index hit").
				String("email", req.Email).
				Log()
			if existing, lookupErr := s.users.GetByEmail(ctx, req.Email); lookupErr == nil && existing != nil {
				if !existing.IsActivated {
					return nil, domainerrors.ErrEmailExistsUnverified
				}
				return nil, domainerrors.ErrEmailExists
			}
			if _, lookupErr := s.users.GetByPhone(ctx, req.Phone); lookupErr == nil {
				return nil, domainerrors.ErrPhoneExists
			}
			return nil, domainerrors.ErrEmailExists
		}
		logger.ErrorWithContext(ctx, "Failed to create user").
			String("email", req.Email).
			Err(err).
			Log()
		return nil, domainerrors.WrapError(domainerrors.ErrInternal, err)
	}

	logger.InfoWithContext(ctx, "User registered successfully").
		Uint("user_id", user.ID).
		String("email", user.Email).
		Log()

	s.sendMail(ctx, constants.EmailWelcome, user)

	return user, nil
}

// Login verifies credentials and issues a token. Unknown email and wrong
// password share one error so responses cannot be probed for accounts.
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*model.User, string, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Login")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	logger.InfoWithContext(ctx, "Starting user login").
		String("email", req.Email).
		Log()

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		logger.WarnWithContext(ctx, "Login failed, user not found").
			String("email", req.Email).
			Log()
		return nil, "", domainerrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		logger.WarnWithContext(ctx, "Login failed, invalid password").
			String("email", req.Email).
			Log()
		return nil, "", domainerrors.ErrInvalidCredentials
	}

	if !user.IsActivated {
		logger.WarnWithContext(ctx, "Login rejected, account not activated").
			String("email", req.Email).
			Log()
		return nil, "", domainerrors.ErrNotActivated
	}

	token, err := s.jwt.GenerateToken(user)
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to sign token").
			Uint("user_id", user.ID).
			Err(err).
			Log()
		return nil, "", domainerrors.WrapError(domainerrors.ErrInternal, err)
	}

	logger.InfoWithContext(ctx, "User logged in successfully").
		Uint("user_id", user.ID).
		String("email", user.Email).
		Log()

	return user, token, nil
}

// Activate turns on an account by its activation code. The code is cleared on
// first use, so a replay fails the lookup.
func (s *authService) Activate(ctx context.Context, activationCode string) (*model.User, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Activate")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	logger.InfoWithContext(ctx, "Starting account activation").Log()

	user, err := s.users.GetByActivationCode(ctx, activationCode)
	if err != nil {
		logger.WarnWithContext(ctx, "Activation failed, code not recognized").
			Log()
		return nil, domainerrors.ErrForbiddenAttempt
	}

	fields := map[string]interface{}{
		"is_activated":     true,
		"is_used_password": true,
		"activation_code":  nil,
	}
	if err := s.users.UpdateFields(ctx, user.ID, fields); err != nil {
		logger.ErrorWithContext(ctx, "Failed to activate user").
			Uint("user_id", user.ID).
			Err(err).
			Log()
		return nil, domainerrors.WrapError(domainerrors.ErrInternal, err)
	}

	user.IsActivated = true
	user.IsUsedPassword = true
	user.ActivationCode = nil

	logger.InfoWithContext(ctx, "Account activated successfully").
		Uint("user_id", user.ID).
		String("email", user.Email).
		Log()

	s.sendMail(ctx, constants.EmailActivated, user)

	return user, nil
}

// Forget starts the password reset flow: a fresh reset code with a short
// expiry window is stored and mailed to the account owner.
func (s *authService) Forget(ctx context.Context, email string) (string, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Forget")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	logger.InfoWithContext(ctx, "Starting password reset request").
		String("email", email).
		Log()

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		logger.WarnWithContext(ctx, "Password reset rejected, email not recognized").
			String("email", email).
			Log()
		return "", domainerrors.ErrForbiddenAttempt
	}

	resetCode := uuid.NewString()
	expire := time.Now().Add(s.resetCodeTTL).UnixMilli()

	fields := map[string]interface{}{
		"reset_password":   resetCode,
		"is_used_password": false,
		"password_expire":  expire,
	}
	if err := s.users.UpdateFields(ctx, user.ID, fields); err != nil {
		logger.ErrorWithContext(ctx, "Failed to store reset code").
			Uint("user_id", user.ID).
			Err(err).
			Log()
		return "", domainerrors.WrapError(domainerrors.ErrInternal, err)
	}

	user.ResetPassword = &resetCode
	user.IsUsedPassword = false
	user.PasswordExpire = &expire

	logger.InfoWithContext(ctx, "Reset code issued successfully").
		Uint("user_id", user.ID).
		Log()

	s.sendMail(ctx, constants.EmailForget, user)

	return "success", nil
}

// ActivateResetPassword redeems a reset code. The code must be unused and
// unexpired; redeeming marks it used and clears it, then issues a token so
// the owner can set a new password while logged in.
func (s *authService) ActivateResetPassword(ctx context.Context, resetCode string) (*model.User, string, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "ActivateResetPassword")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	logger.InfoWithContext(ctx, "Starting reset code redemption").Log()

	user, err := s.users.GetByResetCode(ctx, resetCode)
	if err != nil {
		logger.WarnWithContext(ctx, "Reset code redemption failed, code not recognized").
			Log()
		return nil, "", domainerrors.ErrForbiddenAttempt
	}

	if user.PasswordExpire == nil || *user.PasswordExpire <= time.Now().UnixMilli() {
		logger.WarnWithContext(ctx, "Reset code redemption failed, code expired").
			Uint("user_id", user.ID).
			Log()
		return nil, "", domainerrors.ErrForbiddenAttempt
	}

	fields := map[string]interface{}{
		"is_used_password": true,
		"reset_password":   nil,
	}
	if err := s.users.UpdateFields(ctx, user.ID, fields); err != nil {
		logger.ErrorWithContext(ctx, "Failed to redeem reset code").
			Uint("user_id", user.ID).
			Err(err).
			Log()
		return nil, "", domainerrors.WrapError(domainerrors.ErrInternal, err)
	}

	user.IsUsedPassword = true
	user.ResetPassword = nil

	token, err := s.jwt.GenerateToken(user)
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to sign token").
			Uint("user_id", user.ID).
			Err(err).
			Log()
		return nil, "", domainerrors.WrapError(domainerrors.ErrInternal, err)
	}

	logger.InfoWithContext(ctx, "Reset code redeemed successfully").
		Uint("user_id", user.ID).
		Log()

	return user, token, nil
}

// ResetPassword replaces the password of a logged-in user who came through
// the reset-code flow. No old password is required.
func (s *authService) ResetPassword(ctx context.Context, userID uint, newPassword string) (string, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "ResetPassword")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	logger.InfoWithContext(ctx, "Starting password reset").
		Uint("user_id", userID).
		Log()

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		logger.WarnWithContext(ctx, "Password reset failed, user not found").
			Uint("user_id", userID).
			Log()
		return "", domainerrors.ErrNotFound
	}

	if !user.IsActivated {
		logger.WarnWithContext(ctx, "Password reset rejected, account not activated").
			Uint("user_id", userID).
			Log()
		return "", domainerrors.ErrNotActivated
	}

	if err := s.replacePassword(ctx, user, newPassword); err != nil {
		return "", err
	}

	logger.InfoWithContext(ctx, "Password reset successfully").
		Uint("user_id", userID).
		Log()

	s.sendMail(ctx, constants.EmailResetSuccessfully, user)

	return "success", nil
}

// ChangePassword replaces the password after verifying the old one.
func (s *authService) ChangePassword(ctx context.Context, userID uint, oldPassword, newPassword string) (string, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "ChangePassword")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	logger.InfoWithContext(ctx, "Starting password change").
		Uint("user_id", userID).
		Log()

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		logger.WarnWithContext(ctx, "Password change failed, user not found").
			Uint("user_id", userID).
			Log()
		return "", domainerrors.ErrNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)); err != nil {
		logger.WarnWithContext(ctx, "Password change rejected, old password mismatch").
			Uint("user_id", userID).
			Log()
		return "", domainerrors.ErrInvalidOldPassword
	}

	if !user.IsActivated {
		logger.WarnWithContext(ctx, "Password change rejected, account not activated").
			Uint("user_id", userID).
			Log()
		return "", domainerrors.ErrNotActivated
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to hash password").
			Uint("user_id", userID).
			Err(err).
			Log()
		return "", domainerrors.WrapError(domainerrors.ErrInternal, err)
	}

	if err := s.users.UpdatePassword(ctx, user.ID, string(hashedPassword)); err != nil {
		logger.ErrorWithContext(ctx, "Failed to store new password").
			Uint("user_id", userID).
			Err(err).
			Log()
		return "", domainerrors.WrapError(domainerrors.ErrInternal, err)
	}

	logger.InfoWithContext(ctx, "Password changed successfully").
		Uint("user_id", userID).
		Log()

	s.sendMail(ctx, constants.EmailResetSuccessfully, user)

	return "success", nil
}

// UploadAvatar pushes the image to remote storage and links it to the user.
func (s *authService) UploadAvatar(ctx context.Context, userID uint, filename string, data []byte) (*model.User, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "UploadAvatar")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	logger.InfoWithContext(ctx, "Starting avatar upload").
		Uint("user_id", userID).
		String("filename", filename).
		Int("size_bytes", len(data)).
		Log()

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		logger.WarnWithContext(ctx, "Avatar upload failed, user not found").
			Uint("user_id", userID).
			Log()
		return nil, domainerrors.ErrNotFound
	}

	if s.uploader == nil {
		logger.WarnWithContext(ctx, "Avatar upload rejected, no uploader configured").
			Uint("user_id", userID).
			Log()
		return nil, domainerrors.ErrUploadFailed
	}

	avatarURL, err := s.uploader.UploadBytes(ctx, "avatars", filename, data)
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to upload avatar").
			Uint("user_id", userID).
			Err(err).
			Log()
		return nil, domainerrors.WrapError(domainerrors.ErrUploadFailed, err)
	}

	if err := s.users.UpdateFields(ctx, user.ID, map[string]interface{}{"avatar": avatarURL}); err != nil {
		logger.ErrorWithContext(ctx, "Failed to store avatar URL").
			Uint("user_id", userID).
			Err(err).
			Log()
		return nil, domainerrors.WrapError(domainerrors.ErrInternal, err)
	}

	user.Avatar = &avatarURL

	logger.InfoWithContext(ctx, "Avatar uploaded successfully").
		Uint("user_id", userID).
		String("avatar_url", avatarURL).
		Log()

	return user, nil
}

func (s *authService) replacePassword(ctx context.Context, user *model.User, newPassword string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to hash password").
			Uint("user_id", user.ID).
			Err(err).
			Log()
		return domainerrors.WrapError(domainerrors.ErrInternal, err)
	}

	fields := map[string]interface{}{
		"password":         string(hashedPassword),
		"is_used_password": true,
		"reset_password":   nil,
	}
	if err := s.users.UpdateFields(ctx, user.ID, fields); err != nil {
		logger.ErrorWithContext(ctx, "Failed to store new password").
			Uint("user_id", user.ID).
			Err(err).
			Log()
		return domainerrors.WrapError(domainerrors.ErrInternal, err)
	}

	user.IsUsedPassword = true
	user.ResetPassword = nil

	return nil
}

// sendMail delivers lifecycle mail without blocking the request. Failures are
// logged and swallowed; mail delivery never fails the operation.
func (s *authService) sendMail(ctx context.Context, emailType string, user *model.User) {
	if s.mailer == nil {
		return
	}

	snapshot := *user
	go func() {
		if err := s.mailer.Send(emailType, &snapshot); err != nil {
			logger.ErrorWithContext(context.WithoutCancel(ctx), "Failed to send email").
				String("email_type", emailType).
				Uint("user_id", snapshot.ID).
				Err(err).
				Log()
		}
	}()
}
