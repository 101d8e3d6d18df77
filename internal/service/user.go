package service

import (
	"context"

	"github.com/examhub/examhub/internal/dto"
	domainerrors "github.com/examhub/examhub/internal/errors"
	"github.com/examhub/examhub/internal/model"
	ctxutil "github.com/examhub/examhub/pkg/context"
	"github.com/examhub/examhub/pkg/logger"
)

type UserService interface {
	GetUser(ctx context.Context, id uint) (*model.User, error)
	ListUsers(ctx context.Context, limit, offset int, search string) ([]model.User, int64, error)
	UpdateProfile(ctx context.Context, id uint, req *dto.UpdateProfileRequest) (*model.User, error)
	DeleteUser(ctx context.Context, id uint) (string, error)
}

// AdminUserStore is the slice of the user repository the profile and admin
// operations need.
type AdminUserStore interface {
	GetByID(ctx context.Context, id uint) (*model.User, error)
	GetAll(ctx context.Context, limit, offset int, search string) ([]model.User, int64, error)
	UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error
	Delete(ctx context.Context, id uint) error
}

type userService struct {
	users AdminUserStore
}

func NewUserService(users AdminUserStore) UserService {
	return &userService{users: users}
}

func (s *userService) GetUser(ctx context.Context, id uint) (*model.User, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "GetUser")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		logger.WarnWithContext(ctx, "User not found").
			Uint("user_id", id).
			Log()
		return nil, domainerrors.ErrNotFound
	}

	return user, nil
}

func (s *userService) ListUsers(ctx context.Context, limit, offset int, search string) ([]model.User, int64, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "ListUsers")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	users, total, err := s.users.GetAll(ctx, limit, offset, search)
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to list users").
			Err(err).
			Log()
		return nil, 0, domainerrors.WrapError(domainerrors.ErrInternal, err)
	}

	return users, total, nil
}

// UpdateProfile applies a partial name update. Absent fields keep their
// current values.
func (s *userService) UpdateProfile(ctx context.Context, id uint, req *dto.UpdateProfileRequest) (*model.User, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "UpdateProfile")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	logger.InfoWithContext(ctx, "Starting profile update").
		Uint("user_id", id).
		Log()

	fields := map[string]interface{}{}
	if req.FirstName != "" {
		fields["first_name"] = req.FirstName
	}
	if req.LastName != "" {
		fields["last_name"] = req.LastName
	}

	if len(fields) > 0 {
		if err := s.users.UpdateFields(ctx, id, fields); err != nil {
			logger.WarnWithContext(ctx, "Profile update failed").
				Uint("user_id", id).
				Err(err).
				Log()
			return nil, domainerrors.ErrNotFound
		}
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, domainerrors.ErrNotFound
	}

	logger.InfoWithContext(ctx, "Profile updated successfully").
		Uint("user_id", id).
		Log()

	return user, nil
}

// DeleteUser flags the account as deleted; the row is kept.
func (s *userService) DeleteUser(ctx context.Context, id uint) (string, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "DeleteUser")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	if err := s.users.Delete(ctx, id); err != nil {
		logger.WarnWithContext(ctx, "User delete failed").
			Uint("user_id", id).
			Err(err).
			Log()
		return "", domainerrors.ErrNotFound
	}

	logger.InfoWithContext(ctx, "User deleted successfully").
		Uint("user_id", id).
		Log()

	return "success", nil
}
