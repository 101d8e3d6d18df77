package repository

import (
	"context"
	"time"

	"github.com/examhub/examhub/internal/model"
	ctxutil "github.com/examhub/examhub/pkg/context"
	"github.com/examhub/examhub/pkg/logger"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(ctx context.Context, id uint) (*model.User, error) {
	// Add function info to context
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "GetByID")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	logger.DebugWithContext(ctx, "Getting user by ID").
		Uint("user_id", id).
		Log()

	if err := ctx.Err(); err != nil {
		logger.WarnWithContext(ctx, "Context cancelled before query").
			Err(err).
			Log()
		return nil, err
	}

	start := time.Now()
	var user model.User

	result := r.db.WithContext(ctx).Where("id = ? AND is_deleted = ?", id, false).First(&user)
	duration := time.Since(start)

	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to get user by ID").
			Uint("user_id", id).
			Duration(duration).
			Err(result.Error).
			Log()
		return nil, result.Error
	}

	logger.DebugWithContext(ctx, "User retrieved successfully").
		Uint("user_id", id).
		String("email", user.Email).
		Duration(duration).
		Log()

	return &user, nil
}

// GetByEmail finds user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "GetByEmail")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	logger.DebugWithContext(ctx, "Getting user by email").
		String("email", email).
		Log()

	start := time.Now()
	var user model.User

	result := r.db.WithContext(ctx).Where("email = ?", email).First(&user)
	duration := time.Since(start)

	if result.Error != nil {
		logger.DebugWithContext(ctx, "User lookup by email missed").
			String("email", email).
			Duration(duration).
			Err(result.Error).
			Log()
		return nil, result.Error
	}

	logger.DebugWithContext(ctx, "User retrieved successfully by email").
		String("email", email).
		Uint("user_id", user.ID).
		Duration(duration).
		Log()

	return &user, nil
}

// GetByPhone finds user by phone number
func (r *UserRepository) GetByPhone(ctx context.Context, phone string) (*model.User, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "GetByPhone")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	start := time.Now()
	var user model.User

	result := r.db.WithContext(ctx).Where("phone = ?", phone).First(&user)
	duration := time.Since(start)

	if result.Error != nil {
		logger.DebugWithContext(ctx, "User lookup by phone missed").
			String("phone", phone).
			Duration(duration).
			Err(result.Error).
			Log()
		return nil, result.Error
	}

	logger.DebugWithContext(ctx, "User retrieved successfully by phone").
		String("phone", phone).
		Uint("user_id", user.ID).
		Duration(duration).
		Log()

	return &user, nil
}

// GetByActivationCode finds a user holding the given activation code
func (r *UserRepository) GetByActivationCode(ctx context.Context, code string) (*model.User, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "GetByActivationCode")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	start := time.Now()
	var user model.User

	result := r.db.WithContext(ctx).Where("activation_code = ?", code).First(&user)
	duration := time.Since(start)

	if result.Error != nil {
		logger.WarnWithContext(ctx, "Activation code lookup missed").
			Duration(duration).
			Err(result.Error).
			Log()
		return nil, result.Error
	}

	logger.DebugWithContext(ctx, "User retrieved by activation code").
		Uint("user_id", user.ID).
		Duration(duration).
		Log()

	return &user, nil
}

// GetByResetCode finds a user holding the given unused reset code
func (r *UserRepository) GetByResetCode(ctx context.Context, code string) (*model.User, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "GetByResetCode")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	start := time.Now()
	var user model.User

	result := r.db.WithContext(ctx).
		Where("reset_password = ? AND is_used_password = ?", code, false).
		First(&user)
	duration := time.Since(start)

	if result.Error != nil {
		logger.WarnWithContext(ctx, "Reset code lookup missed").
			Duration(duration).
			Err(result.Error).
			Log()
		return nil, result.Error
	}

	logger.DebugWithContext(ctx, "User retrieved by reset code").
		Uint("user_id", user.ID).
		Duration(duration).
		Log()

	return &user, nil
}

func (r *UserRepository) GetAll(ctx context.Context, limit, offset int, search string) ([]model.User, int64, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "GetAll")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	logger.DebugWithContext(ctx, "Getting all users").
		Int("limit", limit).
		Int("offset", offset).
		String("search", search).
		Log()

	if err := ctx.Err(); err != nil {
		logger.WarnWithContext(ctx, "Context cancelled before query").
			Err(err).
			Log()
		return nil, 0, err
	}

	start := time.Now()
	var users []model.User
	var total int64

	query := r.db.WithContext(ctx).Model(&model.User{}).Where("is_deleted = ?", false)

	if search != "" {
		searchPattern := "%" + search + "%"
		query = query.Where(
			"first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ? OR phone ILIKE ?",
			searchPattern, searchPattern, searchPattern, searchPattern,
		)
	}

	if err := query.Count(&total).Error; err != nil {
		logger.ErrorWithContext(ctx, "Failed to count total users").
			Err(err).
			Log()
		return nil, 0, err
	}

	if err := query.Limit(limit).Offset(offset).Find(&users).Error; err != nil {
		logger.ErrorWithContext(ctx, "Failed to fetch users").
			Int("limit", limit).
			Int("offset", offset).
			Duration(time.Since(start)).
			Err(err).
			Log()
		return nil, 0, err
	}

	logger.InfoWithContext(ctx, "Users retrieved successfully").
		Int("limit", limit).
		Int("offset", offset).
		Int64("total", total).
		Int("returned_count", len(users)).
		Duration(time.Since(start)).
		Log()

	return users, total, nil
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Create")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	logger.DebugWithContext(ctx, "Creating new user").
		String("email", user.Email).
		String("first_name", user.FirstName).
		String("last_name", user.LastName).
		Log()

	start := time.Now()
	result := r.db.WithContext(ctx).Create(user)
	duration := time.Since(start)

	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to create user").
			String("email", user.Email).
			Duration(duration).
			Err(result.Error).
			Log()
		return result.Error
	}

	logger.InfoWithContext(ctx, "User created successfully").
		String("email", user.Email).
		Uint("user_id", user.ID).
		Duration(duration).
		Log()

	return nil
}

// UpdateFields applies a partial update to a user row
func (r *UserRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "UpdateFields")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	logger.DebugWithContext(ctx, "Updating user fields").
		Uint("user_id", id).
		Int("field_count", len(fields)).
		Log()

	start := time.Now()
	result := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Updates(fields)
	duration := time.Since(start)

	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to update user").
			Uint("user_id", id).
			Duration(duration).
			Err(result.Error).
			Log()
		return result.Error
	}

	if result.RowsAffected == 0 {
		logger.WarnWithContext(ctx, "No user found to update").
			Uint("user_id", id).
			Log()
		return gorm.ErrRecordNotFound
	}

	logger.InfoWithContext(ctx, "User updated successfully").
		Uint("user_id", id).
		Int64("rows_affected", result.RowsAffected).
		Duration(duration).
		Log()

	return nil
}

// UpdatePassword updates user password hash
func (r *UserRepository) UpdatePassword(ctx context.Context, id uint, hashedPassword string) error {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "UpdatePassword")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	logger.DebugWithContext(ctx, "Updating user password").
		Uint("user_id", id).
		Log()

	start := time.Now()
	result := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Update("password", hashedPassword)
	duration := time.Since(start)

	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to update user password").
			Uint("user_id", id).
			Duration(duration).
			Err(result.Error).
			Log()
		return result.Error
	}

	if result.RowsAffected == 0 {
		logger.WarnWithContext(ctx, "No user found to update password").
			Uint("user_id", id).
			Log()
		return gorm.ErrRecordNotFound
	}

	logger.InfoWithContext(ctx, "User password updated successfully").
		Uint("user_id", id).
		Duration(duration).
		Log()

	return nil
}

// Delete marks a user as deleted without removing the row
func (r *UserRepository) Delete(ctx context.Context, id uint) error {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Delete")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	logger.DebugWithContext(ctx, "Soft deleting user").
		Uint("user_id", id).
		Log()

	start := time.Now()
	result := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Update("is_deleted", true)
	duration := time.Since(start)

	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to delete user").
			Uint("user_id", id).
			Duration(duration).
			Err(result.Error).
			Log()
		return result.Error
	}

	if result.RowsAffected == 0 {
		logger.WarnWithContext(ctx, "No user found to delete").
			Uint("user_id", id).
			Log()
		return gorm.ErrRecordNotFound
	}

	logger.InfoWithContext(ctx, "User deleted successfully").
		Uint("user_id", id).
		Duration(duration).
		Log()

	return nil
}
