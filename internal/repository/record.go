package repository

import (
	"context"
	"time"

	"github.com/examhub/examhub/internal/model"
	ctxutil "github.com/examhub/examhub/pkg/context"
	"github.com/examhub/examhub/pkg/logger"
	"gorm.io/gorm"
)

type RecordRepository struct {
	db *gorm.DB
}

func NewRecordRepository(db *gorm.DB) *RecordRepository {
	return &RecordRepository{db: db}
}

// Create stores a new attempt record
func (r *RecordRepository) Create(ctx context.Context, record *model.Record) error {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Create")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	logger.DebugWithContext(ctx, "Creating attempt record").
		Uint("user_id", record.UserID).
		Uint("exam_name_id", record.ExamNameID).
		Log()

	start := time.Now()
	result := r.db.WithContext(ctx).Create(record)
	duration := time.Since(start)

	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to create attempt record").
			Uint("user_id", record.UserID).
			Duration(duration).
			Err(result.Error).
			Log()
		return result.Error
	}

	logger.InfoWithContext(ctx, "Attempt record created successfully").
		Uint("record_id", record.ID).
		Uint("user_id", record.UserID).
		Duration(duration).
		Log()

	return nil
}

// GetByIDForUser fetches one record owned by the given user
func (r *RecordRepository) GetByIDForUser(ctx context.Context, id, userID uint) (*model.Record, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "GetByIDForUser")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	start := time.Now()
	var record model.Record

	result := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&record)
	duration := time.Since(start)

	if result.Error != nil {
		logger.WarnWithContext(ctx, "Attempt record lookup missed").
			Uint("record_id", id).
			Uint("user_id", userID).
			Duration(duration).
			Err(result.Error).
			Log()
		return nil, result.Error
	}

	logger.DebugWithContext(ctx, "Attempt record retrieved successfully").
		Uint("record_id", id).
		Uint("user_id", userID).
		Duration(duration).
		Log()

	return &record, nil
}

// ListByUser fetches a page of records owned by the given user
func (r *RecordRepository) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]model.Record, int64, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "ListByUser")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	logger.DebugWithContext(ctx, "Listing attempt records").
		Uint("user_id", userID).
		Int("limit", limit).
		Int("offset", offset).
		Log()

	start := time.Now()
	var records []model.Record
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Record{}).Where("user_id = ?", userID)

	if err := query.Count(&total).Error; err != nil {
		logger.ErrorWithContext(ctx, "Failed to count attempt records").
			Uint("user_id", userID).
			Err(err).
			Log()
		return nil, 0, err
	}

	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&records).Error; err != nil {
		logger.ErrorWithContext(ctx, "Failed to fetch attempt records").
			Uint("user_id", userID).
			Duration(time.Since(start)).
			Err(err).
			Log()
		return nil, 0, err
	}

	logger.InfoWithContext(ctx, "Attempt records retrieved successfully").
		Uint("user_id", userID).
		Int64("total", total).
		Int("returned_count", len(records)).
		Duration(time.Since(start)).
		Log()

	return records, total, nil
}

// UpdateForUser applies a partial update to a record owned by the given user
func (r *RecordRepository) UpdateForUser(ctx context.Context, id, userID uint, fields map[string]interface{}) error {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "UpdateForUser")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	logger.DebugWithContext(ctx, "Updating attempt record").
		Uint("record_id", id).
		Uint("user_id", userID).
		Int("field_count", len(fields)).
		Log()

	start := time.Now()
	result := r.db.WithContext(ctx).Model(&model.Record{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(fields)
	duration := time.Since(start)

	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to update attempt record").
			Uint("record_id", id).
			Uint("user_id", userID).
			Duration(duration).
			Err(result.Error).
			Log()
		return result.Error
	}

	if result.RowsAffected == 0 {
		logger.WarnWithContext(ctx, "No attempt record found to update").
			Uint("record_id", id).
			Uint("user_id", userID).
			Log()
		return gorm.ErrRecordNotFound
	}

	logger.InfoWithContext(ctx, "Attempt record updated successfully").
		Uint("record_id", id).
		Uint("user_id", userID).
		Duration(duration).
		Log()

	return nil
}
