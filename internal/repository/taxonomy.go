package repository

import (
	"context"
	"time"

	"github.com/examhub/examhub/internal/model"
	ctxutil "github.com/examhub/examhub/pkg/context"
	"github.com/examhub/examhub/pkg/logger"
	"gorm.io/gorm"
)

// TaxonomyRepository is a generic store for the exam classification
// entities. They all carry the same columns, so one implementation covers
// exam names, types, paper types, years and subjects.
type TaxonomyRepository[T model.Taxonomy] struct {
	db     *gorm.DB
	entity string
}

func NewTaxonomyRepository[T model.Taxonomy](db *gorm.DB, entity string) *TaxonomyRepository[T] {
	return &TaxonomyRepository[T]{db: db, entity: entity}
}

// Create stores a new taxonomy entry
func (r *TaxonomyRepository[T]) Create(ctx context.Context, entry *T) error {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Create")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	start := time.Now()
	result := r.db.WithContext(ctx).Create(entry)
	duration := time.Since(start)

	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to create taxonomy entry").
			String("entity", r.entity).
			Duration(duration).
			Err(result.Error).
			Log()
		return result.Error
	}

	logger.InfoWithContext(ctx, "Taxonomy entry created successfully").
		String("entity", r.entity).
		Duration(duration).
		Log()

	return nil
}

// GetByID fetches one taxonomy entry
func (r *TaxonomyRepository[T]) GetByID(ctx context.Context, id uint) (*T, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "GetByID")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	start := time.Now()
	var entry T

	result := r.db.WithContext(ctx).Where("id = ?", id).First(&entry)
	duration := time.Since(start)

	if result.Error != nil {
		logger.WarnWithContext(ctx, "Taxonomy entry lookup missed").
			String("entity", r.entity).
			Uint("id", id).
			Duration(duration).
			Err(result.Error).
			Log()
		return nil, result.Error
	}

	logger.DebugWithContext(ctx, "Taxonomy entry retrieved successfully").
		String("entity", r.entity).
		Uint("id", id).
		Duration(duration).
		Log()

	return &entry, nil
}

// List fetches a page of taxonomy entries
func (r *TaxonomyRepository[T]) List(ctx context.Context, limit, offset int) ([]T, int64, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "List")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	start := time.Now()
	var entries []T
	var total int64

	var zero T
	query := r.db.WithContext(ctx).Model(&zero)

	if err := query.Count(&total).Error; err != nil {
		logger.ErrorWithContext(ctx, "Failed to count taxonomy entries").
			String("entity", r.entity).
			Err(err).
			Log()
		return nil, 0, err
	}

	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&entries).Error; err != nil {
		logger.ErrorWithContext(ctx, "Failed to fetch taxonomy entries").
			String("entity", r.entity).
			Duration(time.Since(start)).
			Err(err).
			Log()
		return nil, 0, err
	}

	logger.InfoWithContext(ctx, "Taxonomy entries retrieved successfully").
		String("entity", r.entity).
		Int64("total", total).
		Int("returned_count", len(entries)).
		Duration(time.Since(start)).
		Log()

	return entries, total, nil
}

// Update applies a partial update to a taxonomy entry
func (r *TaxonomyRepository[T]) Update(ctx context.Context, id uint, fields map[string]interface{}) error {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Update")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	start := time.Now()
	var zero T
	result := r.db.WithContext(ctx).Model(&zero).Where("id = ?", id).Updates(fields)
	duration := time.Since(start)

	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to update taxonomy entry").
			String("entity", r.entity).
			Uint("id", id).
			Duration(duration).
			Err(result.Error).
			Log()
		return result.Error
	}

	if result.RowsAffected == 0 {
		logger.WarnWithContext(ctx, "No taxonomy entry found to update").
			String("entity", r.entity).
			Uint("id", id).
			Log()
		return gorm.ErrRecordNotFound
	}

	logger.InfoWithContext(ctx, "Taxonomy entry updated successfully").
		String("entity", r.entity).
		Uint("id", id).
		Duration(duration).
		Log()

	return nil
}

// Delete removes a taxonomy entry
func (r *TaxonomyRepository[T]) Delete(ctx context.Context, id uint) error {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Delete")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	start := time.Now()
	var zero T
	result := r.db.WithContext(ctx).Delete(&zero, id)
	duration := time.Since(start)

	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to delete taxonomy entry").
			String("entity", r.entity).
			Uint("id", id).
			Duration(duration).
			Err(result.Error).
			Log()
		return result.Error
	}

	if result.RowsAffected == 0 {
		logger.WarnWithContext(ctx, "No taxonomy entry found to delete").
			String("entity", r.entity).
			Uint("id", id).
			Log()
		return gorm.ErrRecordNotFound
	}

	logger.InfoWithContext(ctx, "Taxonomy entry deleted successfully").
		String("entity", r.entity).
		Uint("id", id).
		Duration(duration).
		Log()

	return nil
}
