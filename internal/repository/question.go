package repository

import (
	"context"
	"time"

	"github.com/examhub/examhub/internal/model"
	ctxutil "github.com/examhub/examhub/pkg/context"
	"github.com/examhub/examhub/pkg/logger"
	"gorm.io/gorm"
)

type QuestionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{db: db}
}

// Create stores a new exam question
func (r *QuestionRepository) Create(ctx context.Context, question *model.ExamQuestion) error {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Create")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	logger.DebugWithContext(ctx, "Creating exam question").
		Int("question_number", question.QuestionNumber).
		Uint("exam_name_id", question.ExamNameID).
		Log()

	start := time.Now()
	result := r.db.WithContext(ctx).Create(question)
	duration := time.Since(start)

	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to create exam question").
			Duration(duration).
			Err(result.Error).
			Log()
		return result.Error
	}

	logger.InfoWithContext(ctx, "Exam question created successfully").
		Uint("question_id", question.ID).
		Duration(duration).
		Log()

	return nil
}

// GetByID fetches one exam question
func (r *QuestionRepository) GetByID(ctx context.Context, id uint) (*model.ExamQuestion, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "GetByID")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	start := time.Now()
	var question model.ExamQuestion

	result := r.db.WithContext(ctx).Where("id = ?", id).First(&question)
	duration := time.Since(start)

	if result.Error != nil {
		logger.WarnWithContext(ctx, "Exam question lookup missed").
			Uint("question_id", id).
			Duration(duration).
			Err(result.Error).
			Log()
		return nil, result.Error
	}

	logger.DebugWithContext(ctx, "Exam question retrieved successfully").
		Uint("question_id", id).
		Duration(duration).
		Log()

	return &question, nil
}

// List fetches a page of exam questions
func (r *QuestionRepository) List(ctx context.Context, limit, offset int) ([]model.ExamQuestion, int64, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "List")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	start := time.Now()
	var questions []model.ExamQuestion
	var total int64

	query := r.db.WithContext(ctx).Model(&model.ExamQuestion{})

	if err := query.Count(&total).Error; err != nil {
		logger.ErrorWithContext(ctx, "Failed to count exam questions").
			Err(err).
			Log()
		return nil, 0, err
	}

	if err := query.Order("question_number ASC").Limit(limit).Offset(offset).Find(&questions).Error; err != nil {
		logger.ErrorWithContext(ctx, "Failed to fetch exam questions").
			Duration(time.Since(start)).
			Err(err).
			Log()
		return nil, 0, err
	}

	logger.InfoWithContext(ctx, "Exam questions retrieved successfully").
		Int64("total", total).
		Int("returned_count", len(questions)).
		Duration(time.Since(start)).
		Log()

	return questions, total, nil
}

// ListByPaper fetches a page of questions for one paper, identified by the
// full set of taxonomy ids.
func (r *QuestionRepository) ListByPaper(ctx context.Context, examNameID, examTypeID uint, examPaperTypeID *uint, examYearID, examSubjectID uint, limit, offset int) ([]model.ExamQuestion, int64, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "ListByPaper")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	logger.DebugWithContext(ctx, "Listing questions for paper").
		Uint("exam_name_id", examNameID).
		Uint("exam_type_id", examTypeID).
		Uint("exam_year_id", examYearID).
		Uint("exam_subject_id", examSubjectID).
		Log()

	start := time.Now()
	var questions []model.ExamQuestion
	var total int64

	query := r.db.WithContext(ctx).Model(&model.ExamQuestion{}).Where(
		"exam_name_id = ? AND exam_type_id = ? AND exam_year_id = ? AND exam_subject_id = ?",
		examNameID, examTypeID, examYearID, examSubjectID,
	)
	if examPaperTypeID != nil {
		query = query.Where("exam_paper_type_id = ?", *examPaperTypeID)
	}

	if err := query.Count(&total).Error; err != nil {
		logger.ErrorWithContext(ctx, "Failed to count questions for paper").
			Err(err).
			Log()
		return nil, 0, err
	}

	if err := query.Order("question_number ASC").Limit(limit).Offset(offset).Find(&questions).Error; err != nil {
		logger.ErrorWithContext(ctx, "Failed to fetch questions for paper").
			Duration(time.Since(start)).
			Err(err).
			Log()
		return nil, 0, err
	}

	logger.InfoWithContext(ctx, "Paper questions retrieved successfully").
		Int64("total", total).
		Int("returned_count", len(questions)).
		Duration(time.Since(start)).
		Log()

	return questions, total, nil
}

// Update applies a partial update to an exam question
func (r *QuestionRepository) Update(ctx context.Context, id uint, fields map[string]interface{}) error {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Update")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	start := time.Now()
	result := r.db.WithContext(ctx).Model(&model.ExamQuestion{}).Where("id = ?", id).Updates(fields)
	duration := time.Since(start)

	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to update exam question").
			Uint("question_id", id).
			Duration(duration).
			Err(result.Error).
			Log()
		return result.Error
	}

	if result.RowsAffected == 0 {
		logger.WarnWithContext(ctx, "No exam question found to update").
			Uint("question_id", id).
			Log()
		return gorm.ErrRecordNotFound
	}

	logger.InfoWithContext(ctx, "Exam question updated successfully").
		Uint("question_id", id).
		Duration(duration).
		Log()

	return nil
}

// Delete removes an exam question
func (r *QuestionRepository) Delete(ctx context.Context, id uint) error {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Delete")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	start := time.Now()
	result := r.db.WithContext(ctx).Delete(&model.ExamQuestion{}, id)
	duration := time.Since(start)

	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to delete exam question").
			Uint("question_id", id).
			Duration(duration).
			Err(result.Error).
			Log()
		return result.Error
	}

	if result.RowsAffected == 0 {
		logger.WarnWithContext(ctx, "No exam question found to delete").
			Uint("question_id", id).
			Log()
		return gorm.ErrRecordNotFound
	}

	logger.InfoWithContext(ctx, "Exam question deleted successfully").
		Uint("question_id", id).
		Duration(duration).
		Log()

	return nil
}
