package service

import (
	"context"

	"github.com/examhub/examhub/internal/dto"
	domainerrors "github.com/examhub/examhub/internal/errors"
	"github.com/examhub/examhub/internal/model"
	"github.com/examhub/examhub/internal/repository"
	ctxutil "github.com/examhub/examhub/pkg/context"
	"github.com/examhub/examhub/pkg/logger"
)

// RecordService manages exam attempt records. Every operation is scoped to
// the owning user; one user can never read or write another's attempts.
type RecordService interface {
	CreateRecord(ctx context.Context, userID uint, req *dto.CreateRecordRequest) (*model.Record, error)
	GetRecord(ctx context.Context, id, userID uint) (*model.Record, error)
	ListRecords(ctx context.Context, userID uint, limit, offset int) ([]model.Record, int64, error)
	UpdateRecord(ctx context.Context, id, userID uint, req *dto.UpdateRecordRequest) (*model.Record, error)
}

type recordService struct {
	records *repository.RecordRepository
}

func NewRecordService(records *repository.RecordRepository) RecordService {
	return &recordService{records: records}
}

func (s *recordService) CreateRecord(ctx context.Context, userID uint, req *dto.CreateRecordRequest) (*model.Record, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "CreateRecord")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	logger.InfoWithContext(ctx, "Starting attempt record creation").
		Uint("user_id", userID).
		Log()

	timeStarted := req.TimeStarted
	record := &model.Record{
		UserID:          userID,
		IsStarted:       req.IsStarted != nil && *req.IsStarted,
		TimeStarted:     &timeStarted,
		ExamNameID:      req.ExamNameID,
		ExamTypeID:      req.ExamTypeID,
		ExamPaperTypeID: req.ExamPaperTypeID,
		ExamYearID:      req.ExamYearID,
		ExamSubjectID:   req.ExamSubjectID,
	}

	if err := s.records.Create(ctx, record); err != nil {
		logger.ErrorWithContext(ctx, "Failed to create attempt record").
			Uint("user_id", userID).
			Err(err).
			Log()
		return nil, domainerrors.WrapError(domainerrors.ErrInternal, err)
	}

	logger.InfoWithContext(ctx, "Attempt record created successfully").
		Uint("record_id", record.ID).
		Uint("user_id", userID).
		Log()

	return record, nil
}

func (s *recordService) GetRecord(ctx context.Context, id, userID uint) (*model.Record, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "GetRecord")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	record, err := s.records.GetByIDForUser(ctx, id, userID)
	if err != nil {
		logger.WarnWithContext(ctx, "Attempt record not found").
			Uint("record_id", id).
			Uint("user_id", userID).
			Log()
		return nil, domainerrors.ErrNotFound
	}

	return record, nil
}

func (s *recordService) ListRecords(ctx context.Context, userID uint, limit, offset int) ([]model.Record, int64, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "ListRecords")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	records, total, err := s.records.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to list attempt records").
			Uint("user_id", userID).
			Err(err).
			Log()
		return nil, 0, domainerrors.WrapError(domainerrors.ErrInternal, err)
	}

	return records, total, nil
}

// UpdateRecord closes out an attempt with its completion time and score.
func (s *recordService) UpdateRecord(ctx context.Context, id, userID uint, req *dto.UpdateRecordRequest) (*model.Record, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "UpdateRecord")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	logger.InfoWithContext(ctx, "Starting attempt record update").
		Uint("record_id", id).
		Uint("user_id", userID).
		Log()

	fields := map[string]interface{}{
		"is_completed":   req.IsCompleted != nil && *req.IsCompleted,
		"time_completed": req.TimeCompleted,
	}
	if req.Score != nil {
		fields["score"] = *req.Score
	}

	if err := s.records.UpdateForUser(ctx, id, userID, fields); err != nil {
		logger.WarnWithContext(ctx, "Attempt record update failed").
			Uint("record_id", id).
			Uint("user_id", userID).
			Err(err).
			Log()
		return nil, domainerrors.ErrNotFound
	}

	record, err := s.records.GetByIDForUser(ctx, id, userID)
	if err != nil {
		return nil, domainerrors.ErrNotFound
	}

	logger.InfoWithContext(ctx, "Attempt record updated successfully").
		Uint("record_id", id).
		Uint("user_id", userID).
		Log()

	return record, nil
}
