package dto

import (
	"time"

	"github.com/examhub/examhub/internal/model"
)

type CreateRecordRequest struct {
	IsStarted       *bool     `json:"is_started" binding:"required"`
	TimeStarted     time.Time `json:"time_started" binding:"required"`
	ExamNameID      uint      `json:"exam_name_id" binding:"required"`
	ExamTypeID      uint      `json:"exam_type_id" binding:"required"`
	ExamPaperTypeID *uint     `json:"exam_paper_type_id"`
	ExamYearID      uint      `json:"exam_year_id" binding:"required"`
	ExamSubjectID   uint      `json:"exam_subject_id" binding:"required"`
}

type UpdateRecordRequest struct {
	IsCompleted   *bool     `json:"is_completed" binding:"required"`
	TimeCompleted time.Time `json:"time_completed" binding:"required"`
	Score         *float64  `json:"score" binding:"required"`
}

type RecordResponse struct {
	ID              uint       `json:"id"`
	UserID          uint       `json:"user_id"`
	IsStarted       bool       `json:"is_started"`
	IsCompleted     bool       `json:"is_completed"`
	TimeStarted     *time.Time `json:"time_started"`
	TimeCompleted   *time.Time `json:"time_completed"`
	Score           float64    `json:"score"`
	ExamNameID      uint       `json:"exam_name_id"`
	ExamTypeID      uint       `json:"exam_type_id"`
	ExamPaperTypeID *uint      `json:"exam_paper_type_id"`
	ExamYearID      uint       `json:"exam_year_id"`
	ExamSubjectID   uint       `json:"exam_subject_id"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func ToRecordResponse(record *model.Record) RecordResponse {
	return RecordResponse{
		ID:              record.ID,
		UserID:          record.UserID,
		IsStarted:       record.IsStarted,
		IsCompleted:     record.IsCompleted,
		TimeStarted:     record.TimeStarted,
		TimeCompleted:   record.TimeCompleted,
		Score:           record.Score,
		ExamNameID:      record.ExamNameID,
		ExamTypeID:      record.ExamTypeID,
		ExamPaperTypeID: record.ExamPaperTypeID,
		ExamYearID:      record.ExamYearID,
		ExamSubjectID:   record.ExamSubjectID,
		CreatedAt:       record.CreatedAt,
		UpdatedAt:       record.UpdatedAt,
	}
}

func ToRecordResponses(records []model.Record) []RecordResponse {
	responses := make([]RecordResponse, 0, len(records))
	for i := range records {
		responses = append(responses, ToRecordResponse(&records[i]))
	}
	return responses
}
