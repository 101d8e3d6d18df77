package dto

import (
	"time"

	"github.com/examhub/examhub/internal/model"
)

type CreateQuestionRequest struct {
	Question        string  `json:"question" binding:"required,min=7"`
	QuestionNumber  int     `json:"question_number" binding:"required"`
	Answer          string  `json:"answer" binding:"required,oneof=A B C D E"`
	ExamNameID      uint    `json:"exam_name_id" binding:"required"`
	ExamTypeID      uint    `json:"exam_type_id" binding:"required"`
	ExamPaperTypeID *uint   `json:"exam_paper_type_id"`
	ExamYearID      uint    `json:"exam_year_id" binding:"required"`
	ExamSubjectID   uint    `json:"exam_subject_id" binding:"required"`
	OptionA         string  `json:"optionA" binding:"required,min=1"`
	OptionB         string  `json:"optionB" binding:"required,min=1"`
	OptionC         string  `json:"optionC" binding:"required,min=1"`
	OptionD         string  `json:"optionD" binding:"required,min=1"`
	OptionE         *string `json:"optionE" binding:"omitempty,min=1"`
	Description     *string `json:"description" binding:"omitempty,min=7"`
}

type UpdateQuestionRequest struct {
	Question        string  `json:"question" binding:"omitempty,min=7"`
	QuestionNumber  *int    `json:"question_number"`
	Answer          string  `json:"answer" binding:"omitempty,oneof=A B C D E"`
	ExamNameID      *uint   `json:"exam_name_id"`
	ExamTypeID      *uint   `json:"exam_type_id"`
	ExamPaperTypeID *uint   `json:"exam_paper_type_id"`
	ExamYearID      *uint   `json:"exam_year_id"`
	ExamSubjectID   *uint   `json:"exam_subject_id"`
	OptionA         string  `json:"optionA" binding:"omitempty,min=1"`
	OptionB         string  `json:"optionB" binding:"omitempty,min=1"`
	OptionC         string  `json:"optionC" binding:"omitempty,min=1"`
	OptionD         string  `json:"optionD" binding:"omitempty,min=1"`
	OptionE         *string `json:"optionE" binding:"omitempty,min=1"`
	Description     *string `json:"description" binding:"omitempty,min=7"`
}

// QuestionFilter narrows a question listing to one paper. All five taxonomy
// ids are required for the user-facing query; the paper type is optional for
// papers without variants.
type QuestionFilter struct {
	ExamNameID      uint  `form:"exam_name_id" binding:"required"`
	ExamTypeID      uint  `form:"exam_type_id" binding:"required"`
	ExamPaperTypeID *uint `form:"exam_paper_type_id"`
	ExamYearID      uint  `form:"exam_year_id" binding:"required"`
	ExamSubjectID   uint  `form:"exam_subject_id" binding:"required"`
}

type QuestionResponse struct {
	ID              uint      `json:"id"`
	Question        string    `json:"question"`
	QuestionNumber  int       `json:"question_number"`
	Answer          string    `json:"answer"`
	ExamNameID      uint      `json:"exam_name_id"`
	ExamTypeID      uint      `json:"exam_type_id"`
	ExamPaperTypeID *uint     `json:"exam_paper_type_id"`
	ExamYearID      uint      `json:"exam_year_id"`
	ExamSubjectID   uint      `json:"exam_subject_id"`
	OptionA         string    `json:"optionA"`
	OptionB         string    `json:"optionB"`
	OptionC         string    `json:"optionC"`
	OptionD         string    `json:"optionD"`
	OptionE         *string   `json:"optionE"`
	Description     *string   `json:"description"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func ToQuestionResponse(q *model.ExamQuestion) QuestionResponse {
	return QuestionResponse{
		ID:              q.ID,
		Question:        q.Question,
		QuestionNumber:  q.QuestionNumber,
		Answer:          q.Answer,
		ExamNameID:      q.ExamNameID,
		ExamTypeID:      q.ExamTypeID,
		ExamPaperTypeID: q.ExamPaperTypeID,
		ExamYearID:      q.ExamYearID,
		ExamSubjectID:   q.ExamSubjectID,
		OptionA:         q.OptionA,
		OptionB:         q.OptionB,
		OptionC:         q.OptionC,
		OptionD:         q.OptionD,
		OptionE:         q.OptionE,
		Description:     q.Description,
		CreatedAt:       q.CreatedAt,
		UpdatedAt:       q.UpdatedAt,
	}
}

func ToQuestionResponses(questions []model.ExamQuestion) []QuestionResponse {
	responses := make([]QuestionResponse, 0, len(questions))
	for i := range questions {
		responses = append(responses, ToQuestionResponse(&questions[i]))
	}
	return responses
}
