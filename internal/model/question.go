package model

import (
	"gorm.io/gorm"
)

// ExamQuestion is a single past question with its options and answer.
type ExamQuestion struct {
	gorm.Model
	Question        string  `gorm:"column:question;not null"`
	QuestionNumber  int     `gorm:"column:question_number;not null"`
	ExamNameID      uint    `gorm:"column:exam_name_id;not null;index:idx_exam_questions_lookup"`
	ExamTypeID      uint    `gorm:"column:exam_type_id;not null;index:idx_exam_questions_lookup"`
	ExamPaperTypeID *uint   `gorm:"column:exam_paper_type_id;default:null;index:idx_exam_questions_lookup"`
	ExamYearID      uint    `gorm:"column:exam_year_id;not null;index:idx_exam_questions_lookup"`
	ExamSubjectID   uint    `gorm:"column:exam_subject_id;not null;index:idx_exam_questions_lookup"`
	Answer          string  `gorm:"column:answer;not null"`
	OptionA         string  `gorm:"column:option_a;not null"`
	OptionB         string  `gorm:"column:option_b;not null"`
	OptionC         string  `gorm:"column:option_c;not null"`
	OptionD         string  `gorm:"column:option_d;not null"`
	OptionE         *string `gorm:"column:option_e;default:null"`
	Description     *string `gorm:"column:description;default:null"`
}
