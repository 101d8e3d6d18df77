package model

import (
	"time"

	"gorm.io/gorm"
)

// Record tracks a single exam attempt by a user.
type Record struct {
	gorm.Model
	UserID          uint       `gorm:"column:user_id;not null;index"`
	IsStarted       bool       `gorm:"column:is_started;not null"`
	IsCompleted     bool       `gorm:"column:is_completed;default:false;not null"`
	TimeStarted     *time.Time `gorm:"column:time_started;default:null"`
	TimeCompleted   *time.Time `gorm:"column:time_completed;default:null"`
	Score           float64    `gorm:"column:score;default:0;not null"`
	ExamNameID      uint       `gorm:"column:exam_name_id;not null;index"`
	ExamTypeID      uint       `gorm:"column:exam_type_id;not null"`
	ExamPaperTypeID *uint      `gorm:"column:exam_paper_type_id;default:null"`
	ExamYearID      uint       `gorm:"column:exam_year_id;not null"`
	ExamSubjectID   uint       `gorm:"column:exam_subject_id;not null"`

	User User `gorm:"foreignKey:UserID"`
}
