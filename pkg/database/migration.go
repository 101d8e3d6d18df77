package database

import (
	"github.com/examhub/examhub/internal/model"
	"gorm.io/gorm"
)

// AutoMigrate runs database migrations for all models
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.ExamName{},
		&model.ExamType{},
		&model.ExamPaperType{},
		&model.ExamYear{},
		&model.ExamSubject{},
		&model.ExamQuestion{},
		&model.Record{},
	)
}
